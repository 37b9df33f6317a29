package schema

import (
	"time"

	"gorm.io/datatypes"
)

// MIDI represents the midi table - one row per indexed token id of the midi contract
type MIDI struct {
	// ID is the on-chain token id
	ID int64 `gorm:"column:id;primaryKey;autoIncrement:false"`
	// Metadata is the raw metadata document fetched at indexing time
	Metadata datatypes.JSON `gorm:"column:metadata;type:jsonb;not null"`
	// MetadataHash is the sha256 of the JCS-canonical metadata
	MetadataHash *string `gorm:"column:metadata_hash;type:text"`
	// Tags are the upper-cased, de-duplicated tags derived from the metadata
	Tags datatypes.JSONSlice[string] `gorm:"column:tags;type:jsonb;not null"`
	// CreatedBy is the operator address of the mint transfer
	CreatedBy string `gorm:"column:created_by;type:text;not null"`
	// TotalSupply is the last observed on-chain supply, nil until a burn refreshes it
	TotalSupply *int64    `gorm:"column:total_supply"`
	CreatedAt   time.Time `gorm:"column:created_at;not null;default:now()"`
	UpdatedAt   time.Time `gorm:"column:updated_at;not null;default:now()"`
}

func (MIDI) TableName() string {
	return "midi"
}
