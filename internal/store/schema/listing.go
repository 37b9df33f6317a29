package schema

import "time"

// Listing represents the listings table - one row per market ListingCreated event
type Listing struct {
	ID             int64  `gorm:"column:id;primaryKey;autoIncrement"`
	ListingAddress string `gorm:"column:listing_address;type:text;not null"`
	TokenID        int64  `gorm:"column:token_id;not null;index"`
	// Amount is the listed quantity as a decimal string
	Amount string `gorm:"column:amount;type:numeric(78,0);not null"`
	// Price is the unit price in wei as a decimal string
	Price         string    `gorm:"column:price;type:text;not null"`
	SellerAddress string    `gorm:"column:seller_address;type:text;not null"`
	TxHash        string    `gorm:"column:tx_hash;type:text;not null;uniqueIndex:idx_listings_tx_log,priority:1"`
	LogIndex      int       `gorm:"column:log_index;not null;uniqueIndex:idx_listings_tx_log,priority:2"`
	BlockNumber   int64     `gorm:"column:block_number;not null"`
	CreatedAt     time.Time `gorm:"column:created_at;not null;default:now()"`
}

func (Listing) TableName() string {
	return "listings"
}
