package schema

import "time"

// Device represents the devices table - hardware a midi pack targets
// A device is unique by its normalized (name, manufacturer) key.
type Device struct {
	ID              int64     `gorm:"column:id;primaryKey;autoIncrement"`
	Name            string    `gorm:"column:name;type:text;not null"`
	Manufacturer    string    `gorm:"column:manufacturer;type:text;not null;default:''"`
	NameKey         string    `gorm:"column:name_key;type:text;not null;uniqueIndex:idx_devices_natural_key,priority:1"`
	ManufacturerKey string    `gorm:"column:manufacturer_key;type:text;not null;uniqueIndex:idx_devices_natural_key,priority:2"`
	CreatedAt       time.Time `gorm:"column:created_at;not null;default:now()"`
}

func (Device) TableName() string {
	return "devices"
}

// MIDIDevice represents the midi_devices association table
type MIDIDevice struct {
	MIDI      int64     `gorm:"column:midi;primaryKey;autoIncrement:false"`
	Device    int64     `gorm:"column:device;primaryKey;autoIncrement:false"`
	CreatedAt time.Time `gorm:"column:created_at;not null;default:now()"`
}

func (MIDIDevice) TableName() string {
	return "midi_devices"
}
