package schema

import "time"

// Queue represents the queue table - token ids whose indexing attempt failed
// Entries at or above the attempt ceiling are dead letters and stay as an audit trail.
type Queue struct {
	ID        int64     `gorm:"column:id;primaryKey;autoIncrement:false"`
	Attempts  int       `gorm:"column:attempts;not null;default:1"`
	Error     string    `gorm:"column:error;type:text;not null;default:''"`
	Operator  string    `gorm:"column:operator;type:text;not null"`
	CreatedAt time.Time `gorm:"column:created_at;not null;default:now()"`
	UpdatedAt time.Time `gorm:"column:updated_at;not null;default:now()"`
}

func (Queue) TableName() string {
	return "queue"
}
