package domain

import "time"

// Visit is one prior user-destination interaction. Visits are append-only;
// the in-memory interaction matrix is rebuilt from them on the next load.
type Visit struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	UserID        uint      `gorm:"column:user_id;not null;index" json:"user_id"`
	DestinationID uint64    `gorm:"column:destination_id;not null;index" json:"destination_id"`
	CreatedAt     time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}

func (Visit) TableName() string {
	return "visits"
}
