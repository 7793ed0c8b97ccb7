package models

import (
	"time"

	"github.com/lib/pq"
)

// User is one enrolled person. UserID is assigned by the device and never
// changes; Slots holds the fingerprint template positions the device stored
// for this person (globally unique — no two users may share a slot).
type User struct {
	ID        uint          `json:"id" gorm:"primaryKey"`
	Name      string        `json:"name" gorm:"size:120;not null"`
	UserID    int           `json:"user_id" gorm:"uniqueIndex;not null"`
	Slots     pq.Int64Array `json:"slot_id" gorm:"column:slot_id;type:int[];not null"`
	Date      string        `json:"date" gorm:"size:20;not null"` // opaque, device-supplied
	Time      string        `json:"time" gorm:"size:20;not null"`
	Salary    *float64      `json:"salary,omitempty"`
	CreatedAt time.Time     `json:"created_at"`
}

func (User) TableName() string { return "user_information" }
