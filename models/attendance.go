package models

import (
	"time"

	"github.com/lib/pq"
)

// AttendanceRecord is the single row per (user_id, date). Name and Slots are
// snapshots taken at check-in and are never re-synced if the user is renamed
// later. CheckedInTime is set once; CheckedOutTime is overwritten by every
// later scan on the same day.
type AttendanceRecord struct {
	ID             uint          `json:"id" gorm:"primaryKey"`
	Name           string        `json:"name" gorm:"size:120;not null"`
	UserID         int           `json:"user_id" gorm:"not null;index;uniqueIndex:idx_attendance_user_date"`
	Slots          pq.Int64Array `json:"slot_id" gorm:"column:slot_id;type:int[]"`
	Date           string        `json:"date" gorm:"size:20;not null;index;uniqueIndex:idx_attendance_user_date"`
	CheckedInTime  string        `json:"checked_in_time" gorm:"size:20"`
	CheckedOutTime *string       `json:"checked_out_time"`
	IsPresent      bool          `json:"is_present" gorm:"not null;default:false"`
	CreatedAt      time.Time     `json:"created_at"`
	UpdatedAt      time.Time     `json:"updated_at"`
}

func (AttendanceRecord) TableName() string { return "attendance_records" }
