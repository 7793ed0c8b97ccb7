package store

import (
	"time"

	"github.com/lib/pq"

	"github.com/Wasi-Muzammil/Biometric-Attendance-System/models"
)

const (
	ActionCheckedIn  = "checked_in"
	ActionCheckedOut = "checked_out"
)

// AttendanceEvent is one fingerprint scan as reported by a device.
type AttendanceEvent struct {
	Name   string
	UserID int
	Slots  []int64
	Date   string
	Time   string
}

type recordKey struct {
	userID int
	date   string
}

// applyEvent runs the check-in/check-out state machine against an in-memory
// record map, exactly as a single log call mutates the table. First event
// for a key creates the record (check-in, present=true); every later event
// overwrites the check-out stamp — there is no third state, a third scan the
// same day simply re-stamps checkout. Times are opaque strings; nothing
// validates that check-out sorts after check-in.
func applyEvent(records map[recordKey]*models.AttendanceRecord, ev AttendanceEvent, now time.Time) (string, *models.AttendanceRecord) {
	key := recordKey{userID: ev.UserID, date: ev.Date}

	if rec, ok := records[key]; ok {
		out := ev.Time
		rec.CheckedOutTime = &out
		rec.UpdatedAt = now
		return ActionCheckedOut, rec
	}

	rec := &models.AttendanceRecord{
		Name:          ev.Name,
		UserID:        ev.UserID,
		Slots:         pq.Int64Array(ev.Slots),
		Date:          ev.Date,
		CheckedInTime: ev.Time,
		IsPresent:     true,
	}
	records[key] = rec
	return ActionCheckedIn, rec
}
