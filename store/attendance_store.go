package store

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/Wasi-Muzammil/Biometric-Attendance-System/models"
)

// AttendanceStore owns the one-record-per-(user, day) ledger.
type AttendanceStore struct {
	db *gorm.DB
}

func NewAttendanceStore(db *gorm.DB) *AttendanceStore { return &AttendanceStore{db: db} }

// Log applies one scan. Returns ActionCheckedIn when it created the day's
// record, ActionCheckedOut when it (re-)stamped the checkout time.
func (s *AttendanceStore) Log(ev AttendanceEvent) (string, *models.AttendanceRecord, error) {
	var action string
	var rec *models.AttendanceRecord

	err := s.db.Transaction(func(tx *gorm.DB) error {
		records := make(map[recordKey]*models.AttendanceRecord, 1)

		var existing models.AttendanceRecord
		err := tx.Where("user_id = ? AND date = ?", ev.UserID, ev.Date).First(&existing).Error
		if err == nil {
			records[recordKey{userID: ev.UserID, date: ev.Date}] = &existing
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		action, rec = applyEvent(records, ev, time.Now())
		return tx.Save(rec).Error
	})
	if err != nil {
		return "", nil, err
	}
	return action, rec, nil
}

// LogBulk replays a batch of scans with the same net effect as calling Log
// once per event in input order: later events in the batch see earlier ones
// through the shared record map. Existing rows for the touched (user, date)
// keys are prefetched once; everything commits in a single transaction.
func (s *AttendanceStore) LogBulk(events []AttendanceEvent) (created, updated int, err error) {
	if len(events) == 0 {
		return 0, 0, nil
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		pairs := make([][]interface{}, 0, len(events))
		seen := make(map[recordKey]struct{}, len(events))
		for _, ev := range events {
			key := recordKey{userID: ev.UserID, date: ev.Date}
			if _, ok := seen[key]; ok {
				continue
			}
			seen[key] = struct{}{}
			pairs = append(pairs, []interface{}{ev.UserID, ev.Date})
		}

		var existing []models.AttendanceRecord
		if err := tx.Where("(user_id, date) IN ?", pairs).Find(&existing).Error; err != nil {
			return err
		}

		records := make(map[recordKey]*models.AttendanceRecord, len(existing))
		for i := range existing {
			r := &existing[i]
			records[recordKey{userID: r.UserID, date: r.Date}] = r
		}

		now := time.Now()
		for _, ev := range events {
			action, rec := applyEvent(records, ev, now)
			if err := tx.Save(rec).Error; err != nil {
				return err
			}
			if action == ActionCheckedIn {
				created++
			} else {
				updated++
			}
		}
		return nil
	})
	if err != nil {
		return 0, 0, err
	}
	return created, updated, nil
}

func (s *AttendanceStore) Get(userID int, date string) (*models.AttendanceRecord, error) {
	var rec models.AttendanceRecord
	err := s.db.Where("user_id = ? AND date = ?", userID, date).First(&rec).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrRecordNotFound
	}
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

func (s *AttendanceStore) ListByDate(date string) ([]models.AttendanceRecord, error) {
	var recs []models.AttendanceRecord
	if err := s.db.Where("date = ?", date).Order("checked_in_time ASC").Find(&recs).Error; err != nil {
		return nil, err
	}
	return recs, nil
}

// ListRange filters by plain string comparison: start <= date <= end. Dates
// are opaque, so the range is only meaningful when callers use a
// lexicographically sortable format.
func (s *AttendanceStore) ListRange(start, end string) ([]models.AttendanceRecord, error) {
	var recs []models.AttendanceRecord
	err := s.db.Where("date >= ? AND date <= ?", start, end).
		Order("date ASC, checked_in_time ASC").
		Find(&recs).Error
	if err != nil {
		return nil, err
	}
	return recs, nil
}
