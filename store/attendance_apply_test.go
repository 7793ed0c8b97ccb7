package store

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Wasi-Muzammil/Biometric-Attendance-System/models"
)

func scan(userID int, date, at string) AttendanceEvent {
	return AttendanceEvent{
		Name:   "Ali",
		UserID: userID,
		Slots:  []int64{1, 2, 3, 4},
		Date:   date,
		Time:   at,
	}
}

func TestApplyEventCheckInThenOut(t *testing.T) {
	records := map[recordKey]*models.AttendanceRecord{}
	now := time.Now()

	action, rec := applyEvent(records, scan(7, "01/05", "08:00"), now)
	require.Equal(t, ActionCheckedIn, action)
	assert.Equal(t, "08:00", rec.CheckedInTime)
	assert.Nil(t, rec.CheckedOutTime)
	assert.True(t, rec.IsPresent)
	assert.Equal(t, "Ali", rec.Name)

	action, rec = applyEvent(records, scan(7, "01/05", "17:00"), now)
	require.Equal(t, ActionCheckedOut, action)
	assert.Equal(t, "08:00", rec.CheckedInTime, "check-in time is immutable")
	require.NotNil(t, rec.CheckedOutTime)
	assert.Equal(t, "17:00", *rec.CheckedOutTime)

	// A third scan the same day re-stamps checkout; there is no third state.
	action, rec = applyEvent(records, scan(7, "01/05", "19:30"), now)
	require.Equal(t, ActionCheckedOut, action)
	assert.Equal(t, "08:00", rec.CheckedInTime)
	assert.Equal(t, "19:30", *rec.CheckedOutTime)

	assert.Len(t, records, 1, "one record per (user, day)")
}

func TestApplyEventSeparateDaysAndUsers(t *testing.T) {
	records := map[recordKey]*models.AttendanceRecord{}
	now := time.Now()

	a1, _ := applyEvent(records, scan(7, "01/05", "08:00"), now)
	a2, _ := applyEvent(records, scan(7, "01/06", "08:10"), now)
	a3, _ := applyEvent(records, scan(8, "01/05", "08:20"), now)

	assert.Equal(t, ActionCheckedIn, a1)
	assert.Equal(t, ActionCheckedIn, a2)
	assert.Equal(t, ActionCheckedIn, a3)
	assert.Len(t, records, 3)
}

// A batch must behave exactly like replaying the events one at a time: the
// second event for a key inside one batch sees the first one's write.
func TestApplyEventBatchOrderEquivalence(t *testing.T) {
	events := []AttendanceEvent{
		scan(7, "01/05", "08:00"),
		scan(8, "01/05", "08:05"),
		scan(7, "01/05", "12:00"),
		scan(7, "01/05", "17:00"),
		scan(8, "01/06", "07:55"),
	}

	batch := map[recordKey]*models.AttendanceRecord{}
	sequential := map[recordKey]*models.AttendanceRecord{}
	now := time.Now()

	created, updated := 0, 0
	for _, ev := range events {
		action, _ := applyEvent(batch, ev, now)
		if action == ActionCheckedIn {
			created++
		} else {
			updated++
		}
	}
	for _, ev := range events {
		applyEvent(sequential, ev, now)
	}

	assert.Equal(t, 3, created)
	assert.Equal(t, 2, updated)
	require.Len(t, batch, len(sequential))
	for key, want := range sequential {
		got, ok := batch[key]
		require.True(t, ok)
		assert.Equal(t, want.CheckedInTime, got.CheckedInTime)
		assert.Equal(t, want.CheckedOutTime, got.CheckedOutTime)
		assert.Equal(t, want.IsPresent, got.IsPresent)
	}
}
