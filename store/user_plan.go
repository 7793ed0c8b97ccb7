package store

import (
	"fmt"

	"github.com/lib/pq"

	"github.com/Wasi-Muzammil/Biometric-Attendance-System/models"
)

// BulkCandidate is one user from a device's local storage dump.
type BulkCandidate struct {
	Name   string  `json:"name" validate:"required"`
	UserID int     `json:"id" validate:"required,gt=0"`
	Slots  []int64 `json:"slot_id" validate:"required,min=1,dive,gt=0"`
	Date   string  `json:"date" validate:"required"`
	Time   string  `json:"time" validate:"required"`
}

// BulkError records why one candidate was rejected; the rest of the batch
// still goes through.
type BulkError struct {
	Index  int    `json:"index"`
	UserID int    `json:"user_id"`
	Name   string `json:"name"`
	Error  string `json:"error"`
}

type bulkPlan struct {
	toCreate []models.User
	skipped  int
	errs     []BulkError
}

// planBulkEnroll walks candidates in input order against a snapshot of the
// directory. A known user_id is a skip, not an error. Slots are checked
// against the persisted registry and against slots claimed earlier in the
// same batch, so two candidates cannot both win the same slot; the first
// conflicting slot per candidate is reported. Accepted candidates reserve
// their id and slots immediately so later candidates see them.
func planBulkEnroll(existingIDs map[int]struct{}, takenSlots map[int64]struct{}, candidates []BulkCandidate) bulkPlan {
	var plan bulkPlan

	for idx, cand := range candidates {
		if _, ok := existingIDs[cand.UserID]; ok {
			plan.skipped++
			continue
		}

		conflict := false
		for _, slot := range cand.Slots {
			if _, taken := takenSlots[slot]; taken {
				plan.errs = append(plan.errs, BulkError{
					Index:  idx,
					UserID: cand.UserID,
					Name:   cand.Name,
					Error:  fmt.Sprintf("Slot %d already occupied", slot),
				})
				conflict = true
				break
			}
		}
		if conflict {
			continue
		}

		plan.toCreate = append(plan.toCreate, models.User{
			Name:   cand.Name,
			UserID: cand.UserID,
			Slots:  pq.Int64Array(cand.Slots),
			Date:   cand.Date,
			Time:   cand.Time,
		})
		existingIDs[cand.UserID] = struct{}{}
		for _, slot := range cand.Slots {
			takenSlots[slot] = struct{}{}
		}
	}

	return plan
}

// reconcileDiff returns the ids present in the directory but missing from
// the authoritative snapshot. Full-replace semantics: everything returned
// here gets deleted with its attendance history.
func reconcileDiff(directoryIDs []int, snapshot map[int]struct{}) []int {
	var toDelete []int
	for _, id := range directoryIDs {
		if _, ok := snapshot[id]; !ok {
			toDelete = append(toDelete, id)
		}
	}
	return toDelete
}
