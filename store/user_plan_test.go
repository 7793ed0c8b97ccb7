package store

import (
	"fmt"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func candidate(id int, slots ...int64) BulkCandidate {
	return BulkCandidate{
		Name:   fmt.Sprintf("user-%d", id),
		UserID: id,
		Slots:  slots,
		Date:   "01/05",
		Time:   "09:00",
	}
}

func TestPlanBulkEnrollSkipsKnownIDs(t *testing.T) {
	existing := map[int]struct{}{1: {}}
	taken := map[int64]struct{}{1: {}, 2: {}}

	plan := planBulkEnroll(existing, taken, []BulkCandidate{
		candidate(1, 1, 2), // already enrolled — skip, not error
		candidate(2, 5, 6),
	})

	assert.Equal(t, 1, plan.skipped)
	assert.Empty(t, plan.errs)
	require.Len(t, plan.toCreate, 1)
	assert.Equal(t, 2, plan.toCreate[0].UserID)
}

func TestPlanBulkEnrollReportsFirstConflictingSlot(t *testing.T) {
	taken := map[int64]struct{}{6: {}, 7: {}}

	plan := planBulkEnroll(map[int]struct{}{}, taken, []BulkCandidate{
		candidate(2, 5, 6, 7), // 6 is the first conflict, 7 never reported
	})

	require.Len(t, plan.errs, 1)
	assert.Equal(t, "Slot 6 already occupied", plan.errs[0].Error)
	assert.Equal(t, 2, plan.errs[0].UserID)
	assert.Empty(t, plan.toCreate)
}

func TestPlanBulkEnrollIntraBatchClaims(t *testing.T) {
	plan := planBulkEnroll(map[int]struct{}{}, map[int64]struct{}{}, []BulkCandidate{
		candidate(1, 7, 8),
		candidate(2, 7), // loses slot 7 to the earlier candidate
		candidate(3, 9),
	})

	require.Len(t, plan.errs, 1)
	assert.Equal(t, 2, plan.errs[0].UserID)
	assert.Equal(t, "Slot 7 already occupied", plan.errs[0].Error)

	require.Len(t, plan.toCreate, 2)
	assert.Equal(t, 1, plan.toCreate[0].UserID)
	assert.Equal(t, 3, plan.toCreate[1].UserID)
}

func TestPlanBulkEnrollErrorKeepsProcessing(t *testing.T) {
	taken := map[int64]struct{}{1: {}}

	plan := planBulkEnroll(map[int]struct{}{}, taken, []BulkCandidate{
		candidate(1, 1),
		candidate(2, 2),
		candidate(3, 1),
		candidate(4, 3),
	})

	assert.Len(t, plan.errs, 2)
	assert.Len(t, plan.toCreate, 2)
	assert.Equal(t, 0, plan.skipped)
}

// Slot ownership stays a partition after any random batch: no slot ends up
// claimed by two accepted candidates or by an accepted candidate and the
// pre-existing registry.
func TestPlanBulkEnrollSlotUniquenessProperty(t *testing.T) {
	rng := rand.New(rand.NewSource(42))

	for trial := 0; trial < 200; trial++ {
		preTaken := map[int64]struct{}{}
		for i := 0; i < rng.Intn(20); i++ {
			preTaken[int64(rng.Intn(30)+1)] = struct{}{}
		}
		pre := make(map[int64]struct{}, len(preTaken))
		for s := range preTaken {
			pre[s] = struct{}{}
		}

		var candidates []BulkCandidate
		for i := 0; i < rng.Intn(15)+1; i++ {
			n := rng.Intn(4) + 1
			slots := make([]int64, n)
			for j := range slots {
				slots[j] = int64(rng.Intn(30) + 1)
			}
			candidates = append(candidates, candidate(i+1, slots...))
		}

		plan := planBulkEnroll(map[int]struct{}{}, preTaken, candidates)

		owned := map[int64]int{}
		for _, u := range plan.toCreate {
			seen := map[int64]struct{}{}
			for _, s := range u.Slots {
				if _, dup := seen[s]; dup {
					continue // same user repeating its own slot
				}
				seen[s] = struct{}{}
				if _, was := pre[s]; was {
					t.Fatalf("trial %d: accepted candidate %d claims pre-owned slot %d", trial, u.UserID, s)
				}
				owned[s]++
				if owned[s] > 1 {
					t.Fatalf("trial %d: slot %d claimed by two accepted candidates", trial, s)
				}
			}
		}
	}
}

func TestReconcileDiff(t *testing.T) {
	snapshot := map[int]struct{}{1: {}, 3: {}}

	toDelete := reconcileDiff([]int{1, 2, 3, 42}, snapshot)
	assert.Equal(t, []int{2, 42}, toDelete)

	assert.Nil(t, reconcileDiff([]int{1, 3}, snapshot), "snapshot covers everyone")
	assert.Nil(t, reconcileDiff(nil, snapshot), "empty directory")
}

func TestReconcileRejectsEmptySnapshot(t *testing.T) {
	s := NewUserStore(nil) // empty snapshot is rejected before any DB access

	_, err := s.Reconcile(nil)
	assert.ErrorIs(t, err, ErrEmptySnapshot)

	_, err = s.Reconcile([]int{})
	assert.ErrorIs(t, err, ErrEmptySnapshot)
}
