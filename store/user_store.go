package store

import (
	"errors"

	"github.com/lib/pq"
	"gorm.io/gorm"

	"github.com/Wasi-Muzammil/Biometric-Attendance-System/models"
)

// UserStore owns the user directory and the slot registry. Slots are only
// ever mutated as part of a user write, and every read-check-write sequence
// runs inside one transaction so concurrent enrollments cannot both win a
// slot check.
type UserStore struct {
	db *gorm.DB
}

func NewUserStore(db *gorm.DB) *UserStore { return &UserStore{db: db} }

type EnrollRequest struct {
	Name   string
	UserID int
	Slots  []int64
	Date   string
	Time   string
	Salary *float64
}

// UserPatch applies each field independently; nil means untouched.
type UserPatch struct {
	Name   *string
	Slots  []int64
	Date   *string
	Time   *string
	Salary *float64
}

// ReconcileResult aggregates a full-replace sync against a device snapshot.
type ReconcileResult struct {
	TotalDBUsers      int
	TotalDeviceUsers  int
	UsersDeleted      int
	AttendanceDeleted int64
}

// BulkEnrollResult reports a partial-success batch enrollment.
type BulkEnrollResult struct {
	TotalReceived int
	Added         int
	Skipped       int
	Errors        []BulkError
}

// ownerOf reports which user owns a slot, excluding excludeUserID (pass a
// negative value to exclude nobody). Membership scan over the slot arrays,
// not a primary-key lookup.
func ownerOf(tx *gorm.DB, slot int64, excludeUserID int) (*models.User, error) {
	var owner models.User
	q := tx.Where("? = ANY(slot_id)", slot)
	if excludeUserID >= 0 {
		q = q.Where("user_id <> ?", excludeUserID)
	}
	err := q.First(&owner).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &owner, nil
}

// checkSlotsFree walks slots in input order and returns a SlotConflictError
// for the first one that is occupied (or repeated within the request).
func checkSlotsFree(tx *gorm.DB, slots []int64, excludeUserID int, requester string) error {
	seen := make(map[int64]struct{}, len(slots))
	for _, slot := range slots {
		if _, dup := seen[slot]; dup {
			return &SlotConflictError{Slot: slot, Owner: requester}
		}
		seen[slot] = struct{}{}

		owner, err := ownerOf(tx, slot, excludeUserID)
		if err != nil {
			return err
		}
		if owner != nil {
			return &SlotConflictError{Slot: slot, Owner: owner.Name}
		}
	}
	return nil
}

func (s *UserStore) Enroll(req EnrollRequest) (*models.User, error) {
	var created models.User
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var existing models.User
		err := tx.Where("user_id = ?", req.UserID).First(&existing).Error
		if err == nil {
			return ErrDuplicateUser
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		if err := checkSlotsFree(tx, req.Slots, -1, req.Name); err != nil {
			return err
		}

		created = models.User{
			Name:   req.Name,
			UserID: req.UserID,
			Slots:  pq.Int64Array(req.Slots),
			Date:   req.Date,
			Time:   req.Time,
			Salary: req.Salary,
		}
		return tx.Create(&created).Error
	})
	if err != nil {
		return nil, err
	}
	return &created, nil
}

// Delete removes a user and cascades deletion of every attendance record for
// that user_id. The supplied slot set must match the stored set exactly
// (order-independent) so a stale client cannot delete the wrong enrollment.
func (s *UserStore) Delete(userID int, slots []int64) (*models.User, int64, error) {
	var snapshot models.User
	var logsDeleted int64
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("user_id = ?", userID).First(&snapshot).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrUserNotFound
			}
			return err
		}

		if !slotSetsEqual(snapshot.Slots, slots) {
			return &SlotMismatchError{Expected: snapshot.Slots, Got: slots}
		}

		res := tx.Where("user_id = ?", userID).Delete(&models.AttendanceRecord{})
		if res.Error != nil {
			return res.Error
		}
		logsDeleted = res.RowsAffected

		return tx.Delete(&snapshot).Error
	})
	if err != nil {
		return nil, 0, err
	}
	return &snapshot, logsDeleted, nil
}

func (s *UserStore) Update(userID int, patch UserPatch) (*models.User, error) {
	var user models.User
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("user_id = ?", userID).First(&user).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrUserNotFound
			}
			return err
		}

		if patch.Slots != nil {
			// Re-validate against everyone but this user's own record.
			if err := checkSlotsFree(tx, patch.Slots, userID, user.Name); err != nil {
				return err
			}
			user.Slots = pq.Int64Array(patch.Slots)
		}
		if patch.Name != nil {
			user.Name = *patch.Name
		}
		if patch.Date != nil {
			user.Date = *patch.Date
		}
		if patch.Time != nil {
			user.Time = *patch.Time
		}
		if patch.Salary != nil {
			user.Salary = patch.Salary
		}

		return tx.Save(&user).Error
	})
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (s *UserStore) Get(userID int) (*models.User, error) {
	var user models.User
	err := s.db.Where("user_id = ?", userID).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// FindBySlot resolves identity from a scanned slot number.
func (s *UserStore) FindBySlot(slot int64) (*models.User, error) {
	owner, err := ownerOf(s.db, slot, -1)
	if err != nil {
		return nil, err
	}
	if owner == nil {
		return nil, ErrUserNotFound
	}
	return owner, nil
}

func (s *UserStore) List() ([]models.User, error) {
	var users []models.User
	if err := s.db.Order("created_at DESC").Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

// BulkEnroll syncs a device's local user dump into the directory. Known ids
// are skipped, slot conflicts (against the registry or earlier candidates in
// the batch) are per-candidate errors, and the survivors are committed
// together in one transaction.
func (s *UserStore) BulkEnroll(candidates []BulkCandidate) (BulkEnrollResult, error) {
	result := BulkEnrollResult{TotalReceived: len(candidates)}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		var users []models.User
		if err := tx.Select("user_id", "slot_id").Find(&users).Error; err != nil {
			return err
		}

		existingIDs := make(map[int]struct{}, len(users))
		takenSlots := make(map[int64]struct{})
		for _, u := range users {
			existingIDs[u.UserID] = struct{}{}
			for _, slot := range u.Slots {
				takenSlots[slot] = struct{}{}
			}
		}

		plan := planBulkEnroll(existingIDs, takenSlots, candidates)
		result.Skipped = plan.skipped
		result.Errors = plan.errs

		if len(plan.toCreate) > 0 {
			if err := tx.Create(&plan.toCreate).Error; err != nil {
				return err
			}
			result.Added = len(plan.toCreate)
		}
		return nil
	})
	if err != nil {
		return BulkEnrollResult{TotalReceived: len(candidates)}, err
	}
	return result, nil
}

// Reconcile replaces directory membership with exactly the snapshot: any
// user missing from it is deleted along with its attendance history. An
// empty snapshot is rejected outright — it is a malformed dump, not a
// request to delete everyone.
func (s *UserStore) Reconcile(snapshotIDs []int) (ReconcileResult, error) {
	if len(snapshotIDs) == 0 {
		return ReconcileResult{}, ErrEmptySnapshot
	}

	snapshot := make(map[int]struct{}, len(snapshotIDs))
	for _, id := range snapshotIDs {
		snapshot[id] = struct{}{}
	}

	var result ReconcileResult
	result.TotalDeviceUsers = len(snapshotIDs)

	err := s.db.Transaction(func(tx *gorm.DB) error {
		var users []models.User
		if err := tx.Select("user_id").Find(&users).Error; err != nil {
			return err
		}
		result.TotalDBUsers = len(users)

		directoryIDs := make([]int, len(users))
		for i, u := range users {
			directoryIDs[i] = u.UserID
		}

		toDelete := reconcileDiff(directoryIDs, snapshot)
		if len(toDelete) == 0 {
			return nil
		}

		res := tx.Where("user_id IN ?", toDelete).Delete(&models.AttendanceRecord{})
		if res.Error != nil {
			return res.Error
		}
		result.AttendanceDeleted = res.RowsAffected

		if err := tx.Where("user_id IN ?", toDelete).Delete(&models.User{}).Error; err != nil {
			return err
		}
		result.UsersDeleted = len(toDelete)
		return nil
	})
	if err != nil {
		return ReconcileResult{}, err
	}
	return result, nil
}
