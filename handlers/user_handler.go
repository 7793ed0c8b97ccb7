package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Wasi-Muzammil/Biometric-Attendance-System/store"
)

type UserHandler struct {
	Users *store.UserStore
}

func NewUserHandler(users *store.UserStore) *UserHandler { return &UserHandler{Users: users} }

type createUserRequest struct {
	Name   string   `json:"name" validate:"required"`
	ID     int      `json:"id" validate:"required,gt=0"`
	Slots  []int64  `json:"slot_id" validate:"required,min=1,dive,gt=0"`
	Date   string   `json:"date" validate:"required"`
	Time   string   `json:"time" validate:"required"`
	Salary *float64 `json:"salary"`
}

type deleteUserRequest struct {
	UserID int     `json:"user_id" validate:"required,gt=0"`
	Slots  []int64 `json:"slot_id" validate:"required,min=1,dive,gt=0"`
}

type updateUserRequest struct {
	UserID int      `json:"user_id" validate:"required,gt=0"`
	Name   *string  `json:"name"`
	Slots  []int64  `json:"slot_id" validate:"omitempty,min=1,dive,gt=0"`
	Date   *string  `json:"date"`
	Time   *string  `json:"time"`
	Salary *float64 `json:"salary"`
}

type sdUser struct {
	Name  string  `json:"name"`
	ID    int     `json:"id" validate:"required,gt=0"`
	Slots []int64 `json:"slot_id"`
}

// POST /esp32/user — device reports a completed fingerprint enrollment.
func (h *UserHandler) Create(c echo.Context) error {
	var req createUserRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return badRequest(c, err.Error())
	}

	user, err := h.Users.Enroll(store.EnrollRequest{
		Name:   req.Name,
		UserID: req.ID,
		Slots:  req.Slots,
		Date:   req.Date,
		Time:   req.Time,
		Salary: req.Salary,
	})
	if err != nil {
		if errors.Is(err, store.ErrDuplicateUser) {
			return conflict(c, fmt.Sprintf("User with ID %d already exists", req.ID))
		}
		return fail(c, err)
	}

	return c.JSON(http.StatusCreated, map[string]any{
		"success": true,
		"message": fmt.Sprintf("User created successfully with %d fingerprint templates", len(user.Slots)),
		"user":    user,
	})
}

// DELETE /esp32/user/delete — guarded by an exact slot-set match so a stale
// client cannot remove the wrong enrollment.
func (h *UserHandler) Delete(c echo.Context) error {
	var req deleteUserRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return badRequest(c, err.Error())
	}

	user, logsDeleted, err := h.Users.Delete(req.UserID, req.Slots)
	if err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			return notFound(c, fmt.Sprintf("User with ID %d not found in database", req.UserID))
		}
		return fail(c, err)
	}

	return c.JSON(http.StatusOK, map[string]any{
		"success":                 true,
		"message":                 fmt.Sprintf("User %s and all %d fingerprint templates deleted successfully", user.Name, len(user.Slots)),
		"deleted_user":            user,
		"attendance_logs_deleted": logsDeleted,
	})
}

// PUT /admin/users/:user_id — admin patch; absent fields stay untouched.
func (h *UserHandler) Update(c echo.Context) error {
	userID, err := pathInt(c, "user_id")
	if err != nil {
		return badRequest(c, "invalid user id")
	}

	var req updateUserRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid payload")
	}
	req.UserID = userID
	if err := c.Validate(&req); err != nil {
		return badRequest(c, err.Error())
	}
	if req.Slots != nil && len(req.Slots) == 0 {
		return badRequest(c, "slot_id must not be empty")
	}

	user, err := h.Users.Update(userID, store.UserPatch{
		Name:   req.Name,
		Slots:  req.Slots,
		Date:   req.Date,
		Time:   req.Time,
		Salary: req.Salary,
	})
	if err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			return notFound(c, fmt.Sprintf("User with ID %d not found", userID))
		}
		return fail(c, err)
	}

	return c.JSON(http.StatusOK, map[string]any{
		"success": true,
		"message": "User updated successfully",
		"user":    user,
	})
}

// GET /esp32/user/:user_id
func (h *UserHandler) GetByID(c echo.Context) error {
	userID, err := pathInt(c, "user_id")
	if err != nil {
		return badRequest(c, "invalid user id")
	}

	user, err := h.Users.Get(userID)
	if err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			return notFound(c, fmt.Sprintf("User with ID %d not found", userID))
		}
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, map[string]any{"success": true, "user": user})
}

// GET /esp32/user/slot/:slot_id — resolve identity from a scanned slot.
func (h *UserHandler) GetBySlot(c echo.Context) error {
	slot, err := pathInt(c, "slot_id")
	if err != nil {
		return badRequest(c, "invalid slot id")
	}

	user, err := h.Users.FindBySlot(int64(slot))
	if err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			return notFound(c, fmt.Sprintf("No user found with slot %d", slot))
		}
		return fail(c, err)
	}

	return c.JSON(http.StatusOK, map[string]any{
		"success":      true,
		"name":         user.Name,
		"user_id":      user.UserID,
		"slot_id":      user.Slots,
		"scanned_slot": slot,
		"date":         user.Date,
		"time":         user.Time,
		"created_at":   user.CreatedAt,
	})
}

// GET /esp32/users
func (h *UserHandler) List(c echo.Context) error {
	users, err := h.Users.List()
	if err != nil {
		return fail(c, err)
	}

	totalTemplates := 0
	list := make([]map[string]any, 0, len(users))
	for _, u := range users {
		totalTemplates += len(u.Slots)
		list = append(list, map[string]any{
			"name":            u.Name,
			"user_id":         u.UserID,
			"slot_id":         u.Slots,
			"total_templates": len(u.Slots),
			"date":            u.Date,
			"time":            u.Time,
			"salary":          u.Salary,
			"created_at":      u.CreatedAt,
		})
	}

	return c.JSON(http.StatusOK, map[string]any{
		"total_users":                 len(list),
		"total_fingerprint_templates": totalTemplates,
		"users":                       list,
	})
}

// POST /esp32/users/usersync — device pushes its whole local user store;
// unknown users are added, known ids skipped, slot conflicts reported per
// candidate without failing the batch.
func (h *UserHandler) BulkSync(c echo.Context) error {
	var req struct {
		Users []store.BulkCandidate `json:"users" validate:"required,dive"`
	}
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return badRequest(c, err.Error())
	}

	result, err := h.Users.BulkEnroll(req.Users)
	if err != nil {
		return fail(c, err)
	}

	return c.JSON(http.StatusOK, map[string]any{
		"success":                true,
		"message":                fmt.Sprintf("Sync complete: %d new users added", result.Added),
		"total_received":         result.TotalReceived,
		"new_users_added":        result.Added,
		"existing_users_skipped": result.Skipped,
		"errors":                 len(result.Errors),
		"error_details":          result.Errors,
	})
}

// DELETE /esp32/users/sync-delete — full-replace reconciliation: any user
// missing from the device's list is removed along with its attendance
// history. An empty list is rejected, never read as "delete everyone".
func (h *UserHandler) SyncDelete(c echo.Context) error {
	var req struct {
		Users []sdUser `json:"users"`
	}
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid payload")
	}

	ids := make([]int, len(req.Users))
	for i, u := range req.Users {
		ids[i] = u.ID
	}

	result, err := h.Users.Reconcile(ids)
	if err != nil {
		return fail(c, err)
	}

	return c.JSON(http.StatusOK, map[string]any{
		"success":                 true,
		"message":                 "Database reconciled successfully with device storage",
		"total_db_users":          result.TotalDBUsers,
		"total_sd_users":          result.TotalDeviceUsers,
		"users_deleted":           result.UsersDeleted,
		"attendance_logs_deleted": result.AttendanceDeleted,
	})
}
