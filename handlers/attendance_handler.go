package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/Wasi-Muzammil/Biometric-Attendance-System/store"
)

type AttendanceHandler struct {
	Attendance *store.AttendanceStore
}

func NewAttendanceHandler(att *store.AttendanceStore) *AttendanceHandler {
	return &AttendanceHandler{Attendance: att}
}

type attendanceLogRequest struct {
	Name  string  `json:"name" validate:"required"`
	ID    int     `json:"id" validate:"required,gt=0"`
	Slots []int64 `json:"slot_id" validate:"required,min=1,dive,gt=0"`
	Date  string  `json:"date" validate:"required"`
	Time  string  `json:"time" validate:"required"`
}

func (r attendanceLogRequest) event() store.AttendanceEvent {
	return store.AttendanceEvent{
		Name:   r.Name,
		UserID: r.ID,
		Slots:  r.Slots,
		Date:   r.Date,
		Time:   r.Time,
	}
}

// POST /esp32/attendance — one scan. First scan of the day checks in, every
// later scan re-stamps the checkout time.
func (h *AttendanceHandler) Log(c echo.Context) error {
	var req attendanceLogRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return badRequest(c, err.Error())
	}

	action, rec, err := h.Attendance.Log(req.event())
	if err != nil {
		return fail(c, err)
	}

	msg := fmt.Sprintf("%s checked in successfully", req.Name)
	if action == store.ActionCheckedOut {
		msg = fmt.Sprintf("Check-out time updated for %s", req.Name)
	}

	return c.JSON(http.StatusOK, map[string]any{
		"success":           true,
		"message":           msg,
		"action":            action,
		"attendance_record": rec,
	})
}

// POST /esp32/attendance/bulk — replay of a device's stored logs; net effect
// is identical to posting them one at a time in order.
func (h *AttendanceHandler) LogBulk(c echo.Context) error {
	var req struct {
		Logs []attendanceLogRequest `json:"logs" validate:"dive"`
	}
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return badRequest(c, err.Error())
	}

	if len(req.Logs) == 0 {
		return c.JSON(http.StatusOK, map[string]any{
			"success":   true,
			"message":   "No logs received",
			"processed": 0,
		})
	}

	events := make([]store.AttendanceEvent, len(req.Logs))
	for i, l := range req.Logs {
		events[i] = l.event()
	}

	created, updated, err := h.Attendance.LogBulk(events)
	if err != nil {
		return fail(c, err)
	}

	return c.JSON(http.StatusOK, map[string]any{
		"success":         true,
		"message":         "Bulk attendance processed successfully",
		"total_logs":      len(events),
		"created_records": created,
		"updated_records": updated,
	})
}

// GET /esp32/attendance/:user_id/:date
func (h *AttendanceHandler) GetByUserDate(c echo.Context) error {
	userID, err := pathInt(c, "user_id")
	if err != nil {
		return badRequest(c, "invalid user id")
	}
	date := c.Param("date")

	rec, err := h.Attendance.Get(userID, date)
	if err != nil {
		if errors.Is(err, store.ErrRecordNotFound) {
			return notFound(c, fmt.Sprintf("No attendance record found for user %d on %s", userID, date))
		}
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, map[string]any{"success": true, "record": rec})
}

// GET /esp32/attendance/date/:date — day roster ordered by check-in time.
func (h *AttendanceHandler) ListByDate(c echo.Context) error {
	date := c.Param("date")

	recs, err := h.Attendance.ListByDate(date)
	if err != nil {
		return fail(c, err)
	}

	present := 0
	for _, r := range recs {
		if r.IsPresent {
			present++
		}
	}

	return c.JSON(http.StatusOK, map[string]any{
		"date":          date,
		"total_records": len(recs),
		"present_count": present,
		"absent_count":  len(recs) - present,
		"records":       recs,
	})
}

// GET /esp32/attendance/range?start=...&end=... — lexicographic string range
// on the opaque date key; callers must use a sortable date format.
func (h *AttendanceHandler) ListRange(c echo.Context) error {
	start := strings.TrimSpace(c.QueryParam("start"))
	end := strings.TrimSpace(c.QueryParam("end"))
	if start == "" || end == "" {
		return badRequest(c, "start and end are required")
	}

	recs, err := h.Attendance.ListRange(start, end)
	if err != nil {
		return fail(c, err)
	}

	return c.JSON(http.StatusOK, map[string]any{
		"start":         start,
		"end":           end,
		"total_records": len(recs),
		"records":       recs,
	})
}
