package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/Wasi-Muzammil/Biometric-Attendance-System/store"
)

func badRequest(c echo.Context, msg string) error {
	return c.JSON(http.StatusBadRequest, map[string]any{"success": false, "message": msg})
}

func notFound(c echo.Context, msg string) error {
	return c.JSON(http.StatusNotFound, map[string]any{"success": false, "message": msg})
}

func conflict(c echo.Context, msg string) error {
	return c.JSON(http.StatusConflict, map[string]any{"success": false, "message": msg})
}

// fail maps store errors onto responses: business failures become 4xx with
// success=false, anything else is a storage failure (already rolled back) and
// surfaces as 500.
func fail(c echo.Context, err error) error {
	var slotConflict *store.SlotConflictError
	var slotMismatch *store.SlotMismatchError

	switch {
	case errors.Is(err, store.ErrUserNotFound),
		errors.Is(err, store.ErrRecordNotFound),
		errors.Is(err, store.ErrDeviceNotFound):
		return notFound(c, err.Error())
	case errors.Is(err, store.ErrDuplicateUser):
		return conflict(c, err.Error())
	case errors.Is(err, store.ErrEmptySnapshot):
		return badRequest(c, err.Error())
	case errors.As(err, &slotConflict), errors.As(err, &slotMismatch):
		return conflict(c, err.Error())
	}
	return c.JSON(http.StatusInternalServerError, map[string]any{
		"success": false,
		"message": "Database error: " + err.Error(),
	})
}

func pathInt(c echo.Context, name string) (int, error) {
	n, err := strconv.Atoi(c.Param(name))
	if err != nil {
		return 0, err
	}
	return n, nil
}
