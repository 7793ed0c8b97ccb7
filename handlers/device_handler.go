package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Wasi-Muzammil/Biometric-Attendance-System/store"
)

type DeviceHandler struct {
	Devices *store.DeviceStore
}

func NewDeviceHandler(devices *store.DeviceStore) *DeviceHandler {
	return &DeviceHandler{Devices: devices}
}

type statusUpdateRequest struct {
	DeviceID string `json:"device_id"`
	Status   string `json:"status" validate:"required"`
}

// POST /esp32/status — heartbeat, sent every ~30s while the reader is up.
// The payload status is ignored for liveness; offline is inferred from
// staleness, never reported.
func (h *DeviceHandler) UpdateStatus(c echo.Context) error {
	var req statusUpdateRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return badRequest(c, err.Error())
	}
	if req.DeviceID == "" {
		req.DeviceID = "ESP32_MAIN"
	}

	dev, err := h.Devices.Heartbeat(req.DeviceID)
	if err != nil {
		return fail(c, err)
	}

	return c.JSON(http.StatusOK, map[string]any{
		"success":               true,
		"message":               "Status updated successfully",
		"device_id":             dev.DeviceID,
		"status":                dev.Status,
		"last_seen":             dev.LastSeen,
		"last_seen_seconds_ago": 0,
		"is_online":             true,
	})
}

// GET /esp32/status/:device_id
func (h *DeviceHandler) GetStatus(c echo.Context) error {
	deviceID := c.Param("device_id")

	status, err := h.Devices.Status(deviceID)
	if err != nil {
		if errors.Is(err, store.ErrDeviceNotFound) {
			return notFound(c, fmt.Sprintf("Device '%s' not found", deviceID))
		}
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, status)
}

// GET /esp32/status — fleet view with derived online/offline counts.
func (h *DeviceHandler) ListStatus(c echo.Context) error {
	statuses, online, offline, err := h.Devices.StatusAll()
	if err != nil {
		return fail(c, err)
	}

	return c.JSON(http.StatusOK, map[string]any{
		"total_devices":   len(statuses),
		"online_devices":  online,
		"offline_devices": offline,
		"devices":         statuses,
	})
}
