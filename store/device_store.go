package store

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/Wasi-Muzammil/Biometric-Attendance-System/models"
)

// DeviceStore tracks reader heartbeats. Liveness is computed on read from
// the heartbeat window; there is no background process flipping devices
// offline.
type DeviceStore struct {
	db        *gorm.DB
	threshold time.Duration
	now       func() time.Time
}

func NewDeviceStore(db *gorm.DB, threshold time.Duration) *DeviceStore {
	return &DeviceStore{db: db, threshold: threshold, now: time.Now}
}

// Heartbeat upserts the device row. The stored status is always "Online" —
// a device cannot report itself offline through this path, offline is purely
// inferred from staleness.
func (s *DeviceStore) Heartbeat(deviceID string) (*models.Device, error) {
	var dev models.Device
	err := s.db.Transaction(func(tx *gorm.DB) error {
		now := s.now()
		err := tx.Where("device_id = ?", deviceID).First(&dev).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			dev = models.Device{DeviceID: deviceID, Status: "Online", LastSeen: now}
			return tx.Create(&dev).Error
		}
		if err != nil {
			return err
		}
		dev.Status = "Online"
		dev.LastSeen = now
		return tx.Save(&dev).Error
	})
	if err != nil {
		return nil, err
	}
	return &dev, nil
}

func (s *DeviceStore) Status(deviceID string) (models.DeviceStatus, error) {
	var dev models.Device
	err := s.db.Where("device_id = ?", deviceID).First(&dev).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.DeviceStatus{}, ErrDeviceNotFound
	}
	if err != nil {
		return models.DeviceStatus{}, err
	}
	return dev.StatusInfo(s.now(), s.threshold), nil
}

// StatusAll returns every device newest-heartbeat-first with derived
// online/offline counts.
func (s *DeviceStore) StatusAll() ([]models.DeviceStatus, int, int, error) {
	var devices []models.Device
	if err := s.db.Order("last_seen DESC").Find(&devices).Error; err != nil {
		return nil, 0, 0, err
	}

	now := s.now()
	online := 0
	statuses := make([]models.DeviceStatus, len(devices))
	for i, dev := range devices {
		statuses[i] = dev.StatusInfo(now, s.threshold)
		if statuses[i].IsOnline {
			online++
		}
	}
	return statuses, online, len(devices) - online, nil
}
