package models

import "time"

// Device tracks the last heartbeat per reader. Offline is never reported by
// the device itself; it is inferred from LastSeen staleness on read.
type Device struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	DeviceID  string    `json:"device_id" gorm:"uniqueIndex;size:60;not null"`
	Status    string    `json:"status" gorm:"size:20;not null"`
	LastSeen  time.Time `json:"last_seen" gorm:"not null"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Device) TableName() string { return "device_status" }

// DeviceStatus is the derived view returned to clients.
type DeviceStatus struct {
	DeviceID           string    `json:"device_id"`
	Status             string    `json:"status"`
	LastSeen           time.Time `json:"last_seen"`
	LastSeenSecondsAgo int       `json:"last_seen_seconds_ago"`
	IsOnline           bool      `json:"is_online"`
}

// StatusInfo derives the online state from the heartbeat window alone. An
// earlier revision also required the stored status string to equal "online";
// that gate was dropped — staleness is the only signal.
func (d *Device) StatusInfo(now time.Time, threshold time.Duration) DeviceStatus {
	diff := now.Sub(d.LastSeen)
	online := diff <= threshold

	status := "Offline"
	if online {
		status = "Online"
	}

	return DeviceStatus{
		DeviceID:           d.DeviceID,
		Status:             status,
		LastSeen:           d.LastSeen,
		LastSeenSecondsAgo: int(diff.Seconds()),
		IsOnline:           online,
	}
}
