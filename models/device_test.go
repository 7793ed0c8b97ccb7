package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDeviceStatusInfo(t *testing.T) {
	threshold := 120 * time.Second
	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name       string
		lastSeen   time.Time
		status     string
		wantOnline bool
	}{
		{"fresh heartbeat", base.Add(-30 * time.Second), "Online", true},
		{"exactly at threshold", base.Add(-threshold), "Online", true},
		{"just past threshold", base.Add(-threshold - time.Second), "Online", false},
		{"stale", base.Add(-time.Hour), "Online", false},
		// The stored status string never gates liveness; only the window does.
		{"fresh with odd status", base.Add(-10 * time.Second), "rebooting", true},
		{"fresh with offline status", base.Add(-10 * time.Second), "Offline", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := Device{DeviceID: "ESP32_MAIN", Status: tt.status, LastSeen: tt.lastSeen}
			info := d.StatusInfo(base, threshold)

			assert.Equal(t, tt.wantOnline, info.IsOnline)
			if tt.wantOnline {
				assert.Equal(t, "Online", info.Status)
			} else {
				assert.Equal(t, "Offline", info.Status)
			}
			assert.Equal(t, int(base.Sub(tt.lastSeen).Seconds()), info.LastSeenSecondsAgo)
		})
	}
}
