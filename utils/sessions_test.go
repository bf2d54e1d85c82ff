package utils_test

import (
	"testing"
	"time"

	"useradmin/models"
	"useradmin/utils"
)

func TestSessionExpired(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name      string
		expiresAt time.Time
		want      bool
	}{
		{
			name:      "Future expiry is valid",
			expiresAt: now.Add(30 * time.Minute),
			want:      false,
		},
		{
			name:      "Past expiry is expired",
			expiresAt: now.Add(-time.Second),
			want:      true,
		},
		{
			name:      "Expiry exactly now is expired",
			expiresAt: now,
			want:      true,
		},
		{
			name:      "Zero expiry is expired",
			expiresAt: time.Time{},
			want:      true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			session := models.Session{
				ID:        utils.GenerateSessionID(),
				Username:  "user@example.com",
				CreatedAt: now.Add(-time.Hour),
				ExpiresAt: tt.expiresAt,
			}
			if got := utils.SessionExpired(session, now); got != tt.want {
				t.Errorf("SessionExpired() = %v, want %v", got, tt.want)
			}
		})
	}
}
