package services_test

import (
	"testing"
	"time"

	"apex-academy/app/services"
)

func TestShouldRunNightlyClose(t *testing.T) {
	tests := []struct {
		name string
		at   time.Time
		want bool
	}{
		{"at 23:55", time.Date(2025, 3, 10, 23, 55, 12, 0, time.UTC), true},
		{"a minute early", time.Date(2025, 3, 10, 23, 54, 59, 0, time.UTC), false},
		{"a minute late", time.Date(2025, 3, 10, 23, 56, 0, 0, time.UTC), false},
		{"same minute in the morning", time.Date(2025, 3, 10, 11, 55, 0, 0, time.UTC), false},
		{"midnight", time.Date(2025, 3, 11, 0, 0, 0, 0, time.UTC), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := services.ShouldRunNightlyClose(tt.at); got != tt.want {
				t.Errorf("ShouldRunNightlyClose(%v) = %v, want %v", tt.at, got, tt.want)
			}
		})
	}
}
