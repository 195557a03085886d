package sessions

import (
	"testing"
)

func TestParseSessionWindow(t *testing.T) {
	tests := []struct {
		name    string
		date    string
		start   string
		end     string
		wantErr bool
	}{
		{"valid window", "2025-03-10", "09:00", "10:30", false},
		{"end equals start", "2025-03-10", "09:00", "09:00", true},
		{"end before start", "2025-03-10", "17:00", "16:00", true},
		{"bad date format", "10-03-2025", "09:00", "10:00", true},
		{"unpadded hour", "2025-03-10", "9:00", "10:00", true},
		{"hour out of range", "2025-03-10", "09:00", "25:00", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			date, err := parseSessionWindow(tt.date, tt.start, tt.end)
			if (err != nil) != tt.wantErr {
				t.Fatalf("parseSessionWindow(%q, %q, %q) error = %v, wantErr %v",
					tt.date, tt.start, tt.end, err, tt.wantErr)
			}
			if !tt.wantErr && date.Format("2006-01-02") != tt.date {
				t.Errorf("parsed date = %s, want %s", date.Format("2006-01-02"), tt.date)
			}
		})
	}
}

func TestParseDateParam(t *testing.T) {
	t.Run("empty means no filter", func(t *testing.T) {
		got, err := parseDateParam("")
		if err != nil {
			t.Fatalf("parseDateParam(\"\") error = %v", err)
		}
		if got != nil {
			t.Errorf("parseDateParam(\"\") = %v, want nil", got)
		}
	})

	t.Run("valid date", func(t *testing.T) {
		got, err := parseDateParam("2025-03-10")
		if err != nil {
			t.Fatalf("parseDateParam() error = %v", err)
		}
		if got == nil || got.Format("2006-01-02") != "2025-03-10" {
			t.Errorf("parseDateParam() = %v, want 2025-03-10", got)
		}
	})

	t.Run("rejects other formats", func(t *testing.T) {
		if _, err := parseDateParam("03/10/2025"); err == nil {
			t.Error("parseDateParam() expected error for slash format")
		}
	})
}
