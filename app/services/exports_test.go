package services_test

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"apex-academy/app/models"
	"apex-academy/app/services"
)

func TestAttendanceExportTable(t *testing.T) {
	cycle := 2
	markedAt := time.Date(2025, 3, 10, 17, 5, 0, 0, time.UTC)

	rows := []models.AttendanceExportRow{
		{
			SessionDate: time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC),
			StartTime:   "17:00",
			EndTime:     "18:30",
			BranchName:  "Riverside",
			CoachName:   "Dan Otim",
			PlayerName:  "Asha Kintu",
			PackageType: "Personal Training",
			Status:      models.AttendancePresent,
			Duration:    nullDec("1.5"),
			Cycle:       &cycle,
			MarkedAt:    &markedAt,
		},
		{
			SessionDate: time.Date(2025, 3, 11, 0, 0, 0, 0, time.UTC),
			StartTime:   "09:00",
			EndTime:     "10:00",
			BranchName:  "Riverside",
			PlayerName:  "Ben Ssali",
			PackageType: "Group Training",
			Status:      models.AttendancePending,
		},
	}

	table := services.AttendanceExportTable(rows)

	if len(table.Rows) != 2 {
		t.Fatalf("rows = %d, want 2", len(table.Rows))
	}
	marked := table.Rows[0]
	if marked[8] != "1.5" {
		t.Errorf("duration cell = %q, want 1.5", marked[8])
	}
	if marked[9] != "2" {
		t.Errorf("cycle cell = %q, want 2", marked[9])
	}
	if marked[10] != "2025-03-10 17:05" {
		t.Errorf("marked at cell = %q, want 2025-03-10 17:05", marked[10])
	}

	pending := table.Rows[1]
	for i, col := range []int{8, 9, 10} {
		if pending[col] != "" {
			t.Errorf("pending row cell %d = %q, want empty", i, pending[col])
		}
	}
}

func TestExportTableCSV(t *testing.T) {
	table := services.ExportTable{
		Name:   "Payments",
		Header: []string{"Reference", "Amount"},
		Rows: [][]string{
			{"RCP-20250310-0001", "150.00"},
			{"RCP-20250310-0002", "80.50"},
		},
	}

	data, err := table.CSV()
	if err != nil {
		t.Fatalf("CSV() error = %v", err)
	}

	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	if len(lines) != 3 {
		t.Fatalf("lines = %d, want 3", len(lines))
	}
	if lines[0] != "Reference,Amount" {
		t.Errorf("header = %q", lines[0])
	}
	if lines[2] != "RCP-20250310-0002,80.50" {
		t.Errorf("last row = %q", lines[2])
	}
}

func TestExportTableXLSX(t *testing.T) {
	table := services.PlayersExportTable([]models.Player{
		{
			FirstName:         "Asha",
			LastName:          "Kintu",
			GuardianName:      "Grace Kintu",
			BranchName:        "Riverside",
			PackageType:       "Group Training",
			Sessions:          decimal.NewFromInt(10),
			RemainingSessions: decimal.RequireFromString("7.5"),
			IsActive:          true,
		},
	})

	data, err := table.XLSX()
	if err != nil {
		t.Fatalf("XLSX() error = %v", err)
	}
	if len(data) == 0 {
		t.Fatal("XLSX() returned no data")
	}
	// XLSX files are zip archives.
	if !bytes.HasPrefix(data, []byte("PK")) {
		t.Errorf("XLSX() did not return a zip archive")
	}
}
