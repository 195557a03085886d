package services

import (
	"bytes"
	"encoding/csv"
	"fmt"

	"github.com/xuri/excelize/v2"

	"apex-academy/app/models"
)

// ExportTable is a rendered export: a header row plus data rows, ready to be
// written as CSV or XLSX.
type ExportTable struct {
	Name   string
	Header []string
	Rows   [][]string
}

// CSV renders the table as a CSV file.
func (t ExportTable) CSV() ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write(t.Header); err != nil {
		return nil, fmt.Errorf("failed to write csv header: %v", err)
	}
	for _, row := range t.Rows {
		if err := w.Write(row); err != nil {
			return nil, fmt.Errorf("failed to write csv row: %v", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("failed to flush csv: %v", err)
	}
	return buf.Bytes(), nil
}

// XLSX renders the table as a single-sheet workbook.
func (t ExportTable) XLSX() ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	sheet := f.GetSheetName(0)
	if t.Name != "" {
		if err := f.SetSheetName(sheet, t.Name); err != nil {
			return nil, fmt.Errorf("failed to name sheet: %v", err)
		}
		sheet = t.Name
	}

	for col, h := range t.Header {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return nil, fmt.Errorf("failed to build cell name: %v", err)
		}
		if err := f.SetCellValue(sheet, cell, h); err != nil {
			return nil, fmt.Errorf("failed to write header cell: %v", err)
		}
	}
	for rowIdx, row := range t.Rows {
		for col, v := range row {
			cell, err := excelize.CoordinatesToCellName(col+1, rowIdx+2)
			if err != nil {
				return nil, fmt.Errorf("failed to build cell name: %v", err)
			}
			if err := f.SetCellValue(sheet, cell, v); err != nil {
				return nil, fmt.Errorf("failed to write cell: %v", err)
			}
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to write workbook: %v", err)
	}
	return buf.Bytes(), nil
}

// PlayersExportTable shapes the players list for download.
func PlayersExportTable(players []models.Player) ExportTable {
	t := ExportTable{
		Name:   "Players",
		Header: []string{"First Name", "Last Name", "Guardian", "Guardian Phone", "Branch", "Package", "Sessions", "Remaining", "Active"},
	}
	for _, p := range players {
		active := "yes"
		if !p.IsActive {
			active = "no"
		}
		t.Rows = append(t.Rows, []string{
			p.FirstName,
			p.LastName,
			p.GuardianName,
			p.GuardianPhone,
			p.BranchName,
			p.PackageType,
			p.Sessions.String(),
			p.RemainingSessions.String(),
			active,
		})
	}
	return t
}

// AttendanceExportTable shapes attendance rows for download.
func AttendanceExportTable(rows []models.AttendanceExportRow) ExportTable {
	t := ExportTable{
		Name:   "Attendance",
		Header: []string{"Date", "Start", "End", "Branch", "Coach", "Player", "Package", "Status", "Duration", "Cycle", "Marked At"},
	}
	for _, r := range rows {
		duration := ""
		if r.Duration.Valid {
			duration = r.Duration.Decimal.String()
		}
		cycle := ""
		if r.Cycle != nil {
			cycle = fmt.Sprintf("%d", *r.Cycle)
		}
		markedAt := ""
		if r.MarkedAt != nil {
			markedAt = r.MarkedAt.Format("2006-01-02 15:04")
		}
		t.Rows = append(t.Rows, []string{
			r.SessionDate.Format("2006-01-02"),
			r.StartTime,
			r.EndTime,
			r.BranchName,
			r.CoachName,
			r.PlayerName,
			r.PackageType,
			string(r.Status),
			duration,
			cycle,
			markedAt,
		})
	}
	return t
}

// PaymentsExportTable shapes the payments list for download.
func PaymentsExportTable(payments []models.Payment) ExportTable {
	t := ExportTable{
		Name:   "Payments",
		Header: []string{"Reference", "Player", "Amount", "Method", "Paid At", "Notes"},
	}
	for _, p := range payments {
		t.Rows = append(t.Rows, []string{
			p.Reference,
			p.PlayerName,
			p.Amount.StringFixed(2),
			string(p.Method),
			p.PaidAt.Format("2006-01-02 15:04"),
			p.Notes,
		})
	}
	return t
}
