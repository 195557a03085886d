package database

import (
	"database/sql"
	"fmt"
	"time"

	"apex-academy/app/models"
)

// GetSessionRoster returns the attendance records for a session together with
// the player details the roster screen shows.
func GetSessionRoster(db *sql.DB, sessionID string) ([]models.RosterEntry, error) {
	rows, err := db.Query(`
		SELECT ar.id, ar.session_id, ar.player_id, ar.status, ar.marked_at, ar.marked_by,
			ar.session_duration, ar.package_cycle, ar.created_at, ar.updated_at,
			p.first_name || ' ' || p.last_name AS player_name,
			p.package_type, p.remaining_sessions
		FROM attendance_records ar
		JOIN players p ON p.id = ar.player_id
		WHERE ar.session_id = $1
		ORDER BY p.first_name, p.last_name
	`, sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to get session roster: %v", err)
	}
	defer rows.Close()

	var roster []models.RosterEntry
	for rows.Next() {
		var e models.RosterEntry
		err := rows.Scan(
			&e.ID, &e.SessionID, &e.PlayerID, &e.Status, &e.MarkedAt, &e.MarkedBy,
			&e.SessionDuration, &e.PackageCycle, &e.CreatedAt, &e.UpdatedAt,
			&e.PlayerName, &e.PackageType, &e.RemainingSessions,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan roster entry: %v", err)
		}
		roster = append(roster, e)
	}
	return roster, rows.Err()
}

// GetAttendanceRecordByID returns one attendance record.
func GetAttendanceRecordByID(db *sql.DB, id string) (*models.AttendanceRecord, error) {
	record := &models.AttendanceRecord{}
	err := db.QueryRow(`
		SELECT id, session_id, player_id, status, marked_at, marked_by,
			session_duration, package_cycle, created_at, updated_at
		FROM attendance_records
		WHERE id = $1
	`, id).Scan(
		&record.ID, &record.SessionID, &record.PlayerID, &record.Status,
		&record.MarkedAt, &record.MarkedBy, &record.SessionDuration,
		&record.PackageCycle, &record.CreatedAt, &record.UpdatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get attendance record: %v", err)
	}
	return record, nil
}

// GetAttendanceForExport returns attendance rows in a date range, optionally
// narrowed to one branch, in the flat shape the export files use.
func GetAttendanceForExport(db *sql.DB, from, to time.Time, branchID string) ([]models.AttendanceExportRow, error) {
	rows, err := db.Query(`
		SELECT s.date, s.start_time, s.end_time,
			COALESCE(b.name, ''), COALESCE(c.first_name || ' ' || c.last_name, ''),
			p.first_name || ' ' || p.last_name, p.package_type,
			ar.status, ar.session_duration, ar.package_cycle, ar.marked_at
		FROM attendance_records ar
		JOIN training_sessions s ON s.id = ar.session_id
		JOIN players p ON p.id = ar.player_id
		LEFT JOIN branches b ON b.id = s.branch_id
		LEFT JOIN coaches c ON c.id = s.coach_id
		WHERE s.deleted_at IS NULL
		AND s.date >= $1 AND s.date <= $2
		AND ($3 = '' OR s.branch_id::text = $3)
		ORDER BY s.date, s.start_time, p.first_name, p.last_name
	`, from, to, branchID)
	if err != nil {
		return nil, fmt.Errorf("failed to get attendance for export: %v", err)
	}
	defer rows.Close()

	var out []models.AttendanceExportRow
	for rows.Next() {
		var r models.AttendanceExportRow
		err := rows.Scan(
			&r.SessionDate, &r.StartTime, &r.EndTime, &r.BranchName, &r.CoachName,
			&r.PlayerName, &r.PackageType, &r.Status, &r.Duration, &r.Cycle, &r.MarkedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan export row: %v", err)
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

// GetPlayerAttendance returns a player's attendance trail, newest session
// first, with the session details each row needs. Status and date filters are
// optional; empty/nil means no filter.
func GetPlayerAttendance(db *sql.DB, playerID, status string, dateFrom, dateTo *time.Time, limit, offset int) ([]models.AttendanceHistoryEntry, int, error) {
	var total int
	err := db.QueryRow(`
		SELECT COUNT(*)
		FROM attendance_records ar
		JOIN training_sessions s ON s.id = ar.session_id
		WHERE ar.player_id = $1 AND s.deleted_at IS NULL
			AND ($2 = '' OR ar.status::text = $2)
			AND ($3::date IS NULL OR s.date >= $3)
			AND ($4::date IS NULL OR s.date <= $4)
	`, playerID, status, dateFrom, dateTo).Scan(&total)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count attendance: %v", err)
	}

	rows, err := db.Query(`
		SELECT ar.id, ar.session_id, ar.player_id, ar.status, ar.marked_at, ar.marked_by,
			ar.session_duration, ar.package_cycle, ar.created_at, ar.updated_at,
			s.date, s.start_time, s.end_time,
			COALESCE(b.name, ''), COALESCE(c.first_name || ' ' || c.last_name, '')
		FROM attendance_records ar
		JOIN training_sessions s ON s.id = ar.session_id
		LEFT JOIN branches b ON b.id = s.branch_id
		LEFT JOIN coaches c ON c.id = s.coach_id
		WHERE ar.player_id = $1 AND s.deleted_at IS NULL
			AND ($2 = '' OR ar.status::text = $2)
			AND ($3::date IS NULL OR s.date >= $3)
			AND ($4::date IS NULL OR s.date <= $4)
		ORDER BY s.date DESC, s.start_time DESC
		LIMIT $5 OFFSET $6
	`, playerID, status, dateFrom, dateTo, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to get player attendance: %v", err)
	}
	defer rows.Close()

	var entries []models.AttendanceHistoryEntry
	for rows.Next() {
		var e models.AttendanceHistoryEntry
		err := rows.Scan(
			&e.ID, &e.SessionID, &e.PlayerID, &e.Status, &e.MarkedAt, &e.MarkedBy,
			&e.SessionDuration, &e.PackageCycle, &e.CreatedAt, &e.UpdatedAt,
			&e.SessionDate, &e.StartTime, &e.EndTime, &e.BranchName, &e.CoachName,
		)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan attendance entry: %v", err)
		}
		entries = append(entries, e)
	}
	return entries, total, rows.Err()
}
