package database

import (
	"database/sql"
	"fmt"
	"time"

	"apex-academy/app/models"
)

// CreateSession inserts a training session.
func CreateSession(db *sql.DB, session *models.TrainingSession) error {
	err := db.QueryRow(`
		INSERT INTO training_sessions (date, start_time, end_time, branch_id, coach_id, package_type, notes)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, status, created_at, updated_at
	`, session.Date, session.StartTime, session.EndTime, session.BranchID,
		session.CoachID, session.PackageType, session.Notes).Scan(
		&session.ID, &session.Status, &session.CreatedAt, &session.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create session: %v", err)
	}
	return nil
}

// FindSessionConflict looks for a non-cancelled session that overlaps the
// given window on the same date, either for the same coach or at the same
// branch. Returns nil when the slot is free. excludeID skips the session
// being updated.
func FindSessionConflict(db *sql.DB, date time.Time, startTime, endTime, branchID string, coachID *string, excludeID string) (*models.SessionConflict, error) {
	query := `
		SELECT s.id, s.date, s.start_time, s.end_time,
			COALESCE(b.name, ''), COALESCE(c.first_name || ' ' || c.last_name, '')
		FROM training_sessions s
		LEFT JOIN branches b ON b.id = s.branch_id
		LEFT JOIN coaches c ON c.id = s.coach_id
		WHERE s.date = $1
		AND s.status != 'cancelled'
		AND s.deleted_at IS NULL
		AND (s.branch_id = $2 OR ($3::uuid IS NOT NULL AND s.coach_id = $3))
		AND (
			(s.start_time <= $4 AND s.end_time > $4) OR
			(s.start_time < $5 AND s.end_time >= $5) OR
			(s.start_time >= $4 AND s.end_time <= $5)
		)
		AND ($6 = '' OR s.id::text != $6)
		LIMIT 1
	`
	conflict := &models.SessionConflict{}
	err := db.QueryRow(query, date, branchID, coachID, startTime, endTime, excludeID).Scan(
		&conflict.SessionID, &conflict.Date, &conflict.StartTime, &conflict.EndTime,
		&conflict.BranchName, &conflict.CoachName,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to check session conflict: %v", err)
	}
	return conflict, nil
}

// SearchSessionsWithPagination returns a page of sessions plus the total
// count, filtered by branch, coach, status and date range. Each session
// carries its participant and present counts.
func SearchSessionsWithPagination(db *sql.DB, branchID, coachID, status string, dateFrom, dateTo *time.Time, limit, offset int) ([]models.TrainingSession, int, error) {
	countQuery := `
		SELECT COUNT(*)
		FROM training_sessions s
		WHERE s.deleted_at IS NULL
		AND ($1 = '' OR s.branch_id::text = $1)
		AND ($2 = '' OR s.coach_id::text = $2)
		AND ($3 = '' OR s.status = $3)
		AND ($4::date IS NULL OR s.date >= $4)
		AND ($5::date IS NULL OR s.date <= $5)
	`
	var total int
	if err := db.QueryRow(countQuery, branchID, coachID, status, dateFrom, dateTo).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count sessions: %v", err)
	}

	query := `
		SELECT s.id, s.date, s.start_time, s.end_time, s.branch_id, s.coach_id,
			s.package_type, s.status, s.notes, s.created_at, s.updated_at,
			COALESCE(b.name, ''), COALESCE(c.first_name || ' ' || c.last_name, ''),
			COUNT(ar.id) AS participant_count,
			COUNT(CASE WHEN ar.status = 'present' THEN 1 END) AS present_count
		FROM training_sessions s
		LEFT JOIN branches b ON b.id = s.branch_id
		LEFT JOIN coaches c ON c.id = s.coach_id
		LEFT JOIN attendance_records ar ON ar.session_id = s.id
		WHERE s.deleted_at IS NULL
		AND ($1 = '' OR s.branch_id::text = $1)
		AND ($2 = '' OR s.coach_id::text = $2)
		AND ($3 = '' OR s.status = $3)
		AND ($4::date IS NULL OR s.date >= $4)
		AND ($5::date IS NULL OR s.date <= $5)
		GROUP BY s.id, b.name, c.first_name, c.last_name
		ORDER BY s.date DESC, s.start_time DESC
		LIMIT $6 OFFSET $7
	`
	rows, err := db.Query(query, branchID, coachID, status, dateFrom, dateTo, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to search sessions: %v", err)
	}
	defer rows.Close()

	var sessions []models.TrainingSession
	for rows.Next() {
		var s models.TrainingSession
		err := rows.Scan(
			&s.ID, &s.Date, &s.StartTime, &s.EndTime, &s.BranchID, &s.CoachID,
			&s.PackageType, &s.Status, &s.Notes, &s.CreatedAt, &s.UpdatedAt,
			&s.BranchName, &s.CoachName, &s.ParticipantCount, &s.PresentCount,
		)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan session: %v", err)
		}
		sessions = append(sessions, s)
	}
	return sessions, total, rows.Err()
}

// GetSessionByID returns a single session with branch/coach names and
// participant counts.
func GetSessionByID(db *sql.DB, id string) (*models.TrainingSession, error) {
	session := &models.TrainingSession{}
	err := db.QueryRow(`
		SELECT s.id, s.date, s.start_time, s.end_time, s.branch_id, s.coach_id,
			s.package_type, s.status, s.notes, s.created_at, s.updated_at,
			COALESCE(b.name, ''), COALESCE(c.first_name || ' ' || c.last_name, ''),
			COUNT(ar.id) AS participant_count,
			COUNT(CASE WHEN ar.status = 'present' THEN 1 END) AS present_count
		FROM training_sessions s
		LEFT JOIN branches b ON b.id = s.branch_id
		LEFT JOIN coaches c ON c.id = s.coach_id
		LEFT JOIN attendance_records ar ON ar.session_id = s.id
		WHERE s.id = $1 AND s.deleted_at IS NULL
		GROUP BY s.id, b.name, c.first_name, c.last_name
	`, id).Scan(
		&session.ID, &session.Date, &session.StartTime, &session.EndTime,
		&session.BranchID, &session.CoachID, &session.PackageType, &session.Status,
		&session.Notes, &session.CreatedAt, &session.UpdatedAt,
		&session.BranchName, &session.CoachName,
		&session.ParticipantCount, &session.PresentCount,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get session: %v", err)
	}
	return session, nil
}

// UpdateSession updates the editable fields of a scheduled session.
func UpdateSession(db *sql.DB, session *models.TrainingSession) error {
	result, err := db.Exec(`
		UPDATE training_sessions
		SET date = $1, start_time = $2, end_time = $3, branch_id = $4,
			coach_id = $5, package_type = $6, notes = $7, updated_at = NOW()
		WHERE id = $8 AND status = 'scheduled' AND deleted_at IS NULL
	`, session.Date, session.StartTime, session.EndTime, session.BranchID,
		session.CoachID, session.PackageType, session.Notes, session.ID)
	if err != nil {
		return fmt.Errorf("failed to update session: %v", err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %v", err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("session not found or not editable")
	}
	return nil
}

// SetSessionStatus moves a session between scheduled/completed/cancelled.
func SetSessionStatus(db *sql.DB, id string, status models.SessionStatus) error {
	result, err := db.Exec(`
		UPDATE training_sessions
		SET status = $1, updated_at = NOW()
		WHERE id = $2 AND deleted_at IS NULL
	`, status, id)
	if err != nil {
		return fmt.Errorf("failed to update session status: %v", err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %v", err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("session not found")
	}
	return nil
}

// DeleteSession soft-deletes a session and removes its pending attendance
// rows. Sessions with marked attendance keep their records.
func DeleteSession(db *sql.DB, id string) error {
	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %v", err)
	}
	defer tx.Rollback()

	result, err := tx.Exec(`
		UPDATE training_sessions
		SET deleted_at = NOW(), updated_at = NOW()
		WHERE id = $1 AND deleted_at IS NULL
	`, id)
	if err != nil {
		return fmt.Errorf("failed to delete session: %v", err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %v", err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("session not found")
	}

	_, err = tx.Exec(`
		DELETE FROM attendance_records
		WHERE session_id = $1 AND status = 'pending'
	`, id)
	if err != nil {
		return fmt.Errorf("failed to remove pending attendance: %v", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %v", err)
	}
	return nil
}

// AddParticipants creates pending attendance records for the given players.
// Players already attached to the session are skipped. Returns how many rows
// were actually created.
func AddParticipants(db *sql.DB, sessionID string, playerIDs []string) (int, error) {
	tx, err := db.Begin()
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %v", err)
	}
	defer tx.Rollback()

	added := 0
	for _, playerID := range playerIDs {
		result, err := tx.Exec(`
			INSERT INTO attendance_records (session_id, player_id, status)
			VALUES ($1, $2, 'pending')
			ON CONFLICT (session_id, player_id) DO NOTHING
		`, sessionID, playerID)
		if err != nil {
			return 0, fmt.Errorf("failed to add participant %s: %v", playerID, err)
		}
		rowsAffected, err := result.RowsAffected()
		if err != nil {
			return 0, fmt.Errorf("failed to get rows affected: %v", err)
		}
		added += int(rowsAffected)
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit transaction: %v", err)
	}
	return added, nil
}

// RemoveParticipant detaches a player from a session. Only pending records
// can be removed; marked attendance has already touched the player's balance.
func RemoveParticipant(db *sql.DB, sessionID, playerID string) error {
	result, err := db.Exec(`
		DELETE FROM attendance_records
		WHERE session_id = $1 AND player_id = $2 AND status = 'pending'
	`, sessionID, playerID)
	if err != nil {
		return fmt.Errorf("failed to remove participant: %v", err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %v", err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("participant not found or already marked")
	}
	return nil
}

// GetCalendarSessions returns the sessions between two dates for calendar
// rendering, optionally narrowed to one branch or coach.
func GetCalendarSessions(db *sql.DB, from, to time.Time, branchID, coachID string) ([]models.CalendarSession, error) {
	rows, err := db.Query(`
		SELECT s.id, s.date, s.start_time, s.end_time, s.branch_id,
			COALESCE(b.name, ''), COALESCE(c.first_name || ' ' || c.last_name, ''),
			s.package_type, s.status,
			COUNT(ar.id) AS participant_count
		FROM training_sessions s
		LEFT JOIN branches b ON b.id = s.branch_id
		LEFT JOIN coaches c ON c.id = s.coach_id
		LEFT JOIN attendance_records ar ON ar.session_id = s.id
		WHERE s.deleted_at IS NULL
		AND s.date >= $1 AND s.date <= $2
		AND ($3 = '' OR s.branch_id::text = $3)
		AND ($4 = '' OR s.coach_id::text = $4)
		GROUP BY s.id, b.name, c.first_name, c.last_name
		ORDER BY s.date, s.start_time
	`, from, to, branchID, coachID)
	if err != nil {
		return nil, fmt.Errorf("failed to get calendar sessions: %v", err)
	}
	defer rows.Close()

	var sessions []models.CalendarSession
	for rows.Next() {
		var s models.CalendarSession
		err := rows.Scan(
			&s.ID, &s.Date, &s.StartTime, &s.EndTime, &s.BranchID,
			&s.BranchName, &s.CoachName, &s.PackageType, &s.Status,
			&s.ParticipantCount,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan calendar session: %v", err)
		}
		sessions = append(sessions, s)
	}
	return sessions, rows.Err()
}

// CompletePastSessions marks scheduled sessions as completed once their date
// has passed, or once their end time (HH:MM, compared lexically) has gone by
// on the given day. Returns how many sessions were closed. The scheduler calls
// this near midnight so the session list does not accumulate stale scheduled
// rows.
func CompletePastSessions(db *sql.DB, today time.Time, cutoff string) (int64, error) {
	result, err := db.Exec(`
		UPDATE training_sessions
		SET status = 'completed', updated_at = NOW()
		WHERE status = 'scheduled' AND deleted_at IS NULL
			AND (date < $1 OR (date = $1 AND end_time <= $2))
	`, today, cutoff)
	if err != nil {
		return 0, fmt.Errorf("failed to complete past sessions: %v", err)
	}
	return result.RowsAffected()
}
