package database

import (
	"database/sql"
	"fmt"

	"apex-academy/app/models"
)

// GetDashboardStats gathers the numbers for the dashboard landing page.
func GetDashboardStats(db *sql.DB) (*models.DashboardStats, error) {
	stats := &models.DashboardStats{}

	err := db.QueryRow(`
		SELECT COUNT(*) FROM players
		WHERE is_active = true AND deleted_at IS NULL
	`).Scan(&stats.ActivePlayers)
	if err != nil {
		return nil, fmt.Errorf("failed to count players: %v", err)
	}

	err = db.QueryRow(`
		SELECT COUNT(*) FROM coaches
		WHERE is_active = true AND deleted_at IS NULL
	`).Scan(&stats.ActiveCoaches)
	if err != nil {
		return nil, fmt.Errorf("failed to count coaches: %v", err)
	}

	err = db.QueryRow(`
		SELECT
			COUNT(CASE WHEN date = CURRENT_DATE THEN 1 END),
			COUNT(CASE WHEN date >= date_trunc('week', CURRENT_DATE) AND date < date_trunc('week', CURRENT_DATE) + INTERVAL '7 days' THEN 1 END)
		FROM training_sessions
		WHERE status != 'cancelled' AND deleted_at IS NULL
	`).Scan(&stats.SessionsToday, &stats.SessionsThisWeek)
	if err != nil {
		return nil, fmt.Errorf("failed to count sessions: %v", err)
	}

	err = db.QueryRow(`
		SELECT COUNT(*)
		FROM attendance_records ar
		JOIN training_sessions s ON s.id = ar.session_id
		WHERE ar.status = 'pending'
		AND s.date <= CURRENT_DATE
		AND s.status != 'cancelled'
		AND s.deleted_at IS NULL
	`).Scan(&stats.PendingAttendance)
	if err != nil {
		return nil, fmt.Errorf("failed to count pending attendance: %v", err)
	}

	err = db.QueryRow(`
		SELECT COUNT(*) FROM players
		WHERE is_active = true AND deleted_at IS NULL AND remaining_sessions < 1
	`).Scan(&stats.LowBalancePlayers)
	if err != nil {
		return nil, fmt.Errorf("failed to count low balance players: %v", err)
	}

	err = db.QueryRow(`
		SELECT COALESCE(SUM(amount), 0) FROM payments
		WHERE deleted_at IS NULL AND paid_at >= date_trunc('month', NOW())
	`).Scan(&stats.MonthlyRevenue)
	if err != nil {
		return nil, fmt.Errorf("failed to sum monthly revenue: %v", err)
	}

	branches, err := getBranchStats(db)
	if err != nil {
		return nil, err
	}
	stats.Branches = branches

	return stats, nil
}

func getBranchStats(db *sql.DB) ([]models.BranchStats, error) {
	rows, err := db.Query(`
		SELECT b.id, b.name,
			COUNT(DISTINCT p.id) AS players,
			COUNT(DISTINCT CASE WHEN s.date = CURRENT_DATE AND s.status != 'cancelled' THEN s.id END) AS sessions_today
		FROM branches b
		LEFT JOIN players p ON p.branch_id = b.id AND p.is_active = true AND p.deleted_at IS NULL
		LEFT JOIN training_sessions s ON s.branch_id = b.id AND s.deleted_at IS NULL
		WHERE b.is_active = true AND b.deleted_at IS NULL
		GROUP BY b.id, b.name
		ORDER BY b.name
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to get branch stats: %v", err)
	}
	defer rows.Close()

	var branches []models.BranchStats
	for rows.Next() {
		var b models.BranchStats
		if err := rows.Scan(&b.BranchID, &b.BranchName, &b.Players, &b.SessionsToday); err != nil {
			return nil, fmt.Errorf("failed to scan branch stats: %v", err)
		}
		branches = append(branches, b)
	}
	return branches, rows.Err()
}

// GetPlayerStats returns the header cards for the players screen.
func GetPlayerStats(db *sql.DB) (*models.PlayerStats, error) {
	stats := &models.PlayerStats{}
	err := db.QueryRow(`
		SELECT
			COUNT(*),
			COUNT(CASE WHEN is_active = true THEN 1 END),
			COUNT(CASE WHEN is_active = false THEN 1 END),
			COUNT(CASE WHEN is_active = true AND remaining_sessions < 1 THEN 1 END),
			COUNT(CASE WHEN is_active = true AND created_at >= date_trunc('month', NOW()) THEN 1 END)
		FROM players
		WHERE deleted_at IS NULL
	`).Scan(&stats.Total, &stats.Active, &stats.Inactive, &stats.LowBalance, &stats.NewThisMonth)
	if err != nil {
		return nil, fmt.Errorf("failed to get player stats: %v", err)
	}
	return stats, nil
}
