package database

import (
	"database/sql"
	"fmt"

	"apex-academy/app/models"
)

// CreatePlayer inserts a player and fills in generated fields.
func CreatePlayer(db *sql.DB, player *models.Player) error {
	err := db.QueryRow(`
		INSERT INTO players (first_name, last_name, gender, birth_date, guardian_name, guardian_phone, branch_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, sessions, remaining_sessions, is_active, created_at, updated_at
	`, player.FirstName, player.LastName, player.Gender, player.BirthDate,
		player.GuardianName, player.GuardianPhone, player.BranchID).Scan(
		&player.ID, &player.Sessions, &player.RemainingSessions,
		&player.IsActive, &player.CreatedAt, &player.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create player: %v", err)
	}
	return nil
}

// SearchPlayersWithPagination returns a page of active players plus the total
// count. Filters: search term on name/guardian, branch, and low balance
// (remaining credits below one full session).
func SearchPlayersWithPagination(db *sql.DB, searchTerm, branchID string, lowBalance bool, limit, offset int) ([]models.Player, int, error) {
	searchPattern := "%" + searchTerm + "%"

	countQuery := `
		SELECT COUNT(*)
		FROM players p
		WHERE p.is_active = true AND p.deleted_at IS NULL
		AND (LOWER(p.first_name) LIKE LOWER($1) OR LOWER(p.last_name) LIKE LOWER($1)
			OR LOWER(p.first_name || ' ' || p.last_name) LIKE LOWER($1)
			OR LOWER(p.guardian_name) LIKE LOWER($1))
		AND ($2 = '' OR p.branch_id::text = $2)
		AND ($3 = false OR p.remaining_sessions < 1)
	`
	var total int
	if err := db.QueryRow(countQuery, searchPattern, branchID, lowBalance).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count players: %v", err)
	}

	query := `
		SELECT p.id, p.first_name, p.last_name, p.gender, p.birth_date,
			p.guardian_name, p.guardian_phone, p.package_id, p.package_type,
			p.sessions, p.remaining_sessions, p.branch_id,
			COALESCE(b.name, ''), COALESCE(tp.name, ''),
			p.is_active, p.created_at, p.updated_at
		FROM players p
		LEFT JOIN branches b ON b.id = p.branch_id
		LEFT JOIN training_packages tp ON tp.id = p.package_id
		WHERE p.is_active = true AND p.deleted_at IS NULL
		AND (LOWER(p.first_name) LIKE LOWER($1) OR LOWER(p.last_name) LIKE LOWER($1)
			OR LOWER(p.first_name || ' ' || p.last_name) LIKE LOWER($1)
			OR LOWER(p.guardian_name) LIKE LOWER($1))
		AND ($2 = '' OR p.branch_id::text = $2)
		AND ($3 = false OR p.remaining_sessions < 1)
		ORDER BY p.first_name, p.last_name
		LIMIT $4 OFFSET $5
	`
	rows, err := db.Query(query, searchPattern, branchID, lowBalance, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to search players: %v", err)
	}
	defer rows.Close()

	var players []models.Player
	for rows.Next() {
		var p models.Player
		err := rows.Scan(
			&p.ID, &p.FirstName, &p.LastName, &p.Gender, &p.BirthDate,
			&p.GuardianName, &p.GuardianPhone, &p.PackageID, &p.PackageType,
			&p.Sessions, &p.RemainingSessions, &p.BranchID,
			&p.BranchName, &p.PackageName,
			&p.IsActive, &p.CreatedAt, &p.UpdatedAt,
		)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan player: %v", err)
		}
		players = append(players, p)
	}
	return players, total, rows.Err()
}

// GetPlayerByID returns a single active player with branch and package names.
func GetPlayerByID(db *sql.DB, id string) (*models.Player, error) {
	player := &models.Player{}
	err := db.QueryRow(`
		SELECT p.id, p.first_name, p.last_name, p.gender, p.birth_date,
			p.guardian_name, p.guardian_phone, p.package_id, p.package_type,
			p.sessions, p.remaining_sessions, p.branch_id,
			COALESCE(b.name, ''), COALESCE(tp.name, ''),
			p.is_active, p.created_at, p.updated_at
		FROM players p
		LEFT JOIN branches b ON b.id = p.branch_id
		LEFT JOIN training_packages tp ON tp.id = p.package_id
		WHERE p.id = $1 AND p.is_active = true AND p.deleted_at IS NULL
	`, id).Scan(
		&player.ID, &player.FirstName, &player.LastName, &player.Gender, &player.BirthDate,
		&player.GuardianName, &player.GuardianPhone, &player.PackageID, &player.PackageType,
		&player.Sessions, &player.RemainingSessions, &player.BranchID,
		&player.BranchName, &player.PackageName,
		&player.IsActive, &player.CreatedAt, &player.UpdatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get player: %v", err)
	}
	return player, nil
}

// UpdatePlayer updates the personal fields of a player. Package assignment and
// credit balances change only through AssignPackageToPlayer and the attendance
// accounting service.
func UpdatePlayer(db *sql.DB, player *models.Player) error {
	result, err := db.Exec(`
		UPDATE players
		SET first_name = $1, last_name = $2, gender = $3, birth_date = $4,
			guardian_name = $5, guardian_phone = $6, branch_id = $7, updated_at = NOW()
		WHERE id = $8 AND is_active = true AND deleted_at IS NULL
	`, player.FirstName, player.LastName, player.Gender, player.BirthDate,
		player.GuardianName, player.GuardianPhone, player.BranchID, player.ID)
	if err != nil {
		return fmt.Errorf("failed to update player: %v", err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %v", err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("player not found")
	}
	return nil
}

// DeletePlayer soft-deletes a player. Attendance and payment history rows are
// kept for reporting.
func DeletePlayer(db *sql.DB, id string) error {
	result, err := db.Exec(`
		UPDATE players
		SET is_active = false, deleted_at = NOW(), updated_at = NOW()
		WHERE id = $1 AND is_active = true
	`, id)
	if err != nil {
		return fmt.Errorf("failed to delete player: %v", err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %v", err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("player not found")
	}
	return nil
}
