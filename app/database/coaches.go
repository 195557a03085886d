package database

import (
	"database/sql"
	"fmt"

	"apex-academy/app/models"
)

// CreateCoach inserts a coach and fills in generated fields.
func CreateCoach(db *sql.DB, coach *models.Coach) error {
	err := db.QueryRow(`
		INSERT INTO coaches (user_id, first_name, last_name, phone, specialty, branch_id)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, is_active, created_at, updated_at
	`, coach.UserID, coach.FirstName, coach.LastName, coach.Phone, coach.Specialty, coach.BranchID).Scan(
		&coach.ID, &coach.IsActive, &coach.CreatedAt, &coach.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create coach: %v", err)
	}
	return nil
}

// SearchCoachesWithPagination returns a page of active coaches plus the total
// count. An empty search term matches everything; branchID narrows to one
// branch when non-empty.
func SearchCoachesWithPagination(db *sql.DB, searchTerm, branchID string, limit, offset int) ([]models.Coach, int, error) {
	searchPattern := "%" + searchTerm + "%"

	countQuery := `
		SELECT COUNT(*)
		FROM coaches c
		WHERE c.is_active = true AND c.deleted_at IS NULL
		AND (LOWER(c.first_name) LIKE LOWER($1) OR LOWER(c.last_name) LIKE LOWER($1)
			OR LOWER(c.first_name || ' ' || c.last_name) LIKE LOWER($1)
			OR LOWER(c.specialty) LIKE LOWER($1))
		AND ($2 = '' OR c.branch_id::text = $2)
	`
	var total int
	if err := db.QueryRow(countQuery, searchPattern, branchID).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count coaches: %v", err)
	}

	query := `
		SELECT c.id, c.user_id, c.first_name, c.last_name, c.phone, c.specialty,
			c.branch_id, COALESCE(b.name, ''), c.is_active, c.created_at, c.updated_at
		FROM coaches c
		LEFT JOIN branches b ON b.id = c.branch_id
		WHERE c.is_active = true AND c.deleted_at IS NULL
		AND (LOWER(c.first_name) LIKE LOWER($1) OR LOWER(c.last_name) LIKE LOWER($1)
			OR LOWER(c.first_name || ' ' || c.last_name) LIKE LOWER($1)
			OR LOWER(c.specialty) LIKE LOWER($1))
		AND ($2 = '' OR c.branch_id::text = $2)
		ORDER BY c.first_name, c.last_name
		LIMIT $3 OFFSET $4
	`
	rows, err := db.Query(query, searchPattern, branchID, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to search coaches: %v", err)
	}
	defer rows.Close()

	var coaches []models.Coach
	for rows.Next() {
		var c models.Coach
		err := rows.Scan(
			&c.ID, &c.UserID, &c.FirstName, &c.LastName, &c.Phone, &c.Specialty,
			&c.BranchID, &c.BranchName, &c.IsActive, &c.CreatedAt, &c.UpdatedAt,
		)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan coach: %v", err)
		}
		coaches = append(coaches, c)
	}
	return coaches, total, rows.Err()
}

// GetCoachByID returns a single active coach with its branch name.
func GetCoachByID(db *sql.DB, id string) (*models.Coach, error) {
	coach := &models.Coach{}
	err := db.QueryRow(`
		SELECT c.id, c.user_id, c.first_name, c.last_name, c.phone, c.specialty,
			c.branch_id, COALESCE(b.name, ''), c.is_active, c.created_at, c.updated_at
		FROM coaches c
		LEFT JOIN branches b ON b.id = c.branch_id
		WHERE c.id = $1 AND c.is_active = true AND c.deleted_at IS NULL
	`, id).Scan(
		&coach.ID, &coach.UserID, &coach.FirstName, &coach.LastName, &coach.Phone,
		&coach.Specialty, &coach.BranchID, &coach.BranchName, &coach.IsActive,
		&coach.CreatedAt, &coach.UpdatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get coach: %v", err)
	}
	return coach, nil
}

// GetCoachByUserID returns the coach profile linked to a login user, if any.
func GetCoachByUserID(db *sql.DB, userID string) (*models.Coach, error) {
	coach := &models.Coach{}
	err := db.QueryRow(`
		SELECT c.id, c.user_id, c.first_name, c.last_name, c.phone, c.specialty,
			c.branch_id, COALESCE(b.name, ''), c.is_active, c.created_at, c.updated_at
		FROM coaches c
		LEFT JOIN branches b ON b.id = c.branch_id
		WHERE c.user_id = $1 AND c.is_active = true AND c.deleted_at IS NULL
	`, userID).Scan(
		&coach.ID, &coach.UserID, &coach.FirstName, &coach.LastName, &coach.Phone,
		&coach.Specialty, &coach.BranchID, &coach.BranchName, &coach.IsActive,
		&coach.CreatedAt, &coach.UpdatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get coach by user: %v", err)
	}
	return coach, nil
}

// UpdateCoach updates the editable fields of a coach.
func UpdateCoach(db *sql.DB, coach *models.Coach) error {
	result, err := db.Exec(`
		UPDATE coaches
		SET first_name = $1, last_name = $2, phone = $3, specialty = $4, branch_id = $5, updated_at = NOW()
		WHERE id = $6 AND is_active = true AND deleted_at IS NULL
	`, coach.FirstName, coach.LastName, coach.Phone, coach.Specialty, coach.BranchID, coach.ID)
	if err != nil {
		return fmt.Errorf("failed to update coach: %v", err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %v", err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("coach not found")
	}
	return nil
}

// DeleteCoach soft-deletes a coach. Scheduled sessions keep their coach_id so
// history stays intact.
func DeleteCoach(db *sql.DB, id string) error {
	result, err := db.Exec(`
		UPDATE coaches
		SET is_active = false, deleted_at = NOW(), updated_at = NOW()
		WHERE id = $1 AND is_active = true
	`, id)
	if err != nil {
		return fmt.Errorf("failed to delete coach: %v", err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %v", err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("coach not found")
	}
	return nil
}
