package database

import (
	"database/sql"
	"fmt"

	"apex-academy/app/models"
)

// CreateBranch inserts a branch and fills in generated fields.
func CreateBranch(db *sql.DB, branch *models.Branch) error {
	err := db.QueryRow(`
		INSERT INTO branches (name, code, address, phone)
		VALUES ($1, $2, $3, $4)
		RETURNING id, is_active, created_at, updated_at
	`, branch.Name, branch.Code, branch.Address, branch.Phone).Scan(
		&branch.ID, &branch.IsActive, &branch.CreatedAt, &branch.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create branch: %v", err)
	}
	return nil
}

// GetAllBranches returns active branches with player and coach headcounts.
func GetAllBranches(db *sql.DB) ([]models.Branch, error) {
	rows, err := db.Query(`
		SELECT b.id, b.name, b.code, b.address, b.phone, b.is_active, b.created_at, b.updated_at,
			COUNT(DISTINCT p.id) AS player_count,
			COUNT(DISTINCT c.id) AS coach_count
		FROM branches b
		LEFT JOIN players p ON p.branch_id = b.id AND p.is_active = true AND p.deleted_at IS NULL
		LEFT JOIN coaches c ON c.branch_id = b.id AND c.is_active = true AND c.deleted_at IS NULL
		WHERE b.is_active = true AND b.deleted_at IS NULL
		GROUP BY b.id
		ORDER BY b.name
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to get branches: %v", err)
	}
	defer rows.Close()

	var branches []models.Branch
	for rows.Next() {
		var b models.Branch
		err := rows.Scan(
			&b.ID, &b.Name, &b.Code, &b.Address, &b.Phone, &b.IsActive,
			&b.CreatedAt, &b.UpdatedAt, &b.PlayerCount, &b.CoachCount,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan branch: %v", err)
		}
		branches = append(branches, b)
	}
	return branches, rows.Err()
}

// GetBranchByID returns a single active branch.
func GetBranchByID(db *sql.DB, id string) (*models.Branch, error) {
	branch := &models.Branch{}
	err := db.QueryRow(`
		SELECT id, name, code, address, phone, is_active, created_at, updated_at
		FROM branches
		WHERE id = $1 AND is_active = true AND deleted_at IS NULL
	`, id).Scan(
		&branch.ID, &branch.Name, &branch.Code, &branch.Address, &branch.Phone,
		&branch.IsActive, &branch.CreatedAt, &branch.UpdatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get branch: %v", err)
	}
	return branch, nil
}

// UpdateBranch updates the editable fields of a branch.
func UpdateBranch(db *sql.DB, branch *models.Branch) error {
	result, err := db.Exec(`
		UPDATE branches
		SET name = $1, code = $2, address = $3, phone = $4, updated_at = NOW()
		WHERE id = $5 AND is_active = true AND deleted_at IS NULL
	`, branch.Name, branch.Code, branch.Address, branch.Phone, branch.ID)
	if err != nil {
		return fmt.Errorf("failed to update branch: %v", err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %v", err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("branch not found")
	}
	return nil
}

// DeleteBranch soft-deletes a branch.
func DeleteBranch(db *sql.DB, id string) error {
	result, err := db.Exec(`
		UPDATE branches
		SET is_active = false, deleted_at = NOW(), updated_at = NOW()
		WHERE id = $1 AND is_active = true
	`, id)
	if err != nil {
		return fmt.Errorf("failed to delete branch: %v", err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %v", err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("branch not found")
	}
	return nil
}
