package database

import (
	"database/sql"
	"fmt"

	"apex-academy/app/models"
)

// GetUserByEmail loads an active user together with their role names.
func GetUserByEmail(db *sql.DB, email string) (*models.User, error) {
	user := &models.User{}
	query := `
		SELECT id, email, password, first_name, last_name, phone, is_active, created_at, updated_at
		FROM users
		WHERE email = $1 AND is_active = true AND deleted_at IS NULL
	`
	err := db.QueryRow(query, email).Scan(
		&user.ID, &user.Email, &user.Password, &user.FirstName, &user.LastName,
		&user.Phone, &user.IsActive, &user.CreatedAt, &user.UpdatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get user by email: %v", err)
	}

	roles, err := getUserRoles(db, user.ID)
	if err != nil {
		return nil, err
	}
	user.Roles = roles
	return user, nil
}

// GetUserByID loads an active user together with their role names.
func GetUserByID(db *sql.DB, id string) (*models.User, error) {
	user := &models.User{}
	query := `
		SELECT id, email, password, first_name, last_name, phone, is_active, created_at, updated_at
		FROM users
		WHERE id = $1 AND is_active = true AND deleted_at IS NULL
	`
	err := db.QueryRow(query, id).Scan(
		&user.ID, &user.Email, &user.Password, &user.FirstName, &user.LastName,
		&user.Phone, &user.IsActive, &user.CreatedAt, &user.UpdatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get user by id: %v", err)
	}

	roles, err := getUserRoles(db, user.ID)
	if err != nil {
		return nil, err
	}
	user.Roles = roles
	return user, nil
}

func getUserRoles(db *sql.DB, userID string) ([]*models.Role, error) {
	rows, err := db.Query(`
		SELECT r.id, r.name
		FROM user_roles ur
		JOIN roles r ON r.id = ur.role_id
		WHERE ur.user_id = $1 AND r.is_active = true
		ORDER BY r.name
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get user roles: %v", err)
	}
	defer rows.Close()

	var roles []*models.Role
	for rows.Next() {
		role := &models.Role{}
		if err := rows.Scan(&role.ID, &role.Name); err != nil {
			return nil, fmt.Errorf("failed to scan role: %v", err)
		}
		roles = append(roles, role)
	}
	return roles, rows.Err()
}

// CreateUser inserts a user and assigns the given roles in one transaction.
func CreateUser(db *sql.DB, user *models.User, roleNames []string) error {
	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %v", err)
	}
	defer tx.Rollback()

	err = tx.QueryRow(`
		INSERT INTO users (email, password, first_name, last_name, phone)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at, updated_at
	`, user.Email, user.Password, user.FirstName, user.LastName, user.Phone).Scan(
		&user.ID, &user.CreatedAt, &user.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create user: %v", err)
	}

	for _, roleName := range roleNames {
		var roleID string
		err = tx.QueryRow(`SELECT id FROM roles WHERE name = $1 AND is_active = true`, roleName).Scan(&roleID)
		if err != nil {
			return fmt.Errorf("failed to find role %s: %v", roleName, err)
		}
		_, err = tx.Exec(`
			INSERT INTO user_roles (user_id, role_id) VALUES ($1, $2)
			ON CONFLICT (user_id, role_id) DO NOTHING
		`, user.ID, roleID)
		if err != nil {
			return fmt.Errorf("failed to assign role %s: %v", roleName, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %v", err)
	}

	user.Roles = make([]*models.Role, len(roleNames))
	for i, name := range roleNames {
		user.Roles[i] = &models.Role{Name: name}
	}
	return nil
}

// UpdateUserPassword replaces a user's password hash.
func UpdateUserPassword(db *sql.DB, userID, hashedPassword string) error {
	result, err := db.Exec(`
		UPDATE users SET password = $1, updated_at = NOW()
		WHERE id = $2 AND is_active = true AND deleted_at IS NULL
	`, hashedPassword, userID)
	if err != nil {
		return fmt.Errorf("failed to update password: %v", err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %v", err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("user not found")
	}
	return nil
}
