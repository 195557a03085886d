package database

import (
	"database/sql"
	"fmt"

	"apex-academy/app/models"
)

// CreatePackage inserts a catalog package.
func CreatePackage(db *sql.DB, pkg *models.TrainingPackage) error {
	err := db.QueryRow(`
		INSERT INTO training_packages (name, sessions, price, requires_duration)
		VALUES ($1, $2, $3, $4)
		RETURNING id, is_active, created_at, updated_at
	`, pkg.Name, pkg.Sessions, pkg.Price, pkg.RequiresDuration).Scan(
		&pkg.ID, &pkg.IsActive, &pkg.CreatedAt, &pkg.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create package: %v", err)
	}
	return nil
}

// GetAllPackages returns active catalog packages with the number of players
// currently on each.
func GetAllPackages(db *sql.DB) ([]models.TrainingPackage, error) {
	rows, err := db.Query(`
		SELECT tp.id, tp.name, tp.sessions, tp.price, tp.requires_duration,
			tp.is_active, tp.created_at, tp.updated_at,
			COUNT(p.id) AS player_count
		FROM training_packages tp
		LEFT JOIN players p ON p.package_id = tp.id AND p.is_active = true AND p.deleted_at IS NULL
		WHERE tp.is_active = true AND tp.deleted_at IS NULL
		GROUP BY tp.id
		ORDER BY tp.name
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to get packages: %v", err)
	}
	defer rows.Close()

	var packages []models.TrainingPackage
	for rows.Next() {
		var pkg models.TrainingPackage
		err := rows.Scan(
			&pkg.ID, &pkg.Name, &pkg.Sessions, &pkg.Price, &pkg.RequiresDuration,
			&pkg.IsActive, &pkg.CreatedAt, &pkg.UpdatedAt, &pkg.PlayerCount,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan package: %v", err)
		}
		packages = append(packages, pkg)
	}
	return packages, rows.Err()
}

// GetPackageByID returns a single active catalog package.
func GetPackageByID(db *sql.DB, id string) (*models.TrainingPackage, error) {
	pkg := &models.TrainingPackage{}
	err := db.QueryRow(`
		SELECT id, name, sessions, price, requires_duration, is_active, created_at, updated_at
		FROM training_packages
		WHERE id = $1 AND is_active = true AND deleted_at IS NULL
	`, id).Scan(
		&pkg.ID, &pkg.Name, &pkg.Sessions, &pkg.Price, &pkg.RequiresDuration,
		&pkg.IsActive, &pkg.CreatedAt, &pkg.UpdatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get package: %v", err)
	}
	return pkg, nil
}

// UpdatePackage updates a catalog package. Players already assigned keep the
// sessions snapshot they were given at assignment time.
func UpdatePackage(db *sql.DB, pkg *models.TrainingPackage) error {
	result, err := db.Exec(`
		UPDATE training_packages
		SET name = $1, sessions = $2, price = $3, requires_duration = $4, updated_at = NOW()
		WHERE id = $5 AND is_active = true AND deleted_at IS NULL
	`, pkg.Name, pkg.Sessions, pkg.Price, pkg.RequiresDuration, pkg.ID)
	if err != nil {
		return fmt.Errorf("failed to update package: %v", err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %v", err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("package not found")
	}
	return nil
}

// DeletePackage soft-deletes a catalog package.
func DeletePackage(db *sql.DB, id string) error {
	result, err := db.Exec(`
		UPDATE training_packages
		SET is_active = false, deleted_at = NOW(), updated_at = NOW()
		WHERE id = $1 AND is_active = true
	`, id)
	if err != nil {
		return fmt.Errorf("failed to delete package: %v", err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %v", err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("package not found")
	}
	return nil
}

// AssignPackageToPlayer runs the purchase/renewal flow in one transaction:
// point the player at the package, reset the credit balance to the package's
// session count, and optionally record the payment taken at the counter.
//
// A renewal (the player already had a package) also appends a history
// snapshot, which moves the player onto the next package cycle. The initial
// assignment writes no snapshot: a player with no history rows is on cycle 1.
// The player row is locked first so renewals serialize with concurrent
// attendance marking, which reads the history count under the same lock.
func AssignPackageToPlayer(db *sql.DB, playerID, packageID string, payment *models.Payment) error {
	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %v", err)
	}
	defer tx.Rollback()

	var currentPackageID *string
	err = tx.QueryRow(`
		SELECT package_id FROM players
		WHERE id = $1 AND is_active = true AND deleted_at IS NULL
		FOR UPDATE
	`, playerID).Scan(&currentPackageID)
	if err != nil {
		if err == sql.ErrNoRows {
			return fmt.Errorf("player not found")
		}
		return fmt.Errorf("failed to lock player: %v", err)
	}

	pkg := &models.TrainingPackage{}
	err = tx.QueryRow(`
		SELECT id, name, sessions, price, requires_duration
		FROM training_packages
		WHERE id = $1 AND is_active = true AND deleted_at IS NULL
	`, packageID).Scan(&pkg.ID, &pkg.Name, &pkg.Sessions, &pkg.Price, &pkg.RequiresDuration)
	if err != nil {
		if err == sql.ErrNoRows {
			return fmt.Errorf("package not found")
		}
		return fmt.Errorf("failed to load package: %v", err)
	}

	_, err = tx.Exec(`
		UPDATE players
		SET package_id = $1, package_type = $2, sessions = $3, remaining_sessions = $3, updated_at = NOW()
		WHERE id = $4
	`, pkg.ID, pkg.Name, pkg.Sessions, playerID)
	if err != nil {
		return fmt.Errorf("failed to assign package: %v", err)
	}

	if currentPackageID != nil {
		pricePaid := pkg.Price
		if payment != nil {
			pricePaid = payment.Amount
		}
		_, err = tx.Exec(`
			INSERT INTO player_package_history (player_id, package_id, package_name, sessions, price_paid)
			VALUES ($1, $2, $3, $4, $5)
		`, playerID, pkg.ID, pkg.Name, pkg.Sessions, pricePaid)
		if err != nil {
			return fmt.Errorf("failed to record package history: %v", err)
		}
	}

	if payment != nil {
		err = tx.QueryRow(`
			INSERT INTO payments (player_id, amount, method, reference, paid_at, notes, recorded_by)
			VALUES ($1, $2, $3, $4, $5, $6, $7)
			RETURNING id, created_at, updated_at
		`, payment.PlayerID, payment.Amount, payment.Method, payment.Reference,
			payment.PaidAt, payment.Notes, payment.RecordedBy).Scan(
			&payment.ID, &payment.CreatedAt, &payment.UpdatedAt,
		)
		if err != nil {
			return fmt.Errorf("failed to record payment: %v", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %v", err)
	}
	return nil
}

// GetPlayerPackageHistory returns a player's renewal snapshots, oldest first.
// Each row is labelled with the cycle it opened: renewal n starts cycle n+1
// (cycle 1 is the initial package, which has no snapshot).
func GetPlayerPackageHistory(db *sql.DB, playerID string) ([]models.PlayerPackageHistory, error) {
	rows, err := db.Query(`
		SELECT id, player_id, package_id, package_name, sessions, price_paid, renewed_at,
			ROW_NUMBER() OVER (ORDER BY renewed_at, id) + 1 AS cycle
		FROM player_package_history
		WHERE player_id = $1
		ORDER BY renewed_at, id
	`, playerID)
	if err != nil {
		return nil, fmt.Errorf("failed to get package history: %v", err)
	}
	defer rows.Close()

	var history []models.PlayerPackageHistory
	for rows.Next() {
		var h models.PlayerPackageHistory
		err := rows.Scan(
			&h.ID, &h.PlayerID, &h.PackageID, &h.PackageName,
			&h.Sessions, &h.PricePaid, &h.RenewedAt, &h.Cycle,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan package history: %v", err)
		}
		history = append(history, h)
	}
	return history, rows.Err()
}
