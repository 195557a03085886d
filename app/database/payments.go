package database

import (
	"database/sql"
	"fmt"
	"time"

	"apex-academy/app/models"
)

// CreatePayment inserts a payment row. The caller generates the receipt
// reference beforehand.
func CreatePayment(db *sql.DB, payment *models.Payment) error {
	err := db.QueryRow(`
		INSERT INTO payments (player_id, amount, method, reference, paid_at, notes, recorded_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at, updated_at
	`, payment.PlayerID, payment.Amount, payment.Method, payment.Reference,
		payment.PaidAt, payment.Notes, payment.RecordedBy).Scan(
		&payment.ID, &payment.CreatedAt, &payment.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create payment: %v", err)
	}
	return nil
}

// SearchPaymentsWithPagination returns a page of payments plus the total
// count, filtered by player, method and paid-at date range.
func SearchPaymentsWithPagination(db *sql.DB, playerID, method string, dateFrom, dateTo *time.Time, limit, offset int) ([]models.Payment, int, error) {
	countQuery := `
		SELECT COUNT(*)
		FROM payments pay
		WHERE pay.deleted_at IS NULL
		AND ($1 = '' OR pay.player_id::text = $1)
		AND ($2 = '' OR pay.method = $2)
		AND ($3::timestamptz IS NULL OR pay.paid_at >= $3)
		AND ($4::timestamptz IS NULL OR pay.paid_at <= $4)
	`
	var total int
	if err := db.QueryRow(countQuery, playerID, method, dateFrom, dateTo).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count payments: %v", err)
	}

	query := `
		SELECT pay.id, pay.player_id, pay.amount, pay.method, pay.reference,
			pay.paid_at, pay.notes, pay.recorded_by, pay.created_at, pay.updated_at,
			COALESCE(p.first_name || ' ' || p.last_name, '') AS player_name
		FROM payments pay
		LEFT JOIN players p ON p.id = pay.player_id
		WHERE pay.deleted_at IS NULL
		AND ($1 = '' OR pay.player_id::text = $1)
		AND ($2 = '' OR pay.method = $2)
		AND ($3::timestamptz IS NULL OR pay.paid_at >= $3)
		AND ($4::timestamptz IS NULL OR pay.paid_at <= $4)
		ORDER BY pay.paid_at DESC
		LIMIT $5 OFFSET $6
	`
	rows, err := db.Query(query, playerID, method, dateFrom, dateTo, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to search payments: %v", err)
	}
	defer rows.Close()

	var payments []models.Payment
	for rows.Next() {
		var pay models.Payment
		err := rows.Scan(
			&pay.ID, &pay.PlayerID, &pay.Amount, &pay.Method, &pay.Reference,
			&pay.PaidAt, &pay.Notes, &pay.RecordedBy, &pay.CreatedAt, &pay.UpdatedAt,
			&pay.PlayerName,
		)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan payment: %v", err)
		}
		payments = append(payments, pay)
	}
	return payments, total, rows.Err()
}

// GetPaymentByID returns one payment with the player's name.
func GetPaymentByID(db *sql.DB, id string) (*models.Payment, error) {
	payment := &models.Payment{}
	err := db.QueryRow(`
		SELECT pay.id, pay.player_id, pay.amount, pay.method, pay.reference,
			pay.paid_at, pay.notes, pay.recorded_by, pay.created_at, pay.updated_at,
			COALESCE(p.first_name || ' ' || p.last_name, '')
		FROM payments pay
		LEFT JOIN players p ON p.id = pay.player_id
		WHERE pay.id = $1 AND pay.deleted_at IS NULL
	`, id).Scan(
		&payment.ID, &payment.PlayerID, &payment.Amount, &payment.Method,
		&payment.Reference, &payment.PaidAt, &payment.Notes, &payment.RecordedBy,
		&payment.CreatedAt, &payment.UpdatedAt, &payment.PlayerName,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get payment: %v", err)
	}
	return payment, nil
}

// GetPaymentByReference returns one payment by its receipt reference.
func GetPaymentByReference(db *sql.DB, reference string) (*models.Payment, error) {
	payment := &models.Payment{}
	err := db.QueryRow(`
		SELECT pay.id, pay.player_id, pay.amount, pay.method, pay.reference,
			pay.paid_at, pay.notes, pay.recorded_by, pay.created_at, pay.updated_at,
			COALESCE(p.first_name || ' ' || p.last_name, '')
		FROM payments pay
		LEFT JOIN players p ON p.id = pay.player_id
		WHERE pay.reference = $1 AND pay.deleted_at IS NULL
	`, reference).Scan(
		&payment.ID, &payment.PlayerID, &payment.Amount, &payment.Method,
		&payment.Reference, &payment.PaidAt, &payment.Notes, &payment.RecordedBy,
		&payment.CreatedAt, &payment.UpdatedAt, &payment.PlayerName,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get payment by reference: %v", err)
	}
	return payment, nil
}

// CountPaymentsOnDate returns how many payments were recorded on a calendar
// day. Used to build the daily receipt reference sequence.
func CountPaymentsOnDate(db *sql.DB, day time.Time) (int, error) {
	var count int
	err := db.QueryRow(`
		SELECT COUNT(*) FROM payments
		WHERE paid_at >= $1::date AND paid_at < ($1::date + INTERVAL '1 day')
	`, day).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count payments: %v", err)
	}
	return count, nil
}

// DeletePayment soft-deletes a payment (mis-entry correction).
func DeletePayment(db *sql.DB, id string) error {
	result, err := db.Exec(`
		UPDATE payments
		SET deleted_at = NOW(), updated_at = NOW()
		WHERE id = $1 AND deleted_at IS NULL
	`, id)
	if err != nil {
		return fmt.Errorf("failed to delete payment: %v", err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %v", err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("payment not found")
	}
	return nil
}

// GetPaymentStats returns the header cards for the payments screen.
func GetPaymentStats(db *sql.DB) (*models.PaymentStats, error) {
	stats := &models.PaymentStats{}
	err := db.QueryRow(`
		SELECT
			COUNT(CASE WHEN paid_at >= date_trunc('month', NOW()) THEN 1 END),
			COALESCE(SUM(CASE WHEN paid_at >= date_trunc('month', NOW()) THEN amount ELSE 0 END), 0),
			COALESCE(SUM(CASE WHEN paid_at >= date_trunc('day', NOW()) THEN amount ELSE 0 END), 0)
		FROM payments
		WHERE deleted_at IS NULL
	`).Scan(&stats.CountThisMonth, &stats.TotalThisMonth, &stats.TotalToday)
	if err != nil {
		return nil, fmt.Errorf("failed to get payment stats: %v", err)
	}
	return stats, nil
}
