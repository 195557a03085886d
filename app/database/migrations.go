package database

import (
	"database/sql"
	"fmt"
	"log"
)

// RunMigrations creates missing tables and applies schema updates. The full
// reference DDL lives in migrations/schema.sql; this keeps a fresh database
// usable without running the manual migrate command.
func RunMigrations(db *sql.DB) error {
	log.Println("Running database migrations...")

	if err := createCoreTables(db); err != nil {
		return err
	}
	if err := seedRoles(db); err != nil {
		return err
	}
	if err := addRequiresDurationColumn(db); err != nil {
		return err
	}
	if err := addMarkedByColumn(db); err != nil {
		return err
	}

	log.Println("Database migrations completed successfully")
	return nil
}

func createCoreTables(db *sql.DB) error {
	stmts := []string{
		`CREATE EXTENSION IF NOT EXISTS pgcrypto`,

		`CREATE TABLE IF NOT EXISTS roles (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			name VARCHAR(50) UNIQUE NOT NULL,
			is_active BOOLEAN NOT NULL DEFAULT true,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			deleted_at TIMESTAMPTZ
		)`,

		`CREATE TABLE IF NOT EXISTS users (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			email VARCHAR(255) UNIQUE NOT NULL,
			password VARCHAR(255) NOT NULL,
			first_name VARCHAR(100) NOT NULL,
			last_name VARCHAR(100) NOT NULL,
			phone VARCHAR(20) NOT NULL DEFAULT '',
			is_active BOOLEAN NOT NULL DEFAULT true,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			deleted_at TIMESTAMPTZ
		)`,

		`CREATE TABLE IF NOT EXISTS user_roles (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			user_id UUID NOT NULL REFERENCES users(id) ON DELETE CASCADE,
			role_id UUID NOT NULL REFERENCES roles(id) ON DELETE CASCADE,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			UNIQUE (user_id, role_id)
		)`,

		`CREATE TABLE IF NOT EXISTS branches (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			name VARCHAR(255) UNIQUE NOT NULL,
			code VARCHAR(50) UNIQUE NOT NULL,
			address TEXT NOT NULL DEFAULT '',
			phone VARCHAR(20) NOT NULL DEFAULT '',
			is_active BOOLEAN NOT NULL DEFAULT true,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			deleted_at TIMESTAMPTZ
		)`,

		`CREATE TABLE IF NOT EXISTS coaches (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			user_id UUID REFERENCES users(id) ON DELETE SET NULL,
			first_name VARCHAR(100) NOT NULL,
			last_name VARCHAR(100) NOT NULL,
			phone VARCHAR(20) NOT NULL DEFAULT '',
			specialty VARCHAR(100) NOT NULL DEFAULT '',
			branch_id UUID REFERENCES branches(id) ON DELETE SET NULL,
			is_active BOOLEAN NOT NULL DEFAULT true,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			deleted_at TIMESTAMPTZ
		)`,

		`CREATE TABLE IF NOT EXISTS training_packages (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			name VARCHAR(255) UNIQUE NOT NULL,
			sessions NUMERIC(6,2) NOT NULL,
			price NUMERIC(12,2) NOT NULL DEFAULT 0,
			is_active BOOLEAN NOT NULL DEFAULT true,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			deleted_at TIMESTAMPTZ
		)`,

		`CREATE TABLE IF NOT EXISTS players (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			first_name VARCHAR(100) NOT NULL,
			last_name VARCHAR(100) NOT NULL,
			gender VARCHAR(10),
			birth_date DATE,
			guardian_name VARCHAR(255) NOT NULL DEFAULT '',
			guardian_phone VARCHAR(20) NOT NULL DEFAULT '',
			package_id UUID REFERENCES training_packages(id) ON DELETE SET NULL,
			package_type VARCHAR(255) NOT NULL DEFAULT '',
			sessions NUMERIC(6,2) NOT NULL DEFAULT 0,
			remaining_sessions NUMERIC(6,2) NOT NULL DEFAULT 0 CHECK (remaining_sessions >= 0),
			branch_id UUID REFERENCES branches(id) ON DELETE SET NULL,
			is_active BOOLEAN NOT NULL DEFAULT true,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			deleted_at TIMESTAMPTZ
		)`,

		`CREATE TABLE IF NOT EXISTS player_package_history (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			player_id UUID NOT NULL REFERENCES players(id) ON DELETE CASCADE,
			package_id UUID REFERENCES training_packages(id) ON DELETE SET NULL,
			package_name VARCHAR(255) NOT NULL,
			sessions NUMERIC(6,2) NOT NULL,
			price_paid NUMERIC(12,2) NOT NULL DEFAULT 0,
			renewed_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,

		`CREATE INDEX IF NOT EXISTS idx_package_history_player ON player_package_history (player_id)`,

		`CREATE TABLE IF NOT EXISTS training_sessions (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			date DATE NOT NULL,
			start_time VARCHAR(5) NOT NULL,
			end_time VARCHAR(5) NOT NULL,
			branch_id UUID NOT NULL REFERENCES branches(id),
			coach_id UUID REFERENCES coaches(id) ON DELETE SET NULL,
			package_type VARCHAR(255) NOT NULL DEFAULT '',
			status VARCHAR(10) NOT NULL DEFAULT 'scheduled',
			notes TEXT NOT NULL DEFAULT '',
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			deleted_at TIMESTAMPTZ
		)`,

		`CREATE INDEX IF NOT EXISTS idx_sessions_date ON training_sessions (date)`,
		`CREATE INDEX IF NOT EXISTS idx_sessions_branch ON training_sessions (branch_id, date)`,
		`CREATE INDEX IF NOT EXISTS idx_sessions_coach ON training_sessions (coach_id, date)`,

		`CREATE TABLE IF NOT EXISTS attendance_records (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			session_id UUID NOT NULL REFERENCES training_sessions(id) ON DELETE CASCADE,
			player_id UUID NOT NULL REFERENCES players(id) ON DELETE CASCADE,
			status VARCHAR(10) NOT NULL DEFAULT 'pending',
			marked_at TIMESTAMPTZ,
			session_duration NUMERIC(4,2),
			package_cycle INTEGER,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			UNIQUE (session_id, player_id)
		)`,

		`CREATE INDEX IF NOT EXISTS idx_attendance_player ON attendance_records (player_id)`,
		`CREATE INDEX IF NOT EXISTS idx_attendance_session ON attendance_records (session_id)`,

		`CREATE TABLE IF NOT EXISTS payments (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			player_id UUID NOT NULL REFERENCES players(id),
			amount NUMERIC(12,2) NOT NULL,
			method VARCHAR(10) NOT NULL DEFAULT 'cash',
			reference VARCHAR(50) UNIQUE NOT NULL,
			paid_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			notes TEXT NOT NULL DEFAULT '',
			recorded_by UUID REFERENCES users(id) ON DELETE SET NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			deleted_at TIMESTAMPTZ
		)`,

		`CREATE INDEX IF NOT EXISTS idx_payments_player ON payments (player_id)`,
		`CREATE INDEX IF NOT EXISTS idx_payments_paid_at ON payments (paid_at)`,
	}

	for _, stmt := range stmts {
		if _, err := db.Exec(stmt); err != nil {
			log.Printf("Failed to run schema statement: %v", err)
			return fmt.Errorf("failed to create core tables: %v", err)
		}
	}
	return nil
}

func seedRoles(db *sql.DB) error {
	_, err := db.Exec(`INSERT INTO roles (name) VALUES ('admin'), ('coach') ON CONFLICT (name) DO NOTHING`)
	if err != nil {
		return fmt.Errorf("failed to seed roles: %v", err)
	}
	return nil
}

func addRequiresDurationColumn(db *sql.DB) error {
	query := `
		DO $$
		BEGIN
			IF NOT EXISTS (
				SELECT 1
				FROM information_schema.columns
				WHERE table_name = 'training_packages'
				AND column_name = 'requires_duration'
			) THEN
				ALTER TABLE training_packages ADD COLUMN requires_duration BOOLEAN NOT NULL DEFAULT false;
				RAISE NOTICE 'Added requires_duration column to training_packages';
			END IF;
		END $$;
	`
	if _, err := db.Exec(query); err != nil {
		log.Printf("Failed to run migration for requires_duration column: %v", err)
		return err
	}
	return nil
}

func addMarkedByColumn(db *sql.DB) error {
	query := `
		DO $$
		BEGIN
			IF NOT EXISTS (
				SELECT 1
				FROM information_schema.columns
				WHERE table_name = 'attendance_records'
				AND column_name = 'marked_by'
			) THEN
				ALTER TABLE attendance_records ADD COLUMN marked_by UUID;
				RAISE NOTICE 'Added marked_by column to attendance_records';
			END IF;
		END $$;
	`
	if _, err := db.Exec(query); err != nil {
		log.Printf("Failed to run migration for marked_by column: %v", err)
		return err
	}
	return nil
}
