package services

import (
	"database/sql"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"apex-academy/app/metrics"
	"apex-academy/app/models"
)

var (
	// ErrDurationRequired is returned when marking a duration-based package
	// present without a duration and without asking for the default. The
	// operator has to pick one (or the caller passes force_default).
	ErrDurationRequired = errors.New("session duration required")

	// ErrRecordNotFound is returned when the attendance record does not exist.
	ErrRecordNotFound = errors.New("attendance record not found")

	// ErrPlayerNotFound is returned when the record's player has been removed.
	ErrPlayerNotFound = errors.New("player not found")

	// ErrInvalidStatus is returned for a target status outside
	// pending/present/absent.
	ErrInvalidStatus = errors.New("invalid attendance status")
)

var one = decimal.NewFromInt(1)

// TransitionInput is everything a status change needs to know, loaded under
// lock by ChangeAttendanceStatus. Kept free of database types so the
// transition rules are testable on their own.
type TransitionInput struct {
	Current        models.AttendanceStatus
	Target         models.AttendanceStatus
	StoredDuration decimal.NullDecimal
	StoredCycle    *int

	// Supplied is the caller-chosen duration, nil when the request carried
	// none. ForceDefault lets duration-based packages fall back to 1.0
	// instead of failing with ErrDurationRequired (batch marking).
	Supplied     *decimal.Decimal
	ForceDefault bool

	// RequiresDuration is the player's package classification, resolved via
	// PackageRequiresDuration.
	RequiresDuration bool

	// HistoryCount is the player's package renewal count; the current cycle
	// is HistoryCount+1.
	HistoryCount int

	Balance decimal.Decimal
	Now     time.Time
}

// TransitionResult is what ComputeTransition decided: the record fields to
// persist and the balance movement that goes with them.
type TransitionResult struct {
	Status   models.AttendanceStatus
	MarkedAt *time.Time
	Duration decimal.NullDecimal
	Cycle    *int

	Balance        decimal.Decimal
	BalanceChanged bool
	Debited        decimal.Decimal
	Credited       decimal.Decimal
	Clamped        bool
}

// ComputeTransition applies the attendance accounting rules to one record:
//
//  1. Target present resolves a duration: duration-based packages take the
//     supplied value, fall back to the previously stored one (re-marking),
//     then to 1.0 when forced; every other package is pinned to exactly 1.0.
//  2. Target present stamps marked_at and, the first time only, assigns the
//     package cycle (renewal count + 1). Leaving present clears marked_at but
//     keeps duration and cycle for later re-marking.
//  3. Balance movement depends on the present-flag edge: entering present
//     debits the new duration, leaving present credits the stored one, and
//     staying present with a changed duration credits the old then debits the
//     new as two separate operations. Debits floor at zero; hitting the floor
//     is a business rule, not an error.
func ComputeTransition(in TransitionInput) (TransitionResult, error) {
	if !in.Target.Valid() {
		return TransitionResult{}, ErrInvalidStatus
	}

	res := TransitionResult{
		Status:   in.Target,
		Duration: in.StoredDuration,
		Cycle:    in.StoredCycle,
		Balance:  in.Balance,
	}

	if in.Target == models.AttendancePresent {
		dur, err := resolveDuration(in)
		if err != nil {
			return TransitionResult{}, err
		}
		res.Duration = decimal.NullDecimal{Decimal: dur, Valid: true}

		markedAt := in.Now
		res.MarkedAt = &markedAt

		if in.StoredCycle == nil {
			cycle := in.HistoryCount + 1
			res.Cycle = &cycle
		}
	}

	wasPresent := in.Current == models.AttendancePresent
	nowPresent := in.Target == models.AttendancePresent
	switch {
	case !wasPresent && nowPresent:
		res.debit(effectiveDuration(res.Duration))
	case wasPresent && !nowPresent:
		res.credit(effectiveDuration(in.StoredDuration))
	case wasPresent && nowPresent:
		oldDur := effectiveDuration(in.StoredDuration)
		newDur := effectiveDuration(res.Duration)
		if !oldDur.Equal(newDur) {
			res.credit(oldDur)
			res.debit(newDur)
		}
	}

	return res, nil
}

func resolveDuration(in TransitionInput) (decimal.Decimal, error) {
	if !in.RequiresDuration {
		return one, nil
	}
	if in.Supplied != nil && in.Supplied.IsPositive() {
		return *in.Supplied, nil
	}
	if in.StoredDuration.Valid && in.StoredDuration.Decimal.IsPositive() {
		return in.StoredDuration.Decimal, nil
	}
	if in.ForceDefault {
		return one, nil
	}
	return decimal.Decimal{}, ErrDurationRequired
}

// effectiveDuration is the credit value of a stored duration: null or
// non-positive counts as one full session.
func effectiveDuration(d decimal.NullDecimal) decimal.Decimal {
	if d.Valid && d.Decimal.IsPositive() {
		return d.Decimal
	}
	return one
}

func (r *TransitionResult) debit(amount decimal.Decimal) {
	applied := amount
	if applied.GreaterThan(r.Balance) {
		applied = r.Balance
		r.Clamped = true
	}
	r.Balance = r.Balance.Sub(applied)
	r.Debited = r.Debited.Add(applied)
	r.BalanceChanged = true
}

func (r *TransitionResult) credit(amount decimal.Decimal) {
	r.Balance = r.Balance.Add(amount)
	r.Credited = r.Credited.Add(amount)
	r.BalanceChanged = true
}

// PackageRequiresDuration resolves a player's package classification. The
// catalog flag wins; players without a catalog package fall back to matching
// "personal" in the free-text package label, which is how rows predating the
// flag were classified.
func PackageRequiresDuration(catalogFlag sql.NullBool, packageType string) bool {
	if catalogFlag.Valid {
		return catalogFlag.Bool
	}
	return strings.Contains(strings.ToLower(packageType), "personal")
}

// StatusChange is one requested attendance status change.
type StatusChange struct {
	Target       models.AttendanceStatus
	Duration     *decimal.Decimal
	ForceDefault bool
	MarkedBy     *string
}

// AttendanceOutcome reports what a committed status change did.
type AttendanceOutcome struct {
	Record            models.AttendanceRecord `json:"record"`
	RemainingSessions decimal.Decimal         `json:"remaining_sessions"`
	Debited           decimal.Decimal         `json:"debited"`
	Credited          decimal.Decimal         `json:"credited"`
	Clamped           bool                    `json:"clamped"`
}

// ChangeAttendanceStatus runs one attendance status change as a single
// transaction: it locks the record and its player row, computes the
// transition, then persists the record fields and the balance together.
// Locking the player row serializes concurrent changes for the same player,
// so two simultaneous markings cannot read the same renewal count or lose a
// balance update.
func ChangeAttendanceStatus(db *sql.DB, recordID string, change StatusChange) (*AttendanceOutcome, error) {
	tx, err := db.Begin()
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %v", err)
	}
	defer tx.Rollback()

	record := models.AttendanceRecord{ID: recordID}
	err = tx.QueryRow(`
		SELECT session_id, player_id, status, marked_at, marked_by, session_duration, package_cycle, created_at
		FROM attendance_records
		WHERE id = $1
		FOR UPDATE
	`, recordID).Scan(
		&record.SessionID, &record.PlayerID, &record.Status, &record.MarkedAt,
		&record.MarkedBy, &record.SessionDuration, &record.PackageCycle, &record.CreatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrRecordNotFound
		}
		return nil, fmt.Errorf("failed to load attendance record: %v", err)
	}

	var (
		packageType  string
		balance      decimal.Decimal
		requiresFlag sql.NullBool
	)
	err = tx.QueryRow(`
		SELECT p.package_type, p.remaining_sessions, tp.requires_duration
		FROM players p
		LEFT JOIN training_packages tp ON tp.id = p.package_id
		WHERE p.id = $1 AND p.deleted_at IS NULL
		FOR UPDATE OF p
	`, record.PlayerID).Scan(&packageType, &balance, &requiresFlag)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrPlayerNotFound
		}
		return nil, fmt.Errorf("failed to load player: %v", err)
	}

	var historyCount int
	err = tx.QueryRow(`
		SELECT COUNT(*) FROM player_package_history WHERE player_id = $1
	`, record.PlayerID).Scan(&historyCount)
	if err != nil {
		return nil, fmt.Errorf("failed to count package history: %v", err)
	}

	result, err := ComputeTransition(TransitionInput{
		Current:          record.Status,
		Target:           change.Target,
		StoredDuration:   record.SessionDuration,
		StoredCycle:      record.PackageCycle,
		Supplied:         change.Duration,
		ForceDefault:     change.ForceDefault,
		RequiresDuration: PackageRequiresDuration(requiresFlag, packageType),
		HistoryCount:     historyCount,
		Balance:          balance,
		Now:              time.Now(),
	})
	if err != nil {
		return nil, err
	}

	var markedBy *string
	if result.Status == models.AttendancePresent {
		markedBy = change.MarkedBy
	}

	err = tx.QueryRow(`
		UPDATE attendance_records
		SET status = $1, marked_at = $2, marked_by = $3, session_duration = $4, package_cycle = $5, updated_at = NOW()
		WHERE id = $6
		RETURNING updated_at
	`, result.Status, result.MarkedAt, markedBy, result.Duration, result.Cycle, recordID).Scan(&record.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to update attendance record: %v", err)
	}

	if result.BalanceChanged {
		_, err = tx.Exec(`
			UPDATE players SET remaining_sessions = $1, updated_at = NOW()
			WHERE id = $2
		`, result.Balance, record.PlayerID)
		if err != nil {
			return nil, fmt.Errorf("failed to update player balance: %v", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %v", err)
	}

	metrics.AttendanceTransitions.WithLabelValues(string(record.Status), string(result.Status)).Inc()
	if result.Debited.IsPositive() {
		metrics.CreditsDebited.Add(result.Debited.InexactFloat64())
	}
	if result.Credited.IsPositive() {
		metrics.CreditsCredited.Add(result.Credited.InexactFloat64())
	}
	if result.Clamped {
		metrics.BalanceClamps.Inc()
		log.Printf("Balance floor hit for player %s (record %s)", record.PlayerID, recordID)
	}

	previous := record.Status
	record.Status = result.Status
	record.MarkedAt = result.MarkedAt
	record.MarkedBy = markedBy
	record.SessionDuration = result.Duration
	record.PackageCycle = result.Cycle

	log.Printf("Attendance %s: %s -> %s (player %s, remaining %s)",
		recordID, previous, result.Status, record.PlayerID, result.Balance.String())

	return &AttendanceOutcome{
		Record:            record,
		RemainingSessions: result.Balance,
		Debited:           result.Debited,
		Credited:          result.Credited,
		Clamped:           result.Clamped,
	}, nil
}
