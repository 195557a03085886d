package services_test

import (
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"apex-academy/app/models"
	"apex-academy/app/services"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func nullDec(s string) decimal.NullDecimal {
	return decimal.NullDecimal{Decimal: decimal.RequireFromString(s), Valid: true}
}

func decPtr(s string) *decimal.Decimal {
	d := decimal.RequireFromString(s)
	return &d
}

// TestComputeTransition_Scenarios walks the canonical marking flows end to
// end: first marking on fixed and duration-based packages, reverting to
// absent, correcting a duration in place, and draining a balance past zero.
func TestComputeTransition_Scenarios(t *testing.T) {
	now := time.Date(2025, 3, 10, 17, 0, 0, 0, time.UTC)

	tests := []struct {
		name         string
		in           services.TransitionInput
		wantBalance  decimal.Decimal
		wantDuration decimal.NullDecimal
		wantDebited  decimal.Decimal
		wantCredited decimal.Decimal
		wantClamped  bool
		wantMarked   bool
	}{
		{
			name: "fixed package first marking debits one",
			in: services.TransitionInput{
				Current: models.AttendancePending,
				Target:  models.AttendancePresent,
				Balance: dec("10"),
				Now:     now,
			},
			wantBalance:  dec("9"),
			wantDuration: nullDec("1"),
			wantDebited:  dec("1"),
			wantCredited: decimal.Zero,
			wantMarked:   true,
		},
		{
			name: "personal package passes supplied duration through",
			in: services.TransitionInput{
				Current:          models.AttendancePending,
				Target:           models.AttendancePresent,
				Supplied:         decPtr("1.5"),
				RequiresDuration: true,
				Balance:          dec("5"),
				Now:              now,
			},
			wantBalance:  dec("3.5"),
			wantDuration: nullDec("1.5"),
			wantDebited:  dec("1.5"),
			wantCredited: decimal.Zero,
			wantMarked:   true,
		},
		{
			name: "reverting to absent restores the stored duration",
			in: services.TransitionInput{
				Current:          models.AttendancePresent,
				Target:           models.AttendanceAbsent,
				StoredDuration:   nullDec("1.5"),
				RequiresDuration: true,
				Balance:          dec("3.5"),
				Now:              now,
			},
			wantBalance:  dec("5"),
			wantDuration: nullDec("1.5"),
			wantDebited:  decimal.Zero,
			wantCredited: dec("1.5"),
			wantMarked:   false,
		},
		{
			name: "changing duration in place credits old then debits new",
			in: services.TransitionInput{
				Current:          models.AttendancePresent,
				Target:           models.AttendancePresent,
				StoredDuration:   nullDec("1.5"),
				Supplied:         decPtr("0.5"),
				RequiresDuration: true,
				Balance:          dec("3.5"),
				Now:              now,
			},
			wantBalance:  dec("4.5"),
			wantDuration: nullDec("0.5"),
			wantDebited:  dec("0.5"),
			wantCredited: dec("1.5"),
			wantMarked:   true,
		},
		{
			name: "debit past zero clamps at zero",
			in: services.TransitionInput{
				Current:          models.AttendancePending,
				Target:           models.AttendancePresent,
				Supplied:         decPtr("2"),
				RequiresDuration: true,
				Balance:          dec("0.5"),
				Now:              now,
			},
			wantBalance:  decimal.Zero,
			wantDuration: nullDec("2"),
			wantDebited:  dec("0.5"),
			wantCredited: decimal.Zero,
			wantClamped:  true,
			wantMarked:   true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := services.ComputeTransition(tt.in)
			if err != nil {
				t.Fatalf("ComputeTransition() error = %v", err)
			}
			if !res.Balance.Equal(tt.wantBalance) {
				t.Errorf("Balance = %s, want %s", res.Balance, tt.wantBalance)
			}
			if res.Duration.Valid != tt.wantDuration.Valid || !res.Duration.Decimal.Equal(tt.wantDuration.Decimal) {
				t.Errorf("Duration = %v, want %v", res.Duration, tt.wantDuration)
			}
			if !res.Debited.Equal(tt.wantDebited) {
				t.Errorf("Debited = %s, want %s", res.Debited, tt.wantDebited)
			}
			if !res.Credited.Equal(tt.wantCredited) {
				t.Errorf("Credited = %s, want %s", res.Credited, tt.wantCredited)
			}
			if res.Clamped != tt.wantClamped {
				t.Errorf("Clamped = %v, want %v", res.Clamped, tt.wantClamped)
			}
			if (res.MarkedAt != nil) != tt.wantMarked {
				t.Errorf("MarkedAt = %v, want set=%v", res.MarkedAt, tt.wantMarked)
			}
			if tt.wantMarked && res.MarkedAt != nil && !res.MarkedAt.Equal(now) {
				t.Errorf("MarkedAt = %v, want %v", res.MarkedAt, now)
			}
		})
	}
}

// Fixed packages store exactly 1.0 no matter what the caller sends.
func TestComputeTransition_FixedPackageIgnoresDuration(t *testing.T) {
	for _, supplied := range []*decimal.Decimal{nil, decPtr("2.5"), decPtr("0.5")} {
		res, err := services.ComputeTransition(services.TransitionInput{
			Current:  models.AttendancePending,
			Target:   models.AttendancePresent,
			Supplied: supplied,
			Balance:  dec("8"),
			Now:      time.Now(),
		})
		if err != nil {
			t.Fatalf("ComputeTransition() error = %v", err)
		}
		if !res.Duration.Decimal.Equal(dec("1")) {
			t.Errorf("Duration = %s with supplied %v, want 1", res.Duration.Decimal, supplied)
		}
		if !res.Balance.Equal(dec("7")) {
			t.Errorf("Balance = %s with supplied %v, want 7", res.Balance, supplied)
		}
	}
}

func TestComputeTransition_DurationRequired(t *testing.T) {
	base := services.TransitionInput{
		Current:          models.AttendancePending,
		Target:           models.AttendancePresent,
		RequiresDuration: true,
		Balance:          dec("5"),
		Now:              time.Now(),
	}

	t.Run("missing duration is rejected", func(t *testing.T) {
		_, err := services.ComputeTransition(base)
		if !errors.Is(err, services.ErrDurationRequired) {
			t.Fatalf("ComputeTransition() error = %v, want ErrDurationRequired", err)
		}
	})

	t.Run("non-positive duration is rejected", func(t *testing.T) {
		in := base
		in.Supplied = decPtr("0")
		_, err := services.ComputeTransition(in)
		if !errors.Is(err, services.ErrDurationRequired) {
			t.Fatalf("ComputeTransition() error = %v, want ErrDurationRequired", err)
		}
	})

	t.Run("force default falls back to one", func(t *testing.T) {
		in := base
		in.ForceDefault = true
		res, err := services.ComputeTransition(in)
		if err != nil {
			t.Fatalf("ComputeTransition() error = %v", err)
		}
		if !res.Duration.Decimal.Equal(dec("1")) {
			t.Errorf("Duration = %s, want 1", res.Duration.Decimal)
		}
		if !res.Balance.Equal(dec("4")) {
			t.Errorf("Balance = %s, want 4", res.Balance)
		}
	})

	t.Run("re-marking reuses the stored duration", func(t *testing.T) {
		in := base
		in.Current = models.AttendanceAbsent
		in.StoredDuration = nullDec("1.5")
		res, err := services.ComputeTransition(in)
		if err != nil {
			t.Fatalf("ComputeTransition() error = %v", err)
		}
		if !res.Duration.Decimal.Equal(dec("1.5")) {
			t.Errorf("Duration = %s, want 1.5", res.Duration.Decimal)
		}
	})
}

// The cycle is assigned on first marking and never recomputed, even when the
// player's renewal count moves on.
func TestComputeTransition_CycleAssignedOnce(t *testing.T) {
	first, err := services.ComputeTransition(services.TransitionInput{
		Current:      models.AttendancePending,
		Target:       models.AttendancePresent,
		HistoryCount: 2,
		Balance:      dec("10"),
		Now:          time.Now(),
	})
	if err != nil {
		t.Fatalf("ComputeTransition() error = %v", err)
	}
	if first.Cycle == nil || *first.Cycle != 3 {
		t.Fatalf("Cycle = %v, want 3", first.Cycle)
	}

	// Toggle away and back while the player renews twice more.
	absent, err := services.ComputeTransition(services.TransitionInput{
		Current:        models.AttendancePresent,
		Target:         models.AttendanceAbsent,
		StoredDuration: first.Duration,
		StoredCycle:    first.Cycle,
		HistoryCount:   4,
		Balance:        first.Balance,
		Now:            time.Now(),
	})
	if err != nil {
		t.Fatalf("ComputeTransition() error = %v", err)
	}
	if absent.Cycle == nil || *absent.Cycle != 3 {
		t.Fatalf("Cycle after absent = %v, want 3", absent.Cycle)
	}

	again, err := services.ComputeTransition(services.TransitionInput{
		Current:        models.AttendanceAbsent,
		Target:         models.AttendancePresent,
		StoredDuration: absent.Duration,
		StoredCycle:    absent.Cycle,
		HistoryCount:   4,
		Balance:        absent.Balance,
		Now:            time.Now(),
	})
	if err != nil {
		t.Fatalf("ComputeTransition() error = %v", err)
	}
	if again.Cycle == nil || *again.Cycle != 3 {
		t.Errorf("Cycle after re-marking = %v, want 3", again.Cycle)
	}
}

// A present/absent round trip with enough balance to avoid the zero floor
// lands back on the starting balance.
func TestComputeTransition_RoundTrip(t *testing.T) {
	balance := dec("5")
	stored := decimal.NullDecimal{}
	var cycle *int
	status := models.AttendancePending

	steps := []struct {
		target   models.AttendanceStatus
		supplied *decimal.Decimal
	}{
		{models.AttendancePresent, decPtr("1.5")},
		{models.AttendanceAbsent, nil},
		{models.AttendancePresent, decPtr("1.5")},
		{models.AttendanceAbsent, nil},
	}

	for i, step := range steps {
		res, err := services.ComputeTransition(services.TransitionInput{
			Current:          status,
			Target:           step.target,
			StoredDuration:   stored,
			StoredCycle:      cycle,
			Supplied:         step.supplied,
			RequiresDuration: true,
			Balance:          balance,
			Now:              time.Now(),
		})
		if err != nil {
			t.Fatalf("step %d: ComputeTransition() error = %v", i, err)
		}
		balance = res.Balance
		stored = res.Duration
		cycle = res.Cycle
		status = res.Status
	}

	if !balance.Equal(dec("5")) {
		t.Errorf("balance after round trip = %s, want 5", balance)
	}
}

// Marking present on an empty balance never drives it negative.
func TestComputeTransition_ZeroFloor(t *testing.T) {
	balance := decimal.Zero
	for i := 0; i < 3; i++ {
		res, err := services.ComputeTransition(services.TransitionInput{
			Current: models.AttendancePending,
			Target:  models.AttendancePresent,
			Balance: balance,
			Now:     time.Now(),
		})
		if err != nil {
			t.Fatalf("marking %d: ComputeTransition() error = %v", i, err)
		}
		if res.Balance.IsNegative() {
			t.Fatalf("marking %d: balance went negative: %s", i, res.Balance)
		}
		if !res.Clamped {
			t.Errorf("marking %d: Clamped = false, want true", i)
		}
		balance = res.Balance
	}
	if !balance.Equal(decimal.Zero) {
		t.Errorf("balance = %s, want 0", balance)
	}
}

func TestComputeTransition_NoBalanceEffect(t *testing.T) {
	tests := []struct {
		name    string
		current models.AttendanceStatus
		target  models.AttendanceStatus
	}{
		{"pending to absent", models.AttendancePending, models.AttendanceAbsent},
		{"absent to pending", models.AttendanceAbsent, models.AttendancePending},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := services.ComputeTransition(services.TransitionInput{
				Current: tt.current,
				Target:  tt.target,
				Balance: dec("4"),
				Now:     time.Now(),
			})
			if err != nil {
				t.Fatalf("ComputeTransition() error = %v", err)
			}
			if res.BalanceChanged {
				t.Errorf("BalanceChanged = true, want false")
			}
			if !res.Balance.Equal(dec("4")) {
				t.Errorf("Balance = %s, want 4", res.Balance)
			}
			if res.MarkedAt != nil {
				t.Errorf("MarkedAt = %v, want nil", res.MarkedAt)
			}
		})
	}

	t.Run("present to present with unchanged duration", func(t *testing.T) {
		res, err := services.ComputeTransition(services.TransitionInput{
			Current:          models.AttendancePresent,
			Target:           models.AttendancePresent,
			StoredDuration:   nullDec("1.5"),
			Supplied:         decPtr("1.5"),
			RequiresDuration: true,
			Balance:          dec("3.5"),
			Now:              time.Now(),
		})
		if err != nil {
			t.Fatalf("ComputeTransition() error = %v", err)
		}
		if res.BalanceChanged {
			t.Errorf("BalanceChanged = true, want false")
		}
		if !res.Balance.Equal(dec("3.5")) {
			t.Errorf("Balance = %s, want 3.5", res.Balance)
		}
	})
}

func TestComputeTransition_InvalidStatus(t *testing.T) {
	_, err := services.ComputeTransition(services.TransitionInput{
		Current: models.AttendancePending,
		Target:  models.AttendanceStatus("confirmed"),
		Balance: dec("5"),
		Now:     time.Now(),
	})
	if !errors.Is(err, services.ErrInvalidStatus) {
		t.Fatalf("ComputeTransition() error = %v, want ErrInvalidStatus", err)
	}
}

func TestPackageRequiresDuration(t *testing.T) {
	tests := []struct {
		name        string
		catalogFlag sql.NullBool
		packageType string
		want        bool
	}{
		{"catalog flag on", sql.NullBool{Bool: true, Valid: true}, "Elite Group", true},
		{"catalog flag off", sql.NullBool{Bool: false, Valid: true}, "Personal Training", false},
		{"no catalog package, personal label", sql.NullBool{}, "Personal Training", true},
		{"no catalog package, mixed case label", sql.NullBool{}, "PERSONAL coaching", true},
		{"no catalog package, group label", sql.NullBool{}, "Group Training", false},
		{"no catalog package, empty label", sql.NullBool{}, "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := services.PackageRequiresDuration(tt.catalogFlag, tt.packageType)
			if got != tt.want {
				t.Errorf("PackageRequiresDuration(%v, %q) = %v, want %v",
					tt.catalogFlag, tt.packageType, got, tt.want)
			}
		})
	}
}
