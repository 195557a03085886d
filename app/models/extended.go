package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// DashboardStats aggregates the numbers shown on the dashboard landing page.
type DashboardStats struct {
	ActivePlayers     int             `json:"active_players"`
	ActiveCoaches     int             `json:"active_coaches"`
	SessionsToday     int             `json:"sessions_today"`
	SessionsThisWeek  int             `json:"sessions_this_week"`
	PendingAttendance int             `json:"pending_attendance"`
	LowBalancePlayers int             `json:"low_balance_players"`
	MonthlyRevenue    decimal.Decimal `json:"monthly_revenue"`
	Branches          []BranchStats   `json:"branches"`
}

// BranchStats is the per-branch breakdown on the dashboard.
type BranchStats struct {
	BranchID      string `json:"branch_id"`
	BranchName    string `json:"branch_name"`
	Players       int    `json:"players"`
	SessionsToday int    `json:"sessions_today"`
}

// CalendarSession is the trimmed session shape the calendar feed returns.
type CalendarSession struct {
	ID               string        `json:"id"`
	Date             time.Time     `json:"date"`
	StartTime        string        `json:"start_time"`
	EndTime          string        `json:"end_time"`
	BranchID         string        `json:"branch_id"`
	BranchName       string        `json:"branch_name"`
	CoachName        string        `json:"coach_name,omitempty"`
	PackageType      string        `json:"package_type,omitempty"`
	Status           SessionStatus `json:"status"`
	ParticipantCount int           `json:"participant_count"`
}

// PlayerStats summarises the players screen header cards.
type PlayerStats struct {
	Total        int `json:"total"`
	Active       int `json:"active"`
	Inactive     int `json:"inactive"`
	LowBalance   int `json:"low_balance"`
	NewThisMonth int `json:"new_this_month"`
}

// PaymentStats summarises the payments screen header cards.
type PaymentStats struct {
	CountThisMonth int             `json:"count_this_month"`
	TotalThisMonth decimal.Decimal `json:"total_this_month"`
	TotalToday     decimal.Decimal `json:"total_today"`
}

// AttendanceExportRow is one line of the attendance export: the session, the
// player and what the marking did to their balance.
type AttendanceExportRow struct {
	SessionDate time.Time           `json:"session_date"`
	StartTime   string              `json:"start_time"`
	EndTime     string              `json:"end_time"`
	BranchName  string              `json:"branch_name"`
	CoachName   string              `json:"coach_name"`
	PlayerName  string              `json:"player_name"`
	PackageType string              `json:"package_type"`
	Status      AttendanceStatus    `json:"status"`
	Duration    decimal.NullDecimal `json:"duration"`
	Cycle       *int                `json:"cycle"`
	MarkedAt    *time.Time          `json:"marked_at"`
}

// SessionConflict describes the session that blocked a create/update.
type SessionConflict struct {
	SessionID  string    `json:"session_id"`
	Date       time.Time `json:"date"`
	StartTime  string    `json:"start_time"`
	EndTime    string    `json:"end_time"`
	BranchName string    `json:"branch_name,omitempty"`
	CoachName  string    `json:"coach_name,omitempty"`
}
