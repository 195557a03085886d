package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// AttendanceRecord tracks one player's attendance for one training session.
// Records are created pending when a player is attached to a session and only
// ever mutate through the status-change flow, which also keeps the player's
// remaining-session balance in step.
//
// SessionDuration is only stored on transition into present and holds the
// decimal credits deducted (1.0 unless the player is on a personal-training
// package). PackageCycle is assigned once, the first time the record becomes
// present, and is never recomputed.
type AttendanceRecord struct {
	ID              string              `json:"id" gorm:"primaryKey;type:uuid;default:gen_random_uuid()" validate:"required,uuid"`
	SessionID       string              `json:"session_id" gorm:"not null;index;type:uuid" validate:"required,uuid"`
	PlayerID        string              `json:"player_id" gorm:"not null;index;type:uuid" validate:"required,uuid"`
	Status          AttendanceStatus    `json:"status" gorm:"not null;default:'pending';type:varchar(10)" validate:"required,oneof=pending present absent"`
	MarkedAt        *time.Time          `json:"marked_at,omitempty"`
	MarkedBy        *string             `json:"marked_by,omitempty" gorm:"type:uuid"`
	SessionDuration decimal.NullDecimal `json:"session_duration,omitempty" gorm:"type:numeric(4,2)"`
	PackageCycle    *int                `json:"package_cycle,omitempty"`
	CreatedAt       time.Time           `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt       time.Time           `json:"updated_at" gorm:"autoUpdateTime"`

	Session *TrainingSession `json:"session,omitempty" gorm:"foreignKey:SessionID;references:ID"`
	Player  *Player          `json:"player,omitempty" gorm:"foreignKey:PlayerID;references:ID"`
}

// RosterEntry extends an attendance record with the player details the
// session roster screen needs.
type RosterEntry struct {
	AttendanceRecord
	PlayerName        string          `json:"player_name"`
	PackageType       string          `json:"package_type"`
	RemainingSessions decimal.Decimal `json:"remaining_sessions"`
}

// AttendanceHistoryEntry is one row of a player's attendance trail.
type AttendanceHistoryEntry struct {
	AttendanceRecord
	SessionDate time.Time `json:"session_date"`
	StartTime   string    `json:"start_time"`
	EndTime     string    `json:"end_time"`
	BranchName  string    `json:"branch_name"`
	CoachName   string    `json:"coach_name,omitempty"`
}
