package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Player represents an enrolled player. Sessions and RemainingSessions are
// decimal credit balances: fixed-length packages consume 1.0 per attendance,
// personal-training packages consume variable fractions (0.5 = 30 minutes).
type Player struct {
	ID                string          `json:"id" gorm:"primaryKey;type:uuid;default:gen_random_uuid()" validate:"required,uuid"`
	FirstName         string          `json:"first_name" gorm:"not null" validate:"required"`
	LastName          string          `json:"last_name" gorm:"not null" validate:"required"`
	Gender            *Gender         `json:"gender,omitempty" gorm:"type:varchar(10)"`
	BirthDate         *time.Time      `json:"birth_date,omitempty" gorm:"type:date"`
	GuardianName      string          `json:"guardian_name,omitempty"`
	GuardianPhone     string          `json:"guardian_phone,omitempty" gorm:"type:varchar(20)"`
	PackageID         *string         `json:"package_id,omitempty" gorm:"index;type:uuid" validate:"omitempty,uuid"`
	PackageType       string          `json:"package_type,omitempty"` // free text, matched against "personal"
	Sessions          decimal.Decimal `json:"sessions" gorm:"type:numeric(6,2);default:0"`
	RemainingSessions decimal.Decimal `json:"remaining_sessions" gorm:"type:numeric(6,2);default:0"`
	BranchID          *string         `json:"branch_id,omitempty" gorm:"index;type:uuid" validate:"omitempty,uuid"`
	IsActive          bool            `json:"is_active" gorm:"default:true"`
	CreatedAt         time.Time       `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt         time.Time       `json:"updated_at" gorm:"autoUpdateTime"`
	DeletedAt         *time.Time      `json:"deleted_at,omitempty" gorm:"index"`

	Branch  *Branch          `json:"branch,omitempty" gorm:"foreignKey:BranchID;references:ID"`
	Package *TrainingPackage `json:"package,omitempty" gorm:"foreignKey:PackageID;references:ID"`

	BranchName  string `json:"branch_name,omitempty" gorm:"-"`
	PackageName string `json:"package_name,omitempty" gorm:"-"`
}

// FullName returns the player's display name.
func (p *Player) FullName() string {
	return p.FirstName + " " + p.LastName
}

// LowBalance returns true when fewer than one full session credit remains.
func (p *Player) LowBalance() bool {
	return p.RemainingSessions.LessThan(decimal.NewFromInt(1))
}
