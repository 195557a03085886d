package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// TrainingPackage is a catalog entry players purchase: a number of session
// credits at a price. RequiresDuration marks packages whose attendances need
// an explicit duration (personal training); fixed-length packages always
// consume exactly 1.0 per attendance.
type TrainingPackage struct {
	ID               string          `json:"id" gorm:"primaryKey;type:uuid;default:gen_random_uuid()" validate:"required,uuid"`
	Name             string          `json:"name" gorm:"uniqueIndex;not null" validate:"required"`
	Sessions         decimal.Decimal `json:"sessions" gorm:"type:numeric(6,2);not null" validate:"required"`
	Price            decimal.Decimal `json:"price" gorm:"type:numeric(12,2);not null"`
	RequiresDuration bool            `json:"requires_duration" gorm:"default:false"`
	IsActive         bool            `json:"is_active" gorm:"default:true"`
	CreatedAt        time.Time       `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt        time.Time       `json:"updated_at" gorm:"autoUpdateTime"`
	DeletedAt        *time.Time      `json:"deleted_at,omitempty" gorm:"index"`

	PlayerCount int `json:"player_count" gorm:"-"`
}

// PlayerPackageHistory is an append-only snapshot written each time a player
// renews a package. The initial assignment writes no row, so the count of
// rows for a player plus one is the player's current package cycle.
type PlayerPackageHistory struct {
	ID          string          `json:"id" gorm:"primaryKey;type:uuid;default:gen_random_uuid()"`
	PlayerID    string          `json:"player_id" gorm:"not null;index;type:uuid" validate:"required,uuid"`
	PackageID   *string         `json:"package_id,omitempty" gorm:"index;type:uuid"`
	PackageName string          `json:"package_name" gorm:"not null"`
	Sessions    decimal.Decimal `json:"sessions" gorm:"type:numeric(6,2);not null"`
	PricePaid   decimal.Decimal `json:"price_paid" gorm:"type:numeric(12,2);default:0"`
	RenewedAt   time.Time       `json:"renewed_at" gorm:"not null;index"`

	Player *Player `json:"player,omitempty" gorm:"foreignKey:PlayerID;references:ID"`

	Cycle int `json:"cycle" gorm:"-"` // the cycle this renewal opened
}
