package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Payment represents money collected from a player's guardian, recorded by
// admin staff. Reference is the receipt number printed on the receipt.
type Payment struct {
	ID         string          `json:"id" gorm:"primaryKey;type:uuid;default:gen_random_uuid()" validate:"required,uuid"`
	PlayerID   string          `json:"player_id" gorm:"not null;index;type:uuid" validate:"required,uuid"`
	Amount     decimal.Decimal `json:"amount" gorm:"not null;type:numeric(12,2)" validate:"required"`
	Method     PaymentMethod   `json:"method" gorm:"not null;type:varchar(10)" validate:"required,oneof=cash card transfer"`
	Reference  string          `json:"reference" gorm:"uniqueIndex;not null"`
	PaidAt     time.Time       `json:"paid_at" gorm:"not null;index"`
	Notes      string          `json:"notes,omitempty"`
	RecordedBy *string         `json:"recorded_by,omitempty" gorm:"type:uuid"`
	CreatedAt  time.Time       `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt  time.Time       `json:"updated_at" gorm:"autoUpdateTime"`
	DeletedAt  *time.Time      `json:"deleted_at,omitempty" gorm:"index"`

	Player *Player `json:"player,omitempty" gorm:"foreignKey:PlayerID;references:ID"`

	PlayerName string `json:"player_name,omitempty" gorm:"-"`
}

// Receipt is the payload behind a printed receipt: the payment, the academy
// details and a QR code of the receipt reference for lookups.
type Receipt struct {
	Payment     *Payment  `json:"payment"`
	PlayerName  string    `json:"player_name"`
	BranchName  string    `json:"branch_name,omitempty"`
	AcademyName string    `json:"academy_name"`
	IssuedAt    time.Time `json:"issued_at"`
	QRCode      string    `json:"qr_code,omitempty"` // base64 PNG of the reference
}
