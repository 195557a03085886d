package models

import "time"

// Branch represents a physical training location.
type Branch struct {
	ID        string     `json:"id" gorm:"primaryKey;type:uuid;default:gen_random_uuid()" validate:"required,uuid"`
	Name      string     `json:"name" gorm:"uniqueIndex;not null" validate:"required"`
	Code      string     `json:"code" gorm:"uniqueIndex;not null" validate:"required"`
	Address   string     `json:"address,omitempty"`
	Phone     string     `json:"phone,omitempty" gorm:"type:varchar(20)"`
	IsActive  bool       `json:"is_active" gorm:"default:true"`
	CreatedAt time.Time  `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt time.Time  `json:"updated_at" gorm:"autoUpdateTime"`
	DeletedAt *time.Time `json:"deleted_at,omitempty" gorm:"index"`

	PlayerCount int `json:"player_count" gorm:"-"`
	CoachCount  int `json:"coach_count" gorm:"-"`
}
