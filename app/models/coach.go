package models

import "time"

// Coach represents a member of the coaching staff. A coach may optionally be
// linked to a login account (users table) so they can sign in and mark
// attendance for their own sessions.
type Coach struct {
	ID        string     `json:"id" gorm:"primaryKey;type:uuid;default:gen_random_uuid()" validate:"required,uuid"`
	UserID    *string    `json:"user_id,omitempty" gorm:"index;type:uuid" validate:"omitempty,uuid"`
	FirstName string     `json:"first_name" gorm:"not null" validate:"required"`
	LastName  string     `json:"last_name" gorm:"not null" validate:"required"`
	Phone     string     `json:"phone,omitempty" gorm:"type:varchar(20)"`
	Specialty string     `json:"specialty,omitempty"`
	BranchID  *string    `json:"branch_id,omitempty" gorm:"index;type:uuid" validate:"omitempty,uuid"`
	IsActive  bool       `json:"is_active" gorm:"default:true"`
	CreatedAt time.Time  `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt time.Time  `json:"updated_at" gorm:"autoUpdateTime"`
	DeletedAt *time.Time `json:"deleted_at,omitempty" gorm:"index"`

	Branch *Branch `json:"branch,omitempty" gorm:"foreignKey:BranchID;references:ID"`
	User   *User   `json:"user,omitempty" gorm:"foreignKey:UserID;references:ID"`

	BranchName   string `json:"branch_name,omitempty" gorm:"-"`
	SessionCount int    `json:"session_count" gorm:"-"`
}

// FullName returns the coach's display name.
func (c *Coach) FullName() string {
	return c.FirstName + " " + c.LastName
}
