package models

import "time"

// Role represents a staff role (admin or coach).
type Role struct {
	ID        string     `json:"id" gorm:"primaryKey;type:uuid;default:gen_random_uuid()" validate:"required,uuid"`
	Name      string     `json:"name" gorm:"uniqueIndex;not null" validate:"required"`
	IsActive  bool       `json:"is_active" gorm:"default:true"`
	CreatedAt time.Time  `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt time.Time  `json:"updated_at" gorm:"autoUpdateTime"`
	DeletedAt *time.Time `json:"deleted_at,omitempty" gorm:"index"`
	Users     []*User    `json:"users,omitempty" gorm:"many2many:user_roles;"`
}

// UserRole links a user to a role.
type UserRole struct {
	ID        string    `json:"id" gorm:"primaryKey;type:uuid;default:gen_random_uuid()"`
	UserID    string    `json:"user_id" gorm:"not null;index;type:uuid"`
	RoleID    string    `json:"role_id" gorm:"not null;index;type:uuid"`
	CreatedAt time.Time `json:"created_at" gorm:"default:now()"`
	User      *User     `json:"user,omitempty" gorm:"foreignKey:UserID;references:ID"`
	Role      *Role     `json:"role,omitempty" gorm:"foreignKey:RoleID;references:ID"`
}
