package models

import "time"

// TrainingSession represents one scheduled block of training at a branch.
// Start and end times are "HH:MM" strings on a calendar date.
type TrainingSession struct {
	ID          string        `json:"id" gorm:"primaryKey;type:uuid;default:gen_random_uuid()" validate:"required,uuid"`
	Date        time.Time     `json:"date" gorm:"not null;index;type:date" validate:"required"`
	StartTime   string        `json:"start_time" gorm:"not null;type:varchar(5)" validate:"required"`
	EndTime     string        `json:"end_time" gorm:"not null;type:varchar(5)" validate:"required"`
	BranchID    string        `json:"branch_id" gorm:"not null;index;type:uuid" validate:"required,uuid"`
	CoachID     *string       `json:"coach_id,omitempty" gorm:"index;type:uuid" validate:"omitempty,uuid"`
	PackageType string        `json:"package_type,omitempty"` // program label, e.g. "Group Training" or "Personal Training"
	Status      SessionStatus `json:"status" gorm:"not null;default:'scheduled';type:varchar(10)" validate:"required,oneof=scheduled completed cancelled"`
	Notes       string        `json:"notes,omitempty"`
	CreatedAt   time.Time     `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt   time.Time     `json:"updated_at" gorm:"autoUpdateTime"`
	DeletedAt   *time.Time    `json:"deleted_at,omitempty" gorm:"index"`

	Branch *Branch `json:"branch,omitempty" gorm:"foreignKey:BranchID;references:ID"`
	Coach  *Coach  `json:"coach,omitempty" gorm:"foreignKey:CoachID;references:ID"`

	BranchName       string `json:"branch_name,omitempty" gorm:"-"`
	CoachName        string `json:"coach_name,omitempty" gorm:"-"`
	ParticipantCount int    `json:"participant_count" gorm:"-"`
	PresentCount     int    `json:"present_count" gorm:"-"`
}
