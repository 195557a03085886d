package models

// AttendanceStatus defines the possible status values for an attendance record.
type AttendanceStatus string

const (
	AttendancePending AttendanceStatus = "pending"
	AttendancePresent AttendanceStatus = "present"
	AttendanceAbsent  AttendanceStatus = "absent"
)

// Valid returns true when the status is one of the supported values.
func (s AttendanceStatus) Valid() bool {
	switch s {
	case AttendancePending, AttendancePresent, AttendanceAbsent:
		return true
	default:
		return false
	}
}

// SessionStatus defines the lifecycle states of a training session.
type SessionStatus string

const (
	SessionScheduled SessionStatus = "scheduled"
	SessionCompleted SessionStatus = "completed"
	SessionCancelled SessionStatus = "cancelled"
)

// Valid returns true when the status is one of the supported values.
func (s SessionStatus) Valid() bool {
	switch s {
	case SessionScheduled, SessionCompleted, SessionCancelled:
		return true
	default:
		return false
	}
}

// PaymentMethod defines how a payment was collected.
type PaymentMethod string

const (
	PaymentCash     PaymentMethod = "cash"
	PaymentCard     PaymentMethod = "card"
	PaymentTransfer PaymentMethod = "transfer"
)

// Valid returns true when the method is one of the supported values.
func (m PaymentMethod) Valid() bool {
	switch m {
	case PaymentCash, PaymentCard, PaymentTransfer:
		return true
	default:
		return false
	}
}

// Role names used for route gating.
const (
	RoleAdmin = "admin"
	RoleCoach = "coach"
)

// Gender defines the possible gender values for a player.
type Gender string

const (
	Male   Gender = "male"
	Female Gender = "female"
	Other  Gender = "other"
)
