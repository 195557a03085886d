package metrics

import "github.com/prometheus/client_golang/prometheus"

var (
	AttendanceTransitions = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "apex_attendance_transitions_total",
			Help: "Number of attendance status transitions",
		},
		[]string{"from", "to"},
	)

	CreditsDebited = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "apex_session_credits_debited_total",
			Help: "Session credits deducted from player balances",
		},
	)

	CreditsCredited = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "apex_session_credits_credited_total",
			Help: "Session credits restored to player balances",
		},
	)

	BalanceClamps = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "apex_balance_clamps_total",
			Help: "Times a deduction was floored at zero balance",
		},
	)

	PaymentsRecorded = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "apex_payments_recorded_total",
			Help: "Number of payments recorded",
		},
	)

	SessionsAutoCompleted = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "apex_sessions_auto_completed_total",
			Help: "Past sessions closed by the scheduler",
		},
	)
)

func Register() {
	prometheus.MustRegister(
		AttendanceTransitions,
		CreditsDebited,
		CreditsCredited,
		BalanceClamps,
		PaymentsRecorded,
		SessionsAutoCompleted,
	)
}
