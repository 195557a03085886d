package services

import (
	"database/sql"
	"log"
	"time"

	"apex-academy/app/database"
	"apex-academy/app/metrics"
)

// ShouldRunNightlyClose reports whether the nightly close task fires at the
// given wall-clock minute. It runs at 23:55, late enough that every session
// ending that day is already over.
func ShouldRunNightlyClose(now time.Time) bool {
	return now.Hour() == 23 && now.Minute() == 55
}

// StartScheduler starts the background task scheduler.
func StartScheduler(db *sql.DB) {
	go func() {
		log.Println("Scheduler started...")
		ticker := time.NewTicker(1 * time.Minute)
		defer ticker.Stop()

		for range ticker.C {
			now := time.Now()

			if ShouldRunNightlyClose(now) {
				log.Println("Triggering scheduled tasks [23:55]...")
				CloseStaleSessions(db, now)
			}
		}
	}()
}

// CloseStaleSessions marks scheduled sessions whose end time has elapsed as
// completed. Attendance left pending stays pending; only the session status
// moves, so the sessions screen stops listing long-gone sessions as upcoming.
func CloseStaleSessions(db *sql.DB, now time.Time) {
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	closed, err := database.CompletePastSessions(db, today, now.Format("15:04"))
	if err != nil {
		log.Printf("Error completing past sessions: %v", err)
		return
	}
	if closed > 0 {
		metrics.SessionsAutoCompleted.Add(float64(closed))
		log.Printf("Auto-completed %d past sessions", closed)
	}
}
