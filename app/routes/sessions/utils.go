package sessions

import (
	"fmt"
	"time"

	"apex-academy/app/config"
	"apex-academy/app/database"
	"apex-academy/app/models"

	"github.com/gofiber/fiber/v2"
)

// parseSessionWindow validates the session date and HH:MM time strings and
// checks the end falls after the start.
func parseSessionWindow(dateStr, startStr, endStr string) (time.Time, error) {
	date, err := time.Parse("2006-01-02", dateStr)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date format, use YYYY-MM-DD")
	}
	start, err := time.Parse("15:04", startStr)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid start time, use HH:MM")
	}
	end, err := time.Parse("15:04", endStr)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid end time, use HH:MM")
	}
	if !end.After(start) {
		return time.Time{}, fmt.Errorf("end time must be after start time")
	}
	return date, nil
}

// parseDateParam parses an optional YYYY-MM-DD query parameter.
func parseDateParam(s string) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return nil, fmt.Errorf("invalid date, use YYYY-MM-DD")
	}
	return &t, nil
}

// coachScope narrows list queries to the signed-in coach's own sessions.
// Admins keep whatever filter they asked for. The second return is true when
// the caller is a coach without a coach profile, meaning nothing to show.
func coachScope(c *fiber.Ctx, requested string) (string, bool, error) {
	user := c.Locals("user").(*models.User)
	if user.IsAdmin() {
		return requested, false, nil
	}

	coach, err := database.GetCoachByUserID(config.GetDB(), user.ID)
	if err != nil {
		return "", false, err
	}
	if coach == nil {
		return "", true, nil
	}
	return coach.ID, false, nil
}
