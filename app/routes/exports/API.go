package exports

import (
	"fmt"
	"time"

	"apex-academy/app/config"
	"apex-academy/app/database"
	"apex-academy/app/services"

	"github.com/gofiber/fiber/v2"
)

// exportCap bounds how many rows a single export pulls.
const exportCap = 10000

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

func ExportPlayersCSV(c *fiber.Ctx) error {
	table, err := playersTable(c)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch players"})
	}
	return sendCSV(c, table)
}

func ExportPlayersXLSX(c *fiber.Ctx) error {
	table, err := playersTable(c)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch players"})
	}
	return sendXLSX(c, table)
}

func ExportAttendanceCSV(c *fiber.Ctx) error {
	table, status, err := attendanceTable(c)
	if err != nil {
		return c.Status(status).JSON(fiber.Map{"error": err.Error()})
	}
	return sendCSV(c, table)
}

func ExportAttendanceXLSX(c *fiber.Ctx) error {
	table, status, err := attendanceTable(c)
	if err != nil {
		return c.Status(status).JSON(fiber.Map{"error": err.Error()})
	}
	return sendXLSX(c, table)
}

func ExportPaymentsCSV(c *fiber.Ctx) error {
	table, status, err := paymentsTable(c)
	if err != nil {
		return c.Status(status).JSON(fiber.Map{"error": err.Error()})
	}
	return sendCSV(c, table)
}

func ExportPaymentsXLSX(c *fiber.Ctx) error {
	table, status, err := paymentsTable(c)
	if err != nil {
		return c.Status(status).JSON(fiber.Map{"error": err.Error()})
	}
	return sendXLSX(c, table)
}

func playersTable(c *fiber.Ctx) (services.ExportTable, error) {
	players, _, err := database.SearchPlayersWithPagination(config.GetDB(),
		c.Query("search"), c.Query("branch_id"), c.QueryBool("low_balance", false), exportCap, 0)
	if err != nil {
		return services.ExportTable{}, err
	}
	return services.PlayersExportTable(players), nil
}

// attendanceTable builds the attendance export for a required date window.
func attendanceTable(c *fiber.Ctx) (services.ExportTable, int, error) {
	from, err := time.Parse("2006-01-02", c.Query("from"))
	if err != nil {
		return services.ExportTable{}, 400, fmt.Errorf("from is required. Use YYYY-MM-DD")
	}
	to, err := time.Parse("2006-01-02", c.Query("to"))
	if err != nil {
		return services.ExportTable{}, 400, fmt.Errorf("to is required. Use YYYY-MM-DD")
	}
	if to.Before(from) {
		return services.ExportTable{}, 400, fmt.Errorf("to must not be before from")
	}

	rows, err := database.GetAttendanceForExport(config.GetDB(), from, to, c.Query("branch_id"))
	if err != nil {
		return services.ExportTable{}, 500, fmt.Errorf("failed to fetch attendance")
	}
	return services.AttendanceExportTable(rows), 0, nil
}

func paymentsTable(c *fiber.Ctx) (services.ExportTable, int, error) {
	var dateFrom, dateTo *time.Time
	if s := c.Query("date_from"); s != "" {
		t, err := time.Parse("2006-01-02", s)
		if err != nil {
			return services.ExportTable{}, 400, fmt.Errorf("invalid date_from. Use YYYY-MM-DD")
		}
		dateFrom = &t
	}
	if s := c.Query("date_to"); s != "" {
		t, err := time.Parse("2006-01-02", s)
		if err != nil {
			return services.ExportTable{}, 400, fmt.Errorf("invalid date_to. Use YYYY-MM-DD")
		}
		dateTo = &t
	}

	payments, _, err := database.SearchPaymentsWithPagination(config.GetDB(),
		c.Query("player_id"), c.Query("method"), dateFrom, dateTo, exportCap, 0)
	if err != nil {
		return services.ExportTable{}, 500, fmt.Errorf("failed to fetch payments")
	}
	return services.PaymentsExportTable(payments), 0, nil
}

func sendCSV(c *fiber.Ctx, table services.ExportTable) error {
	data, err := table.CSV()
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to render CSV"})
	}

	c.Set("Content-Type", "text/csv")
	c.Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", table.Name+".csv"))
	return c.Send(data)
}

func sendXLSX(c *fiber.Ctx, table services.ExportTable) error {
	data, err := table.XLSX()
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to render XLSX"})
	}

	c.Set("Content-Type", xlsxContentType)
	c.Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", table.Name+".xlsx"))
	return c.Send(data)
}
