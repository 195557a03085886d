package main

import (
	"log"
	"os"
	"strings"
	"time"

	"apex-academy/app/config"
	"apex-academy/app/database"
	"apex-academy/app/metrics"
	"apex-academy/app/routes/attendance"
	"apex-academy/app/routes/auth"
	"apex-academy/app/routes/branches"
	"apex-academy/app/routes/coaches"
	"apex-academy/app/routes/dashboard"
	"apex-academy/app/routes/exports"
	"apex-academy/app/routes/packages"
	"apex-academy/app/routes/payments"
	"apex-academy/app/routes/players"
	"apex-academy/app/routes/sessions"
	"apex-academy/app/services"

	"github.com/gofiber/adaptor/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/template/html/v2"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// customErrorHandler keeps API errors as JSON; the public receipt pages get
// the not-found template instead.
func customErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
	}

	if strings.HasPrefix(c.Path(), "/receipts") {
		return c.Status(code).Render("receipt_not_found", fiber.Map{
			"Title":     "Receipt Not Found - " + config.GetAcademyName(),
			"Reference": "",
		})
	}

	return c.Status(code).JSON(fiber.Map{
		"success": false,
		"error":   err.Error(),
		"code":    code,
	})
}

func main() {
	// Load environment before anything reads it
	config.LoadEnv()

	// Set global time zone; day boundaries (scheduler, receipt sequences)
	// follow the academy's local clock
	tz := os.Getenv("APP_TZ")
	if tz == "" {
		tz = "Africa/Kampala"
	}
	loc, err := time.LoadLocation(tz)
	if err != nil {
		log.Printf("Warning: Failed to load %s location, falling back to UTC+3: %v", tz, err)
		time.Local = time.FixedZone("EAT", 3*60*60)
	} else {
		time.Local = loc
	}
	log.Printf("Application time zone set to: %s", time.Local.String())

	// Initialize database
	config.InitDB()
	defer config.GetDB().Close()

	// Run database migrations
	if err := database.RunMigrations(config.GetDB()); err != nil {
		log.Fatal("Failed to run migrations:", err)
	}

	// Register Prometheus collectors
	metrics.Register()

	// Start background scheduler
	services.StartScheduler(config.GetDB())

	// Initialize template engine for the public receipt pages
	engine := html.New("./app/templates", ".html")
	engine.Reload(true) // Enable template reloading for development
	engine.Debug(false) // Disable debug mode to reduce verbose logs

	// Create Fiber app
	app := fiber.New(fiber.Config{
		Views:             engine,
		PassLocalsToViews: true,
		ErrorHandler:      customErrorHandler,
	})

	// Middleware
	app.Use(logger.New())
	app.Use(cors.New())

	// Health and metrics
	app.Get("/health", func(c *fiber.Ctx) error {
		if err := config.GetDB().Ping(); err != nil {
			return c.Status(503).JSON(fiber.Map{"status": "down", "error": err.Error()})
		}
		return c.JSON(fiber.Map{"status": "ok"})
	})
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	// Routes
	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"service": config.GetAcademyName(),
			"status":  "ok",
		})
	})

	// Setup auth routes
	auth.SetupAuthRoutes(app)

	// Setup dashboard routes
	dashboard.SetupDashboardRoutes(app)

	// Setup branches routes
	branches.SetupBranchesRoutes(app)

	// Setup coaches routes
	coaches.SetupCoachesRoutes(app)

	// Setup players routes
	players.SetupPlayersRoutes(app)

	// Setup packages routes
	packages.SetupPackagesRoutes(app)

	// Setup sessions routes
	sessions.SetupSessionsRoutes(app)

	// Setup attendance routes
	attendance.SetupAttendanceRoutes(app)

	// Setup payments routes
	payments.SetupPaymentsRoutes(app)

	// Setup exports routes
	exports.SetupExportsRoutes(app)

	// Catch-all route for 404 errors (must be last)
	app.Use("*", func(c *fiber.Ctx) error {
		return fiber.NewError(fiber.StatusNotFound, "Not found")
	})

	// Start server
	addr := ":" + config.AppConfig.AppPort
	log.Println("Server starting on", addr)
	log.Fatal(app.Listen(addr))
}
