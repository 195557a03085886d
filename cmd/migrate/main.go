package main

import (
	"database/sql"
	"log"
	"os"

	"apex-academy/app/config"
	"apex-academy/app/database"
)

// Applies the SQL schema file and the in-process migrations. The server runs
// the same migrations on boot; this command exists for provisioning a fresh
// database without starting the app.
func main() {
	log.Println("Starting manual migration...")

	config.LoadEnv()
	config.InitDB()
	db := config.GetDB()
	if db == nil {
		log.Fatal("Failed to get database instance")
	}
	defer db.Close()

	executeSQLFile(db, "migrations/schema.sql")

	if err := database.RunMigrations(db); err != nil {
		log.Fatal("Migrations failed:", err)
	}

	log.Println("Manual migration completed successfully!")
}

func executeSQLFile(db *sql.DB, filePath string) {
	content, err := os.ReadFile(filePath)
	if err != nil {
		log.Printf("Skipping %s: %v", filePath, err)
		return
	}

	log.Printf("Executing %s...", filePath)
	if _, err := db.Exec(string(content)); err != nil {
		log.Printf("Error executing %s: %v", filePath, err)
	} else {
		log.Printf("Successfully executed %s", filePath)
	}
}
