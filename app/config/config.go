package config

import (
	"database/sql"
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
)

type Config struct {
	AppPort     string
	AppEnv      string
	AcademyName string
	JWTSecret   string

	DB   *sql.DB
	SMTP SMTPConfig
}

// SMTPConfig is kept for the mail integration hook; the server itself does
// not send mail.
type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
}

var AppConfig *Config

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getenvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

// LoadEnv reads .env if present. Missing file is fine in production where
// everything arrives through real environment variables.
func LoadEnv() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}
}

// InitDB opens the Postgres pool and fails fast when the database is
// unreachable.
func InitDB() {
	host := getenv("DB_HOST", "localhost")
	port := getenvInt("DB_PORT", 5432)
	user := getenv("DB_USER", "postgres")
	password := getenv("DB_PASSWORD", "")
	dbname := getenv("DB_NAME", "apexacademy")
	sslmode := getenv("DB_SSLMODE", "disable")

	psqlInfo := fmt.Sprintf("host=%s port=%d user=%s dbname=%s sslmode=%s connect_timeout=10",
		host, port, user, dbname, sslmode)
	if password != "" {
		psqlInfo += " password=" + password
	}

	db, err := sql.Open("postgres", psqlInfo)
	if err != nil {
		log.Fatal("Failed to open database connection:", err)
	}

	// Set connection pool settings
	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)

	log.Println("Testing database connection...")
	if err = db.Ping(); err != nil {
		log.Printf("Database connection failed: %v", err)
		log.Printf("Check DB_HOST/DB_PORT/DB_USER/DB_NAME (tried %s:%d, db %q)", host, port, dbname)
		log.Fatal("Cannot establish database connection")
	}

	AppConfig = &Config{
		AppPort:     getenv("APP_PORT", "8080"),
		AppEnv:      getenv("APP_ENV", "dev"),
		AcademyName: getenv("ACADEMY_NAME", "Apex Academy"),
		JWTSecret:   getenv("JWT_SECRET", ""),
		DB:          db,
		SMTP: SMTPConfig{
			Host:     getenv("SMTP_HOST", ""),
			Port:     getenvInt("SMTP_PORT", 587),
			Username: getenv("SMTP_USERNAME", ""),
			Password: getenv("SMTP_PASSWORD", ""),
			From:     getenv("SMTP_FROM", ""),
		},
	}
	log.Println("Database connected successfully")
}

func GetDB() *sql.DB {
	return AppConfig.DB
}

// GetAcademyName returns the configured academy display name.
func GetAcademyName() string {
	if AppConfig == nil {
		return "Apex Academy"
	}
	return AppConfig.AcademyName
}
