package main

import (
	"flag"
	"fmt"
	"log"

	"apex-academy/app/config"
	"apex-academy/app/database"
	"apex-academy/app/models"
	"apex-academy/app/routes/auth"
)

// Bootstraps a login account, typically the first admin on a fresh install:
//
//	go run ./app/cmd/add_user -email admin@example.com -password secret123 -first Ada -last Nankya -role admin
func main() {
	email := flag.String("email", "", "login email (required)")
	password := flag.String("password", "", "login password, at least 8 characters (required)")
	firstName := flag.String("first", "", "first name (required)")
	lastName := flag.String("last", "", "last name (required)")
	phone := flag.String("phone", "", "phone number")
	role := flag.String("role", models.RoleAdmin, "role to grant: admin or coach")
	flag.Parse()

	if *email == "" || *password == "" || *firstName == "" || *lastName == "" {
		flag.Usage()
		log.Fatal("email, password, first and last are required")
	}
	if len(*password) < 8 {
		log.Fatal("password must be at least 8 characters")
	}
	if *role != models.RoleAdmin && *role != models.RoleCoach {
		log.Fatalf("unknown role %q: must be admin or coach", *role)
	}

	config.LoadEnv()
	config.InitDB()
	db := config.GetDB()
	if db == nil {
		log.Fatal("Failed to connect to database")
	}
	defer db.Close()

	hashed, err := auth.HashPassword(*password)
	if err != nil {
		log.Fatal("Failed to hash password:", err)
	}

	user := &models.User{
		Email:     *email,
		Password:  hashed,
		FirstName: *firstName,
		LastName:  *lastName,
		Phone:     *phone,
	}

	if err := database.CreateUser(db, user, []string{*role}); err != nil {
		log.Fatalf("Error creating user: %v", err)
	}

	fmt.Printf("User created successfully: %s %s (%s) with role %s\n",
		user.FirstName, user.LastName, user.Email, *role)
}
