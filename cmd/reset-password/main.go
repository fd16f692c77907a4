package main

import (
	"flag"
	"log"

	"go-kasir-pos/internal/model"
	"go-kasir-pos/pkg/database"

	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"
)

// Operational tool: reset a user's password (and optionally promote to
// ADMIN) straight in the database, for when the admin locks themselves out.
func main() {
	email := flag.String("email", "admin@example.com", "account email")
	password := flag.String("password", "admin123", "new password")
	promote := flag.Bool("admin", false, "also set role to ADMIN")
	flag.Parse()

	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found, relying on system env")
	}

	db, err := database.Connect()
	if err != nil {
		log.Fatal(err)
	}
	defer database.Close(db)

	var user model.User
	if err := db.Where("email = ?", *email).First(&user).Error; err != nil {
		log.Fatalf("User %s not found in database: %v", *email, err)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(*password), bcrypt.DefaultCost)
	if err != nil {
		log.Fatalf("Failed to hash password: %v", err)
	}

	updates := map[string]interface{}{"password": string(hashed)}
	if *promote {
		updates["role"] = model.RoleAdmin
	}

	if err := db.Model(&user).Updates(updates).Error; err != nil {
		log.Fatalf("Failed to update user: %v", err)
	}

	log.Printf("Password for %s has been reset", *email)
}
