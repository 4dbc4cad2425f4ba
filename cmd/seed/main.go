package main

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"gorm.io/gorm"

	"github.com/CopperGroup/JoyFer/config"
	"github.com/CopperGroup/JoyFer/models"
	"github.com/CopperGroup/JoyFer/services"
	"github.com/CopperGroup/JoyFer/utils"
)

const minPasswordLength = 8

// main creates the admin account used to sign in to the admin console, or
// promotes an existing customer with the same email.
// Usage: go run ./cmd/seed
func main() {
	fmt.Println("════════════════════════════════════════════════════════════")
	fmt.Println("JOYFER - Admin Seeder")
	fmt.Println("════════════════════════════════════════════════════════════")
	fmt.Println()

	settings, err := config.Load()
	if err != nil {
		utils.Log.Fatalf("Failed to load config: %v", err)
	}
	if err := config.InitDB(settings); err != nil {
		utils.Log.Fatalf("Failed to connect to database: %v", err)
	}
	defer config.CloseDB()
	utils.Log.Info("✓ Connected to database")

	email, password, name := getAdminCredentials()
	email = strings.ToLower(strings.TrimSpace(email))

	passwordHash, err := services.HashPassword(password)
	if err != nil {
		utils.Log.Fatalf("Failed to hash password: %v", err)
	}

	var admin models.User
	err = config.CmsGorm.Where("email = ?", email).First(&admin).Error
	switch {
	case err == nil && admin.IsAdmin:
		fmt.Printf("❌ Admin with email '%s' already exists\n", email)
		os.Exit(1)
	case err == nil:
		admin.IsAdmin = true
		admin.SelfCreated = false
		admin.PasswordHash = passwordHash
		if admin.Name == "" {
			admin.Name = name
		}
		if err := config.CmsGorm.Save(&admin).Error; err != nil {
			utils.Log.Fatalf("Failed to promote user: %v", err)
		}
		utils.Log.Infof("✓ Existing user '%s' promoted to admin", email)
	case errors.Is(err, gorm.ErrRecordNotFound):
		admin = models.User{
			Email:        email,
			Name:         name,
			Username:     name,
			PasswordHash: passwordHash,
			IsAdmin:      true,
		}
		if err := config.CmsGorm.Create(&admin).Error; err != nil {
			utils.Log.Fatalf("Failed to create admin: %v", err)
		}
	default:
		utils.Log.Fatalf("Database error: %v", err)
	}

	fmt.Println()
	fmt.Println("════════════════════════════════════════════════════════════")
	fmt.Println("✅ Admin Ready!")
	fmt.Println("════════════════════════════════════════════════════════════")
	fmt.Printf("ID:    %s\n", admin.ID)
	fmt.Printf("Email: %s\n", admin.Email)
	fmt.Printf("Name:  %s\n", admin.Name)
	fmt.Println()
	fmt.Println("Next steps:")
	fmt.Println("1. Start the server: go run .")
	fmt.Println("2. Login at POST /api/v1/auth/login with email and password")
	fmt.Println("3. Use the returned token for /api/v1/admin requests")
	fmt.Println()
}

// getAdminCredentials prompts for the admin details
func getAdminCredentials() (email, password, name string) {
	fmt.Println("Enter Admin Details:")
	fmt.Println()

	for {
		fmt.Print("Email: ")
		fmt.Scanln(&email)
		if strings.Contains(email, "@") {
			break
		}
		fmt.Println("❌ Email must be a valid address")
	}

	for {
		fmt.Print("Name: ")
		fmt.Scanln(&name)
		if name != "" {
			break
		}
		fmt.Println("❌ Name cannot be empty")
	}

	for {
		fmt.Print("Password (min 8 characters): ")
		fmt.Scanln(&password)
		if len(password) >= minPasswordLength {
			break
		}
		fmt.Println("❌ Password must be at least 8 characters")
	}

	for {
		fmt.Print("Confirm Password: ")
		var confirm string
		fmt.Scanln(&confirm)
		if confirm == password {
			break
		}
		fmt.Println("❌ Passwords do not match")
	}

	fmt.Println()
	return email, password, name
}
