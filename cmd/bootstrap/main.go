package main

import (
	"flag"
	"log"
	"os"

	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"

	"github.com/ESPSA/El-Wataneya/internal/config"
	"github.com/ESPSA/El-Wataneya/internal/db"
	"github.com/ESPSA/El-Wataneya/internal/models"
	"github.com/ESPSA/El-Wataneya/internal/utils/logger"
)

// Bootstrap CLI: creates the primary admin before the API ever starts, or
// rotates its password after a lockout. The API refuses admin management
// routes until exactly one primary admin exists.
func main() {
	console := logger.New("bootstrap")

	resetPassword := flag.String("reset-password", "", "rotate the primary admin password")
	flag.Parse()

	if _, err := os.Stat(".env"); err == nil {
		if err := godotenv.Load(); err != nil {
			log.Fatalf("Failed to load environment variables: %v", err)
		}
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	if err := db.Connect(cfg); err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	dbInstance := db.GetDB()

	if *resetPassword != "" {
		var primary models.User
		err := dbInstance.Where("type = ? AND is_primary = ? AND is_deleted = ?",
			models.UserTypeAdmin, true, false).First(&primary).Error
		if err != nil {
			log.Fatalf("No primary admin to reset: %v", err)
		}

		hashed, err := bcrypt.GenerateFromPassword([]byte(*resetPassword), bcrypt.DefaultCost)
		if err != nil {
			log.Fatalf("Failed to hash password: %v", err)
		}

		err = dbInstance.Model(&primary).Update("password_hash", string(hashed)).Error
		if err != nil {
			log.Fatalf("Failed to update password: %v", err)
		}

		// Open sessions die with their refresh tokens.
		dbInstance.Model(&models.RefreshToken{}).
			Where("user_id = ?", primary.ID).
			Update("revoked", true)

		console.Success("Primary admin password rotated for %s", primary.Email)
		return
	}

	if err := models.EnsurePrimaryAdmin(dbInstance, cfg); err != nil {
		log.Fatalf("Failed to ensure primary admin: %v", err)
	}

	console.Success("Primary admin verified ✅")
}
