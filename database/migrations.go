package database

import (
	"errors"
	"log"
	"os"
	"time"

	"taskvine/models"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Migrate runs AutoMigrate for every model plus the raw revocation table
// the JWT layer falls back to when Redis is absent.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&models.Admin{},
		&models.RefreshToken{},
		&models.User{},
		&models.Category{},
		&models.MarketplaceTask{},
		&models.UserTask{},
		&models.LedgerEntry{},
		&models.Bank{},
		&models.PayoutProfile{},
		&models.Withdrawal{},
		&models.Setting{},
	); err != nil {
		return err
	}
	return db.Exec(`CREATE TABLE IF NOT EXISTS revoked_tokens (
		id VARCHAR(64) PRIMARY KEY,
		revoked_at DATETIME NOT NULL
	)`).Error
}

// Seed inserts the single settings row, a bootstrap admin and a starter
// bank list when the tables are empty. Idempotent.
func Seed(db *gorm.DB) error {
	var setting models.Setting
	if err := db.Take(&setting).Error; err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
		setting = models.Setting{
			Name:              getenv("APP_NAME", "TaskVine"),
			MinWithdraw:       1,
			MaxWithdraw:       1000,
			DefaultDailyQuota: 5,
		}
		if err := db.Create(&setting).Error; err != nil {
			return err
		}
	}

	var adminCount int64
	if err := db.Model(&models.Admin{}).Count(&adminCount).Error; err != nil {
		return err
	}
	if adminCount == 0 {
		password := os.Getenv("ADMIN_BOOTSTRAP_PASSWORD")
		if password == "" {
			log.Println("[seed] ADMIN_BOOTSTRAP_PASSWORD not set, skipping admin seed")
		} else {
			hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
			if err != nil {
				return err
			}
			admin := models.Admin{
				Username:  getenv("ADMIN_BOOTSTRAP_USERNAME", "admin"),
				Password:  string(hashed),
				Name:      "Administrator",
				Email:     getenv("ADMIN_BOOTSTRAP_EMAIL", "admin@taskvine.local"),
				IsActive:  true,
				CreatedAt: time.Now(),
			}
			if err := db.Create(&admin).Error; err != nil {
				return err
			}
			log.Printf("[seed] bootstrap admin %q created", admin.Username)
		}
	}

	var bankCount int64
	if err := db.Model(&models.Bank{}).Count(&bankCount).Error; err != nil {
		return err
	}
	if bankCount == 0 {
		banks := []models.Bank{
			{Name: "Bank Transfer", ShortName: "BANK", Type: "bank", Code: "BT", Status: "Active"},
			{Name: "PayPal", ShortName: "PP", Type: "ewallet", Code: "PAYPAL", Status: "Active"},
			{Name: "Wise", ShortName: "WISE", Type: "ewallet", Code: "WISE", Status: "Active"},
		}
		if err := db.Create(&banks).Error; err != nil {
			return err
		}
	}

	var categoryCount int64
	if err := db.Model(&models.Category{}).Count(&categoryCount).Error; err != nil {
		return err
	}
	if categoryCount == 0 {
		categories := []models.Category{
			{Name: "comment", Description: "Leave a comment on a post or video", Status: "Active"},
			{Name: "review", Description: "Write a short product or place review", Status: "Active"},
			{Name: "social", Description: "Engage with a social media post", Status: "Active"},
		}
		if err := db.Create(&categories).Error; err != nil {
			return err
		}
	}

	return nil
}
