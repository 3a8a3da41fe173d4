package models

import (
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

// Database connection instance
var DB *gorm.DB

// InitDB initializes database connection
func InitDB(config DatabaseConfig) (*gorm.DB, error) {
	var err error

	// Connect to MySQL database. TranslateError maps driver duplicate-key
	// errors to gorm.ErrDuplicatedKey for the identity store.
	DB, err = gorm.Open(mysql.Open(config.DSN), &gorm.Config{TranslateError: true})
	if err != nil {
		return nil, err
	}

	// Auto migrate the database models
	err = DB.AutoMigrate(
		&Patient{},
		&Doctor{},
		&OTPVerification{},
		&ChatRequest{},
		&ChatMessage{},
		&ChatAttachment{},
		&Notification{},
		&Prescription{},
		&Submission{},
		&Feedback{},
	)
	if err != nil {
		return nil, err
	}

	return DB, nil
}

// DatabaseConfig holds database configuration
type DatabaseConfig struct {
	DSN string
}
