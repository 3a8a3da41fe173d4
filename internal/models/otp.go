package models

import (
	"time"
)

// OTPVerification holds a pending email verification code. Expiry is
// enforced by comparing CreatedAt against the current time at read time,
// not by a background sweep.
type OTPVerification struct {
	Email     string    `gorm:"primaryKey;size:255" json:"email"`
	Code      string    `gorm:"size:10;not null" json:"-"`
	Attempts  int       `gorm:"default:0" json:"attempts"`
	CreatedAt time.Time `json:"createdAt"`
}
