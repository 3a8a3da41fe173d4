package store

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"ehealth-portal-server/internal/chat"
	"ehealth-portal-server/internal/models"
)

// OTPStore persists pending email verification codes.
type OTPStore struct {
	db  *gorm.DB
	ttl time.Duration
}

// NewOTPStore creates an OTP store with the given code lifetime.
func NewOTPStore(db *gorm.DB, ttl time.Duration) *OTPStore {
	return &OTPStore{db: db, ttl: ttl}
}

// Save stores a fresh code for the email, replacing any previous one and
// resetting the attempt counter.
func (s *OTPStore) Save(ctx context.Context, email, code string) error {
	otp := &models.OTPVerification{
		Email:     email,
		Code:      code,
		Attempts:  0,
		CreatedAt: time.Now(),
	}
	return s.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "email"}},
			UpdateAll: true,
		}).
		Create(otp).Error
}

// Get returns the pending code for the email. Expiry is checked against the
// stored creation time; an expired code is deleted and reported as missing.
func (s *OTPStore) Get(ctx context.Context, email string) (*models.OTPVerification, error) {
	var otp models.OTPVerification
	err := s.db.WithContext(ctx).First(&otp, "email = ?", email).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, chat.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	if time.Since(otp.CreatedAt) > s.ttl {
		if err := s.Delete(ctx, email); err != nil {
			return nil, err
		}
		return nil, chat.ErrNotFound
	}
	return &otp, nil
}

// IncrementAttempts bumps the failed-attempt counter for the email.
func (s *OTPStore) IncrementAttempts(ctx context.Context, email string) error {
	return s.db.WithContext(ctx).Exec(
		"UPDATE otp_verifications SET attempts = attempts + 1 WHERE email = ?", email).Error
}

// Delete removes the pending code for the email.
func (s *OTPStore) Delete(ctx context.Context, email string) error {
	return s.db.WithContext(ctx).Delete(&models.OTPVerification{}, "email = ?", email).Error
}
