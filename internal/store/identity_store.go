package store

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"ehealth-portal-server/internal/chat"
	"ehealth-portal-server/internal/models"
)

// IdentityStore is the GORM-backed identity directory: patients and doctors
// keyed by email.
type IdentityStore struct {
	db *gorm.DB
}

// NewIdentityStore creates an identity store.
func NewIdentityStore(db *gorm.DB) *IdentityStore {
	return &IdentityStore{db: db}
}

// PatientByEmail resolves a patient by email.
func (s *IdentityStore) PatientByEmail(ctx context.Context, email string) (*models.Patient, error) {
	var p models.Patient
	err := s.db.WithContext(ctx).First(&p, "email = ?", email).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, chat.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// DoctorByEmail resolves a doctor (or the admin account) by email.
func (s *IdentityStore) DoctorByEmail(ctx context.Context, email string) (*models.Doctor, error) {
	var d models.Doctor
	err := s.db.WithContext(ctx).First(&d, "email = ?", email).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, chat.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &d, nil
}

// CreatePatient registers a new patient. A duplicate email or patient id
// surfaces as a ValidationError.
func (s *IdentityStore) CreatePatient(ctx context.Context, p *models.Patient) error {
	err := s.db.WithContext(ctx).Create(p).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return chat.Validationf("patient %q is already registered", p.Email)
	}
	return err
}

// CreateDoctor onboards a new doctor.
func (s *IdentityStore) CreateDoctor(ctx context.Context, d *models.Doctor) error {
	err := s.db.WithContext(ctx).Create(d).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return chat.Validationf("doctor %q is already registered", d.Email)
	}
	return err
}

// ListDoctors returns doctors ordered by name, optionally filtered by
// specialty. The admin account is excluded.
func (s *IdentityStore) ListDoctors(ctx context.Context, specialty string) ([]models.Doctor, error) {
	query := s.db.WithContext(ctx).
		Where("specialty <> ?", models.AdminSpecialty).
		Order("name ASC")
	if specialty != "" {
		query = query.Where("specialty = ?", specialty)
	}
	var docs []models.Doctor
	if err := query.Find(&docs).Error; err != nil {
		return nil, err
	}
	return docs, nil
}

// ListPatients returns all registered patients ordered by name.
func (s *IdentityStore) ListPatients(ctx context.Context) ([]models.Patient, error) {
	var ps []models.Patient
	err := s.db.WithContext(ctx).Order("name ASC").Find(&ps).Error
	if err != nil {
		return nil, err
	}
	return ps, nil
}

// SeedAdmin creates the admin account if it does not exist yet.
func (s *IdentityStore) SeedAdmin(ctx context.Context, email, password string) error {
	var count int64
	if err := s.db.WithContext(ctx).Model(&models.Doctor{}).Where("email = ?", email).Count(&count).Error; err != nil {
		return fmt.Errorf("check admin account: %w", err)
	}
	if count > 0 {
		return nil
	}
	admin := &models.Doctor{
		Email:         email,
		Name:          "System Admin",
		Mobile:        "0000000000",
		Specialty:     models.AdminSpecialty,
		DoctorID:      "000",
		Qualification: "System",
	}
	if err := admin.SetPassword(password); err != nil {
		return err
	}
	return s.db.WithContext(ctx).Create(admin).Error
}
