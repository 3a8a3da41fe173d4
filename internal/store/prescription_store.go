package store

import (
	"context"

	"gorm.io/gorm"

	"ehealth-portal-server/internal/models"
)

// PrescriptionStore is the GORM-backed prescription ledger. Rows are only
// ever inserted and read; there is no edit or delete path.
type PrescriptionStore struct {
	db *gorm.DB
}

// NewPrescriptionStore creates a prescription store.
func NewPrescriptionStore(db *gorm.DB) *PrescriptionStore {
	return &PrescriptionStore{db: db}
}

// Create inserts a prescription.
func (s *PrescriptionStore) Create(ctx context.Context, p *models.Prescription) error {
	return s.db.WithContext(ctx).Create(p).Error
}

// ListForPatient returns a patient's prescriptions newest-first.
func (s *PrescriptionStore) ListForPatient(ctx context.Context, patientEmail string) ([]models.Prescription, error) {
	var ps []models.Prescription
	err := s.db.WithContext(ctx).
		Where("patient_email = ?", patientEmail).
		Order("created_at DESC, id DESC").
		Find(&ps).Error
	if err != nil {
		return nil, err
	}
	return ps, nil
}
