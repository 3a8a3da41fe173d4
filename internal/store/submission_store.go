package store

import (
	"context"

	"gorm.io/gorm"

	"ehealth-portal-server/internal/models"
)

// SubmissionStore persists triage submissions and user feedback.
type SubmissionStore struct {
	db *gorm.DB
}

// NewSubmissionStore creates a submission store.
func NewSubmissionStore(db *gorm.DB) *SubmissionStore {
	return &SubmissionStore{db: db}
}

// AddSubmission records one triage run.
func (s *SubmissionStore) AddSubmission(ctx context.Context, sub *models.Submission) error {
	return s.db.WithContext(ctx).Create(sub).Error
}

// SubmissionsFor returns a patient's triage history newest-first.
func (s *SubmissionStore) SubmissionsFor(ctx context.Context, patientEmail string) ([]models.Submission, error) {
	var subs []models.Submission
	err := s.db.WithContext(ctx).
		Where("patient_email = ?", patientEmail).
		Order("created_at DESC, id DESC").
		Find(&subs).Error
	if err != nil {
		return nil, err
	}
	return subs, nil
}

// AddFeedback records one feedback entry.
func (s *SubmissionStore) AddFeedback(ctx context.Context, fb *models.Feedback) error {
	return s.db.WithContext(ctx).Create(fb).Error
}

// ListFeedback returns all feedback newest-first.
func (s *SubmissionStore) ListFeedback(ctx context.Context) ([]models.Feedback, error) {
	var fbs []models.Feedback
	err := s.db.WithContext(ctx).Order("created_at DESC, id DESC").Find(&fbs).Error
	if err != nil {
		return nil, err
	}
	return fbs, nil
}
