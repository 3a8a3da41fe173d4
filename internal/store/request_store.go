package store

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"ehealth-portal-server/internal/chat"
	"ehealth-portal-server/internal/models"
)

// requestIDSeed is one below the first id ever assigned: the first request
// gets id 1001.
const requestIDSeed = 1000

// RequestStore is the GORM-backed chat request ledger.
type RequestStore struct {
	db *gorm.DB
}

// NewRequestStore creates a request store.
func NewRequestStore(db *gorm.DB) *RequestStore {
	return &RequestStore{db: db}
}

// Create inserts the request with the next unused request id. The id is
// computed from max(request_id)+1 inside the same transaction as the insert,
// so concurrent creators serialize on the row lock and never share an id.
func (s *RequestStore) Create(ctx context.Context, req *models.ChatRequest) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var next int64
		err := tx.Raw("SELECT COALESCE(MAX(request_id), ?) + 1 FROM chat_requests FOR UPDATE", requestIDSeed).
			Scan(&next).Error
		if err != nil {
			return fmt.Errorf("next request id: %w", err)
		}
		req.RequestID = next
		return tx.Create(req).Error
	})
}

// Get returns a request by id.
func (s *RequestStore) Get(ctx context.Context, id int64) (*models.ChatRequest, error) {
	var req models.ChatRequest
	err := s.db.WithContext(ctx).First(&req, "request_id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, chat.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &req, nil
}

// List returns requests newest-first, optionally filtered by participant
// email and/or status.
func (s *RequestStore) List(ctx context.Context, filter chat.RequestFilter) ([]models.ChatRequest, error) {
	query := s.db.WithContext(ctx).Order("created_at DESC, request_id DESC")
	if filter.PatientEmail != "" {
		query = query.Where("patient_email = ?", filter.PatientEmail)
	}
	if filter.DoctorEmail != "" {
		query = query.Where("doctor_email = ?", filter.DoctorEmail)
	}
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	var requests []models.ChatRequest
	if err := query.Find(&requests).Error; err != nil {
		return nil, err
	}
	return requests, nil
}

// UpdateStatus swaps the status only if the current value is one of from.
// A single conditional UPDATE keeps the swap atomic under concurrent
// accept/close attempts; the loser sees zero affected rows.
func (s *RequestStore) UpdateStatus(ctx context.Context, id int64, from []models.RequestStatus, to models.RequestStatus) (bool, error) {
	res := s.db.WithContext(ctx).Exec(
		"UPDATE chat_requests SET status = ? WHERE request_id = ? AND status IN ?",
		to, id, from)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}
