package chat

import (
	"context"

	"ehealth-portal-server/internal/models"
)

// RequestFilter narrows a request listing. Zero values mean "no filter".
type RequestFilter struct {
	PatientEmail string
	DoctorEmail  string
	Status       models.RequestStatus
}

// RequestStore persists chat requests. Create must assign the next unused
// request id atomically at the store layer: concurrent creators never receive
// the same id, and ids are never reused after closure.
type RequestStore interface {
	Create(ctx context.Context, req *models.ChatRequest) error
	Get(ctx context.Context, id int64) (*models.ChatRequest, error)
	List(ctx context.Context, filter RequestFilter) ([]models.ChatRequest, error)

	// UpdateStatus performs a compare-and-swap: the row is updated only if
	// its current status is one of from. It reports whether the swap applied.
	UpdateStatus(ctx context.Context, id int64, from []models.RequestStatus, to models.RequestStatus) (bool, error)
}

// MessageStore persists messages and attachments in append order.
type MessageStore interface {
	AppendMessage(ctx context.Context, msg *models.ChatMessage) error
	AppendAttachment(ctx context.Context, att *models.ChatAttachment) error
	MessagesFor(ctx context.Context, requestID int64) ([]models.ChatMessage, error)
	AttachmentsFor(ctx context.Context, requestID int64) ([]models.ChatAttachment, error)
	AttachmentByID(ctx context.Context, id uint) (*models.ChatAttachment, error)
}

// PrescriptionStore persists prescriptions. Rows are immutable once created.
type PrescriptionStore interface {
	Create(ctx context.Context, p *models.Prescription) error
	ListForPatient(ctx context.Context, patientEmail string) ([]models.Prescription, error)
}

// Directory resolves participants by email. Both lookups return ErrNotFound
// for unknown emails.
type Directory interface {
	PatientByEmail(ctx context.Context, email string) (*models.Patient, error)
	DoctorByEmail(ctx context.Context, email string) (*models.Doctor, error)
}

// Notifier delivers exactly one notification per call. The lifecycle
// controller is responsible for calling it exactly once per logical event.
type Notifier interface {
	Notify(ctx context.Context, recipientEmail, text string, requestID int64) error
}
