package chat

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"ehealth-portal-server/internal/models"
)

// Service is the chat lifecycle controller. It is the only component that
// mutates request status, and it fires exactly one notification to the
// correct counterparty per successful state-changing event.
type Service struct {
	requests      RequestStore
	messages      MessageStore
	prescriptions PrescriptionStore
	directory     Directory
	notifier      Notifier
}

// NewService creates a chat lifecycle service.
func NewService(requests RequestStore, messages MessageStore, prescriptions PrescriptionStore, directory Directory, notifier Notifier) *Service {
	return &Service{
		requests:      requests,
		messages:      messages,
		prescriptions: prescriptions,
		directory:     directory,
		notifier:      notifier,
	}
}

// CreateRequestInput carries the fields needed to open a consultation thread.
type CreateRequestInput struct {
	PatientEmail string
	DoctorEmail  string
	Specialty    string
	Query        string
	Priority     bool

	// AdminAssigned creates the request directly in Accepted status: the
	// admin is trusted to pair a valid patient and doctor, so no acceptance
	// step is needed.
	AdminAssigned bool
}

// CreateRequest validates both participants, stores the request with the next
// request id and notifies the assigned doctor.
func (s *Service) CreateRequest(ctx context.Context, in CreateRequestInput) (*models.ChatRequest, error) {
	patient, err := s.directory.PatientByEmail(ctx, in.PatientEmail)
	if err != nil {
		return nil, Validationf("unknown patient %q", in.PatientEmail)
	}
	doctor, err := s.directory.DoctorByEmail(ctx, in.DoctorEmail)
	if err != nil {
		return nil, Validationf("unknown doctor %q", in.DoctorEmail)
	}
	if strings.TrimSpace(in.Query) == "" {
		return nil, Validationf("query must not be empty")
	}

	status := models.RequestStatusPending
	if in.AdminAssigned {
		status = models.RequestStatusAccepted
	}

	specialty := in.Specialty
	if specialty == "" {
		specialty = doctor.Specialty
	}

	req := &models.ChatRequest{
		PatientEmail:  patient.Email,
		PatientName:   patient.Name,
		PatientID:     patient.PatientID,
		DoctorEmail:   doctor.Email,
		DoctorName:    doctor.Name,
		DoctorID:      doctor.DoctorID,
		Specialty:     specialty,
		Qualification: doctor.Qualification,
		Query:         in.Query,
		Status:        status,
		Priority:      in.Priority,
	}
	if err := s.requests.Create(ctx, req); err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	text := fmt.Sprintf("New request from %s (ID: %d)", req.PatientName, req.RequestID)
	if err := s.notifier.Notify(ctx, req.DoctorEmail, text, req.RequestID); err != nil {
		return nil, fmt.Errorf("notify doctor: %w", err)
	}
	return req, nil
}

// GetRequest returns a single request by id.
func (s *Service) GetRequest(ctx context.Context, id int64) (*models.ChatRequest, error) {
	return s.requests.Get(ctx, id)
}

// ListRequests returns requests newest-first, optionally filtered by
// participant email and/or status.
func (s *Service) ListRequests(ctx context.Context, filter RequestFilter) ([]models.ChatRequest, error) {
	return s.requests.List(ctx, filter)
}

// AcceptRequest transitions a Pending request to Accepted and notifies the
// patient. The status swap is a compare-and-swap: a concurrent accept or
// close loses with ErrInvalidTransition instead of double-firing the
// notification.
func (s *Service) AcceptRequest(ctx context.Context, id int64) (*models.ChatRequest, error) {
	req, err := s.requests.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	ok, err := s.requests.UpdateStatus(ctx, id, []models.RequestStatus{models.RequestStatusPending}, models.RequestStatusAccepted)
	if err != nil {
		return nil, fmt.Errorf("accept request %d: %w", id, err)
	}
	if !ok {
		return nil, ErrInvalidTransition
	}
	req.Status = models.RequestStatusAccepted

	text := fmt.Sprintf("Dr. %s accepted (ID: %d)", req.DoctorName, req.RequestID)
	if err := s.notifier.Notify(ctx, req.PatientEmail, text, req.RequestID); err != nil {
		return nil, fmt.Errorf("notify patient: %w", err)
	}
	return req, nil
}

// CloseRequest transitions a Pending or Accepted request to the terminal
// Closed state and notifies the party that did not close it. Closing a
// Pending request is the cancellation path.
func (s *Service) CloseRequest(ctx context.Context, id int64, closerRole models.Role) (*models.ChatRequest, error) {
	req, err := s.requests.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	ok, err := s.requests.UpdateStatus(ctx, id,
		[]models.RequestStatus{models.RequestStatusPending, models.RequestStatusAccepted},
		models.RequestStatusClosed)
	if err != nil {
		return nil, fmt.Errorf("close request %d: %w", id, err)
	}
	if !ok {
		return nil, ErrInvalidTransition
	}
	req.Status = models.RequestStatusClosed

	text := fmt.Sprintf("Chat closed (ID: %d)", req.RequestID)
	if err := s.notifier.Notify(ctx, req.Counterparty(closerRole), text, req.RequestID); err != nil {
		return nil, fmt.Errorf("notify counterparty: %w", err)
	}
	return req, nil
}

// PostMessage appends a text message to an open thread and notifies the
// counterparty with a preview of the body.
func (s *Service) PostMessage(ctx context.Context, requestID int64, senderName string, senderRole models.Role, body string) (*models.ChatMessage, error) {
	body = strings.TrimSpace(body)
	if body == "" {
		return nil, Validationf("message body must not be empty")
	}
	req, err := s.requests.Get(ctx, requestID)
	if err != nil {
		return nil, err
	}
	if req.IsClosed() {
		return nil, ErrRequestClosed
	}

	msg := &models.ChatMessage{
		RequestID:  requestID,
		SenderName: senderName,
		SenderRole: senderRole,
		Body:       body,
	}
	if err := s.messages.AppendMessage(ctx, msg); err != nil {
		return nil, fmt.Errorf("append message: %w", err)
	}

	text := fmt.Sprintf("New message from %s in chat #%d: %s", senderName, requestID, preview(body))
	if err := s.notifier.Notify(ctx, req.Counterparty(senderRole), text, requestID); err != nil {
		return nil, fmt.Errorf("notify counterparty: %w", err)
	}
	return msg, nil
}

// PostAttachment records a stored file against an open thread and notifies
// the counterparty. The bytes themselves were already written to the blob
// store; locator is the opaque reference to them.
func (s *Service) PostAttachment(ctx context.Context, requestID int64, senderName string, senderRole models.Role, fileName, locator string) (*models.ChatAttachment, error) {
	if fileName == "" || locator == "" {
		return nil, Validationf("attachment file name and locator are required")
	}
	req, err := s.requests.Get(ctx, requestID)
	if err != nil {
		return nil, err
	}
	if req.IsClosed() {
		return nil, ErrRequestClosed
	}

	att := &models.ChatAttachment{
		RequestID:  requestID,
		FileName:   fileName,
		Locator:    locator,
		SenderName: senderName,
		SenderRole: senderRole,
	}
	if err := s.messages.AppendAttachment(ctx, att); err != nil {
		return nil, fmt.Errorf("append attachment: %w", err)
	}

	text := fmt.Sprintf("New attachment from %s in chat #%d: %s", senderName, requestID, fileName)
	if err := s.notifier.Notify(ctx, req.Counterparty(senderRole), text, requestID); err != nil {
		return nil, fmt.Errorf("notify counterparty: %w", err)
	}
	return att, nil
}

// Attachment returns attachment metadata by id, for downloads.
func (s *Service) Attachment(ctx context.Context, id uint) (*models.ChatAttachment, error) {
	return s.messages.AttachmentByID(ctx, id)
}

// Timeline merges messages and attachments of a request into one
// chronological sequence. Pure read.
func (s *Service) Timeline(ctx context.Context, requestID int64) ([]models.TimelineEntry, error) {
	if _, err := s.requests.Get(ctx, requestID); err != nil {
		return nil, err
	}
	msgs, err := s.messages.MessagesFor(ctx, requestID)
	if err != nil {
		return nil, err
	}
	atts, err := s.messages.AttachmentsFor(ctx, requestID)
	if err != nil {
		return nil, err
	}

	entries := make([]models.TimelineEntry, 0, len(msgs)+len(atts))
	for i := range msgs {
		entries = append(entries, models.TimelineEntry{Kind: models.TimelineMessage, Message: &msgs[i]})
	}
	for i := range atts {
		entries = append(entries, models.TimelineEntry{Kind: models.TimelineAttachment, Attachment: &atts[i]})
	}
	// Stable sort keeps the per-store append order as the tie-breaker for
	// identical timestamps.
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].At().Before(entries[j].At())
	})
	return entries, nil
}

// FilePrescriptionInput carries the fields of a new prescription.
type FilePrescriptionInput struct {
	RequestID   int64
	DoctorEmail string
	Medicines   []models.Medicine
	Advice      string
}

// FilePrescription files a prescription against a request and notifies the
// patient. There is no status precondition: prescriptions are historical
// records and may be filed against a closed thread.
func (s *Service) FilePrescription(ctx context.Context, in FilePrescriptionInput) (*models.Prescription, error) {
	if len(in.Medicines) == 0 {
		return nil, Validationf("at least one medicine is required")
	}
	for _, m := range in.Medicines {
		if strings.TrimSpace(m.Name) == "" {
			return nil, Validationf("medicine name is required")
		}
	}
	req, err := s.requests.Get(ctx, in.RequestID)
	if err != nil {
		return nil, err
	}
	doctor, err := s.directory.DoctorByEmail(ctx, in.DoctorEmail)
	if err != nil {
		return nil, Validationf("unknown doctor %q", in.DoctorEmail)
	}

	p := &models.Prescription{
		RequestID:    req.RequestID,
		PatientEmail: req.PatientEmail,
		PatientName:  req.PatientName,
		DoctorEmail:  doctor.Email,
		DoctorName:   doctor.Name,
		Medicines:    in.Medicines,
		Advice:       in.Advice,
	}
	if err := s.prescriptions.Create(ctx, p); err != nil {
		return nil, fmt.Errorf("file prescription: %w", err)
	}

	text := fmt.Sprintf("New prescription from Dr. %s (Chat #%d)", doctor.Name, req.RequestID)
	if err := s.notifier.Notify(ctx, req.PatientEmail, text, req.RequestID); err != nil {
		return nil, fmt.Errorf("notify patient: %w", err)
	}
	return p, nil
}

// PrescriptionsForPatient returns a patient's prescriptions newest-first.
func (s *Service) PrescriptionsForPatient(ctx context.Context, patientEmail string) ([]models.Prescription, error) {
	return s.prescriptions.ListForPatient(ctx, patientEmail)
}

// preview shortens a message body for its notification text.
func preview(body string) string {
	const max = 70
	r := []rune(body)
	if len(r) <= max {
		return body
	}
	return string(r[:max]) + "..."
}
