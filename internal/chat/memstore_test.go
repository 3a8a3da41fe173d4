package chat_test

import (
	"context"
	"errors"
	"sort"
	"time"

	"ehealth-portal-server/internal/chat"
	"ehealth-portal-server/internal/models"
)

// In-memory store fakes backing the service tests. They mirror the store
// contracts: monotonic request ids, CAS status swaps, append-ordered logs.

type memRequestStore struct {
	requests map[int64]*models.ChatRequest
	lastID   int64
}

func newMemRequestStore() *memRequestStore {
	return &memRequestStore{requests: make(map[int64]*models.ChatRequest), lastID: 1000}
}

func (s *memRequestStore) Create(ctx context.Context, req *models.ChatRequest) error {
	s.lastID++
	req.RequestID = s.lastID
	if req.CreatedAt.IsZero() {
		req.CreatedAt = time.Now()
	}
	clone := *req
	s.requests[req.RequestID] = &clone
	return nil
}

func (s *memRequestStore) Get(ctx context.Context, id int64) (*models.ChatRequest, error) {
	req, ok := s.requests[id]
	if !ok {
		return nil, chat.ErrNotFound
	}
	clone := *req
	return &clone, nil
}

func (s *memRequestStore) List(ctx context.Context, filter chat.RequestFilter) ([]models.ChatRequest, error) {
	var out []models.ChatRequest
	for _, req := range s.requests {
		if filter.PatientEmail != "" && req.PatientEmail != filter.PatientEmail {
			continue
		}
		if filter.DoctorEmail != "" && req.DoctorEmail != filter.DoctorEmail {
			continue
		}
		if filter.Status != "" && req.Status != filter.Status {
			continue
		}
		out = append(out, *req)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].RequestID > out[j].RequestID })
	return out, nil
}

func (s *memRequestStore) UpdateStatus(ctx context.Context, id int64, from []models.RequestStatus, to models.RequestStatus) (bool, error) {
	req, ok := s.requests[id]
	if !ok {
		return false, nil
	}
	for _, f := range from {
		if req.Status == f {
			req.Status = to
			return true, nil
		}
	}
	return false, nil
}

type memMessageStore struct {
	messages    []models.ChatMessage
	attachments []models.ChatAttachment
	nextID      uint
}

func (s *memMessageStore) AppendMessage(ctx context.Context, msg *models.ChatMessage) error {
	s.nextID++
	msg.ID = s.nextID
	if msg.CreatedAt.IsZero() {
		msg.CreatedAt = time.Now()
	}
	s.messages = append(s.messages, *msg)
	return nil
}

func (s *memMessageStore) AppendAttachment(ctx context.Context, att *models.ChatAttachment) error {
	s.nextID++
	att.ID = s.nextID
	if att.CreatedAt.IsZero() {
		att.CreatedAt = time.Now()
	}
	s.attachments = append(s.attachments, *att)
	return nil
}

func (s *memMessageStore) MessagesFor(ctx context.Context, requestID int64) ([]models.ChatMessage, error) {
	var out []models.ChatMessage
	for _, m := range s.messages {
		if m.RequestID == requestID {
			out = append(out, m)
		}
	}
	return out, nil
}

func (s *memMessageStore) AttachmentsFor(ctx context.Context, requestID int64) ([]models.ChatAttachment, error) {
	var out []models.ChatAttachment
	for _, a := range s.attachments {
		if a.RequestID == requestID {
			out = append(out, a)
		}
	}
	return out, nil
}

func (s *memMessageStore) AttachmentByID(ctx context.Context, id uint) (*models.ChatAttachment, error) {
	for _, a := range s.attachments {
		if a.ID == id {
			clone := a
			return &clone, nil
		}
	}
	return nil, chat.ErrNotFound
}

type memPrescriptionStore struct {
	prescriptions []models.Prescription
}

func (s *memPrescriptionStore) Create(ctx context.Context, p *models.Prescription) error {
	p.ID = uint(len(s.prescriptions) + 1)
	if p.CreatedAt.IsZero() {
		p.CreatedAt = time.Now()
	}
	s.prescriptions = append(s.prescriptions, *p)
	return nil
}

func (s *memPrescriptionStore) ListForPatient(ctx context.Context, patientEmail string) ([]models.Prescription, error) {
	var out []models.Prescription
	for i := len(s.prescriptions) - 1; i >= 0; i-- {
		if s.prescriptions[i].PatientEmail == patientEmail {
			out = append(out, s.prescriptions[i])
		}
	}
	return out, nil
}

type memDirectory struct {
	patients map[string]*models.Patient
	doctors  map[string]*models.Doctor
}

func newMemDirectory() *memDirectory {
	return &memDirectory{
		patients: make(map[string]*models.Patient),
		doctors:  make(map[string]*models.Doctor),
	}
}

func (d *memDirectory) PatientByEmail(ctx context.Context, email string) (*models.Patient, error) {
	p, ok := d.patients[email]
	if !ok {
		return nil, chat.ErrNotFound
	}
	return p, nil
}

func (d *memDirectory) DoctorByEmail(ctx context.Context, email string) (*models.Doctor, error) {
	doc, ok := d.doctors[email]
	if !ok {
		return nil, chat.ErrNotFound
	}
	return doc, nil
}

// sentNotification records one Notify call.
type sentNotification struct {
	Recipient string
	Text      string
	RequestID int64
}

type recordingNotifier struct {
	sent []sentNotification
	err  error
}

func (n *recordingNotifier) Notify(ctx context.Context, recipientEmail, text string, requestID int64) error {
	if n.err != nil {
		return n.err
	}
	n.sent = append(n.sent, sentNotification{Recipient: recipientEmail, Text: text, RequestID: requestID})
	return nil
}

var errNotifierDown = errors.New("notifier down")
