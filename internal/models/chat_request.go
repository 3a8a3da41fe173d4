package models

import (
	"time"
)

// RequestStatus represents the lifecycle status of a chat request
type RequestStatus string

const (
	RequestStatusPending  RequestStatus = "Pending"
	RequestStatusAccepted RequestStatus = "Accepted"
	RequestStatusClosed   RequestStatus = "Closed"
)

// ChatRequest represents a single patient-doctor consultation thread.
// RequestID is assigned by the store as a strictly increasing sequence seeded
// from max(request_id)+1; ids are never reused, and Closed requests are never
// physically deleted.
type ChatRequest struct {
	RequestID     int64         `gorm:"primaryKey;autoIncrement:false" json:"requestId"`
	PatientEmail  string        `gorm:"size:255;index" json:"patientEmail"`
	PatientName   string        `gorm:"size:100" json:"patientName"`
	PatientID     string        `gorm:"size:20" json:"patientId"`
	DoctorEmail   string        `gorm:"size:255;index" json:"doctorEmail"`
	DoctorName    string        `gorm:"size:100" json:"doctorName"`
	DoctorID      string        `gorm:"size:20" json:"doctorId"`
	Specialty     string        `gorm:"size:100" json:"specialty"`
	Qualification string        `gorm:"size:255" json:"qualification"`
	Query         string        `gorm:"type:text" json:"query"`
	Status        RequestStatus `gorm:"size:20;index" json:"status"`
	Priority      bool          `gorm:"default:false" json:"priority"`
	CreatedAt     time.Time     `json:"createdAt"`
}

// IsClosed reports whether the request has reached its terminal state.
func (r *ChatRequest) IsClosed() bool {
	return r.Status == RequestStatusClosed
}

// Counterparty returns the email of the participant on the other side of the
// request relative to the given role. Patient messages go to the doctor and
// vice versa; the admin acts on the doctor's side of the thread.
func (r *ChatRequest) Counterparty(role Role) string {
	if role == RolePatient {
		return r.DoctorEmail
	}
	return r.PatientEmail
}
