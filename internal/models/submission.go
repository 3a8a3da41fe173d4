package models

import (
	"time"
)

// Submission records one AI triage run for a patient's symptom history.
type Submission struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	PatientEmail string    `gorm:"size:255;index" json:"patientEmail"`
	Symptoms     string    `gorm:"type:text" json:"symptoms"`
	Prediction   string    `gorm:"size:100" json:"prediction"`
	Urgency      string    `gorm:"size:20" json:"urgency"`
	CreatedAt    time.Time `json:"createdAt"`
}

// Feedback is free-text feedback left by any logged-in user.
type Feedback struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserEmail string    `gorm:"size:255;index" json:"userEmail"`
	Text      string    `gorm:"type:text" json:"text"`
	CreatedAt time.Time `json:"createdAt"`
}
