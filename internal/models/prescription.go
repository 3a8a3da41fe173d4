package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

// Medicine is one line of a prescription.
type Medicine struct {
	Name     string `json:"name"`
	Dosage   string `json:"dosage"`
	Duration string `json:"duration"`
}

// MedicineList stores the ordered medicines of a prescription as a JSON
// column, matching how the rest of the row is queried.
type MedicineList []Medicine

// Value implements driver.Valuer for GORM serialization.
func (m MedicineList) Value() (driver.Value, error) {
	return json.Marshal(m)
}

// Scan implements sql.Scanner for GORM deserialization.
func (m *MedicineList) Scan(value interface{}) error {
	if value == nil {
		*m = nil
		return nil
	}
	var data []byte
	switch v := value.(type) {
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return fmt.Errorf("unsupported medicine list column type %T", value)
	}
	return json.Unmarshal(data, m)
}

// Prescription is a structured medicine list filed against a chat request.
// It is a historical record: immutable once created and independent of the
// request's lifecycle status.
type Prescription struct {
	ID           uint         `gorm:"primaryKey" json:"id"`
	RequestID    int64        `gorm:"index;not null" json:"requestId"`
	PatientEmail string       `gorm:"size:255;index" json:"patientEmail"`
	PatientName  string       `gorm:"size:100" json:"patientName"`
	DoctorEmail  string       `gorm:"size:255" json:"doctorEmail"`
	DoctorName   string       `gorm:"size:100" json:"doctorName"`
	Medicines    MedicineList `gorm:"type:json;not null" json:"medicines"`
	Advice       string       `gorm:"type:text" json:"advice,omitempty"`
	CreatedAt    time.Time    `json:"createdAt"`
}
