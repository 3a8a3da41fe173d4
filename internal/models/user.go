package models

import (
	"time"

	"golang.org/x/crypto/bcrypt"
)

// Role enum
type Role string

const (
	RoleAdmin   Role = "admin"
	RoleDoctor  Role = "doctor"
	RolePatient Role = "patient"
)

// Patient represents a registered patient. Email is the primary key and the
// stable foreign key used by every participant-facing join in the system.
type Patient struct {
	Email     string    `gorm:"primaryKey;size:255" json:"email"`
	Password  string    `gorm:"size:255;not null" json:"-"` // Never send password in JSON
	Name      string    `gorm:"size:100;not null" json:"name"`
	Mobile    string    `gorm:"size:20" json:"mobile,omitempty"`
	PatientID string    `gorm:"uniqueIndex;size:20" json:"patientId"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Doctor represents a doctor onboarded by the admin. The seeded admin account
// is a doctor row with specialty "Admin".
type Doctor struct {
	Email         string    `gorm:"primaryKey;size:255" json:"email"`
	Password      string    `gorm:"size:255;not null" json:"-"`
	Name          string    `gorm:"size:100;not null" json:"name"`
	Mobile        string    `gorm:"size:20" json:"mobile,omitempty"`
	Specialty     string    `gorm:"size:100;index" json:"specialty"`
	DoctorID      string    `gorm:"uniqueIndex;size:20" json:"doctorId"`
	Qualification string    `gorm:"size:255" json:"qualification"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

// SetPassword hashes a password and sets it on the patient
func (p *Patient) SetPassword(password string) error {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	p.Password = string(hashedPassword)
	return nil
}

// CheckPassword compares a password with the patient's hashed password
func (p *Patient) CheckPassword(password string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(p.Password), []byte(password))
	return err == nil
}

// SetPassword hashes a password and sets it on the doctor
func (d *Doctor) SetPassword(password string) error {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	d.Password = string(hashedPassword)
	return nil
}

// CheckPassword compares a password with the doctor's hashed password
func (d *Doctor) CheckPassword(password string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(d.Password), []byte(password))
	return err == nil
}

// Role reports the effective role of the doctor account. The admin account is
// stored in the doctors table with the reserved "Admin" specialty.
func (d *Doctor) Role() Role {
	if d.Specialty == AdminSpecialty {
		return RoleAdmin
	}
	return RoleDoctor
}

// AdminSpecialty is the reserved specialty marking the admin account.
const AdminSpecialty = "Admin"
