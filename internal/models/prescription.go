package models

import "time"

// Prescription status values
const (
	PrescriptionPending   = "pending"
	PrescriptionFilled    = "filled"
	PrescriptionCompleted = "completed"
)

// Prescription represents the prescriptions table
type Prescription struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	PatientID  uint      `gorm:"not null;index" json:"patient_id"`
	DoctorID   uint      `gorm:"not null;index" json:"doctor_id"`
	Medication string    `gorm:"not null;size:255" json:"medication"`
	Dosage     string    `gorm:"size:100" json:"dosage"`
	Duration   string    `gorm:"size:100" json:"duration"`
	Notes      string    `gorm:"type:text" json:"notes"`
	Status     string    `gorm:"size:20;default:'pending'" json:"status"`
	CreatedAt  time.Time `json:"created_at"`
	Patient    Patient   `gorm:"foreignKey:PatientID" json:"patient,omitempty"`
	Doctor     Doctor    `gorm:"foreignKey:DoctorID" json:"doctor,omitempty"`
}

// TableName specifies the table name for Prescription model
func (Prescription) TableName() string {
	return "prescriptions"
}

// ValidPrescriptionStatus reports whether s is a known prescription status.
func ValidPrescriptionStatus(s string) bool {
	return s == PrescriptionPending || s == PrescriptionFilled || s == PrescriptionCompleted
}
