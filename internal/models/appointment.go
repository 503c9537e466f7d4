package models

import "time"

// Appointment status values
const (
	AppointmentScheduled = "scheduled"
	AppointmentCompleted = "completed"
	AppointmentCancelled = "cancelled"
)

// Appointment represents the appointments table
// Only the status and notes fields change after creation
type Appointment struct {
	ID              uint      `gorm:"primaryKey" json:"id"`
	PatientID       uint      `gorm:"not null;index" json:"patient_id"`
	DoctorID        uint      `gorm:"not null;index" json:"doctor_id"`
	AppointmentDate time.Time `gorm:"not null" json:"appointment_date"`
	Reason          string    `gorm:"size:255" json:"reason"`
	Status          string    `gorm:"size:20;default:'scheduled'" json:"status"`
	Notes           string    `gorm:"type:text" json:"notes"`
	CreatedAt       time.Time `json:"created_at"`
	Patient         Patient   `gorm:"foreignKey:PatientID" json:"patient,omitempty"`
	Doctor          Doctor    `gorm:"foreignKey:DoctorID" json:"doctor,omitempty"`
}

// TableName specifies the table name for Appointment model
func (Appointment) TableName() string {
	return "appointments"
}

// ValidAppointmentStatus reports whether s is a known appointment status.
func ValidAppointmentStatus(s string) bool {
	return s == AppointmentScheduled || s == AppointmentCompleted || s == AppointmentCancelled
}
