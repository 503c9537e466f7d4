package repository

import (
	"errors"

	"hospital-management-backend/internal/models"
)

// Sentinel errors shared by all store implementations. The services map
// these onto the domain error taxonomy.
var (
	ErrNotFound          = errors.New("record not found")
	ErrDuplicateUsername = errors.New("duplicate username")
	ErrDuplicateEmail    = errors.New("duplicate email")
)

// UserStore persists accounts. CreateUserWithProfile is the one multi-row
// write in the system: user plus role profile commit atomically or not at
// all, with the unique indexes as the backstop under concurrent registration.
type UserStore interface {
	FindUserByUsername(username string) (*models.User, error)
	FindUserByEmail(email string) (*models.User, error)
	FindUserByID(id uint) (*models.User, error)
	ListUsers() ([]models.User, error)
	CountUsers() (int64, error)
	CreateUserWithProfile(user *models.User, doctor *models.Doctor, patient *models.Patient) error
	UpdateUserPassword(userID uint, passwordHash string) error
}

// DoctorStore persists doctor profiles.
type DoctorStore interface {
	CreateDoctor(doctor *models.Doctor) error
	FindDoctorByID(id uint) (*models.Doctor, error)
	FindDoctorByUserID(userID uint) (*models.Doctor, error)
	ListAvailableDoctors() ([]models.Doctor, error)
	CountDoctors() (int64, error)
}

// PatientStore persists patient profiles.
type PatientStore interface {
	CreatePatient(patient *models.Patient) error
	FindPatientByUserID(userID uint) (*models.Patient, error)
	CountPatients() (int64, error)
}

// AppointmentStore persists appointments. List methods return rows with the
// patient and doctor user associations populated.
type AppointmentStore interface {
	CreateAppointment(appointment *models.Appointment) error
	FindAppointmentByID(id uint) (*models.Appointment, error)
	ListAppointmentsByDoctor(doctorID uint) ([]models.Appointment, error)
	ListAppointmentsByPatient(patientID uint) ([]models.Appointment, error)
	ListAppointments() ([]models.Appointment, error)
	UpdateAppointmentStatus(id uint, status, notes string) error
	CountAppointments() (int64, error)
}

// PrescriptionStore persists prescriptions.
type PrescriptionStore interface {
	CreatePrescription(prescription *models.Prescription) error
	FindPrescriptionByID(id uint) (*models.Prescription, error)
	ListPrescriptionsByPatient(patientID uint) ([]models.Prescription, error)
	ListPrescriptionsByStatus(status string) ([]models.Prescription, error)
	UpdatePrescriptionStatus(id uint, status string) error
}

// MedicineStore persists the pharmacy inventory.
type MedicineStore interface {
	CreateMedicine(medicine *models.MedicineInventory) error
	FindMedicineByID(id uint) (*models.MedicineInventory, error)
	ListMedicines() ([]models.MedicineInventory, error)
	UpdateMedicineQuantity(id uint, quantity uint) error
}

// SessionStore persists server-side sessions keyed by hashed token.
type SessionStore interface {
	CreateSession(session *models.Session) error
	FindActiveSessionByHash(hash string) (*models.Session, error)
	RevokeSessionByHash(hash string) error
}

// AuditStore records the audit trail.
type AuditStore interface {
	CreateAuditLog(userID *uint, action string, details string) error
}
