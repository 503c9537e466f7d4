package repository

import (
	"errors"

	"hospital-management-backend/internal/models"

	"gorm.io/gorm"
)

type AppointmentRepository struct {
	db *gorm.DB
}

func NewAppointmentRepo(db *gorm.DB) *AppointmentRepository {
	return &AppointmentRepository{db: db}
}

var _ AppointmentStore = (*AppointmentRepository)(nil)

// CreateAppointment creates a new appointment. A violated patient or doctor
// foreign key surfaces as ErrNotFound.
func (r *AppointmentRepository) CreateAppointment(appointment *models.Appointment) error {
	err := r.db.Create(appointment).Error
	if err != nil && errors.Is(err, gorm.ErrForeignKeyViolated) {
		return ErrNotFound
	}
	return err
}

// FindAppointmentByID finds an appointment by primary key
func (r *AppointmentRepository) FindAppointmentByID(id uint) (*models.Appointment, error) {
	var appointment models.Appointment
	err := r.db.First(&appointment, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &appointment, nil
}

// ListAppointmentsByDoctor returns all appointments for a doctor with the
// patient account preloaded
func (r *AppointmentRepository) ListAppointmentsByDoctor(doctorID uint) ([]models.Appointment, error) {
	var appointments []models.Appointment
	err := r.db.Where("doctor_id = ?", doctorID).
		Preload("Patient.User").
		Order("appointment_date ASC").
		Find(&appointments).Error
	return appointments, err
}

// ListAppointmentsByPatient returns all appointments for a patient with the
// doctor account preloaded
func (r *AppointmentRepository) ListAppointmentsByPatient(patientID uint) ([]models.Appointment, error) {
	var appointments []models.Appointment
	err := r.db.Where("patient_id = ?", patientID).
		Preload("Doctor.User").
		Order("appointment_date ASC").
		Find(&appointments).Error
	return appointments, err
}

// ListAppointments returns every appointment with both accounts preloaded
func (r *AppointmentRepository) ListAppointments() ([]models.Appointment, error) {
	var appointments []models.Appointment
	err := r.db.Preload("Patient.User").
		Preload("Doctor.User").
		Order("appointment_date ASC").
		Find(&appointments).Error
	return appointments, err
}

// UpdateAppointmentStatus updates the status and optional notes of an appointment
func (r *AppointmentRepository) UpdateAppointmentStatus(id uint, status, notes string) error {
	updates := map[string]interface{}{"status": status}
	if notes != "" {
		updates["notes"] = notes
	}
	res := r.db.Model(&models.Appointment{}).Where("id = ?", id).Updates(updates)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// CountAppointments returns the total number of appointments
func (r *AppointmentRepository) CountAppointments() (int64, error) {
	var count int64
	err := r.db.Model(&models.Appointment{}).Count(&count).Error
	return count, err
}
