package repository

import (
	"errors"

	"hospital-management-backend/internal/models"

	"gorm.io/gorm"
)

type PrescriptionRepository struct {
	db *gorm.DB
}

func NewPrescriptionRepo(db *gorm.DB) *PrescriptionRepository {
	return &PrescriptionRepository{db: db}
}

var _ PrescriptionStore = (*PrescriptionRepository)(nil)

// CreatePrescription creates a new prescription. A violated patient or
// doctor foreign key surfaces as ErrNotFound.
func (r *PrescriptionRepository) CreatePrescription(prescription *models.Prescription) error {
	err := r.db.Create(prescription).Error
	if err != nil && errors.Is(err, gorm.ErrForeignKeyViolated) {
		return ErrNotFound
	}
	return err
}

// FindPrescriptionByID finds a prescription by primary key
func (r *PrescriptionRepository) FindPrescriptionByID(id uint) (*models.Prescription, error) {
	var prescription models.Prescription
	err := r.db.First(&prescription, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &prescription, nil
}

// ListPrescriptionsByPatient returns all prescriptions for a patient
func (r *PrescriptionRepository) ListPrescriptionsByPatient(patientID uint) ([]models.Prescription, error) {
	var prescriptions []models.Prescription
	err := r.db.Where("patient_id = ?", patientID).
		Order("created_at DESC").
		Find(&prescriptions).Error
	return prescriptions, err
}

// ListPrescriptionsByStatus returns prescriptions in a given status with the
// patient account preloaded
func (r *PrescriptionRepository) ListPrescriptionsByStatus(status string) ([]models.Prescription, error) {
	var prescriptions []models.Prescription
	err := r.db.Where("status = ?", status).
		Preload("Patient.User").
		Order("created_at ASC").
		Find(&prescriptions).Error
	return prescriptions, err
}

// UpdatePrescriptionStatus updates the status of a prescription
func (r *PrescriptionRepository) UpdatePrescriptionStatus(id uint, status string) error {
	res := r.db.Model(&models.Prescription{}).Where("id = ?", id).Update("status", status)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
