package repository

import (
	"errors"

	"hospital-management-backend/internal/models"

	"gorm.io/gorm"
)

type DoctorRepository struct {
	db *gorm.DB
}

func NewDoctorRepo(db *gorm.DB) *DoctorRepository {
	return &DoctorRepository{db: db}
}

var _ DoctorStore = (*DoctorRepository)(nil)

// CreateDoctor creates a new doctor profile
func (r *DoctorRepository) CreateDoctor(doctor *models.Doctor) error {
	return r.db.Create(doctor).Error
}

// FindDoctorByID finds a doctor profile by primary key
func (r *DoctorRepository) FindDoctorByID(id uint) (*models.Doctor, error) {
	var doctor models.Doctor
	err := r.db.Preload("User").First(&doctor, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &doctor, nil
}

// FindDoctorByUserID finds the doctor profile belonging to a user account
func (r *DoctorRepository) FindDoctorByUserID(userID uint) (*models.Doctor, error) {
	var doctor models.Doctor
	err := r.db.Where("user_id = ?", userID).First(&doctor).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &doctor, nil
}

// ListAvailableDoctors returns doctors currently accepting appointments
func (r *DoctorRepository) ListAvailableDoctors() ([]models.Doctor, error) {
	var doctors []models.Doctor
	err := r.db.Where("available = ?", true).Preload("User").Find(&doctors).Error
	return doctors, err
}

// CountDoctors returns the total number of doctor profiles
func (r *DoctorRepository) CountDoctors() (int64, error) {
	var count int64
	err := r.db.Model(&models.Doctor{}).Count(&count).Error
	return count, err
}
