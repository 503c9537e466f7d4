package repository

import (
	"errors"

	"hospital-management-backend/internal/models"

	"gorm.io/gorm"
)

type MedicineRepository struct {
	db *gorm.DB
}

func NewMedicineRepo(db *gorm.DB) *MedicineRepository {
	return &MedicineRepository{db: db}
}

var _ MedicineStore = (*MedicineRepository)(nil)

// CreateMedicine adds a new medicine to the inventory
func (r *MedicineRepository) CreateMedicine(medicine *models.MedicineInventory) error {
	return r.db.Create(medicine).Error
}

// FindMedicineByID finds an inventory record by primary key
func (r *MedicineRepository) FindMedicineByID(id uint) (*models.MedicineInventory, error) {
	var medicine models.MedicineInventory
	err := r.db.First(&medicine, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &medicine, nil
}

// ListMedicines returns the full inventory
func (r *MedicineRepository) ListMedicines() ([]models.MedicineInventory, error) {
	var medicines []models.MedicineInventory
	err := r.db.Order("name ASC").Find(&medicines).Error
	return medicines, err
}

// UpdateMedicineQuantity sets the stock quantity for a medicine
func (r *MedicineRepository) UpdateMedicineQuantity(id uint, quantity uint) error {
	res := r.db.Model(&models.MedicineInventory{}).
		Where("id = ?", id).
		Update("quantity", quantity)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
