package repository

import (
	"errors"

	"hospital-management-backend/internal/models"

	"gorm.io/gorm"
)

type UserRepository struct {
	db *gorm.DB
}

func NewUserRepo(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

var _ UserStore = (*UserRepository)(nil)

// FindUserByUsername finds a user by username
func (r *UserRepository) FindUserByUsername(username string) (*models.User, error) {
	var user models.User
	err := r.db.Where("username = ?", username).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &user, nil
}

// FindUserByEmail finds a user by email
func (r *UserRepository) FindUserByEmail(email string) (*models.User, error) {
	var user models.User
	err := r.db.Where("email = ?", email).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &user, nil
}

// FindUserByID finds a user by primary key
func (r *UserRepository) FindUserByID(id uint) (*models.User, error) {
	var user models.User
	err := r.db.First(&user, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &user, nil
}

// ListUsers returns all users ordered by creation time
func (r *UserRepository) ListUsers() ([]models.User, error) {
	var users []models.User
	err := r.db.Order("created_at ASC").Find(&users).Error
	return users, err
}

// CountUsers returns the total number of users
func (r *UserRepository) CountUsers() (int64, error) {
	var count int64
	err := r.db.Model(&models.User{}).Count(&count).Error
	return count, err
}

// CreateUserWithProfile creates a user and its role profile in one
// transaction. Either both rows persist or neither does; a unique-index
// violation on username or email is reported as the matching duplicate error.
func (r *UserRepository) CreateUserWithProfile(user *models.User, doctor *models.Doctor, patient *models.Patient) error {
	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(user).Error; err != nil {
			return err
		}
		if doctor != nil {
			doctor.UserID = user.ID
			if err := tx.Create(doctor).Error; err != nil {
				return err
			}
		}
		if patient != nil {
			patient.UserID = user.ID
			if err := tx.Create(patient).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil && errors.Is(err, gorm.ErrDuplicatedKey) {
		return r.classifyDuplicate(user)
	}
	return err
}

// UpdateUserPassword replaces the stored password hash for a user
func (r *UserRepository) UpdateUserPassword(userID uint, passwordHash string) error {
	res := r.db.Model(&models.User{}).
		Where("id = ?", userID).
		Update("password_hash", passwordHash)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// classifyDuplicate resolves which unique column a duplicated-key error hit.
// The translated error is the bare sentinel with no index name, so the
// conflicting row is looked up directly; username is checked first to match
// the registration validation order.
func (r *UserRepository) classifyDuplicate(user *models.User) error {
	var count int64
	r.db.Model(&models.User{}).Where("username = ?", user.Username).Count(&count)
	if count > 0 {
		return ErrDuplicateUsername
	}
	return ErrDuplicateEmail
}
