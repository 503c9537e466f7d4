package repository

import (
	"errors"

	"hospital-management-backend/internal/models"

	"gorm.io/gorm"
)

type SessionRepository struct {
	db *gorm.DB
}

func NewSessionRepo(db *gorm.DB) *SessionRepository {
	return &SessionRepository{db: db}
}

var _ SessionStore = (*SessionRepository)(nil)

// CreateSession creates a new server-side session
func (r *SessionRepository) CreateSession(session *models.Session) error {
	return r.db.Create(session).Error
}

// FindActiveSessionByHash finds a non-revoked session by its token hash
func (r *SessionRepository) FindActiveSessionByHash(hash string) (*models.Session, error) {
	var session models.Session
	err := r.db.Where("token_hash = ? AND revoked = ?", hash, false).
		Preload("User").
		First(&session).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &session, nil
}

// RevokeSessionByHash marks a session as revoked by its token hash
func (r *SessionRepository) RevokeSessionByHash(hash string) error {
	return r.db.Model(&models.Session{}).
		Where("token_hash = ?", hash).
		Update("revoked", true).Error
}
