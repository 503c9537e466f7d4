package service

import (
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"hospital-management-backend/internal/apperr"
	"hospital-management-backend/internal/config"
	"hospital-management-backend/internal/models"
	"hospital-management-backend/internal/repository"
	"hospital-management-backend/pkg/utils"
)

// Identity is the per-request authenticated caller, resolved by the auth
// middleware and passed to every role-gated operation.
type Identity struct {
	UserID   uint        `json:"user_id"`
	Username string      `json:"username"`
	Role     models.Role `json:"role"`
}

type AuthService struct {
	userRepo    repository.UserStore
	sessionRepo repository.SessionStore
	auditRepo   repository.AuditStore
}

func NewAuthService(userRepo repository.UserStore, sessionRepo repository.SessionStore, auditRepo repository.AuditStore) *AuthService {
	return &AuthService{
		userRepo:    userRepo,
		sessionRepo: sessionRepo,
		auditRepo:   auditRepo,
	}
}

// LoginResponse represents the result of a successful login
type LoginResponse struct {
	SessionToken string
	AccessToken  string
	User         Identity
}

// Login authenticates a user and establishes a server-side session
func (s *AuthService) Login(username, password string) (*LoginResponse, error) {
	user, err := s.userRepo.FindUserByUsername(username)
	if err != nil {
		return nil, apperr.ErrInvalidCredentials
	}

	if !utils.ComparePassword(user.PasswordHash, password) {
		return nil, apperr.ErrInvalidCredentials
	}

	sessionToken := utils.GenerateSessionToken()
	session := &models.Session{
		UserID:    user.ID,
		TokenHash: utils.HashSessionToken(sessionToken),
		ExpiresAt: time.Now().Add(utils.GetSessionExpiry()),
	}
	if err := s.sessionRepo.CreateSession(session); err != nil {
		return nil, apperr.Persistence("Login failed. Please try again.")
	}

	accessToken, err := utils.GenerateAccessToken(user.ID, user.Username, user.Role)
	if err != nil {
		return nil, apperr.Persistence("Login failed. Please try again.")
	}

	userIDPtr := &user.ID
	_ = s.auditRepo.CreateAuditLog(userIDPtr, "user_login", fmt.Sprintf("User %s logged in", username))

	return &LoginResponse{
		SessionToken: sessionToken,
		AccessToken:  accessToken,
		User: Identity{
			UserID:   user.ID,
			Username: user.Username,
			Role:     user.Role,
		},
	}, nil
}

// Logout revokes the server-side session. Unknown tokens are ignored so the
// operation stays idempotent.
func (s *AuthService) Logout(sessionToken string) {
	if sessionToken == "" {
		return
	}
	if err := s.sessionRepo.RevokeSessionByHash(utils.HashSessionToken(sessionToken)); err != nil {
		log.Printf("Failed to revoke session: %v", err)
	}
}

// Authenticate resolves a session cookie token to the caller's identity
func (s *AuthService) Authenticate(sessionToken string) (*Identity, error) {
	session, err := s.sessionRepo.FindActiveSessionByHash(utils.HashSessionToken(sessionToken))
	if err != nil {
		return nil, apperr.ErrUnauthorized
	}
	if time.Now().After(session.ExpiresAt) {
		return nil, apperr.ErrUnauthorized
	}
	return &Identity{
		UserID:   session.User.ID,
		Username: session.User.Username,
		Role:     session.User.Role,
	}, nil
}

// Register creates a user account together with its role profile.
// Validation short-circuits in a fixed order; the user row and the
// doctor/patient profile commit in a single transaction.
func (s *AuthService) Register(username, email, password string, role models.Role) error {
	username = strings.TrimSpace(username)
	email = strings.TrimSpace(email)

	if username == "" || email == "" || password == "" {
		return apperr.Validation("All fields are required")
	}
	if len(password) < 6 {
		return apperr.Validation("Password must be at least 6 characters")
	}
	if !role.Valid() {
		return apperr.Validation("Invalid role")
	}

	// Pre-checks give friendly errors; the unique indexes remain the
	// backstop under concurrent registration of the same name.
	if _, err := s.userRepo.FindUserByUsername(username); err == nil {
		return apperr.Duplicate("Username already exists. Please choose a different username.")
	}
	if _, err := s.userRepo.FindUserByEmail(email); err == nil {
		return apperr.Duplicate("Email already registered. Please use a different email or login.")
	}

	passwordHash, err := utils.HashPassword(password)
	if err != nil {
		return apperr.Persistence("Registration failed. Please try again.")
	}

	user := &models.User{
		Username:     username,
		Email:        email,
		PasswordHash: passwordHash,
		Role:         role,
	}

	var doctor *models.Doctor
	var patient *models.Patient
	switch role {
	case models.RoleDoctor:
		doctor = &models.Doctor{Specialization: "General Practice", Phone: "N/A", Available: true}
	case models.RolePatient:
		patient = &models.Patient{Age: 0, Gender: "N/A", BloodType: "N/A", Phone: "N/A"}
	}

	if err := s.userRepo.CreateUserWithProfile(user, doctor, patient); err != nil {
		switch {
		case errors.Is(err, repository.ErrDuplicateUsername):
			return apperr.Duplicate("Username already exists. Please choose a different username.")
		case errors.Is(err, repository.ErrDuplicateEmail):
			return apperr.Duplicate("Email already registered. Please use a different email or login.")
		}
		log.Printf("Registration failed for %s: %v", username, err)
		return apperr.Persistence("Registration failed. Please try again.")
	}

	userIDPtr := &user.ID
	_ = s.auditRepo.CreateAuditLog(userIDPtr, "user_registration", fmt.Sprintf("User %s registered with role %s", username, role))

	return nil
}

// GetProfile returns the account details of the authenticated caller
func (s *AuthService) GetProfile(userID uint) (*models.User, error) {
	user, err := s.userRepo.FindUserByID(userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperr.NotFound("User not found")
		}
		return nil, err
	}
	return user, nil
}

// EnsureAdminUser seeds the initial administrator account on first start
func (s *AuthService) EnsureAdminUser(cfg config.AdminConfig) error {
	if _, err := s.userRepo.FindUserByUsername(cfg.Username); err == nil {
		return nil
	}

	passwordHash, err := utils.HashPassword(cfg.Password)
	if err != nil {
		return err
	}

	admin := &models.User{
		Username:     cfg.Username,
		Email:        cfg.Email,
		PasswordHash: passwordHash,
		Role:         models.RoleAdmin,
	}
	if err := s.userRepo.CreateUserWithProfile(admin, nil, nil); err != nil {
		return err
	}

	log.Printf("Seeded admin user %s", cfg.Username)
	return nil
}
