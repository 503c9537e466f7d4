package service

import (
	"errors"
	"fmt"
	"time"

	"hospital-management-backend/internal/apperr"
	"hospital-management-backend/internal/models"
	"hospital-management-backend/internal/repository"
	"hospital-management-backend/pkg/utils"
)

type AdminService struct {
	userRepo        repository.UserStore
	doctorRepo      repository.DoctorStore
	patientRepo     repository.PatientStore
	appointmentRepo repository.AppointmentStore
	auditRepo       repository.AuditStore
}

func NewAdminService(
	userRepo repository.UserStore,
	doctorRepo repository.DoctorStore,
	patientRepo repository.PatientStore,
	appointmentRepo repository.AppointmentStore,
	auditRepo repository.AuditStore,
) *AdminService {
	return &AdminService{
		userRepo:        userRepo,
		doctorRepo:      doctorRepo,
		patientRepo:     patientRepo,
		appointmentRepo: appointmentRepo,
		auditRepo:       auditRepo,
	}
}

// Stats represents aggregate entity counts for the admin dashboard
type Stats struct {
	TotalUsers        int64 `json:"total_users"`
	TotalDoctors      int64 `json:"total_doctors"`
	TotalPatients     int64 `json:"total_patients"`
	TotalAppointments int64 `json:"total_appointments"`
}

// GetStats returns aggregate counts over the main entities
func (s *AdminService) GetStats() (*Stats, error) {
	users, err := s.userRepo.CountUsers()
	if err != nil {
		return nil, err
	}
	doctors, err := s.doctorRepo.CountDoctors()
	if err != nil {
		return nil, err
	}
	patients, err := s.patientRepo.CountPatients()
	if err != nil {
		return nil, err
	}
	appointments, err := s.appointmentRepo.CountAppointments()
	if err != nil {
		return nil, err
	}

	return &Stats{
		TotalUsers:        users,
		TotalDoctors:      doctors,
		TotalPatients:     patients,
		TotalAppointments: appointments,
	}, nil
}

// UserSummary represents one row of the admin user listing
type UserSummary struct {
	ID        uint   `json:"id"`
	Username  string `json:"username"`
	Email     string `json:"email"`
	Role      string `json:"role"`
	CreatedAt string `json:"created_at"`
}

// ListUsers returns all accounts with role and creation metadata
func (s *AdminService) ListUsers() ([]UserSummary, error) {
	users, err := s.userRepo.ListUsers()
	if err != nil {
		return nil, err
	}

	out := make([]UserSummary, len(users))
	for i, u := range users {
		out[i] = UserSummary{
			ID:        u.ID,
			Username:  u.Username,
			Email:     u.Email,
			Role:      u.Role.String(),
			CreatedAt: u.CreatedAt.Format(time.RFC3339),
		}
	}
	return out, nil
}

// RepairProfiles backfills missing doctor/patient profile rows for accounts
// whose registration predates profile co-creation. Every created row is
// audited against the administrator who ran the repair.
func (s *AdminService) RepairProfiles(adminID uint) (int, error) {
	users, err := s.userRepo.ListUsers()
	if err != nil {
		return 0, err
	}

	repaired := 0
	for _, u := range users {
		switch u.Role {
		case models.RoleDoctor:
			if _, err := s.doctorRepo.FindDoctorByUserID(u.ID); !errors.Is(err, repository.ErrNotFound) {
				continue
			}
			doctor := &models.Doctor{
				UserID:         u.ID,
				Specialization: "General Practice",
				Phone:          "N/A",
				Available:      true,
			}
			if err := s.doctorRepo.CreateDoctor(doctor); err != nil {
				return repaired, err
			}
		case models.RolePatient:
			if _, err := s.patientRepo.FindPatientByUserID(u.ID); !errors.Is(err, repository.ErrNotFound) {
				continue
			}
			patient := &models.Patient{UserID: u.ID, Age: 0, Gender: "N/A", BloodType: "N/A", Phone: "N/A"}
			if err := s.patientRepo.CreatePatient(patient); err != nil {
				return repaired, err
			}
		default:
			continue
		}

		repaired++
		_ = s.auditRepo.CreateAuditLog(&adminID, "profile_repair",
			fmt.Sprintf("Created missing %s profile for user %s", u.Role, u.Username))
	}

	return repaired, nil
}

// ResetPassword sets a new password for the given account and audits the
// change against the administrator who performed it
func (s *AdminService) ResetPassword(adminID, userID uint, newPassword string) error {
	if len(newPassword) < 6 {
		return apperr.Validation("Password must be at least 6 characters")
	}

	user, err := s.userRepo.FindUserByID(userID)
	if err != nil {
		return apperr.NotFound("User not found")
	}

	passwordHash, err := utils.HashPassword(newPassword)
	if err != nil {
		return apperr.Persistence("Password reset failed")
	}
	if err := s.userRepo.UpdateUserPassword(user.ID, passwordHash); err != nil {
		return apperr.Persistence("Password reset failed")
	}

	_ = s.auditRepo.CreateAuditLog(&adminID, "password_reset",
		fmt.Sprintf("Password reset for user %s", user.Username))

	return nil
}
