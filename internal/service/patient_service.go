package service

import (
	"errors"
	"fmt"
	"time"

	"hospital-management-backend/internal/apperr"
	"hospital-management-backend/internal/models"
	"hospital-management-backend/internal/repository"
)

type PatientService struct {
	patientRepo      repository.PatientStore
	doctorRepo       repository.DoctorStore
	appointmentRepo  repository.AppointmentStore
	prescriptionRepo repository.PrescriptionStore
	auditRepo        repository.AuditStore
}

func NewPatientService(
	patientRepo repository.PatientStore,
	doctorRepo repository.DoctorStore,
	appointmentRepo repository.AppointmentStore,
	prescriptionRepo repository.PrescriptionStore,
	auditRepo repository.AuditStore,
) *PatientService {
	return &PatientService{
		patientRepo:      patientRepo,
		doctorRepo:       doctorRepo,
		appointmentRepo:  appointmentRepo,
		prescriptionRepo: prescriptionRepo,
		auditRepo:        auditRepo,
	}
}

// PatientAppointmentView is one row of the patient's appointment list
type PatientAppointmentView struct {
	ID         uint   `json:"id"`
	DoctorName string `json:"doctor_name"`
	Date       string `json:"date"`
	Reason     string `json:"reason"`
	Status     string `json:"status"`
}

// ListAppointments returns the caller's appointments. A caller without a
// patient profile gets an empty list, not an error.
func (s *PatientService) ListAppointments(userID uint) ([]PatientAppointmentView, error) {
	patient, err := s.patientRepo.FindPatientByUserID(userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return []PatientAppointmentView{}, nil
		}
		return nil, err
	}

	appointments, err := s.appointmentRepo.ListAppointmentsByPatient(patient.ID)
	if err != nil {
		return nil, err
	}

	out := make([]PatientAppointmentView, len(appointments))
	for i, a := range appointments {
		out[i] = PatientAppointmentView{
			ID:         a.ID,
			DoctorName: a.Doctor.User.Username,
			Date:       a.AppointmentDate.Format(time.RFC3339),
			Reason:     a.Reason,
			Status:     a.Status,
		}
	}
	return out, nil
}

// PrescriptionView is one row of the patient's prescription list
type PrescriptionView struct {
	ID         uint   `json:"id"`
	Medication string `json:"medication"`
	Dosage     string `json:"dosage"`
	Duration   string `json:"duration"`
	Status     string `json:"status"`
	CreatedAt  string `json:"created_at"`
}

// ListPrescriptions returns the caller's prescriptions, empty when the
// patient profile is absent
func (s *PatientService) ListPrescriptions(userID uint) ([]PrescriptionView, error) {
	patient, err := s.patientRepo.FindPatientByUserID(userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return []PrescriptionView{}, nil
		}
		return nil, err
	}

	prescriptions, err := s.prescriptionRepo.ListPrescriptionsByPatient(patient.ID)
	if err != nil {
		return nil, err
	}

	out := make([]PrescriptionView, len(prescriptions))
	for i, p := range prescriptions {
		out[i] = PrescriptionView{
			ID:         p.ID,
			Medication: p.Medication,
			Dosage:     p.Dosage,
			Duration:   p.Duration,
			Status:     p.Status,
			CreatedAt:  p.CreatedAt.Format(time.RFC3339),
		}
	}
	return out, nil
}

// DoctorView is one row of the available-doctor listing
type DoctorView struct {
	ID             uint   `json:"id"`
	Name           string `json:"name"`
	Specialization string `json:"specialization"`
	Phone          string `json:"phone"`
}

// ListAvailableDoctors returns every doctor currently accepting appointments
func (s *PatientService) ListAvailableDoctors() ([]DoctorView, error) {
	doctors, err := s.doctorRepo.ListAvailableDoctors()
	if err != nil {
		return nil, err
	}

	out := make([]DoctorView, len(doctors))
	for i, d := range doctors {
		phone := d.Phone
		if phone == "" {
			phone = "N/A"
		}
		out[i] = DoctorView{
			ID:             d.ID,
			Name:           d.User.Username,
			Specialization: d.Specialization,
			Phone:          phone,
		}
	}
	return out, nil
}

// appointment dates accept RFC3339 or a bare date-time without zone
var appointmentDateLayouts = []string{time.RFC3339, "2006-01-02T15:04:05", "2006-01-02T15:04"}

func parseAppointmentDate(value string) (time.Time, error) {
	for _, layout := range appointmentDateLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid date: %q", value)
}

// BookAppointment creates a scheduled appointment for the caller. The doctor
// must exist and the date must be ISO-8601; a failed booking leaves no row.
func (s *PatientService) BookAppointment(userID, doctorID uint, appointmentDate, reason string) (uint, error) {
	patient, err := s.patientRepo.FindPatientByUserID(userID)
	if err != nil {
		return 0, apperr.NotFound("Patient profile not found")
	}

	if doctorID == 0 {
		return 0, apperr.Validation("Doctor is required")
	}
	if _, err := s.doctorRepo.FindDoctorByID(doctorID); err != nil {
		return 0, apperr.Validation("Doctor not found")
	}

	date, err := parseAppointmentDate(appointmentDate)
	if err != nil {
		return 0, apperr.Validation("Invalid appointment date")
	}

	appointment := &models.Appointment{
		PatientID:       patient.ID,
		DoctorID:        doctorID,
		AppointmentDate: date,
		Reason:          reason,
		Status:          models.AppointmentScheduled,
	}
	if err := s.appointmentRepo.CreateAppointment(appointment); err != nil {
		return 0, apperr.Persistence("Failed to book appointment")
	}

	_ = s.auditRepo.CreateAuditLog(&userID, "appointment_booked",
		fmt.Sprintf("Appointment %d booked with doctor %d", appointment.ID, doctorID))

	return appointment.ID, nil
}
