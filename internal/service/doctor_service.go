package service

import (
	"errors"
	"fmt"
	"time"

	"hospital-management-backend/internal/apperr"
	"hospital-management-backend/internal/models"
	"hospital-management-backend/internal/repository"
)

type DoctorService struct {
	doctorRepo       repository.DoctorStore
	patientRepo      repository.PatientStore
	appointmentRepo  repository.AppointmentStore
	prescriptionRepo repository.PrescriptionStore
	auditRepo        repository.AuditStore
}

func NewDoctorService(
	doctorRepo repository.DoctorStore,
	patientRepo repository.PatientStore,
	appointmentRepo repository.AppointmentStore,
	prescriptionRepo repository.PrescriptionStore,
	auditRepo repository.AuditStore,
) *DoctorService {
	return &DoctorService{
		doctorRepo:       doctorRepo,
		patientRepo:      patientRepo,
		appointmentRepo:  appointmentRepo,
		prescriptionRepo: prescriptionRepo,
		auditRepo:        auditRepo,
	}
}

// DoctorAppointmentView is one row of the doctor's appointment list
type DoctorAppointmentView struct {
	ID          uint   `json:"id"`
	PatientName string `json:"patient_name"`
	Date        string `json:"date"`
	Reason      string `json:"reason"`
	Status      string `json:"status"`
}

// ListAppointments returns the appointments assigned to the caller's doctor
// profile. A caller without a profile gets an empty list, not an error.
func (s *DoctorService) ListAppointments(userID uint) ([]DoctorAppointmentView, error) {
	doctor, err := s.doctorRepo.FindDoctorByUserID(userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return []DoctorAppointmentView{}, nil
		}
		return nil, err
	}

	appointments, err := s.appointmentRepo.ListAppointmentsByDoctor(doctor.ID)
	if err != nil {
		return nil, err
	}

	out := make([]DoctorAppointmentView, len(appointments))
	for i, a := range appointments {
		out[i] = DoctorAppointmentView{
			ID:          a.ID,
			PatientName: a.Patient.User.Username,
			Date:        a.AppointmentDate.Format(time.RFC3339),
			Reason:      a.Reason,
			Status:      a.Status,
		}
	}
	return out, nil
}

// UpdateAppointmentStatus moves one of the caller's appointments to
// completed or cancelled, with optional notes
func (s *DoctorService) UpdateAppointmentStatus(userID, appointmentID uint, status, notes string) error {
	if !models.ValidAppointmentStatus(status) || status == models.AppointmentScheduled {
		return apperr.Validation("Status must be 'completed' or 'cancelled'")
	}

	doctor, err := s.doctorRepo.FindDoctorByUserID(userID)
	if err != nil {
		return apperr.NotFound("Doctor profile not found")
	}

	appointment, err := s.appointmentRepo.FindAppointmentByID(appointmentID)
	if err != nil {
		return apperr.NotFound("Appointment not found")
	}
	if appointment.DoctorID != doctor.ID {
		return apperr.ErrUnauthorized
	}

	if err := s.appointmentRepo.UpdateAppointmentStatus(appointmentID, status, notes); err != nil {
		return apperr.Persistence("Failed to update appointment")
	}

	_ = s.auditRepo.CreateAuditLog(&userID, "appointment_status",
		fmt.Sprintf("Appointment %d marked %s", appointmentID, status))

	return nil
}

// CreatePrescription issues a new pending prescription for a patient
func (s *DoctorService) CreatePrescription(userID, patientID uint, medication, dosage, duration, notes string) (uint, error) {
	if medication == "" {
		return 0, apperr.Validation("Medication is required")
	}

	doctor, err := s.doctorRepo.FindDoctorByUserID(userID)
	if err != nil {
		return 0, apperr.NotFound("Doctor profile not found")
	}

	prescription := &models.Prescription{
		PatientID:  patientID,
		DoctorID:   doctor.ID,
		Medication: medication,
		Dosage:     dosage,
		Duration:   duration,
		Notes:      notes,
		Status:     models.PrescriptionPending,
	}
	if err := s.prescriptionRepo.CreatePrescription(prescription); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return 0, apperr.NotFound("Patient not found")
		}
		return 0, apperr.Persistence("Failed to create prescription")
	}

	_ = s.auditRepo.CreateAuditLog(&userID, "prescription_created",
		fmt.Sprintf("Prescription %d issued for patient %d", prescription.ID, patientID))

	return prescription.ID, nil
}
