package service

import (
	"time"

	"hospital-management-backend/internal/repository"
)

// ReceptionService serves the scheduling desk view across all appointments.
type ReceptionService struct {
	appointmentRepo repository.AppointmentStore
}

func NewReceptionService(appointmentRepo repository.AppointmentStore) *ReceptionService {
	return &ReceptionService{appointmentRepo: appointmentRepo}
}

// ReceptionAppointmentView is one row of the desk-wide appointment list
type ReceptionAppointmentView struct {
	ID          uint   `json:"id"`
	PatientName string `json:"patient_name"`
	DoctorName  string `json:"doctor_name"`
	Date        string `json:"date"`
	Reason      string `json:"reason"`
	Status      string `json:"status"`
}

// ListAppointments returns every appointment with both party names
func (s *ReceptionService) ListAppointments() ([]ReceptionAppointmentView, error) {
	appointments, err := s.appointmentRepo.ListAppointments()
	if err != nil {
		return nil, err
	}

	out := make([]ReceptionAppointmentView, len(appointments))
	for i, a := range appointments {
		out[i] = ReceptionAppointmentView{
			ID:          a.ID,
			PatientName: a.Patient.User.Username,
			DoctorName:  a.Doctor.User.Username,
			Date:        a.AppointmentDate.Format(time.RFC3339),
			Reason:      a.Reason,
			Status:      a.Status,
		}
	}
	return out, nil
}
