package handler

import (
	"net/http"

	"hospital-management-backend/internal/middleware"
	"hospital-management-backend/internal/service"
	"hospital-management-backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

type PatientHandler struct {
	patientService *service.PatientService
}

func NewPatientHandler(patientService *service.PatientService) *PatientHandler {
	return &PatientHandler{patientService: patientService}
}

// Appointments returns the caller's appointments
func (h *PatientHandler) Appointments(c *gin.Context) {
	identity, ok := middleware.CallerIdentity(c)
	if !ok {
		utils.ErrorResponse(c, http.StatusUnauthorized, "Unauthorized")
		return
	}

	appointments, err := h.patientService.ListAppointments(identity.UserID)
	if err != nil {
		utils.ErrorResponse(c, http.StatusInternalServerError, "Failed to fetch appointments")
		return
	}

	c.JSON(http.StatusOK, gin.H{"appointments": appointments})
}

// Prescriptions returns the caller's prescriptions
func (h *PatientHandler) Prescriptions(c *gin.Context) {
	identity, ok := middleware.CallerIdentity(c)
	if !ok {
		utils.ErrorResponse(c, http.StatusUnauthorized, "Unauthorized")
		return
	}

	prescriptions, err := h.patientService.ListPrescriptions(identity.UserID)
	if err != nil {
		utils.ErrorResponse(c, http.StatusInternalServerError, "Failed to fetch prescriptions")
		return
	}

	c.JSON(http.StatusOK, gin.H{"prescriptions": prescriptions})
}

// Doctors returns the available-doctor listing. Requires authentication but
// no particular role.
func (h *PatientHandler) Doctors(c *gin.Context) {
	doctors, err := h.patientService.ListAvailableDoctors()
	if err != nil {
		utils.ErrorResponse(c, http.StatusInternalServerError, "Failed to fetch doctors")
		return
	}

	c.JSON(http.StatusOK, gin.H{"doctors": doctors})
}

type BookAppointmentRequest struct {
	DoctorID        uint   `json:"doctor_id"`
	AppointmentDate string `json:"appointment_date"`
	Reason          string `json:"reason"`
}

// BookAppointment creates a scheduled appointment for the caller
func (h *PatientHandler) BookAppointment(c *gin.Context) {
	identity, ok := middleware.CallerIdentity(c)
	if !ok {
		utils.ErrorResponse(c, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var req BookAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	id, err := h.patientService.BookAppointment(identity.UserID, req.DoctorID, req.AppointmentDate, req.Reason)
	if err != nil {
		utils.DomainErrorResponse(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{
		"message":        "Appointment booked successfully!",
		"appointment_id": id,
	})
}
