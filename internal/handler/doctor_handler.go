package handler

import (
	"net/http"
	"strconv"

	"hospital-management-backend/internal/middleware"
	"hospital-management-backend/internal/service"
	"hospital-management-backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

type DoctorHandler struct {
	doctorService *service.DoctorService
}

func NewDoctorHandler(doctorService *service.DoctorService) *DoctorHandler {
	return &DoctorHandler{doctorService: doctorService}
}

// Appointments returns the caller's assigned appointments
func (h *DoctorHandler) Appointments(c *gin.Context) {
	identity, ok := middleware.CallerIdentity(c)
	if !ok {
		utils.ErrorResponse(c, http.StatusUnauthorized, "Unauthorized")
		return
	}

	appointments, err := h.doctorService.ListAppointments(identity.UserID)
	if err != nil {
		utils.ErrorResponse(c, http.StatusInternalServerError, "Failed to fetch appointments")
		return
	}

	c.JSON(http.StatusOK, gin.H{"appointments": appointments})
}

type AppointmentStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=completed cancelled"`
	Notes  string `json:"notes"`
}

// UpdateAppointmentStatus marks one of the caller's appointments completed
// or cancelled
func (h *DoctorHandler) UpdateAppointmentStatus(c *gin.Context) {
	identity, ok := middleware.CallerIdentity(c)
	if !ok {
		utils.ErrorResponse(c, http.StatusUnauthorized, "Unauthorized")
		return
	}

	appointmentID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid appointment ID")
		return
	}

	var req AppointmentStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request. Status must be 'completed' or 'cancelled'")
		return
	}

	if err := h.doctorService.UpdateAppointmentStatus(identity.UserID, uint(appointmentID), req.Status, req.Notes); err != nil {
		utils.DomainErrorResponse(c, err)
		return
	}

	utils.MessageResponse(c, "Appointment updated")
}

type CreatePrescriptionRequest struct {
	PatientID  uint   `json:"patient_id" binding:"required"`
	Medication string `json:"medication" binding:"required"`
	Dosage     string `json:"dosage"`
	Duration   string `json:"duration"`
	Notes      string `json:"notes"`
}

// CreatePrescription issues a pending prescription for a patient
func (h *DoctorHandler) CreatePrescription(c *gin.Context) {
	identity, ok := middleware.CallerIdentity(c)
	if !ok {
		utils.ErrorResponse(c, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var req CreatePrescriptionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	id, err := h.doctorService.CreatePrescription(identity.UserID, req.PatientID, req.Medication, req.Dosage, req.Duration, req.Notes)
	if err != nil {
		utils.DomainErrorResponse(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{"prescription_id": id})
}
