package handler

import (
	"net/http"

	"hospital-management-backend/internal/service"
	"hospital-management-backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

type ReceptionHandler struct {
	receptionService *service.ReceptionService
}

func NewReceptionHandler(receptionService *service.ReceptionService) *ReceptionHandler {
	return &ReceptionHandler{receptionService: receptionService}
}

// Appointments returns the desk-wide appointment list
func (h *ReceptionHandler) Appointments(c *gin.Context) {
	appointments, err := h.receptionService.ListAppointments()
	if err != nil {
		utils.ErrorResponse(c, http.StatusInternalServerError, "Failed to fetch appointments")
		return
	}

	c.JSON(http.StatusOK, gin.H{"appointments": appointments})
}
