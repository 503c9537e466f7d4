package handler

import (
	"net/http"
	"strconv"

	"hospital-management-backend/internal/middleware"
	"hospital-management-backend/internal/service"
	"hospital-management-backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

type AdminHandler struct {
	adminService *service.AdminService
}

func NewAdminHandler(adminService *service.AdminService) *AdminHandler {
	return &AdminHandler{adminService: adminService}
}

// Stats returns aggregate entity counts
func (h *AdminHandler) Stats(c *gin.Context) {
	stats, err := h.adminService.GetStats()
	if err != nil {
		utils.ErrorResponse(c, http.StatusInternalServerError, "Failed to fetch stats")
		return
	}
	c.JSON(http.StatusOK, stats)
}

// Users returns the full user listing
func (h *AdminHandler) Users(c *gin.Context) {
	users, err := h.adminService.ListUsers()
	if err != nil {
		utils.ErrorResponse(c, http.StatusInternalServerError, "Failed to fetch users")
		return
	}
	c.JSON(http.StatusOK, users)
}

// RepairProfiles backfills missing doctor/patient profile rows
func (h *AdminHandler) RepairProfiles(c *gin.Context) {
	identity, ok := middleware.CallerIdentity(c)
	if !ok {
		utils.ErrorResponse(c, http.StatusUnauthorized, "Unauthorized")
		return
	}

	repaired, err := h.adminService.RepairProfiles(identity.UserID)
	if err != nil {
		utils.ErrorResponse(c, http.StatusInternalServerError, "Profile repair failed")
		return
	}

	utils.SuccessResponse(c, gin.H{"repaired": repaired})
}

type ResetPasswordRequest struct {
	Password string `json:"password" binding:"required"`
}

// ResetPassword sets a new password for the given user
func (h *AdminHandler) ResetPassword(c *gin.Context) {
	identity, ok := middleware.CallerIdentity(c)
	if !ok {
		utils.ErrorResponse(c, http.StatusUnauthorized, "Unauthorized")
		return
	}

	userID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid user ID")
		return
	}

	var req ResetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := h.adminService.ResetPassword(identity.UserID, uint(userID), req.Password); err != nil {
		utils.DomainErrorResponse(c, err)
		return
	}

	utils.MessageResponse(c, "Password reset successfully")
}
