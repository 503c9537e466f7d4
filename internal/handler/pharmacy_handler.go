package handler

import (
	"net/http"
	"strconv"
	"time"

	"hospital-management-backend/internal/middleware"
	"hospital-management-backend/internal/service"
	"hospital-management-backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

type PharmacyHandler struct {
	pharmacyService *service.PharmacyService
}

func NewPharmacyHandler(pharmacyService *service.PharmacyService) *PharmacyHandler {
	return &PharmacyHandler{pharmacyService: pharmacyService}
}

// Inventory returns the full medicine inventory
func (h *PharmacyHandler) Inventory(c *gin.Context) {
	medicines, err := h.pharmacyService.ListInventory()
	if err != nil {
		utils.ErrorResponse(c, http.StatusInternalServerError, "Failed to fetch inventory")
		return
	}

	c.JSON(http.StatusOK, gin.H{"medicines": medicines})
}

type AddMedicineRequest struct {
	Name       string  `json:"name" binding:"required"`
	Quantity   uint    `json:"quantity"`
	UnitPrice  float64 `json:"unit_price"`
	Category   string  `json:"category"`
	ExpiryDate string  `json:"expiry_date"`
}

// AddMedicine adds a new medicine to the inventory
func (h *PharmacyHandler) AddMedicine(c *gin.Context) {
	identity, ok := middleware.CallerIdentity(c)
	if !ok {
		utils.ErrorResponse(c, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var req AddMedicineRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	var expiry *time.Time
	if req.ExpiryDate != "" {
		parsed, err := time.Parse(time.RFC3339, req.ExpiryDate)
		if err != nil {
			// dates alone are accepted too
			parsed, err = time.Parse("2006-01-02", req.ExpiryDate)
			if err != nil {
				utils.ErrorResponse(c, http.StatusBadRequest, "Invalid expiry date")
				return
			}
		}
		expiry = &parsed
	}

	id, err := h.pharmacyService.AddMedicine(identity.UserID, req.Name, req.Quantity, req.UnitPrice, req.Category, expiry)
	if err != nil {
		utils.DomainErrorResponse(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{"medicine_id": id})
}

type UpdateQuantityRequest struct {
	Quantity *uint `json:"quantity" binding:"required"`
}

// UpdateQuantity sets the stock level of a medicine
func (h *PharmacyHandler) UpdateQuantity(c *gin.Context) {
	identity, ok := middleware.CallerIdentity(c)
	if !ok {
		utils.ErrorResponse(c, http.StatusUnauthorized, "Unauthorized")
		return
	}

	medicineID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid medicine ID")
		return
	}

	var req UpdateQuantityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := h.pharmacyService.UpdateQuantity(identity.UserID, uint(medicineID), *req.Quantity); err != nil {
		utils.DomainErrorResponse(c, err)
		return
	}

	utils.MessageResponse(c, "Quantity updated")
}

// PendingPrescriptions returns prescriptions awaiting fulfilment
func (h *PharmacyHandler) PendingPrescriptions(c *gin.Context) {
	prescriptions, err := h.pharmacyService.ListPendingPrescriptions()
	if err != nil {
		utils.ErrorResponse(c, http.StatusInternalServerError, "Failed to fetch prescriptions")
		return
	}

	c.JSON(http.StatusOK, gin.H{"prescriptions": prescriptions})
}

type PrescriptionStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=filled completed"`
}

// UpdatePrescriptionStatus marks a prescription filled or completed
func (h *PharmacyHandler) UpdatePrescriptionStatus(c *gin.Context) {
	identity, ok := middleware.CallerIdentity(c)
	if !ok {
		utils.ErrorResponse(c, http.StatusUnauthorized, "Unauthorized")
		return
	}

	prescriptionID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid prescription ID")
		return
	}

	var req PrescriptionStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request. Status must be 'filled' or 'completed'")
		return
	}

	if err := h.pharmacyService.UpdatePrescriptionStatus(identity.UserID, uint(prescriptionID), req.Status); err != nil {
		utils.DomainErrorResponse(c, err)
		return
	}

	utils.MessageResponse(c, "Prescription updated")
}
