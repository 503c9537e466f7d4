package handler

import (
	"hospital-management-backend/internal/middleware"
	"hospital-management-backend/internal/models"
	"hospital-management-backend/internal/service"
	"hospital-management-backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

// Handlers groups every route handler for router construction
type Handlers struct {
	Auth      *AuthHandler
	Admin     *AdminHandler
	Doctor    *DoctorHandler
	Patient   *PatientHandler
	Pharmacy  *PharmacyHandler
	Reception *ReceptionHandler
}

// NewRouter builds the gin engine with all routes and role gates wired.
// Shared by main and the handler tests.
func NewRouter(h Handlers, authService *service.AuthService, extra ...gin.HandlerFunc) *gin.Engine {
	r := gin.Default()
	r.Use(extra...)

	// Health check endpoint
	r.GET("/health", func(c *gin.Context) {
		utils.SuccessResponse(c, gin.H{
			"status":  "healthy",
			"service": "hospital-management-backend",
		})
	})

	// Auth routes (public)
	r.POST("/login", h.Auth.Login)
	r.POST("/register", h.Auth.Register)
	r.GET("/logout", h.Auth.Logout)

	// Doctor directory is public so patients can browse before signing up
	r.GET("/api/doctors", h.Patient.Doctors)

	api := r.Group("/api")
	api.Use(middleware.Authenticate(authService))
	{
		api.GET("/user/profile", h.Auth.Profile)

		admin := api.Group("/admin", middleware.RequireRole(models.RoleAdmin))
		{
			admin.GET("/stats", h.Admin.Stats)
			admin.GET("/users", h.Admin.Users)
			admin.POST("/repair-profiles", h.Admin.RepairProfiles)
			admin.POST("/users/:id/reset-password", h.Admin.ResetPassword)
		}

		doctor := api.Group("/doctor", middleware.RequireRole(models.RoleDoctor))
		{
			doctor.GET("/appointments", h.Doctor.Appointments)
			doctor.PUT("/appointments/:id/status", h.Doctor.UpdateAppointmentStatus)
			doctor.POST("/prescriptions", h.Doctor.CreatePrescription)
		}

		patient := api.Group("/patient", middleware.RequireRole(models.RolePatient))
		{
			patient.GET("/appointments", h.Patient.Appointments)
			patient.GET("/prescriptions", h.Patient.Prescriptions)
			patient.POST("/book-appointment", h.Patient.BookAppointment)
		}

		pharmacy := api.Group("/pharmacy", middleware.RequireRole(models.RolePharmacy))
		{
			pharmacy.GET("/inventory", h.Pharmacy.Inventory)
			pharmacy.POST("/inventory", h.Pharmacy.AddMedicine)
			pharmacy.PUT("/inventory/:id/quantity", h.Pharmacy.UpdateQuantity)
			pharmacy.GET("/prescriptions", h.Pharmacy.PendingPrescriptions)
			pharmacy.PUT("/prescriptions/:id/status", h.Pharmacy.UpdatePrescriptionStatus)
		}

		reception := api.Group("/reception", middleware.RequireRole(models.RoleReception))
		{
			reception.GET("/appointments", h.Reception.Appointments)
		}
	}

	return r
}
