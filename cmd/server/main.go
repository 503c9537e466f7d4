package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"hospital-management-backend/internal/config"
	"hospital-management-backend/internal/database"
	"hospital-management-backend/internal/handler"
	"hospital-management-backend/internal/middleware"
	"hospital-management-backend/internal/repository"
	"hospital-management-backend/internal/service"
	"hospital-management-backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

func main() {
	// 1. Load configuration
	cfg := config.LoadConfig()
	log.Println("Configuration loaded successfully")

	// 2. Initialize token utilities with config
	utils.InitTokens(
		cfg.Auth.JWTSecret,
		cfg.Auth.AccessTokenExpiry,
		cfg.Auth.SessionExpiry,
	)

	// 3. Initialize database connection and schema
	db := database.Connect(cfg)
	database.Migrate(db)

	// 4. Initialize repositories
	userRepo := repository.NewUserRepo(db)
	doctorRepo := repository.NewDoctorRepo(db)
	patientRepo := repository.NewPatientRepo(db)
	appointmentRepo := repository.NewAppointmentRepo(db)
	prescriptionRepo := repository.NewPrescriptionRepo(db)
	medicineRepo := repository.NewMedicineRepo(db)
	sessionRepo := repository.NewSessionRepo(db)
	auditRepo := repository.NewAuditRepo(db)

	// 5. Initialize services
	authService := service.NewAuthService(userRepo, sessionRepo, auditRepo)
	adminService := service.NewAdminService(userRepo, doctorRepo, patientRepo, appointmentRepo, auditRepo)
	doctorService := service.NewDoctorService(doctorRepo, patientRepo, appointmentRepo, prescriptionRepo, auditRepo)
	patientService := service.NewPatientService(patientRepo, doctorRepo, appointmentRepo, prescriptionRepo, auditRepo)
	pharmacyService := service.NewPharmacyService(medicineRepo, prescriptionRepo, auditRepo)
	receptionService := service.NewReceptionService(appointmentRepo)

	// Seed the initial admin account
	if err := authService.EnsureAdminUser(cfg.Admin); err != nil {
		log.Printf("Warning: Failed to seed admin user: %v", err)
	}

	// 6. Setup Gin mode
	gin.SetMode(cfg.Server.GinMode)

	// 7. Build router with handlers and CORS
	r := handler.NewRouter(handler.Handlers{
		Auth:      handler.NewAuthHandler(authService),
		Admin:     handler.NewAdminHandler(adminService),
		Doctor:    handler.NewDoctorHandler(doctorService),
		Patient:   handler.NewPatientHandler(patientService),
		Pharmacy:  handler.NewPharmacyHandler(pharmacyService),
		Reception: handler.NewReceptionHandler(receptionService),
	}, authService, middleware.CORS(cfg))

	// 8. Start server with graceful shutdown
	go func() {
		log.Printf("Server starting on port %s", cfg.Server.Port)
		if err := r.Run(":" + cfg.Server.Port); err != nil {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")
	log.Println("Server exited")
}
