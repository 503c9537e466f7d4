package service

import (
	"fmt"
	"time"

	"hospital-management-backend/internal/apperr"
	"hospital-management-backend/internal/models"
	"hospital-management-backend/internal/repository"
)

type PharmacyService struct {
	medicineRepo     repository.MedicineStore
	prescriptionRepo repository.PrescriptionStore
	auditRepo        repository.AuditStore
}

func NewPharmacyService(
	medicineRepo repository.MedicineStore,
	prescriptionRepo repository.PrescriptionStore,
	auditRepo repository.AuditStore,
) *PharmacyService {
	return &PharmacyService{
		medicineRepo:     medicineRepo,
		prescriptionRepo: prescriptionRepo,
		auditRepo:        auditRepo,
	}
}

// MedicineView is one row of the inventory listing
type MedicineView struct {
	ID         uint    `json:"id"`
	Name       string  `json:"name"`
	Quantity   uint    `json:"quantity"`
	UnitPrice  float64 `json:"unit_price"`
	Category   string  `json:"category"`
	ExpiryDate *string `json:"expiry_date"`
}

// ListInventory returns the full medicine inventory
func (s *PharmacyService) ListInventory() ([]MedicineView, error) {
	medicines, err := s.medicineRepo.ListMedicines()
	if err != nil {
		return nil, err
	}

	out := make([]MedicineView, len(medicines))
	for i, m := range medicines {
		var expiry *string
		if m.ExpiryDate != nil {
			formatted := m.ExpiryDate.Format(time.RFC3339)
			expiry = &formatted
		}
		out[i] = MedicineView{
			ID:         m.ID,
			Name:       m.Name,
			Quantity:   m.Quantity,
			UnitPrice:  m.UnitPrice,
			Category:   m.Category,
			ExpiryDate: expiry,
		}
	}
	return out, nil
}

// AddMedicine adds a new medicine to the inventory
func (s *PharmacyService) AddMedicine(userID uint, name string, quantity uint, unitPrice float64, category string, expiryDate *time.Time) (uint, error) {
	if name == "" {
		return 0, apperr.Validation("Medicine name is required")
	}

	medicine := &models.MedicineInventory{
		Name:       name,
		Quantity:   quantity,
		UnitPrice:  unitPrice,
		Category:   category,
		ExpiryDate: expiryDate,
	}
	if err := s.medicineRepo.CreateMedicine(medicine); err != nil {
		return 0, apperr.Persistence("Failed to add medicine")
	}

	_ = s.auditRepo.CreateAuditLog(&userID, "medicine_added",
		fmt.Sprintf("Medicine %s added with quantity %d", name, quantity))

	return medicine.ID, nil
}

// UpdateQuantity sets the stock quantity for a medicine
func (s *PharmacyService) UpdateQuantity(userID, medicineID uint, quantity uint) error {
	medicine, err := s.medicineRepo.FindMedicineByID(medicineID)
	if err != nil {
		return apperr.NotFound("Medicine not found")
	}

	if err := s.medicineRepo.UpdateMedicineQuantity(medicine.ID, quantity); err != nil {
		return apperr.Persistence("Failed to update quantity")
	}

	_ = s.auditRepo.CreateAuditLog(&userID, "medicine_quantity",
		fmt.Sprintf("Medicine %s quantity set to %d", medicine.Name, quantity))

	return nil
}

// PendingPrescriptionView is one row of the pharmacy's pending queue
type PendingPrescriptionView struct {
	ID          uint   `json:"id"`
	PatientName string `json:"patient_name"`
	Medication  string `json:"medication"`
	Dosage      string `json:"dosage"`
	CreatedAt   string `json:"created_at"`
}

// ListPendingPrescriptions returns prescriptions awaiting fulfilment
func (s *PharmacyService) ListPendingPrescriptions() ([]PendingPrescriptionView, error) {
	prescriptions, err := s.prescriptionRepo.ListPrescriptionsByStatus(models.PrescriptionPending)
	if err != nil {
		return nil, err
	}

	out := make([]PendingPrescriptionView, len(prescriptions))
	for i, p := range prescriptions {
		out[i] = PendingPrescriptionView{
			ID:          p.ID,
			PatientName: p.Patient.User.Username,
			Medication:  p.Medication,
			Dosage:      p.Dosage,
			CreatedAt:   p.CreatedAt.Format(time.RFC3339),
		}
	}
	return out, nil
}

// UpdatePrescriptionStatus moves a prescription to filled or completed
func (s *PharmacyService) UpdatePrescriptionStatus(userID, prescriptionID uint, status string) error {
	if !models.ValidPrescriptionStatus(status) || status == models.PrescriptionPending {
		return apperr.Validation("Status must be 'filled' or 'completed'")
	}

	if _, err := s.prescriptionRepo.FindPrescriptionByID(prescriptionID); err != nil {
		return apperr.NotFound("Prescription not found")
	}

	if err := s.prescriptionRepo.UpdatePrescriptionStatus(prescriptionID, status); err != nil {
		return apperr.Persistence("Failed to update prescription")
	}

	_ = s.auditRepo.CreateAuditLog(&userID, "prescription_status",
		fmt.Sprintf("Prescription %d marked %s", prescriptionID, status))

	return nil
}
