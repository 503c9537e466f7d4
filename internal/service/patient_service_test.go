package service

import (
	"testing"
	"time"

	"hospital-management-backend/internal/apperr"
	"hospital-management-backend/internal/models"
	"hospital-management-backend/internal/repository"
	"hospital-management-backend/pkg/utils"
)

type fixture struct {
	store    *repository.MemoryStore
	auth     *AuthService
	patients *PatientService
	doctors  *DoctorService
	pharmacy *PharmacyService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	utils.InitTokens("test-secret", 15*time.Minute, 24*time.Hour)
	store := repository.NewMemoryStore()
	return &fixture{
		store:    store,
		auth:     NewAuthService(store, store, store),
		patients: NewPatientService(store, store, store, store, store),
		doctors:  NewDoctorService(store, store, store, store, store),
		pharmacy: NewPharmacyService(store, store, store),
	}
}

// registerUser registers an account and returns its user ID
func (f *fixture) registerUser(t *testing.T, username string, role models.Role) uint {
	t.Helper()
	if err := f.auth.Register(username, username+"@x.com", "secret1", role); err != nil {
		t.Fatalf("register %s: %v", username, err)
	}
	user, err := f.store.FindUserByUsername(username)
	if err != nil {
		t.Fatalf("find %s: %v", username, err)
	}
	return user.ID
}

func (f *fixture) doctorProfileID(t *testing.T, userID uint) uint {
	t.Helper()
	doctor, err := f.store.FindDoctorByUserID(userID)
	if err != nil {
		t.Fatalf("doctor profile: %v", err)
	}
	return doctor.ID
}

func TestPatient_ListAppointments_NoProfile(t *testing.T) {
	f := newFixture(t)
	adminID := f.registerUser(t, "boss", models.RoleAdmin)

	// no patient profile exists for an admin account
	appointments, err := f.patients.ListAppointments(adminID)
	if err != nil {
		t.Fatalf("expected empty list, got error: %v", err)
	}
	if len(appointments) != 0 {
		t.Fatalf("expected empty list, got %d", len(appointments))
	}

	prescriptions, err := f.patients.ListPrescriptions(adminID)
	if err != nil || len(prescriptions) != 0 {
		t.Fatalf("expected empty prescriptions, got %v %v", prescriptions, err)
	}
}

func TestPatient_BookAppointment(t *testing.T) {
	f := newFixture(t)
	patientID := f.registerUser(t, "alice", models.RolePatient)
	doctorUserID := f.registerUser(t, "drbob", models.RoleDoctor)
	doctorID := f.doctorProfileID(t, doctorUserID)

	id, err := f.patients.BookAppointment(patientID, doctorID, "2026-09-15T10:00:00", "checkup")
	if err != nil {
		t.Fatalf("booking failed: %v", err)
	}
	if id == 0 {
		t.Fatalf("expected appointment id")
	}

	appointments, err := f.patients.ListAppointments(patientID)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(appointments) != 1 {
		t.Fatalf("expected one appointment, got %d", len(appointments))
	}
	if appointments[0].Status != models.AppointmentScheduled {
		t.Fatalf("expected scheduled status, got %q", appointments[0].Status)
	}
	if appointments[0].DoctorName != "drbob" {
		t.Fatalf("wrong doctor name: %q", appointments[0].DoctorName)
	}
}

func TestPatient_BookAppointment_Failures(t *testing.T) {
	f := newFixture(t)
	patientID := f.registerUser(t, "alice", models.RolePatient)
	doctorUserID := f.registerUser(t, "drbob", models.RoleDoctor)
	doctorID := f.doctorProfileID(t, doctorUserID)

	// missing doctor
	if _, err := f.patients.BookAppointment(patientID, 999, "2026-09-15T10:00:00", "x"); !apperr.Is(err, apperr.CodeValidation) {
		t.Fatalf("expected validation error for unknown doctor, got %v", err)
	}
	// zero doctor id
	if _, err := f.patients.BookAppointment(patientID, 0, "2026-09-15T10:00:00", "x"); !apperr.Is(err, apperr.CodeValidation) {
		t.Fatalf("expected validation error for missing doctor, got %v", err)
	}
	// unparseable date
	if _, err := f.patients.BookAppointment(patientID, doctorID, "next tuesday", "x"); !apperr.Is(err, apperr.CodeValidation) {
		t.Fatalf("expected validation error for bad date, got %v", err)
	}
	// caller without a patient profile
	adminID := f.registerUser(t, "boss", models.RoleAdmin)
	if _, err := f.patients.BookAppointment(adminID, doctorID, "2026-09-15T10:00:00", "x"); !apperr.Is(err, apperr.CodeNotFound) {
		t.Fatalf("expected not found for missing profile, got %v", err)
	}

	// none of the failures created a row
	count, _ := f.store.CountAppointments()
	if count != 0 {
		t.Fatalf("failed bookings left %d rows", count)
	}
}

func TestPatient_ListAvailableDoctors(t *testing.T) {
	f := newFixture(t)
	f.registerUser(t, "drbob", models.RoleDoctor)
	f.registerUser(t, "alice", models.RolePatient)

	doctors, err := f.patients.ListAvailableDoctors()
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(doctors) != 1 {
		t.Fatalf("expected one available doctor, got %d", len(doctors))
	}
	if doctors[0].Name != "drbob" || doctors[0].Specialization != "General Practice" {
		t.Fatalf("wrong doctor view: %+v", doctors[0])
	}
}
