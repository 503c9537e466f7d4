package repository

import (
	"errors"
	"testing"
	"time"

	"hospital-management-backend/internal/models"
)

func TestMemoryStore_CreateUserWithProfile_Doctor(t *testing.T) {
	m := NewMemoryStore()

	user := &models.User{Username: "drbob", Email: "bob@x.com", PasswordHash: "h", Role: models.RoleDoctor}
	doctor := &models.Doctor{Specialization: "General Practice", Available: true}
	if err := m.CreateUserWithProfile(user, doctor, nil); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if user.ID == 0 || doctor.ID == 0 {
		t.Fatalf("expected ids assigned")
	}
	if doctor.UserID != user.ID {
		t.Fatalf("doctor not linked to user")
	}

	got, err := m.FindDoctorByUserID(user.ID)
	if err != nil {
		t.Fatalf("profile missing after commit: %v", err)
	}
	if got.ID != doctor.ID {
		t.Fatalf("wrong profile row")
	}
}

func TestMemoryStore_DuplicateUsername(t *testing.T) {
	m := NewMemoryStore()

	first := &models.User{Username: "alice", Email: "alice@x.com", PasswordHash: "h", Role: models.RolePatient}
	if err := m.CreateUserWithProfile(first, nil, &models.Patient{}); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}

	second := &models.User{Username: "alice", Email: "other@x.com", PasswordHash: "h", Role: models.RolePatient}
	err := m.CreateUserWithProfile(second, nil, &models.Patient{})
	if !errors.Is(err, ErrDuplicateUsername) {
		t.Fatalf("expected duplicate username, got %v", err)
	}

	count, _ := m.CountUsers()
	if count != 1 {
		t.Fatalf("expected exactly one row, got %d", count)
	}
	// no orphan profile row from the failed registration
	patients, _ := m.CountPatients()
	if patients != 1 {
		t.Fatalf("expected exactly one patient profile, got %d", patients)
	}
}

func TestMemoryStore_DuplicateEmail(t *testing.T) {
	m := NewMemoryStore()

	first := &models.User{Username: "alice", Email: "alice@x.com", PasswordHash: "h", Role: models.RolePatient}
	if err := m.CreateUserWithProfile(first, nil, nil); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}

	second := &models.User{Username: "bob", Email: "alice@x.com", PasswordHash: "h", Role: models.RolePatient}
	if err := m.CreateUserWithProfile(second, nil, nil); !errors.Is(err, ErrDuplicateEmail) {
		t.Fatalf("expected duplicate email, got %v", err)
	}
}

func TestMemoryStore_AppointmentReferentialIntegrity(t *testing.T) {
	m := NewMemoryStore()

	appointment := &models.Appointment{PatientID: 99, DoctorID: 99, AppointmentDate: time.Now()}
	if err := m.CreateAppointment(appointment); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected FK failure, got %v", err)
	}

	count, _ := m.CountAppointments()
	if count != 0 {
		t.Fatalf("failed insert left a row")
	}
}

func TestMemoryStore_Sessions(t *testing.T) {
	m := NewMemoryStore()

	user := &models.User{Username: "alice", Email: "alice@x.com", PasswordHash: "h", Role: models.RolePatient}
	if err := m.CreateUserWithProfile(user, nil, nil); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}

	session := &models.Session{UserID: user.ID, TokenHash: "abc", ExpiresAt: time.Now().Add(time.Hour)}
	if err := m.CreateSession(session); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}

	got, err := m.FindActiveSessionByHash("abc")
	if err != nil {
		t.Fatalf("expected active session: %v", err)
	}
	if got.User.Username != "alice" {
		t.Fatalf("session user not populated")
	}

	if err := m.RevokeSessionByHash("abc"); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if _, err := m.FindActiveSessionByHash("abc"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected revoked session to be inactive")
	}
	// revoking again is a no-op
	if err := m.RevokeSessionByHash("abc"); err != nil {
		t.Fatalf("revoke not idempotent: %v", err)
	}
}

func TestMemoryStore_UpdateStatuses(t *testing.T) {
	m := NewMemoryStore()

	patientUser := &models.User{Username: "p", Email: "p@x.com", PasswordHash: "h", Role: models.RolePatient}
	patient := &models.Patient{}
	if err := m.CreateUserWithProfile(patientUser, nil, patient); err != nil {
		t.Fatal(err)
	}
	doctorUser := &models.User{Username: "d", Email: "d@x.com", PasswordHash: "h", Role: models.RoleDoctor}
	doctor := &models.Doctor{Available: true}
	if err := m.CreateUserWithProfile(doctorUser, doctor, nil); err != nil {
		t.Fatal(err)
	}

	appointment := &models.Appointment{PatientID: patient.ID, DoctorID: doctor.ID, AppointmentDate: time.Now(), Status: models.AppointmentScheduled}
	if err := m.CreateAppointment(appointment); err != nil {
		t.Fatal(err)
	}
	if err := m.UpdateAppointmentStatus(appointment.ID, models.AppointmentCompleted, "done"); err != nil {
		t.Fatal(err)
	}
	got, _ := m.FindAppointmentByID(appointment.ID)
	if got.Status != models.AppointmentCompleted || got.Notes != "done" {
		t.Fatalf("status update lost: %+v", got)
	}

	if err := m.UpdateAppointmentStatus(999, models.AppointmentCompleted, ""); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}
