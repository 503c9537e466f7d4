package service

import (
	"testing"
	"time"

	"hospital-management-backend/internal/apperr"
	"hospital-management-backend/internal/models"
)

func newAdminFixture(t *testing.T) (*AdminService, *fixture) {
	t.Helper()
	f := newFixture(t)
	return NewAdminService(f.store, f.store, f.store, f.store, f.store), f
}

func TestAdmin_Stats(t *testing.T) {
	svc, f := newAdminFixture(t)
	patientID := f.registerUser(t, "alice", models.RolePatient)
	doctorUserID := f.registerUser(t, "drbob", models.RoleDoctor)
	doctorID := f.doctorProfileID(t, doctorUserID)
	f.registerUser(t, "boss", models.RoleAdmin)

	if _, err := f.patients.BookAppointment(patientID, doctorID, "2026-09-15T10:00:00", "x"); err != nil {
		t.Fatal(err)
	}

	stats, err := svc.GetStats()
	if err != nil {
		t.Fatalf("stats failed: %v", err)
	}
	if stats.TotalUsers != 3 || stats.TotalDoctors != 1 || stats.TotalPatients != 1 || stats.TotalAppointments != 1 {
		t.Fatalf("wrong stats: %+v", stats)
	}
}

func TestAdmin_ListUsers(t *testing.T) {
	svc, f := newAdminFixture(t)
	f.registerUser(t, "alice", models.RolePatient)
	f.registerUser(t, "drbob", models.RoleDoctor)

	users, err := svc.ListUsers()
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(users) != 2 {
		t.Fatalf("expected two users, got %d", len(users))
	}
	if users[0].Username != "alice" || users[0].Role != "patient" {
		t.Fatalf("wrong first row: %+v", users[0])
	}
	if _, err := time.Parse(time.RFC3339, users[0].CreatedAt); err != nil {
		t.Fatalf("created_at not RFC3339: %q", users[0].CreatedAt)
	}
}

func TestAdmin_RepairProfiles(t *testing.T) {
	svc, f := newAdminFixture(t)
	adminID := f.registerUser(t, "boss", models.RoleAdmin)

	// a doctor account without its profile row, as left by pre-co-creation data
	orphan := &models.User{Username: "drjane", Email: "jane@x.com", PasswordHash: "h", Role: models.RoleDoctor}
	if err := f.store.CreateUserWithProfile(orphan, nil, nil); err != nil {
		t.Fatal(err)
	}
	// a healthy doctor account is left alone
	f.registerUser(t, "drbob", models.RoleDoctor)

	repaired, err := svc.RepairProfiles(adminID)
	if err != nil {
		t.Fatalf("repair failed: %v", err)
	}
	if repaired != 1 {
		t.Fatalf("expected one repair, got %d", repaired)
	}
	if _, err := f.store.FindDoctorByUserID(orphan.ID); err != nil {
		t.Fatalf("profile not backfilled: %v", err)
	}

	// repair is audited
	found := false
	for _, entry := range f.store.AuditLogs() {
		if entry.Action == "profile_repair" && entry.UserID != nil && *entry.UserID == adminID {
			found = true
		}
	}
	if !found {
		t.Fatalf("no audit entry for repair")
	}

	// second run has nothing to do
	repaired, err = svc.RepairProfiles(adminID)
	if err != nil || repaired != 0 {
		t.Fatalf("expected idempotent repair, got %d %v", repaired, err)
	}
}

func TestAdmin_ResetPassword(t *testing.T) {
	svc, f := newAdminFixture(t)
	adminID := f.registerUser(t, "boss", models.RoleAdmin)
	aliceID := f.registerUser(t, "alice", models.RolePatient)

	if err := svc.ResetPassword(adminID, aliceID, "short"); !apperr.Is(err, apperr.CodeValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if err := svc.ResetPassword(adminID, 999, "newsecret"); !apperr.Is(err, apperr.CodeNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}

	if err := svc.ResetPassword(adminID, aliceID, "newsecret"); err != nil {
		t.Fatalf("reset failed: %v", err)
	}

	if _, err := f.auth.Login("alice", "secret1"); err == nil {
		t.Fatalf("old password still valid")
	}
	if _, err := f.auth.Login("alice", "newsecret"); err != nil {
		t.Fatalf("new password rejected: %v", err)
	}
}
