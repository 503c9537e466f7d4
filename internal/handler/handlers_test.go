package handler

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"hospital-management-backend/internal/models"
	"hospital-management-backend/internal/repository"
	"hospital-management-backend/internal/service"
	"hospital-management-backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

type testServer struct {
	engine *gin.Engine
	store  *repository.MemoryStore
	auth   *service.AuthService
}

func setupServer(t *testing.T) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)
	utils.InitTokens("test-secret", 15*time.Minute, 24*time.Hour)

	store := repository.NewMemoryStore()
	authService := service.NewAuthService(store, store, store)
	adminService := service.NewAdminService(store, store, store, store, store)
	doctorService := service.NewDoctorService(store, store, store, store, store)
	patientService := service.NewPatientService(store, store, store, store, store)
	pharmacyService := service.NewPharmacyService(store, store, store)
	receptionService := service.NewReceptionService(store)

	engine := NewRouter(Handlers{
		Auth:      NewAuthHandler(authService),
		Admin:     NewAdminHandler(adminService),
		Doctor:    NewDoctorHandler(doctorService),
		Patient:   NewPatientHandler(patientService),
		Pharmacy:  NewPharmacyHandler(pharmacyService),
		Reception: NewReceptionHandler(receptionService),
	}, authService)

	return &testServer{engine: engine, store: store, auth: authService}
}

func (s *testServer) doJSON(t *testing.T, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatal(err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	s.engine.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &out); err != nil {
		t.Fatalf("invalid JSON response: %v: %s", err, w.Body.String())
	}
	return out
}

// login returns the caller's access token
func (s *testServer) login(t *testing.T, username, password string) string {
	t.Helper()
	w := s.doJSON(t, http.MethodPost, "/login", "", map[string]any{
		"username": username, "password": password,
	})
	if w.Code != http.StatusOK {
		t.Fatalf("login %s: code %d: %s", username, w.Code, w.Body.String())
	}
	body := decode(t, w)
	token, _ := body["access_token"].(string)
	if token == "" {
		t.Fatalf("login %s: no access token", username)
	}
	return token
}

func TestRegisterLoginBookFlow(t *testing.T) {
	s := setupServer(t)

	// register a doctor so there is someone to book with
	w := s.doJSON(t, http.MethodPost, "/register", "", map[string]any{
		"username": "drbob", "email": "bob@x.com", "password": "secret1", "role": "doctor",
	})
	if w.Code != http.StatusOK {
		t.Fatalf("doctor register: code %d: %s", w.Code, w.Body.String())
	}

	// register patient alice
	w = s.doJSON(t, http.MethodPost, "/register", "", map[string]any{
		"username": "alice", "email": "alice@x.com", "password": "secret1",
	})
	if w.Code != http.StatusOK {
		t.Fatalf("register: code %d: %s", w.Code, w.Body.String())
	}

	// same username again fails with 400 and leaves one row
	w = s.doJSON(t, http.MethodPost, "/register", "", map[string]any{
		"username": "alice", "email": "other@x.com", "password": "secret1",
	})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("duplicate register: code %d", w.Code)
	}

	// wrong password
	w = s.doJSON(t, http.MethodPost, "/login", "", map[string]any{
		"username": "alice", "password": "wrong",
	})
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("wrong password: code %d", w.Code)
	}

	// successful login reports the role and sets the session cookie
	w = s.doJSON(t, http.MethodPost, "/login", "", map[string]any{
		"username": "alice", "password": "secret1",
	})
	if w.Code != http.StatusOK {
		t.Fatalf("login: code %d: %s", w.Code, w.Body.String())
	}
	body := decode(t, w)
	if body["role"] != "patient" {
		t.Fatalf("wrong role: %v", body["role"])
	}
	cookieSet := false
	for _, c := range w.Result().Cookies() {
		if c.Name == "session_token" && c.Value != "" && c.HttpOnly {
			cookieSet = true
		}
	}
	if !cookieSet {
		t.Fatalf("session cookie not set")
	}
	token, _ := body["access_token"].(string)

	// discover the doctor
	w = s.doJSON(t, http.MethodGet, "/api/doctors", token, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("doctors: code %d", w.Code)
	}
	doctors := decode(t, w)["doctors"].([]any)
	if len(doctors) != 1 {
		t.Fatalf("expected one doctor, got %d", len(doctors))
	}
	doctorID := doctors[0].(map[string]any)["id"].(float64)

	// book an appointment
	w = s.doJSON(t, http.MethodPost, "/api/patient/book-appointment", token, map[string]any{
		"doctor_id": doctorID, "appointment_date": "2026-09-15T10:00:00", "reason": "checkup",
	})
	if w.Code != http.StatusOK {
		t.Fatalf("booking: code %d: %s", w.Code, w.Body.String())
	}
	if decode(t, w)["appointment_id"].(float64) == 0 {
		t.Fatalf("no appointment id")
	}

	// the appointment shows up as scheduled
	w = s.doJSON(t, http.MethodGet, "/api/patient/appointments", token, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("appointments: code %d", w.Code)
	}
	appointments := decode(t, w)["appointments"].([]any)
	if len(appointments) != 1 {
		t.Fatalf("expected one appointment, got %d", len(appointments))
	}
	entry := appointments[0].(map[string]any)
	if entry["status"] != "scheduled" || entry["doctor_name"] != "drbob" {
		t.Fatalf("wrong appointment row: %v", entry)
	}
}

func TestDoctorDirectoryIsPublic(t *testing.T) {
	s := setupServer(t)
	s.doJSON(t, http.MethodPost, "/register", "", map[string]any{
		"username": "drbob", "email": "bob@x.com", "password": "secret1", "role": "doctor",
	})

	// no cookie, no token
	w := s.doJSON(t, http.MethodGet, "/api/doctors", "", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("anonymous doctor listing: code %d: %s", w.Code, w.Body.String())
	}
	doctors := decode(t, w)["doctors"].([]any)
	if len(doctors) != 1 {
		t.Fatalf("expected one doctor, got %d", len(doctors))
	}
}

func TestBooking_BadInput(t *testing.T) {
	s := setupServer(t)
	s.doJSON(t, http.MethodPost, "/register", "", map[string]any{
		"username": "alice", "email": "alice@x.com", "password": "secret1",
	})
	token := s.login(t, "alice", "secret1")

	// unknown doctor
	w := s.doJSON(t, http.MethodPost, "/api/patient/book-appointment", token, map[string]any{
		"doctor_id": 42, "appointment_date": "2026-09-15T10:00:00",
	})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("unknown doctor: code %d", w.Code)
	}

	// bad date
	w = s.doJSON(t, http.MethodPost, "/api/patient/book-appointment", token, map[string]any{
		"doctor_id": 1, "appointment_date": "tomorrow",
	})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("bad date: code %d", w.Code)
	}

	count, _ := s.store.CountAppointments()
	if count != 0 {
		t.Fatalf("failed bookings created %d rows", count)
	}
}

func TestRegister_ValidationMessages(t *testing.T) {
	s := setupServer(t)

	w := s.doJSON(t, http.MethodPost, "/register", "", map[string]any{
		"username": " ", "email": "a@x.com", "password": "secret1",
	})
	if w.Code != http.StatusBadRequest || decode(t, w)["message"] != "All fields are required" {
		t.Fatalf("blank username: %d %s", w.Code, w.Body.String())
	}

	w = s.doJSON(t, http.MethodPost, "/register", "", map[string]any{
		"username": "alice", "email": "a@x.com", "password": "123",
	})
	if w.Code != http.StatusBadRequest || decode(t, w)["message"] != "Password must be at least 6 characters" {
		t.Fatalf("short password: %d %s", w.Code, w.Body.String())
	}
}

func TestRoleGates(t *testing.T) {
	s := setupServer(t)

	admin := &models.User{Username: "boss", Email: "boss@x.com", Role: models.RoleAdmin}
	hash, _ := utils.HashPassword("admin123")
	admin.PasswordHash = hash
	if err := s.store.CreateUserWithProfile(admin, nil, nil); err != nil {
		t.Fatal(err)
	}
	s.doJSON(t, http.MethodPost, "/register", "", map[string]any{
		"username": "alice", "email": "alice@x.com", "password": "secret1",
	})

	adminToken := s.login(t, "boss", "admin123")
	patientToken := s.login(t, "alice", "secret1")

	// anonymous callers are rejected
	if w := s.doJSON(t, http.MethodGet, "/api/admin/stats", "", nil); w.Code != http.StatusUnauthorized {
		t.Fatalf("anonymous: code %d", w.Code)
	}

	// admin is not implicitly a doctor
	if w := s.doJSON(t, http.MethodGet, "/api/doctor/appointments", adminToken, nil); w.Code != http.StatusUnauthorized {
		t.Fatalf("admin through doctor gate: code %d", w.Code)
	}
	// patient cannot reach admin routes
	if w := s.doJSON(t, http.MethodGet, "/api/admin/users", patientToken, nil); w.Code != http.StatusUnauthorized {
		t.Fatalf("patient through admin gate: code %d", w.Code)
	}
	// pharmacy gate holds against both
	if w := s.doJSON(t, http.MethodGet, "/api/pharmacy/inventory", adminToken, nil); w.Code != http.StatusUnauthorized {
		t.Fatalf("admin through pharmacy gate: code %d", w.Code)
	}

	// matched roles pass
	if w := s.doJSON(t, http.MethodGet, "/api/admin/stats", adminToken, nil); w.Code != http.StatusOK {
		t.Fatalf("admin stats: code %d", w.Code)
	}
	if w := s.doJSON(t, http.MethodGet, "/api/patient/appointments", patientToken, nil); w.Code != http.StatusOK {
		t.Fatalf("patient appointments: code %d", w.Code)
	}
}

func TestSessionCookieAuth(t *testing.T) {
	s := setupServer(t)
	s.doJSON(t, http.MethodPost, "/register", "", map[string]any{
		"username": "alice", "email": "alice@x.com", "password": "secret1",
	})

	w := s.doJSON(t, http.MethodPost, "/login", "", map[string]any{
		"username": "alice", "password": "secret1",
	})
	var sessionCookie *http.Cookie
	for _, c := range w.Result().Cookies() {
		if c.Name == "session_token" {
			sessionCookie = c
		}
	}
	if sessionCookie == nil {
		t.Fatalf("no session cookie")
	}

	// profile via cookie alone
	req := httptest.NewRequest(http.MethodGet, "/api/user/profile", nil)
	req.AddCookie(sessionCookie)
	rec := httptest.NewRecorder()
	s.engine.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("cookie auth: code %d: %s", rec.Code, rec.Body.String())
	}
	profile := decode(t, rec)
	if profile["username"] != "alice" || profile["role"] != "patient" {
		t.Fatalf("wrong profile: %v", profile)
	}

	// logout redirects and revokes the session
	req = httptest.NewRequest(http.MethodGet, "/logout", nil)
	req.AddCookie(sessionCookie)
	rec = httptest.NewRecorder()
	s.engine.ServeHTTP(rec, req)
	if rec.Code != http.StatusFound || rec.Header().Get("Location") != "/login" {
		t.Fatalf("logout: code %d location %q", rec.Code, rec.Header().Get("Location"))
	}

	req = httptest.NewRequest(http.MethodGet, "/api/user/profile", nil)
	req.AddCookie(sessionCookie)
	rec = httptest.NewRecorder()
	s.engine.ServeHTTP(rec, req)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("revoked session still valid: code %d", rec.Code)
	}

	// logout without a cookie still redirects
	req = httptest.NewRequest(http.MethodGet, "/logout", nil)
	rec = httptest.NewRecorder()
	s.engine.ServeHTTP(rec, req)
	if rec.Code != http.StatusFound {
		t.Fatalf("cookieless logout: code %d", rec.Code)
	}
}

func TestPharmacyFlow(t *testing.T) {
	s := setupServer(t)
	s.doJSON(t, http.MethodPost, "/register", "", map[string]any{
		"username": "pharma", "email": "ph@x.com", "password": "secret1", "role": "pharmacy",
	})
	token := s.login(t, "pharma", "secret1")

	w := s.doJSON(t, http.MethodPost, "/api/pharmacy/inventory", token, map[string]any{
		"name": "Ibuprofen", "quantity": 50, "unit_price": 3.2, "category": "Analgesic", "expiry_date": "2027-01-01",
	})
	if w.Code != http.StatusOK {
		t.Fatalf("add medicine: code %d: %s", w.Code, w.Body.String())
	}

	w = s.doJSON(t, http.MethodGet, "/api/pharmacy/inventory", token, nil)
	medicines := decode(t, w)["medicines"].([]any)
	if len(medicines) != 1 {
		t.Fatalf("expected one medicine, got %d", len(medicines))
	}

	w = s.doJSON(t, http.MethodPut, "/api/pharmacy/inventory/1/quantity", token, map[string]any{
		"quantity": 0,
	})
	if w.Code != http.StatusOK {
		t.Fatalf("update quantity: code %d: %s", w.Code, w.Body.String())
	}
}

func TestReceptionAppointments(t *testing.T) {
	s := setupServer(t)
	s.doJSON(t, http.MethodPost, "/register", "", map[string]any{
		"username": "desk", "email": "desk@x.com", "password": "secret1", "role": "reception",
	})
	s.doJSON(t, http.MethodPost, "/register", "", map[string]any{
		"username": "drbob", "email": "bob@x.com", "password": "secret1", "role": "doctor",
	})
	s.doJSON(t, http.MethodPost, "/register", "", map[string]any{
		"username": "alice", "email": "alice@x.com", "password": "secret1",
	})

	patientToken := s.login(t, "alice", "secret1")
	s.doJSON(t, http.MethodPost, "/api/patient/book-appointment", patientToken, map[string]any{
		"doctor_id": 1, "appointment_date": "2026-09-15T10:00:00", "reason": "checkup",
	})

	deskToken := s.login(t, "desk", "secret1")
	w := s.doJSON(t, http.MethodGet, "/api/reception/appointments", deskToken, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("reception list: code %d", w.Code)
	}
	appointments := decode(t, w)["appointments"].([]any)
	if len(appointments) != 1 {
		t.Fatalf("expected one appointment, got %d", len(appointments))
	}
	entry := appointments[0].(map[string]any)
	if entry["patient_name"] != "alice" || entry["doctor_name"] != "drbob" {
		t.Fatalf("wrong row: %v", entry)
	}
}
