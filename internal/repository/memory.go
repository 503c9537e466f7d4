package repository

import (
	"sort"
	"sync"
	"time"

	"hospital-management-backend/internal/models"
)

// MemoryStore is an in-memory implementation of every store interface.
// It enforces the same uniqueness and rollback semantics as the MySQL
// implementation and exists so services and handlers can be tested without
// a database.
type MemoryStore struct {
	mu sync.RWMutex

	nextUserID         uint
	nextDoctorID       uint
	nextPatientID      uint
	nextAppointmentID  uint
	nextPrescriptionID uint
	nextMedicineID     uint
	nextSessionID      uint
	nextAuditID        uint

	users         map[uint]models.User
	doctors       map[uint]models.Doctor
	patients      map[uint]models.Patient
	appointments  map[uint]models.Appointment
	prescriptions map[uint]models.Prescription
	medicines     map[uint]models.MedicineInventory
	sessions      map[uint]models.Session
	auditLogs     []models.AuditLog
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		nextUserID:         1,
		nextDoctorID:       1,
		nextPatientID:      1,
		nextAppointmentID:  1,
		nextPrescriptionID: 1,
		nextMedicineID:     1,
		nextSessionID:      1,
		nextAuditID:        1,
		users:              make(map[uint]models.User),
		doctors:            make(map[uint]models.Doctor),
		patients:           make(map[uint]models.Patient),
		appointments:       make(map[uint]models.Appointment),
		prescriptions:      make(map[uint]models.Prescription),
		medicines:          make(map[uint]models.MedicineInventory),
		sessions:           make(map[uint]models.Session),
	}
}

var (
	_ UserStore         = (*MemoryStore)(nil)
	_ DoctorStore       = (*MemoryStore)(nil)
	_ PatientStore      = (*MemoryStore)(nil)
	_ AppointmentStore  = (*MemoryStore)(nil)
	_ PrescriptionStore = (*MemoryStore)(nil)
	_ MedicineStore     = (*MemoryStore)(nil)
	_ SessionStore      = (*MemoryStore)(nil)
	_ AuditStore        = (*MemoryStore)(nil)
)

// UserStore implementation

func (m *MemoryStore) FindUserByUsername(username string) (*models.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, u := range m.users {
		if u.Username == username {
			cp := u
			return &cp, nil
		}
	}
	return nil, ErrNotFound
}

func (m *MemoryStore) FindUserByEmail(email string) (*models.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, u := range m.users {
		if u.Email == email {
			cp := u
			return &cp, nil
		}
	}
	return nil, ErrNotFound
}

func (m *MemoryStore) FindUserByID(id uint) (*models.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	u, ok := m.users[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := u
	return &cp, nil
}

func (m *MemoryStore) ListUsers() ([]models.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]models.User, 0, len(m.users))
	for _, u := range m.users {
		out = append(out, u)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (m *MemoryStore) CountUsers() (int64, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return int64(len(m.users)), nil
}

func (m *MemoryStore) CreateUserWithProfile(user *models.User, doctor *models.Doctor, patient *models.Patient) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	// unique-index backstop, checked under the write lock
	for _, u := range m.users {
		if u.Username == user.Username {
			return ErrDuplicateUsername
		}
		if u.Email == user.Email {
			return ErrDuplicateEmail
		}
	}

	user.ID = m.nextUserID
	m.nextUserID++
	if user.CreatedAt.IsZero() {
		user.CreatedAt = time.Now().UTC()
	}
	m.users[user.ID] = *user

	if doctor != nil {
		doctor.ID = m.nextDoctorID
		m.nextDoctorID++
		doctor.UserID = user.ID
		m.doctors[doctor.ID] = *doctor
	}
	if patient != nil {
		patient.ID = m.nextPatientID
		m.nextPatientID++
		patient.UserID = user.ID
		m.patients[patient.ID] = *patient
	}
	return nil
}

func (m *MemoryStore) UpdateUserPassword(userID uint, passwordHash string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[userID]
	if !ok {
		return ErrNotFound
	}
	u.PasswordHash = passwordHash
	m.users[userID] = u
	return nil
}

// DoctorStore implementation

func (m *MemoryStore) CreateDoctor(doctor *models.Doctor) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.users[doctor.UserID]; !ok {
		return ErrNotFound
	}
	doctor.ID = m.nextDoctorID
	m.nextDoctorID++
	m.doctors[doctor.ID] = *doctor
	return nil
}

func (m *MemoryStore) FindDoctorByID(id uint) (*models.Doctor, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	d, ok := m.doctors[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := d
	cp.User = m.users[d.UserID]
	return &cp, nil
}

func (m *MemoryStore) FindDoctorByUserID(userID uint) (*models.Doctor, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, d := range m.doctors {
		if d.UserID == userID {
			cp := d
			return &cp, nil
		}
	}
	return nil, ErrNotFound
}

func (m *MemoryStore) ListAvailableDoctors() ([]models.Doctor, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]models.Doctor, 0)
	for _, d := range m.doctors {
		if d.Available {
			d.User = m.users[d.UserID]
			out = append(out, d)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (m *MemoryStore) CountDoctors() (int64, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return int64(len(m.doctors)), nil
}

// PatientStore implementation

func (m *MemoryStore) CreatePatient(patient *models.Patient) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.users[patient.UserID]; !ok {
		return ErrNotFound
	}
	patient.ID = m.nextPatientID
	m.nextPatientID++
	m.patients[patient.ID] = *patient
	return nil
}

func (m *MemoryStore) FindPatientByUserID(userID uint) (*models.Patient, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, p := range m.patients {
		if p.UserID == userID {
			cp := p
			return &cp, nil
		}
	}
	return nil, ErrNotFound
}

func (m *MemoryStore) CountPatients() (int64, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return int64(len(m.patients)), nil
}

// AppointmentStore implementation

func (m *MemoryStore) CreateAppointment(appointment *models.Appointment) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.patients[appointment.PatientID]; !ok {
		return ErrNotFound
	}
	if _, ok := m.doctors[appointment.DoctorID]; !ok {
		return ErrNotFound
	}
	appointment.ID = m.nextAppointmentID
	m.nextAppointmentID++
	if appointment.CreatedAt.IsZero() {
		appointment.CreatedAt = time.Now().UTC()
	}
	m.appointments[appointment.ID] = *appointment
	return nil
}

func (m *MemoryStore) FindAppointmentByID(id uint) (*models.Appointment, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	a, ok := m.appointments[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := a
	return &cp, nil
}

// populateAppointment attaches patient and doctor rows with their user
// accounts, mirroring the gorm preloads. Caller holds the lock.
func (m *MemoryStore) populateAppointment(a models.Appointment) models.Appointment {
	p := m.patients[a.PatientID]
	p.User = m.users[p.UserID]
	a.Patient = p
	d := m.doctors[a.DoctorID]
	d.User = m.users[d.UserID]
	a.Doctor = d
	return a
}

func (m *MemoryStore) ListAppointmentsByDoctor(doctorID uint) ([]models.Appointment, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]models.Appointment, 0)
	for _, a := range m.appointments {
		if a.DoctorID == doctorID {
			out = append(out, m.populateAppointment(a))
		}
	}
	sortAppointments(out)
	return out, nil
}

func (m *MemoryStore) ListAppointmentsByPatient(patientID uint) ([]models.Appointment, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]models.Appointment, 0)
	for _, a := range m.appointments {
		if a.PatientID == patientID {
			out = append(out, m.populateAppointment(a))
		}
	}
	sortAppointments(out)
	return out, nil
}

func (m *MemoryStore) ListAppointments() ([]models.Appointment, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]models.Appointment, 0, len(m.appointments))
	for _, a := range m.appointments {
		out = append(out, m.populateAppointment(a))
	}
	sortAppointments(out)
	return out, nil
}

func sortAppointments(appointments []models.Appointment) {
	sort.Slice(appointments, func(i, j int) bool {
		return appointments[i].AppointmentDate.Before(appointments[j].AppointmentDate)
	})
}

func (m *MemoryStore) UpdateAppointmentStatus(id uint, status, notes string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	a, ok := m.appointments[id]
	if !ok {
		return ErrNotFound
	}
	a.Status = status
	if notes != "" {
		a.Notes = notes
	}
	m.appointments[id] = a
	return nil
}

func (m *MemoryStore) CountAppointments() (int64, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return int64(len(m.appointments)), nil
}

// PrescriptionStore implementation

func (m *MemoryStore) CreatePrescription(prescription *models.Prescription) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.patients[prescription.PatientID]; !ok {
		return ErrNotFound
	}
	if _, ok := m.doctors[prescription.DoctorID]; !ok {
		return ErrNotFound
	}
	prescription.ID = m.nextPrescriptionID
	m.nextPrescriptionID++
	if prescription.CreatedAt.IsZero() {
		prescription.CreatedAt = time.Now().UTC()
	}
	m.prescriptions[prescription.ID] = *prescription
	return nil
}

func (m *MemoryStore) FindPrescriptionByID(id uint) (*models.Prescription, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	p, ok := m.prescriptions[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := p
	return &cp, nil
}

func (m *MemoryStore) ListPrescriptionsByPatient(patientID uint) ([]models.Prescription, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]models.Prescription, 0)
	for _, p := range m.prescriptions {
		if p.PatientID == patientID {
			out = append(out, p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (m *MemoryStore) ListPrescriptionsByStatus(status string) ([]models.Prescription, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]models.Prescription, 0)
	for _, p := range m.prescriptions {
		if p.Status == status {
			pat := m.patients[p.PatientID]
			pat.User = m.users[pat.UserID]
			p.Patient = pat
			out = append(out, p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (m *MemoryStore) UpdatePrescriptionStatus(id uint, status string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.prescriptions[id]
	if !ok {
		return ErrNotFound
	}
	p.Status = status
	m.prescriptions[id] = p
	return nil
}

// MedicineStore implementation

func (m *MemoryStore) CreateMedicine(medicine *models.MedicineInventory) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	medicine.ID = m.nextMedicineID
	m.nextMedicineID++
	medicine.LastUpdated = time.Now().UTC()
	m.medicines[medicine.ID] = *medicine
	return nil
}

func (m *MemoryStore) FindMedicineByID(id uint) (*models.MedicineInventory, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	med, ok := m.medicines[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := med
	return &cp, nil
}

func (m *MemoryStore) ListMedicines() ([]models.MedicineInventory, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]models.MedicineInventory, 0, len(m.medicines))
	for _, med := range m.medicines {
		out = append(out, med)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (m *MemoryStore) UpdateMedicineQuantity(id uint, quantity uint) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	med, ok := m.medicines[id]
	if !ok {
		return ErrNotFound
	}
	med.Quantity = quantity
	med.LastUpdated = time.Now().UTC()
	m.medicines[id] = med
	return nil
}

// SessionStore implementation

func (m *MemoryStore) CreateSession(session *models.Session) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	session.ID = m.nextSessionID
	m.nextSessionID++
	if session.CreatedAt.IsZero() {
		session.CreatedAt = time.Now().UTC()
	}
	m.sessions[session.ID] = *session
	return nil
}

func (m *MemoryStore) FindActiveSessionByHash(hash string) (*models.Session, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, s := range m.sessions {
		if s.TokenHash == hash && !s.Revoked {
			cp := s
			cp.User = m.users[s.UserID]
			return &cp, nil
		}
	}
	return nil, ErrNotFound
}

func (m *MemoryStore) RevokeSessionByHash(hash string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for id, s := range m.sessions {
		if s.TokenHash == hash {
			s.Revoked = true
			m.sessions[id] = s
		}
	}
	return nil
}

// AuditStore implementation

func (m *MemoryStore) CreateAuditLog(userID *uint, action string, details string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.auditLogs = append(m.auditLogs, models.AuditLog{
		ID:        m.nextAuditID,
		UserID:    userID,
		Action:    action,
		Details:   details,
		CreatedAt: time.Now().UTC(),
	})
	m.nextAuditID++
	return nil
}

// AuditLogs returns a copy of the recorded audit trail, for tests.
func (m *MemoryStore) AuditLogs() []models.AuditLog {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]models.AuditLog, len(m.auditLogs))
	copy(out, m.auditLogs)
	return out
}
