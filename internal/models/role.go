package models

// Role is the account role stored on a user. Every authenticated request
// carries exactly one role; there is no hierarchy between them.
type Role string

const (
	RoleAdmin     Role = "admin"
	RoleDoctor    Role = "doctor"
	RolePatient   Role = "patient"
	RoleReception Role = "reception"
	RolePharmacy  Role = "pharmacy"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleDoctor, RolePatient, RoleReception, RolePharmacy:
		return true
	}
	return false
}

func (r Role) String() string {
	return string(r)
}
