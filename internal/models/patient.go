package models

// Patient represents the patients table
// One row per user with role=patient, created at registration
type Patient struct {
	ID             uint   `gorm:"primaryKey" json:"id"`
	UserID         uint   `gorm:"not null;uniqueIndex" json:"user_id"`
	Age            int    `json:"age"`
	Gender         string `gorm:"size:20" json:"gender"`
	BloodType      string `gorm:"size:5" json:"blood_type"`
	Phone          string `gorm:"size:15" json:"phone"`
	Address        string `gorm:"size:255" json:"address"`
	MedicalHistory string `gorm:"type:text" json:"medical_history"`
	User           User   `gorm:"foreignKey:UserID" json:"user,omitempty"`
}

// TableName specifies the table name for Patient model
func (Patient) TableName() string {
	return "patients"
}
