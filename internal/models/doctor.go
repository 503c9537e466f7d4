package models

// Doctor represents the doctors table
// One row per user with role=doctor, created at registration
type Doctor struct {
	ID             uint   `gorm:"primaryKey" json:"id"`
	UserID         uint   `gorm:"not null;uniqueIndex" json:"user_id"`
	Specialization string `gorm:"not null;size:100" json:"specialization"`
	Phone          string `gorm:"size:15" json:"phone"`
	LicenseNumber  string `gorm:"size:50" json:"license_number"`
	Available      bool   `gorm:"default:true" json:"available"`
	User           User   `gorm:"foreignKey:UserID" json:"user,omitempty"`
}

// TableName specifies the table name for Doctor model
func (Doctor) TableName() string {
	return "doctors"
}
