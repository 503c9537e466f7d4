package models

import "time"

// MedicineInventory represents the medicine_inventory table
// Standalone stock records, no relation to other entities
type MedicineInventory struct {
	ID          uint       `gorm:"primaryKey" json:"id"`
	Name        string     `gorm:"not null;size:255" json:"name"`
	Quantity    uint       `gorm:"default:0" json:"quantity"`
	UnitPrice   float64    `json:"unit_price"`
	ExpiryDate  *time.Time `json:"expiry_date"`
	Category    string     `gorm:"size:100" json:"category"`
	LastUpdated time.Time  `gorm:"autoUpdateTime" json:"last_updated"`
}

// TableName specifies the table name for MedicineInventory model
func (MedicineInventory) TableName() string {
	return "medicine_inventory"
}
