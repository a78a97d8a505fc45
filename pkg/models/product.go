package models

import (
	"time"
)

// Hostels the marketplace delivers to.
const (
	HostelHimalaya = "Himalaya"
	HostelJanadhar = "Janadhar"
)

func ValidHostel(h string) bool {
	return h == HostelHimalaya || h == HostelJanadhar
}

// Product is a snack listed by a seller. Quantity is mutated only by the
// stock reservation path and never goes below zero. Deleting a product sets
// IsActive to false so historical orders keep a valid reference.
type Product struct {
	ID          string    `gorm:"primaryKey;type:varchar(36)" json:"id"`
	Title       string    `gorm:"type:varchar(200);not null" json:"title"`
	Description string    `gorm:"type:text" json:"description"`
	Price       int64     `gorm:"not null" json:"price"`
	Quantity    int64     `gorm:"not null" json:"quantity"`
	ImageURL    string    `gorm:"type:varchar(500)" json:"image_url"`
	Hostel      string    `gorm:"type:varchar(50);index" json:"hostel"`
	SellerID    string    `gorm:"type:varchar(36);not null;index" json:"seller_id"`
	SellerName  string    `gorm:"type:varchar(100)" json:"seller_name"`
	IsActive    bool      `gorm:"default:true" json:"is_active"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (Product) TableName() string {
	return "products"
}
