package models

import (
	"time"
)

type Role string

const (
	RoleBuyer  Role = "buyer"
	RoleSeller Role = "seller"
)

func (r Role) Valid() bool {
	return r == RoleBuyer || r == RoleSeller
}

type User struct {
	ID         string    `gorm:"primaryKey;type:varchar(36)" json:"id"`
	Email      string    `gorm:"type:varchar(100);uniqueIndex;not null" json:"email"`
	Name       string    `gorm:"type:varchar(100);not null" json:"name"`
	Role       Role      `gorm:"type:varchar(20);default:'buyer'" json:"role"`
	Hostel     string    `gorm:"type:varchar(50)" json:"hostel"`
	RoomNumber string    `gorm:"type:varchar(20)" json:"room_number"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

func (User) TableName() string {
	return "users"
}
