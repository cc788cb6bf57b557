package models

import (
	"time"

	"gorm.io/gorm"
)

// Model is the base model with common fields for all database entities
type Model struct {
	ID        uint           `json:"id" gorm:"primarykey"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"deleted_at,omitempty" gorm:"index"`
}

// Role identifies which side of the marketplace a user acts on
type Role string

const (
	// RoleBuyer places orders
	RoleBuyer Role = "buyer"
	// RoleSeller accepts orders and progresses fulfillment
	RoleSeller Role = "seller"
)

// User model represents a buyer or seller account
type User struct {
	Model
	Name  string `json:"name" gorm:"Column:name"`
	Email string `json:"email" gorm:"uniqueIndex;Column:email"`
	Role  Role   `json:"role" gorm:"Column:role"`
}
