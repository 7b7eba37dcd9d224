package models

import (
	"gorm.io/gorm"
)

// UserRole is the dashboard section a user may access.
type UserRole string

const (
	RoleSales     UserRole = "sales"
	RoleDeveloper UserRole = "developer"
	RoleAdmin     UserRole = "admin"
)

func (r UserRole) Valid() bool {
	switch r {
	case RoleSales, RoleDeveloper, RoleAdmin:
		return true
	}
	return false
}

func UserRoleValues() []UserRole {
	return []UserRole{RoleSales, RoleDeveloper, RoleAdmin}
}

type UserStatus string

const (
	UserStatusActive   UserStatus = "active"
	UserStatusInactive UserStatus = "inactive"
)

func (s UserStatus) Valid() bool {
	return s == UserStatusActive || s == UserStatusInactive
}

// User represents a leader/team account managed from the admin dashboard.
type User struct {
	gorm.Model

	Name         string     `gorm:"not null" json:"name"`
	Email        string     `gorm:"uniqueIndex;not null" json:"email"`
	Phone        string     `gorm:"index" json:"phone"`
	PasswordHash string     `gorm:"not null" json:"-"`
	Role         UserRole   `gorm:"not null;default:'sales'" json:"role"`
	Status       UserStatus `gorm:"not null;default:'active'" json:"status"`

	// Referral identity
	LeaderCode string `gorm:"uniqueIndex" json:"leaderCode"`
	Income     int    `gorm:"default:0" json:"income"`

	// Payout details, optional
	BankName      string `json:"bankName,omitempty"`
	AccountNumber string `json:"accountNumber,omitempty"`
	IFSC          string `json:"ifsc,omitempty"`

	// Denormalized; synced by the counter worker
	RegisteredClientCount int `gorm:"default:0" json:"registeredClientCount"`
}
