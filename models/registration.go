package models

import (
	"gorm.io/gorm"
)

// Registration is a funnel signup tied to a leader code. It shares the Lead
// status vocabulary and carries a reason when marked NotInterested.
type Registration struct {
	gorm.Model

	Name  string `gorm:"not null" json:"name"`
	Email string `gorm:"index" json:"email"`
	Phone string `gorm:"index" json:"phone"`

	LeaderCode string     `gorm:"index" json:"leaderCode"`
	Status     LeadStatus `gorm:"not null;default:'New';index" json:"status"`
	Reason     string     `json:"reason,omitempty"`
}
