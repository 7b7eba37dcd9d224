package models

import (
	"gorm.io/gorm"
)

type ContactStatus string

const (
	ContactStatusNew           ContactStatus = "New"
	ContactStatusContacted     ContactStatus = "Contacted"
	ContactStatusNotInterested ContactStatus = "NotInterested"
)

func (s ContactStatus) Valid() bool {
	switch s {
	case ContactStatusNew, ContactStatusContacted, ContactStatusNotInterested:
		return true
	}
	return false
}

func ContactStatusValues() []ContactStatus {
	return []ContactStatus{ContactStatusNew, ContactStatusContacted, ContactStatusNotInterested}
}

// Contact is an inbound inquiry from the public site.
type Contact struct {
	gorm.Model

	Name    string        `gorm:"not null" json:"name"`
	Email   string        `gorm:"index" json:"email"`
	Phone   string        `gorm:"index" json:"phone"`
	Message string        `gorm:"type:text" json:"message"`
	Status  ContactStatus `gorm:"not null;default:'New';index" json:"status"`

	// Required when status is NotInterested, cleared otherwise
	Reason string `json:"reason,omitempty"`
}
