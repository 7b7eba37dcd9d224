package models

import (
	"gorm.io/gorm"
)

type LinkclickStatus string

const (
	LinkclickComplete   LinkclickStatus = "complete"
	LinkclickInComplete LinkclickStatus = "inComplete"
)

func (s LinkclickStatus) Valid() bool {
	return s == LinkclickComplete || s == LinkclickInComplete
}

// Linkclick records a referral-link visit. It starts inComplete and is marked
// complete when a client registers through the same leader code and portal.
type Linkclick struct {
	gorm.Model

	LeaderCode string          `gorm:"index" json:"leaderCode"`
	PortalName string          `gorm:"index" json:"portalName"`
	Status     LinkclickStatus `gorm:"not null;default:'inComplete';index" json:"status"`

	IPAddress string `json:"ipAddress,omitempty"`
	UserAgent string `json:"userAgent,omitempty"`
}
