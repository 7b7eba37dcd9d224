package models

import (
	"gorm.io/gorm"
)

// PortalLink maps a portal slug to the partner URL the funnel redirects to.
type PortalLink struct {
	gorm.Model

	PortalName string  `gorm:"uniqueIndex;not null" json:"portalName"`
	URL        string  `gorm:"not null" json:"url"`
	Commission float64 `gorm:"default:0" json:"commission"`
}
