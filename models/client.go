package models

import (
	"github.com/lib/pq"
	"gorm.io/gorm"
)

type ClientStatus string

const (
	ClientStatusNew           ClientStatus = "New"
	ClientStatusContacted     ClientStatus = "Contacted"
	ClientStatusInterested    ClientStatus = "Interested"
	ClientStatusNotInterested ClientStatus = "Not Interested"
	ClientStatusConverted     ClientStatus = "Converted"
)

func (s ClientStatus) Valid() bool {
	switch s {
	case ClientStatusNew, ClientStatusContacted, ClientStatusInterested,
		ClientStatusNotInterested, ClientStatusConverted:
		return true
	}
	return false
}

func ClientStatusValues() []ClientStatus {
	return []ClientStatus{
		ClientStatusNew, ClientStatusContacted, ClientStatusInterested,
		ClientStatusNotInterested, ClientStatusConverted,
	}
}

// Client is a registered end customer. OwnerNames/OwnerNumbers are parallel
// arrays: element i of each describes the i-th team member who claimed the client.
type Client struct {
	gorm.Model

	Name   string       `gorm:"not null" json:"name"`
	Email  string       `gorm:"index" json:"email"`
	Phone  string       `gorm:"index;not null" json:"phoneNumber"`
	Status ClientStatus `gorm:"not null;default:'New';index" json:"status"`

	OwnerNames   pq.StringArray `gorm:"type:text[]" json:"ownerName"`
	OwnerNumbers pq.StringArray `gorm:"type:text[]" json:"ownerNumber"`

	LeaderCode string `gorm:"index" json:"leaderCode"`
	PortalName string `gorm:"index" json:"portalName"`

	KycDone   bool `gorm:"default:false" json:"kycDone"`
	TradeDone bool `gorm:"default:false" json:"tradeDone"`

	// Required when status is "Not Interested", cleared otherwise
	Reason string `json:"reason,omitempty"`
}

// Claimed reports whether the given phone number already claimed this client.
func (cl *Client) Claimed(ownerNumber string) bool {
	for _, n := range cl.OwnerNumbers {
		if n == ownerNumber {
			return true
		}
	}
	return false
}
