package models

import (
	"gorm.io/gorm"
)

// LeadStatus values are wire literals the dashboard filters on.
// "RegisterationDone" is kept as-is; the dashboard and historical rows use that spelling.
type LeadStatus string

const (
	LeadStatusNew               LeadStatus = "New"
	LeadStatusRegisterationDone LeadStatus = "RegisterationDone"
	LeadStatusCallCut           LeadStatus = "CallCut"
	LeadStatusCallNotPickUp     LeadStatus = "CallNotPickUp"
	LeadStatusNotInterested     LeadStatus = "NotInterested"
	LeadStatusInvalidNumber     LeadStatus = "InvalidNumber"
	LeadStatusConverted         LeadStatus = "Converted"
)

func (s LeadStatus) Valid() bool {
	switch s {
	case LeadStatusNew, LeadStatusRegisterationDone, LeadStatusCallCut,
		LeadStatusCallNotPickUp, LeadStatusNotInterested, LeadStatusInvalidNumber,
		LeadStatusConverted:
		return true
	}
	return false
}

func LeadStatusValues() []LeadStatus {
	return []LeadStatus{
		LeadStatusNew, LeadStatusRegisterationDone, LeadStatusCallCut,
		LeadStatusCallNotPickUp, LeadStatusNotInterested, LeadStatusInvalidNumber,
		LeadStatusConverted,
	}
}

// Lead is a prospect record worked by the sales team.
type Lead struct {
	gorm.Model

	Name   string     `json:"name"`
	Email  string     `gorm:"index" json:"email"`
	Phone  string     `gorm:"index" json:"phone"`
	Status LeadStatus `gorm:"not null;default:'New';index" json:"status"`

	Source      string `json:"source"`
	PortalName  string `gorm:"index" json:"portal_name"`
	EkycStage   string `json:"ekyc_stage"`
	TradeStatus string `json:"trade_status"`
	Message     string `gorm:"type:text" json:"message"`

	// Looked up by the transaction flow
	TransactionID string `gorm:"index" json:"transactionId"`
}
