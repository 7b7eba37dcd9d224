package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLeadStatusValid(t *testing.T) {
	for _, s := range LeadStatusValues() {
		assert.True(t, s.Valid(), string(s))
	}

	// The dashboard has always sent this spelling; it must stay accepted.
	assert.True(t, LeadStatus("RegisterationDone").Valid())
	assert.False(t, LeadStatus("RegistrationDone").Valid())
	assert.False(t, LeadStatus("").Valid())
	assert.False(t, LeadStatus("new").Valid())
}

func TestClientStatusValid(t *testing.T) {
	for _, s := range ClientStatusValues() {
		assert.True(t, s.Valid(), string(s))
	}

	// Client uses the spaced literal, unlike leads and contacts.
	assert.True(t, ClientStatus("Not Interested").Valid())
	assert.False(t, ClientStatus("NotInterested").Valid())
	assert.False(t, ClientStatus("").Valid())
}

func TestContactStatusValid(t *testing.T) {
	for _, s := range ContactStatusValues() {
		assert.True(t, s.Valid(), string(s))
	}

	assert.True(t, ContactStatus("NotInterested").Valid())
	assert.False(t, ContactStatus("Not Interested").Valid())
}

func TestLinkclickStatusValid(t *testing.T) {
	assert.True(t, LinkclickComplete.Valid())
	assert.True(t, LinkclickInComplete.Valid())
	assert.False(t, LinkclickStatus("incomplete").Valid())
	assert.False(t, LinkclickStatus("").Valid())
}

func TestUserRoleValid(t *testing.T) {
	for _, r := range UserRoleValues() {
		assert.True(t, r.Valid(), string(r))
	}
	assert.False(t, UserRole("superadmin").Valid())
	assert.False(t, UserRole("Admin").Valid())
}

func TestClientClaimed(t *testing.T) {
	client := Client{
		OwnerNames:   []string{"Asha", "Kiran"},
		OwnerNumbers: []string{"9000000001", "9000000002"},
	}

	assert.True(t, client.Claimed("9000000001"))
	assert.True(t, client.Claimed("9000000002"))
	assert.False(t, client.Claimed("9000000003"))

	var empty Client
	assert.False(t, empty.Claimed("9000000001"))
}
