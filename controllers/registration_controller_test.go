package controller

import (
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"crmdesk/models"
	"crmdesk/utils"
)

func TestUpdateRegistrationNotInterestedRequiresReason(t *testing.T) {
	db := newTestDB(t)
	rc := NewRegistrationController(db, testLogger())

	app := fiber.New()
	app.Put("/registers/updateRegister/:id", rc.UpdateRegistration)

	registration := models.Registration{Name: "Meena", Phone: "9000000004", Status: models.LeadStatusNew}
	require.NoError(t, db.Create(&registration).Error)

	resp := doJSON(t, app, "PUT", "/registers/updateRegister/1", fiber.Map{
		"status": "NotInterested",
	})
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	env := decodeEnvelope(t, resp)
	assert.Equal(t, utils.CodeValidation, env.ErrorCode)

	var unchanged models.Registration
	require.NoError(t, db.First(&unchanged, registration.ID).Error)
	assert.Equal(t, models.LeadStatusNew, unchanged.Status)
}

func TestUpdateRegistrationReasonLifecycle(t *testing.T) {
	db := newTestDB(t)
	rc := NewRegistrationController(db, testLogger())

	app := fiber.New()
	app.Put("/registers/updateRegister/:id", rc.UpdateRegistration)

	registration := models.Registration{Name: "Meena", Phone: "9000000004", Status: models.LeadStatusNew}
	require.NoError(t, db.Create(&registration).Error)

	resp := doJSON(t, app, "PUT", "/registers/updateRegister/1", fiber.Map{
		"status": "NotInterested",
		"reason": "signed up by mistake",
	})
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	decodeEnvelope(t, resp)

	var stored models.Registration
	require.NoError(t, db.First(&stored, registration.ID).Error)
	assert.Equal(t, models.LeadStatusNotInterested, stored.Status)
	assert.Equal(t, "signed up by mistake", stored.Reason)

	resp = doJSON(t, app, "PUT", "/registers/updateRegister/1", fiber.Map{
		"status": "CallCut",
	})
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	decodeEnvelope(t, resp)

	require.NoError(t, db.First(&stored, registration.ID).Error)
	assert.Equal(t, models.LeadStatusCallCut, stored.Status)
	assert.Empty(t, stored.Reason)
}
