package controller

import (
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"crmdesk/models"
	"crmdesk/utils"
)

func TestUpdateContactNotInterestedRequiresReason(t *testing.T) {
	db := newTestDB(t)
	cc := NewContactController(db, testLogger())

	app := fiber.New()
	app.Put("/contact/updateContact/:id", cc.UpdateContact)

	contact := models.Contact{Name: "Ravi", Phone: "9000000003", Status: models.ContactStatusNew}
	require.NoError(t, db.Create(&contact).Error)

	resp := doJSON(t, app, "PUT", "/contact/updateContact/1", fiber.Map{
		"status": "NotInterested",
	})
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	env := decodeEnvelope(t, resp)
	assert.Equal(t, utils.CodeValidation, env.ErrorCode)

	var unchanged models.Contact
	require.NoError(t, db.First(&unchanged, contact.ID).Error)
	assert.Equal(t, models.ContactStatusNew, unchanged.Status)
}

func TestUpdateContactReasonLifecycle(t *testing.T) {
	db := newTestDB(t)
	cc := NewContactController(db, testLogger())

	app := fiber.New()
	app.Put("/contact/updateContact/:id", cc.UpdateContact)

	contact := models.Contact{Name: "Ravi", Phone: "9000000003", Status: models.ContactStatusNew}
	require.NoError(t, db.Create(&contact).Error)

	resp := doJSON(t, app, "PUT", "/contact/updateContact/1", fiber.Map{
		"status": "NotInterested",
		"reason": "only wanted pricing info",
	})
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	decodeEnvelope(t, resp)

	var stored models.Contact
	require.NoError(t, db.First(&stored, contact.ID).Error)
	assert.Equal(t, models.ContactStatusNotInterested, stored.Status)
	assert.Equal(t, "only wanted pricing info", stored.Reason)

	resp = doJSON(t, app, "PUT", "/contact/updateContact/1", fiber.Map{
		"status": "Contacted",
	})
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	decodeEnvelope(t, resp)

	require.NoError(t, db.First(&stored, contact.ID).Error)
	assert.Equal(t, models.ContactStatusContacted, stored.Status)
	assert.Empty(t, stored.Reason)
}
