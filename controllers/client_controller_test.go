package controller

import (
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"crmdesk/models"
	"crmdesk/utils"
)

func newClientApp(t *testing.T) (*fiber.App, *ClientController) {
	t.Helper()

	db := newTestDB(t)
	cc := NewClientController(db, testLogger(), NewLinkclickFeed(testLogger()))

	app := fiber.New()
	app.Post("/clients/addClient", cc.CreateClient)
	app.Put("/clients/updateClient/:id", cc.UpdateClient)
	return app, cc
}

func TestUpdateClientNotInterestedRequiresReason(t *testing.T) {
	app, cc := newClientApp(t)

	client := models.Client{Name: "Asha", Phone: "9000000001", Status: models.ClientStatusNew}
	require.NoError(t, cc.DB.Create(&client).Error)

	resp := doJSON(t, app, "PUT", "/clients/updateClient/1", fiber.Map{
		"status": "Not Interested",
	})
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	env := decodeEnvelope(t, resp)
	assert.Equal(t, utils.CodeValidation, env.ErrorCode)

	// A whitespace-only reason is still empty.
	resp = doJSON(t, app, "PUT", "/clients/updateClient/1", fiber.Map{
		"status": "Not Interested",
		"reason": "   ",
	})
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	var unchanged models.Client
	require.NoError(t, cc.DB.First(&unchanged, client.ID).Error)
	assert.Equal(t, models.ClientStatusNew, unchanged.Status)
	assert.Empty(t, unchanged.Reason)
}

func TestUpdateClientReasonClearedOnStatusChange(t *testing.T) {
	app, cc := newClientApp(t)

	client := models.Client{Name: "Asha", Phone: "9000000001", Status: models.ClientStatusNew}
	require.NoError(t, cc.DB.Create(&client).Error)

	resp := doJSON(t, app, "PUT", "/clients/updateClient/1", fiber.Map{
		"status": "Not Interested",
		"reason": "moved to another broker",
	})
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	decodeEnvelope(t, resp)

	var stored models.Client
	require.NoError(t, cc.DB.First(&stored, client.ID).Error)
	assert.Equal(t, models.ClientStatusNotInterested, stored.Status)
	assert.Equal(t, "moved to another broker", stored.Reason)

	resp = doJSON(t, app, "PUT", "/clients/updateClient/1", fiber.Map{
		"status": "Contacted",
	})
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	decodeEnvelope(t, resp)

	require.NoError(t, cc.DB.First(&stored, client.ID).Error)
	assert.Equal(t, models.ClientStatusContacted, stored.Status)
	assert.Empty(t, stored.Reason)
}

func TestCreateClientRejectsUnknownLeaderCode(t *testing.T) {
	app, _ := newClientApp(t)

	resp := doJSON(t, app, "POST", "/clients/addClient", fiber.Map{
		"name":        "Asha",
		"phoneNumber": "9000000001",
		"leaderCode":  "LC999",
	})
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	env := decodeEnvelope(t, resp)
	assert.Equal(t, utils.CodeInvalidLeader, env.ErrorCode)
}

// The funnel flow: a valid leader code creates the client, flips only the
// newest pending click for that leader+portal, and returns the portal URL.
func TestCreateClientReferralFlow(t *testing.T) {
	app, cc := newClientApp(t)

	leader := models.User{
		Name:       "Kiran",
		Email:      "kiran@example.com",
		Status:     models.UserStatusActive,
		Role:       models.RoleSales,
		LeaderCode: "LC101",
	}
	require.NoError(t, cc.DB.Create(&leader).Error)

	link := models.PortalLink{PortalName: "alphatrade", URL: "https://alphatrade.example.com/open-account"}
	require.NoError(t, cc.DB.Create(&link).Error)

	older := models.Linkclick{LeaderCode: "LC101", PortalName: "alphatrade", Status: models.LinkclickInComplete}
	require.NoError(t, cc.DB.Create(&older).Error)
	newer := models.Linkclick{LeaderCode: "LC101", PortalName: "alphatrade", Status: models.LinkclickInComplete}
	require.NoError(t, cc.DB.Create(&newer).Error)
	otherPortal := models.Linkclick{LeaderCode: "LC101", PortalName: "betatrade", Status: models.LinkclickInComplete}
	require.NoError(t, cc.DB.Create(&otherPortal).Error)

	resp := doJSON(t, app, "POST", "/clients/addClient", fiber.Map{
		"name":        "Asha",
		"phoneNumber": "9000000001",
		"leaderCode":  "LC101",
		"portalName":  "alphatrade",
	})
	assert.Equal(t, fiber.StatusCreated, resp.StatusCode)

	env := decodeEnvelope(t, resp)
	assert.Equal(t, utils.CodeOK, env.ErrorCode)
	data := envelopeData(t, env)
	assert.Equal(t, "https://alphatrade.example.com/open-account", data["portalUrl"])

	var created models.Client
	require.NoError(t, cc.DB.Where("phone = ?", "9000000001").First(&created).Error)
	assert.Equal(t, models.ClientStatusNew, created.Status)
	assert.Equal(t, "LC101", created.LeaderCode)

	// Only the newest matching click completes.
	var clicks []models.Linkclick
	require.NoError(t, cc.DB.Order("id").Find(&clicks).Error)
	require.Len(t, clicks, 3)
	assert.Equal(t, models.LinkclickInComplete, clicks[0].Status)
	assert.Equal(t, models.LinkclickComplete, clicks[1].Status)
	assert.Equal(t, models.LinkclickInComplete, clicks[2].Status)
}

func TestCreateClientWithoutReferral(t *testing.T) {
	app, cc := newClientApp(t)

	resp := doJSON(t, app, "POST", "/clients/addClient", fiber.Map{
		"name":        "Asha",
		"phoneNumber": "9000000002",
	})
	assert.Equal(t, fiber.StatusCreated, resp.StatusCode)

	env := decodeEnvelope(t, resp)
	data := envelopeData(t, env)
	assert.Equal(t, "", data["portalUrl"])

	var total int64
	require.NoError(t, cc.DB.Model(&models.Client{}).Count(&total).Error)
	assert.EqualValues(t, 1, total)
}
