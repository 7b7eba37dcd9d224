package controller

import (
	"encoding/csv"
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"crmdesk/models"
)

// Exported leads must carry transactionId so an export can be re-imported
// without losing the transaction-lookup key.
func TestExportLeadsRoundTripsTransactionID(t *testing.T) {
	db := newTestDB(t)
	lc := NewLeadController(db, testLogger())

	app := fiber.New()
	app.Get("/lead/exportLead", lc.ExportLeads)

	lead := models.Lead{
		Name:          "Asha",
		Phone:         "9000000001",
		Status:        models.LeadStatusConverted,
		TransactionID: "TXN-4711",
	}
	require.NoError(t, db.Create(&lead).Error)

	resp, err := app.Test(httptest.NewRequest("GET", "/lead/exportLead", nil), -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	records, err := csv.NewReader(strings.NewReader(strings.TrimPrefix(string(body), "\uFEFF"))).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 2)

	header := records[0]
	idx := -1
	for i, col := range header {
		if col == "transactionId" {
			idx = i
		}
	}
	require.NotEqual(t, -1, idx, "transactionId column missing from export header")
	assert.Equal(t, "TXN-4711", records[1][idx])
}
