package utils

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildCSVStartsWithBOM(t *testing.T) {
	payload, err := BuildCSV([]string{"name", "phone"}, [][]string{{"Asha", "9000000001"}})
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(string(payload), "\uFEFF"))
}

func TestBuildCSVQuotesEmbeddedCommasAndQuotes(t *testing.T) {
	payload, err := BuildCSV(
		[]string{"name", "reason"},
		[][]string{{`Rao, Kiran`, `said "not now"`}},
	)
	require.NoError(t, err)

	body := strings.TrimPrefix(string(payload), "\uFEFF")
	lines := strings.Split(strings.TrimSpace(body), "\n")
	require.Len(t, lines, 2)

	assert.Equal(t, "name,reason", strings.TrimSpace(lines[0]))
	assert.Equal(t, `"Rao, Kiran","said ""not now"""`, strings.TrimSpace(lines[1]))
}

func TestCSVFilename(t *testing.T) {
	today := time.Now().Format("2006-01-02")

	assert.Equal(t, fmt.Sprintf("clients-Converted-%s.csv", today), CSVFilename("clients", "Converted"))
	assert.Equal(t, fmt.Sprintf("leads-all-%s.csv", today), CSVFilename("leads", ""))
}

func TestParseColumnMapping(t *testing.T) {
	mapping, err := ParseColumnMapping(`{"name":"Full Name","phone":"Mobile"}`)
	require.NoError(t, err)
	assert.Equal(t, "Full Name", mapping["name"])
	assert.Equal(t, "Mobile", mapping["phone"])

	_, err = ParseColumnMapping("")
	assert.Error(t, err)

	_, err = ParseColumnMapping("{}")
	assert.Error(t, err)

	_, err = ParseColumnMapping("not json")
	assert.Error(t, err)
}

func TestMapRow(t *testing.T) {
	header := []string{"Full Name", "Mobile", "City"}
	row := []string{"Asha", "9000000001", "Pune"}
	mapping := map[string]string{
		"name":  "Full Name",
		"phone": "Mobile",
		"email": "Email", // not present in the source file
	}

	out := MapRow(header, row, mapping)

	assert.Equal(t, "Asha", out["name"])
	assert.Equal(t, "9000000001", out["phone"])
	_, ok := out["email"]
	assert.False(t, ok)
}

func TestMapRowShortRow(t *testing.T) {
	header := []string{"Full Name", "Mobile"}
	row := []string{"Asha"}
	mapping := map[string]string{"name": "Full Name", "phone": "Mobile"}

	out := MapRow(header, row, mapping)

	assert.Equal(t, "Asha", out["name"])
	_, ok := out["phone"]
	assert.False(t, ok)
}
