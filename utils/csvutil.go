package utils

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
)

// csvBOM keeps spreadsheet apps from mangling UTF-8 exports.
const csvBOM = "\uFEFF"

// CSVFilename builds the download name: {entity}-{statusFilter}-{ISO date}.csv.
// An empty status filter exports as "all".
func CSVFilename(entity, statusFilter string) string {
	if statusFilter == "" {
		statusFilter = "all"
	}
	return fmt.Sprintf("%s-%s-%s.csv", entity, statusFilter, time.Now().Format("2006-01-02"))
}

// BuildCSV encodes header+rows with RFC4180 quoting and a leading BOM.
func BuildCSV(header []string, rows [][]string) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteString(csvBOM)

	writer := csv.NewWriter(&buf)
	if err := writer.Write(header); err != nil {
		return nil, err
	}
	for _, row := range rows {
		if err := writer.Write(row); err != nil {
			return nil, err
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// WriteCSV sends a CSV attachment response.
func WriteCSV(c *fiber.Ctx, entity, statusFilter string, header []string, rows [][]string) error {
	payload, err := BuildCSV(header, rows)
	if err != nil {
		return err
	}
	c.Set("Content-Type", "text/csv; charset=utf-8")
	c.Set("Content-Disposition", `attachment; filename=`+CSVFilename(entity, statusFilter))
	return c.Send(payload)
}

// ParseColumnMapping decodes the import mapping form field: target field name
// to source CSV header.
func ParseColumnMapping(raw string) (map[string]string, error) {
	if raw == "" {
		return nil, fmt.Errorf("column mapping is required")
	}
	mapping := make(map[string]string)
	if err := json.Unmarshal([]byte(raw), &mapping); err != nil {
		return nil, fmt.Errorf("invalid column mapping: %w", err)
	}
	if len(mapping) == 0 {
		return nil, fmt.Errorf("column mapping is empty")
	}
	return mapping, nil
}

// MapRow resolves one CSV row into target-field values using the mapping.
// Unmapped targets and unknown source columns resolve to "".
func MapRow(header, row []string, mapping map[string]string) map[string]string {
	index := make(map[string]int, len(header))
	for i, col := range header {
		index[col] = i
	}

	out := make(map[string]string, len(mapping))
	for target, source := range mapping {
		i, ok := index[source]
		if !ok || i >= len(row) {
			continue
		}
		out[target] = row[i]
	}
	return out
}
