package review

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"
)

// LoadFilterTable reads a mask-table CSV: alternating tag and content
// columns, the rightmost tag-shaped cell being the trigger, and the last
// two columns the warn and intervene thresholds. The header row is
// skipped. Rows without a trigger produce invalid rules, which the table
// drops.
func LoadFilterTable(r io.Reader) (*FilterTable, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read filter table: %w", err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("filter table is empty")
	}

	table := &FilterTable{}
	for _, row := range rows[1:] {
		if len(row) < 4 {
			continue
		}
		warn := row[len(row)-2]
		intervene := row[len(row)-1]
		if strings.TrimSpace(warn) == "" && strings.TrimSpace(intervene) == "" {
			continue
		}

		trigger := -1
		for i, cell := range row {
			if isTagCell(cell) {
				trigger = i
			}
		}
		if trigger < 0 {
			continue
		}

		mask := &ObservationMask{}
		for i := 0; i+1 < trigger; i += 2 {
			tag, value := row[i], row[i+1]
			if strings.TrimSpace(tag) == "" || strings.TrimSpace(value) == "" {
				continue
			}
			mask.AddField(NewField(tag, value))
		}
		mask.AddField(NewField(row[trigger], ""))

		table.AddRule(NewRule(mask, warn, intervene))
	}
	return table, nil
}

// ParseRuleRows reads a 5-column rule CSV (Hoofdcode, Karakterisering 1,
// Karakterisering 2, Ingrijp, Waarschuwing), skips the header row, and
// expands comma-list cells into flat rules. Rule files are operator
// curated; a wrong column count fails the whole file.
func ParseRuleRows(r io.Reader) ([]FlatRule, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read rule file: %w", err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("rule file is empty")
	}

	var flat []FlatRule
	for i, row := range rows[1:] {
		if len(row) != 5 {
			return nil, fmt.Errorf("rule row %d has %d columns, expected 5", i+2, len(row))
		}
		flat = append(flat, FlattenRule([5]string{row[0], row[1], row[2], row[3], row[4]})...)
	}
	return flat, nil
}
