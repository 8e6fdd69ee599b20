package normalisers

import (
	"encoding/csv"
	"strings"
)

// CSVNormaliser handles sheet documents. Cells are trimmed, short rows are
// padded to the widest row and trailing empty rows are dropped.
// Content that does not parse as CSV only gets line ending cleanup.
type CSVNormaliser struct{}

func (n *CSVNormaliser) Normalise(content string, mimeType string) string {
	content = cleanText(content)

	r := csv.NewReader(strings.NewReader(content))
	r.FieldsPerRecord = -1
	r.LazyQuotes = true

	rows, err := r.ReadAll()
	if err != nil {
		return strings.TrimSpace(content)
	}

	for _, row := range rows {
		for i := range row {
			row[i] = strings.TrimSpace(row[i])
		}
	}
	for len(rows) > 0 && isBlankRow(rows[len(rows)-1]) {
		rows = rows[:len(rows)-1]
	}

	width := 0
	for _, row := range rows {
		width = max(width, len(row))
	}

	var b strings.Builder
	w := csv.NewWriter(&b)
	for _, row := range rows {
		for len(row) < width {
			row = append(row, "")
		}
		if err := w.Write(row); err != nil {
			return strings.TrimSpace(content)
		}
	}
	w.Flush()
	if w.Error() != nil {
		return strings.TrimSpace(content)
	}
	return strings.TrimSuffix(b.String(), "\n")
}

func (n *CSVNormaliser) SupportedTypes() []string {
	return []string{"text/csv"}
}

func (n *CSVNormaliser) Priority() int {
	return 60
}

func isBlankRow(row []string) bool {
	for _, cell := range row {
		if cell != "" {
			return false
		}
	}
	return true
}
