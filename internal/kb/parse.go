package kb

import "strings"

// splitRows tokenizes comma-separated text. Quoted fields may hold commas
// and newlines, a doubled quote inside quotes is a literal quote, a quote
// anywhere else toggles quoting, and a bare carriage return outside quotes
// is dropped.
func splitRows(raw string) [][]string {
	var (
		rows     [][]string
		row      []string
		field    strings.Builder
		inQuotes bool
	)

	runes := []rune(raw)
	for i := 0; i < len(runes); i++ {
		c := runes[i]
		switch {
		case c == '"':
			if inQuotes && i+1 < len(runes) && runes[i+1] == '"' {
				field.WriteRune('"')
				i++
				continue
			}
			inQuotes = !inQuotes
		case c == ',' && !inQuotes:
			row = append(row, strings.TrimSpace(field.String()))
			field.Reset()
		case c == '\n' && !inQuotes:
			row = append(row, strings.TrimSpace(field.String()))
			field.Reset()
			rows = append(rows, row)
			row = nil
		case c == '\r' && !inQuotes:
		default:
			field.WriteRune(c)
		}
	}

	if field.Len() > 0 || len(row) > 0 {
		row = append(row, strings.TrimSpace(field.String()))
		rows = append(rows, row)
	}
	return rows
}
