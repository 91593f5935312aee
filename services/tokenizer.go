package services

import "strings"

// SplitLine splits one line of delimited text into trimmed field values.
//
// A double quote toggles quoted mode: commas inside quotes are literal, and
// two consecutive quotes inside a quoted field produce one literal quote.
// Malformed quoting never fails; an unmatched quote simply leaves the rest of
// the line in the current field. An empty or whitespace-only line yields no
// fields.
func SplitLine(line string) []string {
	if strings.TrimSpace(line) == "" {
		return nil
	}

	var fields []string
	var cur strings.Builder
	inQuotes := false

	for i := 0; i < len(line); i++ {
		ch := line[i]
		switch {
		case ch == '"':
			if inQuotes && i+1 < len(line) && line[i+1] == '"' {
				// Escaped quote inside a quoted field.
				cur.WriteByte('"')
				i++
			} else {
				inQuotes = !inQuotes
			}
		case ch == ',' && !inQuotes:
			fields = append(fields, strings.TrimSpace(cur.String()))
			cur.Reset()
		default:
			cur.WriteByte(ch)
		}
	}
	fields = append(fields, strings.TrimSpace(cur.String()))

	return fields
}

// SplitLines breaks file text into non-empty lines. Only generic newline
// handling: a carriage return embedded mid-field is not treated specially.
func SplitLines(text string) []string {
	raw := strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n")
	lines := make([]string, 0, len(raw))
	for _, l := range raw {
		if strings.TrimSpace(l) != "" {
			lines = append(lines, l)
		}
	}
	return lines
}
