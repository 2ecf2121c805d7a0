// Package csvio implements the single-line CSV dialect used by form exports
// and contact imports: comma-delimited, double-quote field quoting, doubled
// quotes as escapes, no multi-line fields.
package csvio

import "strings"

// ParseLine splits one raw CSV line into its fields.
//
// The scan tracks a single in-quotes state with one character of lookahead:
// a doubled quote emits one literal quote, a lone quote toggles the quoted
// region, and commas split fields only outside quotes. The final buffer is
// always pushed, so a line with no commas yields exactly one field and the
// field count always equals the number of unescaped commas plus one.
// Unbalanced quotes are not an error; the scan simply ends in whatever state
// it reached.
func ParseLine(line string) []string {
	var fields []string
	var buf strings.Builder
	inQuotes := false

	for i := 0; i < len(line); i++ {
		c := line[i]
		switch {
		case c == '"':
			// Lookahead is unconditional, matching the importers this
			// dialect targets: "" collapses to one quote even outside
			// a quoted region.
			if i+1 < len(line) && line[i+1] == '"' {
				buf.WriteByte('"')
				i++
				continue
			}
			inQuotes = !inQuotes
		case c == ',' && !inQuotes:
			fields = append(fields, buf.String())
			buf.Reset()
		default:
			buf.WriteByte(c)
		}
	}

	return append(fields, buf.String())
}

// FormatField escapes a single field for CSV output. Fields containing a
// comma, quote, or newline are wrapped in quotes with embedded quotes
// doubled; anything else passes through unchanged.
func FormatField(field string) string {
	if !strings.ContainsAny(field, ",\"\n") {
		return field
	}
	var b strings.Builder
	b.Grow(len(field) + 2)
	b.WriteByte('"')
	for i := 0; i < len(field); i++ {
		if field[i] == '"' {
			b.WriteString(`""`)
			continue
		}
		b.WriteByte(field[i])
	}
	b.WriteByte('"')
	return b.String()
}

// FormatLine escapes each field and joins them with commas. No trailing
// separator or newline is added; the caller owns line termination.
func FormatLine(fields []string) string {
	escaped := make([]string, len(fields))
	for i, f := range fields {
		escaped[i] = FormatField(f)
	}
	return strings.Join(escaped, ",")
}
