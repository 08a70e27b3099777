// Package tabular is the bidirectional codec between the eight-column
// spreadsheet table and its textual forms: pasted comma- or tab-separated
// text on the way in, BOM-prefixed CSV on the way out, plus the lossy
// mapping between rows and script sections.
package tabular

import "strings"

// bom is the UTF-8 byte-order marker prepended to CSV exports so spreadsheet
// imports recognize the encoding.
const bom = "\ufeff"

// ParseDelimited parses pasted tabular text into a table of string cells.
// The separator is tab when the text contains any horizontal tab, comma
// otherwise (spreadsheet copies usually paste tab-separated). Fields starting
// with a double quote are read to the matching unescaped closing quote, with
// doubled quotes decoding to one literal quote; quoted fields may span line
// breaks. Unquoted fields are delimiter-terminated and whitespace-trimmed.
// Empty lines are discarded. Rows may have differing lengths if the input is
// irregular; callers must not assume uniform width.
func ParseDelimited(text string) [][]string {
	raw := strings.TrimSpace(strings.ReplaceAll(text, bom, ""))
	if raw == "" {
		return nil
	}

	sep := byte(',')
	if strings.IndexByte(raw, '\t') >= 0 {
		sep = '\t'
	}

	var rows [][]string
	var row []string
	i, n := 0, len(raw)

	for i < n {
		// One field.
		if raw[i] == '"' {
			i++
			var buf strings.Builder
			for i < n {
				if raw[i] == '"' {
					if i+1 < n && raw[i+1] == '"' {
						buf.WriteByte('"')
						i += 2
						continue
					}
					i++
					break
				}
				buf.WriteByte(raw[i])
				i++
			}
			row = append(row, buf.String())
		} else {
			start := i
			for i < n && raw[i] != sep && raw[i] != '\n' && raw[i] != '\r' {
				i++
			}
			row = append(row, strings.TrimSpace(raw[start:i]))
		}

		// Field delimiter: continue the current row.
		if i < n && raw[i] == sep {
			i++
			continue
		}

		// Row end (line break or end of input).
		if i < n {
			if raw[i] == '\r' && i+1 < n && raw[i+1] == '\n' {
				i += 2
			} else {
				i++
			}
		}
		if !emptyLine(row) {
			rows = append(rows, row)
		}
		row = nil
	}
	if row != nil && !emptyLine(row) {
		rows = append(rows, row)
	}
	return rows
}

// emptyLine reports whether the row came from a blank line: a single empty
// cell. Rows with several empty cells (",,") are real data and kept.
func emptyLine(row []string) bool {
	return len(row) == 1 && row[0] == ""
}

// escapeField wraps a CSV field in quotes if and only if it contains a
// quote, comma, or line break, doubling any internal quotes.
func escapeField(s string) string {
	if strings.ContainsAny(s, "\",\n\r") {
		return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
	}
	return s
}
