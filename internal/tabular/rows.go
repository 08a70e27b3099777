package tabular

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/jackzampolin/daihon/internal/layout"
	"github.com/jackzampolin/daihon/internal/script"
)

// Header is the fixed CSV header of the eight-column table.
const Header = "時間,シーン,内容,シーン種別,秒数,所要時間,文字数,原稿"

// headerNames lists the eight column names in positional order; a column
// absent from an input header falls back to its position here.
var headerNames = [8]string{"時間", "シーン", "内容", "シーン種別", "秒数", "所要時間", "文字数", "原稿"}

// ValuesToRows interprets a parsed cell table as spreadsheet rows. The first
// row is treated as a header: column positions are resolved by matching
// header text against the eight fixed field names, tolerating reordered or
// partially-present headers via positional defaults. Numeric cells that fail
// to parse default to 0 rather than failing the whole table.
func ValuesToRows(values [][]string) []layout.Row {
	if len(values) == 0 {
		return nil
	}

	header := values[0]
	var idx [8]int
	for i, name := range headerNames {
		idx[i] = i // positional default
		for j, cell := range header {
			if strings.TrimSpace(cell) == name {
				idx[i] = j
				break
			}
		}
	}

	cell := func(row []string, j int) string {
		if j >= 0 && j < len(row) {
			return strings.TrimSpace(row[j])
		}
		return ""
	}

	rows := make([]layout.Row, 0, len(values)-1)
	for _, raw := range values[1:] {
		rows = append(rows, layout.Row{
			Time:      cell(raw, idx[0]),
			Scene:     cell(raw, idx[1]),
			Content:   cell(raw, idx[2]),
			SceneType: cell(raw, idx[3]),
			Seconds:   parseIntCell(cell(raw, idx[4])),
			Duration:  cell(raw, idx[5]),
			CharCount: parseIntCell(cell(raw, idx[6])),
			Script:    cell(raw, idx[7]),
		})
	}
	return rows
}

// parseIntCell parses a numeric cell, tolerating decimal values and
// defaulting to 0 on anything unparseable.
func parseIntCell(s string) int {
	if s == "" {
		return 0
	}
	if n, err := strconv.Atoi(s); err == nil {
		return n
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return int(f)
	}
	return 0
}

// RowsToCSV encodes rows as a BOM-prefixed CSV document: the fixed header
// line followed by one line per row, fields escaped per escapeField. The
// BOM lets Google Sheets and Excel recognize UTF-8 on import.
func RowsToCSV(rows []layout.Row) string {
	var b strings.Builder
	b.WriteString(bom)
	b.WriteString(Header)
	for _, r := range rows {
		b.WriteString("\n")
		b.WriteString(strings.Join([]string{
			escapeField(r.Time),
			escapeField(r.Scene),
			escapeField(r.Content),
			escapeField(r.SceneType),
			strconv.Itoa(r.Seconds),
			escapeField(r.Duration),
			strconv.Itoa(r.CharCount),
			escapeField(r.Script),
		}, ","))
	}
	return b.String()
}

// RowsToValues converts rows to the string cell table the Sheets API
// expects, numeric fields stringified.
func RowsToValues(rows []layout.Row) [][]string {
	values := make([][]string, len(rows))
	for i, r := range rows {
		values[i] = []string{
			r.Time,
			r.Scene,
			r.Content,
			r.SceneType,
			strconv.Itoa(r.Seconds),
			r.Duration,
			strconv.Itoa(r.CharCount),
			r.Script,
		}
	}
	return values
}

// defaultBrain fills the emphasis tag rows cannot carry.
const defaultBrain = "共感・前頭前野"

// RowsToSections converts table rows back into pipeline sections. This
// direction is lossy: rows carry no character budgets or template identity,
// so sections get synthesized ids (sheet-1, sheet-2, ...), a default brain
// tag, and the default (0, 2000) character budget. Scene types are inferred
// from the row's scene-type label text.
func RowsToSections(rows []layout.Row) []script.Section {
	sections := make([]script.Section, 0, len(rows))
	for i, r := range rows {
		name := r.Content
		if name == "" {
			name = r.Scene
		}
		if name == "" {
			name = fmt.Sprintf("セクション%d", i+1)
		}
		durationLabel := r.Duration
		if durationLabel == "" {
			durationLabel = "約1分"
		}
		durationSecMin := r.Seconds
		if durationSecMin == 0 {
			durationSecMin = 60
		}
		sections = append(sections, script.Section{
			SectionDefinition: script.SectionDefinition{
				ID:             fmt.Sprintf("sheet-%d", i+1),
				Name:           name,
				Description:    r.Content,
				Brain:          defaultBrain,
				DurationLabel:  durationLabel,
				DurationSecMin: durationSecMin,
				CharsMin:       0,
				CharsMax:       2000,
				SceneType:      script.ClassifySceneLabel(r.SceneType),
			},
			Content:  r.Script,
			Location: r.Scene,
		})
	}
	return sections
}

// SectionsFromPaste parses free-form pasted table text straight into
// sections: ParseDelimited → ValuesToRows → RowsToSections.
func SectionsFromPaste(text string) []script.Section {
	return RowsToSections(ValuesToRows(ParseDelimited(text)))
}
