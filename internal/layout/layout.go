// Package layout converts ordered script sections into spreadsheet rows with
// cumulative timestamps. Output is deterministic: identical sections and
// start offset produce byte-identical rows.
package layout

import (
	"fmt"
	"math"

	"github.com/jackzampolin/daihon/internal/script"
)

// Default start offset of the first row. The production spreadsheet template
// begins its script block at the 5:30 mark.
const (
	DefaultStartMinute = 5
	DefaultStartSecond = 30
)

// fallbackDurationSec is used for sections with no content and no minimum
// duration of their own.
const fallbackDurationSec = 60

// Row is the eight-field tabular representation of one section, in table
// column order. Numeric fields are non-negative.
type Row struct {
	Time      string `json:"time"`       // cumulative "m:ss" from project start
	Scene     string `json:"scene"`      // shooting location or section name
	Content   string `json:"content"`    // section description
	SceneType string `json:"scene_type"` // e.g. "解説系（30秒〜1分）"
	Seconds   int    `json:"seconds"`    // duration of this row
	Duration  string `json:"duration"`   // human label, e.g. "1分16秒"
	CharCount int    `json:"char_count"`
	Script    string `json:"script"` // the narration text itself
}

// Engine lays out sections as rows starting from a fixed clock offset.
type Engine struct {
	StartMinute int
	StartSecond int
}

// NewEngine returns an Engine with the standard 5:30 start offset.
func NewEngine() *Engine {
	return &Engine{StartMinute: DefaultStartMinute, StartSecond: DefaultStartSecond}
}

// Rows produces one Row per section in input order. Each row's duration is
// derived from its character count at the standard narration rate; empty
// sections fall back to the section's minimum duration (60s when unset). The
// clock starts at the engine offset and advances by each row's duration, so
// times are monotonically non-decreasing.
func (e *Engine) Rows(sections []script.Section) []Row {
	cumulative := e.StartMinute*60 + e.StartSecond
	rows := make([]Row, 0, len(sections))

	for i := range sections {
		sec := &sections[i]
		chars := sec.CharCount()

		durationSec := DurationSeconds(chars)
		if chars == 0 {
			durationSec = sec.DurationSecMin
			if durationSec == 0 {
				durationSec = fallbackDurationSec
			}
		}

		scene := sec.Location
		if scene == "" {
			scene = sec.Name
		}
		content := sec.Description
		if content == "" {
			content = sec.Name
		}

		rows = append(rows, Row{
			Time:      Clock(cumulative),
			Scene:     scene,
			Content:   content,
			SceneType: sec.SceneType.TableLabel(),
			Seconds:   durationSec,
			Duration:  DurationLabel(chars),
			CharCount: chars,
			Script:    sec.Content,
		})

		cumulative += durationSec
	}
	return rows
}

// DurationSeconds converts a character count to narration seconds at the
// standard rate (350 characters per minute).
func DurationSeconds(chars int) int {
	return int(math.Round(float64(chars) / script.CharsPerMinute * 60))
}

// DurationLabel renders a character count as a human duration label:
// 0 → "0秒", 350 → "1分", 375 → "1分4秒". Units with a zero value are
// omitted.
func DurationLabel(chars int) string {
	if chars <= 0 {
		return "0秒"
	}
	totalSec := DurationSeconds(chars)
	min := totalSec / 60
	sec := totalSec % 60
	switch {
	case min > 0 && sec > 0:
		return fmt.Sprintf("%d分%d秒", min, sec)
	case min > 0:
		return fmt.Sprintf("%d分", min)
	default:
		return fmt.Sprintf("%d秒", sec)
	}
}

// Clock formats a second count as "m:ss" (e.g. 330 → "5:30", 76 → "1:16").
func Clock(totalSeconds int) string {
	return fmt.Sprintf("%d:%02d", totalSeconds/60, totalSeconds%60)
}
