// Package split implements the deterministic fallback splitter: it divides a
// raw transcript across sections by character count alone, with no external
// drafting assistance and no inspection of meaning.
package split

import (
	"math"
	"strings"

	"github.com/jackzampolin/daihon/internal/script"
)

// fiveParts is the fixed skeleton the five-way split produces.
var fiveParts = []struct {
	id   string
	name string
}{
	{"intro", "冒頭の挨拶"},
	{"current", "現在の活動"},
	{"trigger", "活動のきっかけ"},
	{"origin", "活動の原点（幼少期）"},
	{"future", "今後の目標"},
}

// FiveWay divides a trimmed transcript into five contiguous slices by
// character count: the first four slices are ceil(len/5) characters, the
// final slice takes the remainder. Slices cover the whole string with no
// gaps or overlaps; each chunk is whitespace-trimmed afterwards. Blank input
// yields the five skeleton sections with empty content.
func FiveWay(transcript string) []script.Section {
	t := strings.TrimSpace(transcript)
	sections := make([]script.Section, len(fiveParts))
	for i, part := range fiveParts {
		sections[i] = script.Section{
			SectionDefinition: script.SectionDefinition{
				ID:        part.id,
				Name:      part.name,
				SceneType: script.SceneExplanation,
			},
		}
	}
	if t == "" {
		return sections
	}

	runes := []rune(t)
	length := len(runes)
	chunkSize := (length + 4) / 5 // ceil(length/5)
	for i := range sections {
		start := i * chunkSize
		end := start + chunkSize
		if i == len(sections)-1 {
			end = length
		}
		if start > length {
			start = length
		}
		if end > length {
			end = length
		}
		sections[i].Content = strings.TrimSpace(string(runes[start:end]))
	}
	return sections
}

// ApplyTemplate zips the five-way split onto a template positionally: the
// i-th input section's content is copied verbatim into the i-th template
// section. Template sections beyond the input keep empty content; input
// beyond the template is dropped. This is a coarse fallback when no drafting
// service is available.
func ApplyTemplate(five []script.Section, templateID script.TemplateID) ([]script.Section, error) {
	sections, err := script.Instantiate(templateID)
	if err != nil {
		return nil, err
	}
	for i := range sections {
		if i < len(five) {
			sections[i].Content = five[i].Content
		}
	}
	return sections, nil
}

// FitTemplate maps the five-way split onto a template. When the template has
// exactly five sections the content copies positionally; otherwise the
// combined text is redistributed across all template sections in proportion
// to their character budgets, so no section is left empty just because the
// template is finer than the skeleton.
func FitTemplate(five []script.Section, templateID script.TemplateID) ([]script.Section, error) {
	blank, err := script.Instantiate(templateID)
	if err != nil {
		return nil, err
	}
	if len(blank) == len(five) {
		return ApplyTemplate(five, templateID)
	}

	var b strings.Builder
	for _, s := range five {
		if s.Content == "" {
			continue
		}
		if b.Len() > 0 {
			b.WriteString("\n")
		}
		b.WriteString(s.Content)
	}
	return Proportional(b.String(), blank), nil
}

// Proportional allocates text left to right across the section list in
// proportion to each section's average character budget (CharsMin+CharsMax)/2.
// Each boundary is round(len * weight/totalWeight) past the previous one,
// clamped to len; the final section takes the exact remainder so the total
// assigned length always equals len. Chunks are whitespace-trimmed.
func Proportional(text string, sections []script.Section) []script.Section {
	out := make([]script.Section, len(sections))
	copy(out, sections)
	if len(out) == 0 {
		return out
	}

	runes := []rune(strings.TrimSpace(text))
	length := len(runes)

	totalWeight := 0.0
	for i := range out {
		totalWeight += float64(out[i].CharsMin+out[i].CharsMax) / 2
	}
	if totalWeight == 0 {
		// No budgets to weight by; give everything to the first section.
		out[0].Content = strings.TrimSpace(string(runes))
		for i := 1; i < len(out); i++ {
			out[i].Content = ""
		}
		return out
	}

	start := 0
	for i := range out {
		end := length
		if i < len(out)-1 {
			weight := float64(out[i].CharsMin+out[i].CharsMax) / 2
			end = start + int(math.Round(float64(length)*weight/totalWeight))
			if end > length {
				end = length
			}
			if end < start {
				end = start
			}
		}
		out[i].Content = strings.TrimSpace(string(runes[start:end]))
		start = end
	}
	return out
}
