package script

import "unicode/utf8"

// SectionDefinition is one narrative unit of a template: what the section is
// for, which emotional register ("brain") it targets, and its time and
// character budgets. Definitions are immutable catalog data.
type SectionDefinition struct {
	ID             string    `json:"id"`
	Name           string    `json:"name"`
	Description    string    `json:"description"`
	Brain          string    `json:"brain"`
	DurationLabel  string    `json:"duration_label"` // e.g. "1〜3分", "20〜40秒"
	DurationSecMin int       `json:"duration_sec_min"`
	DurationSecMax int       `json:"duration_sec_max"`
	CharsMin       int       `json:"chars_min"`
	CharsMax       int       `json:"chars_max"`
	Point          string    `json:"point,omitempty"`
	SceneType      SceneType `json:"scene_type"`
}

// Section is a SectionDefinition carrying the editable script content and an
// optional shooting location. Sections are the unit the pipeline moves around.
type Section struct {
	SectionDefinition

	Content  string `json:"content"`
	Location string `json:"location,omitempty"`
}

// CharCount returns the number of characters (runes) in the section content.
func (s *Section) CharCount() int {
	return utf8.RuneCountInString(s.Content)
}

// TotalChars sums the content length of all sections.
func TotalChars(sections []Section) int {
	total := 0
	for i := range sections {
		total += sections[i].CharCount()
	}
	return total
}

// Names returns the section names in order.
func Names(sections []Section) []string {
	names := make([]string, len(sections))
	for i := range sections {
		names[i] = sections[i].Name
	}
	return names
}
