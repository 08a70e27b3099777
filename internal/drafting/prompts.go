package drafting

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"
	"text/template"

	"github.com/jackzampolin/daihon/internal/script"
)

//go:embed prompts/split.tmpl
var splitTmplText string

//go:embed prompts/subdivide.tmpl
var subdivideTmplText string

//go:embed prompts/improve.tmpl
var improveTmplText string

var (
	splitTmpl     = template.Must(template.New("split").Parse(splitTmplText))
	subdivideTmpl = template.Must(template.New("subdivide").Parse(subdivideTmplText))
	improveTmpl   = template.Must(template.New("improve").Parse(improveTmplText))
)

// referenceMaxChars caps how much of a reference script is carried into a
// prompt.
const referenceMaxChars = 8000

// BuildPrompt renders the prompt for a request. All providers share this so
// that switching providers never changes drafting behavior.
func BuildPrompt(req *Request) (string, error) {
	switch req.Op {
	case OpSplit:
		if req.Transcript == "" {
			return "", fmt.Errorf("%w: split needs a transcript", ErrEmptyRequest)
		}
		return render(splitTmpl, map[string]string{
			"Transcript":    req.Transcript,
			"HistoryDigest": req.HistoryDigest,
		})

	case OpSubdivide:
		if len(req.Sections) == 0 {
			return "", fmt.Errorf("%w: subdivide needs sections", ErrEmptyRequest)
		}
		tmpl, err := script.LookupTemplate(req.TemplateID)
		if err != nil {
			return "", err
		}
		templateJSON, err := marshalDefinitions(tmpl.Sections)
		if err != nil {
			return "", err
		}
		sectionsJSON, err := marshalSections(req.Sections)
		if err != nil {
			return "", err
		}
		return render(subdivideTmpl, map[string]string{
			"TemplateLabel":       tmpl.Label,
			"TemplateDescription": tmpl.Description,
			"TemplateJSON":        templateJSON,
			"SectionsJSON":        sectionsJSON,
			"HistoryDigest":       req.HistoryDigest,
		})

	case OpImprove:
		if len(req.Sections) == 0 {
			return "", fmt.Errorf("%w: improve needs sections", ErrEmptyRequest)
		}
		sectionsJSON, err := marshalSections(req.Sections)
		if err != nil {
			return "", err
		}
		return render(improveTmpl, map[string]string{
			"ReferenceScript": truncateRunes(req.ReferenceScript, referenceMaxChars),
			"SectionsJSON":    sectionsJSON,
			"HistoryDigest":   req.HistoryDigest,
		})

	default:
		return "", fmt.Errorf("unknown drafting op %q", req.Op)
	}
}

func render(tmpl *template.Template, data map[string]string) (string, error) {
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to render prompt: %w", err)
	}
	return buf.String(), nil
}

// marshalDefinitions renders the template catalog the model must follow:
// ids, intents, brains, and character budgets.
func marshalDefinitions(defs []script.SectionDefinition) (string, error) {
	type entry struct {
		ID            string `json:"id"`
		Name          string `json:"name"`
		Description   string `json:"description"`
		Brain         string `json:"brain"`
		SceneType     string `json:"sceneType"`
		DurationLabel string `json:"durationLabel"`
		CharsMin      int    `json:"charsMin"`
		CharsMax      int    `json:"charsMax"`
	}
	entries := make([]entry, len(defs))
	for i, d := range defs {
		entries[i] = entry{
			ID:            d.ID,
			Name:          d.Name,
			Description:   d.Description,
			Brain:         d.Brain,
			SceneType:     string(d.SceneType),
			DurationLabel: d.DurationLabel,
			CharsMin:      d.CharsMin,
			CharsMax:      d.CharsMax,
		}
	}
	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal template: %w", err)
	}
	return string(data), nil
}

// marshalSections renders the working sections handed to the model.
func marshalSections(sections []script.Section) (string, error) {
	type entry struct {
		ID      string `json:"id"`
		Name    string `json:"name"`
		Content string `json:"content"`
		Brain   string `json:"brain,omitempty"`
	}
	entries := make([]entry, len(sections))
	for i := range sections {
		entries[i] = entry{
			ID:      sections[i].ID,
			Name:    sections[i].Name,
			Content: sections[i].Content,
			Brain:   sections[i].Brain,
		}
	}
	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal sections: %w", err)
	}
	return string(data), nil
}

func truncateRunes(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max])
}
