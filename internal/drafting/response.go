package drafting

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

// responseSchema is the JSON shape every drafting reply must satisfy before
// any field is used. Deviations are ErrMalformedResponse, not partial
// recovery by convention.
const responseSchema = `{
	"type": "object",
	"properties": {
		"sections": {
			"type": "array",
			"items": {
				"type": "object",
				"properties": {
					"id": {"type": "string"},
					"name": {"type": "string"},
					"content": {"type": "string"},
					"brain": {"type": "string"},
					"sceneType": {"type": "string"},
					"durationLabel": {"type": "string"},
					"location": {"type": "string"},
					"reason": {"type": "string"}
				},
				"required": ["id", "name", "content"]
			}
		}
	},
	"required": ["sections"]
}`

var compiledSchema = func() *jsonschema.Schema {
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource("response.json", strings.NewReader(responseSchema)); err != nil {
		panic(fmt.Sprintf("drafting: bad response schema: %v", err))
	}
	return compiler.MustCompile("response.json")
}()

// fencePattern matches a ```json ... ``` (or bare ```) code fence.
var fencePattern = regexp.MustCompile("(?s)```(?:json)?\\s*(.*?)```")

// ExtractJSON pulls the JSON payload out of raw model output: a fenced code
// block if present, otherwise the outermost brace-delimited slice, otherwise
// the text unchanged.
func ExtractJSON(raw string) string {
	if m := fencePattern.FindStringSubmatch(raw); m != nil {
		return strings.TrimSpace(m[1])
	}
	start := strings.Index(raw, "{")
	end := strings.LastIndex(raw, "}")
	if start >= 0 && end > start {
		return raw[start : end+1]
	}
	return raw
}

// DecodeDrafts validates raw model output against the section-array contract
// and returns the drafts. Empty text, non-JSON text, and JSON of the wrong
// shape all yield ErrMalformedResponse.
func DecodeDrafts(raw string) ([]SectionDraft, error) {
	text := strings.TrimSpace(raw)
	if text == "" {
		return nil, fmt.Errorf("%w: empty response text", ErrMalformedResponse)
	}
	payload := ExtractJSON(text)

	var doc any
	if err := json.Unmarshal([]byte(payload), &doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}
	if err := compiledSchema.Validate(doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}

	var parsed struct {
		Sections []SectionDraft `json:"sections"`
	}
	if err := json.Unmarshal([]byte(payload), &parsed); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}
	return parsed.Sections, nil
}
