// Package drafting is the boundary to the external drafting service: the
// request/response contract, prompt construction, response validation, and
// the provider clients that carry requests over the wire. The pipeline never
// depends on a concrete provider, only on the Service interface.
package drafting

import (
	"context"
	"errors"
	"time"

	"github.com/avast/retry-go/v4"

	"github.com/jackzampolin/daihon/internal/script"
)

// Sentinel errors for the drafting boundary.
var (
	// ErrNoCredentials means no API key is configured for the provider.
	// The pipeline stays in its current stage; the deterministic splitter
	// and CSV export remain available.
	ErrNoCredentials = errors.New("drafting service credentials not configured")

	// ErrMalformedResponse means the service returned empty text or text
	// that does not parse as the expected section-array JSON. Recoverable:
	// the transition is not advanced and may be retried.
	ErrMalformedResponse = errors.New("malformed drafting service response")

	// ErrEmptyRequest means the request carries no transcript or sections.
	ErrEmptyRequest = errors.New("drafting request has no input")
)

// Op selects the drafting operation.
type Op string

const (
	// OpSplit divides a raw transcript into the five-part skeleton.
	OpSplit Op = "split"
	// OpSubdivide maps sections onto a narrative template's finer scenes.
	OpSubdivide Op = "subdivide"
	// OpImprove rewrites section content for engagement, keeping structure.
	OpImprove Op = "improve"
)

// Request is one drafting call. Exactly one blocking request/response per
// pipeline transition; no partial results.
type Request struct {
	Op              Op
	Transcript      string
	Sections        []script.Section
	TemplateID      script.TemplateID
	ReferenceScript string // optional tone reference, truncated for prompts
	HistoryDigest   string // optional digest of past projects
}

// SectionDraft is one section of a drafting response. Only ID, Name and
// Content are required; the rest is optional scene metadata.
type SectionDraft struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	Content       string `json:"content"`
	Brain         string `json:"brain,omitempty"`
	SceneType     string `json:"sceneType,omitempty"`
	DurationLabel string `json:"durationLabel,omitempty"`
	Location      string `json:"location,omitempty"`
	Reason        string `json:"reason,omitempty"`
}

// Service is an external drafting collaborator.
type Service interface {
	// Draft performs one drafting operation. Implementations must return
	// ErrNoCredentials when unconfigured and ErrMalformedResponse when the
	// upstream reply does not match the section-array contract.
	Draft(ctx context.Context, req *Request) ([]SectionDraft, error)

	// Name returns the provider identifier (e.g. "gemini").
	Name() string
}

// Align merges drafts onto the requested section order by id. Sections whose
// id has no draft keep empty content (never a fatal condition); drafts with
// unknown ids are dropped. Template metadata (name, brain, budgets) always
// comes from the sections, not the drafts.
func Align(sections []script.Section, drafts []SectionDraft) []script.Section {
	byID := make(map[string]*SectionDraft, len(drafts))
	for i := range drafts {
		byID[drafts[i].ID] = &drafts[i]
	}

	out := make([]script.Section, len(sections))
	copy(out, sections)
	for i := range out {
		draft, ok := byID[out[i].ID]
		if !ok {
			out[i].Content = ""
			continue
		}
		out[i].Content = draft.Content
		if draft.Location != "" {
			out[i].Location = draft.Location
		}
	}
	return out
}

// retryAttempts bounds how often a transient drafting failure is retried
// before surfacing to the user. Missing credentials are never retried.
const retryAttempts = 3

// retrying wraps a Service with bounded, context-aware retry.
type retrying struct {
	inner Service
	delay time.Duration
}

// WithRetry returns a Service that retries transient failures of the inner
// service. Timeouts and malformed responses are retryable; missing
// credentials fail immediately.
func WithRetry(svc Service) Service {
	return &retrying{inner: svc, delay: time.Second}
}

func (r *retrying) Name() string { return r.inner.Name() }

func (r *retrying) Draft(ctx context.Context, req *Request) ([]SectionDraft, error) {
	var drafts []SectionDraft
	err := retry.Do(
		func() error {
			var err error
			drafts, err = r.inner.Draft(ctx, req)
			return err
		},
		retry.Context(ctx),
		retry.Attempts(retryAttempts),
		retry.Delay(r.delay),
		retry.LastErrorOnly(true),
		retry.RetryIf(func(err error) bool {
			return !errors.Is(err, ErrNoCredentials) && !errors.Is(err, ErrEmptyRequest)
		}),
	)
	if err != nil {
		return nil, err
	}
	return drafts, nil
}
