// Package wizard drives a script project through its stages: transcript,
// five-part split, template subdivision, improvement, ready. Transitions are
// strictly ordered going forward; rewinding to any previously reached stage
// is always allowed.
package wizard

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/jackzampolin/daihon/internal/drafting"
	"github.com/jackzampolin/daihon/internal/script"
	"github.com/jackzampolin/daihon/internal/split"
)

// Sentinel errors for stage transitions.
var (
	// ErrWrongStage means the requested transition does not start from the
	// project's current stage.
	ErrWrongStage = errors.New("operation not valid in current stage")

	// ErrStageNotReached means a rewind targeted a stage the project has
	// never been in.
	ErrStageNotReached = errors.New("stage was never reached")

	// ErrBusy means another transition is still in flight on this machine.
	ErrBusy = errors.New("a transition is already in progress")

	// ErrNoTranscript means a transition needs transcript text that is not
	// there.
	ErrNoTranscript = errors.New("project has no transcript")
)

// Machine applies stage transitions to one project. At most one external
// drafting call runs at a time; a failed call leaves the project untouched,
// so retrying is just calling the same method again.
type Machine struct {
	project *Project
	digest  string // history digest carried into every drafting prompt
	logger  *slog.Logger

	mu       sync.Mutex
	inFlight bool
}

// NewMachine wraps an existing project.
func NewMachine(p *Project, logger *slog.Logger) *Machine {
	if logger == nil {
		logger = slog.Default()
	}
	return &Machine{project: p, logger: logger}
}

// Project returns the wrapped project.
func (m *Machine) Project() *Project { return m.project }

// SetHistoryDigest attaches lessons from past projects to future prompts.
func (m *Machine) SetHistoryDigest(digest string) { m.digest = digest }

// SetTranscript stores the raw interview text. Allowed only before the first
// split; afterwards the transcript is fixed and changing it means rewinding.
func (m *Machine) SetTranscript(text string) error {
	if m.project.Stage != StageTranscript {
		return fmt.Errorf("%w: transcript is fixed after splitting, rewind first", ErrWrongStage)
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return ErrNoTranscript
	}
	m.project.Transcript = text
	m.project.touch()
	return nil
}

// Split divides the transcript into the five-part skeleton. With a drafting
// service the division is content-aware; with svc nil it falls back to the
// deterministic equal-runes split, which never fails.
func (m *Machine) Split(ctx context.Context, svc drafting.Service) error {
	if err := m.begin(); err != nil {
		return err
	}
	defer m.end()

	if m.project.Stage != StageTranscript {
		return fmt.Errorf("%w: split starts from a transcript, current stage is %s", ErrWrongStage, m.project.Stage)
	}
	if m.project.Transcript == "" {
		return ErrNoTranscript
	}

	skeleton := split.FiveWay(m.project.Transcript)
	if svc != nil {
		drafts, err := svc.Draft(ctx, &drafting.Request{
			Op:            drafting.OpSplit,
			Transcript:    m.project.Transcript,
			HistoryDigest: m.digest,
		})
		if err != nil {
			return fmt.Errorf("split drafting failed: %w", err)
		}
		skeleton = drafting.Align(skeleton, drafts)
	}

	m.project.FiveSections = skeleton
	m.project.advance(StageSplit)
	m.logger.Info("transcript split",
		"project", m.project.ID,
		"sections", len(skeleton),
		"drafted", svc != nil,
	)
	return nil
}

// Subdivide maps the five-part skeleton onto a narrative template. With svc
// nil the content is redistributed positionally (equal section counts) or
// proportionally to the template's character budgets.
func (m *Machine) Subdivide(ctx context.Context, svc drafting.Service, templateID script.TemplateID) error {
	if err := m.begin(); err != nil {
		return err
	}
	defer m.end()

	if m.project.Stage != StageSplit {
		return fmt.Errorf("%w: subdivide starts from a split, current stage is %s", ErrWrongStage, m.project.Stage)
	}

	var detailed []script.Section
	if svc != nil {
		drafts, err := svc.Draft(ctx, &drafting.Request{
			Op:            drafting.OpSubdivide,
			Sections:      m.project.FiveSections,
			TemplateID:    templateID,
			HistoryDigest: m.digest,
		})
		if err != nil {
			return fmt.Errorf("subdivide drafting failed: %w", err)
		}
		blank, err := script.Instantiate(templateID)
		if err != nil {
			return err
		}
		detailed = drafting.Align(blank, drafts)
	} else {
		var err error
		detailed, err = split.FitTemplate(m.project.FiveSections, templateID)
		if err != nil {
			return err
		}
	}

	m.project.TemplateID = templateID
	m.project.DetailedSections = detailed
	m.project.advance(StageSubdivided)
	m.logger.Info("template applied",
		"project", m.project.ID,
		"template", string(templateID),
		"sections", len(detailed),
		"drafted", svc != nil,
	)
	return nil
}

// Improve rewrites the subdivided content for engagement, keeping the section
// structure. A reference script, when given, steers tone. Improvement always
// goes through the drafting service; there is no offline fallback.
func (m *Machine) Improve(ctx context.Context, svc drafting.Service, reference string) error {
	if err := m.begin(); err != nil {
		return err
	}
	defer m.end()

	if m.project.Stage != StageSubdivided {
		return fmt.Errorf("%w: improve starts from a subdivision, current stage is %s", ErrWrongStage, m.project.Stage)
	}
	if svc == nil {
		return errors.New("improve needs a drafting service")
	}

	drafts, err := svc.Draft(ctx, &drafting.Request{
		Op:              drafting.OpImprove,
		Sections:        m.project.DetailedSections,
		ReferenceScript: reference,
		HistoryDigest:   m.digest,
	})
	if err != nil {
		return fmt.Errorf("improve drafting failed: %w", err)
	}

	m.project.ReferenceScript = reference
	m.project.ImprovedSections = drafting.Align(m.project.DetailedSections, drafts)
	m.project.advance(StageImproved)
	m.logger.Info("script improved",
		"project", m.project.ID,
		"sections", len(m.project.ImprovedSections),
		"reference", reference != "",
	)
	return nil
}

// Skip marks the subdivided script ready without an improvement pass. The
// sections carry over unchanged.
func (m *Machine) Skip() error {
	if err := m.begin(); err != nil {
		return err
	}
	defer m.end()

	switch m.project.Stage {
	case StageSubdivided, StageImproved:
		m.project.advance(StageReady)
		return nil
	default:
		return fmt.Errorf("%w: only a subdivided or improved script can be marked ready", ErrWrongStage)
	}
}

// ReplaceFinal adopts externally edited sections (a pasted table or a
// spreadsheet pull) as the final script and marks the project ready, from any
// stage. The transcript and earlier stage outputs are kept.
func (m *Machine) ReplaceFinal(sections []script.Section) error {
	if err := m.begin(); err != nil {
		return err
	}
	defer m.end()

	if len(sections) == 0 {
		return errors.New("no sections to adopt")
	}
	m.project.ImprovedSections = sections
	m.project.advance(StageReady)
	m.logger.Info("adopted external sections",
		"project", m.project.ID,
		"sections", len(sections),
	)
	return nil
}

// Back rewinds to an earlier stage the project has already been in. Outputs
// of later stages are kept so moving forward again can reuse or replace them.
func (m *Machine) Back(to Stage) error {
	if err := m.begin(); err != nil {
		return err
	}
	defer m.end()

	if !to.Valid() {
		return fmt.Errorf("unknown stage %q", to)
	}
	if !to.Before(m.project.Stage) {
		return fmt.Errorf("%w: %s is not earlier than %s", ErrWrongStage, to, m.project.Stage)
	}
	if stageRank[m.project.Watermark] < stageRank[to] {
		return fmt.Errorf("%w: %s", ErrStageNotReached, to)
	}

	m.project.Stage = to
	m.project.touch()
	m.logger.Info("rewound", "project", m.project.ID, "stage", string(to))
	return nil
}

func (m *Machine) begin() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.inFlight {
		return ErrBusy
	}
	m.inFlight = true
	return nil
}

func (m *Machine) end() {
	m.mu.Lock()
	m.inFlight = false
	m.mu.Unlock()
}
