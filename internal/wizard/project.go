package wizard

import (
	"time"

	"github.com/google/uuid"

	"github.com/jackzampolin/daihon/internal/script"
)

// Stage represents the lifecycle of a script project.
type Stage string

const (
	// StageTranscript means only raw interview text is present.
	StageTranscript Stage = "transcript"
	// StageSplit means the transcript is divided into the five-part skeleton.
	StageSplit Stage = "split"
	// StageSubdivided means the skeleton is mapped onto a narrative template.
	StageSubdivided Stage = "subdivided"
	// StageImproved means the content has been rewritten for engagement.
	StageImproved Stage = "improved"
	// StageReady means the script is final and exportable as a table.
	StageReady Stage = "ready"
)

var stageOrder = []Stage{
	StageTranscript,
	StageSplit,
	StageSubdivided,
	StageImproved,
	StageReady,
}

var stageRank = func() map[Stage]int {
	ranks := make(map[Stage]int, len(stageOrder))
	for i, s := range stageOrder {
		ranks[s] = i
	}
	return ranks
}()

// Valid reports whether s is a known stage.
func (s Stage) Valid() bool {
	_, ok := stageRank[s]
	return ok
}

// Before reports whether s comes earlier than other in the pipeline.
func (s Stage) Before(other Stage) bool {
	return stageRank[s] < stageRank[other]
}

// Project is the full state of one script in progress. Everything needed to
// resume or rewind lives here; earlier stages' outputs are never discarded
// when a later stage completes.
type Project struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Transcript      string            `json:"transcript"`
	TemplateID      script.TemplateID `json:"template_id,omitempty"`
	ReferenceScript string            `json:"reference_script,omitempty"`

	FiveSections     []script.Section `json:"five_sections,omitempty"`
	DetailedSections []script.Section `json:"detailed_sections,omitempty"`
	ImprovedSections []script.Section `json:"improved_sections,omitempty"`

	Stage Stage `json:"stage"`
	// Watermark is the furthest stage ever reached. Rewinding moves Stage
	// back but never the watermark, so re-running forward is always allowed.
	Watermark Stage `json:"watermark"`
}

// NewProject creates an empty project awaiting a transcript.
func NewProject(title string) *Project {
	now := time.Now().UTC()
	return &Project{
		ID:        uuid.New().String(),
		Title:     title,
		CreatedAt: now,
		UpdatedAt: now,
		Stage:     StageTranscript,
		Watermark: StageTranscript,
	}
}

// FinalSections returns the sections a table should be built from: the
// improved pass when present, otherwise the template subdivision, otherwise
// the five-part skeleton.
func (p *Project) FinalSections() []script.Section {
	switch {
	case len(p.ImprovedSections) > 0:
		return p.ImprovedSections
	case len(p.DetailedSections) > 0:
		return p.DetailedSections
	default:
		return p.FiveSections
	}
}

// CurrentSections returns the sections belonging to the current stage, for
// display and editing. Earlier rewinds show earlier outputs.
func (p *Project) CurrentSections() []script.Section {
	switch p.Stage {
	case StageImproved, StageReady:
		return p.FinalSections()
	case StageSubdivided:
		if len(p.DetailedSections) > 0 {
			return p.DetailedSections
		}
		return p.FiveSections
	case StageSplit:
		return p.FiveSections
	default:
		return nil
	}
}

func (p *Project) touch() {
	p.UpdatedAt = time.Now().UTC()
}

func (p *Project) advance(to Stage) {
	p.Stage = to
	if stageRank[p.Watermark] < stageRank[to] {
		p.Watermark = to
	}
	p.touch()
}
