// Package history keeps a bounded log of past projects and renders a short
// digest of the most recent ones for inclusion in drafting prompts.
package history

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// MaxRecords caps the log: saving beyond it evicts the oldest entries.
// Eviction is enforced inside the store, never by callers.
const MaxRecords = 50

// DigestLimit is the default number of records a digest covers.
const DigestLimit = 5

// Record summarizes one completed project.
type Record struct {
	ID                string    `json:"id"`
	CreatedAt         time.Time `json:"created_at"`
	Title             string    `json:"title"`
	TemplateID        string    `json:"template_id"`
	TranscriptExcerpt string    `json:"transcript_excerpt"`
	SectionNames      []string  `json:"section_names"`
	SectionCount      int       `json:"section_count"`
	TotalChars        int       `json:"total_chars"`
	ReferenceUsed     bool      `json:"reference_used"`
	Lessons           string    `json:"lessons,omitempty"`
}

// Store persists the record log as a single JSON file, loaded once at
// construction and written through on every mutation. Records are kept
// most-recent-first.
type Store struct {
	path    string
	records []Record
	logger  *slog.Logger
}

// NewStore loads (or initializes) the store at the given file path.
// A missing file is an empty log; a corrupt file is treated as empty rather
// than blocking the pipeline.
func NewStore(path string, logger *slog.Logger) (*Store, error) {
	if logger == nil {
		logger = slog.Default()
	}
	s := &Store{path: path, logger: logger}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return s, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read history: %w", err)
	}
	if err := json.Unmarshal(data, &s.records); err != nil {
		logger.Warn("history file is corrupt, starting empty", "path", path, "error", err)
		s.records = nil
	}
	if len(s.records) > MaxRecords {
		s.records = s.records[:MaxRecords]
	}
	return s, nil
}

// List returns the records, most recent first. The returned slice is a copy.
func (s *Store) List() []Record {
	out := make([]Record, len(s.records))
	copy(out, s.records)
	return out
}

// Save prepends the record, dropping any existing entry with the same id,
// and truncates to the most recent MaxRecords.
func (s *Store) Save(rec Record) error {
	updated := make([]Record, 0, len(s.records)+1)
	updated = append(updated, rec)
	for _, r := range s.records {
		if r.ID != rec.ID {
			updated = append(updated, r)
		}
	}
	if len(updated) > MaxRecords {
		updated = updated[:MaxRecords]
	}
	s.records = updated
	return s.flush()
}

// Delete removes the record with the given id, if present.
func (s *Store) Delete(id string) error {
	kept := s.records[:0]
	for _, r := range s.records {
		if r.ID != id {
			kept = append(kept, r)
		}
	}
	s.records = kept
	return s.flush()
}

// Export returns the full log as indented JSON.
func (s *Store) Export() ([]byte, error) {
	return json.MarshalIndent(s.records, "", "  ")
}

// Import merges records from an exported log. Records whose id already
// exists are dropped; new records are prepended ahead of existing ones, then
// the log is truncated to MaxRecords. Returns the number actually added.
func (s *Store) Import(data []byte) (int, error) {
	var incoming []Record
	if err := json.Unmarshal(data, &incoming); err != nil {
		return 0, fmt.Errorf("invalid history format: %w", err)
	}

	existing := make(map[string]bool, len(s.records))
	for _, r := range s.records {
		existing[r.ID] = true
	}

	var fresh []Record
	for _, r := range incoming {
		if !existing[r.ID] {
			fresh = append(fresh, r)
			existing[r.ID] = true
		}
	}
	if len(fresh) == 0 {
		return 0, nil
	}

	merged := append(fresh, s.records...)
	if len(merged) > MaxRecords {
		merged = merged[:MaxRecords]
	}
	s.records = merged
	if err := s.flush(); err != nil {
		return 0, err
	}
	return len(fresh), nil
}

// Digest renders the most recent limit records as a numbered Japanese text
// block for drafting prompts. An empty log yields an empty string.
func (s *Store) Digest(limit int) string {
	if limit <= 0 {
		limit = DigestLimit
	}
	records := s.records
	if len(records) > limit {
		records = records[:limit]
	}
	if len(records) == 0 {
		return ""
	}

	var b strings.Builder
	b.WriteString("\n【過去の制作履歴（この感性・傾向を学習してください）】\n")
	for i, r := range records {
		fmt.Fprintf(&b, "%d. 「%s」(%s) — 構成:%s, %dシーン, %d文字",
			i+1, r.Title, r.CreatedAt.Format("2006-01-02"), r.TemplateID, r.SectionCount, r.TotalChars)
		if r.Lessons != "" {
			fmt.Fprintf(&b, ", 学び: %s", r.Lessons)
		}
		b.WriteString("\n")
	}
	return b.String()
}

// flush writes the log atomically (temp file then rename).
func (s *Store) flush() error {
	data, err := json.MarshalIndent(s.records, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to serialize history: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("failed to create history directory: %w", err)
	}
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("failed to write history: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("failed to save history: %w", err)
	}
	return nil
}
