package layout

import (
	"fmt"
	"reflect"
	"strings"
	"testing"

	"github.com/jackzampolin/daihon/internal/script"
)

func section(id, content string) script.Section {
	return script.Section{
		SectionDefinition: script.SectionDefinition{
			ID:             id,
			Name:           "name-" + id,
			Description:    "desc-" + id,
			DurationSecMin: 30,
			SceneType:      script.SceneExplanation,
		},
		Content: content,
	}
}

func TestDurationLabel(t *testing.T) {
	tests := []struct {
		chars int
		want  string
	}{
		{0, "0秒"},
		{-5, "0秒"},
		{350, "1分"},   // exactly one minute
		{375, "1分4秒"}, // round(375/350*60) = 64s
		{175, "30秒"},
		{700, "2分"},
		{100, "17秒"},
	}
	for _, tt := range tests {
		if got := DurationLabel(tt.chars); got != tt.want {
			t.Errorf("DurationLabel(%d) = %q, want %q", tt.chars, got, tt.want)
		}
	}
}

func TestClock(t *testing.T) {
	tests := []struct {
		sec  int
		want string
	}{
		{0, "0:00"},
		{76, "1:16"},
		{330, "5:30"},
		{3600, "60:00"},
	}
	for _, tt := range tests {
		if got := Clock(tt.sec); got != tt.want {
			t.Errorf("Clock(%d) = %q, want %q", tt.sec, got, tt.want)
		}
	}
}

func TestEngine_Rows_CumulativeTime(t *testing.T) {
	e := NewEngine()
	sections := []script.Section{
		section("a", strings.Repeat("あ", 350)), // 60s
		section("b", strings.Repeat("い", 175)), // 30s
		section("c", strings.Repeat("う", 350)), // 60s
	}
	rows := e.Rows(sections)
	if len(rows) != 3 {
		t.Fatalf("expected 3 rows, got %d", len(rows))
	}

	wantTimes := []string{"5:30", "6:30", "7:00"}
	for i, want := range wantTimes {
		if rows[i].Time != want {
			t.Errorf("row %d: time %q, want %q", i, rows[i].Time, want)
		}
	}

	totalElapsed := 0
	for _, r := range rows {
		if r.Seconds < 0 {
			t.Errorf("negative duration %d", r.Seconds)
		}
		totalElapsed += r.Seconds
	}
	if totalElapsed != 150 {
		t.Errorf("total elapsed %d, want 150", totalElapsed)
	}
}

func TestEngine_Rows_EmptyContentFallback(t *testing.T) {
	e := &Engine{}
	sec := section("a", "")
	rows := e.Rows([]script.Section{sec})
	if rows[0].Seconds != 30 {
		t.Errorf("empty section should use DurationSecMin, got %d", rows[0].Seconds)
	}
	if rows[0].Duration != "0秒" {
		t.Errorf("empty section duration label = %q, want 0秒", rows[0].Duration)
	}

	// Without a per-section minimum the default is 60s.
	sec.DurationSecMin = 0
	rows = e.Rows([]script.Section{sec})
	if rows[0].Seconds != 60 {
		t.Errorf("expected 60s default, got %d", rows[0].Seconds)
	}
}

func TestEngine_Rows_FieldFallbacks(t *testing.T) {
	e := NewEngine()

	t.Run("location overrides scene", func(t *testing.T) {
		sec := section("a", "text")
		sec.Location = "スタジオ"
		rows := e.Rows([]script.Section{sec})
		if rows[0].Scene != "スタジオ" {
			t.Errorf("scene = %q, want location", rows[0].Scene)
		}
	})

	t.Run("name fallbacks", func(t *testing.T) {
		sec := section("a", "text")
		sec.Description = ""
		rows := e.Rows([]script.Section{sec})
		if rows[0].Scene != "name-a" || rows[0].Content != "name-a" {
			t.Errorf("expected name fallbacks, got scene=%q content=%q", rows[0].Scene, rows[0].Content)
		}
	})

	t.Run("scene type label", func(t *testing.T) {
		rows := e.Rows([]script.Section{section("a", "x")})
		if rows[0].SceneType != "解説系（30秒〜1分）" {
			t.Errorf("scene type label = %q", rows[0].SceneType)
		}
	})
}

func TestEngine_Rows_Deterministic(t *testing.T) {
	e := NewEngine()
	sections := []script.Section{
		section("a", strings.Repeat("あ", 123)),
		section("b", ""),
		section("c", strings.Repeat("う", 777)),
	}
	first := e.Rows(sections)
	second := e.Rows(sections)
	if !reflect.DeepEqual(first, second) {
		t.Error("layout output is not deterministic")
	}
}

func TestEngine_Rows_AllZeroDurations(t *testing.T) {
	// Sections with no content and a zero minimum still get the 60s default,
	// so a constant-time table only happens when minimums are explicit zero
	// and content empty; the invariant under test is monotonicity.
	e := &Engine{StartMinute: 0, StartSecond: 0}
	sections := []script.Section{section("a", "x"), section("b", "y"), section("c", "z")}
	rows := e.Rows(sections)
	prev := -1
	for i, r := range rows {
		var m, s int
		if _, err := fmt.Sscanf(r.Time, "%d:%d", &m, &s); err != nil {
			t.Fatalf("row %d: bad time %q: %v", i, r.Time, err)
		}
		cur := m*60 + s
		if cur < prev {
			t.Errorf("row %d: time went backwards (%d < %d)", i, cur, prev)
		}
		prev = cur
	}
}
