package split

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/jackzampolin/daihon/internal/script"
)

func TestFiveWay_Blank(t *testing.T) {
	for _, input := range []string{"", "   ", "\n\t "} {
		sections := FiveWay(input)
		if len(sections) != 5 {
			t.Fatalf("expected 5 sections, got %d", len(sections))
		}
		for _, sec := range sections {
			if sec.Content != "" {
				t.Errorf("blank input should produce empty content, got %q", sec.Content)
			}
		}
	}
}

func TestFiveWay_FixedSkeleton(t *testing.T) {
	sections := FiveWay("こんにちは")
	wantIDs := []string{"intro", "current", "trigger", "origin", "future"}
	for i, id := range wantIDs {
		if sections[i].ID != id {
			t.Errorf("section %d: expected id %q, got %q", i, id, sections[i].ID)
		}
		if sections[i].Name == "" {
			t.Errorf("section %d: missing name", i)
		}
	}
}

func TestFiveWay_ChunkLengths(t *testing.T) {
	tests := []struct {
		name   string
		length int
	}{
		{"exact multiple", 1000},
		{"remainder", 1003},
		{"short", 7},
		{"single char", 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Non-space runes so no trimming interferes with length checks.
			input := strings.Repeat("あ", tt.length)
			sections := FiveWay(input)

			chunkSize := (tt.length + 4) / 5
			var total int
			var rebuilt strings.Builder
			for i, sec := range sections {
				n := utf8.RuneCountInString(sec.Content)
				total += n
				rebuilt.WriteString(sec.Content)
				if i < 4 {
					want := chunkSize
					if i*chunkSize > tt.length {
						want = 0
					} else if i*chunkSize+chunkSize > tt.length {
						want = tt.length - i*chunkSize
					}
					if n != want {
						t.Errorf("chunk %d: length %d, want %d", i, n, want)
					}
				}
			}
			if total != tt.length {
				t.Errorf("total chunk length %d, want %d", total, tt.length)
			}
			if rebuilt.String() != input {
				t.Error("concatenated chunks do not reproduce the input")
			}
		})
	}
}

func TestApplyTemplate(t *testing.T) {
	five := FiveWay(strings.Repeat("あ", 500))

	t.Run("equal length (flow)", func(t *testing.T) {
		sections, err := ApplyTemplate(five, script.TemplateFlow)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(sections) != 5 {
			t.Fatalf("expected 5 sections, got %d", len(sections))
		}
		for i := range sections {
			if sections[i].Content != five[i].Content {
				t.Errorf("section %d: content not copied positionally", i)
			}
			if !strings.HasPrefix(sections[i].ID, "flow-") {
				t.Errorf("section %d: expected flow id, got %q", i, sections[i].ID)
			}
		}
	})

	t.Run("template longer (campbell)", func(t *testing.T) {
		sections, err := ApplyTemplate(five, script.TemplateCampbell)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(sections) != 8 {
			t.Fatalf("expected 8 sections, got %d", len(sections))
		}
		for i := 5; i < 8; i++ {
			if sections[i].Content != "" {
				t.Errorf("section %d: extra template sections must stay empty", i)
			}
		}
	})

	t.Run("unknown template", func(t *testing.T) {
		if _, err := ApplyTemplate(five, "spiral"); err == nil {
			t.Error("expected error for unknown template")
		}
	})
}

func TestFitTemplate(t *testing.T) {
	transcript := "昔から続く味噌蔵の話。" + strings.Repeat("発酵の手間を惜しまず、麹と向き合う毎日。", 20)
	five := FiveWay(transcript)

	t.Run("equal length copies positionally", func(t *testing.T) {
		sections, err := FitTemplate(five, script.TemplateFlow)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		for i := range sections {
			if sections[i].Content != five[i].Content {
				t.Errorf("section %d: content not copied positionally", i)
			}
		}
	})

	t.Run("longer template fills every section", func(t *testing.T) {
		sections, err := FitTemplate(five, script.TemplateCampbell)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(sections) != 8 {
			t.Fatalf("expected 8 sections, got %d", len(sections))
		}
		for i := range sections {
			if sections[i].Content == "" {
				t.Errorf("section %d (%s): content must be redistributed, not left empty", i, sections[i].ID)
			}
		}
	})

	t.Run("shorter template keeps all text", func(t *testing.T) {
		sections, err := FitTemplate(FiveWay(transcript), script.TemplateCinderella)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(sections) != 7 {
			t.Fatalf("expected 7 sections, got %d", len(sections))
		}
		var total int
		for i := range sections {
			total += len([]rune(sections[i].Content))
		}
		// Redistribution may trim whitespace at chunk edges, but the bulk of
		// the transcript must survive.
		if total < len([]rune(transcript))/2 {
			t.Errorf("only %d of %d chars survived redistribution", total, len([]rune(transcript)))
		}
	})

	t.Run("unknown template", func(t *testing.T) {
		if _, err := FitTemplate(five, "spiral"); err == nil {
			t.Error("expected error for unknown template")
		}
	})
}

func TestProportional(t *testing.T) {
	sections, err := script.Instantiate(script.TemplateFlow)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	t.Run("covers full length", func(t *testing.T) {
		length := 1000
		input := strings.Repeat("あ", length)
		out := Proportional(input, sections)

		total := 0
		for i := range out {
			total += utf8.RuneCountInString(out[i].Content)
		}
		if total != length {
			t.Errorf("total assigned %d, want %d", total, length)
		}
		// Final chunk must end exactly at the input end.
		last := out[len(out)-1].Content
		if !strings.HasSuffix(input, last) {
			t.Error("final chunk does not end at input end")
		}
	})

	t.Run("weights follow budgets", func(t *testing.T) {
		input := strings.Repeat("あ", 1000)
		out := Proportional(input, sections)
		// flow-2 (60-180s budget) should receive more than flow-1 (20-60s).
		if utf8.RuneCountInString(out[1].Content) <= utf8.RuneCountInString(out[0].Content) {
			t.Error("heavier budget should receive a longer chunk")
		}
	})

	t.Run("empty text", func(t *testing.T) {
		out := Proportional("", sections)
		for i := range out {
			if out[i].Content != "" {
				t.Errorf("section %d: expected empty content", i)
			}
		}
	})

	t.Run("empty section list", func(t *testing.T) {
		out := Proportional("abc", nil)
		if len(out) != 0 {
			t.Errorf("expected empty result, got %d sections", len(out))
		}
	})
}
