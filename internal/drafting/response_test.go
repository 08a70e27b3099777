package drafting

import (
	"errors"
	"testing"
)

func TestExtractJSON(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{
			name: "json fence",
			raw:  "Here you go:\n```json\n{\"sections\": []}\n```\nDone.",
			want: `{"sections": []}`,
		},
		{
			name: "bare fence",
			raw:  "```\n{\"sections\": []}\n```",
			want: `{"sections": []}`,
		},
		{
			name: "prose around braces",
			raw:  "The result is {\"sections\": []} as requested.",
			want: `{"sections": []}`,
		},
		{
			name: "plain json unchanged",
			raw:  `{"sections": []}`,
			want: `{"sections": []}`,
		},
		{
			name: "no json at all",
			raw:  "sorry, I cannot do that",
			want: "sorry, I cannot do that",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ExtractJSON(tt.raw); got != tt.want {
				t.Errorf("ExtractJSON() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestDecodeDrafts(t *testing.T) {
	t.Run("valid response", func(t *testing.T) {
		raw := "```json\n" + `{
			"sections": [
				{"id": "intro", "name": "冒頭", "content": "こんにちは。", "location": "自宅"},
				{"id": "current", "name": "現在", "content": "今は工房で働いています。"}
			]
		}` + "\n```"
		drafts, err := DecodeDrafts(raw)
		if err != nil {
			t.Fatalf("DecodeDrafts() error = %v", err)
		}
		if len(drafts) != 2 {
			t.Fatalf("got %d drafts, want 2", len(drafts))
		}
		if drafts[0].ID != "intro" || drafts[0].Location != "自宅" {
			t.Errorf("first draft = %+v", drafts[0])
		}
		if drafts[1].Content != "今は工房で働いています。" {
			t.Errorf("second draft content = %q", drafts[1].Content)
		}
	})

	t.Run("empty sections is valid", func(t *testing.T) {
		drafts, err := DecodeDrafts(`{"sections": []}`)
		if err != nil {
			t.Fatalf("DecodeDrafts() error = %v", err)
		}
		if len(drafts) != 0 {
			t.Errorf("got %d drafts, want 0", len(drafts))
		}
	})

	malformed := []struct {
		name string
		raw  string
	}{
		{"empty text", ""},
		{"whitespace only", "   \n\t "},
		{"not json", "I drafted five wonderful sections for you."},
		{"missing sections key", `{"result": []}`},
		{"section missing content", `{"sections": [{"id": "intro", "name": "冒頭"}]}`},
		{"sections not an array", `{"sections": "intro"}`},
	}
	for _, tt := range malformed {
		t.Run(tt.name, func(t *testing.T) {
			_, err := DecodeDrafts(tt.raw)
			if !errors.Is(err, ErrMalformedResponse) {
				t.Errorf("DecodeDrafts(%q) error = %v, want ErrMalformedResponse", tt.raw, err)
			}
		})
	}
}
