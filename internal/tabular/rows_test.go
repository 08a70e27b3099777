package tabular

import (
	"testing"

	"github.com/jackzampolin/daihon/internal/layout"
	"github.com/jackzampolin/daihon/internal/script"
)

func TestValuesToRows_HeaderResolution(t *testing.T) {
	t.Run("reordered header", func(t *testing.T) {
		values := [][]string{
			{"原稿", "時間", "秒数"},
			{"本文テキスト", "5:30", "76"},
		}
		rows := ValuesToRows(values)
		if len(rows) != 1 {
			t.Fatalf("expected 1 row, got %d", len(rows))
		}
		if rows[0].Script != "本文テキスト" || rows[0].Time != "5:30" || rows[0].Seconds != 76 {
			t.Errorf("header reordering not honored: %+v", rows[0])
		}
	})

	t.Run("positional fallback without header names", func(t *testing.T) {
		values := [][]string{
			{"c0", "c1", "c2", "c3", "c4", "c5", "c6", "c7"},
			{"5:30", "シーンA", "内容A", "解説系", "60", "1分", "350", "原稿A"},
		}
		rows := ValuesToRows(values)
		r := rows[0]
		if r.Time != "5:30" || r.Scene != "シーンA" || r.Seconds != 60 || r.CharCount != 350 || r.Script != "原稿A" {
			t.Errorf("positional defaults not applied: %+v", r)
		}
	})

	t.Run("short rows yield empty cells", func(t *testing.T) {
		values := [][]string{
			{"時間", "シーン"},
			{"5:30"},
		}
		rows := ValuesToRows(values)
		if rows[0].Scene != "" || rows[0].Script != "" {
			t.Errorf("missing cells should be empty, got %+v", rows[0])
		}
	})

	t.Run("empty input", func(t *testing.T) {
		if rows := ValuesToRows(nil); rows != nil {
			t.Errorf("expected nil, got %v", rows)
		}
	})
}

func TestValuesToRows_NumericTolerance(t *testing.T) {
	values := [][]string{
		{"時間", "シーン", "内容", "シーン種別", "秒数", "所要時間", "文字数", "原稿"},
		{"5:30", "s", "c", "解説系", "abc", "1分", "", "x"},
		{"6:30", "s", "c", "解説系", "45.9", "1分", "350", "x"},
	}
	rows := ValuesToRows(values)
	if rows[0].Seconds != 0 || rows[0].CharCount != 0 {
		t.Errorf("unparseable numbers must default to 0, got %+v", rows[0])
	}
	if rows[1].Seconds != 45 {
		t.Errorf("decimal cell should truncate to 45, got %d", rows[1].Seconds)
	}
}

func TestRowsToSections(t *testing.T) {
	rows := []layout.Row{
		{
			Time:      "5:30",
			Scene:     "リビング",
			Content:   "現在の活動",
			SceneType: "訴求（2〜3分）",
			Seconds:   90,
			Duration:  "1分30秒",
			CharCount: 525,
			Script:    "原稿テキスト",
		},
		{SceneType: "不明なラベル"},
	}

	sections := RowsToSections(rows)
	if len(sections) != 2 {
		t.Fatalf("expected 2 sections, got %d", len(sections))
	}

	first := sections[0]
	if first.ID != "sheet-1" {
		t.Errorf("id = %q, want sheet-1", first.ID)
	}
	if first.Name != "現在の活動" || first.Description != "現在の活動" {
		t.Errorf("name/description should come from the content field: %+v", first)
	}
	if first.SceneType != script.SceneAppeal {
		t.Errorf("scene type = %q, want appeal", first.SceneType)
	}
	if first.Location != "リビング" || first.Content != "原稿テキスト" {
		t.Errorf("location/content mapping wrong: %+v", first)
	}
	if first.CharsMin != 0 || first.CharsMax != 2000 {
		t.Errorf("default budget = (%d, %d), want (0, 2000)", first.CharsMin, first.CharsMax)
	}
	if first.DurationSecMin != 90 {
		t.Errorf("duration floor = %d, want 90", first.DurationSecMin)
	}

	second := sections[1]
	if second.ID != "sheet-2" {
		t.Errorf("id = %q, want sheet-2", second.ID)
	}
	if second.SceneType != script.SceneExplanation {
		t.Errorf("unknown label must classify as explanation, got %q", second.SceneType)
	}
	if second.Name != "セクション2" {
		t.Errorf("blank row should synthesize a name, got %q", second.Name)
	}
	if second.DurationSecMin != 60 || second.DurationLabel != "約1分" {
		t.Errorf("blank row defaults wrong: %+v", second.SectionDefinition)
	}
}

func TestSectionsFromPaste(t *testing.T) {
	paste := "時間\tシーン\t内容\tシーン種別\t秒数\t所要時間\t文字数\t原稿\n" +
		"5:30\t自宅\t挨拶\tブリッジ（5〜10秒）\t10\t10秒\t58\tこんにちは"
	sections := SectionsFromPaste(paste)
	if len(sections) != 1 {
		t.Fatalf("expected 1 section, got %d", len(sections))
	}
	if sections[0].SceneType != script.SceneBridge {
		t.Errorf("scene type = %q, want bridge", sections[0].SceneType)
	}
	if sections[0].Content != "こんにちは" {
		t.Errorf("content = %q", sections[0].Content)
	}
}

func TestRowsToValues(t *testing.T) {
	rows := []layout.Row{{Time: "5:30", Scene: "a", Content: "b", SceneType: "c", Seconds: 60, Duration: "1分", CharCount: 350, Script: "d"}}
	values := RowsToValues(rows)
	want := []string{"5:30", "a", "b", "c", "60", "1分", "350", "d"}
	if len(values) != 1 || len(values[0]) != 8 {
		t.Fatalf("unexpected shape: %v", values)
	}
	for i := range want {
		if values[0][i] != want[i] {
			t.Errorf("cell %d = %q, want %q", i, values[0][i], want[i])
		}
	}
}
