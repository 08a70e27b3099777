package script

import "testing"

func TestClassifySceneLabel(t *testing.T) {
	tests := []struct {
		name  string
		label string
		want  SceneType
	}{
		{"insert japanese", "インサート", SceneInsert},
		{"insert english mixed case", "Insert shot", SceneInsert},
		{"vlog with duration", "VLOG（15〜30秒）", SceneVlog},
		{"vlog lowercase", "vlog", SceneVlog},
		{"appeal japanese", "訴求（2〜3分）", SceneAppeal},
		{"bridge japanese", "ブリッジ", SceneBridge},
		{"bridge english", "Bridge scene", SceneBridge},
		{"explanation japanese", "解説系（30秒〜1分）", SceneExplanation},
		{"unknown text", "なにこれ", SceneExplanation},
		{"empty", "", SceneExplanation},
		{"whitespace", "   ", SceneExplanation},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ClassifySceneLabel(tt.label); got != tt.want {
				t.Errorf("ClassifySceneLabel(%q) = %q, want %q", tt.label, got, tt.want)
			}
		})
	}
}

func TestClassifySceneLabel_Priority(t *testing.T) {
	// A label matching multiple keywords resolves to the first category in
	// priority order insert, vlog, appeal, bridge.
	if got := ClassifySceneLabel("インサート＋VLOG"); got != SceneInsert {
		t.Errorf("expected insert to win over vlog, got %q", got)
	}
	if got := ClassifySceneLabel("vlog訴求"); got != SceneVlog {
		t.Errorf("expected vlog to win over appeal, got %q", got)
	}
}

func TestSceneType_TableLabel(t *testing.T) {
	if got := SceneExplanation.TableLabel(); got != "解説系（30秒〜1分）" {
		t.Errorf("unexpected label: %q", got)
	}
	if got := SceneInsert.TableLabel(); got != "インサート（3〜5秒）" {
		t.Errorf("unexpected label: %q", got)
	}
}

func TestSceneType_Info_Unknown(t *testing.T) {
	// Unknown scene types fall back to the explanation entry so row
	// rendering never panics on pasted data.
	info := SceneType("bogus").Info()
	if info.Short != "解説系" {
		t.Errorf("expected explanation fallback, got %q", info.Short)
	}
}

func TestCharsFor(t *testing.T) {
	tests := []struct {
		seconds int
		want    int
	}{
		{60, 350},
		{30, 175},
		{20, 117},  // round(20/60*350) = round(116.67)
		{180, 1050},
	}
	for _, tt := range tests {
		if got := CharsFor(tt.seconds); got != tt.want {
			t.Errorf("CharsFor(%d) = %d, want %d", tt.seconds, got, tt.want)
		}
	}
}
