// Package script provides the core types for documentary script structuring:
// the scene-type catalog, section definitions, and the narrative template
// registry. This package has no dependencies on other daihon packages.
package script

import (
	"math"
	"strings"
)

// CharsPerMinute is the standard narration rate used for all character-count
// to duration conversions (350 characters per minute of spoken Japanese).
const CharsPerMinute = 350

// CharsFor returns the approximate character count narrated in the given
// number of seconds at the standard narration rate.
func CharsFor(seconds int) int {
	return int(math.Round(float64(seconds) / 60.0 * CharsPerMinute))
}

// SceneType is one of the five fixed production categories a scene belongs to.
type SceneType string

const (
	SceneInsert      SceneType = "insert"
	SceneVlog        SceneType = "vlog"
	SceneExplanation SceneType = "explanation"
	SceneAppeal      SceneType = "appeal"
	SceneBridge      SceneType = "bridge"
)

// SceneTypeInfo describes one production category.
type SceneTypeInfo struct {
	Label       string // e.g. "インサート"
	Short       string // short label used in table cells
	Duration    string // canonical duration range, e.g. "3〜5秒"
	Description string
}

// SceneTypes is the fixed catalog of the five production categories.
var SceneTypes = map[SceneType]SceneTypeInfo{
	SceneInsert: {
		Label:       "インサート",
		Short:       "インサート",
		Duration:    "3〜5秒",
		Description: "映像のみ（場面の説明に使用する）",
	},
	SceneVlog: {
		Label:       "VLOG",
		Short:       "VLOG",
		Duration:    "15〜30秒",
		Description: "原稿にはない他愛もない会話（演者様の人柄を表す）",
	},
	SceneExplanation: {
		Label:       "解説系",
		Short:       "解説系",
		Duration:    "30秒〜1分",
		Description: "動画内で伝えたいことを話す（動画の核）",
	},
	SceneAppeal: {
		Label:       "訴求",
		Short:       "訴求",
		Duration:    "2〜3分",
		Description: "動画で最も伝えたい内容＆訴求したい商品の紹介など",
	},
	SceneBridge: {
		Label:       "ブリッジ",
		Short:       "ブリッジ",
		Duration:    "5〜10秒",
		Description: "次のセクションに違和感なく移動するためのシーン",
	},
}

// Info returns the catalog entry for the scene type, falling back to the
// explanation entry for unknown values.
func (s SceneType) Info() SceneTypeInfo {
	if info, ok := SceneTypes[s]; ok {
		return info
	}
	return SceneTypes[SceneExplanation]
}

// TableLabel renders the scene type as it appears in a spreadsheet cell,
// e.g. "解説系（30秒〜1分）".
func (s SceneType) TableLabel() string {
	info := s.Info()
	return info.Short + "（" + info.Duration + "）"
}

// sceneKeywords maps each category to its label aliases, checked in priority
// order. A label matching more than one category resolves to the first match.
var sceneKeywords = []struct {
	sceneType SceneType
	keywords  []string
}{
	{SceneInsert, []string{"インサート", "insert"}},
	{SceneVlog, []string{"vlog"}},
	{SceneAppeal, []string{"訴求", "appeal"}},
	{SceneBridge, []string{"ブリッジ", "bridge"}},
}

// ClassifySceneLabel maps free-form scene-type text (e.g. a pasted cell like
// "解説系（30秒〜1分）") to a SceneType. Matching is a case-insensitive
// substring check in priority order insert, vlog, appeal, bridge; anything
// that matches nothing classifies as explanation. The function is total.
func ClassifySceneLabel(label string) SceneType {
	s := strings.ToLower(strings.TrimSpace(label))
	for _, entry := range sceneKeywords {
		for _, kw := range entry.keywords {
			if strings.Contains(s, kw) {
				return entry.sceneType
			}
		}
	}
	return SceneExplanation
}
