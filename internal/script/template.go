package script

import (
	"errors"
	"fmt"
)

// ErrTemplateNotFound is returned when a template id is not in the registry.
var ErrTemplateNotFound = errors.New("template not found")

// TemplateID identifies one of the fixed narrative templates.
type TemplateID string

const (
	// TemplateFlow is the five-section documentary flow
	// (greeting → current activity → trigger → origin → future goals).
	TemplateFlow TemplateID = "flow"
	// TemplateCampbell is the hero's-journey structure (8 sections).
	TemplateCampbell TemplateID = "campbell"
	// TemplateCinderella is the rags-to-riches structure (7 sections).
	TemplateCinderella TemplateID = "cinderella"
)

// Template is one narrative shape: an ordered sequence of section
// definitions. Order is significant, it defines both narrative order and the
// row order of the exported table.
type Template struct {
	ID          TemplateID
	Label       string
	Description string
	Sections    []SectionDefinition
}

var flowTemplate = Template{
	ID:          TemplateFlow,
	Label:       "密着の流れ（5セクション）",
	Description: "冒頭挨拶→現在の活動→きっかけ→原点（幼少期）→今後の目標。各セクション内で脳科学の構造に分けていく。",
	Sections: []SectionDefinition{
		{
			ID:             "flow-1",
			Name:           "冒頭の挨拶",
			Description:    "挨拶・自己紹介で興味を引く",
			Brain:          "ドーパミン＋扁桃体（軽）",
			DurationLabel:  "20〜60秒",
			DurationSecMin: 20,
			DurationSecMax: 60,
			CharsMin:       CharsFor(20),
			CharsMax:       CharsFor(60),
			Point:          "軽く引きつけ、自分ごと化の入口に",
			SceneType:      SceneExplanation,
		},
		{
			ID:             "flow-2",
			Name:           "現在の活動",
			Description:    "今何をしているか・実績・日常",
			Brain:          "扁桃体＋共感",
			DurationLabel:  "1〜3分",
			DurationSecMin: 60,
			DurationSecMax: 180,
			CharsMin:       CharsFor(60),
			CharsMax:       CharsFor(180),
			Point:          "重要度と共感で「この人」を伝える",
			SceneType:      SceneExplanation,
		},
		{
			ID:             "flow-3",
			Name:           "活動のきっかけ",
			Description:    "なぜこの活動を始めたか・転機",
			Brain:          "共感（ミラーニューロン）",
			DurationLabel:  "1〜2分",
			DurationSecMin: 60,
			DurationSecMax: 120,
			CharsMin:       CharsFor(60),
			CharsMax:       CharsFor(120),
			Point:          "感情の動きで共感を深める",
			SceneType:      SceneAppeal,
		},
		{
			ID:             "flow-4",
			Name:           "活動を始めるにあたっての原点（幼少期）",
			Description:    "ルーツ・幼少期・土台になった経験",
			Brain:          "共感＋前頭前野",
			DurationLabel:  "1〜2分",
			DurationSecMin: 60,
			DurationSecMax: 120,
			CharsMin:       CharsFor(60),
			CharsMax:       CharsFor(120),
			Point:          "意味づけと共感で「なぜ今の自分か」を",
			SceneType:      SceneExplanation,
		},
		{
			ID:             "flow-5",
			Name:           "今後の目標",
			Description:    "これから目指すこと・メッセージ",
			Brain:          "海馬",
			DurationLabel:  "30秒〜1分",
			DurationSecMin: 30,
			DurationSecMax: 60,
			CharsMin:       CharsFor(30),
			CharsMax:       CharsFor(60),
			Point:          "記憶に残る締め・安心で終わる",
			SceneType:      SceneBridge,
		},
	},
}

var campbellTemplate = Template{
	ID:          TemplateCampbell,
	Label:       "キャンベル（ヒーローズジャーニー）",
	Description: "成長・挑戦・ビジネス・男性向け密着。危機・戦略の脳が主役。",
	Sections: []SectionDefinition{
		{
			ID:             "campbell-1",
			Name:           "日常世界",
			Description:    "まだ変化のない日常",
			Brain:          "共感（ミラーニューロン）",
			DurationLabel:  "1〜3分",
			DurationSecMin: 60,
			DurationSecMax: 180,
			CharsMin:       CharsFor(60),
			CharsMax:       CharsFor(180),
			Point:          "安心ゾーン。ここが長くてもOK",
			SceneType:      SceneExplanation,
		},
		{
			ID:             "campbell-2",
			Name:           "冒険の呼びかけ",
			Description:    "違和感・事件が起きる",
			Brain:          "ドーパミン＋軽い扁桃体",
			DurationLabel:  "20〜40秒",
			DurationSecMin: 20,
			DurationSecMax: 40,
			CharsMin:       CharsFor(20),
			CharsMax:       CharsFor(40),
			SceneType:      SceneExplanation,
		},
		{
			ID:             "campbell-3",
			Name:           "冒険の拒否",
			Description:    "怖い・無理・できない",
			Brain:          "共感（ミラーニューロン）",
			DurationLabel:  "1〜2分",
			DurationSecMin: 60,
			DurationSecMax: 120,
			CharsMin:       CharsFor(60),
			CharsMax:       CharsFor(120),
			SceneType:      SceneExplanation,
		},
		{
			ID:             "campbell-4",
			Name:           "師との出会い",
			Description:    "考え方・ヒントを得る",
			Brain:          "前頭前野（軽）",
			DurationLabel:  "30〜60秒",
			DurationSecMin: 30,
			DurationSecMax: 60,
			CharsMin:       CharsFor(30),
			CharsMax:       CharsFor(60),
			SceneType:      SceneExplanation,
		},
		{
			ID:             "campbell-5",
			Name:           "試練と停滞",
			Description:    "失敗・迷い・感情の上下",
			Brain:          "共感＋扁桃体",
			DurationLabel:  "2〜4分",
			DurationSecMin: 120,
			DurationSecMax: 240,
			CharsMin:       CharsFor(120),
			CharsMax:       CharsFor(240),
			SceneType:      SceneAppeal,
		},
		{
			ID:             "campbell-6",
			Name:           "最大の試練",
			Description:    "戻れない選択・喪失の可能性",
			Brain:          "扁桃体（強）",
			DurationLabel:  "20〜40秒",
			DurationSecMin: 20,
			DurationSecMax: 40,
			CharsMin:       CharsFor(20),
			CharsMax:       CharsFor(40),
			SceneType:      SceneAppeal,
		},
		{
			ID:             "campbell-7",
			Name:           "報酬・理解",
			Description:    "変化に気づく",
			Brain:          "ドーパミン＋前頭前野",
			DurationLabel:  "40〜90秒",
			DurationSecMin: 40,
			DurationSecMax: 90,
			CharsMin:       CharsFor(40),
			CharsMax:       CharsFor(90),
			SceneType:      SceneAppeal,
		},
		{
			ID:             "campbell-8",
			Name:           "帰還・余韻",
			Description:    "変わった日常に戻る",
			Brain:          "海馬",
			DurationLabel:  "20〜40秒",
			DurationSecMin: 20,
			DurationSecMax: 40,
			CharsMin:       CharsFor(20),
			CharsMax:       CharsFor(40),
			Point:          "「達成」より「安心・余韻」を優先すると記憶に残る",
			SceneType:      SceneBridge,
		},
	},
}

var cinderellaTemplate = Template{
	ID:          TemplateCinderella,
	Label:       "シンデレラストーリー",
	Description: "自己理解・ライフスタイル・美容・キャリア・女性向け密着。共感・記憶の脳が主役。",
	Sections: []SectionDefinition{
		{
			ID:             "cinderella-1",
			Name:           "評価されない日常",
			Description:    "まだ変化のない日常",
			Brain:          "共感の脳",
			DurationLabel:  "1〜3分",
			DurationSecMin: 60,
			DurationSecMax: 180,
			CharsMin:       CharsFor(60),
			CharsMax:       CharsFor(180),
			Point:          "ここが長くてもOK。安心ゾーン",
			SceneType:      SceneExplanation,
		},
		{
			ID:             "cinderella-2",
			Name:           "理不尽・抑圧",
			Description:    "理不尽な扱い",
			Brain:          "扁桃体（怒り）",
			DurationLabel:  "30秒〜1分",
			DurationSecMin: 30,
			DurationSecMax: 60,
			CharsMin:       CharsFor(30),
			CharsMax:       CharsFor(60),
			Point:          "怒りは短く強く",
			SceneType:      SceneExplanation,
		},
		{
			ID:             "cinderella-3",
			Name:           "可能性の提示",
			Description:    "未来をチラ見せ",
			Brain:          "ドーパミン",
			DurationLabel:  "30秒",
			DurationSecMin: 30,
			DurationSecMax: 30,
			CharsMin:       CharsFor(30),
			CharsMax:       CharsFor(30),
			Point:          "未来をチラ見せするだけ",
			SceneType:      SceneExplanation,
		},
		{
			ID:             "cinderella-4",
			Name:           "行けない理由",
			Description:    "共感を深める",
			Brain:          "共感の脳",
			DurationLabel:  "1〜2分",
			DurationSecMin: 60,
			DurationSecMax: 120,
			CharsMin:       CharsFor(60),
			CharsMax:       CharsFor(120),
			Point:          "共感を深める最重要パート",
			SceneType:      SceneExplanation,
		},
		{
			ID:             "cinderella-5",
			Name:           "視点の変化（魔法）",
			Description:    "考え方・ヒント",
			Brain:          "前頭前野＋ドーパミン",
			DurationLabel:  "30秒〜1分",
			DurationSecMin: 30,
			DurationSecMax: 60,
			CharsMin:       CharsFor(30),
			CharsMax:       CharsFor(60),
			Point:          "教えない・断定しない",
			SceneType:      SceneAppeal,
		},
		{
			ID:             "cinderella-6",
			Name:           "失う不安",
			Description:    "緊張・扁桃体",
			Brain:          "扁桃体",
			DurationLabel:  "30秒〜1分",
			DurationSecMin: 30,
			DurationSecMax: 60,
			CharsMin:       CharsFor(30),
			CharsMax:       CharsFor(60),
			SceneType:      SceneAppeal,
		},
		{
			ID:             "cinderella-7",
			Name:           "ラスト（回復）",
			Description:    "本来の自分が見つかる",
			Brain:          "海馬",
			DurationLabel:  "30秒〜1分",
			DurationSecMin: 30,
			DurationSecMax: 60,
			CharsMin:       CharsFor(30),
			CharsMax:       CharsFor(60),
			Point:          "成功より「安心」で終わる",
			SceneType:      SceneBridge,
		},
	},
}

// templateOrder fixes the listing order of the registry.
var templateOrder = []TemplateID{TemplateFlow, TemplateCampbell, TemplateCinderella}

var templates = map[TemplateID]*Template{
	TemplateFlow:       &flowTemplate,
	TemplateCampbell:   &campbellTemplate,
	TemplateCinderella: &cinderellaTemplate,
}

// Templates returns the registered templates in fixed order.
func Templates() []*Template {
	out := make([]*Template, 0, len(templateOrder))
	for _, id := range templateOrder {
		out = append(out, templates[id])
	}
	return out
}

// LookupTemplate returns the template for the given id.
// Unknown ids return ErrTemplateNotFound; callers that want a default must
// choose one explicitly rather than relying on silent substitution.
func LookupTemplate(id TemplateID) (*Template, error) {
	tmpl, ok := templates[id]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrTemplateNotFound, id)
	}
	return tmpl, nil
}

// Instantiate returns a fresh ordered Section list for the template, with
// content initialized to the empty string. The canonical definitions are
// copied, mutating the result never touches the registry.
func Instantiate(id TemplateID) ([]Section, error) {
	tmpl, err := LookupTemplate(id)
	if err != nil {
		return nil, err
	}
	sections := make([]Section, len(tmpl.Sections))
	for i, def := range tmpl.Sections {
		sections[i] = Section{SectionDefinition: def}
	}
	return sections, nil
}
