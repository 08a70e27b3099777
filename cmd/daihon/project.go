package main

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/jackzampolin/daihon/internal/layout"
	"github.com/jackzampolin/daihon/internal/script"
	"github.com/jackzampolin/daihon/internal/tabular"
	"github.com/jackzampolin/daihon/internal/wizard"
)

var (
	transcriptFile string
	templateFlag   string
	referenceFile  string
	exportPath     string
)

func init() {
	newCmd.Flags().StringVarP(&transcriptFile, "transcript", "t", "", "transcript file (default: read stdin)")
	subdivideCmd.Flags().StringVar(&templateFlag, "template", "", "narrative template: flow, campbell or cinderella (default from config)")
	improveCmd.Flags().StringVarP(&referenceFile, "reference", "r", "", "reference script file for tone")
	exportCmd.Flags().StringVarP(&exportPath, "out", "o", "", "output file (default: 脚本_YYYY-MM-DD.csv, \"-\" for stdout)")
}

var newCmd = &cobra.Command{
	Use:   "new [title]",
	Short: "Start a project from an interview transcript",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := loadApp()
		if err != nil {
			return err
		}

		title := "無題の台本"
		if len(args) > 0 {
			title = args[0]
		}

		text, err := readInput(transcriptFile)
		if err != nil {
			return err
		}

		p := wizard.NewProject(title)
		m := wizard.NewMachine(p, a.logger)
		if err := m.SetTranscript(text); err != nil {
			return err
		}
		if err := a.projects.Save(p); err != nil {
			return err
		}

		fmt.Printf("Created project %s (%q, %d chars)\n", p.ID, p.Title, len([]rune(p.Transcript)))
		fmt.Println("Next: daihon split")
		return nil
	},
}

var splitCmd = &cobra.Command{
	Use:   "split",
	Short: "Divide the transcript into the five-part skeleton",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := loadApp()
		if err != nil {
			return err
		}
		m, err := a.machine()
		if err != nil {
			return err
		}
		svc, err := a.service()
		if err != nil {
			return err
		}

		if err := m.Split(cmd.Context(), svc); err != nil {
			return describeDraftingError(err)
		}
		if err := a.projects.Save(m.Project()); err != nil {
			return err
		}

		printSections(m.Project().FiveSections)
		fmt.Println("Next: daihon subdivide --template flow|campbell|cinderella")
		return nil
	},
}

var subdivideCmd = &cobra.Command{
	Use:   "subdivide",
	Short: "Map the skeleton onto a narrative template",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := loadApp()
		if err != nil {
			return err
		}
		m, err := a.machine()
		if err != nil {
			return err
		}
		svc, err := a.service()
		if err != nil {
			return err
		}

		id := templateFlag
		if id == "" {
			id = a.cfg.Defaults.Template
		}
		if err := m.Subdivide(cmd.Context(), svc, script.TemplateID(id)); err != nil {
			return describeDraftingError(err)
		}
		if err := a.projects.Save(m.Project()); err != nil {
			return err
		}

		printSections(m.Project().DetailedSections)
		fmt.Println("Next: daihon improve (or daihon skip to finish as-is)")
		return nil
	},
}

var improveCmd = &cobra.Command{
	Use:   "improve",
	Short: "Rewrite the script for engagement, optionally matching a reference",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := loadApp()
		if err != nil {
			return err
		}
		m, err := a.machine()
		if err != nil {
			return err
		}
		svc, err := a.service()
		if err != nil {
			return err
		}
		if svc == nil {
			return fmt.Errorf("improve needs a drafting provider; pass --provider gemini or --provider openai")
		}

		var reference string
		if referenceFile != "" {
			data, err := os.ReadFile(referenceFile)
			if err != nil {
				return fmt.Errorf("failed to read reference script: %w", err)
			}
			reference = string(data)
		}

		if err := m.Improve(cmd.Context(), svc, reference); err != nil {
			return describeDraftingError(err)
		}
		if err := a.projects.Save(m.Project()); err != nil {
			return err
		}

		printSections(m.Project().ImprovedSections)
		fmt.Println("Next: daihon skip to mark ready, then daihon export")
		return nil
	},
}

var skipCmd = &cobra.Command{
	Use:   "skip",
	Short: "Mark the script ready without (further) improvement",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := loadApp()
		if err != nil {
			return err
		}
		m, err := a.machine()
		if err != nil {
			return err
		}
		if err := m.Skip(); err != nil {
			return err
		}
		if err := a.projects.Save(m.Project()); err != nil {
			return err
		}
		fmt.Println("Script marked ready. Next: daihon export or daihon sheets push")
		return nil
	},
}

var backCmd = &cobra.Command{
	Use:   "back <stage>",
	Short: "Rewind to an earlier stage (transcript, split, subdivided, improved)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := loadApp()
		if err != nil {
			return err
		}
		m, err := a.machine()
		if err != nil {
			return err
		}
		if err := m.Back(wizard.Stage(args[0])); err != nil {
			return err
		}
		if err := a.projects.Save(m.Project()); err != nil {
			return err
		}
		fmt.Printf("Rewound to %s\n", args[0])
		return nil
	},
}

var showCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the current script as a timed table",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := loadApp()
		if err != nil {
			return err
		}
		m, err := a.machine()
		if err != nil {
			return err
		}
		p := m.Project()

		sections := p.CurrentSections()
		if len(sections) == 0 {
			fmt.Printf("Project %q is at stage %s with no sections yet. Next: daihon split\n", p.Title, p.Stage)
			return nil
		}

		rows := a.layoutEngine().Rows(sections)
		display := make([][]string, len(rows))
		for i, r := range rows {
			display[i] = []string{
				r.Time,
				clip(r.Scene, 16),
				clip(r.Content, 24),
				r.SceneType,
				strconv.Itoa(r.Seconds),
				r.Duration,
				strconv.Itoa(r.CharCount),
				clip(r.Script, 32),
			}
		}
		fmt.Println(renderTable(
			[]string{"時間", "シーン", "内容", "シーン種別", "秒数", "所要時間", "文字数", "原稿"},
			display,
			[]columnAlignment{alignLeft, alignLeft, alignLeft, alignLeft, alignRight, alignRight, alignRight, alignLeft},
		))
		fmt.Printf("%s  stage=%s  total=%d chars\n", p.Title, p.Stage, script.TotalChars(sections))
		return nil
	},
}

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the script as a CSV table",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := loadApp()
		if err != nil {
			return err
		}
		m, err := a.machine()
		if err != nil {
			return err
		}

		sections := m.Project().FinalSections()
		if len(sections) == 0 {
			return fmt.Errorf("nothing to export yet; run daihon split first")
		}

		csv := tabular.RowsToCSV(a.layoutEngine().Rows(sections))
		if exportPath == "-" {
			fmt.Println(csv)
			return nil
		}

		path := exportPath
		if path == "" {
			path = fmt.Sprintf("脚本_%s.csv", time.Now().Format("2006-01-02"))
		}
		if err := os.WriteFile(path, []byte(csv+"\n"), 0o644); err != nil {
			return fmt.Errorf("failed to write CSV: %w", err)
		}
		fmt.Printf("Exported %d rows to %s\n", len(sections), path)
		return nil
	},
}

var pasteCmd = &cobra.Command{
	Use:   "paste",
	Short: "Read an edited table from stdin back into the project",
	Long: `Reads tab- or comma-separated table text (as copied from a spreadsheet)
from stdin and replaces the project's sections with it.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := loadApp()
		if err != nil {
			return err
		}
		m, err := a.machine()
		if err != nil {
			return err
		}

		text, err := readInput("")
		if err != nil {
			return err
		}
		sections := tabular.SectionsFromPaste(text)
		if len(sections) == 0 {
			return fmt.Errorf("no table rows found in input")
		}

		if err := m.ReplaceFinal(sections); err != nil {
			return err
		}
		if err := a.projects.Save(m.Project()); err != nil {
			return err
		}
		fmt.Printf("Replaced script with %d pasted sections; project marked ready\n", len(sections))
		return nil
	},
}

var templatesCmd = &cobra.Command{
	Use:   "templates",
	Short: "List the narrative templates",
	Run: func(cmd *cobra.Command, args []string) {
		rows := make([][]string, 0, 3)
		for _, t := range script.Templates() {
			rows = append(rows, []string{
				string(t.ID),
				t.Label,
				strconv.Itoa(len(t.Sections)),
				clip(t.Description, 48),
			})
		}
		fmt.Println(renderTable(
			[]string{"ID", "名前", "セクション", "説明"},
			rows,
			[]columnAlignment{alignLeft, alignLeft, alignRight, alignLeft},
		))
	},
}

func (a *app) layoutEngine() *layout.Engine {
	return &layout.Engine{
		StartMinute: a.cfg.Layout.StartMinute,
		StartSecond: a.cfg.Layout.StartSecond,
	}
}

func printSections(sections []script.Section) {
	for i, s := range sections {
		fmt.Printf("%2d. %-20s %5d chars\n", i+1, s.Name, s.CharCount())
	}
}

// readInput reads a file, or stdin when path is empty.
func readInput(path string) (string, error) {
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return "", fmt.Errorf("failed to read %s: %w", path, err)
		}
		return string(data), nil
	}
	data, err := io.ReadAll(os.Stdin)
	if err != nil {
		return "", fmt.Errorf("failed to read stdin: %w", err)
	}
	return string(data), nil
}
