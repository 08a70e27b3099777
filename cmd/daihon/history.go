package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jackzampolin/daihon/internal/history"
	"github.com/jackzampolin/daihon/internal/script"
)

var lessonsFlag string

func init() {
	historySaveCmd.Flags().StringVar(&lessonsFlag, "lessons", "", "what to carry into future drafting prompts")
	historyCmd.AddCommand(
		historyListCmd,
		historySaveCmd,
		historyDeleteCmd,
		historyExportCmd,
		historyImportCmd,
	)
}

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Manage the production history that seeds future prompts",
}

var historyListCmd = &cobra.Command{
	Use:   "list",
	Short: "List saved production records",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := loadApp()
		if err != nil {
			return err
		}
		records := a.history.List()
		if len(records) == 0 {
			fmt.Println("No history yet. Finish a project and run: daihon history save")
			return nil
		}

		rows := make([][]string, 0, len(records))
		for _, r := range records {
			rows = append(rows, []string{
				shortID(r.ID),
				r.CreatedAt.Format("2006-01-02"),
				clip(r.Title, 24),
				r.TemplateID,
				strconv.Itoa(r.SectionCount),
				strconv.Itoa(r.TotalChars),
				clip(r.Lessons, 32),
			})
		}
		fmt.Println(renderTable(
			[]string{"ID", "日付", "タイトル", "テンプレート", "セクション", "文字数", "学び"},
			rows,
			[]columnAlignment{alignLeft, alignLeft, alignLeft, alignLeft, alignRight, alignRight, alignLeft},
		))
		return nil
	},
}

var historySaveCmd = &cobra.Command{
	Use:   "save",
	Short: "Record the current project in the production history",
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
		sections := p.FinalSections()
		if len(sections) == 0 {
			return fmt.Errorf("project %q has no sections to record yet", p.Title)
		}

		rec := history.Record{
			ID:                p.ID,
			CreatedAt:         p.CreatedAt,
			Title:             p.Title,
			TemplateID:        string(p.TemplateID),
			TranscriptExcerpt: excerpt(p.Transcript, 120),
			SectionNames:      script.Names(sections),
			SectionCount:      len(sections),
			TotalChars:        script.TotalChars(sections),
			ReferenceUsed:     p.ReferenceScript != "",
			Lessons:           lessonsFlag,
		}
		if err := a.history.Save(rec); err != nil {
			return err
		}
		fmt.Printf("Saved %q to history (%d records)\n", p.Title, len(a.history.List()))
		return nil
	},
}

var historyDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete one history record",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := loadApp()
		if err != nil {
			return err
		}
		id := args[0]
		for _, r := range a.history.List() {
			if strings.HasPrefix(r.ID, id) {
				id = r.ID
				break
			}
		}
		if err := a.history.Delete(id); err != nil {
			return err
		}
		fmt.Printf("Deleted record %s\n", shortID(id))
		return nil
	},
}

var historyExportCmd = &cobra.Command{
	Use:   "export [file]",
	Short: "Export the history as JSON",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := loadApp()
		if err != nil {
			return err
		}
		data, err := a.history.Export()
		if err != nil {
			return err
		}
		if len(args) == 0 {
			fmt.Println(string(data))
			return nil
		}
		if err := os.WriteFile(args[0], data, 0o644); err != nil {
			return fmt.Errorf("failed to write history export: %w", err)
		}
		fmt.Printf("Exported %d records to %s\n", len(a.history.List()), args[0])
		return nil
	},
}

var historyImportCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Import history records from a JSON export",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := loadApp()
		if err != nil {
			return err
		}
		data, err := os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", args[0], err)
		}
		added, err := a.history.Import(data)
		if err != nil {
			return err
		}
		fmt.Printf("Imported %d new records (%d total)\n", added, len(a.history.List()))
		return nil
	},
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

func excerpt(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit])
}
