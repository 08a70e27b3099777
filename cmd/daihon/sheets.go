package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jackzampolin/daihon/internal/config"
	"github.com/jackzampolin/daihon/internal/sheets"
	"github.com/jackzampolin/daihon/internal/tabular"
)

var spreadsheetFlag string

func init() {
	sheetsCmd.PersistentFlags().StringVar(
		&spreadsheetFlag, "spreadsheet", "", "spreadsheet id or URL (default from config)",
	)
	sheetsCmd.AddCommand(sheetsPushCmd, sheetsPullCmd)
}

var sheetsCmd = &cobra.Command{
	Use:   "sheets",
	Short: "Push or pull the script table on a Google spreadsheet",
}

var sheetsPushCmd = &cobra.Command{
	Use:   "push",
	Short: "Write the script table to the spreadsheet",
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
			return fmt.Errorf("nothing to push yet; run daihon split first")
		}

		client, id, err := a.sheetsClient(cmd)
		if err != nil {
			return err
		}
		rows := a.layoutEngine().Rows(sections)
		if err := client.Push(cmd.Context(), id, rows); err != nil {
			return err
		}
		fmt.Printf("Pushed %d rows to spreadsheet %s\n", len(rows), id)
		return nil
	},
}

var sheetsPullCmd = &cobra.Command{
	Use:   "pull",
	Short: "Read the table back from the spreadsheet into the project",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := loadApp()
		if err != nil {
			return err
		}
		m, err := a.machine()
		if err != nil {
			return err
		}

		client, id, err := a.sheetsClient(cmd)
		if err != nil {
			return err
		}
		values, err := client.Pull(cmd.Context(), id)
		if err != nil {
			return err
		}

		rows := tabular.ValuesToRows(values)
		sections := tabular.RowsToSections(rows)
		if len(sections) == 0 {
			return fmt.Errorf("spreadsheet %s has no table rows", id)
		}

		if err := m.ReplaceFinal(sections); err != nil {
			return err
		}
		if err := a.projects.Save(m.Project()); err != nil {
			return err
		}
		fmt.Printf("Pulled %d sections from spreadsheet %s\n", len(sections), id)
		return nil
	},
}

func (a *app) sheetsClient(cmd *cobra.Command) (*sheets.Client, string, error) {
	ref := spreadsheetFlag
	if ref == "" {
		ref = a.cfg.Sheets.SpreadsheetID
	}
	id, err := sheets.SpreadsheetIDFromURL(ref)
	if err != nil {
		return nil, "", fmt.Errorf("%w; pass --spreadsheet or set sheets.spreadsheet_id", err)
	}

	cfg := sheets.Config{
		CredentialsFile: config.ResolveEnvVars(a.cfg.Sheets.CredentialsFile),
		Logger:          a.logger,
	}
	if inline := os.Getenv("GOOGLE_SERVICE_ACCOUNT_JSON"); inline != "" {
		cfg.CredentialsJSON = []byte(inline)
	}

	client, err := sheets.NewClient(cmd.Context(), cfg)
	if err != nil {
		return nil, "", fmt.Errorf("%w; daihon export writes the same table as CSV", err)
	}
	return client, id, nil
}
