package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/jackzampolin/daihon/internal/config"
	"github.com/jackzampolin/daihon/internal/drafting"
	"github.com/jackzampolin/daihon/internal/history"
	"github.com/jackzampolin/daihon/internal/home"
	"github.com/jackzampolin/daihon/internal/wizard"
	"github.com/jackzampolin/daihon/version"
)

var (
	cfgFile      string
	homeDir      string
	projectID    string
	providerName string
)

var rootCmd = &cobra.Command{
	Use:   "daihon",
	Short: "Interview transcripts into time-budgeted documentary scripts",
	Long: `Daihon turns raw interview transcripts into structured documentary
scripts and exports them as eight-column spreadsheet tables.

The pipeline:
  - Split the transcript into a five-part skeleton
  - Subdivide onto a narrative template (flow, campbell, cinderella)
  - Improve the wording against an optional reference script
  - Lay the sections out as timed rows and export CSV or Google Sheets`,
	Version: version.GitRelease,
}

func init() {
	rootCmd.PersistentFlags().StringVar(
		&cfgFile, "config", "", "config file (default: ./config.yaml or ~/.daihon/config.yaml)",
	)
	rootCmd.PersistentFlags().StringVar(
		&homeDir, "home", "", "daihon home directory (default: ~/.daihon)",
	)
	rootCmd.PersistentFlags().StringVar(
		&projectID, "project", "", "project id (default: most recently updated project)",
	)
	rootCmd.PersistentFlags().StringVar(
		&providerName, "provider", "", "drafting provider: gemini, openai or none (default from config)",
	)

	rootCmd.AddCommand(
		newCmd,
		splitCmd,
		subdivideCmd,
		improveCmd,
		skipCmd,
		backCmd,
		showCmd,
		exportCmd,
		pasteCmd,
		sheetsCmd,
		historyCmd,
		templatesCmd,
		versionCmd,
	)
}

// app bundles everything a command needs: resolved paths, configuration, and
// the stores.
type app struct {
	home     *home.Dir
	cfg      *config.Config
	projects *wizard.Store
	history  *history.Store
	logger   *slog.Logger
}

func loadApp() (*app, error) {
	dir, err := home.New(homeDir)
	if err != nil {
		return nil, err
	}
	if err := dir.EnsureExists(); err != nil {
		return nil, err
	}

	file := cfgFile
	if file == "" && dir.ConfigExists() {
		file = dir.ConfigPath()
	}
	manager, err := config.NewManager(file)
	if err != nil {
		return nil, err
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))

	hist, err := history.NewStore(dir.HistoryPath(), logger)
	if err != nil {
		return nil, err
	}

	return &app{
		home:     dir,
		cfg:      manager.Get(),
		projects: wizard.NewStore(dir.ProjectsPath(), logger),
		history:  hist,
		logger:   logger,
	}, nil
}

// machine loads the selected project (or the latest) wrapped in a Machine
// carrying the history digest.
func (a *app) machine() (*wizard.Machine, error) {
	var p *wizard.Project
	var err error
	if projectID != "" {
		p, err = a.projects.Load(projectID)
	} else {
		p, err = a.projects.Latest()
	}
	if err != nil {
		return nil, err
	}
	m := wizard.NewMachine(p, a.logger)
	m.SetHistoryDigest(a.history.Digest(history.DigestLimit))
	return m, nil
}

// service resolves the drafting provider from the --provider flag or the
// configured default. "none" returns nil, which selects the deterministic
// fallbacks.
func (a *app) service() (drafting.Service, error) {
	name := providerName
	if name == "" {
		name = a.cfg.Defaults.Provider
	}
	switch name {
	case "", "none":
		return nil, nil
	case drafting.GeminiName:
		p := a.cfg.Providers[name]
		return drafting.WithRetry(drafting.NewGeminiClient(drafting.GeminiConfig{
			APIKey:      firstNonEmpty(a.cfg.ResolveAPIKey(name), os.Getenv("GEMINI_API_KEY")),
			Model:       p.Model,
			Temperature: float32(p.Temperature),
			Logger:      a.logger,
		})), nil
	case drafting.OpenAIName:
		p := a.cfg.Providers[name]
		return drafting.WithRetry(drafting.NewOpenAIClient(drafting.OpenAIConfig{
			APIKey:      firstNonEmpty(a.cfg.ResolveAPIKey(name), os.Getenv("OPENAI_API_KEY")),
			Model:       p.Model,
			Temperature: p.Temperature,
			Logger:      a.logger,
		})), nil
	default:
		return nil, fmt.Errorf("unknown provider %q (want gemini, openai or none)", name)
	}
}

// describeDraftingError adds recovery guidance to provider failures.
func describeDraftingError(err error) error {
	switch {
	case errors.Is(err, drafting.ErrNoCredentials):
		return fmt.Errorf("%w\nRun with --provider none for the offline split, or configure an API key", err)
	case errors.Is(err, drafting.ErrMalformedResponse):
		return fmt.Errorf("%w\nThe project is unchanged; run the command again to retry", err)
	default:
		return err
	}
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
