// Package sheets pushes and pulls script tables to a Google spreadsheet. The
// CSV export path never depends on this package, so missing credentials only
// disable the spreadsheet backend.
package sheets

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"regexp"

	"google.golang.org/api/option"
	sheetsapi "google.golang.org/api/sheets/v4"

	"github.com/jackzampolin/daihon/internal/layout"
	"github.com/jackzampolin/daihon/internal/tabular"
)

// Sentinel errors for the spreadsheet backend.
var (
	// ErrNoCredentials means no service-account JSON is configured. CSV
	// export remains available.
	ErrNoCredentials = errors.New("spreadsheet credentials not configured")

	// ErrNoSpreadsheetID means neither a spreadsheet id nor a URL carrying
	// one was given.
	ErrNoSpreadsheetID = errors.New("no spreadsheet id")
)

// Table rows start at row 11; rows 1-10 hold the sheet's own headers and
// summary cells. Pull reads from row 10 so a header row, when present, can be
// recognized and skipped.
const (
	dataStartRow = 11
	pullRange    = "A10:H200"
)

var spreadsheetURLPattern = regexp.MustCompile(`/d/([a-zA-Z0-9_-]+)`)

// SpreadsheetIDFromURL extracts the spreadsheet id from a full URL. A string
// without the /d/ segment is assumed to already be an id.
func SpreadsheetIDFromURL(s string) (string, error) {
	if s == "" {
		return "", ErrNoSpreadsheetID
	}
	if m := spreadsheetURLPattern.FindStringSubmatch(s); m != nil {
		return m[1], nil
	}
	return s, nil
}

// Config holds configuration for the spreadsheet client.
type Config struct {
	CredentialsFile string // service-account JSON path
	CredentialsJSON []byte // inline service-account JSON, wins over the file
	Logger          *slog.Logger
}

// Client talks to the Google Sheets API.
type Client struct {
	svc    *sheetsapi.Service
	logger *slog.Logger
}

// NewClient creates a spreadsheet client from service-account credentials.
// Reports ErrNoCredentials when neither inline JSON nor a readable file is
// configured, so callers can suggest CSV export instead.
func NewClient(ctx context.Context, cfg Config) (*Client, error) {
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}

	creds := cfg.CredentialsJSON
	if len(creds) == 0 {
		if cfg.CredentialsFile == "" {
			return nil, fmt.Errorf("%w: set sheets.credentials_file or use CSV export", ErrNoCredentials)
		}
		data, err := os.ReadFile(cfg.CredentialsFile)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrNoCredentials, err)
		}
		creds = data
	}

	svc, err := sheetsapi.NewService(ctx, option.WithCredentialsJSON(creds))
	if err != nil {
		return nil, fmt.Errorf("failed to create sheets service: %w", err)
	}
	return &Client{svc: svc, logger: cfg.Logger}, nil
}

// Push writes the table rows starting at row 11, replacing whatever is there.
// Repeating a push with the same rows is a no-op for the sheet's content.
func (c *Client) Push(ctx context.Context, spreadsheetID string, rows []layout.Row) error {
	if spreadsheetID == "" {
		return ErrNoSpreadsheetID
	}

	values := tabular.RowsToValues(rows)
	cells := make([][]any, len(values))
	for i, row := range values {
		cells[i] = make([]any, len(row))
		for j, cell := range row {
			cells[i][j] = cell
		}
	}

	writeRange := fmt.Sprintf("A%d:H%d", dataStartRow, dataStartRow+len(rows))
	_, err := c.svc.Spreadsheets.Values.
		Update(spreadsheetID, writeRange, &sheetsapi.ValueRange{Values: cells}).
		ValueInputOption("USER_ENTERED").
		Context(ctx).
		Do()
	if err != nil {
		return fmt.Errorf("failed to push rows: %w", err)
	}

	c.logger.Info("pushed rows to spreadsheet",
		"spreadsheet", spreadsheetID,
		"rows", len(rows),
		"range", writeRange,
	)
	return nil
}

// Pull reads the table region and returns the cell values as strings, ready
// for tabular.ValuesToRows. Blank trailing rows inside the range are dropped.
func (c *Client) Pull(ctx context.Context, spreadsheetID string) ([][]string, error) {
	if spreadsheetID == "" {
		return nil, ErrNoSpreadsheetID
	}

	resp, err := c.svc.Spreadsheets.Values.
		Get(spreadsheetID, pullRange).
		Context(ctx).
		Do()
	if err != nil {
		return nil, fmt.Errorf("failed to pull rows: %w", err)
	}

	var values [][]string
	for _, row := range resp.Values {
		cells := make([]string, len(row))
		blank := true
		for i, cell := range row {
			cells[i] = fmt.Sprint(cell)
			if cells[i] != "" {
				blank = false
			}
		}
		if blank {
			continue
		}
		values = append(values, cells)
	}

	c.logger.Info("pulled rows from spreadsheet",
		"spreadsheet", spreadsheetID,
		"rows", len(values),
	)
	return values, nil
}
