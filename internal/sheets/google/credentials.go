package google

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"golang.org/x/oauth2/google"
	drive "google.golang.org/api/drive/v3"
	goption "google.golang.org/api/option"
	gsheet "google.golang.org/api/sheets/v4"
)

const spreadsheetMimeType = "application/vnd.google-apps.spreadsheet"

var scopes = []string{
	gsheet.SpreadsheetsScope,
	drive.DriveFileScope,
	drive.DriveScope,
}

// Config selects the worksheet and the service account used to reach it.
type Config struct {
	SpreadsheetID    string
	SpreadsheetTitle string
	SheetName        string
	CredentialsJSON  string
	CredentialsFile  string
}

// New authenticates with a service account and opens the configured worksheet.
// Without a spreadsheet ID the spreadsheet is looked up by title on Drive.
func New(ctx context.Context, cfg Config, opts ...goption.ClientOption) (*Client, error) {
	if strings.TrimSpace(cfg.SheetName) == "" {
		return nil, errors.New("missing sheet name")
	}
	if len(opts) == 0 {
		creds, err := loadCredentials(ctx, cfg)
		if err != nil {
			return nil, err
		}
		opts = []goption.ClientOption{goption.WithCredentials(creds)}
	}

	svc, err := gsheet.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("create sheets service: %w", err)
	}

	id := strings.TrimSpace(cfg.SpreadsheetID)
	if id == "" {
		dsvc, err := drive.NewService(ctx, opts...)
		if err != nil {
			return nil, fmt.Errorf("create drive service: %w", err)
		}
		id, err = findSpreadsheetByTitle(ctx, dsvc, cfg.SpreadsheetTitle)
		if err != nil {
			return nil, err
		}
	}

	slog.InfoContext(ctx, "Google Sheets table ready", "spreadsheet_id", id, "sheet", cfg.SheetName)
	return NewWithService(svc, id, cfg.SheetName), nil
}

func loadCredentials(ctx context.Context, cfg Config) (*google.Credentials, error) {
	var raw []byte
	switch {
	case strings.TrimSpace(cfg.CredentialsJSON) != "":
		raw = []byte(cfg.CredentialsJSON)
	case strings.TrimSpace(cfg.CredentialsFile) != "":
		b, err := os.ReadFile(cfg.CredentialsFile)
		if err != nil {
			return nil, fmt.Errorf("read credentials file: %w", err)
		}
		raw = b
	default:
		return nil, errors.New("missing service account credentials (set GOOGLE_CREDS_JSON or GOOGLE_CREDS_FILE)")
	}
	creds, err := google.CredentialsFromJSON(ctx, raw, scopes...)
	if err != nil {
		return nil, fmt.Errorf("parse credentials: %w", err)
	}
	return creds, nil
}

func findSpreadsheetByTitle(ctx context.Context, dsvc *drive.Service, title string) (string, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return "", errors.New("missing spreadsheet id and title")
	}
	q := fmt.Sprintf("name = '%s' and mimeType = '%s' and trashed = false",
		strings.ReplaceAll(title, "'", `\'`), spreadsheetMimeType)
	resp, err := dsvc.Files.List().Q(q).Fields("files(id, name)").PageSize(1).Context(ctx).Do()
	if err != nil {
		return "", fmt.Errorf("find spreadsheet %q: %w", title, err)
	}
	if len(resp.Files) == 0 {
		return "", fmt.Errorf("spreadsheet %q not found", title)
	}
	return resp.Files[0].Id, nil
}
