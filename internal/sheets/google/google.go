package google

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"regexp"
	"strconv"
	"strings"

	"expensetracker/internal/core"
	ports "expensetracker/internal/sheets"

	gsheet "google.golang.org/api/sheets/v4"
)

const (
	valueInputRaw  = "RAW"
	insertDataRows = "INSERT_ROWS"
)

var cellRefPattern = regexp.MustCompile(`([A-Z]+)(\d+)$`)

// Client is a Table backed by one worksheet of a Google spreadsheet.
type Client struct {
	svc           *gsheet.Service
	spreadsheetID string
	sheetName     string
}

var _ ports.Table = (*Client)(nil)

// NewWithService wraps an already configured Sheets service.
func NewWithService(svc *gsheet.Service, spreadsheetID, sheetName string) *Client {
	return &Client{svc: svc, spreadsheetID: spreadsheetID, sheetName: sheetName}
}

func (c *Client) SpreadsheetID() string {
	return c.spreadsheetID
}

func (c *Client) FetchAll(ctx context.Context) ([]core.Expense, error) {
	values, err := c.readAll(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]core.Expense, 0, len(values))
	for i, raw := range values {
		row := i + 1
		if row <= ports.HeaderRows {
			continue
		}
		cells := toStrings(raw)
		if len(cells) == 0 {
			continue
		}
		e, err := ports.ParseRow(row, cells)
		if err != nil {
			slog.WarnContext(ctx, "Skipping unparsable row", "sheet", c.sheetName, "row", row, "error", err)
			continue
		}
		out = append(out, e)
	}
	return out, nil
}

func (c *Client) AppendRow(ctx context.Context, e core.Expense) (int, error) {
	if c.svc == nil {
		return 0, errors.New("sheets service not initialized")
	}
	vr := &gsheet.ValueRange{Values: [][]any{{e.Amount, string(e.Category), e.Date.String()}}}
	resp, err := c.svc.Spreadsheets.Values.Append(c.spreadsheetID, c.a1("A:C"), vr).
		ValueInputOption(valueInputRaw).
		InsertDataOption(insertDataRows).
		Context(ctx).Do()
	if err != nil {
		return 0, fmt.Errorf("append to sheet %s: %w", c.sheetName, err)
	}
	if resp.Updates == nil {
		return 0, fmt.Errorf("append to sheet %s: response has no updated range", c.sheetName)
	}
	row, err := parseUpdatedRow(resp.Updates.UpdatedRange)
	if err != nil {
		return 0, fmt.Errorf("append to sheet %s: %w", c.sheetName, err)
	}
	return row, nil
}

func (c *Client) UpdateCell(ctx context.Context, row, col int, value string) error {
	if !ports.ValidColumn(col) {
		return fmt.Errorf("invalid column %d", col)
	}
	if row < 1 {
		return fmt.Errorf("invalid row %d", row)
	}
	if c.svc == nil {
		return errors.New("sheets service not initialized")
	}
	var cell any = value
	if col == ports.ColAmount {
		if n, err := strconv.ParseInt(value, 10, 64); err == nil {
			cell = n
		}
	}
	rng := c.a1(fmt.Sprintf("%s%d", columnLetter(col), row))
	vr := &gsheet.ValueRange{Values: [][]any{{cell}}}
	_, err := c.svc.Spreadsheets.Values.Update(c.spreadsheetID, rng, vr).
		ValueInputOption(valueInputRaw).Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("update %s: %w", rng, err)
	}
	return nil
}

func (c *Client) FindRowByValue(ctx context.Context, value string) (int, error) {
	values, err := c.readAll(ctx)
	if err != nil {
		return 0, err
	}
	for i, raw := range values {
		for _, cell := range toStrings(raw) {
			if cell == value {
				return i + 1, nil
			}
		}
	}
	return 0, ports.ErrNotFound
}

func (c *Client) readAll(ctx context.Context) ([][]any, error) {
	if c.svc == nil {
		return nil, errors.New("sheets service not initialized")
	}
	rng := c.a1("A:C")
	resp, err := c.svc.Spreadsheets.Values.Get(c.spreadsheetID, rng).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", rng, err)
	}
	return resp.Values, nil
}

// a1 qualifies ref with the quoted worksheet name.
func (c *Client) a1(ref string) string {
	return fmt.Sprintf("'%s'!%s", strings.ReplaceAll(c.sheetName, "'", "''"), ref)
}

func toStrings(in []any) []string {
	out := make([]string, len(in))
	for i, v := range in {
		out[i] = strings.TrimSpace(fmt.Sprint(v))
	}
	return out
}

// columnLetter converts a 1-based column index to its A1 letters.
func columnLetter(col int) string {
	var b []byte
	for col > 0 {
		col--
		b = append([]byte{byte('A' + col%26)}, b...)
		col /= 26
	}
	return string(b)
}

// parseUpdatedRow extracts the last row number from a range like "expenses!A5:C5".
func parseUpdatedRow(rng string) (int, error) {
	m := cellRefPattern.FindStringSubmatch(rng)
	if m == nil {
		return 0, fmt.Errorf("unexpected updated range %q", rng)
	}
	return strconv.Atoi(m[2])
}
