package google

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	goption "google.golang.org/api/option"

	"expensetracker/internal/core"
	ports "expensetracker/internal/sheets"
)

const testSpreadsheetID = "sheet-123"

// fakeSheets emulates the subset of the Sheets and Drive REST APIs the client uses.
type fakeSheets struct {
	mu     sync.Mutex
	rows   [][]string
	ranges []string
	files  map[string]string
}

func newFakeSheets(rows ...[]string) *fakeSheets {
	return &fakeSheets{rows: append([][]string{{"Amount", "Category", "Date"}}, rows...)}
}

func (f *fakeSheets) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if r.URL.Path == "/files" {
		f.listFiles(w, r)
		return
	}
	prefix := "/v4/spreadsheets/" + testSpreadsheetID + "/values/"
	if !strings.HasPrefix(r.URL.Path, prefix) {
		http.NotFound(w, r)
		return
	}
	rng := strings.TrimPrefix(r.URL.Path, prefix)
	f.ranges = append(f.ranges, rng)

	switch {
	case r.Method == http.MethodGet:
		values := make([][]any, len(f.rows))
		for i, row := range f.rows {
			for _, c := range row {
				values[i] = append(values[i], c)
			}
		}
		writeJSON(w, map[string]any{"range": rng, "majorDimension": "ROWS", "values": values})
	case r.Method == http.MethodPost && strings.HasSuffix(rng, ":append"):
		body := decodeValues(r)
		f.rows = append(f.rows, body[0])
		n := len(f.rows)
		writeJSON(w, map[string]any{
			"spreadsheetId": testSpreadsheetID,
			"updates":       map[string]any{"updatedRange": fmt.Sprintf("expenses!A%d:C%d", n, n), "updatedRows": 1},
		})
	case r.Method == http.MethodPut:
		m := cellRefPattern.FindStringSubmatch(rng)
		if m == nil {
			http.Error(w, "bad range", http.StatusBadRequest)
			return
		}
		row, _ := strconv.Atoi(m[2])
		col := int(m[1][0]-'A') + 1
		if row > len(f.rows) {
			http.Error(w, "row out of range", http.StatusBadRequest)
			return
		}
		f.rows[row-1][col-1] = decodeValues(r)[0][0]
		writeJSON(w, map[string]any{"updatedRange": rng, "updatedCells": 1})
	default:
		http.Error(w, "unsupported", http.StatusMethodNotAllowed)
	}
}

func (f *fakeSheets) listFiles(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query().Get("q")
	var files []map[string]string
	for name, id := range f.files {
		if strings.Contains(q, "name = '"+name+"'") {
			files = append(files, map[string]string{"id": id, "name": name})
		}
	}
	writeJSON(w, map[string]any{"files": files})
}

func decodeValues(r *http.Request) [][]string {
	var body struct {
		Values [][]any `json:"values"`
	}
	_ = json.NewDecoder(r.Body).Decode(&body)
	out := make([][]string, len(body.Values))
	for i, row := range body.Values {
		for _, v := range row {
			out[i] = append(out[i], fmt.Sprint(v))
		}
	}
	return out
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}

func testClientOptions(srv *httptest.Server) []goption.ClientOption {
	return []goption.ClientOption{
		goption.WithEndpoint(srv.URL + "/"),
		goption.WithHTTPClient(srv.Client()),
		goption.WithoutAuthentication(),
	}
}

func newTestClient(t *testing.T, fake *fakeSheets) *Client {
	t.Helper()
	srv := httptest.NewServer(fake)
	t.Cleanup(srv.Close)
	c, err := New(context.Background(), Config{SpreadsheetID: testSpreadsheetID, SheetName: "expenses"}, testClientOptions(srv)...)
	require.NoError(t, err)
	return c
}

func TestFetchAll(t *testing.T) {
	fake := newFakeSheets(
		[]string{"100", "Food", "2023-01-05"},
		[]string{"oops", "Food", "2023-01-06"},
		[]string{"200", "Housing", "2023-02-01"},
	)
	c := newTestClient(t, fake)

	records, err := c.FetchAll(context.Background())
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, core.Expense{Amount: 100, Category: core.Food, Date: core.NewDate(2023, 1, 5), Row: 2}, records[0])
	assert.Equal(t, 4, records[1].Row)
	assert.Equal(t, "'expenses'!A:C", fake.ranges[0])
}

func TestAppendRow(t *testing.T) {
	fake := newFakeSheets([]string{"100", "Food", "2023-01-05"})
	c := newTestClient(t, fake)

	row, err := c.AppendRow(context.Background(), core.Expense{Amount: 42, Category: core.Gifts, Date: core.NewDate(2023, 3, 1)})
	require.NoError(t, err)
	assert.Equal(t, 3, row)
	assert.Equal(t, []string{"42", "Gifts", "2023-03-01"}, fake.rows[2])
}

func TestUpdateCell(t *testing.T) {
	fake := newFakeSheets([]string{"100", "Food", "2023-01-05"})
	c := newTestClient(t, fake)
	ctx := context.Background()

	require.NoError(t, c.UpdateCell(ctx, 2, ports.ColCategory, "Debt"))
	require.NoError(t, c.UpdateCell(ctx, 2, ports.ColAmount, "150"))
	assert.Equal(t, []string{"150", "Debt", "2023-01-05"}, fake.rows[1])
	assert.Contains(t, fake.ranges, "'expenses'!B2")

	assert.Error(t, c.UpdateCell(ctx, 2, 7, "x"))
}

func TestFindRowByValue(t *testing.T) {
	fake := newFakeSheets(
		[]string{"100", "Food", "2023-01-05"},
		[]string{"50", "Gifts", "2023-01-05"},
	)
	c := newTestClient(t, fake)
	ctx := context.Background()

	row, err := c.FindRowByValue(ctx, "2023-01-05")
	require.NoError(t, err)
	assert.Equal(t, 2, row)

	row, err = c.FindRowByValue(ctx, "Category")
	require.NoError(t, err)
	assert.Equal(t, 1, row)

	_, err = c.FindRowByValue(ctx, "2030-01-01")
	assert.ErrorIs(t, err, ports.ErrNotFound)
}

func TestNewResolvesSpreadsheetByTitle(t *testing.T) {
	fake := newFakeSheets()
	fake.files = map[string]string{"personal-expense-tracker": testSpreadsheetID}
	srv := httptest.NewServer(fake)
	t.Cleanup(srv.Close)

	c, err := New(context.Background(), Config{SpreadsheetTitle: "personal-expense-tracker", SheetName: "expenses"}, testClientOptions(srv)...)
	require.NoError(t, err)
	assert.Equal(t, testSpreadsheetID, c.SpreadsheetID())

	_, err = New(context.Background(), Config{SpreadsheetTitle: "missing", SheetName: "expenses"}, testClientOptions(srv)...)
	assert.ErrorContains(t, err, "not found")
}

func TestNewRequiresCredentials(t *testing.T) {
	_, err := New(context.Background(), Config{SpreadsheetID: "x", SheetName: "expenses"})
	assert.ErrorContains(t, err, "missing service account credentials")

	_, err = New(context.Background(), Config{SpreadsheetID: "x", SheetName: "expenses", CredentialsFile: "/nonexistent/creds.json"})
	assert.ErrorContains(t, err, "read credentials file")

	_, err = New(context.Background(), Config{SpreadsheetID: "x", SheetName: "expenses", CredentialsJSON: "not json"})
	assert.ErrorContains(t, err, "parse credentials")
}

func TestHelpers(t *testing.T) {
	assert.Equal(t, "A", columnLetter(1))
	assert.Equal(t, "C", columnLetter(3))
	assert.Equal(t, "AA", columnLetter(27))

	row, err := parseUpdatedRow("expenses!A12:C12")
	require.NoError(t, err)
	assert.Equal(t, 12, row)
	_, err = parseUpdatedRow("expenses")
	assert.Error(t, err)

	c := &Client{sheetName: "it's"}
	assert.Equal(t, "'it''s'!A:C", c.a1("A:C"))
}
