// Package sheets imports catalog models from a Google Sheets spreadsheet.
//
// The first row of the configured range is a header. Columns are matched by
// name (English or Spanish, case-insensitive) so their order in the sheet
// does not matter.
package sheets

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"

	"github.com/vijay-prabhu/motomatch/internal/catalog"
	"github.com/vijay-prabhu/motomatch/internal/config"
)

// Importer reads catalog rows from a spreadsheet
type Importer struct {
	service       *sheets.Service
	spreadsheetID string
	readRange     string
}

// NewImporter authenticates with Google and returns an Importer.
// Authentication prompts are written to w.
func NewImporter(ctx context.Context, cfg config.SheetsConfig, w io.Writer) (*Importer, error) {
	if cfg.SpreadsheetID == "" {
		return nil, errors.New("sheets.spreadsheet_id is not set (set it in the config or MOTOMATCH_SPREADSHEET_ID)")
	}

	oauthCfg, err := loadCredentials(cfg.CredentialsPath)
	if err != nil {
		return nil, err
	}

	client, err := httpClient(ctx, oauthCfg, cfg.TokenPath, w)
	if err != nil {
		return nil, fmt.Errorf("failed to authenticate: %w", err)
	}

	return newImporter(ctx, cfg, option.WithHTTPClient(client))
}

func newImporter(ctx context.Context, cfg config.SheetsConfig, opts ...option.ClientOption) (*Importer, error) {
	srv, err := sheets.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create Sheets service: %w", err)
	}

	return &Importer{
		service:       srv,
		spreadsheetID: cfg.SpreadsheetID,
		readRange:     cfg.Range,
	}, nil
}

// FetchRows reads the configured range, header row included
func (i *Importer) FetchRows(ctx context.Context) ([][]interface{}, error) {
	resp, err := i.service.Spreadsheets.Values.Get(i.spreadsheetID, i.readRange).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", i.readRange, err)
	}
	return resp.Values, nil
}

// column identifies one catalog field in the header row
type column int

const (
	colName column = iota
	colSegment
	colYear
	colStock
	colTestDrive
	colActive
	colPublished
)

var headerAliases = map[string]column{
	"name":        colName,
	"model":       colName,
	"modelo":      colName,
	"segment":     colSegment,
	"segmento":    colSegment,
	"year":        colYear,
	"año":         colYear,
	"ano":         colYear,
	"stock":       colStock,
	"existencias": colStock,
	"test_drive":  colTestDrive,
	"test drive":  colTestDrive,
	"prueba":      colTestDrive,
	"active":      colActive,
	"activo":      colActive,
	"published":   colPublished,
	"publicado":   colPublished,
}

// RowError reports a row that could not be converted into a model
type RowError struct {
	Row int // 1-based, as shown in the spreadsheet
	Err error
}

func (e RowError) Error() string {
	return fmt.Sprintf("row %d: %v", e.Row, e.Err)
}

func (e RowError) Unwrap() error { return e.Err }

// ParseRows converts sheet rows into models. Rows that fail to parse are
// reported and skipped; blank rows are ignored. Missing active or published
// cells default to true.
func ParseRows(rows [][]interface{}) ([]catalog.Model, []RowError, error) {
	if len(rows) == 0 {
		return nil, nil, errors.New("sheet is empty")
	}

	index, err := headerIndex(rows[0])
	if err != nil {
		return nil, nil, err
	}

	var models []catalog.Model
	var rowErrs []RowError
	for n, row := range rows[1:] {
		if isBlank(row) {
			continue
		}

		m, err := parseRow(row, index)
		if err != nil {
			rowErrs = append(rowErrs, RowError{Row: n + 2, Err: err})
			continue
		}
		models = append(models, m)
	}

	return models, rowErrs, nil
}

func headerIndex(header []interface{}) (map[column]int, error) {
	index := make(map[column]int)
	for i, cell := range header {
		name := strings.ToLower(strings.TrimSpace(cellString(cell)))
		col, ok := headerAliases[name]
		if !ok {
			continue
		}
		if _, dup := index[col]; dup {
			return nil, fmt.Errorf("duplicate column %q in header", name)
		}
		index[col] = i
	}

	if _, ok := index[colName]; !ok {
		return nil, errors.New("header has no name column")
	}
	return index, nil
}

func parseRow(row []interface{}, index map[column]int) (catalog.Model, error) {
	get := func(c column) string {
		i, ok := index[c]
		if !ok || i >= len(row) {
			return ""
		}
		return strings.TrimSpace(cellString(row[i]))
	}

	m := catalog.Model{
		Name:    get(colName),
		Segment: strings.ToUpper(get(colSegment)),
	}
	if m.Name == "" {
		return m, errors.New("name is empty")
	}

	var errs []error

	if v := get(colYear); v != "" {
		year, err := parseInt(v)
		if err != nil {
			errs = append(errs, fmt.Errorf("year: %w", err))
		} else {
			m.Year = &year
		}
	}

	if v := get(colStock); v != "" {
		stock, err := parseInt(v)
		switch {
		case err != nil:
			errs = append(errs, fmt.Errorf("stock: %w", err))
		case stock < 0:
			errs = append(errs, fmt.Errorf("stock: negative value %d", stock))
		default:
			m.Stock = stock
		}
	}

	var err error
	if m.TestDriveAvailable, err = parseBool(get(colTestDrive), false); err != nil {
		errs = append(errs, fmt.Errorf("test_drive: %w", err))
	}
	if m.Active, err = parseBool(get(colActive), true); err != nil {
		errs = append(errs, fmt.Errorf("active: %w", err))
	}
	if m.Published, err = parseBool(get(colPublished), true); err != nil {
		errs = append(errs, fmt.Errorf("published: %w", err))
	}

	return m, errors.Join(errs...)
}

func cellString(v interface{}) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case float64:
		if t == math.Trunc(t) {
			return strconv.FormatInt(int64(t), 10)
		}
		return strconv.FormatFloat(t, 'f', -1, 64)
	default:
		return fmt.Sprint(t)
	}
}

func parseInt(s string) (int, error) {
	s = strings.ReplaceAll(s, ",", "")
	if n, err := strconv.Atoi(s); err == nil {
		return n, nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || f != math.Trunc(f) {
		return 0, fmt.Errorf("not a whole number: %q", s)
	}
	return int(f), nil
}

func parseBool(s string, def bool) (bool, error) {
	switch strings.ToLower(s) {
	case "":
		return def, nil
	case "true", "yes", "y", "1", "x", "si", "sí", "s", "verdadero":
		return true, nil
	case "false", "no", "n", "0", "falso":
		return false, nil
	default:
		return false, fmt.Errorf("not a yes/no value: %q", s)
	}
}

func isBlank(row []interface{}) bool {
	for _, cell := range row {
		if strings.TrimSpace(cellString(cell)) != "" {
			return false
		}
	}
	return true
}

// Store is the part of the catalog an import writes to
type Store interface {
	UpsertModelByName(ctx context.Context, m *catalog.Model) (bool, error)
}

// Result summarizes an applied import
type Result struct {
	Created int `json:"created"`
	Updated int `json:"updated"`
	Failed  int `json:"failed"`
}

// Apply upserts models by name. A failing model is counted and the import
// continues; the returned error joins every failure.
func Apply(ctx context.Context, store Store, models []catalog.Model) (Result, error) {
	var res Result
	var errs []error

	for i := range models {
		created, err := store.UpsertModelByName(ctx, &models[i])
		switch {
		case err != nil:
			res.Failed++
			errs = append(errs, fmt.Errorf("%s: %w", models[i].Name, err))
		case created:
			res.Created++
		default:
			res.Updated++
		}
	}

	return res, errors.Join(errs...)
}
