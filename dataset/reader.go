package dataset

import (
	"encoding/csv"
	"io"
	"os"
	"path/filepath"
	"strings"
	"unicode"

	"github.com/xuri/excelize/v2"

	"github.com/ezoic/regdiag/pkg/errors"
)

// Option configures ReadFile.
type Option func(*readConfig)

type readConfig struct {
	delimiter rune
}

// WithDelimiter overrides the sniffed field delimiter for delimited files.
// Ignored for workbooks.
func WithDelimiter(d rune) Option {
	return func(c *readConfig) {
		c.delimiter = d
	}
}

// ReadFile loads a delimited file or Excel workbook into a Table.
//
// The format is chosen by extension: ".xlsx" and ".xls" are read through
// excelize (first sheet); ".csv", ".tsv", and ".txt" are read as delimited
// text, with tab assumed for ".tsv"/".txt" and comma otherwise unless
// WithDelimiter overrides it. The first row is the header; header names are
// normalized by stripping every character that is not a letter or digit.
func ReadFile(path string, opts ...Option) (*Table, error) {
	var cfg readConfig
	for _, opt := range opts {
		opt(&cfg)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx", ".xls":
		return readWorkbook(path)
	case ".csv":
		if cfg.delimiter == 0 {
			cfg.delimiter = ','
		}
	case ".tsv", ".txt":
		if cfg.delimiter == 0 {
			cfg.delimiter = '\t'
		}
	default:
		return nil, errors.NewValueError("dataset.ReadFile",
			"unsupported file extension: "+filepath.Ext(path))
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "dataset.ReadFile: open input")
	}
	defer func() { _ = f.Close() }()

	return ReadDelimited(f, cfg.delimiter)
}

// ReadDelimited parses delimited text from r into a Table. The first record
// is the header row.
func ReadDelimited(r io.Reader, delimiter rune) (*Table, error) {
	reader := csv.NewReader(r)
	reader.Comma = delimiter

	records, err := reader.ReadAll()
	if err != nil {
		return nil, errors.Wrap(err, "dataset.ReadDelimited: parse input")
	}

	return fromRecords(records)
}

// readWorkbook loads the first sheet of an Excel workbook.
func readWorkbook(path string) (*Table, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "dataset.ReadFile: open workbook")
	}
	defer func() { _ = f.Close() }()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, errors.NewModelError("dataset.ReadFile", "workbook has no sheets", errors.ErrEmptyData)
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, errors.Wrap(err, "dataset.ReadFile: read sheet")
	}

	// excelize trims trailing empty cells, so pad every row to header width.
	if len(rows) > 0 {
		width := len(rows[0])
		for i := range rows {
			for len(rows[i]) < width {
				rows[i] = append(rows[i], "")
			}
			if len(rows[i]) > width {
				rows[i] = rows[i][:width]
			}
		}
	}

	return fromRecords(rows)
}

func fromRecords(records [][]string) (*Table, error) {
	if len(records) < 2 {
		return nil, errors.NewModelError("dataset.ReadFile",
			"input must have a header row and at least one data row", errors.ErrEmptyData)
	}

	header := make([]string, len(records[0]))
	for i, h := range records[0] {
		header[i] = NormalizeHeader(h)
	}

	return New(header, records[1:])
}

// NormalizeHeader strips every character that is not a letter or digit from
// a raw column header, so "Gr Liv Area" becomes "GrLivArea" and
// "Year Remod/Add" becomes "YearRemodAdd".
func NormalizeHeader(raw string) string {
	var b strings.Builder
	b.Grow(len(raw))
	for _, r := range raw {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}
