package dataset

import (
	"compress/gzip"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/xuri/excelize/v2"
)

// RawBatch is an untyped tabular read: a header row plus data rows.
// Column detection and parsing happen in the normalizer, not here.
type RawBatch struct {
	Columns []string
	Rows    [][]string
}

// Load reads a local dataset into a RawBatch. Supported formats, chosen
// by extension: .xlsx, .csv.gz (or .gz), plain .csv.
func Load(path string) (RawBatch, error) {
	lower := strings.ToLower(path)
	switch {
	case strings.HasSuffix(lower, ".xlsx"):
		return loadXLSX(path)
	case strings.HasSuffix(lower, ".gz"):
		return loadCSV(path, true)
	default:
		return loadCSV(path, false)
	}
}

func loadCSV(path string, gzipped bool) (RawBatch, error) {
	f, err := os.Open(path)
	if err != nil {
		return RawBatch{}, fmt.Errorf("open file: %w", err)
	}
	defer f.Close()

	var src io.Reader = f
	if gzipped {
		gz, err := gzip.NewReader(f)
		if err != nil {
			return RawBatch{}, fmt.Errorf("gzip reader: %w", err)
		}
		defer gz.Close()
		src = gz
	}

	r := csv.NewReader(src)
	r.FieldsPerRecord = -1 // 311 exports have ragged rows
	rows, err := r.ReadAll()
	if err != nil {
		return RawBatch{}, fmt.Errorf("read csv: %w", err)
	}
	return splitHeader(rows)
}

func loadXLSX(path string) (RawBatch, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return RawBatch{}, fmt.Errorf("open file: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return RawBatch{}, fmt.Errorf("no sheets")
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return RawBatch{}, fmt.Errorf("read rows: %w", err)
	}
	return splitHeader(rows)
}

func splitHeader(rows [][]string) (RawBatch, error) {
	if len(rows) == 0 {
		return RawBatch{}, fmt.Errorf("no header row")
	}
	return RawBatch{Columns: rows[0], Rows: rows[1:]}, nil
}
