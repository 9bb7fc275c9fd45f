package batch

import (
	"bufio"
	"encoding/csv"
	"errors"
	"io"
	"os"
	"strconv"
	"strings"
)

// CSVOptions holds options for loading a batch from CSV.
type CSVOptions struct {
	HasHeader bool // Whether the CSV has a header row (default: true)
	Delimiter rune // Field delimiter (default: ',')
	SkipRows  int  // Number of rows to skip at start
}

// DefaultCSVOptions returns default options for CSV loading.
func DefaultCSVOptions() *CSVOptions {
	return &CSVOptions{
		HasHeader: true,
		Delimiter: ',',
	}
}

// LoadCSV loads a batch from a wide-format CSV file: each column is one
// series, each row one time step.
func LoadCSV(filename string, opts *CSVOptions) (*Batch, []string, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, nil, err
	}
	defer file.Close()
	return LoadCSVFromReader(file, opts)
}

// LoadCSVFromReader loads a wide-format batch from an io.Reader. It returns
// the batch and the column names (empty strings when there is no header).
func LoadCSVFromReader(r io.Reader, opts *CSVOptions) (*Batch, []string, error) {
	if opts == nil {
		opts = DefaultCSVOptions()
	}

	reader := csv.NewReader(r)
	reader.Comma = opts.Delimiter
	reader.TrimLeadingSpace = true

	for i := 0; i < opts.SkipRows; i++ {
		if _, err := reader.Read(); err != nil {
			return nil, nil, err
		}
	}

	var names []string
	if opts.HasHeader {
		header, err := reader.Read()
		if err != nil {
			return nil, nil, err
		}
		names = make([]string, len(header))
		for i, h := range header {
			names[i] = strings.TrimSpace(strings.Trim(h, "\""))
		}
	}

	var rows [][]float64
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, nil, err
		}
		row := make([]float64, len(record))
		for i, field := range record {
			field = strings.TrimSpace(strings.Trim(field, "\""))
			v, err := strconv.ParseFloat(field, 64)
			if err != nil {
				return nil, nil, errors.New("batch: non-numeric value in CSV: " + field)
			}
			row[i] = v
		}
		rows = append(rows, row)
	}

	if len(rows) == 0 {
		return nil, nil, errors.New("batch: no data rows in CSV")
	}
	nseries := len(rows[0])
	for _, row := range rows {
		if len(row) != nseries {
			return nil, nil, errors.New("batch: ragged rows in CSV")
		}
	}
	if names == nil {
		names = make([]string, nseries)
	}

	b := New(len(rows), nseries)
	for t, row := range rows {
		for i, v := range row {
			b.Set(t, i, v)
		}
	}
	return b, names, nil
}

// SaveCSV writes the batch to a wide-format CSV file. names, when non-nil,
// becomes the header row and must have one entry per series.
func SaveCSV(b *Batch, filename string, names []string) error {
	if names != nil && len(names) != b.NSeries {
		return errors.New("batch: header length does not match series count")
	}

	file, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer file.Close()

	writer := bufio.NewWriter(file)
	defer writer.Flush()

	if names != nil {
		writer.WriteString(strings.Join(names, ","))
		writer.WriteString("\n")
	}
	for t := 0; t < b.NObs; t++ {
		for i := 0; i < b.NSeries; i++ {
			if i > 0 {
				writer.WriteString(",")
			}
			writer.WriteString(strconv.FormatFloat(b.At(t, i), 'f', -1, 64))
		}
		writer.WriteString("\n")
	}
	return nil
}
