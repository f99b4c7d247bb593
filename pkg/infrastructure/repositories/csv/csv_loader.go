package csv

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"os"
	"strings"

	"go.uber.org/zap"

	"github.com/stocklens/stocklens/pkg/domain/entities"
)

// Loader reads ledger data from CSV files into raw tables. Parsing and
// normalization of cell values belong to the record store; the loader
// only handles file I/O and row shaping.
type Loader struct {
	logger *zap.Logger
}

// NewLoader creates a new CSV loader.
func NewLoader(logger *zap.Logger) *Loader {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Loader{logger: logger}
}

// Load reads a CSV file into a RawTable keyed by the header row.
func (l *Loader) Load(filename string) (entities.RawTable, error) {
	file, err := os.Open(filename)
	if err != nil {
		return entities.RawTable{}, fmt.Errorf("failed to open ledger file %s: %w", filename, err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	rows, err := reader.ReadAll()
	if err != nil {
		return entities.RawTable{}, fmt.Errorf("failed to read ledger CSV: %w", err)
	}

	if len(rows) == 0 {
		return entities.RawTable{}, fmt.Errorf("ledger CSV %s has no header row", filename)
	}

	header := make([]string, len(rows[0]))
	for i, col := range rows[0] {
		header[i] = strings.TrimSpace(col)
	}

	table := entities.RawTable{
		Columns: header,
		Rows:    make([]entities.RawRow, 0, len(rows)-1),
	}

	for _, row := range rows[1:] {
		raw := make(entities.RawRow, len(header))
		for i, col := range header {
			if i < len(row) {
				raw[col] = row[i]
			}
		}
		table.Rows = append(table.Rows, raw)
	}

	l.logger.Info("ledger CSV loaded",
		zap.String("file", filename),
		zap.Int("rows", len(table.Rows)),
		zap.Int("columns", len(header)))

	return table, nil
}

// Exporter serializes a ledger back to flat CSV.
type Exporter struct {
	logger *zap.Logger
}

// NewExporter creates a new CSV exporter.
func NewExporter(logger *zap.Logger) *Exporter {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Exporter{logger: logger}
}

// Export writes the full record collection to filename, one row per
// record in current sort order, preserving every source column. Rows
// are encoded to memory first and written in a single call so a failure
// never leaves a partial file.
func (e *Exporter) Export(filename string, schema entities.Schema, records []entities.Record) error {
	columns := schema.Columns()

	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	if err := writer.Write(columns); err != nil {
		return &entities.ExportError{Path: filename, Err: err}
	}

	row := make([]string, len(columns))
	for _, record := range records {
		for i, col := range columns {
			text, _ := record.FieldText(col)
			row[i] = text
		}
		if err := writer.Write(row); err != nil {
			return &entities.ExportError{Path: filename, Err: err}
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return &entities.ExportError{Path: filename, Err: err}
	}

	if err := os.WriteFile(filename, buf.Bytes(), 0644); err != nil {
		return &entities.ExportError{Path: filename, Err: err}
	}

	e.logger.Info("ledger exported",
		zap.String("file", filename),
		zap.Int("rows", len(records)))

	return nil
}
