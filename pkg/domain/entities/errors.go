package entities

import (
	"fmt"
	"strings"
)

// SchemaError reports required columns missing from a bulk load. It is
// fatal to the load and surfaced unmodified.
type SchemaError struct {
	Missing []string
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("missing required columns: %s", strings.Join(e.Missing, ", "))
}

// FormatError reports an unparsable date or numeric cell. Row is the
// 1-based data row number (header excluded).
type FormatError struct {
	Field string
	Value string
	Row   int
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("row %d: unparsable %s value %q", e.Row, e.Field, e.Value)
}

// ExportError reports a failed ledger export. The underlying write
// failure is available via errors.Unwrap.
type ExportError struct {
	Path string
	Err  error
}

func (e *ExportError) Error() string {
	return fmt.Sprintf("export to %s failed: %v", e.Path, e.Err)
}

func (e *ExportError) Unwrap() error {
	return e.Err
}
