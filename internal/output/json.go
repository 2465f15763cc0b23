// Package output renders command results as JSON or tables.
package output

import (
	"encoding/json"
	"fmt"
	"io"
)

// Formats accepted by OutputTo
const (
	FormatJSON  = "json"
	FormatTable = "table"
)

// JSONTo writes data as indented JSON to the given writer
func JSONTo(w io.Writer, data interface{}) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	encoder.SetEscapeHTML(false)
	return encoder.Encode(data)
}

// OutputTo writes data to w in the specified format
func OutputTo(w io.Writer, format string, data interface{}) error {
	switch format {
	case FormatJSON:
		return JSONTo(w, data)
	case FormatTable, "":
		return TableTo(w, data)
	default:
		return fmt.Errorf("unknown output format: %s", format)
	}
}
