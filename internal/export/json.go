package export

import (
	"encoding/json"
	"io"

	"github.com/iksnae/chat-transcripts/internal"
)

// JSONExporter exports records in JSON format (pretty-printed)
type JSONExporter struct{}

// Export exports a record to JSON format
func (e *JSONExporter) Export(rec *internal.Record, title string, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")

	return enc.Encode(newRecordView(rec, title, false))
}

// Extension returns the file extension for this format
func (e *JSONExporter) Extension() string {
	return "json"
}
