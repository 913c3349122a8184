package export

import (
	"io"

	"github.com/iksnae/chat-transcripts/internal"
	"gopkg.in/yaml.v3"
)

// YAMLExporter exports records in YAML format
type YAMLExporter struct{}

// Export exports a record to YAML format
func (e *YAMLExporter) Export(rec *internal.Record, title string, w io.Writer) error {
	enc := yaml.NewEncoder(w)
	defer func() { _ = enc.Close() }()

	return enc.Encode(newRecordView(rec, title, true))
}

// Extension returns the file extension for this format
func (e *YAMLExporter) Extension() string {
	return "yaml"
}
