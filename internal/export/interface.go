package export

import (
	"fmt"
	"io"

	"github.com/iksnae/chat-transcripts/internal"
)

// DefaultFormat is the format used when none is configured
const DefaultFormat = "html"

// Exporter defines the interface for all export formats.
// The title is the generated document title and may be empty.
type Exporter interface {
	Export(rec *internal.Record, title string, w io.Writer) error
	Extension() string
}

// NewExporter creates a new exporter based on format
func NewExporter(format string) (Exporter, error) {
	switch format {
	case "html", "":
		return &HTMLExporter{}, nil
	case "md", "markdown":
		return &MarkdownExporter{}, nil
	case "jsonl":
		return &JSONLExporter{}, nil
	case "yaml":
		return &YAMLExporter{}, nil
	case "json":
		return &JSONExporter{}, nil
	default:
		return nil, fmt.Errorf("unsupported format: %s (supported: html, md, json, yaml, jsonl)", format)
	}
}
