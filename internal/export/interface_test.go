package export

import (
	"fmt"
	"testing"
)

func TestNewExporter(t *testing.T) {
	tests := []struct {
		name     string
		format   string
		wantType string
		wantExt  string
		wantErr  bool
	}{
		{name: "html format", format: "html", wantType: "*export.HTMLExporter", wantExt: "html"},
		{name: "empty format defaults to html", format: "", wantType: "*export.HTMLExporter", wantExt: "html"},
		{name: "markdown format", format: "md", wantType: "*export.MarkdownExporter", wantExt: "md"},
		{name: "markdown format long", format: "markdown", wantType: "*export.MarkdownExporter", wantExt: "md"},
		{name: "jsonl format", format: "jsonl", wantType: "*export.JSONLExporter", wantExt: "jsonl"},
		{name: "yaml format", format: "yaml", wantType: "*export.YAMLExporter", wantExt: "yaml"},
		{name: "json format", format: "json", wantType: "*export.JSONExporter", wantExt: "json"},
		{name: "unsupported format", format: "xml", wantErr: true},
		{name: "case sensitive", format: "HTML", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			exporter, err := NewExporter(tt.format)
			if (err != nil) != tt.wantErr {
				t.Fatalf("NewExporter() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				if exporter != nil {
					t.Error("NewExporter() should return nil exporter on error")
				}
				return
			}

			if got := fmt.Sprintf("%T", exporter); got != tt.wantType {
				t.Errorf("NewExporter() type = %s, want %s", got, tt.wantType)
			}
			if got := exporter.Extension(); got != tt.wantExt {
				t.Errorf("Extension() = %q, want %q", got, tt.wantExt)
			}
		})
	}
}
