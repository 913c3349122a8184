package export

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/iksnae/chat-transcripts/internal"
)

// JSONLExporter exports records in JSONL format (one message per line)
type JSONLExporter struct{}

// Export exports a record to JSONL format
func (e *JSONLExporter) Export(rec *internal.Record, _ string, w io.Writer) error {
	enc := json.NewEncoder(w)

	for _, msg := range rec.Messages {
		obj := map[string]interface{}{
			"role":    msg.Role,
			"content": strings.Join(messageText(msg), "\n\n"),
		}

		if msg.Timestamp != "" {
			obj["timestamp"] = msg.Timestamp
		}

		if tools := toolNames(msg); len(tools) > 0 {
			obj["tools"] = tools
		}

		if err := enc.Encode(obj); err != nil {
			return fmt.Errorf("failed to encode message: %w", err)
		}
	}

	return nil
}

func toolNames(msg internal.Message) []string {
	var names []string
	for _, b := range msg.Blocks {
		if b.Type == internal.BlockToolUse && b.Tool != nil {
			names = append(names, b.Tool.Name)
		}
	}
	for _, call := range msg.ToolCalls {
		names = append(names, call.Name)
	}
	return names
}

// Extension returns the file extension for this format
func (e *JSONLExporter) Extension() string {
	return "jsonl"
}
