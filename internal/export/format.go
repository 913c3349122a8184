package export

import (
	"bytes"
	"encoding/json"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/iksnae/chat-transcripts/internal"
)

// prettyJSON indents raw with two spaces, keeping key order.
// Missing input renders as an empty object.
func prettyJSON(raw json.RawMessage) string {
	if len(bytes.TrimSpace(raw)) == 0 {
		return "{}"
	}
	var buf bytes.Buffer
	if err := json.Indent(&buf, raw, "", "  "); err != nil {
		return string(raw)
	}
	return buf.String()
}

// formatResult renders a tool result. A JSON string whose value is itself
// JSON is unwrapped first. The boolean is false when the result is not JSON
// and must be shown as plain text.
func formatResult(raw json.RawMessage) (string, bool) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 {
		return "", false
	}

	if trimmed[0] == '"' {
		var s string
		if err := json.Unmarshal(trimmed, &s); err != nil {
			return string(raw), false
		}
		inner := strings.TrimSpace(s)
		if inner == "" || !json.Valid([]byte(inner)) {
			return s, false
		}
		return prettyJSON(json.RawMessage(inner)), true
	}

	if !json.Valid(trimmed) {
		return string(raw), false
	}
	return prettyJSON(trimmed), true
}

// roleLabel capitalizes a role for display ("gemini" -> "Gemini")
func roleLabel(role string) string {
	if role == "" {
		role = "unknown"
	}
	r, size := utf8.DecodeRuneInString(role)
	return string(unicode.ToUpper(r)) + strings.ToLower(role[size:])
}

// messageText returns the free text of a message: plain text followed by
// any text blocks, each separated by a blank line
func messageText(msg internal.Message) []string {
	var parts []string
	if msg.Text != "" {
		parts = append(parts, msg.Text)
	}
	for _, b := range msg.Blocks {
		if b.Type == internal.BlockText && b.Text != "" {
			parts = append(parts, b.Text)
		}
	}
	return parts
}
