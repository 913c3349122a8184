package internal

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"

	"github.com/tidwall/gjson"
)

// Gemini CLI session file fields
const (
	geminiSessionID = "sessionId"
	geminiStartTime = "startTime"
	geminiMessages  = "messages"
	geminiType      = "type"
	geminiTimestamp = "timestamp"
	geminiContent   = "content"
	geminiToolCalls = "toolCalls"
)

var errNoSessionID = errors.New("missing sessionId")

// ParseGeminiFile reads a Gemini CLI session file
// (.gemini/tmp/<hash>/chats/session-*.json).
func ParseGeminiFile(path string) (*Record, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &FileError{Path: path, Op: "read", Err: err}
	}
	return ParseGeminiSession(path, data)
}

// ParseGeminiSession parses the JSON document of a Gemini session. Files
// without a sessionId are rejected with errNoSessionID.
func ParseGeminiSession(path string, data []byte) (*Record, error) {
	if !gjson.ValidBytes(data) {
		return nil, &ParseError{Source: SourceGemini.String(), Key: path, Err: errors.New("invalid JSON")}
	}

	doc := gjson.ParseBytes(data)
	if !doc.IsObject() || !doc.Get(geminiSessionID).Exists() {
		return nil, errNoSessionID
	}

	rec := &Record{
		Source:    SourceGemini,
		ID:        doc.Get(geminiSessionID).String(),
		Timestamp: doc.Get(geminiStartTime).String(),
		Project:   geminiProject(path),
		Path:      path,
		Messages:  []Message{},
	}

	doc.Get(geminiMessages).ForEach(func(_, msg gjson.Result) bool {
		rec.Messages = append(rec.Messages, parseGeminiMessage(msg))
		return true
	})

	return rec, nil
}

func parseGeminiMessage(msg gjson.Result) Message {
	m := Message{
		Role:      msg.Get(geminiType).String(),
		Timestamp: msg.Get(geminiTimestamp).String(),
		Text:      geminiText(msg.Get(geminiContent)),
		Raw:       json.RawMessage(msg.Raw),
	}

	msg.Get(geminiToolCalls).ForEach(func(_, call gjson.Result) bool {
		m.ToolCalls = append(m.ToolCalls, ToolCall{
			ID:      call.Get("id").String(),
			Name:    call.Get("name").String(),
			Args:    rawOrNil(call.Get("args")),
			Result:  rawOrNil(call.Get("result")),
			IsError: call.Get("status").String() == "error",
		})
		return true
	})

	return m
}

// geminiText returns string content as-is. Newer sessions store content as a
// list of parts; their text fields are joined.
func geminiText(content gjson.Result) string {
	switch {
	case !content.Exists():
		return ""
	case content.Type == gjson.String:
		return content.String()
	case content.IsArray():
		var parts []string
		content.ForEach(func(_, part gjson.Result) bool {
			if text := part.Get("text"); text.Exists() {
				parts = append(parts, text.String())
			} else if part.Type == gjson.String {
				parts = append(parts, part.String())
			}
			return true
		})
		return strings.Join(parts, "\n")
	default:
		return content.Raw
	}
}

// geminiProject returns the <hash> directory a session lives under
func geminiProject(path string) string {
	chats := filepath.Dir(path)
	if filepath.Base(chats) != "chats" {
		return ""
	}
	return filepath.Base(filepath.Dir(chats))
}

func rawOrNil(r gjson.Result) json.RawMessage {
	if !r.Exists() {
		return nil
	}
	return json.RawMessage(r.Raw)
}
