package internal

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Record is one normalized transcript discovered on disk
type Record struct {
	Source    Source    `json:"source" yaml:"source"`
	ID        string    `json:"id" yaml:"id"`
	Timestamp string    `json:"timestamp,omitempty" yaml:"timestamp,omitempty"`
	Project   string    `json:"project,omitempty" yaml:"project,omitempty"`
	Path      string    `json:"path" yaml:"path"`
	Messages  []Message `json:"messages" yaml:"messages"`
}

// Message is a single turn of a transcript.
//
// Gemini messages carry Text and ToolCalls. Claude messages carry either
// Text (string content) or Blocks (structured content).
type Message struct {
	Role      string          `json:"role" yaml:"role"`
	Timestamp string          `json:"timestamp,omitempty" yaml:"timestamp,omitempty"`
	Text      string          `json:"text,omitempty" yaml:"text,omitempty"`
	Blocks    []Block         `json:"blocks,omitempty" yaml:"blocks,omitempty"`
	ToolCalls []ToolCall      `json:"tool_calls,omitempty" yaml:"tool_calls,omitempty"`
	Raw       json.RawMessage `json:"-" yaml:"-"`
}

// BlockType is the type of a structured content block
type BlockType string

const (
	BlockText       BlockType = "text"
	BlockToolUse    BlockType = "tool_use"
	BlockToolResult BlockType = "tool_result"
)

// Block is one element of structured message content
type Block struct {
	Type BlockType `json:"type" yaml:"type"`
	Text string    `json:"text,omitempty" yaml:"text,omitempty"`
	// Tool holds name/input/id for tool_use and content/is_error for tool_result
	Tool *ToolCall `json:"tool,omitempty" yaml:"tool,omitempty"`
}

// ToolCall is a tool invocation and, when known, its result
type ToolCall struct {
	ID      string          `json:"id,omitempty" yaml:"id,omitempty"`
	Name    string          `json:"name,omitempty" yaml:"name,omitempty"`
	Args    json.RawMessage `json:"args,omitempty" yaml:"-"`
	Result  json.RawMessage `json:"result,omitempty" yaml:"-"`
	IsError bool            `json:"is_error,omitempty" yaml:"is_error,omitempty"`
}

// HasContent reports whether the message has text or tool activity
func (m Message) HasContent() bool {
	return m.Text != "" || len(m.Blocks) > 0 || len(m.ToolCalls) > 0
}

// UserText returns the user-authored text of a message: the plain text, or
// the text blocks of structured content joined with a space.
func (m Message) UserText() string {
	if m.Text != "" || len(m.Blocks) == 0 {
		return m.Text
	}
	var buf bytes.Buffer
	for _, b := range m.Blocks {
		if b.Type != BlockText || b.Text == "" {
			continue
		}
		if buf.Len() > 0 {
			buf.WriteByte(' ')
		}
		buf.WriteString(b.Text)
	}
	return buf.String()
}

// SortKey returns the raw timestamp used to order records by recency
func (r *Record) SortKey() string {
	return r.Timestamp
}

// DisplayTitle returns the fallback document title, e.g. "Claude Session abc"
func (r *Record) DisplayTitle() string {
	return fmt.Sprintf("%s Session %s", r.Source.Label(), r.ID)
}

// StartTime returns the raw start timestamp shown in document headers
func (r *Record) StartTime() string {
	switch r.Source {
	case SourceGemini:
		return r.Timestamp
	case SourceClaude:
		if len(r.Messages) == 0 {
			return "Unknown"
		}
		return r.Messages[0].Timestamp
	default:
		return r.Timestamp
	}
}

// RawTranscript rebuilds the source messages as an indented JSON array.
// It is the text handed to title generation.
func (r *Record) RawTranscript() (string, error) {
	var buf bytes.Buffer
	buf.WriteByte('[')
	for i, msg := range r.Messages {
		if i > 0 {
			buf.WriteByte(',')
		}
		raw := msg.Raw
		if len(raw) == 0 {
			var err error
			raw, err = json.Marshal(msg)
			if err != nil {
				return "", fmt.Errorf("failed to encode message %d: %w", i, err)
			}
		}
		buf.Write(raw)
	}
	buf.WriteByte(']')

	var out bytes.Buffer
	if err := json.Indent(&out, buf.Bytes(), "", "  "); err != nil {
		return "", fmt.Errorf("failed to indent transcript: %w", err)
	}
	return out.String(), nil
}
