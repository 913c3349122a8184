package export

import (
	"encoding/json"

	"github.com/iksnae/chat-transcripts/internal"
)

// recordView is the structured form of a record used by the JSON and YAML
// exporters. Tool arguments and results hold either the raw JSON or, for
// encoders that cannot embed it, the decoded value.
type recordView struct {
	Title     string          `json:"title,omitempty" yaml:"title,omitempty"`
	Source    internal.Source `json:"source" yaml:"source"`
	ID        string          `json:"id" yaml:"id"`
	Timestamp string          `json:"timestamp,omitempty" yaml:"timestamp,omitempty"`
	Project   string          `json:"project,omitempty" yaml:"project,omitempty"`
	Path      string          `json:"path" yaml:"path"`
	Messages  []messageView   `json:"messages" yaml:"messages"`
}

type messageView struct {
	Role      string      `json:"role" yaml:"role"`
	Timestamp string      `json:"timestamp,omitempty" yaml:"timestamp,omitempty"`
	Text      string      `json:"text,omitempty" yaml:"text,omitempty"`
	Blocks    []blockView `json:"blocks,omitempty" yaml:"blocks,omitempty"`
	ToolCalls []toolView  `json:"tool_calls,omitempty" yaml:"tool_calls,omitempty"`
}

type blockView struct {
	Type internal.BlockType `json:"type" yaml:"type"`
	Text string             `json:"text,omitempty" yaml:"text,omitempty"`
	Tool *toolView          `json:"tool,omitempty" yaml:"tool,omitempty"`
}

type toolView struct {
	ID      string `json:"id,omitempty" yaml:"id,omitempty"`
	Name    string `json:"name,omitempty" yaml:"name,omitempty"`
	Args    any    `json:"args,omitempty" yaml:"args,omitempty"`
	Result  any    `json:"result,omitempty" yaml:"result,omitempty"`
	IsError bool   `json:"is_error,omitempty" yaml:"is_error,omitempty"`
}

func newRecordView(rec *internal.Record, title string, decode bool) recordView {
	view := recordView{
		Title:     title,
		Source:    rec.Source,
		ID:        rec.ID,
		Timestamp: rec.Timestamp,
		Project:   rec.Project,
		Path:      rec.Path,
		Messages:  make([]messageView, 0, len(rec.Messages)),
	}

	for _, msg := range rec.Messages {
		mv := messageView{Role: msg.Role, Timestamp: msg.Timestamp, Text: msg.Text}
		for _, b := range msg.Blocks {
			bv := blockView{Type: b.Type, Text: b.Text}
			if b.Tool != nil {
				tv := newToolView(*b.Tool, decode)
				bv.Tool = &tv
			}
			mv.Blocks = append(mv.Blocks, bv)
		}
		for _, call := range msg.ToolCalls {
			mv.ToolCalls = append(mv.ToolCalls, newToolView(call, decode))
		}
		view.Messages = append(view.Messages, mv)
	}
	return view
}

func newToolView(call internal.ToolCall, decode bool) toolView {
	return toolView{
		ID:      call.ID,
		Name:    call.Name,
		Args:    jsonValue(call.Args, decode),
		Result:  jsonValue(call.Result, decode),
		IsError: call.IsError,
	}
}

// jsonValue returns nil for missing input, the raw message when decode is
// false, and otherwise the decoded value (or the raw text if it is not JSON)
func jsonValue(raw json.RawMessage, decode bool) any {
	if len(raw) == 0 {
		return nil
	}
	if !decode {
		if !json.Valid(raw) {
			return string(raw)
		}
		return raw
	}
	var v any
	if err := json.Unmarshal(raw, &v); err != nil {
		return string(raw)
	}
	return v
}
