package internal

import (
	"bufio"
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/tidwall/gjson"
)

// Claude Code JSONL entry fields
const (
	claudeType      = "type"
	claudeTimestamp = "timestamp"
	claudeContent   = "message.content"
)

// claudeAgentMarker marks sidechain agent logs that are not primary sessions
const claudeAgentMarker = "agent-"

// claudeMessageTypes are the entry types kept as messages
var claudeMessageTypes = map[string]bool{
	"user":      true,
	"assistant": true,
	"model":     true,
}

var errNoMessages = errors.New("no messages")

// IsClaudeAgentLog reports whether a file name belongs to an agent sidechain log
func IsClaudeAgentLog(path string) bool {
	return strings.Contains(filepath.Base(path), claudeAgentMarker)
}

// ParseClaudeFile reads a Claude Code project log
// (.claude/projects/<project>/<session>.jsonl).
func ParseClaudeFile(path string) (*Record, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &FileError{Path: path, Op: "open", Err: err}
	}
	defer func() { _ = f.Close() }()

	return ParseClaudeSession(path, f)
}

// ParseClaudeSession parses JSONL entries. Lines that are not valid JSON or
// whose type is not a message type are skipped. A session without any
// message is rejected with errNoMessages.
func ParseClaudeSession(path string, r io.Reader) (*Record, error) {
	reader := bufio.NewReader(r)
	var messages []Message

	for lineNo := 1; ; lineNo++ {
		line, readErr := reader.ReadBytes('\n')
		if readErr != nil && readErr != io.EOF {
			return nil, &FileError{Path: path, Op: "read", Err: readErr}
		}

		line = bytes.TrimSpace(line)
		if len(line) > 0 && gjson.ValidBytes(line) {
			entry := gjson.ParseBytes(line)
			if claudeMessageTypes[entry.Get(claudeType).String()] {
				messages = append(messages, parseClaudeEntry(entry))
			}
		}

		if readErr == io.EOF {
			break
		}
	}

	if len(messages) == 0 {
		return nil, errNoMessages
	}

	stem := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	return &Record{
		Source:    SourceClaude,
		ID:        stem,
		Timestamp: messages[0].Timestamp,
		Project:   filepath.Base(filepath.Dir(path)),
		Path:      path,
		Messages:  messages,
	}, nil
}

func parseClaudeEntry(entry gjson.Result) Message {
	m := Message{
		Role:      entry.Get(claudeType).String(),
		Timestamp: entry.Get(claudeTimestamp).String(),
		Raw:       json.RawMessage(entry.Raw),
	}

	content := entry.Get(claudeContent)
	switch {
	case content.Type == gjson.String:
		m.Text = content.String()
	case content.IsArray():
		m.Blocks = parseClaudeBlocks(content)
	case content.Exists() && content.Type != gjson.Null:
		m.Text = content.Raw
	}

	return m
}

func parseClaudeBlocks(content gjson.Result) []Block {
	blocks := []Block{}
	content.ForEach(func(_, block gjson.Result) bool {
		switch BlockType(block.Get("type").String()) {
		case BlockText:
			blocks = append(blocks, Block{Type: BlockText, Text: block.Get("text").String()})
		case BlockToolUse:
			blocks = append(blocks, Block{
				Type: BlockToolUse,
				Tool: &ToolCall{
					ID:   block.Get("id").String(),
					Name: block.Get("name").String(),
					Args: rawOrNil(block.Get("input")),
				},
			})
		case BlockToolResult:
			blocks = append(blocks, Block{
				Type: BlockToolResult,
				Tool: &ToolCall{
					ID:      block.Get("tool_use_id").String(),
					Result:  rawOrNil(block.Get("content")),
					IsError: block.Get("is_error").Bool(),
				},
			})
		}
		return true
	})
	return blocks
}
