package internal

import (
	"encoding/json"
)

// CreateTestRecord creates a Claude record with a user and an assistant turn
func CreateTestRecord(id string) *Record {
	return CreateTestRecordWithMessages(SourceClaude, id, []Message{
		{
			Role:      "user",
			Timestamp: "2024-01-01T12:00:00Z",
			Text:      "Hello, how are you?",
		},
		{
			Role:      "assistant",
			Timestamp: "2024-01-01T12:00:05Z",
			Blocks: []Block{
				{Type: BlockText, Text: "I'm doing well, thank you!"},
			},
		},
	})
}

// CreateTestRecordWithMessages creates a record with custom messages
func CreateTestRecordWithMessages(src Source, id string, messages []Message) *Record {
	rec := &Record{
		Source:   src,
		ID:       id,
		Project:  "test-project",
		Path:     "/tmp/" + id,
		Messages: messages,
	}
	if len(messages) > 0 {
		rec.Timestamp = messages[0].Timestamp
	}
	return rec
}

// CreateTestToolCall creates a tool call with JSON-encoded args and result
func CreateTestToolCall(name string, args, result interface{}, isError bool) ToolCall {
	call := ToolCall{ID: "call-" + name, Name: name, IsError: isError}
	if args != nil {
		call.Args, _ = json.Marshal(args)
	}
	if result != nil {
		call.Result, _ = json.Marshal(result)
	}
	return call
}
