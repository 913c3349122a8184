package export

import (
	"bytes"
	"encoding/json"
	"html"
	"regexp"
	"strings"
	"testing"

	"github.com/iksnae/chat-transcripts/internal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var jsonPreRE = regexp.MustCompile(`(?s)<pre class="json">(.*?)</pre>`)

func renderHTML(t *testing.T, rec *internal.Record, title string) string {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, (&HTMLExporter{}).Export(rec, title, &buf))
	return buf.String()
}

func geminiRecord() *internal.Record {
	return internal.CreateTestRecordWithMessages(internal.SourceGemini, "g-1", []internal.Message{
		{Role: "user", Timestamp: "2024-05-01T08:00:00.000Z", Text: "Show me the **config**"},
		{Role: "gemini", Timestamp: "2024-05-01T08:00:02.000Z", Text: "Reading the file now.", ToolCalls: []internal.ToolCall{
			internal.CreateTestToolCall("read_file",
				map[string]any{"path": "config.yaml", "limit": 10},
				[]any{map[string]any{"output": "<key>: value & more"}},
				false),
		}},
		{Role: "gemini", Timestamp: "2024-05-01T08:00:03.000Z"},
	})
}

func TestHTMLExporter_Title(t *testing.T) {
	rec := geminiRecord()

	out := renderHTML(t, rec, "Read The Config File")
	assert.Contains(t, out, "<title>Read The Config File</title>")
	assert.Equal(t, 1, strings.Count(out, "Read The Config File"), "title must only appear in <title>")

	out = renderHTML(t, rec, "")
	assert.Contains(t, out, "<title>Gemini Session g-1</title>")
}

func TestHTMLExporter_Header(t *testing.T) {
	out := renderHTML(t, geminiRecord(), "")
	assert.Contains(t, out, "Session g-1")
	assert.Contains(t, out, `data-timestamp="2024-05-01T08:00:00.000Z"`)
	assert.Contains(t, out, "<style>")
	assert.Contains(t, out, "<script>")
}

func TestHTMLExporter_OmitsEmptyMessages(t *testing.T) {
	out := renderHTML(t, geminiRecord(), "")

	assert.Equal(t, 2, strings.Count(out, `<div class="message `))
	assert.Contains(t, out, `<div class="message user">`)
	assert.Contains(t, out, `<div class="message gemini">`)
	assert.Contains(t, out, `<span class="role-label">Gemini</span>`)
	assert.Contains(t, out, "<strong>config</strong>")
}

func TestHTMLExporter_ToolBlocks(t *testing.T) {
	out := renderHTML(t, geminiRecord(), "")

	assert.Contains(t, out, `<div class="tool-use" data-tool-id="call-read_file">`)
	assert.Contains(t, out, "read_file")
	assert.Contains(t, out, `<div class="truncatable">`)
	assert.Contains(t, out, "Show more")
	assert.Contains(t, out, `<div class="tool-result">`)
	assert.NotContains(t, out, "tool-error\"")
}

func TestHTMLExporter_TextAndToolCalls(t *testing.T) {
	out := renderHTML(t, geminiRecord(), "")

	start := strings.Index(out, `<div class="message gemini">`)
	require.GreaterOrEqual(t, start, 0)
	message := out[start:]
	if end := strings.Index(message[1:], `<div class="message `); end >= 0 {
		message = message[:end+1]
	}

	text := strings.Index(message, "<p>Reading the file now.</p>")
	tool := strings.Index(message, `<div class="tool-use"`)
	require.GreaterOrEqual(t, text, 0, "text missing from the tool-bearing message")
	require.GreaterOrEqual(t, tool, 0, "tool call missing from the tool-bearing message")
	assert.Less(t, text, tool, "text renders before tool calls")
	assert.Equal(t, 1, strings.Count(message, `<div class="message-content">`))
}

func TestHTMLExporter_MissingToolResult(t *testing.T) {
	rec := internal.CreateTestRecordWithMessages(internal.SourceGemini, "g-3", []internal.Message{
		{Role: "gemini", ToolCalls: []internal.ToolCall{
			internal.CreateTestToolCall("list_directory", map[string]any{"path": "."}, nil, false),
		}},
	})

	out := renderHTML(t, rec, "")
	assert.Contains(t, out, `<div class="tool-result">`)
	assert.Contains(t, out, `<pre class="json">{}</pre>`)
	assert.NotContains(t, out, "<pre></pre>")
}

func TestHTMLExporter_JSONRoundTrip(t *testing.T) {
	rec := geminiRecord()
	call := rec.Messages[1].ToolCalls[0]

	out := renderHTML(t, rec, "")
	matches := jsonPreRE.FindAllStringSubmatch(out, -1)
	require.Len(t, matches, 2)

	var gotArgs, wantArgs any
	require.NoError(t, json.Unmarshal([]byte(html.UnescapeString(matches[0][1])), &gotArgs))
	require.NoError(t, json.Unmarshal(call.Args, &wantArgs))
	assert.Equal(t, wantArgs, gotArgs)

	var gotResult, wantResult any
	require.NoError(t, json.Unmarshal([]byte(html.UnescapeString(matches[1][1])), &gotResult))
	require.NoError(t, json.Unmarshal(call.Result, &wantResult))
	assert.Equal(t, wantResult, gotResult)
}

func TestHTMLExporter_ClaudeBlocks(t *testing.T) {
	nested, err := json.Marshal(`{"lines": 42}`)
	require.NoError(t, err)

	rec := internal.CreateTestRecordWithMessages(internal.SourceClaude, "c-1", []internal.Message{
		{Role: "user", Timestamp: "2024-02-01T09:00:00Z", Text: "# Heading\n\n| a | b |\n|---|---|\n| 1 | 2 |\n\n```go\nfmt.Println()\n```"},
		{Role: "assistant", Timestamp: "2024-02-01T09:00:01Z", Blocks: []internal.Block{
			{Type: internal.BlockText, Text: "Running it."},
			{Type: internal.BlockToolUse, Tool: &internal.ToolCall{ID: "toolu_1", Name: "Bash", Args: json.RawMessage(`{"command":"wc -l"}`)}},
		}},
		{Role: "user", Timestamp: "2024-02-01T09:00:02Z", Blocks: []internal.Block{
			{Type: internal.BlockToolResult, Tool: &internal.ToolCall{ID: "toolu_1", Result: nested}},
			{Type: internal.BlockToolResult, Tool: &internal.ToolCall{ID: "toolu_2", Result: json.RawMessage(`"permission denied"`), IsError: true}},
		}},
		{Role: "user", Timestamp: "2024-02-01T09:00:03Z", Blocks: []internal.Block{}},
	})

	out := renderHTML(t, rec, "")

	assert.Contains(t, out, "<h1>Heading</h1>")
	assert.Contains(t, out, "<table>")
	assert.Contains(t, out, `<code class="language-go">`)
	assert.Contains(t, out, "<p>Running it.</p>")
	assert.Contains(t, out, `data-tool-id="toolu_1"`)
	assert.Contains(t, out, `<div class="tool-result tool-error">`)
	assert.Contains(t, out, "<pre>permission denied</pre>")
	assert.Equal(t, 3, strings.Count(out, `<div class="message `))

	matches := jsonPreRE.FindAllStringSubmatch(out, -1)
	require.Len(t, matches, 2)
	var decoded map[string]any
	require.NoError(t, json.Unmarshal([]byte(html.UnescapeString(matches[1][1])), &decoded))
	assert.Equal(t, float64(42), decoded["lines"])
}

func TestHTMLExporter_EscapesText(t *testing.T) {
	rec := internal.CreateTestRecordWithMessages(internal.SourceGemini, "g-2", []internal.Message{
		{Role: "user", ToolCalls: []internal.ToolCall{{
			Name:   "<script>alert(1)</script>",
			Result: json.RawMessage(`"<b>not json</b>"`),
		}}},
	})

	out := renderHTML(t, rec, "<b>title</b>")
	assert.NotContains(t, out, "<script>alert(1)</script>")
	assert.NotContains(t, out, "<b>not json</b>")
	assert.Contains(t, out, "<title>&lt;b&gt;title&lt;/b&gt;</title>")
}
