package export

import (
	"fmt"
	"io"
	"strings"

	"github.com/iksnae/chat-transcripts/internal"
)

// MarkdownExporter exports records in Markdown format
type MarkdownExporter struct{}

// Export writes rec as Markdown. The title only names the file, so it is
// not repeated in the document.
func (e *MarkdownExporter) Export(rec *internal.Record, _ string, w io.Writer) error {
	md := []string{
		fmt.Sprintf("**Date:** %s", internal.FormatTimestamp(rec.StartTime())),
		fmt.Sprintf("**Session ID:** %s\n", rec.ID),
		"---\n",
	}

	for _, msg := range rec.Messages {
		md = append(md, fmt.Sprintf("### %s (%s)", roleLabel(msg.Role), internal.FormatTimestamp(msg.Timestamp)))

		for _, text := range messageText(msg) {
			md = append(md, text, "")
		}

		if tools := markdownTools(msg); len(tools) > 0 {
			md = append(md, "\n<details>", "<summary>Tool Calls</summary>\n")
			md = append(md, tools...)
			md = append(md, "</details>\n")
		}
	}

	_, err := io.WriteString(w, strings.Join(md, "\n"))
	return err
}

// markdownTools lists every tool call of a message: Gemini tool calls with
// their results, then Claude tool_use and tool_result blocks in order
func markdownTools(msg internal.Message) []string {
	var lines []string
	for _, block := range msg.Blocks {
		if block.Tool == nil {
			continue
		}
		switch block.Type {
		case internal.BlockToolUse:
			lines = append(lines, toolUseLines(*block.Tool)...)
		case internal.BlockToolResult:
			label := "**Result:**"
			if block.Tool.IsError {
				label = "**Error:**"
			}
			lines = append(lines, resultLines(label, block.Tool.Result)...)
		}
	}
	for _, call := range msg.ToolCalls {
		lines = append(lines, toolUseLines(call)...)
		label := "**Result:**"
		if call.IsError {
			label = "**Error:**"
		}
		lines = append(lines, resultLines(label, call.Result)...)
	}
	return lines
}

func toolUseLines(call internal.ToolCall) []string {
	return []string{
		fmt.Sprintf("**Tool:** `%s`", call.Name),
		"```json",
		prettyJSON(call.Args),
		"```",
	}
}

func resultLines(label string, raw []byte) []string {
	body, isJSON := formatResult(raw)
	if !isJSON {
		if len(raw) == 0 {
			body = "{}"
		} else {
			// plain text results stay a JSON string so the fence stays valid
			body = prettyJSON(raw)
		}
	}
	return []string{label, "```json", body, "```"}
}

// Extension returns the file extension for this format
func (e *MarkdownExporter) Extension() string {
	return "md"
}
