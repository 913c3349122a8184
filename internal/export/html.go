package export

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io"
	"strings"

	"github.com/iksnae/chat-transcripts/internal"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	gmhtml "github.com/yuin/goldmark/renderer/html"
)

//go:embed assets/page.html.tmpl assets/transcript.css assets/transcript.js
var assets embed.FS

var (
	pageTemplate = template.Must(template.ParseFS(assets, "assets/page.html.tmpl"))

	pageCSS = mustAsset("assets/transcript.css")
	pageJS  = mustAsset("assets/transcript.js")

	// Raw HTML in message text is passed through, matching how the
	// assistants' own UIs display it.
	mdConverter = goldmark.New(
		goldmark.WithExtensions(extension.Table),
		goldmark.WithRendererOptions(gmhtml.WithUnsafe()),
	)
)

func mustAsset(name string) string {
	data, err := assets.ReadFile(name)
	if err != nil {
		panic(err)
	}
	return string(data)
}

type htmlPage struct {
	Title     string
	SessionID string
	Date      string
	CSS       template.CSS
	JS        template.JS
	Messages  []htmlMessage
}

type htmlMessage struct {
	RoleClass string
	RoleLabel string
	Timestamp string
	Content   template.HTML
}

type htmlToolUse struct {
	ID   string
	Name string
	Args string
}

type htmlToolResult struct {
	Body    string
	JSON    bool
	IsError bool
}

// HTMLExporter renders a self-contained HTML page with embedded CSS and JS
type HTMLExporter struct{}

// Export writes the page for rec. The title is only used for the page
// <title>; it never appears in the body.
func (e *HTMLExporter) Export(rec *internal.Record, title string, w io.Writer) error {
	if title == "" {
		title = rec.DisplayTitle()
	}

	page := htmlPage{
		Title:     title,
		SessionID: rec.ID,
		Date:      rec.StartTime(),
		CSS:       template.CSS(pageCSS),
		JS:        template.JS(pageJS),
	}

	for i, msg := range rec.Messages {
		content, err := renderMessageContent(msg)
		if err != nil {
			return fmt.Errorf("failed to render message %d: %w", i, err)
		}
		if strings.TrimSpace(content) == "" {
			continue
		}
		page.Messages = append(page.Messages, htmlMessage{
			RoleClass: strings.ToLower(msg.Role),
			RoleLabel: roleLabel(msg.Role),
			Timestamp: msg.Timestamp,
			Content:   template.HTML(content),
		})
	}

	return pageTemplate.ExecuteTemplate(w, "page", page)
}

// Extension returns the file extension for this format
func (e *HTMLExporter) Extension() string {
	return "html"
}

// renderMessageContent renders text as markdown, then structured blocks in
// order, then any tool calls attached to the message
func renderMessageContent(msg internal.Message) (string, error) {
	var buf bytes.Buffer

	if msg.Text != "" {
		if err := mdConverter.Convert([]byte(msg.Text), &buf); err != nil {
			return "", err
		}
	}

	for _, block := range msg.Blocks {
		var err error
		switch block.Type {
		case internal.BlockText:
			if block.Text != "" {
				err = mdConverter.Convert([]byte(block.Text), &buf)
			}
		case internal.BlockToolUse:
			if block.Tool != nil {
				err = renderToolUse(&buf, *block.Tool)
			}
		case internal.BlockToolResult:
			if block.Tool != nil {
				err = renderToolResult(&buf, *block.Tool)
			}
		}
		if err != nil {
			return "", err
		}
	}

	for _, call := range msg.ToolCalls {
		// a call without a recorded result shows an empty object
		if len(bytes.TrimSpace(call.Result)) == 0 {
			call.Result = []byte("{}")
		}
		if err := renderToolUse(&buf, call); err != nil {
			return "", err
		}
		if err := renderToolResult(&buf, call); err != nil {
			return "", err
		}
	}

	return buf.String(), nil
}

func renderToolUse(w io.Writer, call internal.ToolCall) error {
	return pageTemplate.ExecuteTemplate(w, "tool-use", htmlToolUse{
		ID:   call.ID,
		Name: call.Name,
		Args: prettyJSON(call.Args),
	})
}

func renderToolResult(w io.Writer, call internal.ToolCall) error {
	body, isJSON := formatResult(call.Result)
	return pageTemplate.ExecuteTemplate(w, "tool-result", htmlToolResult{
		Body:    body,
		JSON:    isJSON,
		IsError: call.IsError,
	})
}
