package internal

import (
	"fmt"
	"strings"
)

const (
	// NoTitle is returned when a transcript has no usable user message
	NoTitle = "No title found"

	titleMaxRunes = 60
	caveatMarker  = "<local-command-caveat>"
)

var commandTagReplacer = strings.NewReplacer("<command-name>", "/", "</command-name>", "")

// ExtractTitle derives a short display title from the first meaningful user
// message. Caveat messages injected by Claude Code are skipped.
func ExtractTitle(rec *Record) string {
	for _, msg := range rec.Messages {
		if msg.Role != "user" {
			continue
		}

		content := msg.UserText()
		if strings.TrimSpace(content) == "" {
			continue
		}
		if strings.Contains(content, caveatMarker) {
			continue
		}

		clean := strings.Join(strings.Fields(content), " ")
		clean = commandTagReplacer.Replace(clean)
		return truncate(clean, titleMaxRunes)
	}

	return NoTitle
}

// DisplayLabel formats a record for the selection list,
// e.g. "[CLAUDE] 2024-01-01 12:00:00 - Fix the flaky test"
func DisplayLabel(rec *Record) string {
	return fmt.Sprintf("[%s] %s - %s",
		strings.ToUpper(rec.Source.String()),
		FormatTimestamp(rec.SortKey()),
		ExtractTitle(rec))
}

// truncate shortens s to max runes, appending "..." when it was cut
func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max]) + "..."
}
