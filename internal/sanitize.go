package internal

import "strings"

// filenameReplacer drops characters that are illegal in file names on
// common filesystems
var filenameReplacer = strings.NewReplacer(
	`\`, "",
	"/", "",
	"*", "",
	"?", "",
	":", "",
	`"`, "",
	"<", "",
	">", "",
	"|", "",
)

// SanitizeFilename removes \ / * ? : " < > | while keeping spaces and casing
func SanitizeFilename(name string) string {
	return filenameReplacer.Replace(name)
}

// FallbackFilename returns the deterministic name used when no title is
// available, e.g. "claude-1234.html"
func FallbackFilename(rec *Record, ext string) string {
	return SanitizeFilename(rec.Source.String()+"-"+rec.ID) + "." + ext
}
