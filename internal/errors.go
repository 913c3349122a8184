package internal

import "fmt"

// FileError represents errors accessing a transcript file
type FileError struct {
	Path string
	Op   string // "open", "read", "glob"
	Err  error
}

func (e *FileError) Error() string {
	return fmt.Sprintf("file error: %s %s: %v", e.Op, e.Path, e.Err)
}

func (e *FileError) Unwrap() error {
	return e.Err
}

// ParseError represents errors parsing transcript data
type ParseError struct {
	Source string // "gemini", "claude"
	Key    string // file path, optionally with a line number
	Err    error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse error [%s] %s: %v", e.Source, e.Key, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// SelectionError represents an unusable answer at the selection prompt
type SelectionError struct {
	Input  string
	Reason string
}

func (e *SelectionError) Error() string {
	return fmt.Sprintf("selection error %q: %s", e.Input, e.Reason)
}

// ExportError represents errors while saving one transcript
type ExportError struct {
	Format string
	Path   string
	Err    error
}

func (e *ExportError) Error() string {
	return fmt.Sprintf("export error [%s] %s: %v", e.Format, e.Path, e.Err)
}

func (e *ExportError) Unwrap() error {
	return e.Err
}
