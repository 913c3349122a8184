// Package saver turns selected records into files: it asks for a title,
// renders the record and writes it to the output directory.
package saver

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/iksnae/chat-transcripts/internal"
	"github.com/iksnae/chat-transcripts/internal/export"
	"github.com/iksnae/chat-transcripts/internal/title"
)

// TitleGenerator produces a title for a raw transcript
type TitleGenerator interface {
	Generate(ctx context.Context, transcript string) title.Result
}

// Summary counts the outcome of a batch
type Summary struct {
	Saved  int
	Failed int
	Paths  []string
}

// Saver writes records to an output directory in one format
type Saver struct {
	outputDir string
	exporter  export.Exporter
	titles    TitleGenerator
	log       *internal.Logger
}

// New creates a Saver. A nil titles generator disables AI titles, so every
// file takes its fallback name.
func New(outputDir string, exporter export.Exporter, titles TitleGenerator, log *internal.Logger) *Saver {
	return &Saver{
		outputDir: outputDir,
		exporter:  exporter,
		titles:    titles,
		log:       log,
	}
}

// OutputDir returns the directory files are written to
func (s *Saver) OutputDir() string {
	return s.outputDir
}

// Prepare creates the output directory
func (s *Saver) Prepare() error {
	if err := os.MkdirAll(s.outputDir, 0755); err != nil {
		return &internal.FileError{Path: s.outputDir, Op: "mkdir", Err: err}
	}
	return nil
}

// Save writes one record and returns the path of the new file.
// Files with the same name are overwritten.
func (s *Saver) Save(ctx context.Context, rec *internal.Record) (string, error) {
	result := s.title(ctx, rec)
	docTitle, _ := result.Title()

	var buf bytes.Buffer
	if err := s.exporter.Export(rec, docTitle, &buf); err != nil {
		return "", fmt.Errorf("failed to render: %w", err)
	}

	path := filepath.Join(s.outputDir, s.Filename(rec, result))
	if err := os.WriteFile(path, buf.Bytes(), 0644); err != nil {
		return "", &internal.FileError{Path: path, Op: "write", Err: err}
	}

	s.log.Debug("Saved %s %s to %s", rec.Source, rec.ID, path)
	return path, nil
}

// Filename returns "<sanitized title>.<ext>", or "<source>-<id>.<ext>" when
// there is no usable title
func (s *Saver) Filename(rec *internal.Record, result title.Result) string {
	ext := s.exporter.Extension()
	if t, ok := result.Title(); ok {
		if name := strings.TrimSpace(internal.SanitizeFilename(t)); name != "" {
			return name + "." + ext
		}
	}
	return internal.FallbackFilename(rec, ext)
}

func (s *Saver) title(ctx context.Context, rec *internal.Record) title.Result {
	if s.titles == nil {
		return title.Failed(fmt.Errorf("title generation disabled"))
	}
	transcript, err := rec.RawTranscript()
	if err != nil {
		s.log.Warn("Failed to prepare transcript for %s: %v", rec.Path, err)
		return title.Failed(err)
	}
	return s.titles.Generate(ctx, transcript)
}

// SaveAll saves every record, reporting progress on p. A failing record is
// logged with its origin path and the batch continues. The error is only
// set when ctx is cancelled.
func (s *Saver) SaveAll(ctx context.Context, records []*internal.Record, p *internal.Progress) (Summary, error) {
	var summary Summary

	steps := make([]internal.ProgressStep, 0, len(records))
	for _, rec := range records {
		steps = append(steps, internal.ProgressStep{
			Message:  "Saving " + internal.DisplayLabel(rec),
			Optional: true,
			Fn: func() error {
				path, err := s.Save(ctx, rec)
				if err != nil {
					return &internal.ExportError{Format: s.exporter.Extension(), Path: rec.Path, Err: err}
				}
				summary.Saved++
				summary.Paths = append(summary.Paths, path)
				return nil
			},
		})
	}

	failed, err := p.RunSteps(ctx, steps)
	summary.Failed = failed
	if err != nil {
		summary.Failed = len(records) - summary.Saved
	}
	return summary, err
}
