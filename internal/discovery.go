package internal

import (
	"errors"
	"fmt"
	"iter"
	"path/filepath"
	"sort"
	"strings"
)

// Scanner discovers transcripts under the configured roots
type Scanner struct {
	paths TranscriptPaths
	log   *Logger
}

// NewScanner creates a Scanner for the given paths
func NewScanner(paths TranscriptPaths, log *Logger) *Scanner {
	return &Scanner{paths: paths, log: log}
}

// Paths returns the roots the scanner walks
func (s *Scanner) Paths() TranscriptPaths {
	return s.paths
}

// Scan lazily yields one record per qualifying file. Gemini files come
// first, then Claude files, each in glob order. Files that cannot be read or
// parsed are logged and skipped.
func (s *Scanner) Scan(filter SourceFilter) iter.Seq[*Record] {
	return func(yield func(*Record) bool) {
		for _, src := range Sources {
			if !filter.Includes(src) {
				continue
			}
			for _, path := range s.files(src) {
				rec := s.parse(src, path)
				if rec == nil {
					continue
				}
				if !yield(rec) {
					return
				}
			}
		}
	}
}

// All collects every record from Scan
func (s *Scanner) All(filter SourceFilter) []*Record {
	var records []*Record
	for rec := range s.Scan(filter) {
		records = append(records, rec)
	}
	return records
}

// Count returns the number of candidate files per source, before parsing
func (s *Scanner) Count(filter SourceFilter) map[Source]int {
	counts := make(map[Source]int)
	for _, src := range Sources {
		if filter.Includes(src) {
			counts[src] = len(s.files(src))
		}
	}
	return counts
}

// Find returns the record whose ID equals id, or failing that the only
// record whose ID starts with id.
func (s *Scanner) Find(filter SourceFilter, id string) (*Record, error) {
	if id == "" {
		return nil, errors.New("empty session id")
	}

	var prefixed []*Record
	for rec := range s.Scan(filter) {
		if rec.ID == id {
			return rec, nil
		}
		if strings.HasPrefix(rec.ID, id) {
			prefixed = append(prefixed, rec)
		}
	}

	switch len(prefixed) {
	case 0:
		return nil, fmt.Errorf("session not found: %s", id)
	case 1:
		return prefixed[0], nil
	default:
		return nil, fmt.Errorf("session id %s is ambiguous (%d matches)", id, len(prefixed))
	}
}

// files returns candidate session files for a source
func (s *Scanner) files(src Source) []string {
	if !s.paths.Exists(src) {
		s.log.Debug("No %s transcript directory at %s", src, s.paths.Dir(src))
		return nil
	}

	matches, err := filepath.Glob(s.paths.Pattern(src))
	if err != nil {
		s.log.Warn("%v", &FileError{Path: s.paths.Pattern(src), Op: "glob", Err: err})
		return nil
	}
	sort.Strings(matches)

	if src != SourceClaude {
		return matches
	}

	files := matches[:0]
	for _, path := range matches {
		if IsClaudeAgentLog(path) {
			s.log.Debug("Skipping agent log %s", path)
			continue
		}
		files = append(files, path)
	}
	return files
}

// parse converts one file into a record, or nil when it does not qualify
func (s *Scanner) parse(src Source, path string) *Record {
	var (
		rec *Record
		err error
	)
	switch src {
	case SourceGemini:
		rec, err = ParseGeminiFile(path)
	case SourceClaude:
		rec, err = ParseClaudeFile(path)
	}

	switch {
	case err == nil:
		return rec
	case errors.Is(err, errNoSessionID), errors.Is(err, errNoMessages):
		s.log.Debug("Skipping %s file %s: %v", src, path, err)
	default:
		s.log.Warn("Error parsing %s file %s: %v", src.Label(), path, err)
	}
	return nil
}
