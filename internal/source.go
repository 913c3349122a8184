package internal

import "fmt"

// Source identifies which assistant produced a transcript
type Source int

const (
	SourceGemini Source = iota + 1
	SourceClaude
)

// Sources lists every known source in discovery order
var Sources = []Source{SourceGemini, SourceClaude}

// String returns the lowercase source tag ("gemini", "claude")
func (s Source) String() string {
	switch s {
	case SourceGemini:
		return "gemini"
	case SourceClaude:
		return "claude"
	default:
		return fmt.Sprintf("Source(%d)", int(s))
	}
}

// Label returns the capitalized name used in titles
func (s Source) Label() string {
	switch s {
	case SourceGemini:
		return "Gemini"
	case SourceClaude:
		return "Claude"
	default:
		return s.String()
	}
}

// ParseSource parses a lowercase source tag
func ParseSource(tag string) (Source, error) {
	switch tag {
	case "gemini":
		return SourceGemini, nil
	case "claude":
		return SourceClaude, nil
	default:
		return 0, fmt.Errorf("unknown source: %s", tag)
	}
}

// MarshalText implements encoding.TextMarshaler
func (s Source) MarshalText() ([]byte, error) {
	switch s {
	case SourceGemini, SourceClaude:
		return []byte(s.String()), nil
	default:
		return nil, fmt.Errorf("cannot marshal %s", s)
	}
}

// UnmarshalText implements encoding.TextUnmarshaler
func (s *Source) UnmarshalText(text []byte) error {
	parsed, err := ParseSource(string(text))
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

// SourceFilter selects which sources discovery walks
type SourceFilter string

const (
	FilterAll    SourceFilter = "all"
	FilterGemini SourceFilter = "gemini"
	FilterClaude SourceFilter = "claude"
)

// ParseSourceFilter validates a --source value
func ParseSourceFilter(s string) (SourceFilter, error) {
	switch SourceFilter(s) {
	case FilterAll, FilterGemini, FilterClaude:
		return SourceFilter(s), nil
	case "":
		return FilterAll, nil
	default:
		return "", fmt.Errorf("unsupported source: %s (supported: gemini, claude, all)", s)
	}
}

// Includes reports whether the filter admits records from src
func (f SourceFilter) Includes(src Source) bool {
	switch f {
	case FilterAll, "":
		return true
	case FilterGemini:
		return src == SourceGemini
	case FilterClaude:
		return src == SourceClaude
	default:
		return false
	}
}
