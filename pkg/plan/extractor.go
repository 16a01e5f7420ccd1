// Package plan extracts a typed, orderable action list from free-form
// proposal text.
//
// The proposer is an unconstrained language model, so the grammar is
// deliberately tolerant: a line that looks like a tool invocation but cannot
// be parsed degrades to an Other action instead of failing the extraction.
// Extract is total — it always returns a Plan, possibly empty.
package plan

import (
	"fmt"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/caddan/ordna/pkg/domain"
	"github.com/mitchellh/mapstructure"
)

// Marker separates the plan body from the surrounding prose. Everything
// after its first occurrence is scanned for tool invocations.
const Marker = "PLAN:"

// callPrefix identifies candidate tool-invocation lines (case-insensitive).
const callPrefix = "call tool"

var callPattern = regexp.MustCompile(`(?i)^call tool\s+['"]([A-Za-z0-9_.-]+)['"]\s+with\s+args\s+(\{.*\})\s*$`)

type createArgs struct {
	Path string `mapstructure:"path"`
}

type moveArgs struct {
	Source      string `mapstructure:"source"`
	Destination string `mapstructure:"destination"`
}

// Extract parses proposal text into a Plan. Line order is preserved.
// Deterministic and side-effect free; an empty Plan is a valid outcome
// signalling that nothing actionable was found.
func Extract(text string) domain.Plan {
	if idx := strings.Index(text, Marker); idx >= 0 {
		text = text[idx+len(Marker):]
	}

	var p domain.Plan
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if !strings.HasPrefix(strings.ToLower(line), callPrefix) {
			continue
		}
		p.Actions = append(p.Actions, classify(line))
	}
	return p
}

// classify turns one kept line into a typed action. Any parse or validation
// failure yields Other so the operator still sees the line.
func classify(line string) domain.Action {
	m := callPattern.FindStringSubmatch(line)
	if m == nil {
		return domain.Action{Kind: domain.KindOther, Raw: line}
	}

	tool := strings.ToLower(m[1])
	args, err := parseArgs(m[2])
	if err != nil {
		return domain.Action{Kind: domain.KindOther, Raw: line}
	}

	switch tool {
	case string(domain.KindCreateDirectory):
		var a createArgs
		if err := mapstructure.Decode(args, &a); err != nil || !isRelative(a.Path) {
			break
		}
		return domain.Action{Kind: domain.KindCreateDirectory, Path: a.Path, Raw: line}

	case string(domain.KindMoveEntry):
		var a moveArgs
		if err := mapstructure.Decode(args, &a); err != nil || !isRelative(a.Source) || !isRelative(a.Destination) {
			break
		}
		return domain.Action{Kind: domain.KindMoveEntry, Source: a.Source, Destination: a.Destination, Raw: line}
	}

	return domain.Action{Kind: domain.KindOther, Raw: line}
}

// isRelative rejects empty paths and anything carrying a path-root marker.
// Containment against the session boundary is re-checked at execution time.
func isRelative(p string) bool {
	if p == "" || filepath.IsAbs(p) {
		return false
	}
	if strings.HasPrefix(p, "~") || strings.HasPrefix(p, "/") || strings.HasPrefix(p, `\`) {
		return false
	}
	// Windows drive prefix (e.g. C:) in proposals produced on any platform.
	if len(p) >= 2 && p[1] == ':' {
		return false
	}
	return true
}

// parseArgs reads a relaxed bracketed key/value payload such as
//
//	{'path': 'Images'} or { "source": "a.jpg", "destination": "b/a.jpg" }
//
// Keys may be bare or quoted; values may be single-quoted, double-quoted, or
// bare tokens. Nested structures are not supported — the filesystem tools
// only take flat string arguments.
func parseArgs(payload string) (map[string]any, error) {
	s := strings.TrimSpace(payload)
	if !strings.HasPrefix(s, "{") || !strings.HasSuffix(s, "}") {
		return nil, fmt.Errorf("payload is not bracketed: %q", payload)
	}
	s = strings.TrimSpace(s[1 : len(s)-1])

	args := make(map[string]any)
	for s != "" {
		key, rest, err := readToken(s, ':')
		if err != nil {
			return nil, err
		}
		value, rest, err := readToken(rest, ',')
		if err != nil {
			return nil, err
		}
		if key == "" {
			return nil, fmt.Errorf("empty key in payload: %q", payload)
		}
		args[key] = value
		s = rest
	}

	if len(args) == 0 {
		return nil, fmt.Errorf("empty payload: %q", payload)
	}
	return args, nil
}

// readToken consumes one quoted or bare token followed by an optional
// terminator rune, returning the token and the unconsumed remainder.
func readToken(s string, term rune) (string, string, error) {
	s = strings.TrimLeft(s, " \t")
	if s == "" {
		return "", "", fmt.Errorf("unexpected end of payload")
	}

	var token string
	if s[0] == '\'' || s[0] == '"' {
		quote := s[0]
		end := strings.IndexByte(s[1:], quote)
		if end < 0 {
			return "", "", fmt.Errorf("unterminated quote in payload")
		}
		token = s[1 : 1+end]
		s = s[2+end:]
	} else {
		end := strings.IndexAny(s, string(term))
		if end < 0 {
			token = strings.TrimSpace(s)
			s = ""
		} else {
			token = strings.TrimSpace(s[:end])
			s = s[end:]
		}
	}

	s = strings.TrimLeft(s, " \t")
	if s != "" {
		if rune(s[0]) != term {
			return "", "", fmt.Errorf("expected %q in payload", term)
		}
		s = s[1:]
	}
	return token, s, nil
}
