// newshound/utils/workitems/workitems.go
package workitems

import (
	"encoding/json"
	"os"
	"strconv"
	"strings"
)

// Source resolves crawl input variables: a JSON work-item file first
// (the payload the scheduler hands us), the process environment second,
// the caller's default last.
type Source struct {
	payload map[string]any
}

// Load reads the work-item file at path. An empty path or a missing
// file yields an env-only source, not an error: the crawl inputs are
// best-effort and every variable has a default.
func Load(path string) *Source {
	s := &Source{payload: map[string]any{}}
	if path == "" {
		return s
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return s
	}
	var doc struct {
		Payload map[string]any `json:"payload"`
	}
	if err := json.Unmarshal(data, &doc); err != nil {
		return s
	}
	if doc.Payload != nil {
		s.payload = doc.Payload
	}
	return s
}

// GetVariable returns the string value of a work-item variable.
func (s *Source) GetVariable(name, fallback string) string {
	if v, ok := s.payload[name]; ok {
		switch t := v.(type) {
		case string:
			return t
		case float64:
			return strconv.FormatFloat(t, 'f', -1, 64)
		case bool:
			return strconv.FormatBool(t)
		}
	}
	if v := os.Getenv(strings.ToUpper(name)); v != "" {
		return v
	}
	return fallback
}

// GetIntVariable returns an integer work-item variable.
func (s *Source) GetIntVariable(name string, fallback int) int {
	if v, ok := s.payload[name]; ok {
		switch t := v.(type) {
		case float64:
			return int(t)
		case string:
			if n, err := strconv.Atoi(strings.TrimSpace(t)); err == nil {
				return n
			}
		}
	}
	if v := os.Getenv(strings.ToUpper(name)); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}
