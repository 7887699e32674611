package diag

import (
	"strings"
	"sync"
)

// Sources keeps the text of loaded files so that blocks can show excerpts.
// It is safe for concurrent use.
type Sources struct {
	mu    sync.RWMutex
	files map[string][]string
}

func NewSources() *Sources {
	return &Sources{files: make(map[string][]string)}
}

// Add registers the contents of a file, replacing any previous version.
func (s *Sources) Add(name string, contents []byte) {
	text := strings.ReplaceAll(string(contents), "\r\n", "\n")
	s.mu.Lock()
	defer s.mu.Unlock()
	s.files[name] = strings.Split(text, "\n")
}

// Line returns line n (1-based) of a file.
func (s *Sources) Line(name string, n int) (string, bool) {
	if s == nil {
		return "", false
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	lines, ok := s.files[name]
	if !ok || n < 1 || n > len(lines) {
		return "", false
	}
	return lines[n-1], true
}
