package repl

import (
	"bufio"
	"os"
	"strings"
	"sync"
)

const baseHistory = "history.utf8"

// History manages command history with file persistence.
type History struct {
	path    string
	entries []string
	mu      sync.RWMutex
}

// NewHistory creates a new History instance with the given file path.
func NewHistory(path string) *History {
	return &History{path: path}
}

// Load reads history entries from the history file.
func (h *History) Load() error {
	h.mu.Lock()
	defer h.mu.Unlock()

	file, err := os.Open(h.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}

		return err
	}
	defer file.Close()

	h.entries = nil

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		h.entries = append(h.entries, line)
	}

	return scanner.Err()
}

// Write appends a new entry to the history and persists it. A duplicate of
// an existing entry moves to the end instead of repeating.
func (h *History) Write(entry string) (int, error) {
	entry = strings.TrimSpace(entry)
	if entry == "" {
		return 0, nil
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	// Skip if same as last entry.
	if len(h.entries) > 0 && h.entries[len(h.entries)-1] == entry {
		return len(entry), nil
	}

	for i, existing := range h.entries {
		if existing == entry {
			h.entries = append(h.entries[:i], h.entries[i+1:]...)

			break
		}
	}

	h.entries = append(h.entries, entry)

	return len(entry), h.persist()
}

// At returns the entry at index i, or "" when out of range.
func (h *History) At(i int) string {
	h.mu.RLock()
	defer h.mu.RUnlock()

	if i < 0 || i >= len(h.entries) {
		return ""
	}

	return h.entries[i]
}

// Len returns the number of history entries.
func (h *History) Len() int {
	h.mu.RLock()
	defer h.mu.RUnlock()

	return len(h.entries)
}

// persist rewrites the history file. Callers must hold the write lock.
func (h *History) persist() error {
	file, err := os.Create(h.path)
	if err != nil {
		return err
	}
	defer file.Close()

	w := bufio.NewWriter(file)

	for _, entry := range h.entries {
		_, err = w.WriteString(entry + "\n")
		if err != nil {
			return err
		}
	}

	return w.Flush()
}
