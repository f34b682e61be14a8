// Package record implements the byte-sink recorder: a mutex-guarded record
// file shared across every concurrent driver task (spec §4.E/§5), holding
// one discovered URL per line plus an optional trailing stats block.
package record

import (
	"bufio"
	"fmt"
	"os"
	"sync"
)

// Stats is the optional trailing block appended to the record file,
// reflecting reachability only (spec §6.2: "Total: N", "OK: K",
// "Failed: N-K").
type Stats struct {
	Total int
	OK    int
}

// Writer serializes writes to a single record file path across however
// many concurrent per-seed tasks hold a reference to it.
type Writer struct {
	mu   sync.Mutex
	path string
}

// NewWriter returns a Writer for path. The file is created on the first
// write if it does not exist, not here, so constructing a Writer is
// side-effect free; an existing file is appended to, never truncated.
func NewWriter(path string) *Writer {
	return &Writer{path: path}
}

// AppendURLs appends urls, one per line, LF-terminated, to the record
// file.
func (w *Writer) AppendURLs(urls []string) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	f, err := os.OpenFile(w.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("record: open %s: %w", w.path, err)
	}
	defer f.Close()

	buf := bufio.NewWriter(f)
	for _, u := range urls {
		if _, err := fmt.Fprintf(buf, "%s\n", u); err != nil {
			return fmt.Errorf("record: write %s: %w", w.path, err)
		}
	}
	return buf.Flush()
}

// AppendStats appends stats's trailing block: a blank line, then
// Total/OK/Failed, one per line.
func (w *Writer) AppendStats(stats Stats) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	f, err := os.OpenFile(w.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("record: open %s: %w", w.path, err)
	}
	defer f.Close()

	_, err = fmt.Fprintf(f, "\nTotal: %d\nOK: %d\nFailed: %d\n", stats.Total, stats.OK, stats.Total-stats.OK)
	if err != nil {
		return fmt.Errorf("record: write stats %s: %w", w.path, err)
	}
	return nil
}
