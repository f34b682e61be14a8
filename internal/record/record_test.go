package record

import (
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
)

func TestWriterAppendURLsAndStats(t *testing.T) {
	path := filepath.Join(t.TempDir(), "URL_Records.txt")
	w := NewWriter(path)

	if err := w.AppendURLs([]string{"http://x/a.txt", "http://x/b.txt"}); err != nil {
		t.Fatalf("AppendURLs: %v", err)
	}
	if err := w.AppendStats(Stats{Total: 2, OK: 2}); err != nil {
		t.Fatalf("AppendStats: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}

	want := "http://x/a.txt\nhttp://x/b.txt\n\nTotal: 2\nOK: 2\nFailed: 0\n"
	if string(data) != want {
		t.Errorf("file content =\n%q\nwant\n%q", data, want)
	}
}

func TestWriterSerializesConcurrentAppends(t *testing.T) {
	path := filepath.Join(t.TempDir(), "records.txt")
	w := NewWriter(path)

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			_ = w.AppendURLs([]string{"http://x/" + string(rune('a'+n))})
		}(i)
	}
	wg.Wait()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	lines := strings.Split(strings.TrimRight(string(data), "\n"), "\n")
	if len(lines) != 20 {
		t.Errorf("got %d lines, want 20 (no interleaved/lost writes)", len(lines))
	}
}
