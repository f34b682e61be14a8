package driver

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func newODTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()

	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/" {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Server", "nginx/1.18.0")
		_, _ = fmt.Fprint(w, `<html><body><pre>
<a href="../">../</a>
<a href="one.txt">one.txt</a>
<a href="two.bin">two.bin</a>
</pre></body></html>`)
	})
	mux.HandleFunc("/one.txt", func(w http.ResponseWriter, r *http.Request) {
		_, _ = fmt.Fprint(w, "one")
	})
	mux.HandleFunc("/two.bin", func(w http.ResponseWriter, r *http.Request) {
		_, _ = fmt.Fprint(w, "two")
	})
	mux.HandleFunc("/missing.txt", func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	})

	return httptest.NewServer(mux)
}

func TestRunTestMode(t *testing.T) {
	ts := newODTestServer(t)
	defer ts.Close()

	cfg := Config{Depth: 5, Tries: 1, Test: true, Output: t.TempDir()}
	summary, err := Run(context.Background(), cfg, []string{ts.URL + "/"})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(summary.SeedResults) != 1 {
		t.Fatalf("SeedResults = %d, want 1", len(summary.SeedResults))
	}
	if got := summary.SeedResults[0].Files; len(got) != 2 {
		t.Fatalf("Files = %v, want 2 entries", got)
	}
}

func TestRunRecordOnlyMode(t *testing.T) {
	ts := newODTestServer(t)
	defer ts.Close()

	out := t.TempDir()
	cfg := Config{
		Depth:        5,
		Tries:        1,
		RecordOnly:   true,
		Output:       out,
		OutputRecord: "records.txt",
	}
	if _, err := Run(context.Background(), cfg, []string{ts.URL + "/"}); err != nil {
		t.Fatalf("Run: %v", err)
	}

	data, err := os.ReadFile(filepath.Join(out, "records.txt"))
	if err != nil {
		t.Fatalf("read record file: %v", err)
	}
	content := string(data)
	if !strings.Contains(content, ts.URL+"/one.txt") || !strings.Contains(content, ts.URL+"/two.bin") {
		t.Errorf("record file missing expected URLs: %s", content)
	}
	if !strings.Contains(content, "Total: 2") || !strings.Contains(content, "OK: 2") {
		t.Errorf("record file missing stats block: %s", content)
	}
}

func TestRunDownloadMode(t *testing.T) {
	ts := newODTestServer(t)
	defer ts.Close()

	out := t.TempDir()
	cfg := Config{Depth: 5, Tries: 1, Output: out}
	if _, err := Run(context.Background(), cfg, []string{ts.URL + "/"}); err != nil {
		t.Fatalf("Run: %v", err)
	}

	for _, name := range []string{"one.txt", "two.bin"} {
		if _, err := os.Stat(filepath.Join(out, name)); err != nil {
			t.Errorf("expected downloaded file %s: %v", name, err)
		}
	}
}

func TestRunInputRecordMode(t *testing.T) {
	ts := newODTestServer(t)
	defer ts.Close()

	out := t.TempDir()
	inputPath := filepath.Join(out, "input.txt")
	if err := os.WriteFile(inputPath, []byte(ts.URL+"/one.txt\n"+ts.URL+"/missing.txt\n"), 0o644); err != nil {
		t.Fatalf("write input file: %v", err)
	}

	cfg := Config{
		InputRecord:  inputPath,
		Output:       out,
		OutputRecord: "stats.txt",
		Tries:        1,
	}
	if _, err := Run(context.Background(), cfg, nil); err != nil {
		t.Fatalf("Run: %v", err)
	}

	data, err := os.ReadFile(filepath.Join(out, "stats.txt"))
	if err != nil {
		t.Fatalf("read stats file: %v", err)
	}
	content := string(data)
	if !strings.Contains(content, "Total: 2") {
		t.Errorf("stats file missing total: %s", content)
	}
}

func TestRunRejectsSeedsWithInputRecord(t *testing.T) {
	cfg := Config{InputRecord: "some-file.txt", Output: t.TempDir()}
	_, err := Run(context.Background(), cfg, []string{"http://example.com/"})
	if err == nil {
		t.Fatal("expected a ConfigConflict error, got nil")
	}
}

func TestCleanSeedsStripsOwnInvocationName(t *testing.T) {
	self := filepath.Base(os.Args[0])
	got := cleanSeeds([]string{self, "http://example.com/"})
	if len(got) != 1 || got[0] != "http://example.com/" {
		t.Errorf("cleanSeeds = %v, want [http://example.com/]", got)
	}
}
