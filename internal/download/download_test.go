package download

import (
	"context"
	"net/http"
	"os"
	"path/filepath"
	"testing"

	"github.com/tariktz/gopherseo-od/internal/fetch"
)

type fakeFetcher struct {
	body []byte
}

func (f *fakeFetcher) Fetch(_ context.Context, _ string) (fetch.Response, error) {
	return fetch.Response{StatusCode: http.StatusOK, Body: f.body}, nil
}

func TestTargetPath(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		uri     string
		wantRel string
	}{
		{
			name:    "preserves directory structure",
			cfg:     Config{OutputDir: "/out"},
			uri:     "http://x/a/b/c.txt",
			wantRel: filepath.Join("a", "b", "c.txt"),
		},
		{
			name:    "no_dirs flattens",
			cfg:     Config{OutputDir: "/out", NoDirs: true},
			uri:     "http://x/a/b/c.txt",
			wantRel: "c.txt",
		},
		{
			name:    "cut_dirs drops leading segments",
			cfg:     Config{OutputDir: "/out", CutDirs: 1},
			uri:     "http://x/a/b/c.txt",
			wantRel: filepath.Join("b", "c.txt"),
		},
		{
			name:    "cut_dirs beyond depth flattens",
			cfg:     Config{OutputDir: "/out", CutDirs: 10},
			uri:     "http://x/a/b/c.txt",
			wantRel: "c.txt",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := New(tt.cfg, &fakeFetcher{})
			got := d.TargetPath(tt.uri)
			want := filepath.Join(tt.cfg.OutputDir, tt.wantRel)
			if got != want {
				t.Errorf("TargetPath(%q) = %q, want %q", tt.uri, got, want)
			}
		})
	}
}

func TestDownloadWritesFile(t *testing.T) {
	dir := t.TempDir()
	d := New(Config{OutputDir: dir}, &fakeFetcher{body: []byte("hello")})

	d.Download(context.Background(), []string{"http://x/sub/file.txt"})

	data, err := os.ReadFile(filepath.Join(dir, "sub", "file.txt"))
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if string(data) != "hello" {
		t.Errorf("content = %q, want %q", data, "hello")
	}
}
