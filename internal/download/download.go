// Package download implements the byte-sink downloader: given a list of
// discovered file URIs, it fetches each and writes it to disk under a
// configured output directory, placing it according to its descriptor's
// directory path (optionally flattened or trimmed).
package download

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/tariktz/gopherseo-od/internal/descriptor"
	"github.com/tariktz/gopherseo-od/internal/fetch"
	"github.com/tariktz/gopherseo-od/internal/odlog"
)

// Config controls on-disk placement for a Downloader.
type Config struct {
	// OutputDir is the root directory files are written under.
	OutputDir string
	// NoDirs flattens every file into OutputDir directly, discarding
	// its directory path.
	NoDirs bool
	// CutDirs drops this many leading path segments before placing the
	// file, like wget's --cut-dirs.
	CutDirs int
}

// Downloader writes discovered file URIs to disk.
type Downloader struct {
	cfg     Config
	fetcher fetch.Fetcher
}

// New builds a Downloader sharing fetcher with the scraper's requests.
func New(cfg Config, fetcher fetch.Fetcher) *Downloader {
	return &Downloader{cfg: cfg, fetcher: fetcher}
}

// Download fetches each uri in order and writes it under cfg.OutputDir. A
// single file's failure is logged and does not abort the remaining files —
// IOWriteFailure is fatal for that item only, per spec §7.
func (d *Downloader) Download(ctx context.Context, uris []string) {
	for _, uri := range uris {
		if err := d.downloadOne(ctx, uri); err != nil {
			odlog.Errorf("download %s: %v", uri, err)
		}
	}
}

func (d *Downloader) downloadOne(ctx context.Context, uri string) error {
	resp, err := d.fetcher.Fetch(ctx, uri)
	if err != nil {
		return err
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 400 {
		return fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	path := d.TargetPath(uri)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("mkdir: %w", err)
	}
	if err := os.WriteFile(path, resp.Body, 0o644); err != nil {
		return fmt.Errorf("write: %w", err)
	}
	return nil
}

// TargetPath maps uri to the on-disk path it would be written to, honoring
// NoDirs and CutDirs. It fetches nothing.
func (d *Downloader) TargetPath(uri string) string {
	desc := descriptor.New(uri)

	if d.cfg.NoDirs {
		return filepath.Join(d.cfg.OutputDir, desc.Name)
	}

	segments := splitDirPath(desc.DirPath)
	if d.cfg.CutDirs > 0 {
		if d.cfg.CutDirs >= len(segments) {
			segments = nil
		} else {
			segments = segments[d.cfg.CutDirs:]
		}
	}

	parts := append([]string{d.cfg.OutputDir}, segments...)
	parts = append(parts, desc.Name)
	return filepath.Join(parts...)
}

func splitDirPath(dirPath string) []string {
	trimmed := strings.Trim(dirPath, "/")
	if trimmed == "" {
		return nil
	}
	return strings.Split(trimmed, "/")
}
