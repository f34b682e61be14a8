// Package driver implements the crawl driver: it runs one scraper per seed
// URL concurrently, then hands each seed's result to the recorder and/or
// downloader, sharing a single HTTP client and a single record-file writer
// across every task (spec §4.E, §5).
package driver

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/tariktz/gopherseo-od/internal/download"
	"github.com/tariktz/gopherseo-od/internal/fetch"
	"github.com/tariktz/gopherseo-od/internal/odlog"
	"github.com/tariktz/gopherseo-od/internal/record"
	"github.com/tariktz/gopherseo-od/internal/scraper"
)

// Config is the enumerated driver configuration of spec §3, built once by
// cmd/scrape.go from CLI flags and threaded read-only through every task.
type Config struct {
	Depth      int
	Pages      int
	NoDirs     bool
	CutDirs    int
	Timeout    time.Duration
	Wait       time.Duration
	RetryWait  time.Duration
	RandomWait bool
	Tries      int
	Redirects  int
	Accept     *regexp.Regexp
	Reject     *regexp.Regexp

	UserAgent string
	Headers   map[string]string
	Proxy     string
	ProxyUser string
	ProxyPass string
	HTTPSOnly bool

	Record      bool
	RecordOnly  bool
	NoStats     bool
	Test        bool
	InputRecord string
	Output      string

	OutputRecord string
}

// SeedResult is one seed's outcome: its file/subdir lists on success, or a
// non-nil Err. A failed seed never aborts the others.
type SeedResult struct {
	Seed    string
	Files   []string
	SubDirs []string
	Err     error
}

// Summary is the aggregate outcome of a Run.
type Summary struct {
	SeedResults []SeedResult
}

// Run cleans seeds, builds the shared collaborators, and fans one task out
// per seed. In --input-record mode it skips scraping entirely and runs a
// reachability-only pass instead.
func Run(ctx context.Context, cfg Config, seeds []string) (Summary, error) {
	seeds = cleanSeeds(seeds)

	if err := validate(cfg, seeds); err != nil {
		return Summary{}, err
	}

	if cfg.InputRecord != "" {
		return runInputRecordMode(ctx, cfg)
	}

	fetcher, err := fetch.NewHTTPFetcher(fetch.ClientConfig{
		UserAgent:    cfg.UserAgent,
		Headers:      cfg.Headers,
		Timeout:      cfg.Timeout,
		MaxRedirects: cfg.Redirects,
		ProxyURL:     cfg.Proxy,
		ProxyUser:    cfg.ProxyUser,
		ProxyPass:    cfg.ProxyPass,
		HTTPSOnly:    cfg.HTTPSOnly,
	})
	if err != nil {
		return Summary{}, err
	}

	var recorder *record.Writer
	if cfg.Record || cfg.RecordOnly {
		recorder = record.NewWriter(filepath.Join(cfg.Output, cfg.OutputRecord))
	}

	var downloader *download.Downloader
	if !cfg.Test && !cfg.RecordOnly {
		downloader = download.New(download.Config{
			OutputDir: cfg.Output,
			NoDirs:    cfg.NoDirs,
			CutDirs:   cfg.CutDirs,
		}, fetcher)
	}

	results := make([]SeedResult, len(seeds))

	g, gctx := errgroup.WithContext(ctx)
	for i, seed := range seeds {
		i, seed := i, seed
		g.Go(func() error {
			results[i] = runSeed(gctx, cfg, seed, fetcher, recorder, downloader)
			return nil
		})
	}
	_ = g.Wait()

	return Summary{SeedResults: results}, nil
}

func runSeed(ctx context.Context, cfg Config, seed string, fetcher fetch.Fetcher, recorder *record.Writer, downloader *download.Downloader) SeedResult {
	odlog.Infof("seed %s: starting", seed)

	res, err := scraper.Scrape(ctx, seed, scraper.Config{
		MaxDepth:   cfg.Depth,
		MaxPages:   cfg.Pages,
		Wait:       cfg.Wait,
		RandomWait: cfg.RandomWait,
		RetryWait:  cfg.RetryWait,
		Tries:      cfg.Tries,
		Accept:     cfg.Accept,
		Reject:     cfg.Reject,
	}, fetcher)
	if err != nil {
		odlog.Errorf("seed %s: %v", seed, err)
		return SeedResult{Seed: seed, Err: err}
	}

	switch {
	case cfg.Test:
		for _, f := range res.Files {
			fmt.Println(f)
		}

	case cfg.RecordOnly:
		if err := recorder.AppendURLs(res.Files); err != nil {
			odlog.Errorf("seed %s: %v", seed, err)
		}
		if !cfg.NoStats {
			if err := recorder.AppendStats(record.Stats{Total: len(res.Files), OK: len(res.Files)}); err != nil {
				odlog.Errorf("seed %s: %v", seed, err)
			}
		}

	default:
		if cfg.Record {
			if err := recorder.AppendURLs(res.Files); err != nil {
				odlog.Errorf("seed %s: %v", seed, err)
			}
		}
		downloader.Download(ctx, res.Files)
	}

	odlog.Infof("seed %s: done (%d files, %d subdirs)", seed, len(res.Files), len(res.SubDirs))
	return SeedResult{Seed: seed, Files: res.Files, SubDirs: res.SubDirs}
}

// runInputRecordMode skips scraping and instead probes each URI in
// cfg.InputRecord, writing a stats file that reflects reachability only
// (spec §4.E).
func runInputRecordMode(ctx context.Context, cfg Config) (Summary, error) {
	uris, err := ReadLines(cfg.InputRecord)
	if err != nil {
		return Summary{}, fmt.Errorf("%w: %v", scraper.ErrConfigConflict, err)
	}

	fetcher, err := fetch.NewHTTPFetcher(fetch.ClientConfig{
		UserAgent:    cfg.UserAgent,
		Headers:      cfg.Headers,
		Timeout:      cfg.Timeout,
		MaxRedirects: cfg.Redirects,
		ProxyURL:     cfg.Proxy,
		ProxyUser:    cfg.ProxyUser,
		ProxyPass:    cfg.ProxyPass,
		HTTPSOnly:    cfg.HTTPSOnly,
	})
	if err != nil {
		return Summary{}, err
	}

	ok := 0
	for _, uri := range uris {
		resp, err := fetcher.Fetch(ctx, uri)
		if err == nil && resp.StatusCode >= 200 && resp.StatusCode < 400 {
			ok++
		}
	}

	if !cfg.NoStats {
		recorder := record.NewWriter(filepath.Join(cfg.Output, cfg.OutputRecord))
		if err := recorder.AppendStats(record.Stats{Total: len(uris), OK: ok}); err != nil {
			return Summary{}, err
		}
	}

	return Summary{}, nil
}

// validate enforces the one genuine fatal conflict: --input-record mode is
// a pure reachability pass and excludes ordinary seed scraping.
func validate(cfg Config, seeds []string) error {
	if cfg.InputRecord != "" && len(seeds) > 0 {
		return fmt.Errorf("%w: --input-record cannot be combined with seed URLs", scraper.ErrConfigConflict)
	}
	return nil
}

// cleanSeeds strips any seed literally equal to the program's own
// invocation name — a binary-name leak from the source this was ported
// from (spec §9 Design Notes).
func cleanSeeds(seeds []string) []string {
	self := filepath.Base(os.Args[0])

	cleaned := make([]string, 0, len(seeds))
	for _, s := range seeds {
		if s == self {
			continue
		}
		cleaned = append(cleaned, s)
	}
	return cleaned
}
