// Package scraper implements the bounded breadth-first traversal engine:
// given a seed URL and a Config, it fetches pages, classifies their OD
// flavor, harvests links through the flavor's extractor, and collects the
// discovered file URIs while honoring depth, pagination, and subtree
// containment. It depends only on the fetch.Fetcher collaborator interface,
// never on *http.Client directly.
package scraper

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/tariktz/gopherseo-od/internal/fetch"
	"github.com/tariktz/gopherseo-od/internal/odflavor"
	"github.com/tariktz/gopherseo-od/internal/odlog"
	"github.com/tariktz/gopherseo-od/internal/urlutil"
)

// Config holds the per-scrape knobs read from driver.Config. It is built
// once by the driver and passed by value into Scrape — never re-read or
// re-derived downstream.
type Config struct {
	MaxDepth   int
	MaxPages   int
	Wait       time.Duration
	RandomWait bool
	RetryWait  time.Duration
	Tries      int
	Accept     *regexp.Regexp
	Reject     *regexp.Regexp
}

// Result is a single seed's scrape outcome: the ordered file URIs
// discovered (discovery order, per spec §3) and the sub-directory URLs
// enqueued along the way, for reporting.
type Result struct {
	Files   []string
	SubDirs []string
}

// frontierEntry is one (url, depth, page) tuple in the BFS queue.
type frontierEntry struct {
	URL   string
	Depth int
	Page  int
}

// Scrape walks seed's directory tree per Config, using fetcher for every
// HTTP request. It returns once the frontier drains; transport/HTTP errors
// on individual nodes are logged and skipped rather than aborting the
// whole seed.
func Scrape(ctx context.Context, seed string, cfg Config, fetcher fetch.Fetcher) (Result, error) {
	normSeed, err := urlutil.Normalize(seed)
	if err != nil {
		return Result{}, fmt.Errorf("%w: %v", ErrMalformedURL, err)
	}

	frontier := []frontierEntry{{URL: normSeed, Depth: 0, Page: 0}}
	visited := make(map[string]struct{})

	var files []string
	var subDirs []string

	first := true
	for len(frontier) > 0 {
		if err := ctx.Err(); err != nil {
			return Result{Files: files, SubDirs: subDirs}, err
		}

		entry := frontier[0]
		frontier = frontier[1:]

		if _, seen := visited[entry.URL]; seen {
			continue
		}
		visited[entry.URL] = struct{}{}

		if !first {
			if err := waitBetweenRequests(ctx, cfg); err != nil {
				return Result{Files: files, SubDirs: subDirs}, err
			}
		}
		first = false

		odlog.Tracef("fetching %s (depth=%d page=%d)", entry.URL, entry.Depth, entry.Page)
		resp, err := fetchWithRetry(ctx, fetcher, entry.URL, cfg)
		if err != nil {
			odlog.Tracef("skipping %s: %v", entry.URL, err)
			continue
		}

		flavor, doc, err := odflavor.Dispatch(resp.Body, resp.Header.Get("Server"))
		if err != nil {
			odlog.Tracef("parse failure for %s, treating as empty: %v", entry.URL, err)
			continue
		}

		hrefs := odflavor.Extract(flavor, doc, entry.URL)
		odlog.Tracef("%s classified as %s, %d candidate hrefs", entry.URL, flavor, len(hrefs))

		for _, h := range hrefs {
			if urlutil.UnrelatedDirQueries(h) {
				continue
			}
			if urlutil.IsBackURL(h) || urlutil.IsHomeURL(h) || urlutil.IsRelURL(entry.URL, h) {
				continue
			}

			abs := urlutil.Join(entry.URL, h)
			absNorm, err := urlutil.Normalize(abs)
			if err != nil {
				continue
			}

			if !urlutil.SubDirCheck(absNorm, normSeed) {
				continue
			}

			if shouldFollow, nextPage := urlutil.HasPageQuery(h, entry.Page, cfg.MaxPages); shouldFollow {
				frontier = append(frontier, frontierEntry{URL: absNorm, Depth: entry.Depth, Page: nextPage})
				continue
			}
			// A pagination link that is not followed is dropped, never
			// crawled as a sub-directory.
			if strings.Contains(h, "?page=") {
				continue
			}

			if urlutil.IsURI(absNorm) {
				if acceptFile(absNorm, cfg) {
					files = append(files, absNorm)
				}
				continue
			}

			if entry.Depth < cfg.MaxDepth {
				subDirs = append(subDirs, absNorm)
				frontier = append(frontier, frontierEntry{URL: absNorm, Depth: entry.Depth + 1, Page: 0})
			}
		}
	}

	return Result{Files: files, SubDirs: subDirs}, nil
}

// acceptFile applies the accept/reject filter at record time, not during
// traversal, per spec §4.D: accept (when set) wins outright; reject only
// applies when accept is unset.
func acceptFile(uri string, cfg Config) bool {
	if cfg.Accept != nil {
		return cfg.Accept.MatchString(uri)
	}
	if cfg.Reject != nil {
		return !cfg.Reject.MatchString(uri)
	}
	return true
}
