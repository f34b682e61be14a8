package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"regexp"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/tariktz/gopherseo-od/internal/driver"
	"github.com/tariktz/gopherseo-od/internal/scraper"
)

type scrapeOptions struct {
	depth      uint
	pages      uint
	wait       float64
	randomWait bool
	retryWait  float64
	tries      uint
	redirects  uint
	timeout    uint

	accept string
	reject string

	test        bool
	record      bool
	recordOnly  bool
	noStats     bool
	noDirs      bool
	cutDirs     uint
	output      string
	outputRec   string
	inputFile   string
	inputRecord string

	userAgent string
	headers   []string
	proxy     string
	proxyAuth string
	httpsOnly bool
}

func init() {
	opts := &scrapeOptions{}

	scrapeCmd := &cobra.Command{
		Use:   "scrape [URLS...]",
		Short: "Scrape (and optionally download) one or more open-directory seeds",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runScrape(cmd, args, opts)
		},
	}

	flags := scrapeCmd.Flags()
	flags.UintVarP(&opts.depth, "depth", "d", 20, "Max recursion depth for scraping")
	flags.UintVarP(&opts.pages, "pages", "p", 0, "Max pagination follow; 0 disables")
	flags.Float64VarP(&opts.wait, "wait", "w", 0, "Wait (seconds) between each scrape request")
	flags.BoolVar(&opts.randomWait, "random-wait", false, "Jitter --wait into [0.5x, 1.5x)")
	flags.Float64Var(&opts.retryWait, "retry-wait", 10, "Wait (seconds) between retries")
	flags.UintVarP(&opts.tries, "tries", "t", 20, "Retry attempts per request")
	flags.UintVarP(&opts.redirects, "redirects", "r", 10, "Maximum redirects to follow")
	flags.UintVarP(&opts.timeout, "timeout", "T", 0, "Per-request timeout in seconds; 0 disables")

	flags.StringVarP(&opts.accept, "accept", "A", "", "Regex: keep only matching file URIs")
	flags.StringVarP(&opts.reject, "reject", "R", "", "Regex: drop matching file URIs (ignored if --accept is set)")

	flags.BoolVar(&opts.test, "test", false, "Scrape and print the file list; no download, no record")
	flags.BoolVar(&opts.record, "record", false, "Write a record file of discovered URLs alongside downloading")
	flags.BoolVar(&opts.recordOnly, "record-only", false, "Write a record file instead of downloading")
	flags.BoolVar(&opts.noStats, "no-stats", false, "Suppress the trailing stats block in the record file")
	flags.BoolVar(&opts.noDirs, "no-dirs", false, "Flatten the downloader's directory hierarchy")
	flags.UintVarP(&opts.cutDirs, "cuts", "c", 0, "Drop this many leading path segments when downloading")
	flags.StringVarP(&opts.output, "output", "o", "./", "Download and record directory")
	flags.StringVar(&opts.outputRec, "output-record", "URL_Records.txt", "Record filename")
	flags.StringVarP(&opts.inputFile, "input-file", "i", "", "Read seed URLs from a file, one per line")
	flags.StringVar(&opts.inputRecord, "input-record", "", "Reachability-stats pass over a file of URIs instead of scraping")

	flags.StringVarP(&opts.userAgent, "user-agent", "U", "", "User-Agent header to send")
	flags.StringSliceVarP(&opts.headers, "headers", "H", nil, "Extra request headers, 'name$value', comma-separated")
	flags.StringVar(&opts.proxy, "proxy", "", "Proxy URL to route requests through")
	flags.StringVar(&opts.proxyAuth, "proxy-auth", "", "Proxy basic-auth credentials, 'user:pass'")
	flags.BoolVar(&opts.httpsOnly, "https-only", false, "Reject non-HTTPS responses")

	rootCmd.AddCommand(scrapeCmd)
}

func runScrape(cmd *cobra.Command, args []string, o *scrapeOptions) error {
	cfg, seeds, err := buildDriverConfig(o, args)
	if err != nil {
		return fmt.Errorf("%w: %v", scraper.ErrConfigConflict, err)
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	summary, err := driver.Run(ctx, cfg, seeds)
	if err != nil {
		return err
	}

	failed := 0
	for _, r := range summary.SeedResults {
		if r.Err != nil {
			failed++
		}
	}
	if failed > 0 && failed == len(summary.SeedResults) {
		return fmt.Errorf("all %d seed(s) failed", failed)
	}
	return nil
}

// buildDriverConfig assembles the read-only driver.Config once from opts
// and resolves the seed list, per Design Note "Options object duplication":
// this is the single place the CLI flags are turned into a config value.
func buildDriverConfig(o *scrapeOptions, args []string) (driver.Config, []string, error) {
	if err := validateConflicts(o, args); err != nil {
		return driver.Config{}, nil, err
	}

	seeds := append([]string{}, args...)
	if o.inputFile != "" {
		fromFile, err := driver.ReadLines(o.inputFile)
		if err != nil {
			return driver.Config{}, nil, err
		}
		seeds = append(seeds, fromFile...)
	}

	var accept, reject *regexp.Regexp
	var err error
	if o.accept != "" {
		if accept, err = regexp.Compile(o.accept); err != nil {
			return driver.Config{}, nil, fmt.Errorf("invalid --accept regex: %w", err)
		}
	} else if o.reject != "" {
		if reject, err = regexp.Compile(o.reject); err != nil {
			return driver.Config{}, nil, fmt.Errorf("invalid --reject regex: %w", err)
		}
	}

	headers, err := parseHeaders(o.headers)
	if err != nil {
		return driver.Config{}, nil, err
	}

	proxyUser, proxyPass, err := parseProxyAuth(o.proxyAuth)
	if err != nil {
		return driver.Config{}, nil, err
	}

	cfg := driver.Config{
		Depth:        int(o.depth),
		Pages:        int(o.pages),
		NoDirs:       o.noDirs,
		CutDirs:      int(o.cutDirs),
		Timeout:      time.Duration(o.timeout) * time.Second,
		Wait:         time.Duration(o.wait * float64(time.Second)),
		RetryWait:    time.Duration(o.retryWait * float64(time.Second)),
		RandomWait:   o.randomWait,
		Tries:        int(o.tries),
		Redirects:    int(o.redirects),
		Accept:       accept,
		Reject:       reject,
		UserAgent:    o.userAgent,
		Headers:      headers,
		Proxy:        o.proxy,
		ProxyUser:    proxyUser,
		ProxyPass:    proxyPass,
		HTTPSOnly:    o.httpsOnly,
		Record:       o.record,
		RecordOnly:   o.recordOnly,
		NoStats:      o.noStats,
		Test:         o.test,
		InputRecord:  o.inputRecord,
		Output:       o.output,
		OutputRecord: o.outputRec,
	}
	return cfg, seeds, nil
}

// validateConflicts enforces the fatal ConfigConflict rules of spec §3/§6:
// test disables both download and record; input-record is a pure stats pass
// and excludes ordinary seed scraping inputs. Accept together with reject is
// not checked here: it is no error, and buildDriverConfig simply compiles
// only the accept regex.
func validateConflicts(o *scrapeOptions, args []string) error {
	if o.inputRecord != "" {
		if len(args) > 0 || o.inputFile != "" {
			return fmt.Errorf("--input-record cannot be combined with seed URLs or --input-file")
		}
		if o.test || o.record || o.recordOnly {
			return fmt.Errorf("--input-record cannot be combined with --test, --record, or --record-only")
		}
		return nil
	}

	if len(args) == 0 && o.inputFile == "" {
		return fmt.Errorf("no seed URLs given (pass URLS or --input-file)")
	}

	if o.test && (o.record || o.recordOnly) {
		return fmt.Errorf("--test disables both the downloader and the recorder; cannot combine with --record/--record-only")
	}

	if strings.TrimSpace(o.output) == "" {
		return fmt.Errorf("--output must not be empty")
	}

	return nil
}
