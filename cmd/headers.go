package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"sort"
	"time"

	"github.com/spf13/cobra"

	"github.com/tariktz/gopherseo-od/internal/fetch"
)

// headersOptions mirrors the subset of scrapeOptions that shapes the shared
// HTTP client; headers is a standalone diagnostic command and does not
// scrape or download anything.
type headersOptions struct {
	userAgent string
	headers   []string
	proxy     string
	proxyAuth string
	httpsOnly bool
	timeout   uint
	redirects uint
	only      string
}

func init() {
	opts := &headersOptions{}

	headersCmd := &cobra.Command{
		Use:   "headers <url>",
		Short: "Fetch a URL and print its response headers, without scraping",
		Long: `headers issues a single GET request against the given URL and prints its
response headers. It exists to let an operator diagnose why an OD flavor
was (or wasn't) detected, without running a full scrape.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runHeaders(cmd, args[0], opts)
		},
	}

	flags := headersCmd.Flags()
	flags.StringVarP(&opts.userAgent, "user-agent", "U", "", "User-Agent header to send")
	flags.StringSliceVarP(&opts.headers, "headers", "H", nil, "Extra request headers, 'name$value', comma-separated")
	flags.StringVar(&opts.proxy, "proxy", "", "Proxy URL to route the request through")
	flags.StringVar(&opts.proxyAuth, "proxy-auth", "", "Proxy basic-auth credentials, 'user:pass'")
	flags.BoolVar(&opts.httpsOnly, "https-only", false, "Reject a non-HTTPS response")
	flags.UintVarP(&opts.timeout, "timeout", "T", 0, "Request timeout in seconds; 0 disables")
	flags.UintVarP(&opts.redirects, "redirects", "r", 10, "Maximum redirects to follow")
	flags.StringVar(&opts.only, "only", "", "Print only this single header (case-insensitive) instead of all of them")

	rootCmd.AddCommand(headersCmd)
}

func runHeaders(cmd *cobra.Command, rawURL string, o *headersOptions) error {
	headers, err := parseHeaders(o.headers)
	if err != nil {
		return err
	}
	proxyUser, proxyPass, err := parseProxyAuth(o.proxyAuth)
	if err != nil {
		return err
	}

	fetcher, err := fetch.NewHTTPFetcher(fetch.ClientConfig{
		UserAgent:    o.userAgent,
		Headers:      headers,
		Timeout:      time.Duration(o.timeout) * time.Second,
		MaxRedirects: int(o.redirects),
		ProxyURL:     o.proxy,
		ProxyUser:    proxyUser,
		ProxyPass:    proxyPass,
		HTTPSOnly:    o.httpsOnly,
	})
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	resp, err := fetcher.Fetch(ctx, rawURL)
	if err != nil {
		return err
	}

	if o.only != "" {
		cmd.Println(resp.Header.Get(o.only))
		return nil
	}

	cmd.Printf("%s -> %d (final: %s)\n", rawURL, resp.StatusCode, resp.FinalURL)
	names := make([]string, 0, len(resp.Header))
	for name := range resp.Header {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		for _, value := range resp.Header[name] {
			cmd.Println(fmt.Sprintf("%s: %s", name, value))
		}
	}
	return nil
}
