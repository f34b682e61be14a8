package fetch

import (
	"context"
	"crypto/tls"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

// ClientConfig configures NewHTTPFetcher. It is built once per run (by
// driver.Run from driver.Config, or by the headers command from its flags)
// and never mutated afterward — the same "build once, share read-only"
// discipline the driver applies to driver.Config.
type ClientConfig struct {
	// UserAgent is sent as the User-Agent header on every request.
	UserAgent string
	// Headers are additional request headers applied to every request,
	// name -> value, as parsed by cmd.parseHeaders.
	Headers map[string]string
	// Timeout bounds a single request end-to-end (connect through body).
	// Zero means no timeout.
	Timeout time.Duration
	// MaxRedirects caps the number of redirects http.Client will follow.
	// Zero falls back to net/http's default of 10.
	MaxRedirects int
	// ProxyURL, if non-empty, routes every request through this proxy.
	ProxyURL string
	// ProxyUser and ProxyPass supply Proxy-Authorization as HTTP Basic
	// auth, parsed from the --proxy-auth "user:pass" flag.
	ProxyUser string
	ProxyPass string
	// HTTPSOnly rejects responses whose final URL scheme is not https.
	HTTPSOnly bool
}

// HTTPFetcher implements Fetcher over a shared *http.Client, the same
// shared-client-across-tasks model spec.md §4.E and §5 require.
type HTTPFetcher struct {
	client    *http.Client
	userAgent string
	headers   map[string]string
	httpsOnly bool
}

// NewHTTPFetcher builds the shared client once from cfg. The returned
// *HTTPFetcher is safe for concurrent use by every driver task.
func NewHTTPFetcher(cfg ClientConfig) (*HTTPFetcher, error) {
	transport := &http.Transport{
		TLSClientConfig: &tls.Config{},
	}

	if cfg.ProxyURL != "" {
		proxyURL, err := url.Parse(cfg.ProxyURL)
		if err != nil {
			return nil, fmt.Errorf("fetch: invalid proxy url: %w", err)
		}
		if cfg.ProxyUser != "" {
			proxyURL.User = url.UserPassword(cfg.ProxyUser, cfg.ProxyPass)
		}
		transport.Proxy = http.ProxyURL(proxyURL)
	}

	client := &http.Client{
		Transport: transport,
		Timeout:   cfg.Timeout,
	}

	maxRedirects := cfg.MaxRedirects
	if maxRedirects <= 0 {
		maxRedirects = 10
	}
	client.CheckRedirect = func(req *http.Request, via []*http.Request) error {
		if len(via) >= maxRedirects {
			return fmt.Errorf("fetch: stopped after %d redirects", maxRedirects)
		}
		return nil
	}

	return &HTTPFetcher{
		client:    client,
		userAgent: cfg.UserAgent,
		headers:   cfg.Headers,
		httpsOnly: cfg.HTTPSOnly,
	}, nil
}

// Fetch performs a GET against rawURL, reading the full body into memory.
// The body size here is bounded by what an OD listing page realistically
// is — a few hundred KB of HTML — so no streaming is needed.
func (f *HTTPFetcher) Fetch(ctx context.Context, rawURL string) (Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return Response{}, fmt.Errorf("fetch: build request: %w", err)
	}

	if f.userAgent != "" {
		req.Header.Set("User-Agent", f.userAgent)
	}
	for name, value := range f.headers {
		req.Header.Set(name, value)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return Response{}, fmt.Errorf("fetch: %w", err)
	}
	defer resp.Body.Close()

	if f.httpsOnly && resp.Request.URL.Scheme != "https" {
		return Response{}, fmt.Errorf("fetch: non-https response for %q rejected by --https-only", rawURL)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return Response{}, fmt.Errorf("fetch: read body: %w", err)
	}

	return Response{
		StatusCode: resp.StatusCode,
		Header:     resp.Header,
		Body:       body,
		FinalURL:   resp.Request.URL.String(),
	}, nil
}
