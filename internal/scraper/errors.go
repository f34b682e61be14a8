package scraper

import "errors"

// Error kinds from spec §7. Each wraps the underlying cause via %w so
// callers can classify with errors.Is while still seeing the detail.
var (
	// ErrMalformedURL means a seed could not be normalized; fatal for
	// that seed only, other seeds continue.
	ErrMalformedURL = errors.New("scraper: malformed url")
	// ErrTransportFailure covers connect/TLS/timeout/5xx/408/429 —
	// retryable up to Config.Tries.
	ErrTransportFailure = errors.New("scraper: transport failure")
	// ErrHTTPClient covers 4xx responses other than 408/429 —
	// non-retryable, the node is skipped.
	ErrHTTPClient = errors.New("scraper: http client error")
	// ErrParseFailure means the flavor dispatcher or extractor could not
	// process the body; treated as an empty link list.
	ErrParseFailure = errors.New("scraper: parse failure")
	// ErrIOWrite covers record/download write failures; fatal for that
	// item only.
	ErrIOWrite = errors.New("scraper: io write failure")
	// ErrConfigConflict is fatal before any crawling begins.
	ErrConfigConflict = errors.New("scraper: config conflict")
)
