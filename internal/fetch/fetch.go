// Package fetch defines the HTTP fetch collaborator the scraper consumes,
// plus its real implementation over *http.Client. Keeping the interface and
// the concrete client in the same package separates "what the scraper
// needs" from "how a page actually gets fetched", the way the teacher's
// crawler keeps colly construction out of its traversal logic.
package fetch

import (
	"context"
	"net/http"
)

// Response is the external-collaborator contract from spec §1: a fetch
// yields a status, headers, body, and the URL the response actually came
// from (after following redirects).
type Response struct {
	StatusCode int
	Header     http.Header
	Body       []byte
	FinalURL   string
}

// Fetcher is the collaborator interface the scraper depends on. It never
// sees *http.Client directly, so tests can substitute a fake without
// standing up a server.
type Fetcher interface {
	Fetch(ctx context.Context, url string) (Response, error)
}
