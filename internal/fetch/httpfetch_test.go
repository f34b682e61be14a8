package fetch

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
)

func newTestServer() *httptest.Server {
	mux := http.NewServeMux()
	mux.HandleFunc("/page", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Server", "Apache/2.4")
		w.Header().Set("X-Probe", r.Header.Get("X-Custom"))
		_, _ = w.Write([]byte("<html><body>ok</body></html>"))
	})
	mux.HandleFunc("/redirected", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/page", http.StatusFound)
	})
	return httptest.NewServer(mux)
}

func TestHTTPFetcherFetch(t *testing.T) {
	ts := newTestServer()
	defer ts.Close()

	f, err := NewHTTPFetcher(ClientConfig{
		UserAgent: "gopherseo-od-test",
		Headers:   map[string]string{"X-Custom": "abc"},
	})
	if err != nil {
		t.Fatalf("NewHTTPFetcher: %v", err)
	}

	resp, err := f.Fetch(context.Background(), ts.URL+"/page")
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Errorf("StatusCode = %d, want 200", resp.StatusCode)
	}
	if resp.Header.Get("Server") != "Apache/2.4" {
		t.Errorf("Server header = %q", resp.Header.Get("Server"))
	}
	if resp.Header.Get("X-Probe") != "abc" {
		t.Errorf("custom header was not forwarded, got %q", resp.Header.Get("X-Probe"))
	}
	if string(resp.Body) != "<html><body>ok</body></html>" {
		t.Errorf("Body = %q", resp.Body)
	}
}

func TestHTTPFetcherFollowsRedirects(t *testing.T) {
	ts := newTestServer()
	defer ts.Close()

	f, err := NewHTTPFetcher(ClientConfig{})
	if err != nil {
		t.Fatalf("NewHTTPFetcher: %v", err)
	}

	resp, err := f.Fetch(context.Background(), ts.URL+"/redirected")
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if resp.FinalURL != ts.URL+"/page" {
		t.Errorf("FinalURL = %q, want %q", resp.FinalURL, ts.URL+"/page")
	}
}

func TestHTTPFetcherHTTPSOnlyRejectsPlainHTTP(t *testing.T) {
	ts := newTestServer()
	defer ts.Close()

	f, err := NewHTTPFetcher(ClientConfig{HTTPSOnly: true})
	if err != nil {
		t.Fatalf("NewHTTPFetcher: %v", err)
	}

	if _, err := f.Fetch(context.Background(), ts.URL+"/page"); err == nil {
		t.Error("expected error for non-https response under --https-only")
	}
}

func TestHTTPFetcherInvalidProxyURL(t *testing.T) {
	_, err := NewHTTPFetcher(ClientConfig{ProxyURL: "://not-a-url"})
	if err == nil {
		t.Error("expected error for malformed proxy URL")
	}
}
