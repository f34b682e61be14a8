package odflavor

import (
	"bytes"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/tariktz/gopherseo-od/internal/urlutil"
)

// entry pairs a flavor tag with its ops; order here is the dispatch
// priority — specific flavors must be tried before the generic fallback.
type entry struct {
	flavor Flavor
	ops    ops
}

var registry = []entry{
	{MicrosoftIIS, iisOps},
	{OLAINDEX, olaindexOps},
	{AutoIndexPHP, autoindexPHPOps},
	{DirectoryLister, directoryListerOps},
	{DirectoryListingScript, directoryListingScriptOps},
	{Apache, apacheOps},
	{NGINX, nginxOps},
	{Generic, genericOps},
}

// Dispatch parses body and returns the first flavor (in priority order)
// whose detector matches, along with the parsed document for reuse by
// Extract. Generic always matches, so Dispatch never fails to classify a
// parseable document.
func Dispatch(body []byte, server string) (Flavor, *goquery.Document, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return Generic, nil, err
	}

	for _, e := range registry {
		if e.ops.detect(doc, server) {
			if e.flavor == AutoIndexPHP && !hasBreadcrumb(doc) {
				return AutoIndexPHPNoCrumb, doc, nil
			}
			return e.flavor, doc, nil
		}
	}
	return Generic, doc, nil
}

// Extract runs flavor's extractor over doc and returns the filtered hrefs
// in DOM order. AutoIndexPHPNoCrumb shares AutoIndexPHP's extractor — the
// two tags differ only in whether the page also carries breadcrumb nav.
func Extract(flavor Flavor, doc *goquery.Document, baseURL string) []string {
	if flavor == AutoIndexPHPNoCrumb {
		flavor = AutoIndexPHP
	}
	for _, e := range registry {
		if e.flavor == flavor {
			return e.ops.extract(doc, baseURL)
		}
	}
	return nil
}

func hasBreadcrumb(doc *goquery.Document) bool {
	return doc.Find(".breadcrumb, .crumb, nav.crumbs").Length() > 0
}

// filterOpts tunes the shared anchor filter pipeline for a single flavor.
type filterOpts struct {
	// extraParentText additionally discards anchors whose trimmed text
	// equals this literal (case-sensitive), for servers whose "go up"
	// link isn't the usual "Parent Directory" wording.
	extraParentText string
	// olaindexExtras additionally discards hrefs containing an OLAINDEX
	// breadcrumb-noise segment (view/preview/breadcrumb numerics).
	olaindexExtras bool
}

// filterAnchors applies the common anchor filter pipeline shared by every
// flavor's extract: take href (or data-route when href is absent), skip
// anchors with neither, parent-directory links, dot links,
// self-links, javascript: links, and (for OLAINDEX/Generic) OLAINDEX
// breadcrumb noise, then sanitize what's left.
func filterAnchors(sel *goquery.Selection, baseURL string, opts filterOpts) []string {
	hrefs := make([]string, 0, sel.Length())

	sel.Each(func(_ int, s *goquery.Selection) {
		href, exists := s.Attr("href")
		if !exists {
			href, exists = s.Attr("data-route")
		}
		if !exists || href == "" {
			return
		}

		text := strings.TrimSpace(s.Text())
		if strings.HasPrefix(strings.ToLower(text), "parent directory") {
			return
		}
		if opts.extraParentText != "" && text == opts.extraParentText {
			return
		}

		switch href {
		case ".", "..", "./", "../":
			return
		}

		if isSelfLink(href, baseURL) {
			return
		}

		if strings.Contains(href, "javascript:") {
			return
		}

		if opts.olaindexExtras && urlutil.HasExtraPath(href, urlutil.ExtrasExcludeHomeAndDownload) {
			return
		}

		hrefs = append(hrefs, urlutil.Sanitize(href))
	})

	return hrefs
}

func isSelfLink(href, baseURL string) bool {
	h := strings.TrimSuffix(stripScheme(href), "/")
	b := strings.TrimSuffix(stripScheme(baseURL), "/")
	return h != "" && h == b
}

func stripScheme(u string) string {
	for _, prefix := range []string{"http://", "https://"} {
		if strings.HasPrefix(u, prefix) {
			return strings.TrimPrefix(u, prefix)
		}
	}
	return u
}
