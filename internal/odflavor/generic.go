package odflavor

import "github.com/PuerkitoBio/goquery"

// genericDetect is the catch-all: it always matches, so the dispatcher
// never fails to classify a parseable document.
func genericDetect(doc *goquery.Document, server string) bool {
	return true
}

// genericExtract takes every anchor on the page and relies on the shared
// filter pipeline's OLAINDEX-noise pass to keep junk out of an otherwise
// unstructured page.
func genericExtract(doc *goquery.Document, baseURL string) []string {
	return filterAnchors(doc.Find("a[href]"), baseURL, filterOpts{olaindexExtras: true})
}

var genericOps = ops{detect: genericDetect, extract: genericExtract}
