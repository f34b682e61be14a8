package odflavor

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// apacheDetect fingerprints mod_autoindex's "FancyIndexing" layout: a
// <pre> block of anchors underneath an "Index of ..." heading.
func apacheDetect(doc *goquery.Document, server string) bool {
	if strings.Contains(server, "Apache") {
		return true
	}
	return doc.Find("pre a").Length() > 0 && doc.Find("h1").Length() > 0
}

func apacheExtract(doc *goquery.Document, baseURL string) []string {
	return filterAnchors(doc.Find("pre a"), baseURL, filterOpts{})
}

var apacheOps = ops{detect: apacheDetect, extract: apacheExtract}
