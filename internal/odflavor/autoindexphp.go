package odflavor

import "github.com/PuerkitoBio/goquery"

// autoindexPHPDetect fingerprints the "PHP AutoIndex" project's table rows,
// each row's link carrying one of its two CSS classes.
func autoindexPHPDetect(doc *goquery.Document, server string) bool {
	return doc.Find("tbody a.autoindex_a, tbody a.default_a").Length() > 0
}

func autoindexPHPExtract(doc *goquery.Document, baseURL string) []string {
	sel := doc.Find("tbody a.autoindex_a, tbody a.default_a")
	return filterAnchors(sel, baseURL, filterOpts{})
}

var autoindexPHPOps = ops{detect: autoindexPHPDetect, extract: autoindexPHPExtract}
