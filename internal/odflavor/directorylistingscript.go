package odflavor

import "github.com/PuerkitoBio/goquery"

// directoryListingScriptDetect fingerprints the "Directory Listing Script"
// PHP project by its container element IDs/classes, which carry over
// unchanged across its themes.
func directoryListingScriptDetect(doc *goquery.Document, server string) bool {
	return doc.Find("#listingcontainer, .table-container").Length() > 0
}

func directoryListingScriptExtract(doc *goquery.Document, baseURL string) []string {
	sel := doc.Find("#listingcontainer a[href], .table-container a[href]")
	return filterAnchors(sel, baseURL, filterOpts{})
}

var directoryListingScriptOps = ops{detect: directoryListingScriptDetect, extract: directoryListingScriptExtract}
