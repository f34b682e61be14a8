package odflavor

import "github.com/PuerkitoBio/goquery"

// directoryListerDetect fingerprints the "Directory Lister" PHP project:
// a single top-level <ul> holding the listing's <li><a> rows, with no
// table markup anywhere in the page.
func directoryListerDetect(doc *goquery.Document, server string) bool {
	return doc.Find("body > ul > li > a[href]").Length() > 0 && doc.Find("table").Length() == 0
}

func directoryListerExtract(doc *goquery.Document, baseURL string) []string {
	sel := doc.Find("body > ul > li > a[href]")
	return filterAnchors(sel, baseURL, filterOpts{})
}

var directoryListerOps = ops{detect: directoryListerDetect, extract: directoryListerExtract}
