package odflavor

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

const iisParentText = "[To Parent Directory]"

// iisDetect fingerprints IIS's built-in directory browsing page: the
// Microsoft-IIS Server header, its distinctive "[To Parent Directory]"
// link text, or the legacy "<dir>" literal it prints beside folder rows.
func iisDetect(doc *goquery.Document, server string) bool {
	if strings.Contains(server, "Microsoft-IIS") {
		return true
	}

	parent := doc.Find("pre a, tr td a").FilterFunction(func(_ int, s *goquery.Selection) bool {
		return strings.TrimSpace(s.Text()) == iisParentText
	})
	if parent.Length() > 0 {
		return true
	}

	return strings.Contains(doc.Find("pre").Text(), "<dir>")
}

func iisExtract(doc *goquery.Document, baseURL string) []string {
	sel := doc.Find("pre a, tr td a")
	return filterAnchors(sel, baseURL, filterOpts{extraParentText: iisParentText})
}

var iisOps = ops{detect: iisDetect, extract: iisExtract}
