package odflavor

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// nginxDetect fingerprints ngx_http_autoindex_module's output: a bare <pre>
// of anchors with no surrounding heading, unlike Apache's FancyIndexing.
func nginxDetect(doc *goquery.Document, server string) bool {
	if strings.Contains(strings.ToLower(server), "nginx") {
		return true
	}
	return doc.Find("body > pre").Length() > 0 &&
		doc.Find("h1").Length() == 0 &&
		doc.Find("pre a").Length() > 0
}

func nginxExtract(doc *goquery.Document, baseURL string) []string {
	return filterAnchors(doc.Find("pre a"), baseURL, filterOpts{})
}

var nginxOps = ops{detect: nginxDetect, extract: nginxExtract}
