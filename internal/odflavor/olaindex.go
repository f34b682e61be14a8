package odflavor

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/tariktz/gopherseo-od/internal/urlutil"
)

// olaindexDetect fingerprints the OLAINDEX front-end's Vue/mdui shell: a
// container div holding anchors whose navigation target lives in a
// data-route attribute rather than href.
func olaindexDetect(doc *goquery.Document, server string) bool {
	return doc.Find(".mdui-container a[data-route], .container a[data-route]").Length() > 0
}

// olaindexExtract can't reuse the shared filterAnchors pipeline unchanged:
// OLAINDEX rows carry their target in data-route, except pagination links
// which use a real href with a "?page=" query the router never sees.
func olaindexExtract(doc *goquery.Document, baseURL string) []string {
	sel := doc.Find("a, li")
	hrefs := make([]string, 0, sel.Length())

	sel.Each(func(_ int, s *goquery.Selection) {
		var link string
		if href, ok := s.Attr("href"); ok && strings.Contains(href, "?page=") {
			link = href
		} else if route, ok := s.Attr("data-route"); ok {
			link = route
		} else {
			return
		}
		if link == "" {
			return
		}

		text := strings.TrimSpace(s.Text())
		if strings.HasPrefix(strings.ToLower(text), "parent directory") {
			return
		}

		switch link {
		case ".", "..", "./", "../":
			return
		}

		if isSelfLink(link, baseURL) {
			return
		}
		if strings.Contains(link, "javascript:") {
			return
		}
		if urlutil.HasExtraPath(link, urlutil.ExtrasExcludeHomeAndDownload) {
			return
		}

		hrefs = append(hrefs, urlutil.Sanitize(link))
	})

	return hrefs
}

var olaindexOps = ops{detect: olaindexDetect, extract: olaindexExtract}
