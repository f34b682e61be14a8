// Package odflavor implements the per-server-software HTML parsers for open
// directory listings. Each flavor exposes a detect predicate and an extract
// function; registry.go holds the priority-ordered dispatch table.
package odflavor

import "github.com/PuerkitoBio/goquery"

// Flavor tags one of the recognized OD HTML layout families.
type Flavor string

// Recognized flavor tags, in the order the dispatcher tries them.
const (
	MicrosoftIIS           Flavor = "microsoft-iis"
	OLAINDEX               Flavor = "olaindex"
	AutoIndexPHP           Flavor = "autoindex-php"
	AutoIndexPHPNoCrumb    Flavor = "autoindex-php-no-crumb"
	DirectoryLister        Flavor = "directory-lister"
	DirectoryListingScript Flavor = "directory-listing-script"
	Apache                 Flavor = "apache"
	NGINX                  Flavor = "nginx"
	Generic                Flavor = "generic"
)

// detectFunc reports whether doc/server fingerprint this flavor.
type detectFunc func(doc *goquery.Document, server string) bool

// extractFunc pulls the raw (pre-join, pre-normalize) hrefs worth following
// or downloading out of doc, in DOM order.
type extractFunc func(doc *goquery.Document, baseURL string) []string

type ops struct {
	detect  detectFunc
	extract extractFunc
}
