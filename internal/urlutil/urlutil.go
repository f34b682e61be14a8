// Package urlutil provides the pure, deterministic URL helpers the scraper
// and flavor parsers use to normalize, join, classify, and sanitize the
// hrefs found on an open-directory page. Every function here is total: no
// network access, no shared mutable state, safe for concurrent use from
// many scraper goroutines.
package urlutil

import (
	"errors"
	"fmt"
	"net/url"
	"regexp"
	"strings"
)

// ErrMalformedURL is returned by Normalize when a string cannot be parsed
// as an absolute URL even after an "http://" scheme has been prepended.
var ErrMalformedURL = errors.New("urlutil: malformed URL")

var (
	queryPathRe      = regexp.MustCompile(`/\?/`)
	duplicateSlashRe = regexp.MustCompile(`/{2,}`)
	previewQueryRe   = regexp.MustCompile(`\?preview$`)
	pageQueryRe      = regexp.MustCompile(`\?page=([0-9]{1,3})$`)
	backRe           = regexp.MustCompile(`\.\./`)
	webPageRe        = regexp.MustCompile(`[a-zA-Z0-9~+\-%\[\]$_.!'()=]+\.(html?|aspx?|php)/?$`)
	fileExtRe        = regexp.MustCompile(`/[^/]+\.[A-Za-z0-9]{2,6}/?$`)
)

// Normalize collapses the "/?/" path marker, de-duplicates intra-path
// slashes, drops any fragment and a trailing "?preview" query, and returns
// the canonical absolute form of raw. If raw has no scheme, "http://" is
// tried before giving up with ErrMalformedURL.
//
// Normalize is idempotent: Normalize(Normalize(u)) == Normalize(u) for any
// u that normalizes successfully.
func Normalize(raw string) (string, error) {
	cleaned := queryPathRe.ReplaceAllString(raw, "/")

	u, err := parseAbsolute(cleaned)
	if err != nil {
		return "", fmt.Errorf("%w: %q", ErrMalformedURL, raw)
	}

	u.Fragment = ""
	u.Path = duplicateSlashRe.ReplaceAllString(u.Path, "/")

	result := u.String()
	result = previewQueryRe.ReplaceAllString(result, "")
	return result, nil
}

func parseAbsolute(raw string) (*url.URL, error) {
	if u, err := url.Parse(raw); err == nil && u.IsAbs() && u.Host != "" {
		return u, nil
	}

	withScheme := raw
	if !strings.HasPrefix(raw, "http://") && !strings.HasPrefix(raw, "https://") {
		withScheme = "http://" + raw
	}

	u, err := url.Parse(withScheme)
	if err != nil || u.Host == "" {
		return nil, ErrMalformedURL
	}
	return u, nil
}

// Join resolves rel against base following the branch order below; the
// first matching rule wins. This mirrors an upstream OD scraper whose join
// logic has overlapping branches by design (see DESIGN.md) rather than a
// strict RFC 3986 resolver, because real OD servers emit hrefs that RFC
// resolution handles badly (bare query strings, breadcrumb-relative paths).
//
//  1. first path segment of base equals first path segment of rel -> rel
//     replaces base's path outright.
//  2. rel is a bare query ("?...") -> replaces base's query.
//  3. base's query begins with "dir=" -> rel replaces the whole query.
//  4. base's final path segment looks like a web page (.html/.php/.aspx)
//     -> rel replaces that final segment.
//  5. otherwise rel is appended to base's path, de-duplicating the slash
//     at the join seam.
func Join(base, rel string) string {
	baseURL, err := url.Parse(queryPathRe.ReplaceAllString(base, "/"))
	if err != nil {
		return base + rel
	}

	dummy := rel
	switch {
	case strings.HasPrefix(rel, "./"):
		dummy = "http://www.example.invalid" + rel[2:]
	case !strings.HasPrefix(rel, "/"):
		dummy = "http://www.example.invalid/" + rel
	default:
		dummy = "http://www.example.invalid" + rel
	}
	relURL, err := url.Parse(queryPathRe.ReplaceAllString(dummy, "/"))
	if err != nil {
		return base + rel
	}

	baseFirst := firstSegment(baseURL.Path)
	relFirst := firstSegment(relURL.Path)

	switch {
	case baseFirst != "" && relFirst != "" && baseFirst == relFirst:
		path := rel
		if !strings.HasPrefix(path, "/") {
			path = "/" + path
		}
		if baseURL.Port() != "" {
			return fmt.Sprintf("%s://%s:%s%s", baseURL.Scheme, baseURL.Hostname(), baseURL.Port(), path)
		}
		return fmt.Sprintf("%s://%s%s", baseURL.Scheme, baseURL.Host, path)

	case strings.HasPrefix(rel, "?"):
		u := *baseURL
		u.RawQuery = rel[1:]
		return u.String()

	case strings.HasPrefix(baseURL.RawQuery, "dir="):
		u := *baseURL
		u.RawQuery = strings.TrimPrefix(rel, "?")
		return u.String()

	case webPageRe.MatchString(base):
		replacement := rel
		if strings.HasPrefix(rel, "./") {
			replacement = rel[2:]
		}
		return webPageRe.ReplaceAllString(base, replacement)

	default:
		switch {
		case strings.HasSuffix(base, "/") && strings.HasPrefix(rel, "/"):
			return strings.TrimSuffix(base, "/") + rel
		case strings.HasPrefix(rel, "./") && strings.HasSuffix(base, "/"):
			return base + rel[2:]
		case strings.HasPrefix(rel, "./") && !strings.HasSuffix(base, "/"):
			return base + rel[1:]
		default:
			return base + rel
		}
	}
}

func firstSegment(path string) string {
	trimmed := strings.TrimPrefix(path, "/")
	if trimmed == "" {
		return ""
	}
	if i := strings.IndexByte(trimmed, '/'); i >= 0 {
		return trimmed[:i]
	}
	return trimmed
}

// IsURI reports whether url points directly at a file: its last path
// segment has a 2-6 character alphanumeric extension, and that extension
// is not one of the web page types (html, htm, php, asp, aspx).
func IsURI(rawURL string) bool {
	return fileExtRe.MatchString(rawURL) && !webPageRe.MatchString(rawURL)
}

// IsBackURL reports whether rel contains a "../" parent-directory segment.
func IsBackURL(rel string) bool {
	return backRe.MatchString(rel)
}

// IsHomeURL reports whether rel is exactly "/".
func IsHomeURL(rel string) bool {
	return rel == "/"
}

// IsRelURL reports whether rel points back at base itself — used to skip
// self-links to the current directory. A rel starting with "/" is joined
// onto base and compared with base (modulo a trailing slash); any other rel
// counts only when it equals base literally.
func IsRelURL(base, rel string) bool {
	if !strings.HasPrefix(rel, "/") {
		return base == rel
	}
	if strings.HasSuffix(base, "/") {
		return base[:len(base)-1] == Join(base, rel)
	}
	return base == Join(base, rel)
}

// ExtrasMode selects which set of OLAINDEX "extra path" segments is
// considered noise: the full blacklist, or the subset that still needs to
// be kept around for containment checks.
type ExtrasMode int

const (
	// ExtrasAll treats home, download, view, preview, and breadcrumb
	// numerics as noise segments.
	ExtrasAll ExtrasMode = iota
	// ExtrasExcludeHomeAndDownload leaves "home" and "download" segments
	// alone (they still identify a real file route) and only flags view,
	// preview, and breadcrumb numerics.
	ExtrasExcludeHomeAndDownload
)

func isNumericSegment(seg string) bool {
	if seg == "" {
		return false
	}
	for _, r := range seg {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// HasExtraPath reports whether href contains a path segment the given
// ExtrasMode treats as OLAINDEX breadcrumb noise.
func HasExtraPath(href string, mode ExtrasMode) bool {
	for _, seg := range strings.Split(href, "/") {
		switch seg {
		case "view", "preview":
			return true
		case "home", "download":
			if mode == ExtrasAll {
				return true
			}
		default:
			if isNumericSegment(seg) {
				return true
			}
		}
	}
	return false
}

// Sanitize strips OLAINDEX's cosmetic route segments (home, download, view,
// preview) from href's path and removes a trailing "?preview" query,
// leaving the href pointing at the underlying file or directory.
func Sanitize(rawURL string) string {
	cleaned := queryPathRe.ReplaceAllString(rawURL, "/")

	segments := strings.Split(cleaned, "/")
	kept := make([]string, 0, len(segments))
	for _, seg := range segments {
		switch seg {
		case "home", "download", "view", "preview":
			continue
		default:
			kept = append(kept, seg)
		}
	}
	cleaned = strings.Join(kept, "/")

	return previewQueryRe.ReplaceAllString(cleaned, "")
}

// SubDirCheck reports whether link lies within base's subtree. A link that
// starts with base is contained. Otherwise a pure-root link (fewer than 4
// "/"-separated segments) is not contained; for any other link both sides
// are stripped of OLAINDEX breadcrumb noise, base also loses a trailing
// "?page=N", and the prefix comparison is repeated.
func SubDirCheck(link, base string) bool {
	if strings.HasPrefix(link, base) {
		return true
	}

	linkSegs := strings.Split(link, "/")
	baseSegs := strings.Split(base, "/")
	if len(linkSegs) < 4 {
		return false
	}

	linkSegs = removeExtraSegments(linkSegs)
	baseSegs = removeExtraSegments(baseSegs)

	baseJoined := pageQueryRe.ReplaceAllString(strings.Join(baseSegs, "/"), "")
	return strings.HasPrefix(strings.Join(linkSegs, "/"), baseJoined)
}

func removeExtraSegments(segments []string) []string {
	out := make([]string, 0, len(segments))
	for _, seg := range segments {
		switch seg {
		case "home", "download", "view", "preview":
			continue
		default:
			if isNumericSegment(seg) {
				continue
			}
			out = append(out, seg)
		}
	}
	return out
}

// HasPageQuery parses a trailing "?page=N" query from rel. should_follow is
// true only when N advances past curPage and pagination following is still
// enabled (curPage < maxPage, maxPage > 0); nextPage echoes curPage when
// should_follow is false.
func HasPageQuery(rel string, curPage, maxPage int) (shouldFollow bool, nextPage int) {
	match := pageQueryRe.FindStringSubmatch(rel)
	if match == nil || curPage >= maxPage || maxPage <= 0 {
		return false, curPage
	}

	num := 0
	for _, r := range match[1] {
		num = num*10 + int(r-'0')
	}

	if curPage < num {
		return true, num
	}
	return false, curPage
}

// UnrelatedDirQueries reports whether rel carries a query that signals a
// sort/filter/archive view rather than a fresh directory listing — such
// links should be skipped entirely during traversal.
func UnrelatedDirQueries(rel string) bool {
	lower := strings.ToLower(rel)
	for _, needle := range []string{"sortby", "&sort_mode=", "&sort=", "&file=", "archive=true", "&expand=", "&collapse="} {
		if strings.Contains(lower, needle) {
			return true
		}
	}
	return false
}
