// Package descriptor derives on-disk naming information from a scraped
// file URL so the downloader can place files under the right directory.
package descriptor

import (
	"net/url"
	"regexp"
	"strings"
)

const nameByteLimit = 160

var (
	queryPathRe  = regexp.MustCompile(`/\?/`)
	queryValueRe = regexp.MustCompile(`/\?\w+=\w+/`)
	fileExtRe    = regexp.MustCompile(`/[^/]+\.[A-Za-z0-9]{1,10}/?$`)
)

// File is the immutable descriptor derived from a single file URL. Two
// Files are equal iff their Link fields are equal.
type File struct {
	Link      string
	Name      string
	ShortName string
	Ext       string
	DirPath   string
}

// Equal implements the descriptor equality law: Link alone decides it.
func (f File) Equal(other File) bool {
	return f.Link == other.Link
}

// New builds a File descriptor from an absolute URL.
func New(link string) File {
	name := retrieveName(link)
	if name == "" {
		name = "untitled"
	}
	name = cutName(name)

	shortName, ext := splitName(name)

	return File{
		Link:      link,
		Name:      name,
		ShortName: shortName,
		Ext:       ext,
		DirPath:   dirPath(link),
	}
}

// retrieveName extracts the last non-empty path segment of link, handling
// the "/?/" query-path marker and bare-query-as-path OD quirks.
func retrieveName(link string) string {
	if name, ok := queryCheck(link); ok {
		return name
	}

	u, err := url.Parse(queryPathRe.ReplaceAllString(link, "/"))
	if err != nil {
		return ""
	}

	if u.Path == "/" && u.RawQuery != "" {
		if strings.HasPrefix(u.RawQuery, "/") {
			u.Path = u.RawQuery
			u.RawQuery = ""
		} else {
			return ""
		}
	}

	path := strings.TrimSuffix(u.Path, "/")
	segments := strings.Split(path, "/")
	last := segments[len(segments)-1]
	return last
}

// queryCheck handles links with an embedded "/?key=value/" segment,
// returning the path segment that follows it.
func queryCheck(link string) (string, bool) {
	if !queryValueRe.MatchString(link) {
		return "", false
	}

	replaced := queryValueRe.ReplaceAllString(link, "/")
	u, err := url.Parse(replaced)
	if err != nil {
		return "", false
	}
	segments := strings.Split(strings.TrimSuffix(u.Path, "/"), "/")
	last := segments[len(segments)-1]
	if last == "" {
		return "", false
	}
	return last, true
}

// cutName truncates name to its last nameByteLimit bytes.
func cutName(name string) string {
	if len(name) <= nameByteLimit {
		return name
	}
	return name[len(name)-nameByteLimit:]
}

// splitName splits name on "." exactly once; if there isn't exactly one
// dot, both return values are empty.
func splitName(name string) (shortName, ext string) {
	parts := strings.Split(name, ".")
	if len(parts) != 2 {
		return "", ""
	}
	return parts[0], parts[1]
}

// dirPath returns link's path with a trailing file component stripped
// back to "/".
func dirPath(link string) string {
	cleaned := queryPathRe.ReplaceAllString(link, "/")
	u, err := url.Parse(cleaned)
	if err != nil {
		return "/"
	}
	return fileExtRe.ReplaceAllString(u.Path, "/")
}
