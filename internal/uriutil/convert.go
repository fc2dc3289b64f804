// Package uriutil converts between file:// URIs sent by editors and filesystem paths.
package uriutil

import (
	"net/url"
	"path"
	"path/filepath"
	"strings"
)

// PathToURI converts a filesystem path to a file:// URI with
// percent-encoded segments. Relative paths are made absolute first.
//   - /home/user/a b.ts -> file:///home/user/a%20b.ts
//   - C:\proj -> file:///C:/proj
func PathToURI(p string) string {
	abs, err := filepath.Abs(p)
	if err != nil {
		abs = p
	}

	abs = filepath.ToSlash(abs)
	if !strings.HasPrefix(abs, "/") {
		abs = "/" + abs
	}

	segments := strings.Split(abs, "/")
	for i, seg := range segments {
		if seg != "" {
			segments[i] = url.PathEscape(seg)
		}
	}
	return "file://" + strings.Join(segments, "/")
}

// URIToPath converts a file:// URI to a filesystem path.
// Non-file URIs are stripped of any scheme prefix as a best effort.
func URIToPath(uri string) string {
	parsed, err := url.Parse(uri)
	if err != nil || parsed.Scheme != "file" {
		return fallback(uri)
	}

	p, err := url.PathUnescape(parsed.Path)
	if err != nil {
		p = parsed.Path
	}
	if parsed.Host != "" && parsed.Host != "localhost" {
		p = "//" + parsed.Host + p
	}
	// /C:/proj -> C:/proj
	if len(p) >= 3 && p[0] == '/' && p[2] == ':' {
		p = p[1:]
	}
	return filepath.FromSlash(p)
}

func fallback(uri string) string {
	p := strings.TrimPrefix(uri, "file://")
	if len(p) >= 3 && p[0] == '/' && p[2] == ':' {
		p = p[1:]
	}
	return filepath.FromSlash(p)
}

// Ext returns the lowercase extension of the document behind uri,
// including the dot ("" when there is none).
func Ext(uri string) string {
	u := uri
	if i := strings.IndexAny(u, "?#"); i >= 0 {
		u = u[:i]
	}
	return strings.ToLower(path.Ext(u))
}
