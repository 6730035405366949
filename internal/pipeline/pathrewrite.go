package pipeline

import (
	"net/url"
	"path/filepath"
	"regexp"
	"strings"

	"golang.org/x/net/html"
)

// rewrittenAttrs lists, per element, the attributes holding a resource path.
var rewrittenAttrs = map[string][]string{
	"img":    {"src"},
	"source": {"src"},
	"video":  {"src", "poster"},
	"a":      {"href"},
}

// styleURL matches url(...) references in inline styles, as produced for
// Marp background images.
var styleURL = regexp.MustCompile(`url\((&quot;|["']?)([^"')&]+)(&quot;|["']?)\)`)

// RewriteRelativePaths converts relative resource paths in a rendered slide
// page to absolute file:// URLs under sourceDir.
//
// The page is rendered from a temporary directory, so without this images
// referenced relative to the Markdown file would be missing and measured
// with a zero height. Paths escaping sourceDir, absolute paths and URLs are
// left alone. If sourceDir is empty, returns the HTML unchanged.
func RewriteRelativePaths(htmlContent, sourceDir string) (string, error) {
	if sourceDir == "" {
		return htmlContent, nil
	}

	absSourceDir, err := filepath.Abs(sourceDir)
	if err != nil {
		return "", err
	}

	doc, err := html.Parse(strings.NewReader(htmlContent))
	if err != nil {
		return "", err
	}

	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			rewriteElement(n, absSourceDir)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)

	var buf strings.Builder
	if err := html.Render(&buf, doc); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func rewriteElement(n *html.Node, sourceDir string) {
	keys := rewrittenAttrs[n.Data]
	for i, attr := range n.Attr {
		switch {
		case attr.Key == "style":
			n.Attr[i].Val = rewriteStyleURLs(attr.Val, sourceDir)
		case containsKey(keys, attr.Key):
			if abs, ok := resolveRelative(attr.Val, sourceDir); ok {
				n.Attr[i].Val = abs
			}
		}
	}
}

func rewriteStyleURLs(style, sourceDir string) string {
	return styleURL.ReplaceAllStringFunc(style, func(m string) string {
		parts := styleURL.FindStringSubmatch(m)
		abs, ok := resolveRelative(parts[2], sourceDir)
		if !ok {
			return m
		}
		return "url(" + parts[1] + abs + parts[3] + ")"
	})
}

func containsKey(keys []string, key string) bool {
	for _, k := range keys {
		if k == key {
			return true
		}
	}
	return false
}

// resolveRelative returns the file:// URL for a relative path under dir.
func resolveRelative(path, dir string) (string, bool) {
	if !isRelativePath(path) {
		return "", false
	}
	abs := filepath.Join(dir, path)
	if !isPathUnderDir(abs, dir) {
		return "", false
	}
	return pathToFileURL(abs), true
}

// isRelativePath returns true if the path should be rewritten.
func isRelativePath(path string) bool {
	if path == "" || strings.HasPrefix(path, "#") || strings.HasPrefix(path, "//") {
		return false
	}
	if u, err := url.Parse(path); err == nil && u.Scheme != "" {
		return false
	}
	return !filepath.IsAbs(path)
}

// isPathUnderDir checks if absPath is under dir (prevents path traversal).
func isPathUnderDir(absPath, dir string) bool {
	rel, err := filepath.Rel(dir, absPath)
	if err != nil {
		return false
	}
	return rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}

// pathToFileURL converts an absolute path to a file:// URL.
func pathToFileURL(absPath string) string {
	u := url.URL{Scheme: "file", Path: filepath.ToSlash(absPath)}
	return u.String()
}
