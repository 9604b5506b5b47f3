package scan

import (
	"bytes"
	"regexp"
	"strings"

	"golang.org/x/net/html"
)

// cssURLPattern matches url(...) values in stylesheets and style attributes
var cssURLPattern = regexp.MustCompile(`(?i)url\s*\(\s*['"]?([^'")]+)['"]?\s*\)`)

// ExtractHTMLRefs parses HTML and returns every raw image-bearing reference:
// img/source src and srcset, video posters, link href (favicons and the
// like), and url(...) values inside style attributes. References are
// returned as written; the caller resolves and filters them.
func ExtractHTMLRefs(content []byte) []string {
	doc, err := html.Parse(bytes.NewReader(content))
	if err != nil {
		return nil
	}

	var refs []string
	var f func(*html.Node)
	f = func(n *html.Node) {
		if n.Type == html.ElementNode {
			switch n.Data {
			case "img", "source", "input", "embed":
				for _, a := range n.Attr {
					switch a.Key {
					case "src", "data-src":
						refs = append(refs, a.Val)
					case "srcset", "data-srcset":
						refs = append(refs, splitSrcset(a.Val)...)
					}
				}
			case "video":
				for _, a := range n.Attr {
					if a.Key == "poster" {
						refs = append(refs, a.Val)
					}
				}
			case "link":
				for _, a := range n.Attr {
					if a.Key == "href" {
						refs = append(refs, a.Val)
					}
				}
			}
			for _, a := range n.Attr {
				if a.Key == "style" {
					refs = append(refs, ExtractCSSRefs([]byte(a.Val))...)
				}
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			f(c)
		}
	}
	f(doc)

	return refs
}

// ExtractCSSRefs returns raw url(...) references from CSS content
func ExtractCSSRefs(content []byte) []string {
	matches := cssURLPattern.FindAllSubmatch(content, -1)
	var refs []string
	for _, m := range matches {
		if len(m[1]) > 0 {
			refs = append(refs, string(m[1]))
		}
	}
	return refs
}

// splitSrcset pulls the URL out of each srcset entry ("url 2x, url 640w")
func splitSrcset(v string) []string {
	var refs []string
	for _, entry := range strings.Split(v, ",") {
		fields := strings.Fields(strings.TrimSpace(entry))
		if len(fields) > 0 {
			refs = append(refs, fields[0])
		}
	}
	return refs
}
