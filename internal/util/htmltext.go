package util

import (
	"strings"

	"golang.org/x/net/html"
)

// StripTags reduces an HTML fragment to its text content. Scraped
// description fragments often arrive with residual markup; the
// pipeline stores plain text only. Input without markup passes through
// unchanged apart from whitespace collapsing at tag boundaries.
func StripTags(fragment string) string {
	if !strings.ContainsRune(fragment, '<') {
		return fragment
	}

	doc, err := html.Parse(strings.NewReader(fragment))
	if err != nil {
		return fragment
	}

	var b strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			text := strings.TrimSpace(n.Data)
			if text != "" {
				if b.Len() > 0 {
					b.WriteString(" ")
				}
				b.WriteString(text)
			}
		}
		if n.Type == html.ElementNode && (n.Data == "script" || n.Data == "style") {
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)
	return b.String()
}
