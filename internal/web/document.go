package web

import (
	"fmt"
	"io"

	"golang.org/x/net/html"

	"github.com/ajaym/portfolio/internal/shell"
)

// ParseDocument collects every element id in a rendered page. Offsets are
// the element's position in document order, which is all the server needs
// to resolve a navigation target.
func ParseDocument(r io.Reader) (shell.Anchors, error) {
	root, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("parse page: %w", err)
	}

	anchors := shell.Anchors{}
	order := 0
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			for _, a := range n.Attr {
				if a.Key == "id" && a.Val != "" {
					if _, dup := anchors[a.Val]; !dup {
						anchors[a.Val] = order
					}
				}
			}
			order++
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(root)
	return anchors, nil
}
