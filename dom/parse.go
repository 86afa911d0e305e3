package dom

import (
	"fmt"
	"io"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/charset"
	"golang.org/x/text/encoding"
	"golang.org/x/text/transform"
)

// Parse reads HTML from r and builds the document tree, returning its root
// element. Character encoding is sniffed from the content unless enc forces a
// specific one. Parsing never fails on malformed markup, the underlying
// parser recovers the way browsers do.
func Parse(r io.Reader, enc encoding.Encoding) (*Element, error) {

	if enc != nil {
		r = transform.NewReader(r, enc.NewDecoder())
	} else {
		var err error
		if r, err = charset.NewReader(r, ""); err != nil {
			return nil, fmt.Errorf("unable to detect character encoding: %w", err)
		}
	}

	doc, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("unable to parse html: %w", err)
	}

	for n := doc.FirstChild; n != nil; n = n.NextSibling {
		if n.Type == html.ElementNode {
			return convertNode(n), nil
		}
	}
	return nil, fmt.Errorf("document has no elements")
}

// ParseString is a convenience wrapper around Parse for in-memory markup.
func ParseString(s string) (*Element, error) {
	return Parse(strings.NewReader(s), nil)
}

func convertNode(n *html.Node) *Element {

	el := &Element{Tag: strings.ToLower(n.Data)}
	if len(n.Attr) > 0 {
		el.Attr = make(map[string]string, len(n.Attr))
		for _, a := range n.Attr {
			key := strings.ToLower(a.Key)
			// first occurrence wins on duplicates
			if _, exists := el.Attr[key]; !exists {
				el.Attr[key] = a.Val
			}
		}
	}

	for c := n.FirstChild; c != nil; c = c.NextSibling {
		switch c.Type {
		case html.ElementNode:
			el.Children = append(el.Children, convertNode(c))
		case html.TextNode:
			el.Children = append(el.Children, &Text{Data: c.Data})
		default:
			// comments, doctype and such have no place in output
		}
	}
	return el
}
