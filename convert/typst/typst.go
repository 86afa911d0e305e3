// Package typst generates Typst markup from a parsed HTML tree.
package typst

import (
	"io"
	"regexp"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/text/encoding"

	"h2t/css"
	"h2t/dom"
)

// Converter renders a document tree as Typst markup. It holds no per-document
// state, a single Converter may be used for any number of documents from any
// number of goroutines.
type Converter struct {
	log    *zap.Logger
	styles *css.Parser
}

// NewConverter creates a new Typst converter.
func NewConverter(log *zap.Logger) *Converter {
	if log == nil {
		log = zap.NewNop()
	}
	return &Converter{log: log.Named("typst"), styles: css.NewParser(log)}
}

var (
	// runs of blank lines inside a single text node
	reBlankRun = regexp.MustCompile(`\n\s*\n`)
	// two or more consecutive blank lines in assembled output
	reExtraBlank = regexp.MustCompile(`\n\s*\n\s*\n+`)
)

// Convert renders the tree rooted at root. When the tree has a body element
// only its content is rendered, head matter never contributes to output.
func (c *Converter) Convert(root *dom.Element) string {
	content := root
	if root.Tag != "body" {
		if body := root.Find("body"); body != nil {
			content = body
		}
	}
	res := c.content(content)
	res = reExtraBlank.ReplaceAllString(res, "\n\n")
	return strings.TrimSpace(res)
}

// ConvertReader parses HTML from r and renders it. Character encoding is
// sniffed from the content unless enc forces a specific one.
func (c *Converter) ConvertReader(r io.Reader, enc encoding.Encoding) (string, error) {
	root, err := dom.Parse(r, enc)
	if err != nil {
		return "", err
	}
	return c.Convert(root), nil
}

// visit renders a single node. Elements without a registered handler keep
// their content, only the wrapper is dropped.
func (c *Converter) visit(n dom.Node, parent *dom.Element) string {
	switch t := n.(type) {
	case *dom.Text:
		data := strings.ReplaceAll(t.Data, "\r\n", "\n")
		return reBlankRun.ReplaceAllString(data, "\n\n")
	case *dom.Element:
		if h, ok := handlers[t.Tag]; ok {
			return h(c, t, parent)
		}
		c.log.Debug("No handler for tag, passing content through", zap.String("tag", t.Tag))
		return c.content(t)
	}
	return ""
}

// content renders all children of el in document order and sanitizes the
// result.
func (c *Converter) content(el *dom.Element) string {
	var sb strings.Builder
	for _, child := range el.Children {
		sb.WriteString(c.visit(child, el))
	}
	return sanitize(sb.String())
}
