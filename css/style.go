// Package css parses inline style attributes and resolves property values
// into Typst expressions.
package css

import (
	"bytes"
	"strings"

	parse "github.com/tdewolff/parse/v2"
	"github.com/tdewolff/parse/v2/css"
	"go.uber.org/zap"
)

// Styles holds declarations from a single style attribute. Property names are
// lowercased, later duplicates win.
type Styles map[string]string

// Parser parses inline style attributes.
type Parser struct {
	log *zap.Logger
}

// NewParser creates a new inline style parser.
func NewParser(log *zap.Logger) *Parser {
	if log == nil {
		log = zap.NewNop()
	}
	return &Parser{log: log.Named("css-parser")}
}

// ParseStyle parses value of a style attribute into a property map. Malformed
// declarations are dropped silently, the function never fails. Declarations
// are isolated from each other, a broken one does not take its neighbors
// down.
func (p *Parser) ParseStyle(raw string) Styles {
	styles := make(Styles)
	for decl := range strings.SplitSeq(raw, ";") {
		if strings.TrimSpace(decl) == "" {
			continue
		}
		name, value, ok := p.parseDeclaration(decl)
		if !ok {
			p.log.Debug("Dropping malformed style declaration", zap.String("declaration", decl))
			continue
		}
		styles[name] = value
	}
	return styles
}

// parseDeclaration tokenizes a single "name: value" declaration.
func (p *Parser) parseDeclaration(decl string) (string, string, bool) {

	input := parse.NewInput(bytes.NewReader([]byte(decl)))
	parser := css.NewParser(input, true)

	for {
		gt, _, data := parser.Next()
		switch gt {
		case css.ErrorGrammar:
			// end of input or bad declaration, either way nothing was produced
			return "", "", false

		case css.DeclarationGrammar:
			name := strings.ToLower(strings.TrimSpace(string(data)))
			value := joinTokens(parser.Values())
			if name == "" || value == "" {
				return "", "", false
			}
			return name, value, true

		case css.CustomPropertyGrammar:
			// custom properties play no role in conversion
			return "", "", false
		}
	}
}

// joinTokens builds a property value string from tokens, collapsing runs of
// whitespace to a single space.
func joinTokens(tokens []css.Token) string {
	var parts []string
	for _, t := range tokens {
		if t.TokenType != css.WhitespaceToken {
			parts = append(parts, string(t.Data))
		} else if len(parts) > 0 {
			parts = append(parts, " ")
		}
	}
	return strings.TrimSpace(strings.Join(parts, ""))
}
