package typst

import (
	"go.uber.org/zap"

	"h2t/css"
	"h2t/dom"
)

// applyStyles wraps already converted content according to the element's
// inline style attribute. Inline properties are applied first in fixed order
// (color, background, size), block alignment always wraps the fully styled
// result. Unresolvable values drop their wrapping but never the content.
func (c *Converter) applyStyles(el *dom.Element, content string) string {
	raw := el.Get("style")
	if raw == "" {
		return content
	}
	styles := c.styles.ParseStyle(raw)

	if v, present := styles["color"]; present {
		if lit, ok := css.ResolveColor(v); ok {
			content = "#text(fill: " + lit + ")[" + content + "]"
		} else {
			c.log.Debug("Skipping unresolvable color", zap.String("value", v))
		}
	}
	if v, present := styles["background-color"]; present {
		if lit, ok := css.ResolveColor(v); ok {
			content = "#highlight(fill: " + lit + ")[" + content + "]"
		} else {
			c.log.Debug("Skipping unresolvable background color", zap.String("value", v))
		}
	}
	if v, present := styles["font-size"]; present {
		if lit, ok := css.ResolveFontSize(v); ok {
			content = "#text(size: " + lit + ")[" + content + "]"
		} else {
			c.log.Debug("Skipping unresolvable font size", zap.String("value", v))
		}
	}

	if v, present := styles["text-align"]; present {
		switch align, ok := css.ResolveAlignment(v); {
		case !ok:
			c.log.Debug("Skipping unresolvable alignment", zap.String("value", v))
		case align == "justify":
			content = "#par(justify: true)[" + content + "]"
		default:
			content = "#align(" + align + ")[" + content + "]"
		}
	}
	return content
}
