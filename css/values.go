package css

import (
	"fmt"
	"strconv"
	"strings"
)

// CSS-wide keywords never resolve to a concrete value.
var wideKeywords = map[string]struct{}{
	"inherit":      {},
	"initial":      {},
	"unset":        {},
	"revert":       {},
	"auto":         {},
	"transparent":  {},
	"currentcolor": {},
}

func isWideKeyword(v string) bool {
	_, ok := wideKeywords[v]
	return ok
}

// ResolveColor converts a CSS color value to a Typst color expression.
// Returns false for values that carry no usable color, including CSS-wide
// keywords and legacy system colors, so the caller can skip styling without
// dropping content.
func ResolveColor(value string) (string, bool) {
	v := strings.ToLower(strings.TrimSpace(value))
	if v == "" || isWideKeyword(v) {
		return "", false
	}
	if hex, ok := namedColors[v]; ok {
		return `rgb("` + hex + `")`, true
	}
	if _, ok := systemColors[v]; ok {
		// deprecated UI palette references, nothing sensible to emit
		return "", false
	}
	if h, ok := strings.CutPrefix(v, "#"); ok {
		return resolveHexColor(h)
	}
	if inner, ok := cutFunction(v, "rgb"); ok {
		return resolveRGBColor(inner)
	}
	return "", false
}

func resolveHexColor(h string) (string, bool) {
	switch len(h) {
	case 3:
		var sb strings.Builder
		for _, c := range []byte(h) {
			sb.WriteByte(c)
			sb.WriteByte(c)
		}
		h = sb.String()
	case 6:
	default:
		return "", false
	}
	if _, err := strconv.ParseUint(h, 16, 32); err != nil {
		return "", false
	}
	return `rgb("#` + h + `")`, true
}

func resolveRGBColor(inner string) (string, bool) {
	parts := strings.Split(inner, ",")
	if len(parts) != 3 {
		return "", false
	}
	var ch [3]int
	for i, p := range parts {
		n, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil || n < 0 || n > 255 {
			return "", false
		}
		ch[i] = n
	}
	return fmt.Sprintf("rgb(%d, %d, %d)", ch[0], ch[1], ch[2]), true
}

// cutFunction strips a "name(...)" wrapper and returns its argument text.
func cutFunction(v, name string) (string, bool) {
	inner, ok := strings.CutPrefix(v, name+"(")
	if !ok {
		return "", false
	}
	inner, ok = strings.CutSuffix(inner, ")")
	if !ok {
		return "", false
	}
	return inner, true
}

// Absolute sizes from the CSS font-size keyword scale plus "huge" which some
// generators emit.
var namedSizes = map[string]string{
	"xx-small": "0.6em",
	"x-small":  "0.7em",
	"small":    "0.8em",
	"large":    "1.2em",
	"x-large":  "1.5em",
	"xx-large": "2em",
	"huge":     "2.5em",
}

// ResolveFontSize converts a CSS font-size value to a Typst length.
// Returns false for values that carry no usable size.
func ResolveFontSize(value string) (string, bool) {
	v := strings.ToLower(strings.TrimSpace(value))
	if v == "" || isWideKeyword(v) {
		return "", false
	}
	if lit, ok := namedSizes[v]; ok {
		return lit, true
	}
	if num, ok := strings.CutSuffix(v, "px"); ok {
		// pixel sizes keep their numeric value in points
		if _, err := strconv.ParseFloat(strings.TrimSpace(num), 64); err != nil {
			return "", false
		}
		return strings.TrimSpace(num) + "pt", true
	}
	for _, unit := range []string{"pt", "rem", "em"} {
		if num, ok := strings.CutSuffix(v, unit); ok {
			if _, err := strconv.ParseFloat(strings.TrimSpace(num), 64); err != nil {
				return "", false
			}
			return v, true
		}
	}
	if _, err := strconv.ParseFloat(v, 64); err == nil {
		return v + "pt", true
	}
	return "", false
}

// ResolveAlignment matches a text-align value against the four supported
// alignments. Returns false for anything else.
func ResolveAlignment(value string) (string, bool) {
	switch v := strings.ToLower(strings.TrimSpace(value)); v {
	case "left", "right", "center", "justify":
		return v, true
	}
	return "", false
}
