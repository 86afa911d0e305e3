package typst

import (
	"fmt"
	"strings"

	"h2t/dom"
)

type handlerFunc func(c *Converter, el, parent *dom.Element) string

// handlers is the tag dispatch table, read-only after init. Tags missing from
// it fall through to plain content pass-through in visit.
var handlers map[string]handlerFunc

func init() {
	handlers = map[string]handlerFunc{
		"h1": heading(1),
		"h2": heading(2),
		"h3": heading(3),
		"h4": heading(4),
		"h5": heading(5),
		"h6": heading(6),

		"p":    paragraph,
		"br":   literal("\\\n"),
		"hr":   literal("\n#line(length: 100%)\n"),
		"div":  container,
		"span": inline,

		"strong":     wrap("*", "*"),
		"b":          wrap("*", "*"),
		"em":         wrap("_", "_"),
		"i":          wrap("_", "_"),
		"u":          wrap("#underline([", "])"),
		"ins":        wrap("#underline([", "])"),
		"s":          wrap("#strike([", "])"),
		"del":        wrap("#strike([", "])"),
		"mark":       wrap("#highlight([", "])"),
		"sup":        wrap("#super([", "])"),
		"sub":        wrap("#sub([", "])"),
		"q":          wrap(`"`, `"`),
		"small":      wrap("#text(size: 0.85em)[", "]"),
		"cite":       wrap("_", "_"),
		"var":        wrap("_", "_"),
		"code":       rawWrap("`", "`"),
		"samp":       rawWrap("`", "`"),
		"kbd":        rawWrap("#box(stroke: 0.5pt, inset: 2pt, radius: 2pt)[`", "`]"),
		"abbr":       rawWrap("#text([", "])"),
		"time":       rawWrap("", ""),
		"pre":        preformatted,
		"blockquote": blockquote,

		"ul": padded,
		"ol": orderedList,
		"li": listItem,
		"dl": padded,
		"dt": prefixed("/ "),
		"dd": prefixed(": "),

		"a":          link,
		"img":        image,
		"figure":     figure,
		"figcaption": caption,
		"video":      mediaStub("Video"),
		"audio":      mediaStub("Audio"),

		"table": table,
		"thead": passthrough,
		"tbody": passthrough,
		"tr":    passthrough,
		"th":    wrap("*", "*"),
		"td":    passthrough,

		"header":  semanticSection,
		"footer":  semanticSection,
		"main":    semanticSection,
		"section": semanticSection,
		"article": semanticSection,
		"aside":   semanticSection,
		"nav":     semanticSection,

		"details": details,
		"summary": wrap("*", "*"),
	}
}

func heading(level int) handlerFunc {
	marker := strings.Repeat("=", level)
	return func(c *Converter, el, _ *dom.Element) string {
		return "\n" + marker + " " + c.content(el) + "\n"
	}
}

func paragraph(c *Converter, el, _ *dom.Element) string {
	return "\n" + c.applyStyles(el, c.content(el)) + "\n"
}

func container(c *Converter, el, _ *dom.Element) string {
	return "\n" + c.content(el) + "\n"
}

func inline(c *Converter, el, _ *dom.Element) string {
	return c.applyStyles(el, c.content(el))
}

func literal(s string) handlerFunc {
	return func(*Converter, *dom.Element, *dom.Element) string { return s }
}

// wrap surrounds converted content with fixed markup.
func wrap(prefix, suffix string) handlerFunc {
	return func(c *Converter, el, _ *dom.Element) string {
		return prefix + c.content(el) + suffix
	}
}

// rawWrap surrounds raw subtree text with fixed markup, nothing inside is
// converted.
func rawWrap(prefix, suffix string) handlerFunc {
	return func(_ *Converter, el, _ *dom.Element) string {
		return prefix + el.Text() + suffix
	}
}

// padded surrounds converted content with blank line separators.
func padded(c *Converter, el, _ *dom.Element) string {
	return "\n" + c.content(el) + "\n"
}

func passthrough(c *Converter, el, _ *dom.Element) string {
	return c.content(el)
}

func prefixed(prefix string) handlerFunc {
	return func(c *Converter, el, _ *dom.Element) string {
		return prefix + c.content(el)
	}
}

func preformatted(c *Converter, el, _ *dom.Element) string {
	var text, lang string
	if code := el.Find("code"); code != nil {
		text = code.Text()
		for tok := range strings.FieldsSeq(code.Get("class")) {
			if l, ok := strings.CutPrefix(tok, "language-"); ok {
				lang = l
				break
			}
		}
	} else {
		text = el.Text()
	}
	return "\n```" + lang + "\n" + text + "\n```\n"
}

func blockquote(c *Converter, el, _ *dom.Element) string {
	content := strings.TrimSpace(c.content(el))
	lines := strings.Split(content, "\n")
	for i, line := range lines {
		if strings.TrimSpace(line) != "" {
			lines[i] = "  " + line
		} else {
			lines[i] = ""
		}
	}
	return "\n#quote(block: true)[\n" + strings.Join(lines, "\n") + "\n]\n"
}

func orderedList(c *Converter, el, _ *dom.Element) string {
	return "\n#enum(\n" + c.content(el) + ")\n"
}

func listItem(c *Converter, el, parent *dom.Element) string {
	content := strings.TrimSpace(c.content(el))
	if parent != nil && parent.Tag == "ol" {
		return "  [" + content + "],\n"
	}
	return "- " + content + "\n"
}

func link(c *Converter, el, _ *dom.Element) string {
	content := c.content(el)
	if href := el.Get("href"); href != "" {
		return `#link("` + href + `")[` + content + `]`
	}
	return content
}

func image(c *Converter, el, _ *dom.Element) string {
	src := el.Get("src")
	if src == "" {
		return "// Image missing src"
	}
	params := []string{`"` + src + `"`}
	if alt := el.Get("alt"); alt != "" {
		params = append(params, `alt: "`+alt+`"`)
	}
	if w, ok := imageWidth(el.Get("width")); ok {
		params = append(params, "width: "+w)
	}
	return "#image(" + strings.Join(params, ", ") + ")"
}

// imageWidth normalizes a width attribute to a Typst length. Percentages and
// explicit pt, em and rem lengths pass through, pixels and bare numbers
// become points. Anything else is dropped.
func imageWidth(w string) (string, bool) {
	w = strings.TrimSpace(w)
	switch {
	case w == "":
		return "", false
	case strings.HasSuffix(w, "%"):
		return w, true
	}
	for _, unit := range []string{"pt", "rem", "em"} {
		if num, ok := strings.CutSuffix(w, unit); ok {
			if isNumeric(num) {
				return w, true
			}
			return "", false
		}
	}
	if num, ok := strings.CutSuffix(w, "px"); ok {
		if isNumeric(num) {
			return num + "pt", true
		}
		return "", false
	}
	if isNumeric(w) {
		return w + "pt", true
	}
	return "", false
}

func isNumeric(s string) bool {
	if s == "" {
		return false
	}
	dot := false
	for _, r := range s {
		switch {
		case r >= '0' && r <= '9':
		case r == '.' && !dot:
			dot = true
		default:
			return false
		}
	}
	return true
}

func figure(c *Converter, el, _ *dom.Element) string {
	var sb strings.Builder
	sb.WriteString("#figure(\n")
	if img := el.Find("img"); img != nil {
		sb.WriteString("  " + image(c, img, el) + ",\n")
	}
	if capt := el.Find("figcaption"); capt != nil {
		sb.WriteString("  caption: [" + c.content(capt) + "],\n")
	}
	sb.WriteString(")\n")
	return sb.String()
}

func caption(c *Converter, el, _ *dom.Element) string {
	return "  caption: [" + c.content(el) + "],\n"
}

func mediaStub(kind string) handlerFunc {
	return func(_ *Converter, el, _ *dom.Element) string {
		src := el.Get("src")
		if src == "" {
			src = "unknown"
		}
		return "// " + kind + ": " + src + "\n"
	}
}

func table(c *Converter, el, _ *dom.Element) string {
	rows := el.FindAll("tr")

	cols := 1
	if len(rows) > 0 {
		if n := len(rows[0].FindAll("th", "td")); n > 0 {
			cols = n
		}
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "#table(\n  columns: %d,\n", cols)
	for _, row := range rows {
		for _, cell := range row.FindAll("th", "td") {
			content := strings.TrimSpace(c.content(cell))
			if cell.Tag == "th" {
				content = "*" + content + "*"
			}
			sb.WriteString("  [" + content + "],\n")
		}
	}
	sb.WriteString(")\n")
	return sb.String()
}

func semanticSection(c *Converter, el, _ *dom.Element) string {
	return "\n// " + strings.ToUpper(el.Tag) + "\n" + c.content(el) + "\n"
}

func details(c *Converter, el, _ *dom.Element) string {
	label := "Details"
	sum, rest := el.Partition("summary")
	if sum != nil {
		label = c.content(sum)
	}
	body := &dom.Element{Tag: el.Tag, Attr: el.Attr, Children: rest}
	return "\n// " + label + "\n" + strings.TrimSpace(c.content(body)) + "\n"
}
