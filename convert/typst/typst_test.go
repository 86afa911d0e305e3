package typst_test

import (
	"strings"
	"testing"

	"go.uber.org/zap"

	"h2t/convert/typst"
	"h2t/dom"
)

func convert(t *testing.T, html string) string {
	t.Helper()
	root, err := dom.ParseString(html)
	if err != nil {
		t.Fatalf("unexpected parse error: %v", err)
	}
	return typst.NewConverter(zap.NewNop()).Convert(root)
}

func TestHeadings(t *testing.T) {
	res := convert(t, "<h1>H1</h1><h2>H2</h2><h3>H3</h3><h4>H4</h4><h5>H5</h5><h6>H6</h6>")
	for _, want := range []string{"= H1", "== H2", "=== H3", "==== H4", "===== H5", "====== H6"} {
		if !strings.Contains(res, want) {
			t.Errorf("missing %q in %q", want, res)
		}
	}
}

func TestDocumentShape(t *testing.T) {
	res := convert(t, "<h1>Hello</h1><p>World</p>")
	if res != "= Hello\n\nWorld" {
		t.Errorf("unexpected output: %q", res)
	}
}

func TestTextFormatting(t *testing.T) {
	tests := []struct {
		name string
		html string
		want string
	}{
		{"strong", "<p><strong>bold</strong></p>", "*bold*"},
		{"b", "<p><b>also bold</b></p>", "*also bold*"},
		{"em", "<p><em>italic</em></p>", "_italic_"},
		{"i", "<p><i>also italic</i></p>", "_also italic_"},
		{"u", "<u>underlined</u>", "#underline([underlined])"},
		{"ins", "<ins>inserted</ins>", "#underline([inserted])"},
		{"s", "<s>struck</s>", "#strike([struck])"},
		{"del", "<del>deleted</del>", "#strike([deleted])"},
		{"mark", "<mark>highlighted</mark>", "#highlight([highlighted])"},
		{"sup", "<p>E=mc<sup>2</sup></p>", "E=mc#super([2])"},
		{"sub", "<p>H<sub>2</sub>O</p>", "H#sub([2])O"},
		{"nested", "<p>Text with <strong>bold <em>and italic</em></strong> nested.</p>", "*bold _and italic_*"},
		{"q", "<q>quoted</q>", `"quoted"`},
		{"small", "<small>fine print</small>", "#text(size: 0.85em)[fine print]"},
		{"cite", "<cite>citation</cite>", "_citation_"},
		{"var", "<var>x</var>", "_x_"},
		{"abbr", "<abbr title=\"HyperText\">HT</abbr>", "#text([HT])"},
		{"time", "<time datetime=\"2026-01-01\">New Year</time>", "New Year"},
		{"kbd", "<kbd>Ctrl</kbd>", "#box(stroke: 0.5pt, inset: 2pt, radius: 2pt)[`Ctrl`]"},
		{"samp", "<samp>output</samp>", "`output`"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if res := convert(t, tt.html); !strings.Contains(res, tt.want) {
				t.Errorf("missing %q in %q", tt.want, res)
			}
		})
	}
}

func TestCode(t *testing.T) {
	res := convert(t, "<p>Inline <code>print(1)</code></p>")
	if !strings.Contains(res, "`print(1)`") {
		t.Errorf("missing inline code in %q", res)
	}
}

func TestCodeBlock(t *testing.T) {
	res := convert(t, `<pre><code class="language-python">print("hi")</code></pre>`)
	want := "```python\nprint(\"hi\")\n```"
	if res != want {
		t.Errorf("unexpected output: %q, want %q", res, want)
	}
}

func TestCodeBlockWithoutLanguage(t *testing.T) {
	res := convert(t, "<pre>plain text</pre>")
	if res != "```\nplain text\n```" {
		t.Errorf("unexpected output: %q", res)
	}
}

func TestBlockquote(t *testing.T) {
	res := convert(t, "<blockquote>quoted text</blockquote>")
	if res != "#quote(block: true)[\n  quoted text\n]" {
		t.Errorf("unexpected output: %q", res)
	}
}

func TestLists(t *testing.T) {
	res := convert(t, "<ul><li>item1</li><li>item2</li></ul>")
	if !strings.Contains(res, "- item1\n- item2") {
		t.Errorf("unexpected bullet list: %q", res)
	}
}

func TestOrderedList(t *testing.T) {
	res := convert(t, "<ol><li>one</li><li>two</li></ol>")
	if res != "#enum(\n  [one],\n  [two],\n)" {
		t.Errorf("unexpected output: %q", res)
	}
}

func TestLooseListItem(t *testing.T) {
	// item without a list ancestor still renders as a bullet line
	res := convert(t, "<li>stray</li>")
	if !strings.Contains(res, "- stray") {
		t.Errorf("unexpected output: %q", res)
	}
}

func TestDescriptionList(t *testing.T) {
	res := convert(t, "<dl><dt>Term</dt><dd>Definition</dd></dl>")
	if !strings.Contains(res, "/ Term") || !strings.Contains(res, ": Definition") {
		t.Errorf("unexpected output: %q", res)
	}
}

func TestLinks(t *testing.T) {
	tests := []struct {
		name string
		html string
		want string
	}{
		{"with href", `<a href="https://example.com">link text</a>`, `#link("https://example.com")[link text]`},
		{"empty href", `<a href="">bare text</a>`, "bare text"},
		{"no href", "<a>bare text</a>", "bare text"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if res := convert(t, tt.html); res != tt.want {
				t.Errorf("unexpected output: %q, want %q", res, tt.want)
			}
		})
	}
}

func TestImages(t *testing.T) {
	tests := []struct {
		name string
		html string
		want string
	}{
		{"src and alt", `<img src="test.png" alt="Test image">`, `#image("test.png", alt: "Test image")`},
		{"percent width", `<img src="a.png" width="50%">`, `#image("a.png", width: 50%)`},
		{"bare width", `<img src="a.png" width="100">`, `#image("a.png", width: 100pt)`},
		{"pixel width", `<img src="a.png" width="32px">`, `#image("a.png", width: 32pt)`},
		{"em width", `<img src="a.png" width="4em">`, `#image("a.png", width: 4em)`},
		{"garbage width", `<img src="a.png" width="wide">`, `#image("a.png")`},
		{"missing src", `<img alt="x">`, "// Image missing src"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if res := convert(t, tt.html); res != tt.want {
				t.Errorf("unexpected output: %q, want %q", res, tt.want)
			}
		})
	}
}

func TestFigure(t *testing.T) {
	res := convert(t, `<figure><img src="fig.png"><figcaption>Figure caption</figcaption></figure>`)
	if res != "#figure(\n  #image(\"fig.png\"),\n  caption: [Figure caption],\n)" {
		t.Errorf("unexpected output: %q", res)
	}
}

func TestMediaPlaceholders(t *testing.T) {
	res := convert(t, `<video src="movie.mp4"></video>`)
	if !strings.Contains(res, "// Video: movie.mp4") {
		t.Errorf("unexpected output: %q", res)
	}
	res = convert(t, "<audio></audio>")
	if !strings.Contains(res, "// Audio: unknown") {
		t.Errorf("unexpected output: %q", res)
	}
}

func TestTable(t *testing.T) {
	res := convert(t, "<table><thead><tr><th>Name</th><th>Age</th></tr></thead>"+
		"<tbody><tr><td>Alice</td><td>30</td></tr><tr><td>Bob</td><td>25</td></tr></tbody></table>")
	want := "#table(\n  columns: 2,\n  [*Name*],\n  [*Age*],\n  [Alice],\n  [30],\n  [Bob],\n  [25],\n)"
	if res != want {
		t.Errorf("unexpected output: %q, want %q", res, want)
	}
}

func TestEmptyTable(t *testing.T) {
	res := convert(t, "<table></table>")
	if res != "#table(\n  columns: 1,\n)" {
		t.Errorf("unexpected output: %q", res)
	}
}

func TestSemanticSections(t *testing.T) {
	res := convert(t, "<header>Top</header><footer>Bottom</footer><main>Middle</main>")
	for _, want := range []string{"// HEADER", "// FOOTER", "// MAIN"} {
		if !strings.Contains(res, want) {
			t.Errorf("missing %q in %q", want, res)
		}
	}
}

func TestDetails(t *testing.T) {
	res := convert(t, "<details><summary>Click</summary><p>Body</p></details>")
	if res != "// Click\nBody" {
		t.Errorf("unexpected output: %q", res)
	}
}

func TestDetailsWithoutSummary(t *testing.T) {
	res := convert(t, "<details><p>Body only</p></details>")
	if res != "// Details\nBody only" {
		t.Errorf("unexpected output: %q", res)
	}
}

func TestLineBreak(t *testing.T) {
	res := convert(t, "<p>Line 1<br>Line 2</p>")
	if !strings.Contains(res, "Line 1\\\nLine 2") {
		t.Errorf("unexpected output: %q", res)
	}
}

func TestHorizontalRule(t *testing.T) {
	res := convert(t, "<hr>")
	if res != "#line(length: 100%)" {
		t.Errorf("unexpected output: %q", res)
	}
}

func TestUnknownTagsKeepContent(t *testing.T) {
	res := convert(t, "<foo><baz>Hello</baz><qux> World</qux></foo>")
	if res != "Hello World" {
		t.Errorf("unexpected output: %q", res)
	}
}

func TestInlineStyles(t *testing.T) {
	tests := []struct {
		name string
		html string
		want string
	}{
		{"color", `<p style="color: red;">X</p>`, `#text(fill: rgb("#ff0000"))[X]`},
		{"background", `<p style="background-color: #00ff00;">X</p>`, `#highlight(fill: rgb("#00ff00"))[X]`},
		{"font size", `<p style="font-size: 16px;">X</p>`, "#text(size: 16pt)[X]"},
		{"justify", `<p style="text-align: justify;">Text</p>`, "#par(justify: true)[Text]"},
		{"center", `<p style="text-align: center;">X</p>`, "#align(center)[X]"},
		{"span color", `<p>A <span style="color: blue;">B</span> C</p>`, `A #text(fill: rgb("#0000ff"))[B] C`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if res := convert(t, tt.html); !strings.Contains(res, tt.want) {
				t.Errorf("missing %q in %q", tt.want, res)
			}
		})
	}
}

func TestStyleNestingOrder(t *testing.T) {
	res := convert(t, `<p style="color: red; background-color: yellow; font-size: 12pt; text-align: center;">X</p>`)
	want := `#align(center)[#text(size: 12pt)[#highlight(fill: rgb("#ffff00"))[#text(fill: rgb("#ff0000"))[X]]]]`
	if res != want {
		t.Errorf("unexpected output: %q, want %q", res, want)
	}
}

func TestAlignmentAlwaysOutermost(t *testing.T) {
	res := convert(t, `<p style="text-align: right; color: green;">X</p>`)
	if !strings.HasPrefix(res, "#align(right)[#text(fill:") {
		t.Errorf("alignment not outermost: %q", res)
	}
}

func TestUnresolvableStylesKeepContent(t *testing.T) {
	values := []string{"inherit", "initial", "unset", "revert", "auto", "transparent", "currentcolor", "ButtonFace", "WindowText"}
	for _, v := range values {
		t.Run(v, func(t *testing.T) {
			for _, prop := range []string{"color", "background-color"} {
				res := convert(t, `<p style="`+prop+`: `+v+`;">Content</p>`)
				if res != "Content" {
					t.Errorf("%s: %s produced styling: %q", prop, v, res)
				}
			}
		})
	}
}

func TestStyledContentNeverLost(t *testing.T) {
	res := convert(t, `<p style="text-align: justify;"><strong style="color: black;">keep me</strong></p>`)
	if !strings.Contains(res, "keep me") {
		t.Errorf("content lost under styling: %q", res)
	}
	if !strings.Contains(res, "#par(justify: true)") {
		t.Errorf("justification call missing: %q", res)
	}
}

func TestSeparatorInsertedBeforeParen(t *testing.T) {
	res := convert(t, "<p><s>gone</s>(really)</p>")
	if strings.Contains(res, "])(") {
		t.Errorf("call collides with literal paren: %q", res)
	}
	if !strings.Contains(res, "#strike([gone]) (really)") {
		t.Errorf("separator not inserted: %q", res)
	}
}

func TestSeparatorWithNestedMarkup(t *testing.T) {
	tests := []struct {
		name string
		html string
		want string
	}{
		{
			"nested inline in styled span",
			`<p><span style="color: red;">see <u>this</u></span>(note)</p>`,
			`#text(fill: rgb("#ff0000"))[see #underline([this])] (note)`,
		},
		{
			"nested inline in strike",
			"<p><s>a<u>b</u></s>(x)</p>",
			"#strike([a#underline([b])]) (x)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := convert(t, tt.html)
			if strings.Contains(res, "](") || strings.Contains(res, "])(") {
				t.Errorf("call collides with literal paren: %q", res)
			}
			if !strings.Contains(res, tt.want) {
				t.Errorf("separator not inserted: %q", res)
			}
		})
	}
}

func TestWindowsLineEndings(t *testing.T) {
	res := convert(t, "<p>first\r\n\r\nsecond</p>")
	if strings.Contains(res, "\r") {
		t.Errorf("carriage return left in output: %q", res)
	}
	if res != "first\n\nsecond" {
		t.Errorf("unexpected output: %q", res)
	}
}

func TestConvertReader(t *testing.T) {
	c := typst.NewConverter(nil)
	res, err := c.ConvertReader(strings.NewReader("<html><head><title>skip</title></head><body><h1>Title</h1></body></html>"), nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res != "= Title" {
		t.Errorf("unexpected output: %q", res)
	}
}

func TestHeadNeverContributes(t *testing.T) {
	res := convert(t, "<html><head><title>Page title</title><style>p{}</style></head><body><p>Body</p></body></html>")
	if strings.Contains(res, "Page title") {
		t.Errorf("head content leaked into output: %q", res)
	}
	if res != "Body" {
		t.Errorf("unexpected output: %q", res)
	}
}

func TestComplexDocument(t *testing.T) {
	res := convert(t, `<article><h1>Article Title</h1><p>Introduction with <strong>important</strong> information.</p>`+
		`<section><h2>Section 1</h2><ul><li>Point 1</li><li>Point 2</li></ul></section>`+
		`<section><h2>Section 2</h2><p>See <a href="https://example.com">this link</a> for more.</p></section></article>`)
	for _, want := range []string{"= Article Title", "*important*", "- Point 1", `#link("https://example.com")`, "// ARTICLE", "// SECTION"} {
		if !strings.Contains(res, want) {
			t.Errorf("missing %q in %q", want, res)
		}
	}
	if strings.Contains(res, "\n\n\n") {
		t.Errorf("excessive blank lines in %q", res)
	}
}
