package yandex

import (
	"fmt"
	"html"
	"regexp"
	"strings"
)

// Parser converts a deserialized Yandex lookup response into HTML and
// plain text. It is pure; error-shaped or partial input yields an HTML
// error fragment instead of failing.
type Parser struct {
	resp map[string]any
}

// NewParser wraps a deserialized response.
func NewParser(resp map[string]any) *Parser {
	return &Parser{resp: resp}
}

// attrs renders the grammatical attributes of an entry node: part of
// speech, aspect, number and gender.
func attrs(node map[string]any) string {
	var parts []string
	for _, key := range []string{"pos", "asp", "num", "gen"} {
		val, ok := node[key].(string)
		if !ok || val == "" {
			continue
		}
		label := map[string]string{
			"num": "<i>number</i>: ",
			"gen": "<i>gender</i>: ",
		}[key]
		parts = append(parts, label+html.EscapeString(val))
	}
	if len(parts) == 0 {
		return ""
	}
	return fmt.Sprintf(" (%s)", strings.Join(parts, ", "))
}

func nodeText(node map[string]any) string {
	text, _ := node["text"].(string)
	return html.EscapeString(text)
}

func items(node map[string]any, key string) []map[string]any {
	raw, _ := node[key].([]any)
	out := make([]map[string]any, 0, len(raw))
	for _, el := range raw {
		if m, ok := el.(map[string]any); ok {
			out = append(out, m)
		}
	}
	return out
}

// ToHTML renders the response as an HTML fragment. An error-shaped
// response renders its message as a heading; an empty article renders
// as an empty string.
func (p *Parser) ToHTML() string {
	return render(p.resp)
}

func render(node map[string]any) string {
	if node == nil {
		return ""
	}
	if errMsg, ok := node["error"].(string); ok && errMsg != "" {
		return fmt.Sprintf("<h1>%s</h1>", html.EscapeString(errMsg))
	}
	var b strings.Builder
	if defs, ok := node["def"]; ok {
		if raw, _ := defs.([]any); len(raw) == 0 {
			return ""
		}
		for _, def := range items(node, "def") {
			fmt.Fprintf(&b, "<h1>%s%s</h1>\n", nodeText(def), attrs(def))
			b.WriteString(render(def))
			b.WriteString("\n")
		}
	}
	if _, ok := node["tr"]; ok {
		b.WriteString("<ul>\n")
		for _, tr := range items(node, "tr") {
			fmt.Fprintf(&b, "<li><b>%s</b>%s\n", nodeText(tr), attrs(tr))
			b.WriteString(render(tr))
			b.WriteString("</li>\n")
		}
		b.WriteString("</ul>\n")
	}
	if _, ok := node["mean"]; ok {
		b.WriteString("<p><i>Mean</i>: ")
		var means []string
		for _, m := range items(node, "mean") {
			means = append(means, nodeText(m)+attrs(m))
		}
		b.WriteString(strings.Join(means, ", ") + "</p>\n")
	}
	if _, ok := node["syn"]; ok {
		b.WriteString("<p><i>Synonyms</i>:\n")
		var syns []string
		for _, s := range items(node, "syn") {
			syns = append(syns, nodeText(s)+attrs(s))
		}
		b.WriteString(strings.Join(syns, ", ") + "</p>\n")
	}
	if _, ok := node["ex"]; ok {
		b.WriteString("<p><i>Examples</i>:\n")
		var exs []string
		for _, ex := range items(node, "ex") {
			line := nodeText(ex) + attrs(ex)
			if _, ok := ex["tr"]; ok {
				var trs []string
				for _, tr := range items(ex, "tr") {
					trs = append(trs, nodeText(tr)+attrs(tr))
				}
				line += " - " + strings.Join(trs, ", ")
			}
			exs = append(exs, line)
		}
		b.WriteString(strings.Join(exs, ",\n") + "</p>")
	}
	return b.String()
}

var tagRe = regexp.MustCompile(`<[^>]*>`)

// ToText flattens the HTML rendering into speakable plain text: list
// items become bullets, headings become dashes, all other markup is
// stripped and blank lines dropped.
func (p *Parser) ToText() string {
	text := p.ToHTML()
	text = strings.ReplaceAll(text, "<li>", "• ")
	text = strings.ReplaceAll(text, "<h1>", "- ")
	text = tagRe.ReplaceAllString(text, "")
	var lines []string
	for _, line := range strings.Split(text, "\n") {
		if line != "" {
			lines = append(lines, html.UnescapeString(line))
		}
	}
	return strings.Join(lines, "\r\n")
}
