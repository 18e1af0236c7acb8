package lexicala

import (
	"fmt"
	"html"
	"regexp"
	"strings"
)

// Parser converts a deserialized Lexicala search response into HTML and
// plain text. Pure; error-shaped or partially-shaped input yields an
// HTML error fragment or an empty string, never a failure.
type Parser struct {
	resp   map[string]any
	langTo string
}

// NewParser wraps a deserialized response. langTo selects which
// translations are rendered.
func NewParser(resp map[string]any, langTo string) *Parser {
	return &Parser{resp: resp, langTo: langTo}
}

// ToHTML renders the search results as an HTML fragment.
func (p *Parser) ToHTML() string {
	if p.resp == nil {
		return ""
	}
	if errMsg, ok := p.resp["error"].(string); ok && errMsg != "" {
		return fmt.Sprintf("<h1>%s</h1>", html.EscapeString(errMsg))
	}
	results, _ := p.resp["results"].([]any)
	if len(results) == 0 {
		return ""
	}
	var b strings.Builder
	for _, raw := range results {
		entry, ok := raw.(map[string]any)
		if !ok {
			continue
		}
		p.renderEntry(&b, entry)
	}
	return b.String()
}

func (p *Parser) renderEntry(b *strings.Builder, entry map[string]any) {
	headword, _ := entry["headword"].(map[string]any)
	text, _ := headword["text"].(string)
	if text == "" {
		return
	}
	pos := attribute(headword, "pos")
	fmt.Fprintf(b, "<h1>%s%s</h1>\n", html.EscapeString(text), pos)

	senses, _ := entry["senses"].([]any)
	if len(senses) == 0 {
		return
	}
	b.WriteString("<ul>\n")
	for _, raw := range senses {
		sense, ok := raw.(map[string]any)
		if !ok {
			continue
		}
		p.renderSense(b, sense)
	}
	b.WriteString("</ul>\n")
}

func (p *Parser) renderSense(b *strings.Builder, sense map[string]any) {
	definition, _ := sense["definition"].(string)
	translation := p.translation(sense)
	switch {
	case translation != "" && definition != "":
		fmt.Fprintf(b, "<li><b>%s</b> - %s</li>\n",
			html.EscapeString(translation), html.EscapeString(definition))
	case translation != "":
		fmt.Fprintf(b, "<li><b>%s</b></li>\n", html.EscapeString(translation))
	case definition != "":
		fmt.Fprintf(b, "<li>%s</li>\n", html.EscapeString(definition))
	}
}

// translation extracts the translation for the target language; the
// field is either a single object or a list of them.
func (p *Parser) translation(sense map[string]any) string {
	translations, _ := sense["translations"].(map[string]any)
	raw, ok := translations[p.langTo]
	if !ok {
		return ""
	}
	switch v := raw.(type) {
	case map[string]any:
		text, _ := v["text"].(string)
		return text
	case []any:
		var texts []string
		for _, el := range v {
			if m, ok := el.(map[string]any); ok {
				if text, _ := m["text"].(string); text != "" {
					texts = append(texts, text)
				}
			}
		}
		return strings.Join(texts, ", ")
	}
	return ""
}

// attribute renders one named attribute of a headword, e.g. its part
// of speech.
func attribute(node map[string]any, key string) string {
	val, _ := node[key].(string)
	if val == "" {
		return ""
	}
	return fmt.Sprintf(" (%s)", html.EscapeString(val))
}

var tagRe = regexp.MustCompile(`<[^>]*>`)

// ToText flattens the HTML rendering into speakable plain text.
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
