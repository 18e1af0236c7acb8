package lexicala

import (
	"encoding/json"
	"strings"
	"testing"
)

func decode(t *testing.T, raw string) map[string]any {
	t.Helper()
	var resp map[string]any
	if err := json.Unmarshal([]byte(raw), &resp); err != nil {
		t.Fatalf("bad test payload: %v", err)
	}
	return resp
}

const appleResponse = `{
	"results": [{
		"headword": {"text": "apple", "pos": "noun"},
		"senses": [
			{
				"definition": "round fruit with firm flesh",
				"translations": {
					"fr": {"text": "pomme"},
					"de": {"text": "Apfel"}
				}
			},
			{
				"definition": "the tree bearing such fruit",
				"translations": {
					"fr": [{"text": "pommier"}, {"text": "pomme"}]
				}
			}
		]
	}]
}`

func TestParserToHTML(t *testing.T) {
	p := NewParser(decode(t, appleResponse), "fr")
	got := p.ToHTML()

	for _, want := range []string{
		"<h1>apple (noun)</h1>",
		"<li><b>pomme</b> - round fruit with firm flesh</li>",
		"<li><b>pommier, pomme</b> - the tree bearing such fruit</li>",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("HTML missing %q:\n%s", want, got)
		}
	}
	if strings.Contains(got, "Apfel") {
		t.Error("translations of other target languages leaked into the output")
	}
}

func TestParserTargetWithoutTranslations(t *testing.T) {
	p := NewParser(decode(t, appleResponse), "sw")
	got := p.ToHTML()

	// Definitions still render when no translation matches the target.
	if !strings.Contains(got, "<li>round fruit with firm flesh</li>") {
		t.Errorf("definition-only sense missing:\n%s", got)
	}
}

func TestParserToText(t *testing.T) {
	p := NewParser(decode(t, appleResponse), "fr")
	got := p.ToText()

	if !strings.Contains(got, "- apple (noun)") {
		t.Errorf("text missing the dashed headword:\n%s", got)
	}
	if !strings.Contains(got, "• pomme - round fruit with firm flesh") {
		t.Errorf("text missing the bulleted sense:\n%s", got)
	}
	if strings.Contains(got, "<") {
		t.Errorf("text still contains markup:\n%s", got)
	}
}

func TestParserEmptyResults(t *testing.T) {
	for _, raw := range []string{`{"results": []}`, `{}`} {
		p := NewParser(decode(t, raw), "fr")
		if got := p.ToHTML(); got != "" {
			t.Errorf("empty response rendered %q", got)
		}
	}
	if got := NewParser(nil, "fr").ToHTML(); got != "" {
		t.Errorf("nil response rendered %q", got)
	}
}

func TestParserErrorResponse(t *testing.T) {
	p := NewParser(decode(t, `{"error": "quota exceeded"}`), "fr")
	if got := p.ToHTML(); got != "<h1>quota exceeded</h1>" {
		t.Errorf("error HTML = %q", got)
	}
	if got := p.ToText(); got != "- quota exceeded" {
		t.Errorf("error text = %q", got)
	}
}

func TestParserSkipsHeadwordlessEntries(t *testing.T) {
	p := NewParser(decode(t, `{"results": [{"senses": [{"definition": "orphan"}]}]}`), "fr")
	if got := p.ToHTML(); got != "" {
		t.Errorf("entry without a headword rendered %q", got)
	}
}
