package host

import (
	"bytes"
	"strings"
	"testing"
)

func TestConsoleSpeak(t *testing.T) {
	var out bytes.Buffer
	c := NewConsole(&out)

	done := c.Speak([]SpeechElement{LangChange("fr"), Text("pomme")})
	select {
	case <-done:
	default:
		t.Error("console speech must complete immediately")
	}

	got := out.String()
	if !strings.Contains(got, "[lang: fr]") {
		t.Errorf("output missing the language marker: %q", got)
	}
	if !strings.Contains(got, "pomme") {
		t.Errorf("output missing the utterance: %q", got)
	}
}

func TestConsoleMessages(t *testing.T) {
	var out bytes.Buffer
	c := NewConsole(&out)

	c.Message("No results")
	c.BrowseableMessage("<p>body</p>", "English-French")

	got := out.String()
	if !strings.Contains(got, "No results") {
		t.Errorf("output missing the message: %q", got)
	}
	if !strings.Contains(got, "== English-French ==") || !strings.Contains(got, "<p>body</p>") {
		t.Errorf("output missing the browseable document: %q", got)
	}
}

func TestConsoleClipboard(t *testing.T) {
	c := NewConsole(&bytes.Buffer{})
	if c.ClipText() != "" {
		t.Error("clipboard should start empty")
	}
	c.SetClipText("pomme")
	if c.ClipText() != "pomme" {
		t.Errorf("clipboard = %q", c.ClipText())
	}
}

func TestConsoleEngineSwitch(t *testing.T) {
	c := NewConsole(&bytes.Buffer{})

	name, conf := c.Current()
	if name != "espeak" {
		t.Errorf("default engine = %q", name)
	}
	if _, ok := conf["voice"]; !ok {
		t.Error("engine settings missing a voice")
	}

	if c.Switch("missing", nil) {
		t.Error("switch to an uninstalled engine should fail")
	}
	if got, _ := c.Current(); got != "espeak" {
		t.Errorf("engine after failed switch = %q", got)
	}

	c.Installed["vocalizer"] = true
	if !c.Switch("vocalizer", map[string]any{"voice": "fr"}) {
		t.Fatal("switch to an installed engine failed")
	}
	name, conf = c.Current()
	if name != "vocalizer" || conf["voice"] != "fr" {
		t.Errorf("engine after switch = %q %v", name, conf)
	}
}

func TestConsoleCurrentReturnsCopy(t *testing.T) {
	c := NewConsole(&bytes.Buffer{})
	_, conf := c.Current()
	conf["voice"] = "mutated"

	if _, fresh := c.Current(); fresh["voice"] == "mutated" {
		t.Error("Current() leaked internal settings state")
	}
}
