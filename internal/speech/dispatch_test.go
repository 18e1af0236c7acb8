package speech

import (
	"path/filepath"
	"testing"
	"time"

	"codeberg.org/snonux/quickdict/internal/host"
	"codeberg.org/snonux/quickdict/internal/synthesizers"
	"codeberg.org/snonux/quickdict/internal/testutil"
)

type fixture struct {
	engine   *testutil.MockEngine
	profiles *synthesizers.Profiles
	speech   *testutil.MockSpeech
	braille  *testutil.MockBraille
}

func newFixture(t *testing.T, opts testutil.MockSpeechOptions) (*Dispatcher, *fixture) {
	t.Helper()
	f := &fixture{
		engine:  testutil.NewMockEngine(),
		speech:  &testutil.MockSpeech{},
		braille: &testutil.MockBraille{},
	}
	f.profiles = synthesizers.NewProfiles(f.engine, filepath.Join(t.TempDir(), "profiles.json"), testutil.Logger())
	d := NewDispatcher(f.profiles, f.speech, f.braille, opts, nil, testutil.Logger())
	return d, f
}

func waitForEngine(t *testing.T, engine *testutil.MockEngine, want string) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if engine.CurrentName() == want {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("engine stayed %q, want %q", engine.CurrentName(), want)
}

func TestSpeakBuildsSequenceWithLangChange(t *testing.T) {
	d, f := newFixture(t, testutil.MockSpeechOptions{AutoLang: true})
	d.Speak("pomme", "fr")

	if len(f.speech.Seqs) != 1 {
		t.Fatalf("Speak called %d times, want 1", len(f.speech.Seqs))
	}
	seq := f.speech.Seqs[0]
	if len(seq) != 2 {
		t.Fatalf("sequence length = %d, want 2", len(seq))
	}
	if lang, ok := seq[0].(host.LangChange); !ok || string(lang) != "fr" {
		t.Errorf("sequence[0] = %#v, want LangChange(fr)", seq[0])
	}
	if text, ok := seq[1].(host.Text); !ok || string(text) != "pomme" {
		t.Errorf("sequence[1] = %#v, want Text(pomme)", seq[1])
	}
}

func TestSpeakWithoutAutoLangOmitsMarker(t *testing.T) {
	d, f := newFixture(t, testutil.MockSpeechOptions{AutoLang: false})
	d.Speak("pomme", "fr")

	seq := f.speech.Seqs[0]
	if len(seq) != 1 {
		t.Fatalf("sequence length = %d, want just the text", len(seq))
	}
	if _, ok := seq[0].(host.Text); !ok {
		t.Errorf("sequence[0] = %#v, want Text", seq[0])
	}
}

func TestSpeakWithoutLangOmitsMarker(t *testing.T) {
	d, f := newFixture(t, testutil.MockSpeechOptions{AutoLang: true})
	d.Speak("hm", "")

	if len(f.speech.Seqs[0]) != 1 {
		t.Error("a sequence with no language must not carry a LangChange")
	}
}

func TestSpeakMirrorsToBraille(t *testing.T) {
	d, f := newFixture(t, testutil.MockSpeechOptions{})
	d.Speak("pomme", "fr")

	if len(f.braille.Lines) != 1 || f.braille.Lines[0] != "pomme" {
		t.Errorf("braille lines = %v, want [pomme]", f.braille.Lines)
	}
}

func TestSpeakSwitchesSynthesizerAndRollsBack(t *testing.T) {
	d, f := newFixture(t, testutil.MockSpeechOptions{Switch: true})
	f.speech.Manual = true
	f.engine.Installed["vocalizer"] = true

	// A French profile captured from the second engine.
	f.engine.Switch("vocalizer", map[string]any{"voice": "fr"})
	f.profiles.Capture(1, "fr")
	f.engine.Switch("espeak", map[string]any{"voice": "en"})

	d.Speak("pomme", "fr")
	if f.engine.CurrentName() != "vocalizer" {
		t.Fatalf("engine while speaking = %q, want vocalizer", f.engine.CurrentName())
	}

	// Host signals speech finished; the watcher must restore the engine.
	f.speech.Finish(0)
	waitForEngine(t, f.engine, "espeak")
}

func TestSpeakNoProfileForLanguageKeepsEngine(t *testing.T) {
	d, f := newFixture(t, testutil.MockSpeechOptions{Switch: true})
	d.Speak("pomme", "fr")

	if f.engine.CurrentName() != "espeak" {
		t.Errorf("engine = %q, want untouched espeak", f.engine.CurrentName())
	}
	if len(f.speech.Seqs) != 1 {
		t.Error("speech must still be delivered without a profile")
	}
}

func TestSpeakFailedSwitchStillSpeaks(t *testing.T) {
	d, f := newFixture(t, testutil.MockSpeechOptions{Switch: true})
	f.engine.Installed["vocalizer"] = true
	f.engine.Switch("vocalizer", map[string]any{"voice": "fr"})
	f.profiles.Capture(1, "fr")
	f.engine.Switch("espeak", map[string]any{"voice": "en"})

	// The profile's engine vanishes between capture and lookup.
	delete(f.engine.Installed, "vocalizer")
	d.Speak("pomme", "fr")

	if f.engine.CurrentName() != "espeak" {
		t.Errorf("engine = %q, want espeak", f.engine.CurrentName())
	}
	if got := f.speech.Texts(); len(got) != 1 || got[0] != "pomme" {
		t.Errorf("spoken texts = %v, want [pomme]", got)
	}
}

func TestSpeakRollbackAfterInstantCompletion(t *testing.T) {
	// The console host closes the done channel before Speak returns;
	// rollback must still fire.
	d, f := newFixture(t, testutil.MockSpeechOptions{Switch: true})
	f.engine.Installed["vocalizer"] = true
	f.engine.Switch("vocalizer", map[string]any{"voice": "fr"})
	f.profiles.Capture(1, "fr")
	f.engine.Switch("espeak", map[string]any{"voice": "en"})

	d.Speak("pomme", "fr")
	waitForEngine(t, f.engine, "espeak")
}

func TestConsecutiveSwitchedUtterances(t *testing.T) {
	d, f := newFixture(t, testutil.MockSpeechOptions{Switch: true})
	f.engine.Installed["vocalizer"] = true
	f.engine.Switch("vocalizer", map[string]any{"voice": "fr"})
	f.profiles.Capture(1, "fr")
	f.engine.Switch("espeak", map[string]any{"voice": "en"})

	d.Speak("pomme", "fr")
	waitForEngine(t, f.engine, "espeak")
	d.Speak("poire", "fr")
	waitForEngine(t, f.engine, "espeak")

	if got := f.speech.Texts(); len(got) != 2 {
		t.Errorf("spoken texts = %v, want two utterances", got)
	}
}
