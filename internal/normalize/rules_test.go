package normalize

import (
	"os"
	"path/filepath"
	"testing"
)

func writeRules(t *testing.T, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "voice.rules")
	if err := os.WriteFile(path, []byte(contents), 0o600); err != nil {
		t.Fatalf("write failed: %v", err)
	}
	return path
}

func TestEngineAppliesLiteralAndRegexRules(t *testing.T) {
	t.Parallel()

	path := writeRules(t, `
# recognizer misfires
text => next
re/\s+/ /
`)
	engine, err := NewEngine(path, 0)
	if err != nil {
		t.Fatalf("new engine failed: %v", err)
	}

	if got := engine.Apply("text"); got != "next" {
		t.Fatalf("literal rule not applied: %q", got)
	}
	if got := engine.Apply("good   condition"); got != "good condition" {
		t.Fatalf("regex rule not applied: %q", got)
	}
}

func TestEnginePassThroughWithoutRules(t *testing.T) {
	t.Parallel()

	engine, err := NewEngine("", 10)
	if err != nil {
		t.Fatalf("new engine failed: %v", err)
	}
	if got := engine.Apply("unchanged"); got != "unchanged" {
		t.Fatalf("expected pass-through, got %q", got)
	}

	engine, err = NewEngine(filepath.Join(t.TempDir(), "missing.rules"), 10)
	if err != nil {
		t.Fatalf("missing file should not error: %v", err)
	}
	if got := engine.Apply("unchanged"); got != "unchanged" {
		t.Fatalf("expected pass-through, got %q", got)
	}
}

func TestEngineIterationLimitStopsCycles(t *testing.T) {
	t.Parallel()

	path := writeRules(t, `
a => b
b => a
`)
	engine, err := NewEngine(path, 3)
	if err != nil {
		t.Fatalf("new engine failed: %v", err)
	}

	// Must terminate; the exact parity depends on the limit.
	got := engine.Apply("a")
	if got != "a" && got != "b" {
		t.Fatalf("unexpected result: %q", got)
	}
}

func TestEngineRejectsMalformedRules(t *testing.T) {
	t.Parallel()

	cases := []string{
		"just some words",
		"re/[unclosed/x",
		" => empty match",
	}
	for _, contents := range cases {
		path := writeRules(t, contents)
		if _, err := NewEngine(path, 10); err == nil {
			t.Fatalf("expected parse error for %q", contents)
		}
	}
}
