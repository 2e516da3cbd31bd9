package knowledge

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultsHaveNoOverlaps(t *testing.T) {
	if overlaps := Default().Overlaps(); len(overlaps) != 0 {
		t.Errorf("built-in triggers overlap: %+v", overlaps)
	}
}

func TestDefaultDeclarationOrder(t *testing.T) {
	want := []string{
		"what is a stock",
		"what is a bond",
		"what is an etf",
		"what is diversification",
		"what is a dividend",
		"how to start investing",
		"help",
	}

	got := Default().Entries()
	if len(got) != len(want) {
		t.Fatalf("Default() has %d entries, want %d", len(got), len(want))
	}
	for i, e := range got {
		if e.Trigger != want[i] {
			t.Errorf("entry %d trigger = %q, want %q", i, e.Trigger, want[i])
		}
	}
}

func TestBase_Exact(t *testing.T) {
	b := Default()

	tests := []struct {
		name    string
		message string
		want    string
		found   bool
	}{
		{"exact", "what is a bond", "what is a bond", true},
		{"case and spaces", "  What Is A Bond  ", "what is a bond", true},
		{"substring only", "tell me what is a bond", "", false},
		{"empty", "", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e, ok := b.Exact(tt.message)
			if ok != tt.found {
				t.Fatalf("Exact(%q) found = %v, want %v", tt.message, ok, tt.found)
			}
			if e.Trigger != tt.want {
				t.Errorf("Exact(%q) trigger = %q, want %q", tt.message, e.Trigger, tt.want)
			}
		})
	}
}

func TestBase_ContainsFirstDeclaredWins(t *testing.T) {
	b := New([]Entry{
		{Trigger: "bond", Answer: "first"},
		{Trigger: "etf", Answer: "second"},
	})

	// Both triggers appear; "etf" appears earlier in the text but "bond" is declared first.
	e, ok := b.Contains("etf or bond?")
	if !ok {
		t.Fatal("Contains() found nothing")
	}
	if e.Answer != "first" {
		t.Errorf("Contains() answer = %q, want %q", e.Answer, "first")
	}

	if _, ok := b.Contains(""); ok {
		t.Error("Contains(\"\") should find nothing")
	}
}

func TestBase_NewNormalizesAndDedupes(t *testing.T) {
	b := New([]Entry{
		{Trigger: "  HELP ", Answer: "a"},
		{Trigger: "help", Answer: "b"},
		{Trigger: "   ", Answer: "c"},
	})

	if b.Len() != 1 {
		t.Fatalf("Len() = %d, want 1", b.Len())
	}
	e, _ := b.Exact("help")
	if e.Answer != "a" {
		t.Errorf("duplicate trigger should keep first answer, got %q", e.Answer)
	}
}

func TestBase_Overlaps(t *testing.T) {
	b := New([]Entry{
		{Trigger: "stock", Answer: "short"},
		{Trigger: "what is a stock", Answer: "long"},
	})

	overlaps := b.Overlaps()
	if len(overlaps) != 1 {
		t.Fatalf("Overlaps() = %+v, want one pair", overlaps)
	}
	o := overlaps[0]
	if o.Inner != "stock" || o.Outer != "what is a stock" || !o.Shadowing {
		t.Errorf("Overlaps()[0] = %+v", o)
	}
}

func TestBase_ExtendKeepsBuiltinPrecedence(t *testing.T) {
	b := Default()
	extended, skipped := b.Extend([]Entry{
		{Trigger: "what is a reit", Answer: "A REIT owns real estate."},
		{Trigger: "help", Answer: "overridden"},
	})

	if len(skipped) != 1 || skipped[0] != "help" {
		t.Errorf("skipped = %v, want [help]", skipped)
	}
	if extended.Len() != b.Len()+1 {
		t.Errorf("Len() = %d, want %d", extended.Len(), b.Len()+1)
	}
	entries := extended.Entries()
	if entries[len(entries)-1].Trigger != "what is a reit" {
		t.Error("extra entries must come after built-ins")
	}
	if b.Len() != len(defaultEntries) {
		t.Error("Extend must not mutate the receiver")
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()

	t.Run("no path", func(t *testing.T) {
		b, skipped, err := Load("")
		if err != nil || skipped != nil || b.Len() != len(defaultEntries) {
			t.Errorf("Load(\"\") = %d entries, %v, %v", b.Len(), skipped, err)
		}
	})

	t.Run("missing file", func(t *testing.T) {
		b, _, err := Load(filepath.Join(dir, "missing.yaml"))
		if err != nil {
			t.Fatalf("Load() error = %v", err)
		}
		if b.Len() != len(defaultEntries) {
			t.Errorf("Len() = %d", b.Len())
		}
	})

	t.Run("valid file", func(t *testing.T) {
		path := filepath.Join(dir, "kb.yaml")
		content := "entries:\n  - trigger: What Is A REIT\n    answer: A REIT owns property.\n"
		if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
			t.Fatal(err)
		}

		b, _, err := Load(path)
		if err != nil {
			t.Fatalf("Load() error = %v", err)
		}
		e, ok := b.Exact("what is a reit")
		if !ok || e.Answer != "A REIT owns property." {
			t.Errorf("Exact() = %+v, %v", e, ok)
		}
	})

	t.Run("empty answer", func(t *testing.T) {
		path := filepath.Join(dir, "bad.yaml")
		content := "entries:\n  - trigger: foo\n    answer: \"\"\n"
		if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
			t.Fatal(err)
		}
		if _, _, err := Load(path); err == nil {
			t.Error("Load() expected error for empty answer")
		}
	})

	t.Run("invalid yaml", func(t *testing.T) {
		path := filepath.Join(dir, "broken.yaml")
		if err := os.WriteFile(path, []byte("entries: [:"), 0o600); err != nil {
			t.Fatal(err)
		}
		if _, _, err := Load(path); err == nil {
			t.Error("Load() expected error for invalid yaml")
		}
	})
}
