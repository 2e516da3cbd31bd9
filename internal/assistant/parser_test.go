package assistant

import "testing"

func TestParse(t *testing.T) {
	tests := []struct {
		name        string
		input       string
		wantCommand string
		wantArgs    string
	}{
		{"simple", "stock AAPL", "stock", "aapl"},
		{"extra whitespace", "  Stock   AAPL  ", "stock", "aapl"},
		{"tabs and newlines", "stock\t\tmsft\n", "stock", "msft"},
		{"single word", "help", "help", ""},
		{"multiple args", "what is a   Bond", "what", "is a bond"},
		{"empty", "", "", ""},
		{"whitespace only", "   \t ", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Parse(tt.input)
			if got.Command != tt.wantCommand {
				t.Errorf("Parse(%q).Command = %q, want %q", tt.input, got.Command, tt.wantCommand)
			}
			if got.Args != tt.wantArgs {
				t.Errorf("Parse(%q).Args = %q, want %q", tt.input, got.Args, tt.wantArgs)
			}
		})
	}
}

func TestParsedCommand_FirstArg(t *testing.T) {
	if got := Parse("stock aapl msft").FirstArg(); got != "aapl" {
		t.Errorf("FirstArg() = %q, want aapl", got)
	}
	if got := Parse("stock").FirstArg(); got != "" {
		t.Errorf("FirstArg() = %q, want empty", got)
	}
}

func TestFormatQuote(t *testing.T) {
	up := FormatQuote(&quoteFixture)
	want := "📈 AAPL: $150.00\nChange: 2.50 (1.69%)\nDay high: $151.00\nDay low: $148.00"
	if up != want {
		t.Errorf("FormatQuote() =\n%s\nwant\n%s", up, want)
	}

	down := quoteFixture
	down.Change = -0.5
	if got := FormatQuote(&down); got[:len(GlyphDown)] != GlyphDown {
		t.Errorf("FormatQuote() with negative change = %q, want down glyph", got)
	}

	flat := quoteFixture
	flat.Change = 0
	if got := FormatQuote(&flat); got[:len(GlyphUp)] != GlyphUp {
		t.Errorf("FormatQuote() with zero change = %q, want up glyph", got)
	}
}
