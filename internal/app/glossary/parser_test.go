package glossary

import (
	"os"
	"path/filepath"
	"runtime"
	"slices"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/gorsicleo/hjp-tools/internal/domain"
)

func testdataPath(t *testing.T, name string) string {
	t.Helper()
	_, file, _, ok := runtime.Caller(0)
	if !ok {
		t.Fatal("cannot determine test file path")
	}
	return filepath.Join(filepath.Dir(file), "testdata", name)
}

// --- single lines ---

func TestParseLine(t *testing.T) {
	t.Parallel()

	rules := DefaultRules()
	tests := []struct {
		name       string
		line       string
		wantStatus lineStatus
		want       domain.Entry
	}{
		{"tab separated", "usp.\tuseful", lineParsed, domain.Entry{Abbreviation: "usp.", Meaning: "useful"}},
		{"two spaces", "fr.  French", lineParsed, domain.Entry{Abbreviation: "fr.", Meaning: "French"}},
		{"many spaces", "ant.    antonym", lineParsed, domain.Entry{Abbreviation: "ant.", Meaning: "antonym"}},
		{"surrounding whitespace", "   ant.    antonym  \r\n", lineParsed, domain.Entry{Abbreviation: "ant.", Meaning: "antonym"}},
		{"extra fields ignored", "njem.  njemački  (Austrian)", lineParsed, domain.Entry{Abbreviation: "njem.", Meaning: "njemački"}},
		{"single space inside fields", "pl. tantum  pluralia tantum", lineParsed, domain.Entry{Abbreviation: "pl. tantum", Meaning: "pluralia tantum"}},
		{"empty tab fields dropped", "dem.\t\t\tdeminutiv", lineParsed, domain.Entry{Abbreviation: "dem.", Meaning: "deminutiv"}},
		{"tab wins over spaces", "a  b\tc", lineParsed, domain.Entry{Abbreviation: "a b", Meaning: "c"}},
		{"internal whitespace collapsed", "x.\tsome   long  meaning", lineParsed, domain.Entry{Abbreviation: "x.", Meaning: "some long meaning"}},
		{"single space only", "Language abbreviations", lineMalformed, domain.Entry{}},
		{"one field", "nonsense", lineMalformed, domain.Entry{}},
		{"trailing tab only", "usp.\t", lineMalformed, domain.Entry{}},
		{"blank", "   ", lineBlank, domain.Entry{}},
		{"empty", "", lineBlank, domain.Entry{}},
		{"marker", "And there is even more stuff here", lineMarker, domain.Entry{}},
		{"marker with tabs", "and there is even more\tv.\tvidi", lineMarker, domain.Entry{}},
		{"marker upper case", "  AND THERE IS EVEN MORE  x  y", lineMarker, domain.Entry{}},
		{"marker phrase not at start", "x.  and there is even more", lineParsed, domain.Entry{Abbreviation: "x.", Meaning: "and there is even more"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, status := rules.parseLine(tt.line)
			if status != tt.wantStatus {
				t.Fatalf("parseLine(%q) status = %v, want %v", tt.line, status, tt.wantStatus)
			}
			if got != tt.want {
				t.Errorf("parseLine(%q) = %+v, want %+v", tt.line, got, tt.want)
			}
		})
	}
}

// --- whole texts ---

func TestEntries_PreservesOrder(t *testing.T) {
	t.Parallel()

	text := "b.  second\n\na.\tfirst\nbroken\nc.  third\n"
	got := slices.Collect(Entries(text))
	want := []domain.Entry{
		{Abbreviation: "b.", Meaning: "second"},
		{Abbreviation: "a.", Meaning: "first"},
		{Abbreviation: "c.", Meaning: "third"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Entries mismatch (-want +got):\n%s", diff)
	}
}

func TestEntries_IsRestartable(t *testing.T) {
	t.Parallel()

	seq := Entries("a.  one\nb.  two\n")
	first := slices.Collect(seq)
	second := slices.Collect(seq)
	if diff := cmp.Diff(first, second); diff != "" {
		t.Errorf("second pass differs (-first +second):\n%s", diff)
	}
	if len(first) != 2 {
		t.Errorf("expected 2 entries, got %d", len(first))
	}
}

func TestEntries_StopsEarly(t *testing.T) {
	t.Parallel()

	n := 0
	for range Entries("a.  1\nb.  2\nc.  3\n") {
		n++
		if n == 2 {
			break
		}
	}
	if n != 2 {
		t.Errorf("expected to stop after 2 entries, got %d", n)
	}
}

func TestEntries_NoTrailingNewline(t *testing.T) {
	t.Parallel()

	got := slices.Collect(Entries("a.  one\r\nb.  two"))
	if len(got) != 2 || got[1].Meaning != "two" {
		t.Errorf("unexpected entries: %+v", got)
	}
}

func TestLines(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{"empty", "", nil},
		{"unix", "a\nb\n", []string{"a", "b"}},
		{"windows", "a\r\nb\r\n", []string{"a", "b"}},
		{"lone carriage return", "a\rb\r", []string{"a", "b"}},
		{"mixed endings", "a\rb\r\nc\nd", []string{"a", "b", "c", "d"}},
		{"blank lines kept", "a\n\n\rb", []string{"a", "", "", "b"}},
		{"unicode separators", "a\u2028b\u2029c\u0085d", []string{"a", "b", "c", "d"}},
		{"form feed and vertical tab", "a\fb\vc", []string{"a", "b", "c"}},
		{"no terminator", "abc", []string{"abc"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := slices.Collect(lines(tt.input))
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("lines(%q) mismatch (-want +got):\n%s", tt.input, diff)
			}
		})
	}
}

func TestScan_CarriageReturnOnlyFile(t *testing.T) {
	t.Parallel()

	entries, stats := DefaultRules().Scan("a.  one\rb.  two\r")

	want := []domain.Entry{
		{Abbreviation: "a.", Meaning: "one"},
		{Abbreviation: "b.", Meaning: "two"},
	}
	if diff := cmp.Diff(want, entries); diff != "" {
		t.Errorf("entries mismatch (-want +got):\n%s", diff)
	}
	if stats.TotalLines != 2 {
		t.Errorf("TotalLines = %d, want 2", stats.TotalLines)
	}
}

func TestScan_Testdata(t *testing.T) {
	t.Parallel()

	data, err := os.ReadFile(testdataPath(t, "languages.txt"))
	if err != nil {
		t.Fatal(err)
	}

	entries, stats := DefaultRules().Scan(string(data))

	wantStats := Stats{TotalLines: 9, BlankLines: 1, MarkerLines: 1, MalformedLines: 1, ParsedLines: 6}
	if diff := cmp.Diff(wantStats, stats); diff != "" {
		t.Errorf("stats mismatch (-want +got):\n%s", diff)
	}

	wantAbbrs := []string{"fr.", "lat.", "tal.", "njem.", "grč.", "v."}
	var gotAbbrs []string
	for _, e := range entries {
		gotAbbrs = append(gotAbbrs, e.Abbreviation)
	}
	if diff := cmp.Diff(wantAbbrs, gotAbbrs); diff != "" {
		t.Errorf("abbreviations mismatch (-want +got):\n%s", diff)
	}

	lazy := slices.Collect(DefaultRules().Entries(string(data)))
	if diff := cmp.Diff(entries, lazy); diff != "" {
		t.Errorf("Scan and Entries disagree (-scan +entries):\n%s", diff)
	}
}

func TestScan_CustomSkipPrefix(t *testing.T) {
	t.Parallel()

	rules := DefaultRules()
	rules.SkipPrefixes = []string{"#"}

	entries, stats := rules.Scan("# comment  line\nand there is even more  x\n")
	if stats.MarkerLines != 1 {
		t.Errorf("MarkerLines = %d, want 1", stats.MarkerLines)
	}
	if len(entries) != 1 || entries[0].Abbreviation != "and there is even more" {
		t.Errorf("unexpected entries: %+v", entries)
	}
}
