package glossary

import (
	"iter"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/gorsicleo/hjp-tools/internal/domain"
)

// multiSpace separates fields on lines without a tab.
var multiSpace = regexp.MustCompile(`\s{2,}`)

type lineStatus int

const (
	lineParsed lineStatus = iota
	lineBlank
	lineMarker
	lineMalformed
)

// Stats holds per-file parser statistics for logging.
type Stats struct {
	TotalLines     int
	BlankLines     int
	MarkerLines    int
	MalformedLines int
	ParsedLines    int
}

func (s *Stats) count(st lineStatus) {
	s.TotalLines++
	switch st {
	case lineParsed:
		s.ParsedLines++
	case lineBlank:
		s.BlankLines++
	case lineMarker:
		s.MarkerLines++
	case lineMalformed:
		s.MalformedLines++
	}
}

// Entries yields one Entry per data line of text, in file order.
// Blank lines, section markers and lines with fewer than two fields are
// dropped silently. The sequence can be ranged over any number of times.
func (r Rules) Entries(text string) iter.Seq[domain.Entry] {
	return func(yield func(domain.Entry) bool) {
		for line := range lines(text) {
			e, st := r.parseLine(line)
			if st != lineParsed {
				continue
			}
			if !yield(e) {
				return
			}
		}
	}
}

// Scan parses text eagerly and also accounts for every skipped line.
func (r Rules) Scan(text string) ([]domain.Entry, Stats) {
	var (
		entries []domain.Entry
		stats   Stats
	)
	for line := range lines(text) {
		e, st := r.parseLine(line)
		stats.count(st)
		if st == lineParsed {
			entries = append(entries, e)
		}
	}
	return entries, stats
}

// lines yields the lines of text without their terminators. A line ends at
// "\n", "\r\n", a lone "\r", or any other line boundary in isLineBreak, so
// files with old Mac line endings parse line by line. A final terminator
// does not start an extra empty line.
func lines(text string) iter.Seq[string] {
	return func(yield func(string) bool) {
		for text != "" {
			i := strings.IndexFunc(text, isLineBreak)
			if i < 0 {
				yield(text)
				return
			}
			r, size := utf8.DecodeRuneInString(text[i:])
			line, rest := text[:i], text[i+size:]
			if r == '\r' && strings.HasPrefix(rest, "\n") {
				rest = rest[1:]
			}
			if !yield(line) {
				return
			}
			text = rest
		}
	}
}

func isLineBreak(r rune) bool {
	switch r {
	case '\n', '\r', '\v', '\f', '\x1c', '\x1d', '\x1e', '\u0085', '\u2028', '\u2029':
		return true
	}
	return false
}

// Entries parses text with the default rules.
func Entries(text string) iter.Seq[domain.Entry] {
	return DefaultRules().Entries(text)
}

// parseLine turns a raw line into an Entry.
// The first field is the abbreviation, the second the meaning; any further
// fields are ignored.
func (r Rules) parseLine(raw string) (domain.Entry, lineStatus) {
	line := strings.TrimSpace(raw)
	if line == "" {
		return domain.Entry{}, lineBlank
	}

	lower := strings.ToLower(line)
	for _, prefix := range r.SkipPrefixes {
		if strings.HasPrefix(lower, prefix) {
			return domain.Entry{}, lineMarker
		}
	}

	var parts []string
	if strings.Contains(line, "\t") {
		parts = strings.Split(line, "\t")
	} else {
		parts = multiSpace.Split(line, -1)
	}

	fields := parts[:0]
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			fields = append(fields, p)
		}
	}
	if len(fields) < 2 {
		return domain.Entry{}, lineMalformed
	}

	abbr := domain.NormalizeText(fields[0])
	meaning := domain.NormalizeText(fields[1])
	if abbr == "" || meaning == "" {
		return domain.Entry{}, lineMalformed
	}

	return domain.Entry{Abbreviation: abbr, Meaning: meaning}, lineParsed
}
