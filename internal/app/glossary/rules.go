// Package glossary turns plain-text abbreviation lists into a merged
// abbreviation table and serializes it.
//
// Parsing, classification and merging are pure; only ReadSource, Write and
// Pipeline.Run touch the filesystem.
package glossary

import (
	"path/filepath"
	"slices"
	"strings"

	"github.com/gorsicleo/hjp-tools/internal/config"
	"github.com/gorsicleo/hjp-tools/internal/domain"
)

var (
	defaultLanguageHints = []string{"lang", "language"}
	defaultSkipPrefixes  = []string{"and there is even more"}
)

// Rules holds the file-level heuristics applied to glossary files.
// The relation markers are not part of it: that set is closed.
type Rules struct {
	// LanguageHints are lowercase substrings of a file name that mark it as
	// a list of language abbreviations.
	LanguageHints []string
	// SkipPrefixes are lowercase line prefixes of non-data sections.
	SkipPrefixes []string
}

// DefaultRules returns the rules for the standard glossary sources.
func DefaultRules() Rules {
	return Rules{
		LanguageHints: slices.Clone(defaultLanguageHints),
		SkipPrefixes:  slices.Clone(defaultSkipPrefixes),
	}
}

// RulesFromConfig builds Rules from glossary config.
func RulesFromConfig(cfg config.GlossaryConfig) Rules {
	r := Rules{
		LanguageHints: make([]string, 0, len(cfg.LanguageHints)),
		SkipPrefixes:  make([]string, 0, len(cfg.SkipPrefixes)),
	}
	for _, h := range cfg.LanguageHints {
		r.LanguageHints = append(r.LanguageHints, strings.ToLower(h))
	}
	for _, p := range cfg.SkipPrefixes {
		r.SkipPrefixes = append(r.SkipPrefixes, strings.ToLower(p))
	}
	return r
}

// IsLanguageList reports whether the file at path holds language-name
// abbreviations, judged by a case-insensitive match on its base name.
func (r Rules) IsLanguageList(path string) bool {
	name := strings.ToLower(filepath.Base(path))
	for _, hint := range r.LanguageHints {
		if strings.Contains(name, hint) {
			return true
		}
	}
	return false
}

// IsRelationMarker reports whether abbr is one of the cross-reference
// markers usp., v., opr. and izv. The match is exact.
func IsRelationMarker(abbr string) bool {
	switch abbr {
	case "usp.", "v.", "opr.", "izv.":
		return true
	}
	return false
}

// Classify assigns a kind to an entry. Relation markers win in every file.
// The meaning does not influence the result.
func (r Rules) Classify(abbr, _ string, isLanguageList bool) domain.Kind {
	switch {
	case IsRelationMarker(abbr):
		return domain.KindRelation
	case isLanguageList:
		return domain.KindLanguage
	default:
		return domain.KindLabel
	}
}

// IsLanguageList applies the default language hints.
func IsLanguageList(path string) bool {
	return DefaultRules().IsLanguageList(path)
}

// Classify applies the default rules.
func Classify(abbr, meaning string, isLanguageList bool) domain.Kind {
	return DefaultRules().Classify(abbr, meaning, isLanguageList)
}
