package config

import (
	"fmt"
	"strings"
)

const maxIndent = 8

// Validate performs business-rule validation on the loaded configuration.
// It must be called after loading; Load calls it automatically.
func (c *Config) Validate() error {
	if err := c.Glossary.validate(); err != nil {
		return fmt.Errorf("glossary: %w", err)
	}
	return nil
}

func (g *GlossaryConfig) validate() error {
	switch strings.ToLower(strings.TrimSpace(g.Format)) {
	case "json", "yaml":
	default:
		return fmt.Errorf("format must be json or yaml (got %q)", g.Format)
	}
	if g.Indent < 0 || g.Indent > maxIndent {
		return fmt.Errorf("indent must be between 0 and %d (got %d)", maxIndent, g.Indent)
	}

	g.LanguageHints = cleanList(g.LanguageHints)
	g.SkipPrefixes = cleanList(g.SkipPrefixes)

	if len(g.LanguageHints) == 0 {
		return fmt.Errorf("language_hints must not be empty")
	}
	return nil
}

// cleanList trims every item and drops empty ones.
func cleanList(items []string) []string {
	out := make([]string, 0, len(items))
	for _, it := range items {
		if it = strings.TrimSpace(it); it != "" {
			out = append(out, it)
		}
	}
	return out
}
