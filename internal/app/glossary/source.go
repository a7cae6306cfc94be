package glossary

import (
	"fmt"
	"os"
	"unicode/utf8"

	"golang.org/x/text/encoding/unicode"

	"github.com/gorsicleo/hjp-tools/internal/domain"
)

// ReadSource reads a whole glossary file as UTF-8 text.
// A leading byte order mark is dropped; any other invalid UTF-8 is rejected.
func ReadSource(path string) (string, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("%w: %w", domain.ErrInputRead, err)
	}

	if !utf8.Valid(raw) {
		return "", fmt.Errorf("%w: %s: not valid UTF-8", domain.ErrInputRead, path)
	}

	text, err := unicode.UTF8BOM.NewDecoder().Bytes(raw)
	if err != nil {
		return "", fmt.Errorf("%w: %s: decode: %w", domain.ErrInputRead, path, err)
	}
	return string(text), nil
}
