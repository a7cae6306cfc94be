package domain

import "fmt"

// Kind classifies an abbreviation entry.
type Kind string

const (
	KindRelation Kind = "relation"
	KindLanguage Kind = "language"
	KindLabel    Kind = "label"
)

func (k Kind) String() string { return string(k) }

func (k Kind) IsValid() bool {
	switch k {
	case KindRelation, KindLanguage, KindLabel:
		return true
	}
	return false
}

// Priority ranks kinds for merging: relation (3) > language (2) > label (1).
// Invalid kinds rank 0.
func (k Kind) Priority() int {
	switch k {
	case KindRelation:
		return 3
	case KindLanguage:
		return 2
	case KindLabel:
		return 1
	}
	return 0
}

// Outranks reports whether k has strictly higher priority than other.
func (k Kind) Outranks(other Kind) bool {
	return k.Priority() > other.Priority()
}

// ParseKind converts a serialized kind back into a Kind.
func ParseKind(s string) (Kind, error) {
	k := Kind(s)
	if !k.IsValid() {
		return "", fmt.Errorf("unknown kind %q", s)
	}
	return k, nil
}
