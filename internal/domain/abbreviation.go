package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
	"iter"
	"slices"
)

// Meaning is either a single string or an ordered list of distinct strings.
// The zero value holds no meaning at all.
//
// A Meaning only becomes multiple when a second, different value is added,
// so a one-element list is never produced.
type Meaning struct {
	values []string
}

// SingleMeaning returns a Meaning holding exactly s.
func SingleMeaning(s string) Meaning {
	return Meaning{values: []string{s}}
}

// IsMultiple reports whether more than one distinct meaning is stored.
func (m Meaning) IsMultiple() bool { return len(m.values) > 1 }

// IsZero reports whether no meaning is stored.
func (m Meaning) IsZero() bool { return len(m.values) == 0 }

// Single returns the meaning when exactly one is stored.
func (m Meaning) Single() (string, bool) {
	if len(m.values) != 1 {
		return "", false
	}
	return m.values[0], true
}

// Values returns all stored meanings in first-seen order.
func (m Meaning) Values() []string {
	return slices.Clone(m.values)
}

// Contains reports whether s is one of the stored meanings.
func (m Meaning) Contains(s string) bool {
	return slices.Contains(m.values, s)
}

// With returns m extended by s, or m unchanged when s is already present.
func (m Meaning) With(s string) Meaning {
	if m.Contains(s) {
		return m
	}
	values := make([]string, 0, len(m.values)+1)
	values = append(values, m.values...)
	return Meaning{values: append(values, s)}
}

// MarshalJSON encodes a single meaning as a string and several as an array.
func (m Meaning) MarshalJSON() ([]byte, error) {
	if s, ok := m.Single(); ok {
		return MarshalUnescaped(s)
	}
	if m.values == nil {
		return []byte("[]"), nil
	}
	return MarshalUnescaped(m.values)
}

// MarshalUnescaped is json.Marshal without HTML escaping of <, > and &.
// Glossary text is written as is.
func MarshalUnescaped(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}

// UnmarshalJSON accepts a string or a list of strings. Duplicates in a list
// are dropped.
func (m *Meaning) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*m = SingleMeaning(s)
		return nil
	}

	var list []string
	if err := json.Unmarshal(data, &list); err != nil {
		return fmt.Errorf("meaning must be a string or a list of strings: %w", err)
	}

	var out Meaning
	for _, v := range list {
		out = out.With(v)
	}
	*m = out
	return nil
}

// Entry is one (abbreviation, meaning) pair read from a glossary line.
type Entry struct {
	Abbreviation string
	Meaning      string
}

// Record is the merged state of one abbreviation.
type Record struct {
	Kind    Kind    `json:"kind"`
	Meaning Meaning `json:"meaning"`
}

// Table maps abbreviations to their merged records, remembering the order
// in which abbreviations were first seen. Keys are exact and case-sensitive.
type Table struct {
	order   []string
	records map[string]Record
}

// NewTable returns an empty Table.
func NewTable() *Table {
	return &Table{records: make(map[string]Record)}
}

// Len returns the number of distinct abbreviations.
func (t *Table) Len() int { return len(t.order) }

// Get returns the record stored for abbr.
func (t *Table) Get(abbr string) (Record, bool) {
	r, ok := t.records[abbr]
	return r, ok
}

// Keys returns the abbreviations in first-seen order.
func (t *Table) Keys() []string {
	return slices.Clone(t.order)
}

// All iterates over the table in first-seen order.
func (t *Table) All() iter.Seq2[string, Record] {
	return func(yield func(string, Record) bool) {
		for _, abbr := range t.order {
			if !yield(abbr, t.records[abbr]) {
				return
			}
		}
	}
}

// Merge folds one classified entry into the table.
//
// A new abbreviation is stored as is. For a known abbreviation the kind is
// replaced only by a strictly higher-priority kind, and a meaning not seen
// before is appended after the existing ones.
func (t *Table) Merge(abbr string, kind Kind, meaning string) {
	prev, ok := t.records[abbr]
	if !ok {
		t.order = append(t.order, abbr)
		t.records[abbr] = Record{Kind: kind, Meaning: SingleMeaning(meaning)}
		return
	}

	if kind.Outranks(prev.Kind) {
		prev.Kind = kind
	}
	prev.Meaning = prev.Meaning.With(meaning)
	t.records[abbr] = prev
}
