package glossary

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/gorsicleo/hjp-tools/internal/domain"
)

// rootKey is the single top-level key of every output document.
const rootKey = "abbr"

// Format selects the output document encoding.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

func (f Format) String() string { return string(f) }

// ParseFormat validates a format name (case-insensitive).
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case FormatJSON, FormatYAML:
		return f, nil
	}
	return "", fmt.Errorf("%w: %q", domain.ErrInvalidFormat, s)
}

// Write serializes t to path, replacing any existing file.
func Write(path string, t *domain.Table, format Format, indent int) error {
	var buf bytes.Buffer
	if err := Encode(&buf, t, format, indent); err != nil {
		return err
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("%w: %w", domain.ErrOutputWrite, err)
	}
	return nil
}

// Encode writes the document {"abbr": {...}} for t in first-seen key order.
// Non-ASCII text is written as is. An indent of 0 gives compact JSON.
func Encode(w io.Writer, t *domain.Table, format Format, indent int) error {
	var (
		out []byte
		err error
	)
	switch format {
	case FormatJSON:
		out, err = encodeJSON(t, indent)
	case FormatYAML:
		out, err = encodeYAML(t, indent)
	default:
		return fmt.Errorf("%w: %q", domain.ErrInvalidFormat, format)
	}
	if err != nil {
		return fmt.Errorf("encode %s: %w", format, err)
	}

	if _, err := w.Write(out); err != nil {
		return fmt.Errorf("%w: %w", domain.ErrOutputWrite, err)
	}
	return nil
}

func encodeJSON(t *domain.Table, indent int) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteString(`{"` + rootKey + `":{`)
	first := true
	for abbr, rec := range t.All() {
		if !first {
			buf.WriteByte(',')
		}
		first = false

		key, err := domain.MarshalUnescaped(abbr)
		if err != nil {
			return nil, err
		}
		val, err := domain.MarshalUnescaped(rec)
		if err != nil {
			return nil, fmt.Errorf("record %q: %w", abbr, err)
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(val)
	}
	buf.WriteString("}}")

	if indent == 0 {
		buf.WriteByte('\n')
		return buf.Bytes(), nil
	}

	var out bytes.Buffer
	if err := json.Indent(&out, buf.Bytes(), "", strings.Repeat(" ", indent)); err != nil {
		return nil, err
	}
	out.WriteByte('\n')
	return out.Bytes(), nil
}

func encodeYAML(t *domain.Table, indent int) ([]byte, error) {
	entries := &yaml.Node{Kind: yaml.MappingNode}
	for abbr, rec := range t.All() {
		var meaning *yaml.Node
		if s, ok := rec.Meaning.Single(); ok {
			meaning = strNode(s)
		} else {
			meaning = &yaml.Node{Kind: yaml.SequenceNode}
			for _, v := range rec.Meaning.Values() {
				meaning.Content = append(meaning.Content, strNode(v))
			}
		}

		record := &yaml.Node{Kind: yaml.MappingNode, Content: []*yaml.Node{
			strNode("kind"), strNode(rec.Kind.String()),
			strNode("meaning"), meaning,
		}}
		entries.Content = append(entries.Content, strNode(abbr), record)
	}

	doc := &yaml.Node{Kind: yaml.DocumentNode, Content: []*yaml.Node{{
		Kind:    yaml.MappingNode,
		Content: []*yaml.Node{strNode(rootKey), entries},
	}}}

	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	if indent > 0 {
		enc.SetIndent(indent)
	}
	if err := enc.Encode(doc); err != nil {
		return nil, err
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func strNode(s string) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: s}
}

// Decode reads a document produced by Encode back into a Table, keeping the
// document's key order.
func Decode(r io.Reader, format Format) (*domain.Table, error) {
	switch format {
	case FormatJSON:
		return decodeJSON(r)
	case FormatYAML:
		return decodeYAML(r)
	}
	return nil, fmt.Errorf("%w: %q", domain.ErrInvalidFormat, format)
}

func decodeJSON(r io.Reader) (*domain.Table, error) {
	var doc map[string]json.RawMessage
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("decode json: %w", err)
	}
	raw, ok := doc[rootKey]
	if !ok {
		return nil, fmt.Errorf("decode json: missing %q key", rootKey)
	}

	dec := json.NewDecoder(bytes.NewReader(raw))
	if tok, err := dec.Token(); err != nil || tok != json.Delim('{') {
		return nil, fmt.Errorf("decode json: %q must be an object", rootKey)
	}

	t := domain.NewTable()
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, fmt.Errorf("decode json: %w", err)
		}
		abbr, _ := tok.(string)

		var rec struct {
			Kind    string         `json:"kind"`
			Meaning domain.Meaning `json:"meaning"`
		}
		if err := dec.Decode(&rec); err != nil {
			return nil, fmt.Errorf("decode json: record %q: %w", abbr, err)
		}
		if err := mergeRecord(t, abbr, rec.Kind, rec.Meaning.Values()); err != nil {
			return nil, fmt.Errorf("decode json: %w", err)
		}
	}
	return t, nil
}

func decodeYAML(r io.Reader) (*domain.Table, error) {
	var doc yaml.Node
	if err := yaml.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("decode yaml: %w", err)
	}
	if len(doc.Content) == 0 || doc.Content[0].Kind != yaml.MappingNode {
		return nil, fmt.Errorf("decode yaml: document must be a mapping")
	}

	entries := mappingValue(doc.Content[0], rootKey)
	if entries == nil || entries.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("decode yaml: %q must be a mapping", rootKey)
	}

	t := domain.NewTable()
	for i := 0; i+1 < len(entries.Content); i += 2 {
		abbr := entries.Content[i].Value
		rec := entries.Content[i+1]

		kindNode := mappingValue(rec, "kind")
		meaningNode := mappingValue(rec, "meaning")
		if kindNode == nil || meaningNode == nil {
			return nil, fmt.Errorf("decode yaml: record %q: kind and meaning are required", abbr)
		}

		var meanings []string
		if err := meaningNode.Decode(&meanings); err != nil {
			var s string
			if err := meaningNode.Decode(&s); err != nil {
				return nil, fmt.Errorf("decode yaml: record %q: %w", abbr, err)
			}
			meanings = []string{s}
		}
		if err := mergeRecord(t, abbr, kindNode.Value, meanings); err != nil {
			return nil, fmt.Errorf("decode yaml: %w", err)
		}
	}
	return t, nil
}

func mappingValue(n *yaml.Node, key string) *yaml.Node {
	if n.Kind != yaml.MappingNode {
		return nil
	}
	for i := 0; i+1 < len(n.Content); i += 2 {
		if n.Content[i].Value == key {
			return n.Content[i+1]
		}
	}
	return nil
}

func mergeRecord(t *domain.Table, abbr, kind string, meanings []string) error {
	k, err := domain.ParseKind(kind)
	if err != nil {
		return fmt.Errorf("record %q: %w", abbr, err)
	}
	if len(meanings) == 0 {
		return fmt.Errorf("record %q: no meaning", abbr)
	}
	for _, m := range meanings {
		t.Merge(abbr, k, m)
	}
	return nil
}
