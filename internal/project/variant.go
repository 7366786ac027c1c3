package project

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Variant is the tagged union behind a derived-media bucket: either a single
// path string or an ordered format→path map. JSON declaration order of the
// formats is preserved because "first declared format wins" is part of the
// resolution contract.
type Variant struct {
	single  string
	formats []FormatEntry
}

// FormatEntry is one format→path pair of a ByFormat variant.
type FormatEntry struct {
	Format string
	Path   string
}

// SingleVariant builds a Variant holding one bare path.
func SingleVariant(path string) Variant {
	return Variant{single: path}
}

// FormatVariant builds a Variant from ordered format entries.
func FormatVariant(entries ...FormatEntry) Variant {
	return Variant{formats: entries}
}

// IsZero reports whether the variant holds neither a path nor any formats.
func (v Variant) IsZero() bool {
	return v.single == "" && len(v.formats) == 0
}

// IsSingle reports whether the variant is a bare path.
func (v Variant) IsSingle() bool {
	return len(v.formats) == 0
}

// Single returns the bare path, empty for ByFormat variants.
func (v Variant) Single() string {
	return v.single
}

// Formats returns the ordered format entries, nil for Single variants.
func (v Variant) Formats() []FormatEntry {
	return v.formats
}

// Lookup returns the path declared for a format.
func (v Variant) Lookup(format string) (string, bool) {
	for _, e := range v.formats {
		if e.Format == format {
			return e.Path, true
		}
	}
	return "", false
}

// First returns the first declared format entry.
func (v Variant) First() (FormatEntry, bool) {
	if len(v.formats) == 0 {
		return FormatEntry{}, false
	}
	return v.formats[0], true
}

// MarshalJSON encodes a Single variant as a string and a ByFormat variant as
// an object in declaration order.
func (v Variant) MarshalJSON() ([]byte, error) {
	if v.IsSingle() {
		return json.Marshal(v.single)
	}
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, e := range v.formats {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(e.Format)
		if err != nil {
			return nil, err
		}
		val, err := json.Marshal(e.Path)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON accepts either a JSON string or a JSON object of
// format→path, keeping object key order.
func (v *Variant) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return fmt.Errorf("variant: empty JSON value")
	}
	if trimmed[0] == '"' {
		var s string
		if err := json.Unmarshal(trimmed, &s); err != nil {
			return fmt.Errorf("variant: %w", err)
		}
		*v = Variant{single: s}
		return nil
	}
	if trimmed[0] != '{' {
		return fmt.Errorf("variant: expected string or object, got %q", trimmed[0])
	}

	dec := json.NewDecoder(bytes.NewReader(trimmed))
	tok, err := dec.Token()
	if err != nil {
		return fmt.Errorf("variant: %w", err)
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return fmt.Errorf("variant: expected object")
	}

	var entries []FormatEntry
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return fmt.Errorf("variant: %w", err)
		}
		key, ok := keyTok.(string)
		if !ok {
			return fmt.Errorf("variant: non-string key")
		}
		var path string
		if err := dec.Decode(&path); err != nil {
			return fmt.Errorf("variant: format %q: %w", key, err)
		}
		entries = append(entries, FormatEntry{Format: key, Path: path})
	}
	*v = Variant{formats: entries}
	return nil
}
