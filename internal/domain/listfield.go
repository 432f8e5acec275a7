package domain

// ListField carries a list-valued column exactly as a store handed it over:
// either raw text (JSON-encoded or newline separated) or an already decoded
// sequence. It only exists between a store adapter and the normalizer.
type ListField struct {
	raw    string
	items  []any
	parsed bool
}

// RawList wraps a text-encoded list value.
func RawList(text string) ListField {
	return ListField{raw: text}
}

// ParsedList wraps a decoded sequence. Elements are strings, map[string]any
// records, or scalars.
func ParsedList(items []any) ListField {
	return ListField{items: items, parsed: true}
}

// Parsed reports whether the value arrived as a decoded sequence.
func (f ListField) Parsed() bool { return f.parsed }

// Raw returns the text form; empty for parsed values.
func (f ListField) Raw() string { return f.raw }

// Items returns the decoded sequence; nil for raw values.
func (f ListField) Items() []any { return f.items }
