package dtos

import "github.com/goccy/go-json"

// MaxStringLength is the hard cap applied to every user-supplied string field
// before it is stored or transmitted.
const MaxStringLength = 64

// MaxStructuredSize is the serialized-size ceiling (in bytes) for structured
// mappings: user custom/private attributes and event metadata.
const MaxStructuredSize = 2048

// OversizeMetadataSentinel replaces event metadata that exceeds
// MaxStructuredSize. Oversized structured data is dropped wholesale rather
// than truncated so that no corrupted JSON fragment is ever logged.
var OversizeMetadataSentinel = map[string]string{"error": "not logged due to size too large"}

// TrimString caps s at MaxStringLength characters.
func TrimString(s string) string {
	if len(s) > MaxStringLength {
		return s[:MaxStringLength]
	}
	return s
}

// WithinSizeLimit reports whether v serializes to at most MaxStructuredSize
// bytes. Values that fail to serialize are treated as oversized.
func WithinSizeLimit(v interface{}) bool {
	if v == nil {
		return true
	}
	raw, err := json.Marshal(v)
	if err != nil {
		return false
	}
	return len(raw) <= MaxStructuredSize
}
