package dtos

import (
	"strings"
	"testing"
)

func TestTrimString(t *testing.T) {
	long := strings.Repeat("x", 200)
	trimmed := TrimString(long)
	if len(trimmed) != MaxStringLength {
		t.Error("Trimmed string should have exactly the max length")
	}
	if trimmed != long[0:MaxStringLength] {
		t.Error("Trimmed string should be a prefix of the original")
	}

	short := "short"
	if TrimString(short) != short {
		t.Error("Strings within the limit should be untouched")
	}
	exact := strings.Repeat("y", MaxStringLength)
	if TrimString(exact) != exact {
		t.Error("Strings at the limit should be untouched")
	}
}

func TestWithinSizeLimit(t *testing.T) {
	if !WithinSizeLimit(nil) {
		t.Error("nil should be within the limit")
	}
	if !WithinSizeLimit(map[string]string{"a": "b"}) {
		t.Error("Small maps should be within the limit")
	}

	oversized := map[string]string{"blob": strings.Repeat("z", MaxStructuredSize+1)}
	if WithinSizeLimit(oversized) {
		t.Error("Oversized maps should be rejected")
	}
}
