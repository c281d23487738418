package gcerrors

import (
	"strings"
	"testing"
)

func TestErrorFormatting(t *testing.T) {
	cases := []struct {
		name string
		err  *Error
		want Category
	}{
		{"InvalidType", InvalidType(42), CategoryContract},
		{"OffsetOutOfRange", OffsetOutOfRange(12, 16), CategoryContract},
		{"Reentrant", Reentrant("Alloc"), CategoryContract},
		{"Exhausted", Exhausted(4096), CategoryExhaustion},
		{"CorruptHeader", CorruptHeader(0x1000, 0xDEAD, 0xC0DE), CategoryInvariant},
		{"MarkCursorOutOfRange", MarkCursorOutOfRange(17, 16), CategoryInvariant},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if c.err.Category != c.want {
				t.Fatalf("category = %s, want %s", c.err.Category, c.want)
			}

			msg := c.err.Error()
			if !strings.Contains(msg, string(c.want)) {
				t.Fatalf("formatted error %q missing category %s", msg, c.want)
			}

			if c.err.Caller == "unknown" || c.err.Caller == "" {
				t.Fatalf("expected a resolved caller, got %q", c.err.Caller)
			}
		})
	}
}
