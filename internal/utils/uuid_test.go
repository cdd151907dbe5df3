package utils

import (
	"strings"
	"testing"

	"github.com/google/uuid"
)

func TestUUIDGenerator_Generate(t *testing.T) {
	g := NewUUIDGenerator()

	a, b := g.Generate(), g.Generate()
	if a == b {
		t.Fatal("expected distinct identifiers")
	}

	parsed, err := uuid.Parse(a)
	if err != nil {
		t.Fatalf("expected valid UUID, got %v", err)
	}
	if parsed.Version() != 7 {
		t.Errorf("expected version 7, got %d", parsed.Version())
	}
}

func TestTraceID(t *testing.T) {
	tests := []struct {
		name     string
		incoming string
		keep     bool
	}{
		{name: "absent", incoming: ""},
		{name: "kept", incoming: "req-42", keep: true},
		{name: "uuid kept", incoming: "0190d3a4-5b6c-7d8e-9f00-112233445566", keep: true},
		{name: "too long", incoming: strings.Repeat("a", 65)},
		{name: "control characters", incoming: "req\n42"},
		{name: "spaces", incoming: "req 42"},
		{name: "non ascii", incoming: "հարցում"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := TraceID(tt.incoming)
			if tt.keep {
				if got != tt.incoming {
					t.Errorf("expected %q to be kept, got %q", tt.incoming, got)
				}
				return
			}
			if _, err := uuid.Parse(got); err != nil {
				t.Errorf("expected a generated UUID, got %q", got)
			}
		})
	}
}
