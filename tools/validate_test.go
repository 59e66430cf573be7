package tools

import (
	"strings"
	"testing"
)

func TestValidAddress(t *testing.T) {
	tests := []struct {
		name  string
		input any
		want  bool
	}{
		{name: "min length", input: strings.Repeat("a", 32), want: true},
		{name: "max length", input: strings.Repeat("a", 44), want: true},
		{name: "typical length", input: strings.Repeat("a", 40), want: true},
		{name: "one short", input: strings.Repeat("a", 31), want: false},
		{name: "one long", input: strings.Repeat("a", 45), want: false},
		{name: "empty", input: "", want: false},
		{name: "non-string", input: 42, want: false},
		{name: "nil", input: nil, want: false},
		{name: "array", input: []any{"a"}, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ValidAddress(tt.input); got != tt.want {
				t.Fatalf("ValidAddress(%v) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestValidSignature(t *testing.T) {
	tests := []struct {
		name  string
		input any
		want  bool
	}{
		{name: "min length", input: strings.Repeat("s", 87), want: true},
		{name: "max length", input: strings.Repeat("s", 88), want: true},
		{name: "one short", input: strings.Repeat("s", 86), want: false},
		{name: "one long", input: strings.Repeat("s", 89), want: false},
		{name: "empty", input: "", want: false},
		{name: "non-string", input: 88.0, want: false},
		{name: "nil", input: nil, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ValidSignature(tt.input); got != tt.want {
				t.Fatalf("ValidSignature(%v) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestValidArrayBounds(t *testing.T) {
	tests := []struct {
		name     string
		input    any
		maxItems int
		want     bool
	}{
		{name: "single item", input: []any{"a"}, maxItems: 20, want: true},
		{name: "at max", input: make([]any, 20), maxItems: 20, want: true},
		{name: "over max", input: make([]any, 21), maxItems: 20, want: false},
		{name: "empty", input: []any{}, maxItems: 20, want: false},
		{name: "non-array", input: "a", maxItems: 20, want: false},
		{name: "nil", input: nil, maxItems: 20, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ValidArrayBounds(tt.input, tt.maxItems); got != tt.want {
				t.Fatalf("ValidArrayBounds(%v, %d) = %v, want %v", tt.input, tt.maxItems, got, tt.want)
			}
		})
	}
}

func TestValidIntRange(t *testing.T) {
	tests := []struct {
		name  string
		input any
		want  bool
	}{
		{name: "in range", input: float64(50), want: true},
		{name: "at min", input: float64(1), want: true},
		{name: "at max", input: float64(100), want: true},
		{name: "below", input: float64(0), want: false},
		{name: "above", input: float64(101), want: false},
		{name: "fractional", input: 1.5, want: false},
		{name: "string", input: "10", want: false},
		{name: "plain int", input: 10, want: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ValidIntRange(tt.input, 1, 100); got != tt.want {
				t.Fatalf("ValidIntRange(%v, 1, 100) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}
