package source

import (
	"testing"
)

func TestSpanCover(t *testing.T) {
	tests := []struct {
		name     string
		span     Span
		other    Span
		expected Span
	}{
		{
			name:     "cover disjoint span to the right",
			span:     Span{File: 1, Start: 0, End: 5},
			other:    Span{File: 1, Start: 10, End: 20},
			expected: Span{File: 1, Start: 0, End: 20},
		},
		{
			name:     "cover contained span",
			span:     Span{File: 1, Start: 0, End: 20},
			other:    Span{File: 1, Start: 5, End: 10},
			expected: Span{File: 1, Start: 0, End: 20},
		},
		{
			name:     "cover span to the left",
			span:     Span{File: 1, Start: 10, End: 20},
			other:    Span{File: 1, Start: 2, End: 12},
			expected: Span{File: 1, Start: 2, End: 20},
		},
		{
			name:     "different file is ignored",
			span:     Span{File: 1, Start: 10, End: 20},
			other:    Span{File: 2, Start: 0, End: 100},
			expected: Span{File: 1, Start: 10, End: 20},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.span.Cover(tt.other); got != tt.expected {
				t.Errorf("Cover() = %v, expected %v", got, tt.expected)
			}
		})
	}
}

func TestSpanEmptyLen(t *testing.T) {
	s := Span{File: 0, Start: 4, End: 4}
	if !s.Empty() {
		t.Error("Expected empty span")
	}
	if s.Len() != 0 {
		t.Errorf("Expected len 0, got %d", s.Len())
	}

	s = Span{File: 0, Start: 4, End: 9}
	if s.Empty() {
		t.Error("Expected non-empty span")
	}
	if s.Len() != 5 {
		t.Errorf("Expected len 5, got %d", s.Len())
	}
}
