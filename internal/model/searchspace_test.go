package model

import "testing"

func TestSearchSpace_Contains(t *testing.T) {
	s := SearchSpace{StartPage: 2, StartOffset: 100, EndPage: 4, EndOffset: 50}

	tests := []struct {
		name   string
		page   int
		offset int
		want   bool
	}{
		{"before start page", 1, 500, false},
		{"start page before offset", 2, 99, false},
		{"start page at offset", 2, 100, true},
		{"interior page", 3, 0, true},
		{"end page before offset", 4, 49, true},
		{"end page at offset", 4, 50, false},
		{"after end page", 5, 0, false},
	}
	for _, tt := range tests {
		if got := s.Contains(tt.page, tt.offset); got != tt.want {
			t.Errorf("%s: Contains(%d, %d) = %v, want %v", tt.name, tt.page, tt.offset, got, tt.want)
		}
	}
}

func TestSearchSpace_Valid(t *testing.T) {
	tests := []struct {
		name  string
		space SearchSpace
		want  bool
	}{
		{"multi page", SearchSpace{StartPage: 2, EndPage: 4}, true},
		{"single page ordered", SearchSpace{StartPage: 2, StartOffset: 10, EndPage: 2, EndOffset: 90}, true},
		{"pages reversed", SearchSpace{StartPage: 4, EndPage: 2}, false},
		{"single page empty", SearchSpace{StartPage: 2, StartOffset: 50, EndPage: 2, EndOffset: 50}, false},
		{"single page reversed", SearchSpace{StartPage: 2, StartOffset: 90, EndPage: 2, EndOffset: 10}, false},
	}
	for _, tt := range tests {
		if got := tt.space.Valid(); got != tt.want {
			t.Errorf("%s: Valid() = %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestSearchSpace_String(t *testing.T) {
	s := SearchSpace{StartPage: 2, StartOffset: 100, EndPage: 4, EndOffset: 50}
	if got := s.String(); got != "pages 2:100 through 4:50" {
		t.Errorf("unexpected String %q", got)
	}
}
