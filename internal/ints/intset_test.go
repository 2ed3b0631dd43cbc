package ints

import (
	"testing"
)

func sameItems(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	for i, v := range a {
		if v != b[i] {
			return false
		}
	}
	return true
}

func TestAddContains(t *testing.T) {
	s := NewSet(2, 1, 70)
	for _, item := range []int{1, 2, 70} {
		if !s.Contains(item) {
			t.Fatalf("expecting %d in set", item)
		}
	}
	for _, item := range []int{0, 3, 64, 1000} {
		if s.Contains(item) {
			t.Fatalf("unexpected %d in set", item)
		}
	}
	if s.Len() != 3 {
		t.Fatalf("expecting 3 items, got %d", s.Len())
	}
	if !sameItems([]int{1, 2, 70}, s.ToSlice()) {
		t.Fatalf("unexpected items %v", s.ToSlice())
	}
}

func TestEmpty(t *testing.T) {
	s := NewSet()
	if s.Len() != 0 || len(s.ToSlice()) != 0 || s.Contains(0) {
		t.Fatalf("expecting empty set, got %v", s.ToSlice())
	}
}

func TestGrow(t *testing.T) {
	s := NewSet(100)
	s.Add(3).Add(300, 2)
	if !sameItems([]int{2, 3, 100, 300}, s.ToSlice()) {
		t.Fatalf("unexpected items %v", s.ToSlice())
	}
	s.Add(3)
	if s.Len() != 4 {
		t.Fatalf("expecting 4 items, got %d", s.Len())
	}
}
