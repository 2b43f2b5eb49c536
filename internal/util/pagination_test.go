package util

import "testing"

func TestCalculateTotalPage(t *testing.T) {
	if got := CalculateTotalPage(0, 10); got != 1 {
		t.Errorf("Expected 1 page for no items, got %d", got)
	}

	if got := CalculateTotalPage(10, 10); got != 1 {
		t.Errorf("Expected 1 page for exact fit, got %d", got)
	}

	if got := CalculateTotalPage(11, 10); got != 2 {
		t.Errorf("Expected 2 pages for 11 items of size 10, got %d", got)
	}
}
