package models

import "testing"

func TestClassifyStatusBoundaries(t *testing.T) {
	cases := []struct {
		remaining int
		want      StockStatus
	}{
		{0, StatusOutOfStock},
		{1, StatusLowStock},
		{4, StatusLowStock},
		{5, StatusInStock},
		{100, StatusInStock},
	}

	for _, tc := range cases {
		got := ClassifyStatus(tc.remaining, DefaultLowStockThreshold)
		if got != tc.want {
			t.Errorf("ClassifyStatus(%d) = %s, want %s", tc.remaining, got, tc.want)
		}
	}
}

func TestClassifyStatusCustomThreshold(t *testing.T) {
	if got := ClassifyStatus(9, 10); got != StatusLowStock {
		t.Errorf("ClassifyStatus(9, 10) = %s, want %s", got, StatusLowStock)
	}
	if got := ClassifyStatus(10, 10); got != StatusInStock {
		t.Errorf("ClassifyStatus(10, 10) = %s, want %s", got, StatusInStock)
	}
}

func TestClassifyStatusFallbackThreshold(t *testing.T) {
	if got := ClassifyStatus(4, 0); got != StatusLowStock {
		t.Errorf("ClassifyStatus(4, 0) = %s, want %s", got, StatusLowStock)
	}
}
