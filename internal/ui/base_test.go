package ui

import "testing"

func TestBase_Inner(t *testing.T) {
	tests := []struct {
		w, h         int
		wantW, wantH int
		wantOK       bool
	}{
		{40, 10, 38, 8, true},
		{4, 3, 2, 1, true},
		{3, 3, 1, 1, false},
		{10, 2, 8, 0, false},
		{-5, -1, -2, -2, false},
	}
	for _, tt := range tests {
		var b Base
		b.SetSize(tt.w, tt.h)
		w, h, ok := b.Inner()
		if w != tt.wantW || h != tt.wantH || ok != tt.wantOK {
			t.Errorf("Inner() after SetSize(%d, %d) = (%d, %d, %v), want (%d, %d, %v)",
				tt.w, tt.h, w, h, ok, tt.wantW, tt.wantH, tt.wantOK)
		}
	}
}
