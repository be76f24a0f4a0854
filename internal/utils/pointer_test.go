package utils

import "testing"

func TestPtr_CopiesValue(t *testing.T) {
	v := 12.5
	p := Ptr(v)
	v = 0
	if p == nil || *p != 12.5 {
		t.Errorf("Ptr() = %v, want pointer to 12.5", p)
	}
}

func TestDeref(t *testing.T) {
	if got := Deref(Ptr("Peru"), "none"); got != "Peru" {
		t.Errorf("Deref(non-nil) = %q", got)
	}
	if got := Deref[float64](nil, -1); got != -1 {
		t.Errorf("Deref(nil) = %v, want -1", got)
	}
}
