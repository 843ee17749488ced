package geometry

import (
	"math"
	"testing"
)

func TestVector2Arithmetic(t *testing.T) {
	a := NewVector2(3, 4)
	b := NewVector2(-1, 2)

	sum := a.Add(b)
	if sum != NewVector2(2, 6) {
		t.Errorf("Add failed: expected (2, 6), got %v", sum)
	}

	diff := a.Sub(b)
	if diff != NewVector2(4, 2) {
		t.Errorf("Sub failed: expected (4, 2), got %v", diff)
	}

	scaled := a.Mul(2)
	if scaled != NewVector2(6, 8) {
		t.Errorf("Mul failed: expected (6, 8), got %v", scaled)
	}
}

func TestVector2Length(t *testing.T) {
	v := NewVector2(3, 4)
	if math.Abs(v.Length()-5.0) > 1e-10 {
		t.Errorf("Length failed: expected 5.0, got %v", v.Length())
	}
}

func TestVector2Distance(t *testing.T) {
	a := NewVector2(1, 1)
	b := NewVector2(4, 5)
	if math.Abs(a.Distance(b)-5.0) > 1e-10 {
		t.Errorf("Distance failed: expected 5.0, got %v", a.Distance(b))
	}
}

func TestVector2IsFinite(t *testing.T) {
	if !NewVector2(1, 2).IsFinite() {
		t.Error("finite vector reported as non-finite")
	}
	if NewVector2(math.NaN(), 0).IsFinite() {
		t.Error("NaN vector reported as finite")
	}
	if NewVector2(0, math.Inf(1)).IsFinite() {
		t.Error("Inf vector reported as finite")
	}
}
