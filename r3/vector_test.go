package r3

import (
	"math"
	"testing"
)

func float64Eq(x, y float64) bool { return math.Abs(x-y) < 1e-14 }

func TestVectorCrossOrthogonal(t *testing.T) {
	tests := []Vector{
		{1, 0, 0},
		{0, 1, 0},
		{1, 2, 3},
		{-4, 5, -6},
	}
	a := Vector{1, 2, 3}
	for _, b := range tests {
		x := a.Cross(b)
		if d := x.Dot(a); !float64Eq(d, 0) {
			t.Errorf("a.Cross(%v).Dot(a) = %v, want 0", b, d)
		}
		if d := x.Dot(b); !float64Eq(d, 0) {
			t.Errorf("a.Cross(%v).Dot(b) = %v, want 0", b, d)
		}
	}
}

func TestVectorNormalize(t *testing.T) {
	v := Vector{3, 4, 0}.Normalize()
	if !float64Eq(v.Norm(), 1) {
		t.Errorf("Norm() = %v, want 1", v.Norm())
	}
}

func TestVectorAngle(t *testing.T) {
	a := Vector{1, 0, 0}
	b := Vector{0, 1, 0}
	if got := a.Angle(b); !float64Eq(got, math.Pi/2) {
		t.Errorf("Angle = %v, want pi/2", got)
	}
	if got := a.Angle(a); !float64Eq(got, 0) {
		t.Errorf("Angle(self) = %v, want 0", got)
	}
}

func TestVectorOrtho(t *testing.T) {
	for _, v := range []Vector{{1, 0, 0}, {0, 1, 0}, {0, 0, 1}, {1, 1, 1}, {-2, 3, -5}} {
		o := v.Ortho()
		if d := v.Dot(o); !float64Eq(d, 0) {
			t.Errorf("%v.Ortho() = %v, not orthogonal (dot=%v)", v, o, d)
		}
		if !float64Eq(o.Norm(), 1) {
			t.Errorf("%v.Ortho() has norm %v, want 1", v, o.Norm())
		}
	}
}

func TestVectorLessThanTotalOrder(t *testing.T) {
	a := Vector{1, 2, 3}
	b := Vector{1, 2, 4}
	if !a.LessThan(b) {
		t.Errorf("%v should be less than %v", a, b)
	}
	if a.GTE(b) {
		t.Errorf("%v.GTE(%v) = true, want false", a, b)
	}
	if !b.GTE(a) {
		t.Errorf("%v.GTE(%v) = false, want true", b, a)
	}
}

func TestVectorApproxEqual(t *testing.T) {
	a := Vector{1, 0, 0}
	b := Vector{1 + 1e-16, 0, 0}
	if !a.ApproxEqual(b) {
		t.Errorf("%v should approx-equal %v", a, b)
	}
	c := Vector{1, 0.01, 0}
	if a.ApproxEqual(c) {
		t.Errorf("%v should not approx-equal %v", a, c)
	}
}
