package r3

import (
	"github.com/rajeeja/tempestremap/exactfloat"
)

// VectorXF is the exact-arithmetic counterpart to Vector, used by the
// exact Geometry Kernel variant when a floating-point determinant is too
// close to zero to trust.
type VectorXF struct {
	X, Y, Z exactfloat.ExactFloat
}

func VectorXFFromVector(v Vector) VectorXF {
	return VectorXF{
		X: exactfloat.NewExactFloat(v.X),
		Y: exactfloat.NewExactFloat(v.Y),
		Z: exactfloat.NewExactFloat(v.Z),
	}
}

func (a VectorXF) CrossProd(b VectorXF) VectorXF {
	return VectorXF{
		a.Y.Mul(b.Z).Sub(a.Z.Mul(b.Y)),
		a.Z.Mul(b.X).Sub(a.X.Mul(b.Z)),
		a.X.Mul(b.Y).Sub(a.Y.Mul(b.X)),
	}
}

func (a VectorXF) DotProd(b VectorXF) exactfloat.ExactFloat {
	x := a.X.Mul(b.X)
	y := a.Y.Mul(b.Y)
	z := a.Z.Mul(b.Z)
	return x.Add(y).Add(z)
}

func (a VectorXF) Mul(m exactfloat.ExactFloat) VectorXF {
	return VectorXF{a.X.Mul(m), a.Y.Mul(m), a.Z.Mul(m)}
}

func (a VectorXF) ApproxEqual(b VectorXF) bool {
	epsilon := exactfloat.NewExactFloat(1e-14)
	return exactfloat.Abs(a.X.Sub(b.X)).LessThan(epsilon) &&
		exactfloat.Abs(a.Y.Sub(b.Y)).LessThan(epsilon) &&
		exactfloat.Abs(a.Z.Sub(b.Z)).LessThan(epsilon)
}
