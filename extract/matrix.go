package extract

// matrix is a 2D affine transform in PDF's row-vector convention:
// [x' y' 1] = [x y 1] * M.
type matrix struct {
	a, b, c, d, e, f float64
}

func identityMatrix() matrix {
	return matrix{a: 1, d: 1}
}

// multiply returns the matrix that applies m first, then n — the
// concatenation order the `cm` operator needs (CTM' = m x CTM).
func (m matrix) multiply(n matrix) matrix {
	return matrix{
		a: m.a*n.a + m.b*n.c,
		b: m.a*n.b + m.b*n.d,
		c: m.c*n.a + m.d*n.c,
		d: m.c*n.b + m.d*n.d,
		e: m.e*n.a + m.f*n.c + n.e,
		f: m.e*n.b + m.f*n.d + n.f,
	}
}

func (m matrix) apply(x, y float64) (float64, float64) {
	return x*m.a + y*m.c + m.e, x*m.b + y*m.d + m.f
}

func translateMatrix(tx, ty float64) matrix {
	return matrix{a: 1, d: 1, e: tx, f: ty}
}

func scaleMatrix(sx, sy float64) matrix {
	return matrix{a: sx, d: sy}
}
