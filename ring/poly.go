package ring

// Poly is the structure that contains the coefficients of a polynomial.
// Coefficients are always kept in the canonical range [0, Modulus) across
// the package's API boundaries.
type Poly struct {
	Coeffs []uint64
}

// NewPoly creates a new polynomial with n coefficients set to zero.
func NewPoly(n int) Poly {
	return Poly{Coeffs: make([]uint64, n)}
}

// N returns the number of coefficients of the polynomial.
func (pol Poly) N() int {
	return len(pol.Coeffs)
}

// Zero sets all coefficients of the target polynomial to 0.
func (pol Poly) Zero() {
	for i := range pol.Coeffs {
		pol.Coeffs[i] = 0
	}
}

// CopyNew creates an exact copy of the target polynomial.
func (pol Poly) CopyNew() *Poly {
	cpy := NewPoly(pol.N())
	copy(cpy.Coeffs, pol.Coeffs)
	return &cpy
}

// Copy copies the coefficients of p1 on the target polynomial.
// The two polynomials must have the same degree.
func (pol Poly) Copy(p1 Poly) {
	copy(pol.Coeffs, p1.Coeffs)
}

// Equal returns true if the receiver Poly is equal to the provided other
// Poly, checking for strict equality of the coefficients.
func (pol Poly) Equal(other *Poly) bool {
	if len(pol.Coeffs) != len(other.Coeffs) {
		return false
	}
	for i := range pol.Coeffs {
		if pol.Coeffs[i] != other.Coeffs[i] {
			return false
		}
	}
	return true
}
