package ring

// Add evaluates p3 = p1 + p2 coefficient-wise in the ring.
func (r *Ring) Add(p1, p2, p3 Poly) {
	addVec(p1.Coeffs, p2.Coeffs, p3.Coeffs, r.Modulus)
}

// Sub evaluates p3 = p1 - p2 coefficient-wise in the ring.
func (r *Ring) Sub(p1, p2, p3 Poly) {
	subVec(p1.Coeffs, p2.Coeffs, p3.Coeffs, r.Modulus)
}

// Neg evaluates p2 = -p1 coefficient-wise in the ring.
func (r *Ring) Neg(p1, p2 Poly) {
	negVec(p1.Coeffs, p2.Coeffs, r.Modulus)
}

// MulCoeffs evaluates p3 = p1 * p2 coefficient-wise in the ring.
// Operands in the NTT domain yield the negacyclic product of the
// underlying polynomials.
func (r *Ring) MulCoeffs(p1, p2, p3 Poly) {
	mulCoeffsBarrettVec(p1.Coeffs, p2.Coeffs, p3.Coeffs, r.Modulus, r.BRedConstant)
}

// MulCoeffsThenAdd evaluates p3 = p3 + p1 * p2 coefficient-wise in the ring.
func (r *Ring) MulCoeffsThenAdd(p1, p2, p3 Poly) {
	mulCoeffsBarrettThenAddVec(p1.Coeffs, p2.Coeffs, p3.Coeffs, r.Modulus, r.BRedConstant)
}

// MulScalar evaluates p2 = p1 * scalar coefficient-wise in the ring.
func (r *Ring) MulScalar(p1 Poly, scalar uint64, p2 Poly) {
	scalarMont := MForm(BRedAdd(scalar, r.Modulus, r.BRedConstant), r.Modulus, r.BRedConstant)
	mulScalarMontgomeryVec(p1.Coeffs, p2.Coeffs, scalarMont, r.Modulus, r.MRedConstant)
}

// Reduce evaluates p2 = p1 mod q coefficient-wise, mapping arbitrary
// uint64 coefficients to their canonical representatives.
func (r *Ring) Reduce(p1, p2 Poly) {
	reduceVec(p1.Coeffs, p2.Coeffs, r.Modulus, r.BRedConstant)
}
