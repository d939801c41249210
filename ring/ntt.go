package ring

// NumberTheoreticTransformer is an interface to provide flexibility on what
// type of NTT is used by the struct Ring. Every implementation must produce
// bit-identical outputs for identical inputs; backends differ only in speed.
type NumberTheoreticTransformer interface {
	Forward(p1, p2 []uint64)
	Backward(p1, p2 []uint64)
}

type numberTheoreticTransformerBase struct {
	n                           int
	modulus                     uint64
	nInv, mredConstant          uint64
	rootsForward, rootsBackward []uint64
}

// NumberTheoreticTransformerStandard computes the negacyclic NTT in the ring
// Z_q[X]/(X^N+1) with a portable decimation-in-time butterfly network.
type NumberTheoreticTransformerStandard struct {
	numberTheoreticTransformerBase
}

// NewNumberTheoreticTransformerStandard instantiates a new portable
// transformer from the Ring's precomputed constants.
func NewNumberTheoreticTransformerStandard(r *Ring, n int) NumberTheoreticTransformer {
	return NumberTheoreticTransformerStandard{
		numberTheoreticTransformerBase: numberTheoreticTransformerBase{
			n:             n,
			modulus:       r.Modulus,
			nInv:          r.NInv,
			mredConstant:  r.MRedConstant,
			rootsForward:  r.RootsForward,
			rootsBackward: r.RootsBackward,
		},
	}
}

// Forward writes the forward NTT of p1 on p2.
func (rntt NumberTheoreticTransformerStandard) Forward(p1, p2 []uint64) {
	nttStandard(p1, p2, rntt.n, rntt.modulus, rntt.mredConstant, rntt.rootsForward)
}

// Backward writes the backward NTT of p1 on p2.
func (rntt NumberTheoreticTransformerStandard) Backward(p1, p2 []uint64) {
	inttStandard(p1, p2, rntt.n, rntt.modulus, rntt.nInv, rntt.mredConstant, rntt.rootsBackward)
}

// NTT evaluates p2 = NTT(p1).
func (r *Ring) NTT(p1, p2 Poly) {
	r.ntt.Forward(p1.Coeffs, p2.Coeffs)
}

// INTT evaluates p2 = INTT(p1).
func (r *Ring) INTT(p1, p2 Poly) {
	r.ntt.Backward(p1.Coeffs, p2.Coeffs)
}

// butterfly computes X, Y = U + V*Psi, U - V*Psi mod q.
func butterfly(u, v, psi, q, mredConstant uint64) (x, y uint64) {
	t := MRed(v, psi, q, mredConstant)
	return CRed(u+t, q), CRed(u+q-t, q)
}

// invbutterfly computes X, Y = U + V, (U - V) * Psi mod q.
func invbutterfly(u, v, psi, q, mredConstant uint64) (x, y uint64) {
	x = CRed(u+v, q)
	y = MRed(CRed(u+q-v, q), psi, q, mredConstant)
	return
}

// nttStandard computes the forward NTT on the input coefficients using the
// input parameters.
func nttStandard(p1, p2 []uint64, n int, q, mredConstant uint64, roots []uint64) {

	if &p1[0] != &p2[0] {
		copy(p2, p1)
	}

	k := 1
	for t := n >> 1; t >= 1; t >>= 1 {
		for j1 := 0; j1 < n; j1 += t << 1 {
			psi := roots[k]
			k++
			for jx, jy := j1, j1+t; jx < j1+t; jx, jy = jx+1, jy+1 {
				p2[jx], p2[jy] = butterfly(p2[jx], p2[jy], psi, q, mredConstant)
			}
		}
	}
}

// inttStandard computes the backward NTT on the input coefficients using the
// input parameters.
func inttStandard(p1, p2 []uint64, n int, q, nInv, mredConstant uint64, roots []uint64) {

	if &p1[0] != &p2[0] {
		copy(p2, p1)
	}

	var k int
	for t := 1; t < n; t <<= 1 {
		for j1 := 0; j1 < n; j1 += t << 1 {
			psi := roots[k]
			k++
			for jx, jy := j1, j1+t; jx < j1+t; jx, jy = jx+1, jy+1 {
				p2[jx], p2[jy] = invbutterfly(p2[jx], p2[jy], psi, q, mredConstant)
			}
		}
	}

	mulScalarMontgomeryVec(p2, p2, nInv, q, mredConstant)
}
