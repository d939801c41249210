package ring

import (
	"unsafe"
)

// NumberTheoreticTransformerUnrolled computes the same negacyclic NTT as
// NumberTheoreticTransformerStandard with eightfold-unrolled, bounds-check
// free butterfly loops. It is selected when the CPU advertises wide vector
// units. Outputs are bit-identical to the portable transformer for any input.
type NumberTheoreticTransformerUnrolled struct {
	numberTheoreticTransformerBase
}

// NewNumberTheoreticTransformerUnrolled instantiates a new unrolled
// transformer from the Ring's precomputed constants.
func NewNumberTheoreticTransformerUnrolled(r *Ring, n int) NumberTheoreticTransformer {
	return NumberTheoreticTransformerUnrolled{
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
func (rntt NumberTheoreticTransformerUnrolled) Forward(p1, p2 []uint64) {
	nttUnrolled(p1, p2, rntt.n, rntt.modulus, rntt.mredConstant, rntt.rootsForward)
}

// Backward writes the backward NTT of p1 on p2.
func (rntt NumberTheoreticTransformerUnrolled) Backward(p1, p2 []uint64) {
	inttUnrolled(p1, p2, rntt.n, rntt.modulus, rntt.nInv, rntt.mredConstant, rntt.rootsBackward)
}

// nttUnrolled computes the forward NTT with eightfold-unrolled butterflies.
// The ring degree must be a multiple of 16.
func nttUnrolled(p1, p2 []uint64, n int, q, mredConstant uint64, roots []uint64) {

	if &p1[0] != &p2[0] {
		copy(p2, p1)
	}

	k := 1

	for t := n >> 1; t >= 8; t >>= 1 {

		for j1 := 0; j1 < n; j1 += t << 1 {

			psi := roots[k]
			k++

			for jx, jy := j1, j1+t; jx < j1+t; jx, jy = jx+8, jy+8 {

				/* #nosec G103 -- behavior and consequences well understood, pointers are within bounds */
				x := (*[8]uint64)(unsafe.Pointer(&p2[jx]))
				/* #nosec G103 -- behavior and consequences well understood, pointers are within bounds */
				y := (*[8]uint64)(unsafe.Pointer(&p2[jy]))

				x[0], y[0] = butterfly(x[0], y[0], psi, q, mredConstant)
				x[1], y[1] = butterfly(x[1], y[1], psi, q, mredConstant)
				x[2], y[2] = butterfly(x[2], y[2], psi, q, mredConstant)
				x[3], y[3] = butterfly(x[3], y[3], psi, q, mredConstant)
				x[4], y[4] = butterfly(x[4], y[4], psi, q, mredConstant)
				x[5], y[5] = butterfly(x[5], y[5], psi, q, mredConstant)
				x[6], y[6] = butterfly(x[6], y[6], psi, q, mredConstant)
				x[7], y[7] = butterfly(x[7], y[7], psi, q, mredConstant)
			}
		}
	}

	// t == 4
	for j1 := 0; j1 < n; j1 += 16 {

		/* #nosec G103 -- behavior and consequences well understood, pointers are within bounds */
		psi := (*[2]uint64)(unsafe.Pointer(&roots[k]))
		/* #nosec G103 -- behavior and consequences well understood, pointers are within bounds */
		x := (*[16]uint64)(unsafe.Pointer(&p2[j1]))
		k += 2

		x[0], x[4] = butterfly(x[0], x[4], psi[0], q, mredConstant)
		x[1], x[5] = butterfly(x[1], x[5], psi[0], q, mredConstant)
		x[2], x[6] = butterfly(x[2], x[6], psi[0], q, mredConstant)
		x[3], x[7] = butterfly(x[3], x[7], psi[0], q, mredConstant)
		x[8], x[12] = butterfly(x[8], x[12], psi[1], q, mredConstant)
		x[9], x[13] = butterfly(x[9], x[13], psi[1], q, mredConstant)
		x[10], x[14] = butterfly(x[10], x[14], psi[1], q, mredConstant)
		x[11], x[15] = butterfly(x[11], x[15], psi[1], q, mredConstant)
	}

	// t == 2
	for j1 := 0; j1 < n; j1 += 16 {

		/* #nosec G103 -- behavior and consequences well understood, pointers are within bounds */
		psi := (*[4]uint64)(unsafe.Pointer(&roots[k]))
		/* #nosec G103 -- behavior and consequences well understood, pointers are within bounds */
		x := (*[16]uint64)(unsafe.Pointer(&p2[j1]))
		k += 4

		x[0], x[2] = butterfly(x[0], x[2], psi[0], q, mredConstant)
		x[1], x[3] = butterfly(x[1], x[3], psi[0], q, mredConstant)
		x[4], x[6] = butterfly(x[4], x[6], psi[1], q, mredConstant)
		x[5], x[7] = butterfly(x[5], x[7], psi[1], q, mredConstant)
		x[8], x[10] = butterfly(x[8], x[10], psi[2], q, mredConstant)
		x[9], x[11] = butterfly(x[9], x[11], psi[2], q, mredConstant)
		x[12], x[14] = butterfly(x[12], x[14], psi[3], q, mredConstant)
		x[13], x[15] = butterfly(x[13], x[15], psi[3], q, mredConstant)
	}

	// t == 1
	for j1 := 0; j1 < n; j1 += 16 {

		/* #nosec G103 -- behavior and consequences well understood, pointers are within bounds */
		psi := (*[8]uint64)(unsafe.Pointer(&roots[k]))
		/* #nosec G103 -- behavior and consequences well understood, pointers are within bounds */
		x := (*[16]uint64)(unsafe.Pointer(&p2[j1]))
		k += 8

		x[0], x[1] = butterfly(x[0], x[1], psi[0], q, mredConstant)
		x[2], x[3] = butterfly(x[2], x[3], psi[1], q, mredConstant)
		x[4], x[5] = butterfly(x[4], x[5], psi[2], q, mredConstant)
		x[6], x[7] = butterfly(x[6], x[7], psi[3], q, mredConstant)
		x[8], x[9] = butterfly(x[8], x[9], psi[4], q, mredConstant)
		x[10], x[11] = butterfly(x[10], x[11], psi[5], q, mredConstant)
		x[12], x[13] = butterfly(x[12], x[13], psi[6], q, mredConstant)
		x[14], x[15] = butterfly(x[14], x[15], psi[7], q, mredConstant)
	}
}

// inttUnrolled computes the backward NTT with eightfold-unrolled
// butterflies. The ring degree must be a multiple of 16.
func inttUnrolled(p1, p2 []uint64, n int, q, nInv, mredConstant uint64, roots []uint64) {

	if &p1[0] != &p2[0] {
		copy(p2, p1)
	}

	var k int

	// t == 1
	for j1 := 0; j1 < n; j1 += 16 {

		/* #nosec G103 -- behavior and consequences well understood, pointers are within bounds */
		psi := (*[8]uint64)(unsafe.Pointer(&roots[k]))
		/* #nosec G103 -- behavior and consequences well understood, pointers are within bounds */
		x := (*[16]uint64)(unsafe.Pointer(&p2[j1]))
		k += 8

		x[0], x[1] = invbutterfly(x[0], x[1], psi[0], q, mredConstant)
		x[2], x[3] = invbutterfly(x[2], x[3], psi[1], q, mredConstant)
		x[4], x[5] = invbutterfly(x[4], x[5], psi[2], q, mredConstant)
		x[6], x[7] = invbutterfly(x[6], x[7], psi[3], q, mredConstant)
		x[8], x[9] = invbutterfly(x[8], x[9], psi[4], q, mredConstant)
		x[10], x[11] = invbutterfly(x[10], x[11], psi[5], q, mredConstant)
		x[12], x[13] = invbutterfly(x[12], x[13], psi[6], q, mredConstant)
		x[14], x[15] = invbutterfly(x[14], x[15], psi[7], q, mredConstant)
	}

	// t == 2
	for j1 := 0; j1 < n; j1 += 16 {

		/* #nosec G103 -- behavior and consequences well understood, pointers are within bounds */
		psi := (*[4]uint64)(unsafe.Pointer(&roots[k]))
		/* #nosec G103 -- behavior and consequences well understood, pointers are within bounds */
		x := (*[16]uint64)(unsafe.Pointer(&p2[j1]))
		k += 4

		x[0], x[2] = invbutterfly(x[0], x[2], psi[0], q, mredConstant)
		x[1], x[3] = invbutterfly(x[1], x[3], psi[0], q, mredConstant)
		x[4], x[6] = invbutterfly(x[4], x[6], psi[1], q, mredConstant)
		x[5], x[7] = invbutterfly(x[5], x[7], psi[1], q, mredConstant)
		x[8], x[10] = invbutterfly(x[8], x[10], psi[2], q, mredConstant)
		x[9], x[11] = invbutterfly(x[9], x[11], psi[2], q, mredConstant)
		x[12], x[14] = invbutterfly(x[12], x[14], psi[3], q, mredConstant)
		x[13], x[15] = invbutterfly(x[13], x[15], psi[3], q, mredConstant)
	}

	// t == 4
	for j1 := 0; j1 < n; j1 += 16 {

		/* #nosec G103 -- behavior and consequences well understood, pointers are within bounds */
		psi := (*[2]uint64)(unsafe.Pointer(&roots[k]))
		/* #nosec G103 -- behavior and consequences well understood, pointers are within bounds */
		x := (*[16]uint64)(unsafe.Pointer(&p2[j1]))
		k += 2

		x[0], x[4] = invbutterfly(x[0], x[4], psi[0], q, mredConstant)
		x[1], x[5] = invbutterfly(x[1], x[5], psi[0], q, mredConstant)
		x[2], x[6] = invbutterfly(x[2], x[6], psi[0], q, mredConstant)
		x[3], x[7] = invbutterfly(x[3], x[7], psi[0], q, mredConstant)
		x[8], x[12] = invbutterfly(x[8], x[12], psi[1], q, mredConstant)
		x[9], x[13] = invbutterfly(x[9], x[13], psi[1], q, mredConstant)
		x[10], x[14] = invbutterfly(x[10], x[14], psi[1], q, mredConstant)
		x[11], x[15] = invbutterfly(x[11], x[15], psi[1], q, mredConstant)
	}

	for t := 8; t < n; t <<= 1 {

		for j1 := 0; j1 < n; j1 += t << 1 {

			psi := roots[k]
			k++

			for jx, jy := j1, j1+t; jx < j1+t; jx, jy = jx+8, jy+8 {

				/* #nosec G103 -- behavior and consequences well understood, pointers are within bounds */
				x := (*[8]uint64)(unsafe.Pointer(&p2[jx]))
				/* #nosec G103 -- behavior and consequences well understood, pointers are within bounds */
				y := (*[8]uint64)(unsafe.Pointer(&p2[jy]))

				x[0], y[0] = invbutterfly(x[0], y[0], psi, q, mredConstant)
				x[1], y[1] = invbutterfly(x[1], y[1], psi, q, mredConstant)
				x[2], y[2] = invbutterfly(x[2], y[2], psi, q, mredConstant)
				x[3], y[3] = invbutterfly(x[3], y[3], psi, q, mredConstant)
				x[4], y[4] = invbutterfly(x[4], y[4], psi, q, mredConstant)
				x[5], y[5] = invbutterfly(x[5], y[5], psi, q, mredConstant)
				x[6], y[6] = invbutterfly(x[6], y[6], psi, q, mredConstant)
				x[7], y[7] = invbutterfly(x[7], y[7], psi, q, mredConstant)
			}
		}
	}

	mulScalarMontgomeryVec(p2, p2, nInv, q, mredConstant)
}
