package ring

import (
	"unsafe"
)

// The vector operations below process eight coefficients per iteration and
// require the slice lengths to be a multiple of 8, which NewRing enforces.

func addVec(p1, p2, p3 []uint64, q uint64) {
	n := len(p1)
	for j := 0; j < n; j += 8 {

		/* #nosec G103 -- behavior and consequences well understood, pointers are within bounds */
		x := (*[8]uint64)(unsafe.Pointer(&p1[j]))
		/* #nosec G103 -- behavior and consequences well understood, pointers are within bounds */
		y := (*[8]uint64)(unsafe.Pointer(&p2[j]))
		/* #nosec G103 -- behavior and consequences well understood, pointers are within bounds */
		z := (*[8]uint64)(unsafe.Pointer(&p3[j]))

		z[0] = CRed(x[0]+y[0], q)
		z[1] = CRed(x[1]+y[1], q)
		z[2] = CRed(x[2]+y[2], q)
		z[3] = CRed(x[3]+y[3], q)
		z[4] = CRed(x[4]+y[4], q)
		z[5] = CRed(x[5]+y[5], q)
		z[6] = CRed(x[6]+y[6], q)
		z[7] = CRed(x[7]+y[7], q)
	}
}

func subVec(p1, p2, p3 []uint64, q uint64) {
	n := len(p1)
	for j := 0; j < n; j += 8 {

		/* #nosec G103 -- behavior and consequences well understood, pointers are within bounds */
		x := (*[8]uint64)(unsafe.Pointer(&p1[j]))
		/* #nosec G103 -- behavior and consequences well understood, pointers are within bounds */
		y := (*[8]uint64)(unsafe.Pointer(&p2[j]))
		/* #nosec G103 -- behavior and consequences well understood, pointers are within bounds */
		z := (*[8]uint64)(unsafe.Pointer(&p3[j]))

		z[0] = CRed(x[0]+q-y[0], q)
		z[1] = CRed(x[1]+q-y[1], q)
		z[2] = CRed(x[2]+q-y[2], q)
		z[3] = CRed(x[3]+q-y[3], q)
		z[4] = CRed(x[4]+q-y[4], q)
		z[5] = CRed(x[5]+q-y[5], q)
		z[6] = CRed(x[6]+q-y[6], q)
		z[7] = CRed(x[7]+q-y[7], q)
	}
}

func negVec(p1, p2 []uint64, q uint64) {
	n := len(p1)
	for j := 0; j < n; j += 8 {

		/* #nosec G103 -- behavior and consequences well understood, pointers are within bounds */
		x := (*[8]uint64)(unsafe.Pointer(&p1[j]))
		/* #nosec G103 -- behavior and consequences well understood, pointers are within bounds */
		z := (*[8]uint64)(unsafe.Pointer(&p2[j]))

		z[0] = CRed(q-x[0], q)
		z[1] = CRed(q-x[1], q)
		z[2] = CRed(q-x[2], q)
		z[3] = CRed(q-x[3], q)
		z[4] = CRed(q-x[4], q)
		z[5] = CRed(q-x[5], q)
		z[6] = CRed(q-x[6], q)
		z[7] = CRed(q-x[7], q)
	}
}

func mulCoeffsBarrettVec(p1, p2, p3 []uint64, q uint64, bredconstant [2]uint64) {
	n := len(p1)
	for j := 0; j < n; j += 8 {

		/* #nosec G103 -- behavior and consequences well understood, pointers are within bounds */
		x := (*[8]uint64)(unsafe.Pointer(&p1[j]))
		/* #nosec G103 -- behavior and consequences well understood, pointers are within bounds */
		y := (*[8]uint64)(unsafe.Pointer(&p2[j]))
		/* #nosec G103 -- behavior and consequences well understood, pointers are within bounds */
		z := (*[8]uint64)(unsafe.Pointer(&p3[j]))

		z[0] = BRed(x[0], y[0], q, bredconstant)
		z[1] = BRed(x[1], y[1], q, bredconstant)
		z[2] = BRed(x[2], y[2], q, bredconstant)
		z[3] = BRed(x[3], y[3], q, bredconstant)
		z[4] = BRed(x[4], y[4], q, bredconstant)
		z[5] = BRed(x[5], y[5], q, bredconstant)
		z[6] = BRed(x[6], y[6], q, bredconstant)
		z[7] = BRed(x[7], y[7], q, bredconstant)
	}
}

func mulCoeffsBarrettThenAddVec(p1, p2, p3 []uint64, q uint64, bredconstant [2]uint64) {
	n := len(p1)
	for j := 0; j < n; j += 8 {

		/* #nosec G103 -- behavior and consequences well understood, pointers are within bounds */
		x := (*[8]uint64)(unsafe.Pointer(&p1[j]))
		/* #nosec G103 -- behavior and consequences well understood, pointers are within bounds */
		y := (*[8]uint64)(unsafe.Pointer(&p2[j]))
		/* #nosec G103 -- behavior and consequences well understood, pointers are within bounds */
		z := (*[8]uint64)(unsafe.Pointer(&p3[j]))

		z[0] = CRed(z[0]+BRed(x[0], y[0], q, bredconstant), q)
		z[1] = CRed(z[1]+BRed(x[1], y[1], q, bredconstant), q)
		z[2] = CRed(z[2]+BRed(x[2], y[2], q, bredconstant), q)
		z[3] = CRed(z[3]+BRed(x[3], y[3], q, bredconstant), q)
		z[4] = CRed(z[4]+BRed(x[4], y[4], q, bredconstant), q)
		z[5] = CRed(z[5]+BRed(x[5], y[5], q, bredconstant), q)
		z[6] = CRed(z[6]+BRed(x[6], y[6], q, bredconstant), q)
		z[7] = CRed(z[7]+BRed(x[7], y[7], q, bredconstant), q)
	}
}

func mulScalarMontgomeryVec(p1, p2 []uint64, scalarMont, q, mredConstant uint64) {
	n := len(p1)
	for j := 0; j < n; j += 8 {

		/* #nosec G103 -- behavior and consequences well understood, pointers are within bounds */
		x := (*[8]uint64)(unsafe.Pointer(&p1[j]))
		/* #nosec G103 -- behavior and consequences well understood, pointers are within bounds */
		z := (*[8]uint64)(unsafe.Pointer(&p2[j]))

		z[0] = MRed(x[0], scalarMont, q, mredConstant)
		z[1] = MRed(x[1], scalarMont, q, mredConstant)
		z[2] = MRed(x[2], scalarMont, q, mredConstant)
		z[3] = MRed(x[3], scalarMont, q, mredConstant)
		z[4] = MRed(x[4], scalarMont, q, mredConstant)
		z[5] = MRed(x[5], scalarMont, q, mredConstant)
		z[6] = MRed(x[6], scalarMont, q, mredConstant)
		z[7] = MRed(x[7], scalarMont, q, mredConstant)
	}
}

func reduceVec(p1, p2 []uint64, q uint64, bredconstant [2]uint64) {
	n := len(p1)
	for j := 0; j < n; j += 8 {

		/* #nosec G103 -- behavior and consequences well understood, pointers are within bounds */
		x := (*[8]uint64)(unsafe.Pointer(&p1[j]))
		/* #nosec G103 -- behavior and consequences well understood, pointers are within bounds */
		z := (*[8]uint64)(unsafe.Pointer(&p2[j]))

		z[0] = BRedAdd(x[0], q, bredconstant)
		z[1] = BRedAdd(x[1], q, bredconstant)
		z[2] = BRedAdd(x[2], q, bredconstant)
		z[3] = BRedAdd(x[3], q, bredconstant)
		z[4] = BRedAdd(x[4], q, bredconstant)
		z[5] = BRedAdd(x[5], q, bredconstant)
		z[6] = BRedAdd(x[6], q, bredconstant)
		z[7] = BRedAdd(x[7], q, bredconstant)
	}
}
