package ring

import (
	"math/bits"
)

// MForm switches a to the Montgomery domain, i.e. returns a*2^64 mod q.
func MForm(a, q uint64, bredconstant [2]uint64) (r uint64) {
	mhi, _ := bits.Mul64(a, bredconstant[1])
	r = -(a*bredconstant[0] + mhi) * q
	if r >= q {
		r -= q
	}
	return
}

// MFormLazy switches a to the Montgomery domain, i.e. returns a*2^64 mod q
// with a result in the range [0, 2q-1].
func MFormLazy(a, q uint64, bredconstant [2]uint64) (r uint64) {
	mhi, _ := bits.Mul64(a, bredconstant[1])
	r = -(a*bredconstant[0] + mhi) * q
	return
}

// IMForm switches a from the Montgomery domain back to the standard domain,
// i.e. returns a*(2^64)^-1 mod q.
func IMForm(a, q, mredconstant uint64) (r uint64) {
	r, _ = bits.Mul64(a*mredconstant, q)
	r = q - r
	if r >= q {
		r -= q
	}
	return
}

// MRedConstant computes the constant q^-1 mod 2^64 required by MRed.
func MRedConstant(q uint64) (mredconstant uint64) {
	var x uint64
	mredconstant = 1
	x = q
	for i := 0; i < 63; i++ {
		mredconstant *= x
		x *= x
	}
	return
}

// MRed computes x*y*(2^64)^-1 mod q.
func MRed(x, y, q, mredconstant uint64) (r uint64) {
	mhi, mlo := bits.Mul64(x, y)
	hhi, _ := bits.Mul64(mlo*mredconstant, q)
	r = mhi - hhi + q
	if r >= q {
		r -= q
	}
	return
}

// MRedLazy computes x*y*(2^64)^-1 mod q with a result in the range [0, 2q-1].
func MRedLazy(x, y, q, mredconstant uint64) (r uint64) {
	ahi, alo := bits.Mul64(x, y)
	H, _ := bits.Mul64(alo*mredconstant, q)
	r = ahi - H + q
	return
}

// BRedConstant computes the constant 2^128/q required by BRed.
func BRedConstant(q uint64) (bredconstant [2]uint64) {
	mhi, rem := bits.Div64(1, 0, q)
	mlo, _ := bits.Div64(rem, 0, q)
	return [2]uint64{mhi, mlo}
}

// BRedAdd reduces a 64-bit integer to [0, q).
func BRedAdd(a, q uint64, bredconstant [2]uint64) (r uint64) {
	mhi, _ := bits.Mul64(a, bredconstant[0])
	r = a - mhi*q
	if r >= q {
		r -= q
	}
	return
}

// BRedAddLazy reduces a 64-bit integer to [0, 2q-1].
func BRedAddLazy(x, q uint64, bredconstant [2]uint64) uint64 {
	s0, _ := bits.Mul64(x, bredconstant[0])
	return x - s0*q
}

// BRed computes x*y mod q.
func BRed(x, y, q uint64, bredconstant [2]uint64) (r uint64) {

	var mhi, mlo, lhi, hhi, hlo, s0, s1, carry uint64

	ahi, alo := bits.Mul64(x, y)

	// (alo*bredconstant[1])>>64

	lhi, _ = bits.Mul64(alo, bredconstant[1])

	// FIRST PART

	mhi, mlo = bits.Mul64(alo, bredconstant[0])

	s0, carry = bits.Add64(mlo, lhi, 0)

	s1 = mhi + carry

	// SECOND PART

	hhi, hlo = bits.Mul64(ahi, bredconstant[1])

	_, carry = bits.Add64(hlo, s0, 0)

	lhi = hhi + carry

	// (ahi*bredconstant[0]) + (second part) + (first part)

	s0 = ahi*bredconstant[0] + s1 + lhi

	r = alo - s0*q

	if r >= q {
		r -= q
	}

	return
}

// BRedLazy computes x*y mod q with a result in the range [0, 2q-1].
func BRedLazy(x, y, q uint64, bredconstant [2]uint64) (r uint64) {

	var mhi, mlo, lhi, hhi, hlo, s0, s1, carry uint64

	ahi, alo := bits.Mul64(x, y)

	lhi, _ = bits.Mul64(alo, bredconstant[1])

	mhi, mlo = bits.Mul64(alo, bredconstant[0])

	s0, carry = bits.Add64(mlo, lhi, 0)

	s1 = mhi + carry

	hhi, hlo = bits.Mul64(ahi, bredconstant[1])

	_, carry = bits.Add64(hlo, s0, 0)

	lhi = hhi + carry

	s0 = ahi*bredconstant[0] + s1 + lhi

	r = alo - s0*q

	return
}

// CRed returns a mod q, where a is required to be in the range [0, 2q-1].
func CRed(a, q uint64) uint64 {
	if a >= q {
		return a - q
	}
	return a
}
