// Package ring implements arithmetic in the polynomial ring Z_q[X]/(X^N+1)
// for the fixed NTT-friendly 23-bit prime q = 2^23 - 2^13 + 1. It provides
// modular reduction (Montgomery and Barrett), the forward and backward
// negacyclic number-theoretic transform behind an interchangeable transformer
// interface, and coefficient-wise ring operations on polynomials.
package ring

import (
	"fmt"
	"math/bits"

	"github.com/klauspost/cpuid/v2"

	"github.com/Enkom-Tech/libQ-sub001/utils"
)

// Modulus is the fixed prime defining the coefficient field Z_q.
const Modulus uint64 = 8380417

// PrimitiveRoot is a primitive 512-th root of unity modulo [Modulus].
const PrimitiveRoot uint64 = 1753

// MaxNthRoot is the order of [PrimitiveRoot]; the ring degree N must
// satisfy 2N | MaxNthRoot for the negacyclic transform to exist.
const MaxNthRoot = 512

// MaxN is the largest supported ring degree.
const MaxN = MaxNthRoot >> 1

// Ring is a structure that keeps all the variables required to operate on a
// polynomial in Z_q[X]/(X^N+1): the reduction constants for the fixed
// modulus, the powers of the 2N-th root of unity in Montgomery form and in
// bit-reversed order, and the number-theoretic transformer in use.
type Ring struct {
	// NValue is the ring degree.
	NValue int

	// Modulus is the prime coefficient modulus q.
	Modulus uint64

	// MRedConstant is the constant q^-1 mod 2^64 used by the Montgomery reduction.
	MRedConstant uint64

	// BRedConstant is the constant 2^128/q used by the Barrett reduction.
	BRedConstant [2]uint64

	// NInv is N^-1 mod q in Montgomery form.
	NInv uint64

	// RootsForward are the powers psi^(bitrev(i)) in Montgomery form, where
	// psi is the 2N-th primitive root of unity, ordered as consumed by the
	// forward transform.
	RootsForward []uint64

	// RootsBackward are the negated forward roots ordered as consumed by the
	// backward transform.
	RootsBackward []uint64

	ntt NumberTheoreticTransformer
}

// NewRing creates a new Ring of degree n over the fixed modulus, with the
// number-theoretic transformer selected from the detected CPU capabilities.
// The degree n must be a power of two with 2n dividing [MaxNthRoot].
// Backend selection never alters observable outputs.
func NewRing(n int) (*Ring, error) {
	if cpuid.CPU.Supports(cpuid.AVX2) {
		return NewRingWithCustomNTT(n, NewNumberTheoreticTransformerUnrolled)
	}
	return NewRingWithCustomNTT(n, NewNumberTheoreticTransformerStandard)
}

// NewRingWithCustomNTT creates a new Ring of degree n over the fixed modulus
// with the provided number-theoretic transformer constructor.
func NewRingWithCustomNTT(n int, ntt func(r *Ring, n int) NumberTheoreticTransformer) (r *Ring, err error) {

	if n < 16 || n > MaxN || bits.OnesCount(uint(n)) != 1 {
		return nil, fmt.Errorf("invalid ring degree: %d not a power of two in [16, %d]", n, MaxN)
	}

	r = &Ring{
		NValue:       n,
		Modulus:      Modulus,
		MRedConstant: MRedConstant(Modulus),
		BRedConstant: BRedConstant(Modulus),
	}

	r.generateNTTConstants()

	r.ntt = ntt(r, n)

	return r, nil
}

// generateNTTConstants populates the root tables and the scaling constant of
// the backward transform.
func (r *Ring) generateNTTConstants() {

	n := r.NValue
	q := r.Modulus

	// 2n-th root of unity derived from the fixed primitive root.
	psi := ModExp(PrimitiveRoot, uint64(MaxNthRoot/(n<<1)), q)

	logN := bits.Len64(uint64(n)) - 1

	r.RootsForward = make([]uint64, n)
	r.RootsBackward = make([]uint64, n)

	powers := make([]uint64, n)
	powers[0] = 1
	for i := 1; i < n; i++ {
		powers[i] = BRed(powers[i-1], psi, q, r.BRedConstant)
	}

	for i := range r.RootsForward {
		r.RootsForward[i] = MForm(powers[utils.BitReverse64(uint64(i), uint64(logN))], q, r.BRedConstant)
	}

	// The backward transform consumes the negated forward roots in reverse
	// order, skipping the leading root of the forward table.
	for i := 0; i < n-1; i++ {
		r.RootsBackward[i] = q - r.RootsForward[n-1-i]
	}
	r.RootsBackward[n-1] = q - r.RootsForward[0]

	r.NInv = MForm(ModExp(uint64(n), q-2, q), q, r.BRedConstant)
}

// N returns the ring degree.
func (r *Ring) N() int {
	return r.NValue
}

// NewPoly creates a new polynomial of degree r.N() with all coefficients set
// to zero.
func (r *Ring) NewPoly() Poly {
	return NewPoly(r.NValue)
}

// Equal checks equality between two rings.
func (r *Ring) Equal(other *Ring) bool {
	return r.NValue == other.NValue && r.Modulus == other.Modulus
}

// ModExp performs the modular exponentiation x^e mod p.
func ModExp(x, e, p uint64) (result uint64) {
	brc := BRedConstant(p)
	result = 1
	for i := e; i > 0; i >>= 1 {
		if i&1 == 1 {
			result = BRed(result, x, p, brc)
		}
		x = BRed(x, x, p, brc)
	}
	return result
}
