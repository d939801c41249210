// Package mldsa implements the module-lattice digital-signature scheme
// ML-DSA (FIPS 204) over the ring Z_q[X]/(X^256+1) with q = 8380417, for
// the three standard parameter sets ML-DSA-44, ML-DSA-65 and ML-DSA-87.
//
// Keys and signatures use the standard byte layouts. Signing is hedged by
// default and deterministic on request; both variants run the
// Fiat-Shamir-with-aborts retry loop with explicit ceilings.
package mldsa

import (
	"fmt"
	"math/big"

	"github.com/ALTree/bigfloat"

	"github.com/Enkom-Tech/libQ-sub001/ring"
)

const (
	// DegreeN is the polynomial degree shared by all parameter sets.
	DegreeN = 256

	// DroppedBits is the number of low-order bits d dropped from t by the
	// power-of-two rounding of the public key.
	DroppedBits = 13

	// SeedSize is the byte length of the key-generation seed.
	SeedSize = 32

	// TRSize is the byte length of the public-key hash tr stored in the
	// signing key.
	TRSize = 64

	// MaxContextSize is the largest admissible domain-separation context.
	MaxContextSize = 255
)

// ParametersLiteral is an unchecked numeric description of a parameter set.
// It is compiled into a validated Parameters by [NewParametersFromLiteral].
type ParametersLiteral struct {
	K          int    // rows of the public matrix
	L          int    // columns of the public matrix
	Eta        int    // secret-coefficient bound
	Tau        int    // challenge weight
	Omega      int    // hint-weight ceiling
	Gamma1Bits int    // log2 of the mask bound gamma1
	Gamma2     uint64 // low-order rounding range
	Lambda     int    // collision-strength of the challenge hash, in bits
}

// Parameters is a validated, ready-to-use parameter set. The zero value is
// invalid; use [NewParametersFromLiteral] or one of the package-level sets.
type Parameters struct {
	k, l, eta, tau, omega int
	gamma1Bits            int
	gamma2                uint64
	lambda                int

	ringQ *ring.Ring
}

// The three standard parameter sets.
var (
	MLDSA44 = mustNewParameters(ParametersLiteral{K: 4, L: 4, Eta: 2, Tau: 39, Omega: 80, Gamma1Bits: 17, Gamma2: (ring.Modulus - 1) / 88, Lambda: 128})
	MLDSA65 = mustNewParameters(ParametersLiteral{K: 6, L: 5, Eta: 4, Tau: 49, Omega: 55, Gamma1Bits: 19, Gamma2: (ring.Modulus - 1) / 32, Lambda: 192})
	MLDSA87 = mustNewParameters(ParametersLiteral{K: 8, L: 7, Eta: 2, Tau: 60, Omega: 75, Gamma1Bits: 19, Gamma2: (ring.Modulus - 1) / 32, Lambda: 256})
)

// NewParametersFromLiteral compiles a [ParametersLiteral] into a validated
// Parameters, instantiating the underlying ring.
func NewParametersFromLiteral(pl ParametersLiteral) (p Parameters, err error) {

	if pl.K < 1 || pl.K > 255 || pl.L < 1 || pl.L > 255 {
		return Parameters{}, fmt.Errorf("invalid parameters literal: matrix dimensions (%d, %d) out of range", pl.K, pl.L)
	}

	if pl.Eta != 2 && pl.Eta != 4 {
		return Parameters{}, fmt.Errorf("invalid parameters literal: eta must be 2 or 4, got %d", pl.Eta)
	}

	if pl.Tau < 1 || pl.Tau > 64 {
		return Parameters{}, fmt.Errorf("invalid parameters literal: tau %d not in [1, 64]", pl.Tau)
	}

	if pl.Gamma1Bits != 17 && pl.Gamma1Bits != 19 {
		return Parameters{}, fmt.Errorf("invalid parameters literal: gamma1 must be 2^17 or 2^19, got 2^%d", pl.Gamma1Bits)
	}

	if g := pl.Gamma2; g != (ring.Modulus-1)/88 && g != (ring.Modulus-1)/32 {
		return Parameters{}, fmt.Errorf("invalid parameters literal: gamma2 %d not (q-1)/88 or (q-1)/32", g)
	}

	if pl.Omega < 1 || pl.Lambda%8 != 0 || pl.Lambda < 128 {
		return Parameters{}, fmt.Errorf("invalid parameters literal: omega %d / lambda %d", pl.Omega, pl.Lambda)
	}

	ringQ, err := ring.NewRing(DegreeN)
	if err != nil {
		return Parameters{}, fmt.Errorf("invalid parameters literal: %w", err)
	}

	return Parameters{
		k:          pl.K,
		l:          pl.L,
		eta:        pl.Eta,
		tau:        pl.Tau,
		omega:      pl.Omega,
		gamma1Bits: pl.Gamma1Bits,
		gamma2:     pl.Gamma2,
		lambda:     pl.Lambda,
		ringQ:      ringQ,
	}, nil
}

func mustNewParameters(pl ParametersLiteral) Parameters {
	p, err := NewParametersFromLiteral(pl)
	if err != nil {
		panic(err)
	}
	return p
}

// K returns the number of rows of the public matrix.
func (p Parameters) K() int { return p.k }

// L returns the number of columns of the public matrix.
func (p Parameters) L() int { return p.l }

// Eta returns the secret-coefficient bound.
func (p Parameters) Eta() int { return p.eta }

// Tau returns the challenge weight.
func (p Parameters) Tau() int { return p.tau }

// Omega returns the hint-weight ceiling.
func (p Parameters) Omega() int { return p.omega }

// Gamma1 returns the mask bound gamma1 = 2^Gamma1Bits.
func (p Parameters) Gamma1() uint64 { return 1 << p.gamma1Bits }

// Gamma1Bits returns log2 of the mask bound.
func (p Parameters) Gamma1Bits() int { return p.gamma1Bits }

// Gamma2 returns the low-order rounding range.
func (p Parameters) Gamma2() uint64 { return p.gamma2 }

// Lambda returns the collision-strength of the challenge hash, in bits.
func (p Parameters) Lambda() int { return p.lambda }

// Beta returns the rejection margin tau*eta.
func (p Parameters) Beta() uint64 { return uint64(p.tau * p.eta) }

// RingQ returns the underlying polynomial ring.
func (p Parameters) RingQ() *ring.Ring { return p.ringQ }

// etaBits returns the packing width of a secret coefficient.
func (p Parameters) etaBits() int {
	if p.eta == 2 {
		return 3
	}
	return 4
}

// zBits returns the packing width of a response coefficient.
func (p Parameters) zBits() int { return p.gamma1Bits + 1 }

// w1Bits returns the packing width of a commitment high-bits coefficient.
func (p Parameters) w1Bits() int {
	if p.gamma2 == (ring.Modulus-1)/32 {
		return 4
	}
	return 6
}

// PublicKeySize returns the byte length of an encoded public key.
func (p Parameters) PublicKeySize() int {
	return SeedSize + p.k*DegreeN*10/8
}

// PrivateKeySize returns the byte length of an encoded private key.
func (p Parameters) PrivateKeySize() int {
	return SeedSize + SeedSize + TRSize + (p.k+p.l)*DegreeN*p.etaBits()/8 + p.k*DegreeN*DroppedBits/8
}

// SignatureSize returns the byte length of an encoded signature.
func (p Parameters) SignatureSize() int {
	return p.lambda/4 + p.l*DegreeN*p.zBits()/8 + p.omega + p.k
}

// Equal checks equality between two parameter sets.
func (p Parameters) Equal(other *Parameters) bool {
	return p.k == other.k &&
		p.l == other.l &&
		p.eta == other.eta &&
		p.tau == other.tau &&
		p.omega == other.omega &&
		p.gamma1Bits == other.gamma1Bits &&
		p.gamma2 == other.gamma2 &&
		p.lambda == other.lambda
}

// String returns the standard name of the parameter set.
func (p Parameters) String() string {
	return fmt.Sprintf("ML-DSA-%d%d", p.k, p.l)
}

// ExpectedAttempts returns the expected number of iterations of the signing
// retry loop, exp(256*beta*(l/gamma1 + k/gamma2)), computed in high
// precision. The standard sets sit between roughly 3.85 and 5.1.
func (p Parameters) ExpectedAttempts() *big.Float {

	prec := uint(128)

	beta := new(big.Float).SetPrec(prec).SetUint64(uint64(DegreeN) * p.Beta())

	lOverGamma1 := new(big.Float).SetPrec(prec).Quo(
		new(big.Float).SetPrec(prec).SetInt64(int64(p.l)),
		new(big.Float).SetPrec(prec).SetUint64(p.Gamma1()),
	)

	kOverGamma2 := new(big.Float).SetPrec(prec).Quo(
		new(big.Float).SetPrec(prec).SetInt64(int64(p.k)),
		new(big.Float).SetPrec(prec).SetUint64(p.gamma2),
	)

	exponent := new(big.Float).SetPrec(prec).Mul(beta, new(big.Float).SetPrec(prec).Add(lOverGamma1, kOverGamma2))

	return bigfloat.Exp(exponent)
}
