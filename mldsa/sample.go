package mldsa

import (
	"golang.org/x/crypto/sha3"

	"github.com/Enkom-Tech/libQ-sub001/ring"
	"github.com/Enkom-Tech/libQ-sub001/utils/structs"
)

// Draw ceilings for the rejection loops. The acceptance probabilities make
// these unreachable for an honest XOF; hitting one is an internal failure.
const (
	maxUniformDraws   = 4096 // 3-byte groups per polynomial, accept rate ~0.9996
	maxBoundedDraws   = 4096 // bytes per polynomial, accept rate >= 9/16 per nibble
	maxChallengeDraws = 4096 // bytes per challenge, accept rate >= 1/256 per draw
)

// sampleUniformPoly fills pol with uniform coefficients in [0, q) by
// rejection from SHAKE128(seed || s || r), consuming 3-byte little-endian
// groups with the top bit of the third byte masked.
func sampleUniformPoly(seed []byte, s, r byte, pol ring.Poly) bool {

	xof := sha3.NewShake128()
	xof.Write(seed)
	xof.Write([]byte{s, r})

	var buf [3 * 128]byte
	var off = len(buf)

	var n, draws int
	for n < DegreeN {
		if off == len(buf) {
			xof.Read(buf[:])
			off = 0
		}
		if draws++; draws > maxUniformDraws {
			return false
		}
		d := uint64(buf[off]) | uint64(buf[off+1])<<8 | uint64(buf[off+2]&0x7F)<<16
		off += 3
		if d < ring.Modulus {
			pol.Coeffs[n] = d
			n++
		}
	}
	return true
}

// expandMatrix derives the k x l public matrix in the NTT domain from the
// 32-byte seed rho. The expansion is deterministic and bit-exact on every
// call.
func expandMatrix(p Parameters, rho []byte) (structs.Matrix[ring.Poly], bool) {
	a := make(structs.Matrix[ring.Poly], p.k)
	for i := range a {
		a[i] = make([]ring.Poly, p.l)
		for j := range a[i] {
			a[i][j] = ring.NewPoly(DegreeN)
			if !sampleUniformPoly(rho, byte(j), byte(i), a[i][j]) {
				return nil, false
			}
		}
	}
	return a, true
}

// sampleBoundedPoly fills pol with coefficients in [-eta, eta] by nibble
// rejection from SHAKE256(seed || nonce16).
func sampleBoundedPoly(seed []byte, eta int, nonce uint16, pol ring.Poly) bool {

	xof := sha3.NewShake256()
	xof.Write(seed)
	xof.Write([]byte{byte(nonce), byte(nonce >> 8)})

	var buf [136]byte
	var off = len(buf)

	var n, draws int
	for n < DegreeN {
		if off == len(buf) {
			xof.Read(buf[:])
			off = 0
		}
		if draws++; draws > maxBoundedDraws {
			return false
		}
		b := buf[off]
		off++
		z0 := uint64(b & 0x0F)
		z1 := uint64(b >> 4)
		if eta == 2 {
			if z0 < 15 {
				pol.Coeffs[n] = fromCentered(2 - int64(z0%5))
				n++
			}
			if n < DegreeN && z1 < 15 {
				pol.Coeffs[n] = fromCentered(2 - int64(z1%5))
				n++
			}
		} else {
			if z0 <= 8 {
				pol.Coeffs[n] = fromCentered(4 - int64(z0))
				n++
			}
			if n < DegreeN && z1 <= 8 {
				pol.Coeffs[n] = fromCentered(4 - int64(z1))
				n++
			}
		}
	}
	return true
}

// sampleMaskPoly fills pol with coefficients in (-gamma1, gamma1] from
// SHAKE256(seed || nonce16), one fixed-width field per coefficient. No
// rejection is involved.
func sampleMaskPoly(seed []byte, gamma1Bits int, nonce uint16, pol ring.Poly) {

	xof := sha3.NewShake256()
	xof.Write(seed)
	xof.Write([]byte{byte(nonce), byte(nonce >> 8)})

	buf := make([]byte, DegreeN*(gamma1Bits+1)/8)
	xof.Read(buf)

	gamma1 := int64(1) << gamma1Bits
	unpackBits(buf, gamma1Bits+1, pol.Coeffs)
	for i, f := range pol.Coeffs {
		pol.Coeffs[i] = fromCentered(gamma1 - int64(f))
	}
}

// sampleChallengePoly fills pol with exactly tau coefficients of +-1 placed
// by in-place selection over SHAKE256(seed); the first 8 squeezed bytes
// carry the sign bits.
func sampleChallengePoly(seed []byte, tau int, pol ring.Poly) bool {

	xof := sha3.NewShake256()
	xof.Write(seed)

	var signs [8]byte
	xof.Read(signs[:])

	var s uint64
	for i := 7; i >= 0; i-- {
		s = s<<8 | uint64(signs[i])
	}

	pol.Zero()

	var buf [136]byte
	var off = len(buf)

	var draws int
	for i := DegreeN - tau; i < DegreeN; i++ {
		var j int
		for {
			if off == len(buf) {
				xof.Read(buf[:])
				off = 0
			}
			if draws++; draws > maxChallengeDraws {
				return false
			}
			j = int(buf[off])
			off++
			if j <= i {
				break
			}
		}
		pol.Coeffs[i] = pol.Coeffs[j]
		if s&1 == 0 {
			pol.Coeffs[j] = 1
		} else {
			pol.Coeffs[j] = ring.Modulus - 1
		}
		s >>= 1
	}
	return true
}
