package mldsa

import (
	"github.com/Enkom-Tech/libQ-sub001/ring"
	"github.com/Enkom-Tech/libQ-sub001/utils/structs"
)

// power2Round splits a canonical coefficient r into (r1, r0) with
// r = r1*2^13 + r0 and r0 centered in (-2^12, 2^12]. The low part is
// returned in canonical form.
func power2Round(r uint64) (r1, r0 uint64) {
	r1 = r >> DroppedBits
	rem := int64(r) - int64(r1<<DroppedBits)
	if rem > 1<<(DroppedBits-1) {
		rem -= 1 << DroppedBits
		r1++
	}
	return r1, fromCentered(rem)
}

// highBits returns the high part of the decomposition of r with respect to
// 2*gamma2, with the wraparound case r - r0 = q - 1 folded to zero.
func highBits(r, gamma2 uint64) uint64 {
	r1 := (r + 127) >> 7
	if gamma2 == (ring.Modulus-1)/32 {
		return (r1*1025 + (1 << 21)) >> 22 & 15
	}
	r1 = (r1*11275 + (1 << 23)) >> 24
	if r1 > 43 {
		r1 = 0
	}
	return r1
}

// decompose splits a canonical coefficient r into (r1, r0) with
// r = r1*2*gamma2 + r0 mod q and r0 centered in (-gamma2, gamma2].
func decompose(r, gamma2 uint64) (r1 uint64, r0 int64) {
	r1 = highBits(r, gamma2)
	r0 = int64(r) - int64(r1*2*gamma2)
	if r0 > int64(qm12) {
		r0 -= int64(ring.Modulus)
	}
	return
}

// makeHint returns 1 when adding the canonical correction z to r changes
// the high bits of r, else 0.
func makeHint(z, r, gamma2 uint64) uint64 {
	if highBits(ring.CRed(r+z, ring.Modulus), gamma2) != highBits(r, gamma2) {
		return 1
	}
	return 0
}

// useHint reconstructs the exact high bits of r from its approximate
// decomposition and the hint bit.
func useHint(h, r, gamma2 uint64) uint64 {
	r1, r0 := decompose(r, gamma2)
	if h == 0 {
		return r1
	}
	if gamma2 == (ring.Modulus-1)/32 {
		if r0 > 0 {
			return (r1 + 1) & 15
		}
		return (r1 - 1) & 15
	}
	if r0 > 0 {
		if r1 == 43 {
			return 0
		}
		return r1 + 1
	}
	if r1 == 0 {
		return 43
	}
	return r1 - 1
}

// infNorm returns the absolute value of the centered representative of a
// canonical coefficient.
func infNorm(c uint64) uint64 {
	if c > qm12 {
		return ring.Modulus - c
	}
	return c
}

// normExceeds reports whether any coefficient of the vector reaches the
// bound in infinity norm.
func normExceeds(v structs.Vector[ring.Poly], bound uint64) bool {
	for i := range v {
		for _, c := range v[i].Coeffs {
			if infNorm(c) >= bound {
				return true
			}
		}
	}
	return false
}
