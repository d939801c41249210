package mldsa

import (
	"github.com/Enkom-Tech/libQ-sub001/ring"
	"github.com/Enkom-Tech/libQ-sub001/utils/structs"
)

const qm12 = (ring.Modulus - 1) >> 1

// centered maps a canonical coefficient in [0, q) to its centered
// representative in (-(q-1)/2, (q-1)/2].
func centered(c uint64) int64 {
	if c > qm12 {
		return int64(c) - int64(ring.Modulus)
	}
	return int64(c)
}

// fromCentered maps a centered representative back to [0, q).
// The input must lie in (-q, q).
func fromCentered(v int64) uint64 {
	return ring.CRed(uint64(v+int64(ring.Modulus)), ring.Modulus)
}

// packBits serializes coefficients of the given bit width into p, least
// significant bits first. Coefficients must already fit the width.
func packBits(coeffs []uint64, width int, p []byte) {
	var acc uint64
	var nbits int
	var off int
	for _, c := range coeffs {
		acc |= c << nbits
		nbits += width
		for nbits >= 8 {
			p[off] = byte(acc)
			off++
			acc >>= 8
			nbits -= 8
		}
	}
}

// unpackBits deserializes len(coeffs) fields of the given bit width from p,
// least significant bits first.
func unpackBits(p []byte, width int, coeffs []uint64) {
	var acc uint64
	var nbits int
	var off int
	mask := uint64(1)<<width - 1
	for i := range coeffs {
		for nbits < width {
			acc |= uint64(p[off]) << nbits
			off++
			nbits += 8
		}
		coeffs[i] = acc & mask
		acc >>= width
		nbits -= width
	}
}

// packT1 serializes the high bits of t at 10 bits per coefficient.
func packT1(pol ring.Poly, p []byte) {
	packBits(pol.Coeffs, 10, p)
}

func unpackT1(p []byte, pol ring.Poly) {
	unpackBits(p, 10, pol.Coeffs)
}

// packT0 serializes the low bits of t at 13 bits per coefficient, mapping
// the centered value r0 in (-2^12, 2^12] to the field 2^12 - r0.
func packT0(pol ring.Poly, p []byte) {
	fields := make([]uint64, DegreeN)
	for i, c := range pol.Coeffs {
		fields[i] = uint64(int64(1)<<(DroppedBits-1) - centered(c))
	}
	packBits(fields, DroppedBits, p)
}

func unpackT0(p []byte, pol ring.Poly) {
	unpackBits(p, DroppedBits, pol.Coeffs)
	for i, f := range pol.Coeffs {
		pol.Coeffs[i] = fromCentered(int64(1)<<(DroppedBits-1) - int64(f))
	}
}

// packEta serializes a secret polynomial with coefficients in [-eta, eta]
// at 3 (eta = 2) or 4 (eta = 4) bits per coefficient.
func packEta(pol ring.Poly, eta, width int, p []byte) {
	fields := make([]uint64, DegreeN)
	for i, c := range pol.Coeffs {
		fields[i] = uint64(int64(eta) - centered(c))
	}
	packBits(fields, width, p)
}

// unpackEta rejects any field outside [0, 2*eta].
func unpackEta(p []byte, eta, width int, pol ring.Poly) bool {
	unpackBits(p, width, pol.Coeffs)
	for i, f := range pol.Coeffs {
		if f > uint64(2*eta) {
			return false
		}
		pol.Coeffs[i] = fromCentered(int64(eta) - int64(f))
	}
	return true
}

// packZ serializes a response polynomial with centered coefficients in
// (-gamma1, gamma1] as the field gamma1 - z at gamma1Bits+1 bits.
func packZ(pol ring.Poly, gamma1Bits int, p []byte) {
	gamma1 := int64(1) << gamma1Bits
	fields := make([]uint64, DegreeN)
	for i, c := range pol.Coeffs {
		fields[i] = uint64(gamma1 - centered(c))
	}
	packBits(fields, gamma1Bits+1, p)
}

func unpackZ(p []byte, gamma1Bits int, pol ring.Poly) {
	gamma1 := int64(1) << gamma1Bits
	unpackBits(p, gamma1Bits+1, pol.Coeffs)
	for i, f := range pol.Coeffs {
		pol.Coeffs[i] = fromCentered(gamma1 - int64(f))
	}
}

// packW1 serializes commitment high bits at 6 (gamma2 = (q-1)/88) or
// 4 (gamma2 = (q-1)/32) bits per coefficient.
func packW1(pol ring.Poly, width int, p []byte) {
	packBits(pol.Coeffs, width, p)
}

// packHint serializes a hint vector to omega + k bytes: the positions of
// the set coefficients in order, then the running count after each
// polynomial.
func packHint(h structs.Vector[ring.Poly], omega int, p []byte) {
	var idx int
	for i := range h {
		for j, c := range h[i].Coeffs {
			if c != 0 {
				p[idx] = byte(j)
				idx++
			}
		}
		p[omega+i] = byte(idx)
	}
}

// unpackHint rejects decreasing position counts, counts above omega,
// non-increasing positions within a polynomial, and nonzero slack bytes.
func unpackHint(p []byte, k, omega int, h structs.Vector[ring.Poly]) bool {
	var idx int
	for i := 0; i < k; i++ {
		limit := int(p[omega+i])
		if limit < idx || limit > omega {
			return false
		}
		first := idx
		for idx < limit {
			if idx > first && p[idx-1] >= p[idx] {
				return false
			}
			h[i].Coeffs[p[idx]] = 1
			idx++
		}
	}
	for idx < omega {
		if p[idx] != 0 {
			return false
		}
		idx++
	}
	return true
}
