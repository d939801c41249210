package mldsa

import (
	"bytes"

	"golang.org/x/crypto/sha3"
)

// Verify reports whether sig is a valid signature over message bound to the
// domain-separation context ctx. Malformed signatures, including any
// out-of-bound field or hint-layout violation, yield false; Verify never
// returns an error.
func Verify(pk *PublicKey, message, ctx, sig []byte) bool {

	p := pk.params
	ringQ := p.ringQ

	if len(ctx) > MaxContextSize || len(sig) != p.SignatureSize() {
		return false
	}

	cTilde := sig[:p.lambda/4]
	zPolySize := DegreeN * p.zBits() / 8

	z := newPolyVector(p.l)
	for i := range z {
		unpackZ(sig[p.lambda/4+i*zPolySize:], p.gamma1Bits, z[i])
	}
	if normExceeds(z, p.Gamma1()-p.Beta()) {
		return false
	}

	h := newPolyVector(p.k)
	if !unpackHint(sig[p.lambda/4+p.l*zPolySize:], p.k, p.omega, h) {
		return false
	}

	c := ringQ.NewPoly()
	if !sampleChallengePoly(cTilde, p.tau, c) {
		return false
	}
	cHat := ringQ.NewPoly()
	ringQ.NTT(c, cHat)

	zHat := nttVector(ringQ, z)

	var mu [TRSize]byte
	messageDigest(pk.tr[:], ctx, message, mu[:])

	// w1' = UseHint(h, A o NTT(z) - NTT(c) o NTT(t1 * 2^d)).
	w1PolySize := DegreeN * p.w1Bits() / 8
	w1Enc := make([]byte, p.k*w1PolySize)
	acc := ringQ.NewPoly()
	prod := ringQ.NewPoly()
	wApprox := ringQ.NewPoly()
	w1 := ringQ.NewPoly()
	for i := 0; i < p.k; i++ {
		acc.Zero()
		for j := 0; j < p.l; j++ {
			ringQ.MulCoeffsThenAdd(pk.aHat[i][j], zHat[j], acc)
		}
		ringQ.MulCoeffs(cHat, pk.t1Hat[i], prod)
		ringQ.Sub(acc, prod, acc)
		ringQ.INTT(acc, wApprox)
		for n, cc := range wApprox.Coeffs {
			w1.Coeffs[n] = useHint(h[i].Coeffs[n], cc, p.gamma2)
		}
		packW1(w1, p.w1Bits(), w1Enc[i*w1PolySize:])
	}

	check := make([]byte, p.lambda/4)
	xof := sha3.NewShake256()
	xof.Write(mu[:])
	xof.Write(w1Enc)
	xof.Read(check)

	return bytes.Equal(check, cTilde)
}

// VerifyFrom decodes a verification key from its standard byte layout and
// verifies sig against it. Key-decoding failures are errors; an invalid
// signature is (false, nil).
func VerifyFrom(p Parameters, publicKey, message, ctx, sig []byte) (bool, error) {
	pk, err := NewPublicKey(p, publicKey)
	if err != nil {
		return false, err
	}
	return Verify(pk, message, ctx, sig), nil
}
