package mldsa

import (
	"crypto"
	"fmt"
	"io"

	"golang.org/x/crypto/sha3"

	"github.com/Enkom-Tech/libQ-sub001/utils/sampling"
)

// maxSigningAttempts caps the rejection loop. The expected number of
// iterations is below 5.1 for every parameter set, so reaching the ceiling
// indicates a broken hash or entropy source.
const maxSigningAttempts = 1024

// Sign produces a hedged signature over message bound to the
// domain-separation context ctx (at most 255 bytes, may be empty). The
// 32-byte hedging randomness is read from rng; a nil rng falls back to the
// process-wide cryptographic source.
func Sign(sk *PrivateKey, message, ctx []byte, rng io.Reader) ([]byte, error) {

	if rng == nil {
		prng, err := sampling.NewPRNG()
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrRandomnessUnavailable, err)
		}
		rng = prng
	}

	var rnd [32]byte
	if _, err := io.ReadFull(rng, rnd[:]); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrRandomnessUnavailable, err)
	}
	defer wipeBytes(rnd[:])

	sig := make([]byte, sk.pub.params.SignatureSize())
	if err := SignTo(sk, message, ctx, rnd, sig); err != nil {
		return nil, err
	}
	return sig, nil
}

// SignDeterministic produces the deterministic-variant signature over
// message and ctx: the hedging randomness is the all-zero string, so
// identical inputs yield byte-identical signatures and no randomness source
// is consulted.
func SignDeterministic(sk *PrivateKey, message, ctx []byte) ([]byte, error) {
	sig := make([]byte, sk.pub.params.SignatureSize())
	if err := SignTo(sk, message, ctx, [32]byte{}, sig); err != nil {
		return nil, err
	}
	return sig, nil
}

// SignTo signs message bound to ctx with the given hedging randomness,
// writing the signature into sig, which must be exactly
// Parameters.SignatureSize() bytes. It allocates only loop scratch.
func SignTo(sk *PrivateKey, message, ctx []byte, rnd [32]byte, sig []byte) error {

	p := sk.pub.params

	if len(ctx) > MaxContextSize {
		return ErrContextTooLong
	}
	if len(sig) != p.SignatureSize() {
		return fmt.Errorf("%w: output buffer is %d bytes, want %d", ErrInvalidSignatureEncoding, len(sig), p.SignatureSize())
	}

	var mu [TRSize]byte
	messageDigest(sk.tr[:], ctx, message, mu[:])

	return sk.signInternal(mu[:], rnd, sig)
}

// Sign implements [crypto.Signer]. The message is signed directly (opts
// must carry crypto.Hash(0)) with an empty domain-separation context.
func (sk *PrivateKey) Sign(rand io.Reader, message []byte, opts crypto.SignerOpts) ([]byte, error) {
	if opts != nil && opts.HashFunc() != crypto.Hash(0) {
		return nil, fmt.Errorf("mldsa: the message must be signed directly, not pre-hashed")
	}
	return Sign(sk, message, nil, rand)
}

// messageDigest derives mu = SHAKE256(tr || 0x00 || len(ctx) || ctx || message, 64).
func messageDigest(tr, ctx, message, mu []byte) {
	xof := sha3.NewShake256()
	xof.Write(tr)
	xof.Write([]byte{0, byte(len(ctx))})
	xof.Write(ctx)
	xof.Write(message)
	xof.Read(mu)
}

// signInternal runs the rejection loop over the message digest mu.
func (sk *PrivateKey) signInternal(mu []byte, rnd [32]byte, sig []byte) error {

	p := sk.pub.params
	ringQ := p.ringQ

	// rhoPrime = SHAKE256(key || rnd || mu, 64) seeds every mask expansion.
	var rhoPrime [64]byte
	xof := sha3.NewShake256()
	xof.Write(sk.key[:])
	xof.Write(rnd[:])
	xof.Write(mu)
	xof.Read(rhoPrime[:])
	defer wipeBytes(rhoPrime[:])

	y := newPolyVector(p.l)
	yHat := newPolyVector(p.l)
	z := newPolyVector(p.l)
	w := newPolyVector(p.k)
	w1 := newPolyVector(p.k)
	wcs2 := newPolyVector(p.k)
	ct0 := newPolyVector(p.k)
	h := newPolyVector(p.k)
	defer wipePolyVector(y)
	defer wipePolyVector(yHat)
	defer wipePolyVector(z)
	defer wipePolyVector(wcs2)
	defer wipePolyVector(ct0)

	acc := ringQ.NewPoly()
	cs := ringQ.NewPoly()
	c := ringQ.NewPoly()
	cHat := ringQ.NewPoly()
	defer wipePoly(cs)

	cTilde := make([]byte, p.lambda/4)
	w1Enc := make([]byte, p.k*DegreeN*p.w1Bits()/8)
	w1PolySize := DegreeN * p.w1Bits() / 8

	gamma1Bound := p.Gamma1() - p.Beta()
	lowBound := p.gamma2 - p.Beta()

	var kappa int
	for attempt := 0; attempt < maxSigningAttempts; attempt++ {

		for i := 0; i < p.l; i++ {
			sampleMaskPoly(rhoPrime[:], p.gamma1Bits, uint16(kappa+i), y[i])
			ringQ.NTT(y[i], yHat[i])
		}
		kappa += p.l

		// w = InvNTT(A o NTT(y)), w1 its high bits.
		for i := 0; i < p.k; i++ {
			acc.Zero()
			for j := 0; j < p.l; j++ {
				ringQ.MulCoeffsThenAdd(sk.pub.aHat[i][j], yHat[j], acc)
			}
			ringQ.INTT(acc, w[i])
			for n, cc := range w[i].Coeffs {
				w1[i].Coeffs[n] = highBits(cc, p.gamma2)
			}
			packW1(w1[i], p.w1Bits(), w1Enc[i*w1PolySize:])
		}

		chash := sha3.NewShake256()
		chash.Write(mu)
		chash.Write(w1Enc)
		chash.Read(cTilde)

		if !sampleChallengePoly(cTilde, p.tau, c) {
			return fmt.Errorf("%w: challenge sampler draw ceiling exceeded", ErrSigningInternalFailure)
		}
		ringQ.NTT(c, cHat)

		// z = y + c*s1, rejected unless ||z|| < gamma1 - beta.
		for i := 0; i < p.l; i++ {
			ringQ.MulCoeffs(cHat, sk.s1Hat[i], acc)
			ringQ.INTT(acc, cs)
			ringQ.Add(y[i], cs, z[i])
		}
		if normExceeds(z, gamma1Bound) {
			continue
		}

		// Low bits of w - c*s2 rejected unless below gamma2 - beta.
		lowBitsOK := true
		for i := 0; i < p.k; i++ {
			ringQ.MulCoeffs(cHat, sk.s2Hat[i], acc)
			ringQ.INTT(acc, cs)
			ringQ.Sub(w[i], cs, wcs2[i])
			for _, cc := range wcs2[i].Coeffs {
				if _, r0 := decompose(cc, p.gamma2); r0 >= int64(lowBound) || -r0 >= int64(lowBound) {
					lowBitsOK = false
					break
				}
			}
			if !lowBitsOK {
				break
			}
		}
		if !lowBitsOK {
			continue
		}

		// c*t0 rejected unless below gamma2.
		for i := 0; i < p.k; i++ {
			ringQ.MulCoeffs(cHat, sk.t0Hat[i], acc)
			ringQ.INTT(acc, ct0[i])
		}
		if normExceeds(ct0, p.gamma2) {
			continue
		}

		// Hints flag the coefficients whose high bits move when c*t0 is
		// added back; total weight capped by omega.
		var weight int
		for i := 0; i < p.k; i++ {
			for n := range h[i].Coeffs {
				bit := makeHint(ct0[i].Coeffs[n], wcs2[i].Coeffs[n], p.gamma2)
				h[i].Coeffs[n] = bit
				weight += int(bit)
			}
		}
		if weight > p.omega {
			continue
		}

		copy(sig, cTilde)
		zPolySize := DegreeN * p.zBits() / 8
		for i := 0; i < p.l; i++ {
			packZ(z[i], p.gamma1Bits, sig[p.lambda/4+i*zPolySize:])
		}
		packHint(h, p.omega, sig[p.lambda/4+p.l*zPolySize:])
		return nil
	}

	return fmt.Errorf("%w: retry ceiling of %d attempts exceeded", ErrSigningInternalFailure, maxSigningAttempts)
}
