package ring

import (
	"encoding/binary"
	"fmt"
	"math/big"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Enkom-Tech/libQ-sub001/utils/sampling"
)

func testString(opname string, ringQ *Ring) string {
	return fmt.Sprintf("%s/N=%d", opname, ringQ.N())
}

// randomPoly fills a new polynomial with uniform canonical coefficients
// drawn from the PRNG.
func randomPoly(prng sampling.PRNG, r *Ring) Poly {
	pol := r.NewPoly()
	buf := make([]byte, 8)
	for i := range pol.Coeffs {
		if _, err := prng.Read(buf); err != nil {
			panic(err)
		}
		pol.Coeffs[i] = BRedAdd(binary.LittleEndian.Uint64(buf), r.Modulus, r.BRedConstant)
	}
	return pol
}

func TestNewRing(t *testing.T) {

	for _, n := range []int{0, 3, 8, 24, 512} {
		_, err := NewRing(n)
		require.Error(t, err, "degree %d", n)
	}

	for _, n := range []int{16, 64, 256} {
		r, err := NewRing(n)
		require.NoError(t, err)
		require.Equal(t, n, r.N())
		require.Equal(t, Modulus, r.Modulus)
	}
}

func TestModularReduction(t *testing.T) {

	prng, err := sampling.NewKeyedPRNG([]byte{'r', 'i', 'n', 'g'})
	require.NoError(t, err)

	q := Modulus
	bigQ := new(big.Int).SetUint64(q)
	mredConstant := MRedConstant(q)
	bredConstant := BRedConstant(q)

	buf := make([]byte, 16)
	for trial := 0; trial < 1024; trial++ {

		prng.Read(buf)
		c := binary.LittleEndian.Uint64(buf[:8])
		a := c % q
		b := binary.LittleEndian.Uint64(buf[8:]) % q

		want := new(big.Int).SetUint64(a)
		want.Mul(want, new(big.Int).SetUint64(b)).Mod(want, bigQ)

		require.Equal(t, want.Uint64(), BRed(a, b, q, bredConstant))
		require.Equal(t, want.Uint64(), MRed(a, MForm(b, q, bredConstant), q, mredConstant))
		require.Equal(t, c%q, BRedAdd(c, q, bredConstant))
		require.Equal(t, a, IMForm(MForm(a, q, bredConstant), q, mredConstant))
		require.Equal(t, (a+b)%q, CRed(a+b, q))
	}
}

func TestRing(t *testing.T) {

	standard, err := NewRingWithCustomNTT(256, NewNumberTheoreticTransformerStandard)
	require.NoError(t, err)

	unrolled, err := NewRingWithCustomNTT(256, NewNumberTheoreticTransformerUnrolled)
	require.NoError(t, err)

	prng, err := sampling.NewKeyedPRNG([]byte{'n', 't', 't'})
	require.NoError(t, err)

	for _, ringQ := range []*Ring{standard, unrolled} {
		testNTTRoundTrip(ringQ, prng, t)
		testMulCoeffs(ringQ, prng, t)
		testOperations(ringQ, prng, t)
	}

	testBackendEquivalence(standard, unrolled, prng, t)
}

func testNTTRoundTrip(ringQ *Ring, prng sampling.PRNG, t *testing.T) {
	t.Run(testString("NTT/RoundTrip", ringQ), func(t *testing.T) {
		for trial := 0; trial < 32; trial++ {
			p := randomPoly(prng, ringQ)
			pHat := ringQ.NewPoly()
			pBack := ringQ.NewPoly()
			ringQ.NTT(p, pHat)
			ringQ.INTT(pHat, pBack)
			require.True(t, p.Equal(&pBack))
		}
	})
}

// testMulCoeffs checks the transform-domain pointwise product against the
// schoolbook negacyclic convolution.
func testMulCoeffs(ringQ *Ring, prng sampling.PRNG, t *testing.T) {
	t.Run(testString("NTT/MulCoeffs", ringQ), func(t *testing.T) {

		n := ringQ.N()
		bigQ := new(big.Int).SetUint64(ringQ.Modulus)

		p1 := randomPoly(prng, ringQ)
		p2 := randomPoly(prng, ringQ)

		want := make([]*big.Int, 2*n)
		for i := range want {
			want[i] = new(big.Int)
		}
		for i := 0; i < n; i++ {
			x := new(big.Int).SetUint64(p1.Coeffs[i])
			for j := 0; j < n; j++ {
				y := new(big.Int).SetUint64(p2.Coeffs[j])
				want[i+j].Add(want[i+j], new(big.Int).Mul(x, y))
			}
		}

		p1Hat := ringQ.NewPoly()
		p2Hat := ringQ.NewPoly()
		p3 := ringQ.NewPoly()
		ringQ.NTT(p1, p1Hat)
		ringQ.NTT(p2, p2Hat)
		ringQ.MulCoeffs(p1Hat, p2Hat, p3)
		ringQ.INTT(p3, p3)

		for i := 0; i < n; i++ {
			ref := new(big.Int).Sub(want[i], want[i+n])
			ref.Mod(ref, bigQ)
			require.Equal(t, ref.Uint64(), p3.Coeffs[i], "coefficient %d", i)
		}
	})
}

func testOperations(ringQ *Ring, prng sampling.PRNG, t *testing.T) {

	q := ringQ.Modulus

	t.Run(testString("Operations/AddSubNeg", ringQ), func(t *testing.T) {

		p1 := randomPoly(prng, ringQ)
		p2 := randomPoly(prng, ringQ)
		p3 := ringQ.NewPoly()

		ringQ.Add(p1, p2, p3)
		for i := range p3.Coeffs {
			require.Equal(t, (p1.Coeffs[i]+p2.Coeffs[i])%q, p3.Coeffs[i])
		}

		ringQ.Sub(p1, p2, p3)
		for i := range p3.Coeffs {
			require.Equal(t, (p1.Coeffs[i]+q-p2.Coeffs[i])%q, p3.Coeffs[i])
		}

		ringQ.Neg(p1, p3)
		ringQ.Add(p1, p3, p3)
		for i := range p3.Coeffs {
			require.Equal(t, uint64(0), p3.Coeffs[i])
		}
	})

	t.Run(testString("Operations/MulScalar", ringQ), func(t *testing.T) {

		scalar := uint64(12345)
		bigQ := new(big.Int).SetUint64(q)

		p1 := randomPoly(prng, ringQ)
		p2 := ringQ.NewPoly()
		ringQ.MulScalar(p1, scalar, p2)

		for i := range p2.Coeffs {
			want := new(big.Int).SetUint64(p1.Coeffs[i])
			want.Mul(want, new(big.Int).SetUint64(scalar)).Mod(want, bigQ)
			require.Equal(t, want.Uint64(), p2.Coeffs[i])
		}
	})

	t.Run(testString("Operations/Reduce", ringQ), func(t *testing.T) {

		p1 := ringQ.NewPoly()
		buf := make([]byte, 8)
		for i := range p1.Coeffs {
			prng.Read(buf)
			p1.Coeffs[i] = binary.LittleEndian.Uint64(buf)
		}
		p2 := ringQ.NewPoly()
		ringQ.Reduce(p1, p2)
		for i := range p2.Coeffs {
			require.Equal(t, p1.Coeffs[i]%q, p2.Coeffs[i])
		}
	})
}

// testBackendEquivalence checks that the portable and the unrolled
// transformers produce identical coefficients on identical inputs.
func testBackendEquivalence(standard, unrolled *Ring, prng sampling.PRNG, t *testing.T) {
	t.Run(testString("NTT/BackendEquivalence", standard), func(t *testing.T) {

		for trial := 0; trial < 128; trial++ {

			p := randomPoly(prng, standard)
			pCopy := p.CopyNew()

			fwdStd := standard.NewPoly()
			fwdUnr := unrolled.NewPoly()
			standard.NTT(p, fwdStd)
			unrolled.NTT(*pCopy, fwdUnr)
			require.Equal(t, fwdStd.Coeffs, fwdUnr.Coeffs)

			bwdStd := standard.NewPoly()
			bwdUnr := unrolled.NewPoly()
			standard.INTT(fwdStd, bwdStd)
			unrolled.INTT(fwdUnr, bwdUnr)
			require.Equal(t, bwdStd.Coeffs, bwdUnr.Coeffs)
		}
	})
}
