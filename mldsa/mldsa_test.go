package mldsa

import (
	"crypto"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Enkom-Tech/libQ-sub001/utils/sampling"
)

var testParameters = []Parameters{MLDSA44, MLDSA65, MLDSA87}

func testString(opname string, p Parameters) string {
	return fmt.Sprintf("%s/%s", opname, p)
}

func testPRNG(t *testing.T, key string) sampling.PRNG {
	prng, err := sampling.NewKeyedPRNG([]byte(key))
	require.NoError(t, err)
	return prng
}

func TestParameters(t *testing.T) {

	sizes := map[string][3]int{
		"ML-DSA-44": {1312, 2560, 2420},
		"ML-DSA-65": {1952, 4032, 3309},
		"ML-DSA-87": {2592, 4896, 4627},
	}

	for _, p := range testParameters {
		t.Run(testString("Sizes", p), func(t *testing.T) {
			want := sizes[p.String()]
			require.Equal(t, want[0], p.PublicKeySize())
			require.Equal(t, want[1], p.PrivateKeySize())
			require.Equal(t, want[2], p.SignatureSize())
		})

		t.Run(testString("ExpectedAttempts", p), func(t *testing.T) {
			attempts, _ := p.ExpectedAttempts().Float64()
			require.Greater(t, attempts, 3.0)
			require.Less(t, attempts, 6.0)
			require.Less(t, attempts, float64(maxSigningAttempts))
		})
	}

	t.Run("InvalidLiterals", func(t *testing.T) {
		_, err := NewParametersFromLiteral(ParametersLiteral{K: 0, L: 4, Eta: 2, Tau: 39, Omega: 80, Gamma1Bits: 17, Gamma2: 95232, Lambda: 128})
		require.Error(t, err)
		_, err = NewParametersFromLiteral(ParametersLiteral{K: 4, L: 4, Eta: 3, Tau: 39, Omega: 80, Gamma1Bits: 17, Gamma2: 95232, Lambda: 128})
		require.Error(t, err)
		_, err = NewParametersFromLiteral(ParametersLiteral{K: 4, L: 4, Eta: 2, Tau: 39, Omega: 80, Gamma1Bits: 18, Gamma2: 95232, Lambda: 128})
		require.Error(t, err)
		_, err = NewParametersFromLiteral(ParametersLiteral{K: 4, L: 4, Eta: 2, Tau: 39, Omega: 80, Gamma1Bits: 17, Gamma2: 95231, Lambda: 128})
		require.Error(t, err)
	})
}

func TestKeyGeneration(t *testing.T) {

	for _, p := range testParameters {

		t.Run(testString("KeyGen/FromSeed", p), func(t *testing.T) {

			var seed [SeedSize]byte
			copy(seed[:], "mldsa key generation seed test..")

			sk1, err := NewKeyFromSeed(p, seed)
			require.NoError(t, err)
			sk2, err := NewKeyFromSeed(p, seed)
			require.NoError(t, err)

			require.True(t, sk1.Equal(sk2))
			require.True(t, sk1.PublicKey().Equal(sk2.PublicKey()))
			require.Equal(t, sk1.Bytes(), sk2.Bytes())

			got, ok := sk1.Seed()
			require.True(t, ok)
			require.Equal(t, seed, got)
		})

		t.Run(testString("KeyGen/Reproducible", p), func(t *testing.T) {
			sk1, err := GenerateKey(p, testPRNG(t, "keygen"))
			require.NoError(t, err)
			sk2, err := GenerateKey(p, testPRNG(t, "keygen"))
			require.NoError(t, err)
			require.True(t, sk1.Equal(sk2))

			sk3, err := GenerateKey(p, testPRNG(t, "keygen-other"))
			require.NoError(t, err)
			require.False(t, sk1.Equal(sk3))
		})

		t.Run(testString("KeyGen/EncodeDecode", p), func(t *testing.T) {

			sk, err := GenerateKey(p, testPRNG(t, "encode"))
			require.NoError(t, err)
			pk := sk.PublicKey()

			pkDec, err := NewPublicKey(p, pk.Bytes())
			require.NoError(t, err)
			require.True(t, pk.Equal(pkDec))

			skDec, err := NewPrivateKey(p, sk.Bytes())
			require.NoError(t, err)
			require.True(t, sk.Equal(skDec))
			require.True(t, pk.Equal(skDec.PublicKey()))

			_, err = NewPublicKey(p, pk.Bytes()[:len(pk.Bytes())-1])
			require.ErrorIs(t, err, ErrInvalidKeyEncoding)
			_, err = NewPrivateKey(p, append(sk.Bytes(), 0))
			require.ErrorIs(t, err, ErrInvalidKeyEncoding)
		})

		t.Run(testString("KeyGen/Marshal", p), func(t *testing.T) {

			sk, err := GenerateKey(p, testPRNG(t, "marshal"))
			require.NoError(t, err)

			data, err := sk.PublicKey().MarshalBinary()
			require.NoError(t, err)
			pk := new(PublicKey)
			require.NoError(t, pk.UnmarshalBinary(data))
			require.True(t, pk.Equal(sk.PublicKey()))
			require.True(t, p.Equal(&pk.params))

			data, err = sk.MarshalBinary()
			require.NoError(t, err)
			skDec := new(PrivateKey)
			require.NoError(t, skDec.UnmarshalBinary(data))
			require.True(t, sk.Equal(skDec))
		})
	}
}

func TestSignVerify(t *testing.T) {

	for _, p := range testParameters {

		sk, err := GenerateKey(p, testPRNG(t, "signverify"))
		require.NoError(t, err)
		pk := sk.PublicKey()

		t.Run(testString("Sign/RoundTrip", p), func(t *testing.T) {

			msg := []byte("attack at dawn")

			for _, ctx := range [][]byte{nil, []byte("protocol v2")} {
				sig, err := Sign(sk, msg, ctx, testPRNG(t, "hedge"))
				require.NoError(t, err)
				require.Len(t, sig, p.SignatureSize())
				require.True(t, Verify(pk, msg, ctx, sig))
			}
		})

		t.Run(testString("Sign/Deterministic", p), func(t *testing.T) {

			msg := []byte("deterministic variant")

			sig1, err := SignDeterministic(sk, msg, nil)
			require.NoError(t, err)
			sig2, err := SignDeterministic(sk, msg, nil)
			require.NoError(t, err)
			require.Equal(t, sig1, sig2)
			require.True(t, Verify(pk, msg, nil, sig1))
		})

		t.Run(testString("Sign/HedgedDeterminism", p), func(t *testing.T) {

			msg := []byte("same randomness, same signature")

			sig1, err := Sign(sk, msg, nil, testPRNG(t, "fixed"))
			require.NoError(t, err)
			sig2, err := Sign(sk, msg, nil, testPRNG(t, "fixed"))
			require.NoError(t, err)
			require.Equal(t, sig1, sig2)

			sig3, err := Sign(sk, msg, nil, testPRNG(t, "fresh"))
			require.NoError(t, err)
			require.NotEqual(t, sig1, sig3)
			require.True(t, Verify(pk, msg, nil, sig3))
		})

		t.Run(testString("Sign/ContextBinding", p), func(t *testing.T) {

			msg := []byte("bound to a context")

			sig, err := SignDeterministic(sk, msg, []byte("ctx-a"))
			require.NoError(t, err)
			require.True(t, Verify(pk, msg, []byte("ctx-a"), sig))
			require.False(t, Verify(pk, msg, []byte("ctx-b"), sig))
			require.False(t, Verify(pk, msg, nil, sig))

			tooLong := make([]byte, MaxContextSize+1)
			_, err = SignDeterministic(sk, msg, tooLong)
			require.ErrorIs(t, err, ErrContextTooLong)
			require.False(t, Verify(pk, msg, tooLong, sig))
		})

		t.Run(testString("Sign/SignTo", p), func(t *testing.T) {

			msg := []byte("caller-owned buffer")

			sig := make([]byte, p.SignatureSize())
			require.NoError(t, SignTo(sk, msg, nil, [32]byte{}, sig))
			require.True(t, Verify(pk, msg, nil, sig))

			want, err := SignDeterministic(sk, msg, nil)
			require.NoError(t, err)
			require.Equal(t, want, sig)

			err = SignTo(sk, msg, nil, [32]byte{}, make([]byte, p.SignatureSize()-1))
			require.ErrorIs(t, err, ErrInvalidSignatureEncoding)
		})

		t.Run(testString("Sign/CryptoSigner", p), func(t *testing.T) {

			msg := []byte("crypto.Signer bridge")

			pub, ok := sk.Public().(*PublicKey)
			require.True(t, ok)
			require.True(t, pub.Equal(pk))

			sig, err := sk.Sign(testPRNG(t, "signer"), msg, crypto.Hash(0))
			require.NoError(t, err)
			require.True(t, Verify(pk, msg, nil, sig))

			_, err = sk.Sign(testPRNG(t, "signer"), msg, crypto.SHA256)
			require.Error(t, err)
		})

		t.Run(testString("Verify/FromBytes", p), func(t *testing.T) {

			msg := []byte("raw encoded inputs")

			sig, err := SignDeterministic(sk, msg, nil)
			require.NoError(t, err)

			ok, err := VerifyFrom(p, pk.Bytes(), msg, nil, sig)
			require.NoError(t, err)
			require.True(t, ok)

			ok, err = VerifyFrom(p, pk.Bytes(), []byte("other message"), nil, sig)
			require.NoError(t, err)
			require.False(t, ok)

			_, err = VerifyFrom(p, pk.Bytes()[:16], msg, nil, sig)
			require.ErrorIs(t, err, ErrInvalidKeyEncoding)
		})
	}
}

func TestTamperSensitivity(t *testing.T) {

	for _, p := range testParameters {

		sk, err := GenerateKey(p, testPRNG(t, "tamper"))
		require.NoError(t, err)
		pk := sk.PublicKey()

		msg := []byte("tamper sensitivity trials")
		sig, err := SignDeterministic(sk, msg, nil)
		require.NoError(t, err)

		prng := testPRNG(t, "tamper-offsets")
		randByte := func(n int) int {
			var b [2]byte
			prng.Read(b[:])
			return (int(b[0]) | int(b[1])<<8) % n
		}

		t.Run(testString("Tamper/Signature", p), func(t *testing.T) {
			for trial := 0; trial < 32; trial++ {
				mangled := make([]byte, len(sig))
				copy(mangled, sig)
				mangled[randByte(len(mangled))] ^= 1 << randByte(8)
				require.False(t, Verify(pk, msg, nil, mangled))
			}
		})

		t.Run(testString("Tamper/Message", p), func(t *testing.T) {
			for trial := 0; trial < 32; trial++ {
				mangled := make([]byte, len(msg))
				copy(mangled, msg)
				mangled[randByte(len(mangled))] ^= 1 << randByte(8)
				require.False(t, Verify(pk, mangled, nil, sig))
			}
		})

		t.Run(testString("Tamper/PublicKey", p), func(t *testing.T) {
			for trial := 0; trial < 16; trial++ {
				mangled := pk.Bytes()
				mangled[randByte(len(mangled))] ^= 1 << randByte(8)
				pkDec, err := NewPublicKey(p, mangled)
				if err != nil {
					continue
				}
				require.False(t, Verify(pkDec, msg, nil, sig))
			}
		})

		t.Run(testString("Tamper/TruncatedSignature", p), func(t *testing.T) {
			require.False(t, Verify(pk, msg, nil, sig[:len(sig)-1]))
			require.False(t, Verify(pk, msg, nil, nil))
		})
	}
}

func TestSignatureInvariants(t *testing.T) {

	for _, p := range testParameters {

		sk, err := GenerateKey(p, testPRNG(t, "invariants"))
		require.NoError(t, err)

		t.Run(testString("Invariants/Bounds", p), func(t *testing.T) {

			for trial := 0; trial < 8; trial++ {

				msg := []byte(fmt.Sprintf("bound invariants %d", trial))
				sig, err := SignDeterministic(sk, msg, nil)
				require.NoError(t, err)

				// Response coefficients stay strictly below gamma1 - beta.
				zPolySize := DegreeN * p.zBits() / 8
				z := newPolyVector(p.l)
				for i := range z {
					unpackZ(sig[p.lambda/4+i*zPolySize:], p.gamma1Bits, z[i])
				}
				require.False(t, normExceeds(z, p.Gamma1()-p.Beta()))

				// Hint weight stays at or below omega.
				h := newPolyVector(p.k)
				hintEnc := sig[p.lambda/4+p.l*zPolySize:]
				require.True(t, unpackHint(hintEnc, p.k, p.omega, h))
				var weight uint64
				for i := range h {
					for _, c := range h[i].Coeffs {
						weight += c
					}
				}
				require.LessOrEqual(t, weight, uint64(p.omega))
			}
		})
	}
}

func TestHintEncodingStrictness(t *testing.T) {

	p := MLDSA44

	sk, err := GenerateKey(p, testPRNG(t, "hints"))
	require.NoError(t, err)
	pk := sk.PublicKey()

	msg := []byte("strict hint decoding")
	sig, err := SignDeterministic(sk, msg, nil)
	require.NoError(t, err)

	hintOff := p.SignatureSize() - p.omega - p.k

	t.Run("NonzeroSlack", func(t *testing.T) {
		mangled := make([]byte, len(sig))
		copy(mangled, sig)
		// The count byte of the last polynomial is the total weight; any
		// hint byte past it is slack and must be zero.
		weight := int(mangled[len(mangled)-1])
		if weight < p.omega {
			mangled[hintOff+p.omega-1] = 0xFF
			require.False(t, Verify(pk, msg, nil, mangled))
		}
	})

	t.Run("CountAboveOmega", func(t *testing.T) {
		mangled := make([]byte, len(sig))
		copy(mangled, sig)
		mangled[len(mangled)-1] = byte(p.omega) + 1
		require.False(t, Verify(pk, msg, nil, mangled))
	})

	t.Run("InflatedCount", func(t *testing.T) {
		mangled := make([]byte, len(sig))
		copy(mangled, sig)
		mangled[hintOff+p.omega] = byte(p.omega)
		require.False(t, Verify(pk, msg, nil, mangled))
	})
}

func TestRandomnessFailure(t *testing.T) {

	p := MLDSA44

	sk, err := GenerateKey(p, testPRNG(t, "entropy"))
	require.NoError(t, err)

	_, err = GenerateKey(p, failingReader{})
	require.ErrorIs(t, err, ErrRandomnessUnavailable)

	_, err = Sign(sk, []byte("msg"), nil, failingReader{})
	require.ErrorIs(t, err, ErrRandomnessUnavailable)
}

type failingReader struct{}

func (failingReader) Read(p []byte) (int, error) {
	return 0, errors.New("entropy source closed")
}
