package mldsa

import (
	"crypto"
	"crypto/subtle"
	"fmt"
	"io"

	"golang.org/x/crypto/sha3"

	"github.com/Enkom-Tech/libQ-sub001/ring"
	"github.com/Enkom-Tech/libQ-sub001/utils/sampling"
	"github.com/Enkom-Tech/libQ-sub001/utils/structs"
)

// PublicKey is an ML-DSA verification key. It is read-only after creation
// and safe for concurrent use.
type PublicKey struct {
	params Parameters

	rho [SeedSize]byte
	t1  structs.Vector[ring.Poly]

	// Derived at construction: the hash tr = SHAKE256(pk, 64), the expanded
	// matrix and the transform of t1 * 2^d consumed by verification.
	tr    [TRSize]byte
	aHat  structs.Matrix[ring.Poly]
	t1Hat structs.Vector[ring.Poly]

	packed []byte
}

// PrivateKey is an ML-DSA signing key. It is read-only after creation and
// safe for concurrent use. It implements [crypto.Signer].
type PrivateKey struct {
	pub *PublicKey

	key  [SeedSize]byte
	tr   [TRSize]byte
	seed *[SeedSize]byte

	s1, s2, t0 structs.Vector[ring.Poly]

	// Transform-domain copies consumed by the signing loop.
	s1Hat, s2Hat, t0Hat structs.Vector[ring.Poly]

	packed []byte
}

// GenerateKey generates a new key pair for the given parameter set, reading
// the 32-byte seed from rng. A nil rng falls back to the process-wide
// cryptographic source.
func GenerateKey(p Parameters, rng io.Reader) (*PrivateKey, error) {

	if rng == nil {
		prng, err := sampling.NewPRNG()
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrRandomnessUnavailable, err)
		}
		rng = prng
	}

	var seed [SeedSize]byte
	if _, err := io.ReadFull(rng, seed[:]); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrRandomnessUnavailable, err)
	}
	defer wipeBytes(seed[:])

	return NewKeyFromSeed(p, seed)
}

// NewKeyFromSeed deterministically expands the standard 32-byte seed into a
// key pair. The seed is retained by the returned key for compact storage.
func NewKeyFromSeed(p Parameters, seed [SeedSize]byte) (*PrivateKey, error) {

	ringQ := p.ringQ

	xof := sha3.NewShake256()
	xof.Write(seed[:])
	xof.Write([]byte{byte(p.k), byte(p.l)})

	var expanded [128]byte
	xof.Read(expanded[:])
	defer wipeBytes(expanded[:])

	rho := expanded[:32]
	rho1 := expanded[32:96]
	key := expanded[96:128]

	s1 := newPolyVector(p.l)
	s2 := newPolyVector(p.k)
	for i := range s1 {
		if !sampleBoundedPoly(rho1, p.eta, uint16(i), s1[i]) {
			return nil, fmt.Errorf("%w: bounded sampler draw ceiling exceeded", ErrSigningInternalFailure)
		}
	}
	for i := range s2 {
		if !sampleBoundedPoly(rho1, p.eta, uint16(p.l+i), s2[i]) {
			return nil, fmt.Errorf("%w: bounded sampler draw ceiling exceeded", ErrSigningInternalFailure)
		}
	}

	aHat, ok := expandMatrix(p, rho)
	if !ok {
		return nil, fmt.Errorf("%w: uniform sampler draw ceiling exceeded", ErrSigningInternalFailure)
	}

	s1Hat := nttVector(ringQ, s1)

	// t = InvNTT(A o NTT(s1)) + s2, split by power-of-two rounding.
	t1 := newPolyVector(p.k)
	t0 := newPolyVector(p.k)
	acc := ringQ.NewPoly()
	t := ringQ.NewPoly()
	defer wipePoly(acc)
	defer wipePoly(t)
	for i := 0; i < p.k; i++ {
		acc.Zero()
		for j := 0; j < p.l; j++ {
			ringQ.MulCoeffsThenAdd(aHat[i][j], s1Hat[j], acc)
		}
		ringQ.INTT(acc, t)
		ringQ.Add(t, s2[i], t)
		for n, c := range t.Coeffs {
			t1[i].Coeffs[n], t0[i].Coeffs[n] = power2Round(c)
		}
	}

	pub, err := newPublicKeyFromParts(p, rho, t1, aHat)
	if err != nil {
		return nil, err
	}

	sk := &PrivateKey{
		pub:   pub,
		tr:    pub.tr,
		seed:  new([SeedSize]byte),
		s1:    s1,
		s2:    s2,
		t0:    t0,
		s1Hat: s1Hat,
		s2Hat: nttVector(ringQ, s2),
		t0Hat: nttVector(ringQ, t0),
	}
	copy(sk.key[:], key)
	copy(sk.seed[:], seed[:])
	sk.packed = sk.encode()

	return sk, nil
}

// NewPublicKey decodes a verification key from its standard byte layout.
func NewPublicKey(p Parameters, data []byte) (*PublicKey, error) {

	if len(data) != p.PublicKeySize() {
		return nil, fmt.Errorf("%w: %d bytes, want %d", ErrInvalidKeyEncoding, len(data), p.PublicKeySize())
	}

	t1 := newPolyVector(p.k)
	for i := range t1 {
		unpackT1(data[SeedSize+i*t1PolySize:], t1[i])
	}

	aHat, ok := expandMatrix(p, data[:SeedSize])
	if !ok {
		return nil, fmt.Errorf("%w: uniform sampler draw ceiling exceeded", ErrSigningInternalFailure)
	}

	return newPublicKeyFromParts(p, data[:SeedSize], t1, aHat)
}

// NewPrivateKey decodes a signing key from its standard byte layout. The
// public half is recomputed from the encoded secrets.
func NewPrivateKey(p Parameters, data []byte) (*PrivateKey, error) {

	if len(data) != p.PrivateKeySize() {
		return nil, fmt.Errorf("%w: %d bytes, want %d", ErrInvalidKeyEncoding, len(data), p.PrivateKeySize())
	}

	ringQ := p.ringQ
	etaPolySize := DegreeN * p.etaBits() / 8

	rho := data[:SeedSize]
	off := SeedSize + SeedSize + TRSize

	s1 := newPolyVector(p.l)
	for i := range s1 {
		if !unpackEta(data[off:], p.eta, p.etaBits(), s1[i]) {
			return nil, fmt.Errorf("%w: secret coefficient out of range", ErrInvalidKeyEncoding)
		}
		off += etaPolySize
	}
	s2 := newPolyVector(p.k)
	for i := range s2 {
		if !unpackEta(data[off:], p.eta, p.etaBits(), s2[i]) {
			return nil, fmt.Errorf("%w: secret coefficient out of range", ErrInvalidKeyEncoding)
		}
		off += etaPolySize
	}
	t0 := newPolyVector(p.k)
	for i := range t0 {
		unpackT0(data[off:], t0[i])
		off += t0PolySize
	}

	aHat, ok := expandMatrix(p, rho)
	if !ok {
		return nil, fmt.Errorf("%w: uniform sampler draw ceiling exceeded", ErrSigningInternalFailure)
	}

	s1Hat := nttVector(ringQ, s1)

	// Rebuild the public half: t1 from the secrets, then the derived state.
	t1 := newPolyVector(p.k)
	acc := ringQ.NewPoly()
	t := ringQ.NewPoly()
	defer wipePoly(acc)
	defer wipePoly(t)
	for i := 0; i < p.k; i++ {
		acc.Zero()
		for j := 0; j < p.l; j++ {
			ringQ.MulCoeffsThenAdd(aHat[i][j], s1Hat[j], acc)
		}
		ringQ.INTT(acc, t)
		ringQ.Add(t, s2[i], t)
		for n, c := range t.Coeffs {
			t1[i].Coeffs[n], _ = power2Round(c)
		}
	}

	pub, err := newPublicKeyFromParts(p, rho, t1, aHat)
	if err != nil {
		return nil, err
	}

	sk := &PrivateKey{
		pub:   pub,
		s1:    s1,
		s2:    s2,
		t0:    t0,
		s1Hat: s1Hat,
		s2Hat: nttVector(ringQ, s2),
		t0Hat: nttVector(ringQ, t0),
	}
	copy(sk.key[:], data[SeedSize:2*SeedSize])
	copy(sk.tr[:], data[2*SeedSize:2*SeedSize+TRSize])
	sk.packed = make([]byte, len(data))
	copy(sk.packed, data)

	return sk, nil
}

const (
	t1PolySize = DegreeN * 10 / 8
	t0PolySize = DegreeN * DroppedBits / 8
)

func newPolyVector(n int) structs.Vector[ring.Poly] {
	v := make(structs.Vector[ring.Poly], n)
	for i := range v {
		v[i] = ring.NewPoly(DegreeN)
	}
	return v
}

func nttVector(ringQ *ring.Ring, v structs.Vector[ring.Poly]) structs.Vector[ring.Poly] {
	vHat := make(structs.Vector[ring.Poly], len(v))
	for i := range v {
		vHat[i] = ring.NewPoly(DegreeN)
		ringQ.NTT(v[i], vHat[i])
	}
	return vHat
}

// newPublicKeyFromParts assembles a PublicKey from rho and t1, deriving the
// packed layout, tr and the transform of t1 * 2^d.
func newPublicKeyFromParts(p Parameters, rho []byte, t1 structs.Vector[ring.Poly], aHat structs.Matrix[ring.Poly]) (*PublicKey, error) {

	ringQ := p.ringQ

	for i := range t1 {
		for _, c := range t1[i].Coeffs {
			if c >= 1<<10 {
				return nil, fmt.Errorf("%w: t1 coefficient out of range", ErrInvalidKeyEncoding)
			}
		}
	}

	pk := &PublicKey{
		params: p,
		t1:     t1,
		aHat:   aHat,
	}
	copy(pk.rho[:], rho)

	pk.packed = make([]byte, p.PublicKeySize())
	copy(pk.packed, rho)
	for i := range t1 {
		packT1(t1[i], pk.packed[SeedSize+i*t1PolySize:])
	}

	xof := sha3.NewShake256()
	xof.Write(pk.packed)
	xof.Read(pk.tr[:])

	pk.t1Hat = make(structs.Vector[ring.Poly], p.k)
	shifted := ringQ.NewPoly()
	for i := range t1 {
		for n, c := range t1[i].Coeffs {
			shifted.Coeffs[n] = c << DroppedBits
		}
		pk.t1Hat[i] = ring.NewPoly(DegreeN)
		ringQ.NTT(shifted, pk.t1Hat[i])
	}

	return pk, nil
}

// encode serializes the signing key into its standard byte layout.
func (sk *PrivateKey) encode() []byte {

	p := sk.pub.params
	etaPolySize := DegreeN * p.etaBits() / 8

	data := make([]byte, p.PrivateKeySize())
	copy(data, sk.pub.rho[:])
	copy(data[SeedSize:], sk.key[:])
	copy(data[2*SeedSize:], sk.tr[:])

	off := 2*SeedSize + TRSize
	for i := range sk.s1 {
		packEta(sk.s1[i], p.eta, p.etaBits(), data[off:])
		off += etaPolySize
	}
	for i := range sk.s2 {
		packEta(sk.s2[i], p.eta, p.etaBits(), data[off:])
		off += etaPolySize
	}
	for i := range sk.t0 {
		packT0(sk.t0[i], data[off:])
		off += t0PolySize
	}
	return data
}

// Parameters returns the parameter set of the key.
func (pk *PublicKey) Parameters() Parameters { return pk.params }

// Bytes returns the standard byte layout of the verification key.
func (pk *PublicKey) Bytes() []byte {
	data := make([]byte, len(pk.packed))
	copy(data, pk.packed)
	return data
}

// Equal checks equality with another verification key.
func (pk *PublicKey) Equal(other *PublicKey) bool {
	if other == nil {
		return false
	}
	return pk.params.Equal(&other.params) && string(pk.packed) == string(other.packed)
}

// MarshalBinary encodes the verification key into its standard byte layout.
func (pk *PublicKey) MarshalBinary() ([]byte, error) {
	return pk.Bytes(), nil
}

// UnmarshalBinary decodes a verification key, inferring the parameter set
// from the blob length.
func (pk *PublicKey) UnmarshalBinary(data []byte) error {
	p, ok := parametersForPublicKeySize(len(data))
	if !ok {
		return fmt.Errorf("%w: no parameter set with %d-byte verification keys", ErrInvalidKeyEncoding, len(data))
	}
	decoded, err := NewPublicKey(p, data)
	if err != nil {
		return err
	}
	*pk = *decoded
	return nil
}

// Parameters returns the parameter set of the key.
func (sk *PrivateKey) Parameters() Parameters { return sk.pub.params }

// PublicKey returns the verification key.
func (sk *PrivateKey) PublicKey() *PublicKey { return sk.pub }

// Public returns the verification key as a [crypto.PublicKey].
func (sk *PrivateKey) Public() crypto.PublicKey { return sk.pub }

// Bytes returns the standard byte layout of the signing key.
func (sk *PrivateKey) Bytes() []byte {
	data := make([]byte, len(sk.packed))
	copy(data, sk.packed)
	return data
}

// Seed returns the key-generation seed when the key was expanded from one.
func (sk *PrivateKey) Seed() (seed [SeedSize]byte, ok bool) {
	if sk.seed == nil {
		return seed, false
	}
	return *sk.seed, true
}

// Equal checks equality with another signing key in constant time over the
// secret material.
func (sk *PrivateKey) Equal(other *PrivateKey) bool {
	if other == nil {
		return false
	}
	return sk.pub.params.Equal(&other.pub.params) &&
		subtle.ConstantTimeCompare(sk.packed, other.packed) == 1
}

// MarshalBinary encodes the signing key into its standard byte layout.
func (sk *PrivateKey) MarshalBinary() ([]byte, error) {
	return sk.Bytes(), nil
}

// UnmarshalBinary decodes a signing key, inferring the parameter set from
// the blob length.
func (sk *PrivateKey) UnmarshalBinary(data []byte) error {
	p, ok := parametersForPrivateKeySize(len(data))
	if !ok {
		return fmt.Errorf("%w: no parameter set with %d-byte signing keys", ErrInvalidKeyEncoding, len(data))
	}
	decoded, err := NewPrivateKey(p, data)
	if err != nil {
		return err
	}
	*sk = *decoded
	return nil
}

// Zeroize overwrites the secret material of the key. The key must not be
// used afterwards.
func (sk *PrivateKey) Zeroize() {
	wipeBytes(sk.key[:])
	wipeBytes(sk.packed)
	if sk.seed != nil {
		wipeBytes(sk.seed[:])
	}
	wipePolyVector(sk.s1)
	wipePolyVector(sk.s2)
	wipePolyVector(sk.t0)
	wipePolyVector(sk.s1Hat)
	wipePolyVector(sk.s2Hat)
	wipePolyVector(sk.t0Hat)
}

func parametersForPublicKeySize(n int) (Parameters, bool) {
	for _, p := range []Parameters{MLDSA44, MLDSA65, MLDSA87} {
		if p.PublicKeySize() == n {
			return p, true
		}
	}
	return Parameters{}, false
}

func parametersForPrivateKeySize(n int) (Parameters, bool) {
	for _, p := range []Parameters{MLDSA44, MLDSA65, MLDSA87} {
		if p.PrivateKeySize() == n {
			return p, true
		}
	}
	return Parameters{}, false
}
