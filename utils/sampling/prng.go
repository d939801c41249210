// Package sampling implements secure generation of random bytes.
package sampling

import (
	"crypto/rand"
	"io"
	"sync"

	"github.com/zeebo/blake3"
	"golang.org/x/crypto/blake2b"
)

// PRNG is an interface for secure generation of random bytes
type PRNG interface {
	io.Reader
}

type ThreadSafePRNG struct {
}

// NewPRNG returns a new PRNG that is thread-safe
func NewPRNG() (*ThreadSafePRNG, error) {
	return &ThreadSafePRNG{}, nil
}

// Read reads random bytes on sum.
func (prng *ThreadSafePRNG) Read(sum []byte) (n int, err error) {
	return rand.Read(sum)
}

// KeyedPRNG is a structure storing the parameters used to securely and *deterministically* generate shared
// sequences of random bytes among different parties using the hash function blake2b. Backward sequence
// security (given the digest i, compute the digest i-1) is ensured by default, however forward sequence
// security (given the digest i, compute the digest i+1) is only ensured if the KeyedPRNG is keyed.
type KeyedPRNG struct {
	mutex sync.Mutex
	key   []byte
	xof   blake2b.XOF
}

// NewKeyedPRNG creates a new instance of KeyedPRNG.
// Accepts an optional key, else set key=nil which is treated as key=[]byte{}
// WARNING: A PRNG INITIALISED WITH key=nil IS INSECURE!
func NewKeyedPRNG(key []byte) (*KeyedPRNG, error) {
	var err error
	prng := new(KeyedPRNG)
	prng.key = key
	prng.xof, err = blake2b.NewXOF(blake2b.OutputLengthUnknown, key)
	return prng, err
}

// Key returns a copy of the key used to seed the PRNG.
// This value can be used with [NewKeyedPRNG] to instantiate
// a new PRNG that will produce the same stream of bytes.
func (prng *KeyedPRNG) Key() (key []byte) {
	key = make([]byte, len(prng.key))
	copy(key, prng.key)
	return
}

// Read reads bytes from the KeyedPRNG on sum.
func (prng *KeyedPRNG) Read(sum []byte) (n int, err error) {
	prng.mutex.Lock()
	defer prng.mutex.Unlock()
	return prng.xof.Read(sum)
}

// Reset resets the PRNG to its initial state.
func (prng *KeyedPRNG) Reset() {
	prng.mutex.Lock()
	defer prng.mutex.Unlock()
	prng.xof.Reset()
}

// SeedPRNG is a deterministic PRNG derived from a 32-byte seed using the
// keyed mode of the hash function blake3. It is intended for hedged and
// reproducible key or nonce derivation, where the caller controls the seed.
type SeedPRNG struct {
	mutex  sync.Mutex
	seed   [32]byte
	digest io.Reader
}

// NewSeedPRNG creates a new instance of SeedPRNG from a 32-byte seed.
func NewSeedPRNG(seed [32]byte) (*SeedPRNG, error) {
	prng := new(SeedPRNG)
	prng.seed = seed
	hasher, err := blake3.NewKeyed(seed[:])
	if err != nil {
		return nil, err
	}
	prng.digest = hasher.Digest()
	return prng, nil
}

// Seed returns a copy of the seed used to instantiate the PRNG.
func (prng *SeedPRNG) Seed() (seed [32]byte) {
	return prng.seed
}

// Read reads bytes from the SeedPRNG on sum.
func (prng *SeedPRNG) Read(sum []byte) (n int, err error) {
	prng.mutex.Lock()
	defer prng.mutex.Unlock()
	return prng.digest.Read(sum)
}
