package mldsa

import (
	"errors"
)

var (
	// ErrInvalidKeyEncoding is returned when a key blob has the wrong length
	// or carries an out-of-range field.
	ErrInvalidKeyEncoding = errors.New("mldsa: invalid key encoding")

	// ErrInvalidSignatureEncoding is returned when a signature blob has the
	// wrong length, excess hint weight, or an out-of-bound field.
	ErrInvalidSignatureEncoding = errors.New("mldsa: invalid signature encoding")

	// ErrSigningInternalFailure is returned when the signing retry loop or a
	// sampler exceeds its draw ceiling. This indicates a broken entropy
	// source and is not recoverable by retrying.
	ErrSigningInternalFailure = errors.New("mldsa: internal failure during signing")

	// ErrRandomnessUnavailable is returned when hedged signing or key
	// generation has no randomness source to draw from.
	ErrRandomnessUnavailable = errors.New("mldsa: randomness source unavailable")

	// ErrContextTooLong is returned when the domain-separation context
	// exceeds 255 bytes.
	ErrContextTooLong = errors.New("mldsa: context longer than 255 bytes")
)
