// Package utils implements various helper functions.
package utils

import (
	"math/bits"
)

// BitReverse64 returns the bit-reverse value of the input value, within a context of 2^bitLen.
func BitReverse64(index, bitLen uint64) uint64 {
	return bits.Reverse64(index) >> (64 - bitLen)
}

// HammingWeight64 returns the hamming weight of the input value.
func HammingWeight64(x uint64) uint64 {
	return uint64(bits.OnesCount64(x))
}

// IsPowerOfTwo returns true if the input value is a power of two, else false.
func IsPowerOfTwo(n int) bool {
	return n > 0 && n&(n-1) == 0
}
