/*
Package libq provides a pure Go implementation of module-lattice digital
signatures over the ring Z_q[X]/(X^256+1), together with the polynomial
arithmetic, number-theoretic transforms and deterministic samplers they are
built on. The implementation favors code-simplicity, cross-platform
compatibility and easy builds, while retaining the performance of optimized
native libraries.
*/
package libq
