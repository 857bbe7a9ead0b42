// Package circuit contains the data-independent showdown logic: a branch-free
// 5-card hand evaluator, the 7-card best-hand fold, winner determination, and
// the shuffle/reveal circuits that feed them.
//
// Nothing in this package branches on card values. Every conditional is an
// arithmetic multiplexer over a 0/1 word, every loop bound is a compile-time
// constant, and no array is ever indexed by a secret value. The operation
// trace of each function is therefore identical for all inputs of the same
// shape, which is what keeps the computation safe to run inside a
// multi-party execution environment: a data-dependent branch or lookup would
// leak card identities through the execution trace.
package circuit

import "math/bits"

// The comparison primitives take the borrow out of a full 64-bit
// subtraction, so they are correct over the whole word range. The shuffle
// sorts key-tagged words that use all 64 bits; a sign-bit comparison would
// mis-order any pair whose difference exceeds 2^63.

// ctEq returns 1 if x == y, else 0.
func ctEq(x, y uint64) uint64 {
	d := x ^ y
	return ((d | -d) >> 63) ^ 1
}

// ctNe returns 1 if x != y, else 0.
func ctNe(x, y uint64) uint64 {
	d := x ^ y
	return (d | -d) >> 63
}

// ctLt returns 1 if x < y, else 0.
func ctLt(x, y uint64) uint64 {
	_, borrow := bits.Sub64(x, y, 0)
	return borrow
}

// ctGt returns 1 if x > y, else 0.
func ctGt(x, y uint64) uint64 {
	_, borrow := bits.Sub64(y, x, 0)
	return borrow
}

// ctSelect and cex are function variables rather than plain functions so
// that tests can wrap them with a counting shim and assert that the number
// of multiplexer and comparator operations does not vary across inputs.
// Production code never reassigns them.

// ctSelect returns a if c == 1, b if c == 0.
var ctSelect = func(c, a, b uint64) uint64 {
	return b ^ (-c & (a ^ b))
}

// cex is a descending compare-exchange: after the call a[i] >= a[j].
// The swap is applied through an XOR mask so the memory writes happen
// unconditionally whether or not the pair was already ordered.
var cex = func(a []uint64, i, j int) {
	lt := ctLt(a[i], a[j])
	mask := -lt & (a[i] ^ a[j])
	a[i] ^= mask
	a[j] ^= mask
}
