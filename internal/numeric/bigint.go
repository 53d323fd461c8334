// Package numeric implements the target-independent numeric, bitvector,
// and collection lowering policies of §4.5: Euclidean integer semantics,
// bitvector masking/rotation, and the collection element restrictions
// every backend shares. math/big is the one deliberate standard-library
// dependency in the domain stack (see DESIGN.md: no bignum library
// appears anywhere in the retrieved example pack).
package numeric

import "math/big"

// EuclideanDiv computes the source language's Euclidean integer division:
// the quotient q such that a = q*b + r with 0 <= r < |b|. This differs
// from the target's native truncated-toward-zero division whenever a and
// b have opposite signs and a is not a multiple of b; backends emit
// adjustment code around their native operator to match this (§4.5).
func EuclideanDiv(a, b *big.Int) *big.Int {
	q, r := new(big.Int), new(big.Int)
	q.QuoRem(a, b, r)
	if r.Sign() < 0 {
		if b.Sign() > 0 {
			q.Sub(q, big.NewInt(1))
		} else {
			q.Add(q, big.NewInt(1))
		}
	}
	return q
}

// EuclideanMod computes the source language's Euclidean modulus: the
// remainder r such that 0 <= r < |b|.
func EuclideanMod(a, b *big.Int) *big.Int {
	r := new(big.Int).Mod(a, b)
	// big.Int.Mod already returns a result in [0, |b|) for b != 0,
	// matching Euclidean semantics directly (Go's % operator does not;
	// this is exactly why backends whose native % truncates need the
	// adjustment this package documents).
	if r.Sign() < 0 {
		r.Add(r, new(big.Int).Abs(b))
	}
	return r
}

// NeedsDivModAdjustment reports whether a target whose native integer
// division truncates toward zero (the common case for C-family targets)
// needs adjustment code around a division/modulus at lowering time, given
// the statically known signs of operands. When signs are unknown at
// lowering time (the general case), the backend must always emit the
// adjustment; this helper lets a backend skip it in the narrow case where
// both operands are non-negative literals.
func NeedsDivModAdjustment(aNonNegative, bNonNegative bool) bool {
	return !(aNonNegative && bNonNegative)
}
