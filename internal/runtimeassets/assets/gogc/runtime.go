// Package lowercRuntime is copied verbatim into every gogc output tree;
// it is never parsed by the driver, only referenced by name from emitted
// call sites (lowercRuntime.EuclidDiv, lowercRuntime.NewSeq, ...).
package lowercRuntime

import "math/big"

// EuclidDiv implements Euclidean division (§4.5): the remainder is
// always non-negative regardless of either operand's sign.
func EuclidDiv(a, b *big.Int) *big.Int {
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

// EuclidMod is the non-negative remainder paired with EuclidDiv.
func EuclidMod(a, b *big.Int) *big.Int {
	return new(big.Int).Mod(a, new(big.Int).Abs(b))
}

// AddInt, SubInt, MulInt and NegInt give *big.Int the expression-form
// arithmetic Go's lack of operator overloading otherwise rules out.
func AddInt(a, b *big.Int) *big.Int { return new(big.Int).Add(a, b) }
func SubInt(a, b *big.Int) *big.Int { return new(big.Int).Sub(a, b) }
func MulInt(a, b *big.Int) *big.Int { return new(big.Int).Mul(a, b) }
func NegInt(a *big.Int) *big.Int    { return new(big.Int).Neg(a) }

// AddRat, SubRat, MulRat, QuoRat and NegRat are the *big.Rat equivalents.
func AddRat(a, b *big.Rat) *big.Rat { return new(big.Rat).Add(a, b) }
func SubRat(a, b *big.Rat) *big.Rat { return new(big.Rat).Sub(a, b) }
func MulRat(a, b *big.Rat) *big.Rat { return new(big.Rat).Mul(a, b) }
func QuoRat(a, b *big.Rat) *big.Rat { return new(big.Rat).Quo(a, b) }
func NegRat(a *big.Rat) *big.Rat    { return new(big.Rat).Neg(a) }
