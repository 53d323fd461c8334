package numeric

import "math/big"

// Mask returns 2^width - 1 as a big.Int, the mask applied after
// arithmetic on a bitvector of the given width (§4.5).
func Mask(width int) *big.Int {
	one := big.NewInt(1)
	m := new(big.Int).Lsh(one, uint(width))
	return m.Sub(m, one)
}

// MaskValue masks v to the given bitvector width: the core representation
// of "arithmetic is followed by a mask of 2^W-1 when W < K" (§4.5).
func MaskValue(v *big.Int, width int) *big.Int {
	return new(big.Int).And(v, Mask(width))
}

// RotateLeft expands bitvector rotation to the portable shift-and-mask
// form required by targets with no native rotate instruction:
// (x << k | x >> (W-k)), masked to W bits after each shift (§4.5).
func RotateLeft(x *big.Int, k, width int) *big.Int {
	k = ((k % width) + width) % width
	if k == 0 {
		return MaskValue(new(big.Int).Set(x), width)
	}
	left := new(big.Int).Lsh(x, uint(k))
	left = MaskValue(left, width)
	right := new(big.Int).Rsh(x, uint(width-k))
	right = MaskValue(right, width)
	return MaskValue(new(big.Int).Or(left, right), width)
}

// RotateRight is RotateLeft by width-k, the mirror operation.
func RotateRight(x *big.Int, k, width int) *big.Int {
	return RotateLeft(x, width-((k%width)+width)%width, width)
}

// FitsNative reports whether a bitvector of the given width has a native
// backing of nativeWidth bits (width <= nativeWidth, and nativeWidth is
// among the target's advertised native widths is checked by the caller
// via capability.Bits.NativeBackingFor).
func FitsNative(width, nativeWidth int) bool {
	return nativeWidth > 0 && width <= nativeWidth
}

// NeedsMask reports whether arithmetic on a bitvector lowered to a native
// type of nativeWidth bits needs an explicit mask: true whenever the
// declared width is strictly narrower than its native backing. A
// bitvector whose width equals its native backing emits no mask (§8
// boundary behavior).
func NeedsMask(width, nativeWidth int) bool {
	return nativeWidth > 0 && width < nativeWidth
}
