package numeric

import (
	"math/big"
	"testing"
)

func TestRotateLeftScenario(t *testing.T) {
	// §8 scenario 5: 8-bit 0b10110001 rotated left by 3 -> 0b10001101.
	x := big.NewInt(0b10110001)
	got := RotateLeft(x, 3, 8)
	want := big.NewInt(0b10001101)
	if got.Cmp(want) != 0 {
		t.Errorf("got %08b, want %08b", got, want)
	}
}

func TestNeedsMaskBoundary(t *testing.T) {
	// A bitvector of width equal to its native backing emits no mask.
	if NeedsMask(8, 8) {
		t.Error("width == native backing must need no mask")
	}
	if !NeedsMask(5, 8) {
		t.Error("width < native backing must need a mask")
	}
}

func TestMaskValue(t *testing.T) {
	v := big.NewInt(0x1FF) // 9 bits set
	got := MaskValue(v, 8)
	want := big.NewInt(0xFF)
	if got.Cmp(want) != 0 {
		t.Errorf("got %x, want %x", got, want)
	}
}

func TestRotateLeftByZeroIsIdentity(t *testing.T) {
	x := big.NewInt(0b11001100)
	got := RotateLeft(x, 0, 8)
	if got.Cmp(x) != 0 {
		t.Errorf("rotate by 0 changed value: got %08b want %08b", got, x)
	}
}

func TestRotateLeftFullWidthIsIdentity(t *testing.T) {
	x := big.NewInt(0b10110001)
	got := RotateLeft(x, 8, 8)
	if got.Cmp(x) != 0 {
		t.Errorf("rotate by width changed value: got %08b want %08b", got, x)
	}
}
