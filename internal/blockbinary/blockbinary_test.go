package blockbinary

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddWrapsSilently(t *testing.T) {
	a := FromUint64[uint8](4, 7)  // 0111
	b := FromUint64[uint8](4, 2)  // 0010
	got := a.Add(b)
	assert.Equal(t, uint64(9), got.ToUint64()&0xF)
}

func TestSubNegation(t *testing.T) {
	a := FromUint64[uint8](8, 5)
	b := FromUint64[uint8](8, 3)
	got := a.Sub(b)
	assert.Equal(t, int64(2), int64(int8(got.ToUint64())))
}

func TestMulSchoolbook(t *testing.T) {
	a := FromUint64[uint32](16, 1234)
	b := FromUint64[uint32](16, 77)
	got := a.Mul(b)
	assert.Equal(t, uint64(1234*77)&0xFFFF, got.ToUint64()&0xFFFF)
}

func TestDivModTruncatesTowardZero(t *testing.T) {
	a := FromUint64[uint32](32, 17)
	b := FromUint64[uint32](32, 5)
	q, err := a.Div(b)
	require.NoError(t, err)
	assert.Equal(t, uint64(3), q.ToUint64())

	r, err := a.Mod(b)
	require.NoError(t, err)
	assert.Equal(t, uint64(2), r.ToUint64())
}

func TestDivideByZero(t *testing.T) {
	a := FromUint64[uint32](32, 1)
	z := New[uint32](32)
	_, err := a.Div(z)
	require.Error(t, err)
}

func TestShiftRightArithmeticSignExtends(t *testing.T) {
	var a BlockBinary[uint8]
	a = New[uint8](8)
	_ = a.Set(7, 1) // sign bit set: -128 in 8-bit two's complement
	got := a.ShiftRight(1)
	assert.True(t, got.SignBit())
}

func TestShiftLeftDropsOverflow(t *testing.T) {
	a := FromUint64[uint8](8, 0xC0)
	got := a.ShiftLeft(2)
	assert.Equal(t, uint64(0x00), got.ToUint64())
}

func TestCmpSigned(t *testing.T) {
	neg := FromUint64[uint8](8, 0xFF) // -1
	pos := FromUint64[uint8](8, 1)
	assert.Equal(t, -1, neg.Cmp(pos))
	assert.Equal(t, 1, pos.Cmp(neg))
	assert.Equal(t, 0, pos.Cmp(pos.Clone()))
}

func TestGetSetIndexOutOfRange(t *testing.T) {
	a := New[uint8](8)
	_, err := a.Get(8)
	require.Error(t, err)
	require.Error(t, a.Set(8, 1))
}

func TestToBinary(t *testing.T) {
	a := FromUint64[uint8](8, 0b10110001)
	assert.Equal(t, "10110001", a.ToBinary())
}
