package util

import (
	"math/rand"
	"testing"

	spxutil "github.com/kasperdi/SPHINCSPLUS-golang/util"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToByte(t *testing.T) {
	out, err := ToByte(0x0102, 4)
	require.NoError(t, err)
	assert.Equal(t, []byte{0, 0, 1, 2}, out)

	out, err = ToByte(3, 32)
	require.NoError(t, err)
	assert.Len(t, out, 32)
	assert.Equal(t, byte(3), out[31])
	assert.Equal(t, make([]byte, 31), out[:31])

	out, err = ToByte(0, 0)
	require.NoError(t, err)
	assert.Empty(t, out)
}

func TestToByte_OutOfRange(t *testing.T) {
	_, err := ToByte(0x100, 1)
	assert.ErrorIs(t, err, ErrValueOutOfRange)

	_, err = ToByte(1, 0)
	assert.ErrorIs(t, err, ErrValueOutOfRange)

	out, err := ToByte(0xff, 1)
	require.NoError(t, err)
	assert.Equal(t, []byte{0xff}, out)
}

func TestToByte_MatchesSphincsUtil(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	for i := 0; i < 500; i++ {
		v := rng.Uint64()
		for _, n := range []int{8, 16, 32} {
			out, err := ToByte(v, n)
			require.NoError(t, err)
			assert.Equal(t, spxutil.ToByte(v, n), out, "value %x in %d bytes", v, n)
		}
		small := v & 0xffff
		out, err := ToByte(small, 2)
		require.NoError(t, err)
		assert.Equal(t, spxutil.ToByte(small, 2), out)
	}
}

func TestToByte_NegativeLength(t *testing.T) {
	_, err := ToByte(0, -1)
	assert.ErrorIs(t, err, ErrLength)
}

func TestBaseW(t *testing.T) {
	in := []byte{0x12, 0x34, 0xfe}
	assert.Equal(t, []int{1, 2, 3, 4, 15, 14}, BaseW(in, 4, 6))
	assert.Equal(t, []int{0, 1, 0, 2, 0, 3, 1, 0}, BaseW(in, 2, 8))
	assert.Equal(t, []int{0x12, 0x34}, BaseW(in, 8, 2))
	// partial consumption stops at outLen
	assert.Equal(t, []int{1, 2, 3}, BaseW(in, 4, 3))
}

func TestBaseW_MatchesSphincsUtil(t *testing.T) {
	rng := rand.New(rand.NewSource(2))
	in := make([]byte, 32)
	for i := 0; i < 500; i++ {
		rng.Read(in)
		for _, logW := range []uint{1, 2, 4, 8} {
			outLen := len(in) * 8 / int(logW)
			assert.Equal(t, spxutil.Base_w(in, 1<<logW, outLen), BaseW(in, logW, outLen), "logW %d", logW)
		}
	}
}

func TestHexToDigest(t *testing.T) {
	b, err := HexToDigest("00ff10", 3)
	require.NoError(t, err)
	assert.Equal(t, []byte{0x00, 0xff, 0x10}, b)

	_, err = HexToDigest("0ff", 2)
	assert.ErrorIs(t, err, ErrInvalidHex)

	_, err = HexToDigest("zz", 1)
	assert.ErrorIs(t, err, ErrInvalidHex)

	_, err = HexToDigest("00ff", 3)
	assert.ErrorIs(t, err, ErrLength)
}

func TestXor(t *testing.T) {
	assert.Equal(t, []byte{0xff, 0x00}, Xor([]byte{0xf0, 0x0f}, []byte{0x0f, 0x0f}))
	assert.Panics(t, func() { Xor([]byte{1}, []byte{1, 2}) })
}

func TestConcat(t *testing.T) {
	assert.Equal(t, []byte{1, 2, 3}, Concat([]byte{1}, nil, []byte{2, 3}))
}
