package fault

import (
	"bytes"
	"math/bits"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xmss-hw/wotsref/address"
	"github.com/xmss-hw/wotsref/parameters"
	"github.com/xmss-hw/wotsref/wots"
)

func popCount(b []byte) int {
	n := 0
	for _, x := range b {
		n += bits.OnesCount8(x)
	}
	return n
}

func TestFlipBit(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	for i := 0; i < 100; i++ {
		buf := make([]byte, 32)
		idx := FlipBit(buf, rng)
		require.Equal(t, 1, popCount(buf))
		assert.Equal(t, byte(1)<<(idx%8), buf[idx>>3])
	}
}

func TestFlipBit_Deterministic(t *testing.T) {
	a, b := make([]byte, 32), make([]byte, 32)
	FlipBit(a, rand.New(rand.NewSource(42)))
	FlipBit(b, rand.New(rand.NewSource(42)))
	assert.Equal(t, a, b)
}

func TestFlipSignatureBit_Diagnosed(t *testing.T) {
	params := parameters.MakeWotsSHA256W16()
	seed, pubSeed := bytes.Repeat([]byte{1}, 32), bytes.Repeat([]byte{2}, 32)
	msg := bytes.Repeat([]byte{0x3c}, 32)
	adrs := address.Address{}.OTS()

	pk, _, err := wots.PkGen(params, seed, pubSeed, adrs)
	require.NoError(t, err)
	sig, err := wots.Sign(params, msg, seed, pubSeed, adrs)
	require.NoError(t, err)

	rng := rand.New(rand.NewSource(3))
	for trial := 0; trial < 5; trial++ {
		faulty, chain, err := FlipSignatureBit(params, sig, rng)
		require.NoError(t, err)

		ok, err := wots.Verify(params, msg, faulty, pk, pubSeed, adrs)
		require.NoError(t, err)
		assert.False(t, ok)

		digits, recovered := wots.DigitsFromSignature(params, faulty, pk, pubSeed, adrs)
		assert.False(t, recovered)
		lengths, err := wots.ChainLengths(params, msg)
		require.NoError(t, err)
		assert.Equal(t, []int{chain}, wots.Mismatches(lengths, digits))
	}

	// the input signature is untouched
	ok, err := wots.Verify(params, msg, sig, pk, pubSeed, adrs)
	require.NoError(t, err)
	assert.True(t, ok)
}
