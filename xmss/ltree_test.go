package xmss

import (
	"bytes"
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xmss-hw/wotsref/address"
	"github.com/xmss-hw/wotsref/parameters"
	"github.com/xmss-hw/wotsref/util"
	"github.com/xmss-hw/wotsref/wots"
)

const (
	testSecretSeed = "1c349f208e70b458958c754e2adc32f1828f5c7379e39b8239f972a0d05eeb5f"
	testPubSeed    = "2072a1a266f236c93b46dfa9ce868e792981d0d0a047817446cb7c58698fd233"
)

func mustHex(t *testing.T, s string) []byte {
	b, err := hex.DecodeString(s)
	require.NoError(t, err)
	return b
}

func filled(b byte) []byte {
	return bytes.Repeat([]byte{b}, 32)
}

func TestLTree_SingleNode(t *testing.T) {
	params := parameters.MakeWotsSHA256W16()
	leaf := LTree(params, [][]byte{filled(0x11)}, mustHex(t, testPubSeed), address.Address{}.LTree())
	assert.Equal(t, filled(0x11), leaf)
}

func TestLTree_Pair(t *testing.T) {
	params := parameters.MakeWotsSHA256W16()
	leaf := LTree(params, [][]byte{filled(0x11), filled(0x22)}, mustHex(t, testPubSeed), address.Address{}.LTree())
	assert.Equal(t, "c5541215bd9738332bde9c7dd1d2c4fb82af3962be0771b9aa598092d9587934", hex.EncodeToString(leaf))
}

func TestLTree_OddCarry(t *testing.T) {
	params := parameters.MakeWotsSHA256W16()
	pubSeed := mustHex(t, testPubSeed)
	pk := [][]byte{filled(0x11), filled(0x22), filled(0x33)}

	leaf := LTree(params, pk, pubSeed, address.Address{}.LTree())
	assert.Equal(t, "b8a835cc84ec23dfe2a5cac82a2fc42899aebd09962cf29a1354403719323473", hex.EncodeToString(leaf))

	// the third node skips level 0 and is hashed with the first parent at level 1
	adrs := address.Address{}.LTree()
	adrs.SetTreeHeight(0).SetTreeIndex(0)
	parent := params.Tweak.H(util.Concat(pk[0], pk[1]), pubSeed, &adrs.Address)
	adrs.SetTreeHeight(1).SetTreeIndex(0)
	root := params.Tweak.H(util.Concat(parent, pk[2]), pubSeed, &adrs.Address)
	assert.Equal(t, root, leaf)

	// input untouched
	assert.Equal(t, filled(0x11), pk[0])
}

func TestLTree_WOTSPublicKey(t *testing.T) {
	params := parameters.MakeWotsSHA256W16()
	pubSeed := mustHex(t, testPubSeed)
	otsAdrs := address.FromWords([8]uint32{0, 0, 0, 0, 1, 0, 0, 0}).OTS()

	pk, _, err := wots.PkGen(params, mustHex(t, testSecretSeed), pubSeed, otsAdrs)
	require.NoError(t, err)

	leaf := LTree(params, pk, pubSeed, otsAdrs.LTree())
	assert.Equal(t, "9810809080876b73007be637dc13743e723832db62af97b5e27fe083b2b51c8b", hex.EncodeToString(leaf))
}

func TestLevels(t *testing.T) {
	assert.Equal(t, 0, Levels(1))
	assert.Equal(t, 1, Levels(2))
	assert.Equal(t, 2, Levels(3))
	assert.Equal(t, 2, Levels(4))
	assert.Equal(t, 7, Levels(67))
	assert.Equal(t, 8, Levels(133))
}
