package tweakable

import (
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/xmss-hw/wotsref/address"
)

const (
	testSecretSeed = "1c349f208e70b458958c754e2adc32f1828f5c7379e39b8239f972a0d05eeb5f"
	testPubSeed    = "2072a1a266f236c93b46dfa9ce868e792981d0d0a047817446cb7c58698fd233"
	testInput      = "66d0132b7513d81c2b76d87d21eb57b661bd28d0887cebac2072342ff461d6af"
)

func mustHex(t *testing.T, s string) []byte {
	b, err := hex.DecodeString(s)
	if err != nil {
		t.Fatal(err)
	}
	return b
}

func TestSha256Tweak_PRF(t *testing.T) {
	h := NewSha256Tweak()
	out := h.PRF(mustHex(t, testPubSeed), make([]byte, 32))
	assert.Equal(t, "7db4c418de275dd21f5765dfca0c148e7905eb8e5483b91851fa50a6e440a9d5", hex.EncodeToString(out))
}

func TestSha256Tweak_F(t *testing.T) {
	h := NewSha256Tweak()
	addr := address.FromWords([8]uint32{0, 1, 2, 3, 4, 5, 6, 7})
	out := h.F(mustHex(t, testInput), mustHex(t, testPubSeed), &addr)

	assert.Equal(t, "99ae59ac88f6dd09e40d94dbadc3a63efd4fab2477e8b12f15807eea6bb3b779", hex.EncodeToString(out))
	// key_and_mask is left on the bitmask index
	assert.Equal(t, [8]uint32{0, 1, 2, 3, 4, 5, 6, 1}, addr.Words())
}

func TestSha256Tweak_H(t *testing.T) {
	h := NewSha256Tweak()
	addr := address.FromWords([8]uint32{0, 1, 2, 3, 4, 5, 6, 7})
	in := append(mustHex(t, testSecretSeed), mustHex(t, testPubSeed)...)
	out := h.H(in, mustHex(t, testPubSeed), &addr)

	assert.Equal(t, "6326e550b412cc0bda2c92c2f46a8ee7d1eeed3ebdb69b29009fc67d48beefad", hex.EncodeToString(out))
	assert.Equal(t, uint32(2), addr.GetKeyAndMask())
}

func TestSha256Tweak_WrongLength(t *testing.T) {
	h := NewSha256Tweak()
	var addr address.Address
	assert.Panics(t, func() { h.F(make([]byte, 31), make([]byte, 32), &addr) })
	assert.Panics(t, func() { h.H(make([]byte, 32), make([]byte, 32), &addr) })
}

func TestSha256Tweak_DomainSeparation(t *testing.T) {
	h := NewSha256Tweak()
	var a1, a2 address.Address
	in := mustHex(t, testInput)
	seed := mustHex(t, testPubSeed)

	f := h.F(in, seed, &a1)
	a2.SetLayerAddress(1)
	assert.NotEqual(t, f, h.F(in, seed, &a2))
	assert.NotEqual(t, f, h.PRF(seed, in))
}

func TestShakeTweak_PRF(t *testing.T) {
	h := NewShakeTweak(32)
	out := h.PRF(mustHex(t, testPubSeed), make([]byte, 32))
	assert.Equal(t, "fba10c82dcd93291532819a40edd7927e1902f1b08cbdddd8661ec38b385d16c", hex.EncodeToString(out))

	assert.Len(t, NewShakeTweak(64).PRF(make([]byte, 64), make([]byte, 32)), 64)
}

func TestKeyedHash_PRFPerCall(t *testing.T) {
	calls := 0
	h := newKeyedHash(32, func(data []byte) []byte {
		calls++
		return make([]byte, 32)
	})
	var adrs address.Address

	h.F(make([]byte, 32), make([]byte, 32), &adrs)
	// one core call for the output, the rest derive key and bitmask
	assert.Equal(t, PRFPerF, calls-1)

	calls = 0
	h.H(make([]byte, 64), make([]byte, 32), &adrs)
	assert.Equal(t, PRFPerH, calls-1)
}
