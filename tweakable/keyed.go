package tweakable

import (
	"crypto/sha256"
	"fmt"

	"golang.org/x/crypto/sha3"

	"github.com/xmss-hw/wotsref/address"
	"github.com/xmss-hw/wotsref/util"
)

// keyedHash implements the padded PRF/F/H construction over any fixed
// output core hash.
type keyedHash struct {
	n    int
	core func(data []byte) []byte

	padF, padH, padPRF []byte
}

func newKeyedHash(n int, core func([]byte) []byte) keyedHash {
	return keyedHash{
		n:      n,
		core:   core,
		padF:   util.MustToByte(PaddingF, n),
		padH:   util.MustToByte(PaddingH, n),
		padPRF: util.MustToByte(PaddingPRF, n),
	}
}

func (h *keyedHash) PRF(key []byte, data []byte) []byte {
	return h.core(util.Concat(h.padPRF, key, data))
}

func (h *keyedHash) F(in []byte, pubSeed []byte, addr *address.Address) []byte {
	if len(in) != h.n {
		panic(fmt.Sprintf("F input is %d bytes, want %d", len(in), h.n))
	}
	addr.SetKeyAndMask(0)
	key := h.PRF(pubSeed, addr.Bytes())
	addr.SetKeyAndMask(1)
	bitmask := h.PRF(pubSeed, addr.Bytes())

	return h.core(util.Concat(h.padF, key, util.Xor(in, bitmask)))
}

func (h *keyedHash) H(in []byte, pubSeed []byte, addr *address.Address) []byte {
	if len(in) != 2*h.n {
		panic(fmt.Sprintf("H input is %d bytes, want %d", len(in), 2*h.n))
	}
	addr.SetKeyAndMask(0)
	key := h.PRF(pubSeed, addr.Bytes())
	addr.SetKeyAndMask(1)
	bitmask := h.PRF(pubSeed, addr.Bytes())
	addr.SetKeyAndMask(2)
	bitmask = append(bitmask, h.PRF(pubSeed, addr.Bytes())...)

	return h.core(util.Concat(h.padH, key, util.Xor(in, bitmask)))
}

// Sha256Tweak is the keyed hash family on SHA-256, the primitive the
// hardware core implements. N is fixed at 32.
type Sha256Tweak struct {
	keyedHash
}

func NewSha256Tweak() *Sha256Tweak {
	return &Sha256Tweak{newKeyedHash(sha256.Size, func(data []byte) []byte {
		sum := sha256.Sum256(data)
		return sum[:]
	})}
}

// ShakeTweak is the same construction on SHAKE256 with n output bytes.
type ShakeTweak struct {
	keyedHash
}

func NewShakeTweak(n int) *ShakeTweak {
	return &ShakeTweak{newKeyedHash(n, func(data []byte) []byte {
		out := make([]byte, n)
		sha3.ShakeSum256(out, data)
		return out
	})}
}
