package tweakable

import (
	"github.com/xmss-hw/wotsref/address"
)

// Domain separation constants prefixed to every core hash input.
const (
	PaddingF   = 0
	PaddingH   = 1
	PaddingPRF = 3
)

// PRF evaluations F and H make to derive their key and bitmask.
const (
	PRFPerF = 2
	PRFPerH = 3
)

// TweakableHashFunction is the set of keyed hashes WOTS+ and the L-tree are
// built from. F and H overwrite the key_and_mask word of addr while deriving
// their key and bitmask; callers reset it if they read it afterwards.
type TweakableHashFunction interface {
	// PRF hashes data under key. data is the 32-byte encoding of an
	// address or of a counter.
	PRF(key []byte, data []byte) []byte
	// F is the chain step on an n-byte input.
	F(in []byte, pubSeed []byte, addr *address.Address) []byte
	// H compresses two concatenated n-byte children.
	H(in []byte, pubSeed []byte, addr *address.Address) []byte
}
