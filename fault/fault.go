package fault

import (
	"math/rand"

	"github.com/xmss-hw/wotsref/parameters"
	"github.com/xmss-hw/wotsref/wots"
)

// FlipBit flips one uniformly chosen bit of bits in place and returns its
// index, counting from the least significant bit of bits[0].
func FlipBit(bits []byte, rng *rand.Rand) int {
	targetBit := rng.Intn(8 * len(bits))
	bits[targetBit>>3] ^= 1 << (targetBit % 8)
	return targetBit
}

// FlipSignatureBit returns a copy of sig with one random bit flipped and
// the chain the flipped bit belongs to.
func FlipSignatureBit(params *parameters.Parameters, sig [][]byte, rng *rand.Rand) ([][]byte, int, error) {
	flat := wots.Flatten(sig)
	targetBit := FlipBit(flat, rng)
	faulty, err := wots.Split(params, flat)
	if err != nil {
		return nil, 0, err
	}
	return faulty, targetBit / (8 * params.N), nil
}
