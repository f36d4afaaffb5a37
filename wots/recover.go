package wots

import (
	"bytes"

	"github.com/xmss-hw/wotsref/address"
	"github.com/xmss-hw/wotsref/parameters"
)

// DigitsFromSignature finds, for every chain, the position the signature
// value sits at by completing it from each candidate position and
// comparing against the public key. Chains that match no position get -1
// and ok is false. Used to localise corrupted chains in a signature
// produced by a device under test.
func DigitsFromSignature(params *parameters.Parameters, sig [][]byte, pk [][]byte, PKseed []byte, adrs address.OTSAddress) (digits []int, ok bool) {
	if len(sig) != params.Len || len(pk) != params.Len {
		return nil, false
	}
	digits = make([]int, params.Len)
	matched := make([]bool, params.Len)

	forEachChain(params, func(i int) {
		digits[i] = -1
		chainAdrs := adrs
		chainAdrs.SetChainAddress(uint32(i))
		for c := 0; c < params.W; c++ {
			hashed := Chain(params, sig[i], c, params.W-1-c, PKseed, &chainAdrs)
			if bytes.Equal(hashed, pk[i]) {
				digits[i] = c
				matched[i] = true
				return
			}
		}
	})

	ok = true
	for _, m := range matched {
		ok = ok && m
	}
	return digits, ok
}

// Mismatches lists the chain indices where got differs from want.
func Mismatches(want, got []int) []int {
	var idx []int
	for i := range want {
		if i >= len(got) || want[i] != got[i] {
			idx = append(idx, i)
		}
	}
	return idx
}
