package wots

import (
	"github.com/xmss-hw/wotsref/address"
	"github.com/xmss-hw/wotsref/parameters"
)

// SignDebug is Sign also returning the secret chain starting values, so a
// mismatch against a core can be traced back to seed expansion or to the
// chains.
func SignDebug(params *parameters.Parameters, message []byte, SKseed []byte, PKseed []byte, adrs address.OTSAddress) ([][]byte, [][]byte, error) {
	if err := checkSeeds(params, SKseed, PKseed); err != nil {
		return nil, nil, err
	}
	lengths, err := ChainLengths(params, message)
	if err != nil {
		return nil, nil, err
	}
	sks := ExpandSeed(params, SKseed)
	sig := make([][]byte, params.Len)

	forEachChain(params, func(i int) {
		chainAdrs := adrs
		chainAdrs.SetChainAddress(uint32(i))
		sig[i] = Chain(params, sks[i], 0, lengths[i], PKseed, &chainAdrs)
	})

	return sig, sks, nil
}
