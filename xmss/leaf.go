package xmss

import (
	"github.com/xmss-hw/wotsref/address"
	"github.com/xmss-hw/wotsref/parameters"
	"github.com/xmss-hw/wotsref/wots"
)

type Leaf struct {
	PK    [][]byte
	Value []byte
	// OTSAddress is the OTS address as left by public key generation.
	OTSAddress address.OTSAddress
}

// GenLeaf computes the leaf of one WOTS+ key pair the way the gen_leaf core
// does: seed goes straight into seed expansion.
func GenLeaf(params *parameters.Parameters, seed []byte, PKseed []byte, otsAdrs address.OTSAddress, ltreeAdrs address.LTreeAddress) (*Leaf, error) {
	pk, adrs, err := wots.PkGen(params, seed, PKseed, otsAdrs)
	if err != nil {
		return nil, err
	}
	return &Leaf{
		PK:         pk,
		Value:      LTree(params, pk, PKseed, ltreeAdrs),
		OTSAddress: adrs,
	}, nil
}

// GenLeafFromSecret derives the per-leaf seed from the XMSS secret seed
// first, as the XMSS leaf computation does.
func GenLeafFromSecret(params *parameters.Parameters, SKseed []byte, PKseed []byte, otsAdrs address.OTSAddress, ltreeAdrs address.LTreeAddress) (*Leaf, error) {
	if len(SKseed) != params.N {
		return nil, wots.ErrSeedLength
	}
	return GenLeaf(params, wots.GetSeed(params, SKseed, otsAdrs), PKseed, otsAdrs, ltreeAdrs)
}
