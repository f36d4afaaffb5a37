package xmss

import (
	"github.com/xmss-hw/wotsref/address"
	"github.com/xmss-hw/wotsref/parameters"
	"github.com/xmss-hw/wotsref/util"
)

// LTree compresses a WOTS+ public key into a single leaf. Pairs are
// hashed with H level by level; an unpaired last node moves up unchanged.
func LTree(params *parameters.Parameters, pk [][]byte, PKseed []byte, adrs address.LTreeAddress) []byte {
	nodes := make([][]byte, len(pk))
	copy(nodes, pk)

	l := len(nodes)
	height := uint32(0)
	adrs.SetTreeHeight(height)
	for l > 1 {
		parents := l >> 1
		for i := 0; i < parents; i++ {
			adrs.SetTreeIndex(uint32(i))
			nodes[i] = params.Tweak.H(util.Concat(nodes[2*i], nodes[2*i+1]), PKseed, &adrs.Address)
		}
		if l&1 == 1 {
			nodes[parents] = nodes[l-1]
			l = parents + 1
		} else {
			l = parents
		}
		height++
		adrs.SetTreeHeight(height)
	}

	if len(nodes) == 0 {
		return nil
	}
	leaf := make([]byte, len(nodes[0]))
	copy(leaf, nodes[0])
	return leaf
}

// Levels is the number of hashing levels LTree runs for l inputs.
func Levels(l int) int {
	levels := 0
	for l > 1 {
		l = (l + 1) >> 1
		levels++
	}
	return levels
}
