package address

import (
	"encoding/binary"
	"fmt"

	"github.com/xmss-hw/wotsref/util"
)

// Size of the wire encoding of an address in bytes.
const Size = 32

type Type uint32

const (
	OTS      Type = 0
	LTREE    Type = 1
	HASHTREE Type = 2
)

// Address is the 8-word hash address that diversifies every keyed hash call.
//
//	| layer | tree (2 words) | type | ots / ltree | chain / tree height | hash / tree index | key and mask |
//
// Words 4 to 6 change meaning with the type. Use OTS() or LTree() to get a
// view that only exposes the fields valid for that type.
type Address struct {
	words [8]uint32
}

func FromWords(words [8]uint32) Address {
	return Address{words: words}
}

// FromBytes decodes the 32-byte big-endian wire encoding.
func FromBytes(b []byte) (Address, error) {
	var a Address
	if len(b) != Size {
		return a, fmt.Errorf("%w: address is %d bytes, want %d", util.ErrLength, len(b), Size)
	}
	for i := range a.words {
		a.words[i] = binary.BigEndian.Uint32(b[i*4:])
	}
	return a, nil
}

// ParseHex decodes 64 hex characters, word 0 first.
func ParseHex(s string) (Address, error) {
	b, err := util.HexToDigest(s, Size)
	if err != nil {
		return Address{}, err
	}
	return FromBytes(b)
}

func (a *Address) Words() [8]uint32 {
	return a.words
}

func (a *Address) Bytes() []byte {
	out := make([]byte, Size)
	for i, w := range a.words {
		binary.BigEndian.PutUint32(out[i*4:], w)
	}
	return out
}

func (a *Address) String() string {
	return fmt.Sprintf("%08x", a.words)
}

func (a *Address) Copy() *Address {
	c := *a
	return &c
}

func (a *Address) SetLayerAddress(layer uint32) *Address {
	a.words[0] = layer
	return a
}

func (a *Address) SetTreeAddress(tree uint64) *Address {
	a.words[1] = uint32(tree >> 32)
	a.words[2] = uint32(tree)
	return a
}

func (a *Address) SetType(t Type) *Address {
	a.words[3] = uint32(t)
	return a
}

func (a *Address) SetKeyAndMask(keyAndMask uint32) *Address {
	a.words[7] = keyAndMask
	return a
}

func (a *Address) GetLayerAddress() uint32 {
	return a.words[0]
}

func (a *Address) GetTreeAddress() uint64 {
	return uint64(a.words[1])<<32 | uint64(a.words[2])
}

func (a *Address) GetType() Type {
	return Type(a.words[3])
}

func (a *Address) GetKeyAndMask() uint32 {
	return a.words[7]
}

// OTS returns a copy typed as a one-time-signature chain address. Words 4
// to 7 are carried over unchanged.
func (a Address) OTS() OTSAddress {
	a.SetType(OTS)
	return OTSAddress{a}
}

// LTree returns a copy typed as an L-tree address. Words 4 to 7 are carried
// over unchanged, so an L-tree address derived from the OTS address of the
// same leaf keeps the leaf index in word 4.
func (a Address) LTree() LTreeAddress {
	a.SetType(LTREE)
	return LTreeAddress{a}
}

// OTSAddress addresses a step inside one WOTS+ hash chain.
type OTSAddress struct {
	Address
}

func (a *OTSAddress) SetOTSAddress(ots uint32) *OTSAddress {
	a.words[4] = ots
	return a
}

func (a *OTSAddress) SetChainAddress(chain uint32) *OTSAddress {
	a.words[5] = chain
	return a
}

func (a *OTSAddress) SetHashAddress(hash uint32) *OTSAddress {
	a.words[6] = hash
	return a
}

func (a *OTSAddress) GetOTSAddress() uint32 {
	return a.words[4]
}

func (a *OTSAddress) GetChainAddress() uint32 {
	return a.words[5]
}

func (a *OTSAddress) GetHashAddress() uint32 {
	return a.words[6]
}

// LTreeAddress addresses a node of the L-tree compressing one WOTS+ public key.
type LTreeAddress struct {
	Address
}

func (a *LTreeAddress) SetLTreeAddress(ltree uint32) *LTreeAddress {
	a.words[4] = ltree
	return a
}

func (a *LTreeAddress) SetTreeHeight(height uint32) *LTreeAddress {
	a.words[5] = height
	return a
}

func (a *LTreeAddress) SetTreeIndex(index uint32) *LTreeAddress {
	a.words[6] = index
	return a
}

func (a *LTreeAddress) GetLTreeAddress() uint32 {
	return a.words[4]
}

func (a *LTreeAddress) GetTreeHeight() uint32 {
	return a.words[5]
}

func (a *LTreeAddress) GetTreeIndex() uint32 {
	return a.words[6]
}
