package wots

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/xmss-hw/wotsref/address"
	"github.com/xmss-hw/wotsref/parameters"
	"github.com/xmss-hw/wotsref/util"
)

var (
	ErrDigestLength    = errors.New("message digest length does not match n")
	ErrSeedLength      = errors.New("seed length does not match n")
	ErrSignatureLength = errors.New("signature length does not match len*n")
	ErrDigit           = errors.New("base-w digit out of range")
)

// ExpandSeed derives the len secret chain starting values from seed.
func ExpandSeed(params *parameters.Parameters, seed []byte) [][]byte {
	return ExpandSeedN(params, seed, params.Len)
}

// ExpandSeedN derives count pseudorandom values: output i is PRF(seed, toByte(i, 32)).
func ExpandSeedN(params *parameters.Parameters, seed []byte, count int) [][]byte {
	out := make([][]byte, count)
	for i := 0; i < count; i++ {
		out[i] = params.Tweak.PRF(seed, util.MustToByte(uint64(i), 32))
	}
	return out
}

// GetSeed derives the per-leaf WOTS+ seed from the secret seed. The chain,
// hash and key_and_mask words are cleared on a copy of addr.
func GetSeed(params *parameters.Parameters, skSeed []byte, addr address.OTSAddress) []byte {
	addr.SetChainAddress(0)
	addr.SetHashAddress(0)
	addr.SetKeyAndMask(0)
	return params.Tweak.PRF(skSeed, addr.Bytes())
}

// chainSteps is the number of F applications starting at position start,
// clamped so the chain never moves past position w-1. A start outside
// [0, w-1] is not a chain position and gives no steps.
func chainSteps(params *parameters.Parameters, start, steps int) int {
	if start < 0 {
		return 0
	}
	remaining := params.W - 1 - start
	if steps > remaining {
		steps = remaining
	}
	if steps < 0 {
		return 0
	}
	return steps
}

// Chain computes the value at position start+steps of a hash chain from
// the value at position start. The hash address of adrs is set to the
// position before each step; adrs is the caller's scratch address.
func Chain(params *parameters.Parameters, X []byte, start int, steps int, PKseed []byte, adrs *address.OTSAddress) []byte {
	tmp := make([]byte, len(X))
	copy(tmp, X)

	n := chainSteps(params, start, steps)
	for i := start; i < start+n; i++ {
		adrs.SetHashAddress(uint32(i))
		tmp = params.Tweak.F(tmp, PKseed, &adrs.Address)
	}
	return tmp
}

// ChainTrace is Chain returning every intermediate value, the input first.
func ChainTrace(params *parameters.Parameters, X []byte, start int, steps int, PKseed []byte, adrs *address.OTSAddress) [][]byte {
	n := chainSteps(params, start, steps)
	trace := make([][]byte, 0, n+1)

	tmp := make([]byte, len(X))
	copy(tmp, X)
	trace = append(trace, tmp)
	for i := start; i < start+n; i++ {
		adrs.SetHashAddress(uint32(i))
		tmp = params.Tweak.F(tmp, PKseed, &adrs.Address)
		trace = append(trace, tmp)
	}
	return trace
}

// Checksum encodes sum(w-1-d) over msg as len2 base-w digits.
func Checksum(params *parameters.Parameters, msg []int) ([]int, error) {
	csum := 0
	for i, d := range msg {
		if d < 0 || d >= params.W {
			return nil, fmt.Errorf("%w: digit %d is %d", ErrDigit, i, d)
		}
		csum = csum + params.W - 1 - d
	}

	// align the checksum so its digits end on a byte boundary
	csumBits := params.Len2 * int(params.LogW)
	if csumBits%8 != 0 {
		csum = csum << (8 - csumBits%8)
	}

	csumBytes, err := util.ToByte(uint64(csum), (csumBits+7)/8)
	if err != nil {
		return nil, fmt.Errorf("checksum: %w", err)
	}
	return util.BaseW(csumBytes, params.LogW, params.Len2), nil
}

// ChainLengths converts an n-byte message digest into the len chain
// positions signed by WOTS+: len1 message digits followed by len2 checksum digits.
func ChainLengths(params *parameters.Parameters, message []byte) ([]int, error) {
	if len(message) != params.N {
		return nil, fmt.Errorf("%w: got %d bytes, want %d", ErrDigestLength, len(message), params.N)
	}
	msg := util.BaseW(message, params.LogW, params.Len1)
	csum, err := Checksum(params, msg)
	if err != nil {
		return nil, err
	}
	return append(msg, csum...), nil
}

// PkGen generates a WOTS+ public key. It also returns the OTS address as
// left by the last chain, which is what a core that reuses one address
// register across all chains outputs.
func PkGen(params *parameters.Parameters, SKseed []byte, PKseed []byte, adrs address.OTSAddress) ([][]byte, address.OTSAddress, error) {
	if err := checkSeeds(params, SKseed, PKseed); err != nil {
		return nil, adrs, err
	}
	sk := ExpandSeed(params, SKseed)
	pk := make([][]byte, params.Len)
	last := make([]address.OTSAddress, params.Len)

	forEachChain(params, func(i int) {
		chainAdrs := adrs
		chainAdrs.SetChainAddress(uint32(i))
		pk[i] = Chain(params, sk[i], 0, params.W-1, PKseed, &chainAdrs)
		last[i] = chainAdrs
	})

	return pk, last[params.Len-1], nil
}

// Sign signs an n-byte message digest.
func Sign(params *parameters.Parameters, message []byte, SKseed []byte, PKseed []byte, adrs address.OTSAddress) ([][]byte, error) {
	sig, _, err := SignDebug(params, message, SKseed, PKseed, adrs)
	return sig, err
}

// PkFromSig completes every signature chain to position w-1. The result
// equals the public key iff the signature is valid; comparing is up to the caller.
func PkFromSig(params *parameters.Parameters, message []byte, signature [][]byte, PKseed []byte, adrs address.OTSAddress) ([][]byte, error) {
	if len(PKseed) != params.N {
		return nil, fmt.Errorf("%w: public seed is %d bytes", ErrSeedLength, len(PKseed))
	}
	if err := checkSignature(params, signature); err != nil {
		return nil, err
	}
	lengths, err := ChainLengths(params, message)
	if err != nil {
		return nil, err
	}
	pk := make([][]byte, params.Len)

	forEachChain(params, func(i int) {
		chainAdrs := adrs
		chainAdrs.SetChainAddress(uint32(i))
		pk[i] = Chain(params, signature[i], lengths[i], params.W-1-lengths[i], PKseed, &chainAdrs)
	})

	return pk, nil
}

// Verify recomputes the public key from the signature and compares it with pk.
func Verify(params *parameters.Parameters, message []byte, signature [][]byte, pk [][]byte, PKseed []byte, adrs address.OTSAddress) (bool, error) {
	if len(pk) != params.Len {
		return false, fmt.Errorf("%w: public key has %d chains", ErrSignatureLength, len(pk))
	}
	computed, err := PkFromSig(params, message, signature, PKseed, adrs)
	if err != nil {
		return false, err
	}
	for i := range computed {
		if !bytes.Equal(computed[i], pk[i]) {
			return false, nil
		}
	}
	return true, nil
}

func checkSeeds(params *parameters.Parameters, SKseed []byte, PKseed []byte) error {
	if len(SKseed) != params.N {
		return fmt.Errorf("%w: secret seed is %d bytes", ErrSeedLength, len(SKseed))
	}
	if len(PKseed) != params.N {
		return fmt.Errorf("%w: public seed is %d bytes", ErrSeedLength, len(PKseed))
	}
	return nil
}

func checkSignature(params *parameters.Parameters, signature [][]byte) error {
	if len(signature) != params.Len {
		return fmt.Errorf("%w: %d chains, want %d", ErrSignatureLength, len(signature), params.Len)
	}
	for i, s := range signature {
		if len(s) != params.N {
			return fmt.Errorf("%w: chain %d is %d bytes", ErrSignatureLength, i, len(s))
		}
	}
	return nil
}

// Flatten concatenates chain values into the flat byte layout of a signature.
func Flatten(values [][]byte) []byte {
	return util.Concat(values...)
}

// Split cuts a flat signature or public key into len chain values.
func Split(params *parameters.Parameters, flat []byte) ([][]byte, error) {
	if len(flat) != params.SigBytes() {
		return nil, fmt.Errorf("%w: got %d bytes, want %d", ErrSignatureLength, len(flat), params.SigBytes())
	}
	out := make([][]byte, params.Len)
	for i := range out {
		out[i] = make([]byte, params.N)
		copy(out[i], flat[i*params.N:(i+1)*params.N])
	}
	return out, nil
}
