package fault

import (
	"errors"
	"fmt"

	"github.com/xmss-hw/wotsref/address"
	"github.com/xmss-hw/wotsref/parameters"
	"github.com/xmss-hw/wotsref/wots"
)

var (
	ErrUnrecoverable = errors.New("signature chains do not lead to the public key")
	ErrNotForgeable  = errors.New("message needs a chain position below the shortest observed")
)

// Tracker keeps, per chain, the lowest chain position seen in any
// signature under one key and the value at that position. Every digit at
// or above the tracked position can then be reached without the secret
// seed, which is what a fault campaign against a signing core exposes.
type Tracker struct {
	params *parameters.Parameters
	pk     [][]byte
	pkSeed []byte
	adrs   address.OTSAddress

	Shortest  [][]byte
	Positions []int
}

// NewTracker starts from a valid signature of message.
func NewTracker(params *parameters.Parameters, pk [][]byte, pkSeed []byte, adrs address.OTSAddress, message []byte, sig [][]byte) (*Tracker, error) {
	ok, err := wots.Verify(params, message, sig, pk, pkSeed, adrs)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrUnrecoverable
	}
	positions, err := wots.ChainLengths(params, message)
	if err != nil {
		return nil, err
	}
	shortest := make([][]byte, len(sig))
	for i := range sig {
		shortest[i] = append([]byte(nil), sig[i]...)
	}
	return &Tracker{
		params:    params,
		pk:        pk,
		pkSeed:    pkSeed,
		adrs:      adrs,
		Shortest:  shortest,
		Positions: positions,
	}, nil
}

// Observe recovers the chain positions of sig and keeps every chain that
// is shorter than the one tracked. It reports whether anything changed.
func (t *Tracker) Observe(sig [][]byte) (bool, error) {
	digits, ok := wots.DigitsFromSignature(t.params, sig, t.pk, t.pkSeed, t.adrs)
	if !ok {
		return false, fmt.Errorf("%w: chains %v", ErrUnrecoverable, wots.Mismatches(t.Positions, digits))
	}
	smaller := false
	for i := range digits {
		if digits[i] < t.Positions[i] {
			smaller = true
			t.Positions[i] = digits[i]
			t.Shortest[i] = append([]byte(nil), sig[i]...)
		}
	}
	return smaller, nil
}

// Forgeable reports whether every chain length of message is at or above
// the tracked position. The chain lengths are returned either way.
func (t *Tracker) Forgeable(message []byte) (bool, []int, error) {
	lengths, err := wots.ChainLengths(t.params, message)
	if err != nil {
		return false, nil, err
	}
	for i := range lengths {
		if lengths[i] < t.Positions[i] {
			return false, lengths, nil
		}
	}
	return true, lengths, nil
}

// Forge builds a signature of message from the tracked chains only.
func (t *Tracker) Forge(message []byte) ([][]byte, error) {
	forgeable, lengths, err := t.Forgeable(message)
	if err != nil {
		return nil, err
	}
	if !forgeable {
		return nil, ErrNotForgeable
	}
	sig := make([][]byte, t.params.Len)
	for i := range sig {
		adrs := t.adrs
		adrs.SetChainAddress(uint32(i))
		sig[i] = wots.Chain(t.params, t.Shortest[i], t.Positions[i], lengths[i]-t.Positions[i], t.pkSeed, &adrs)
	}
	return sig, nil
}

// RequiredSignatures asks the oracle for faulty signatures of message
// until target can be forged, and returns how many were needed. It
// returns -1 when maxTrials signatures are not enough.
func RequiredSignatures(o *Oracle, message []byte, target []byte, maxTrials int) (int, *Tracker, error) {
	sig, err := o.Sign(message)
	if err != nil {
		return 0, nil, err
	}
	tracker, err := NewTracker(o.Params(), o.PublicKey(), o.PublicSeed(), o.Address(), message, sig)
	if err != nil {
		return 0, nil, err
	}
	if forgeable, _, err := tracker.Forgeable(target); err != nil || forgeable {
		return 0, tracker, err
	}

	for i := 1; i <= maxTrials; i++ {
		badSig, err := o.SignFaulty(message)
		if err != nil {
			return 0, tracker, err
		}
		smaller, err := tracker.Observe(badSig)
		if err != nil {
			return 0, tracker, err
		}
		if !smaller {
			continue
		}
		if forgeable, _, _ := tracker.Forgeable(target); forgeable {
			return i, tracker, nil
		}
	}
	return -1, tracker, nil
}
