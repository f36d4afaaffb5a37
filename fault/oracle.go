package fault

import (
	"math/rand"

	"github.com/xmss-hw/wotsref/address"
	"github.com/xmss-hw/wotsref/parameters"
	"github.com/xmss-hw/wotsref/wots"
)

type Stats struct {
	Valid  int
	Faulty int
}

type request struct {
	message []byte
	faulty  bool
	reply   chan response
}

type response struct {
	sig [][]byte
	err error
}

// Oracle models a signing device holding one WOTS+ key. Requests are
// served by a single goroutine, which owns the secret seed and the rng.
// A faulty request has one bit of the message digest flipped before the
// chains are computed, as a glitch on the digest register would.
type Oracle struct {
	params *parameters.Parameters
	pk     [][]byte
	pkSeed []byte
	adrs   address.OTSAddress

	requests chan request
	stopped  chan Stats
}

// NewOracle generates the public key and starts serving requests.
func NewOracle(params *parameters.Parameters, skSeed []byte, pkSeed []byte, adrs address.OTSAddress, rng *rand.Rand) (*Oracle, error) {
	pk, _, err := wots.PkGen(params, skSeed, pkSeed, adrs)
	if err != nil {
		return nil, err
	}
	o := &Oracle{
		params:   params,
		pk:       pk,
		pkSeed:   pkSeed,
		adrs:     adrs,
		requests: make(chan request),
		stopped:  make(chan Stats, 1),
	}

	go func() {
		var stats Stats
		for req := range o.requests {
			message := req.message
			if req.faulty {
				message = append([]byte(nil), req.message...)
				if len(message) > 0 {
					FlipBit(message, rng)
				}
				stats.Faulty++
			} else {
				stats.Valid++
			}
			sig, err := wots.Sign(params, message, skSeed, pkSeed, adrs)
			req.reply <- response{sig, err}
		}
		o.stopped <- stats
	}()

	return o, nil
}

func (o *Oracle) PublicKey() [][]byte {
	return o.pk
}

func (o *Oracle) PublicSeed() []byte {
	return o.pkSeed
}

func (o *Oracle) Address() address.OTSAddress {
	return o.adrs
}

func (o *Oracle) Params() *parameters.Parameters {
	return o.params
}

func (o *Oracle) Sign(message []byte) ([][]byte, error) {
	return o.do(message, false)
}

func (o *Oracle) SignFaulty(message []byte) ([][]byte, error) {
	return o.do(message, true)
}

func (o *Oracle) do(message []byte, faulty bool) ([][]byte, error) {
	reply := make(chan response)
	o.requests <- request{message: message, faulty: faulty, reply: reply}
	resp := <-reply
	return resp.sig, resp.err
}

// Stop shuts the oracle down and reports how many signatures it produced.
// The oracle must not be used afterwards.
func (o *Oracle) Stop() Stats {
	close(o.requests)
	return <-o.stopped
}
