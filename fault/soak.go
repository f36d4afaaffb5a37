package fault

import (
	"fmt"
	"math/rand"

	"github.com/xmss-hw/wotsref/wots"
)

type SoakResult struct {
	Signed   int
	Verified int
	// Failures holds the messages whose signature did not verify or whose
	// recovered digits differ from the signed chain lengths.
	Failures [][]byte
}

// Soak signs count random digests through the oracle and checks each
// signature by verification and by recovering its digits.
func Soak(o *Oracle, count int, rng *rand.Rand) (*SoakResult, error) {
	params := o.Params()
	result := new(SoakResult)
	for i := 0; i < count; i++ {
		message := make([]byte, params.N)
		rng.Read(message)

		sig, err := o.Sign(message)
		if err != nil {
			return result, fmt.Errorf("message %d: %w", i, err)
		}
		result.Signed++

		ok, err := wots.Verify(params, message, sig, o.PublicKey(), o.PublicSeed(), o.Address())
		if err != nil {
			return result, fmt.Errorf("message %d: %w", i, err)
		}
		lengths, err := wots.ChainLengths(params, message)
		if err != nil {
			return result, err
		}
		digits, recovered := wots.DigitsFromSignature(params, sig, o.PublicKey(), o.PublicSeed(), o.Address())
		if !ok || !recovered || len(wots.Mismatches(lengths, digits)) != 0 {
			result.Failures = append(result.Failures, message)
			continue
		}
		result.Verified++
	}
	return result, nil
}
