package parameters

import (
	"errors"
	"fmt"
	"math/bits"

	"github.com/xmss-hw/wotsref/tweakable"
)

type HashFunc int

const (
	SHA256 HashFunc = iota
	SHAKE256
)

var (
	ErrUnsupportedW    = errors.New("unsupported winternitz parameter")
	ErrUnsupportedN    = errors.New("unsupported digest length")
	ErrUnsupportedHash = errors.New("unsupported hash function")
)

func (f HashFunc) String() string {
	switch f {
	case SHA256:
		return "sha256"
	case SHAKE256:
		return "shake256"
	}
	return fmt.Sprintf("HashFunc(%d)", int(f))
}

func ParseHashFunc(name string) (HashFunc, error) {
	switch name {
	case "sha256", "sha2", "":
		return SHA256, nil
	case "shake256", "shake":
		return SHAKE256, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnsupportedHash, name)
}

type Parameters struct {
	N    int
	W    int
	LogW uint
	Len1 int
	Len2 int
	Len  int
	Hash HashFunc

	// Workers bounds the number of chains computed concurrently. Values
	// below 2 compute chains sequentially.
	Workers int

	Tweak tweakable.TweakableHashFunction
}

// MakeParameters validates n and w and derives the WOTS+ lengths.
// w must be a power of two whose logarithm divides 8, so base-w digits
// never straddle a byte.
func MakeParameters(n int, w int, hash HashFunc) (*Parameters, error) {
	if w < 2 || w > 256 || w&(w-1) != 0 {
		return nil, fmt.Errorf("%w: w=%d is not a power of two in [2, 256]", ErrUnsupportedW, w)
	}
	logW := uint(bits.TrailingZeros(uint(w)))
	if 8%logW != 0 {
		return nil, fmt.Errorf("%w: log2(w)=%d does not divide 8", ErrUnsupportedW, logW)
	}

	params := new(Parameters)
	switch hash {
	case SHA256:
		if n != 32 {
			return nil, fmt.Errorf("%w: sha256 needs n=32, got %d", ErrUnsupportedN, n)
		}
		params.Tweak = tweakable.NewSha256Tweak()
	case SHAKE256:
		if n != 32 && n != 64 {
			return nil, fmt.Errorf("%w: shake256 needs n=32 or n=64, got %d", ErrUnsupportedN, n)
		}
		params.Tweak = tweakable.NewShakeTweak(n)
	default:
		return nil, fmt.Errorf("%w: %v", ErrUnsupportedHash, hash)
	}

	params.N = n
	params.W = w
	params.LogW = logW
	params.Hash = hash
	params.Len1 = (8*n + int(logW) - 1) / int(logW)
	// floor(log2(len1 * (w - 1)) / log2(w)) + 1
	maxChecksumLog := bits.Len(uint(params.Len1*(w-1))) - 1
	params.Len2 = maxChecksumLog/int(logW) + 1
	params.Len = params.Len1 + params.Len2
	params.Workers = 1
	return params, nil
}

func mustMake(n, w int, hash HashFunc) *Parameters {
	params, err := MakeParameters(n, w, hash)
	if err != nil {
		panic(err)
	}
	return params
}

// MakeWotsSHA256W16 is the configuration of the hardware core: n=32, w=16, len=67.
func MakeWotsSHA256W16() *Parameters {
	return mustMake(32, 16, SHA256)
}

func MakeWotsSHA256W4() *Parameters {
	return mustMake(32, 4, SHA256)
}

func MakeWotsSHA256W256() *Parameters {
	return mustMake(32, 256, SHA256)
}

func MakeWotsSHAKE256W16() *Parameters {
	return mustMake(32, 16, SHAKE256)
}

// SigBytes is the size of a flattened signature or public key.
func (p *Parameters) SigBytes() int {
	return p.Len * p.N
}

func (p *Parameters) String() string {
	return fmt.Sprintf("WOTS+-%s_n%d_w%d (len1=%d len2=%d len=%d)", p.Hash, p.N, p.W, p.Len1, p.Len2, p.Len)
}
