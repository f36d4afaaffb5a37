package util

import (
	"encoding/hex"
	"errors"
	"fmt"

	sphincsutil "github.com/kasperdi/SPHINCSPLUS-golang/util"
)

var (
	ErrValueOutOfRange = errors.New("value does not fit in the requested byte length")
	ErrInvalidHex      = errors.New("malformed hex input")
	ErrLength          = errors.New("unexpected byte length")
)

// ToByte encodes in as a big-endian integer of exactly outlen bytes.
// Values that do not fit are rejected rather than truncated.
func ToByte(in uint64, outlen int) ([]byte, error) {
	if outlen < 0 {
		return nil, fmt.Errorf("%w: negative length %d", ErrLength, outlen)
	}
	if outlen < 8 && in>>(8*uint(outlen)) != 0 {
		return nil, fmt.Errorf("%w: %d in %d bytes", ErrValueOutOfRange, in, outlen)
	}
	return sphincsutil.ToByte(in, outlen), nil
}

// MustToByte is ToByte for callers that already bounded the value.
func MustToByte(in uint64, outlen int) []byte {
	out, err := ToByte(in, outlen)
	if err != nil {
		panic(err)
	}
	return out
}

// BaseW splits X into outLen digits of logW bits each, most significant
// digit first. logW must divide 8.
func BaseW(X []byte, logW uint, outLen int) []int {
	return sphincsutil.Base_w(X, 1<<logW, outLen)
}

// Xor returns a ^ b; both must have the same length.
func Xor(a, b []byte) []byte {
	if len(a) != len(b) {
		panic(fmt.Sprintf("xor of %d and %d bytes", len(a), len(b)))
	}
	out := make([]byte, len(a))
	for i := range a {
		out[i] = a[i] ^ b[i]
	}
	return out
}

// HexToBytes decodes a hex string. Odd length or non-hex characters are
// fatal for the caller.
func HexToBytes(s string) ([]byte, error) {
	b, err := hex.DecodeString(s)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidHex, err)
	}
	return b, nil
}

// HexToDigest decodes a hex string that must encode exactly n bytes.
func HexToDigest(s string, n int) ([]byte, error) {
	b, err := HexToBytes(s)
	if err != nil {
		return nil, err
	}
	if len(b) != n {
		return nil, fmt.Errorf("%w: got %d bytes, want %d", ErrLength, len(b), n)
	}
	return b, nil
}

// Concat joins byte slices into a fresh buffer.
func Concat(parts ...[]byte) []byte {
	size := 0
	for _, p := range parts {
		size += len(p)
	}
	out := make([]byte, 0, size)
	for _, p := range parts {
		out = append(out, p...)
	}
	return out
}
