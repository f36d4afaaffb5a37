package fault

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xmss-hw/wotsref/parameters"
	"github.com/xmss-hw/wotsref/wots"
)

func TestTracker_ForgesObservedMessages(t *testing.T) {
	params := parameters.MakeWotsSHA256W16()
	o := newTestOracle(t, params, 1)
	defer o.Stop()

	msgA := bytes.Repeat([]byte{0x77}, 32)
	msgB := append([]byte(nil), msgA...)
	msgB[0] = 0x17

	sigA, err := o.Sign(msgA)
	require.NoError(t, err)
	tracker, err := NewTracker(params, o.PublicKey(), o.PublicSeed(), o.Address(), msgA, sigA)
	require.NoError(t, err)

	forged, err := tracker.Forge(msgA)
	require.NoError(t, err)
	assert.Equal(t, sigA, forged)

	// msgB lowers the first digit, which the checksum then pushes up
	forgeable, _, err := tracker.Forgeable(msgB)
	require.NoError(t, err)
	assert.False(t, forgeable)
	_, err = tracker.Forge(msgB)
	assert.ErrorIs(t, err, ErrNotForgeable)

	sigB, err := o.Sign(msgB)
	require.NoError(t, err)
	smaller, err := tracker.Observe(sigB)
	require.NoError(t, err)
	assert.True(t, smaller)
	assert.Equal(t, 1, tracker.Positions[0])

	forged, err = tracker.Forge(msgB)
	require.NoError(t, err)
	ok, err := wots.Verify(params, msgB, forged, o.PublicKey(), o.PublicSeed(), o.Address())
	require.NoError(t, err)
	assert.True(t, ok)

	smaller, err = tracker.Observe(sigA)
	require.NoError(t, err)
	assert.False(t, smaller)
}

func TestTracker_RejectsBadSignatures(t *testing.T) {
	params := parameters.MakeWotsSHA256W16()
	o := newTestOracle(t, params, 1)
	defer o.Stop()

	msg := bytes.Repeat([]byte{0x42}, 32)
	sig, err := o.Sign(msg)
	require.NoError(t, err)

	_, err = NewTracker(params, o.PublicKey(), o.PublicSeed(), o.Address(), bytes.Repeat([]byte{0x43}, 32), sig)
	assert.ErrorIs(t, err, ErrUnrecoverable)

	tracker, err := NewTracker(params, o.PublicKey(), o.PublicSeed(), o.Address(), msg, sig)
	require.NoError(t, err)
	broken := append([][]byte(nil), sig...)
	broken[3] = bytes.Repeat([]byte{0xee}, 32)
	_, err = tracker.Observe(broken)
	assert.ErrorIs(t, err, ErrUnrecoverable)
}

func TestRequiredSignatures(t *testing.T) {
	params := parameters.MakeWotsSHA256W16()
	o := newTestOracle(t, params, 5)
	defer o.Stop()

	msg := bytes.Repeat([]byte{0x88}, 32)

	n, _, err := RequiredSignatures(o, msg, msg, 10)
	require.NoError(t, err)
	assert.Equal(t, 0, n)

	target := bytes.Repeat([]byte{0xc9}, 32)
	n, tracker, err := RequiredSignatures(o, msg, target, 50)
	require.NoError(t, err)

	initial, err := wots.ChainLengths(params, msg)
	require.NoError(t, err)
	for i := range initial {
		assert.LessOrEqual(t, tracker.Positions[i], initial[i])
	}
	if n < 0 {
		_, err = tracker.Forge(target)
		assert.ErrorIs(t, err, ErrNotForgeable)
		return
	}
	forged, err := tracker.Forge(target)
	require.NoError(t, err)
	ok, err := wots.Verify(params, target, forged, o.PublicKey(), o.PublicSeed(), o.Address())
	require.NoError(t, err)
	assert.True(t, ok)
}
