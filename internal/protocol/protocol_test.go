package protocol

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"wavearena/internal/combat"
	"wavearena/internal/util"
)

func TestTimingSanity(t *testing.T) {
	require.Positive(t, SimTickHz)
	require.Positive(t, BroadcastHz)
	assert.Zero(t, SimTickHz%BroadcastHz, "broadcasts must land on whole ticks")
}

func TestEnvelopeRoundTrip(t *testing.T) {
	b, err := Encode(MsgInput, Input{Ax: 0.5, Ay: -1})
	require.NoError(t, err)
	assert.JSONEq(t, `{"t":"input","p":{"ax":0.5,"ay":-1}}`, string(b))

	env, err := DecodeEnvelope(b)
	require.NoError(t, err)
	assert.Equal(t, MsgInput, env.T)

	in, err := DecodePayload[Input](env)
	require.NoError(t, err)
	assert.Equal(t, Input{Ax: 0.5, Ay: -1}, in)
}

func TestEncodeRejectsEmpty(t *testing.T) {
	_, err := Encode("", Hello{})
	assert.Error(t, err)
	_, err = Encode(MsgHello, nil)
	assert.Error(t, err)
}

func TestDecodeRejectsBadFrames(t *testing.T) {
	_, err := DecodeEnvelope(nil)
	assert.Error(t, err)
	_, err = DecodeEnvelope([]byte(`{"p":{}}`))
	assert.Error(t, err)
	_, err = DecodeEnvelope([]byte(`{"t":`))
	assert.Error(t, err)

	_, err = DecodePayload[Upgrade](Envelope{T: MsgUpgrade})
	assert.ErrorContains(t, err, "empty payload")

	_, err = DecodePayload[Upgrade](Envelope{T: MsgUpgrade, P: json.RawMessage(`{"weapon":7}`)})
	assert.Error(t, err)
}

func TestStateRoundTrip(t *testing.T) {
	s := combat.NewSim(nil, nil, util.New(5), nil)
	for i := 0; i < 30; i++ {
		require.NoError(t, s.Advance(1.0/60))
	}
	want := State{Tick: 30, Pilot: "p1", Snap: s.Snapshot()}

	b, err := EncodeState(want)
	require.NoError(t, err)
	got, err := DecodeState(b)
	require.NoError(t, err)

	assert.Equal(t, want.Tick, got.Tick)
	assert.Equal(t, want.Pilot, got.Pilot)
	assert.Equal(t, want.Snap.Player, got.Snap.Player)
	assert.Equal(t, want.Snap.Round.Round, got.Snap.Round.Round)
	assert.Equal(t, len(want.Snap.Enemies), len(got.Snap.Enemies))

	_, err = DecodeState([]byte{0xc1})
	assert.Error(t, err)
}
