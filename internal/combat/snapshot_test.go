package combat

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vmihailenco/msgpack/v5"

	"wavearena/internal/config"
	"wavearena/internal/util"
)

func TestSaveLoadReplaysIdentically(t *testing.T) {
	src := func() util.Rand { return &util.Fixed{Values: []float64{0.5}} }
	a := NewSim(nil, nil, src(), nil)
	require.NoError(t, a.SetInput(Vec2{X: 0.3, Y: -0.7}))
	for i := 0; i < 120; i++ {
		require.NoError(t, a.Advance(frame))
	}

	blob, err := a.Save()
	require.NoError(t, err)
	b, err := Load(blob, nil, nil, src(), nil)
	require.NoError(t, err)
	assert.Equal(t, a.Snapshot(), b.Snapshot())

	for i := 0; i < 300; i++ {
		require.NoError(t, a.Advance(frame))
		require.NoError(t, b.Advance(frame))
	}
	assert.Equal(t, a.Snapshot(), b.Snapshot())
}

func TestSaveKeepsBossState(t *testing.T) {
	s := newTestSim(t)
	s.SpawnBoss(4)
	s.bosses[0].BurstEnd = 12.5
	s.bosses[0].Phase = 1.25
	s.bosses[0].HP = 321

	blob, err := s.Save()
	require.NoError(t, err)
	snap, err := DecodeSnapshot(blob)
	require.NoError(t, err)

	require.Len(t, snap.Bosses, 1)
	assert.Equal(t, s.bosses[0], snap.Bosses[0])
}

func TestDecodeRejectsBadInput(t *testing.T) {
	_, err := DecodeSnapshot([]byte("not msgpack"))
	assert.Error(t, err)

	blob, err := msgpack.Marshal(&Snapshot{Version: 9})
	require.NoError(t, err)
	_, err = DecodeSnapshot(blob)
	assert.ErrorContains(t, err, "unsupported version 9")
}

func TestLoadChecksTuning(t *testing.T) {
	s := newTestSim(t)
	blob, err := s.Save()
	require.NoError(t, err)

	small := config.Default()
	small.Arena.Size = 500
	_, err = Load(blob, small, nil, nil, nil)
	assert.ErrorContains(t, err, "arena size")

	s.player.Weapon = "railgun"
	blob, err = s.Save()
	require.NoError(t, err)
	_, err = Load(blob, nil, nil, nil, nil)
	assert.ErrorContains(t, err, "unknown weapon")
}
