package room

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"wavearena/internal/combat"
	"wavearena/internal/config"
	"wavearena/internal/protocol"
)

type fakeConn struct {
	text   [][]byte
	bin    [][]byte
	closed bool
	fail   bool
}

func (f *fakeConn) Send(b []byte) error {
	if f.fail {
		return errors.New("broken pipe")
	}
	f.text = append(f.text, b)
	return nil
}

func (f *fakeConn) SendBinary(b []byte) error {
	if f.fail {
		return errors.New("broken pipe")
	}
	f.bin = append(f.bin, b)
	return nil
}

func (f *fakeConn) Close() error {
	f.closed = true
	return nil
}

// types returns the envelope types of every text message received.
func (f *fakeConn) types(t *testing.T) []string {
	t.Helper()
	var out []string
	for _, b := range f.text {
		env, err := protocol.DecodeEnvelope(b)
		require.NoError(t, err)
		out = append(out, env.T)
	}
	return out
}

type memSink struct{ entries []ScoreEntry }

func (m *memSink) Submit(_ context.Context, e ScoreEntry) error {
	m.entries = append(m.entries, e)
	return nil
}

func join(t *testing.T, r *Room, name string) (*fakeConn, JoinResult) {
	t.Helper()
	c := &fakeConn{}
	reply := make(chan JoinResult, 1)
	r.handleCommand(Join{Conn: c, Name: name, Reply: reply})
	return c, <-reply
}

// deadlyTuning lets a fresh wave reach and kill the player within a few ticks.
func deadlyTuning() *config.TuningConfig {
	cfg := config.Default()
	cfg.Player.MaxHealth = 1
	normal := cfg.Enemies["normal"]
	normal.Speed = 200
	cfg.Enemies["normal"] = normal
	return cfg
}

func TestJoinAssignsPilot(t *testing.T) {
	r := New(Options{Seed: 1})
	c1, j1 := join(t, r, "ace")
	c2, j2 := join(t, r, "")

	assert.Equal(t, JoinResult{PlayerID: "p1", Pilot: true}, j1)
	assert.Equal(t, JoinResult{PlayerID: "p2", Pilot: false}, j2)
	assert.Equal(t, "Player 2", r.names["p2"])
	assert.Equal(t, 2, r.NumPlayers())

	require.Len(t, c1.text, 1)
	env, err := protocol.DecodeEnvelope(c1.text[0])
	require.NoError(t, err)
	w, err := protocol.DecodePayload[protocol.Welcome](env)
	require.NoError(t, err)
	assert.Equal(t, "p1", w.PlayerID)
	assert.True(t, w.Pilot)
	assert.Equal(t, protocol.SimTickHz, w.TickHz)
	assert.Equal(t, 1000.0, w.ArenaSize)
	assert.Len(t, w.Weapons, 19)

	assert.Len(t, c1.bin, 1)
	assert.Len(t, c2.bin, 1)
}

func TestOnlyPilotControls(t *testing.T) {
	r := New(Options{Seed: 1})
	join(t, r, "ace")
	join(t, r, "watcher")

	r.handleCommand(Input{PlayerID: "p2", X: 1})
	assert.Equal(t, combat.Vec2{}, r.sim.Player().Intent)
	r.handleCommand(Pause{PlayerID: "p2", On: true})
	assert.False(t, r.sim.Paused())

	r.handleCommand(Input{PlayerID: "p1", X: 0, Y: -3})
	assert.Equal(t, combat.Vec2{X: 0, Y: -1}, r.sim.Player().Intent)
	r.handleCommand(Pause{PlayerID: "p1", On: true})
	assert.True(t, r.sim.Paused())

	assert.NotPanics(t, func() {
		r.handleCommand(Upgrade{PlayerID: "p1", Weapon: "bfg9000"})
	})
	assert.Equal(t, "pistol", r.sim.Player().Weapon)
}

func TestScoreSubmittedOncePerGame(t *testing.T) {
	sink := &memSink{}
	r := New(Options{Seed: 1, Tuning: deadlyTuning(), Sink: sink})
	r.Code = "ARENA"
	c, _ := join(t, r, "ace")

	for i := 0; i < 120 && !r.sim.Terminal(); i++ {
		r.step()
	}
	require.True(t, r.sim.Terminal())
	for i := 0; i < 30; i++ {
		r.step()
	}
	require.Len(t, sink.entries, 1)
	e := sink.entries[0]
	assert.Equal(t, "ARENA-1", e.GameID)
	assert.Equal(t, "ace", e.PlayerName)
	assert.Equal(t, "p1", e.PlayerID)
	assert.Equal(t, 1, e.Round)
	assert.Contains(t, c.types(t), protocol.MsgGameOver)

	r.handleCommand(Reset{PlayerID: "p1"})
	assert.False(t, r.sim.Terminal())
	for i := 0; i < 120 && !r.sim.Terminal(); i++ {
		r.step()
	}
	require.Len(t, sink.entries, 2)
	assert.Equal(t, "ARENA-2", sink.entries[1].GameID)
}

func TestBroadcastCadence(t *testing.T) {
	r := New(Options{Seed: 1, TickHz: 60, BroadcastHz: 20})
	c, _ := join(t, r, "ace")
	require.Len(t, c.bin, 1)

	for i := 0; i < 6; i++ {
		r.step()
	}
	require.Len(t, c.bin, 3)

	st, err := protocol.DecodeState(c.bin[2])
	require.NoError(t, err)
	assert.Equal(t, 6, st.Tick)
	assert.Equal(t, "p1", st.Pilot)
	assert.Equal(t, 6, st.Snap.Tick)
}

func TestFailedSendDropsClient(t *testing.T) {
	r := New(Options{Seed: 1})
	r.Code = "DROP"
	var emptied string
	r.OnEmpty = func(code string) { emptied = code }

	c, _ := join(t, r, "ace")
	c.fail = true
	r.broadcastState()

	assert.True(t, c.closed)
	assert.Zero(t, r.NumPlayers())
	assert.Equal(t, "DROP", emptied)
}

func TestLeavePromotesNextPilot(t *testing.T) {
	r := New(Options{Seed: 1})
	c1, _ := join(t, r, "ace")
	join(t, r, "next")
	r.handleCommand(Input{PlayerID: "p1", X: 1})

	r.handleCommand(Leave{PlayerID: "p1"})
	assert.True(t, c1.closed)
	assert.Equal(t, "p2", r.pilot())
	assert.Equal(t, combat.Vec2{}, r.sim.Player().Intent)

	r.handleCommand(Input{PlayerID: "p2", Y: 1})
	assert.Equal(t, combat.Vec2{Y: 1}, r.sim.Player().Intent)

	r.handleCommand(Leave{PlayerID: "p1"})
	assert.Equal(t, 1, r.NumPlayers())
}

func TestSendAfterStop(t *testing.T) {
	r := New(Options{Seed: 1})
	assert.True(t, r.Send(Leave{PlayerID: "nobody"}))
	r.Stop()
	r.Stop()
	assert.False(t, r.Send(Leave{PlayerID: "nobody"}))
}

func TestManagerRooms(t *testing.T) {
	m := NewManager(Options{Seed: 1})
	t.Cleanup(m.Close)

	code := m.CreateRoom()
	assert.Len(t, code, 6)
	assert.Same(t, m.GetOrCreateRoom(code), m.GetOrCreateRoom(code))
	assert.Nil(t, m.GetOrCreateRoom(""))

	m.GetOrCreateRoom("AAAAAA")
	rooms := m.ListRooms()
	require.Len(t, rooms, 2)
	assert.Contains(t, rooms, RoomInfo{Code: "AAAAAA", Players: 0})
	assert.Contains(t, rooms, RoomInfo{Code: code, Players: 0})
	assert.Less(t, rooms[0].Code, rooms[1].Code)

	m.forget("AAAAAA")
	assert.Len(t, m.ListRooms(), 1)
	m.forget("AAAAAA")
}

func TestManagerCodesFollowSeed(t *testing.T) {
	a, b := NewManager(Options{Seed: 9}), NewManager(Options{Seed: 9})
	t.Cleanup(a.Close)
	t.Cleanup(b.Close)

	for i := 0; i < 3; i++ {
		code := a.CreateRoom()
		assert.Equal(t, code, b.CreateRoom())
		for _, c := range code {
			assert.True(t, strings.ContainsRune(codeAlphabet, c), code)
		}
	}
	assert.Len(t, a.ListRooms(), 3)
}
