package room

import (
	"context"
	"fmt"
	"log"
	"sync"
	"sync/atomic"
	"time"

	"wavearena/internal/combat"
	"wavearena/internal/config"
	"wavearena/internal/protocol"
	"wavearena/internal/util"
)

// Options configures every room a Manager creates. Zero values fall back to the
// protocol defaults and the stock tuning.
type Options struct {
	TickHz      int
	BroadcastHz int
	Tuning      *config.TuningConfig
	Weapons     *config.WeaponsConfig
	Seed        int64 // 0 seeds from the clock
	Sink        ScoreSink
}

type Room struct {
	Inbox          chan any
	tickHz         int
	broadcastEvery int
	ticks          int
	sim            *combat.Sim
	clients        map[string]Conn
	players        atomic.Int32
	names          map[string]string
	order          []string // join order; order[0] is the pilot
	nextID         int
	games          int
	submitted      bool
	pending        []protocol.Log
	sink           ScoreSink
	quit           chan struct{}
	stopOnce       sync.Once

	Code    string            // room code (e.g. "ABC123")
	OnEmpty func(code string) // called when last player leaves
}

func New(opts Options) *Room {
	tickHz := opts.TickHz
	if tickHz <= 0 {
		tickHz = protocol.SimTickHz
	}
	bHz := opts.BroadcastHz
	if bHz <= 0 {
		bHz = protocol.BroadcastHz
	}
	broadcastEvery := tickHz / bHz
	if broadcastEvery <= 0 {
		broadcastEvery = 1
	}
	var rng util.Rand
	if opts.Seed != 0 {
		rng = util.New(opts.Seed)
	} else {
		rng = util.NewTimeSeeded()
	}
	sink := opts.Sink
	if sink == nil {
		sink = LogSink{}
	}
	r := &Room{
		Inbox:          make(chan any, 256),
		tickHz:         tickHz,
		broadcastEvery: broadcastEvery,
		clients:        make(map[string]Conn),
		names:          make(map[string]string),
		nextID:         1,
		games:          1,
		sink:           sink,
		quit:           make(chan struct{}),
	}
	r.sim = combat.NewSim(opts.Tuning, combat.NewArsenal(opts.Weapons), rng, r.onEvent)
	return r
}

func (r *Room) Stop() {
	r.stopOnce.Do(func() { close(r.quit) })
}

// Send queues a command. It reports false once the room has stopped.
func (r *Room) Send(cmd any) bool {
	select {
	case <-r.quit:
		return false
	default:
	}
	select {
	case r.Inbox <- cmd:
		return true
	case <-r.quit:
		return false
	}
}

// NumPlayers returns the current number of connected clients.
func (r *Room) NumPlayers() int {
	return int(r.players.Load())
}

func (r *Room) Run() {
	ticker := time.NewTicker(time.Second / time.Duration(r.tickHz))
	defer ticker.Stop()

	for {
		select {
		case <-r.quit:
			return
		case cmd := <-r.Inbox:
			r.handleCommand(cmd)
		case <-ticker.C:
			r.step()
		}
	}
}

func (r *Room) step() {
	if err := r.sim.Advance(1 / float64(r.tickHz)); err != nil {
		log.Printf("room %s: advance: %v", r.Code, err)
		return
	}
	r.ticks++
	r.flushLogs()
	if r.sim.Terminal() && !r.submitted {
		r.finishGame()
	}
	if r.ticks%r.broadcastEvery == 0 {
		r.broadcastState()
	}
}

func (r *Room) onEvent(ev combat.Event) {
	if ev.Type != "LogLine" {
		return
	}
	text, _ := ev.Payload["text"].(string)
	log.Printf("room %s: %s", r.Code, text)
	r.pending = append(r.pending, protocol.Log{T: ev.T, Text: text})
}

func (r *Room) flushLogs() {
	for _, l := range r.pending {
		if b, err := protocol.Encode(protocol.MsgLog, l); err == nil {
			r.broadcast(b)
		}
	}
	r.pending = r.pending[:0]
}

func (r *Room) gameID() string {
	return fmt.Sprintf("%s-%d", r.Code, r.games)
}

// finishGame reports the score exactly once per game.
func (r *Room) finishGame() {
	r.submitted = true
	round := r.sim.Round()
	entry := ScoreEntry{
		GameID: r.gameID(),
		Score:  round.Score,
		Round:  round.Round,
	}
	if pilot := r.pilot(); pilot != "" {
		entry.PlayerID = pilot
		entry.PlayerName = r.names[pilot]
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := r.sink.Submit(ctx, entry); err != nil {
		log.Printf("room %s: submit score: %v", r.Code, err)
	}
	if b, err := protocol.Encode(protocol.MsgGameOver, protocol.GameOver{
		GameID: entry.GameID, Round: entry.Round, Score: entry.Score,
	}); err == nil {
		r.broadcast(b)
	}
}

func (r *Room) pilot() string {
	if len(r.order) == 0 {
		return ""
	}
	return r.order[0]
}

func (r *Room) isPilot(playerID string) bool {
	return playerID != "" && playerID == r.pilot()
}

func (r *Room) handleCommand(cmd any) {
	switch c := cmd.(type) {
	case Join:
		r.handleJoin(c)
	case Input:
		if !r.isPilot(c.PlayerID) {
			return
		}
		if err := r.sim.SetInput(combat.Vec2{X: c.X, Y: c.Y}); err != nil {
			log.Printf("room %s: input from %s: %v", r.Code, c.PlayerID, err)
		}
	case Upgrade:
		if !r.isPilot(c.PlayerID) {
			return
		}
		// client ids are untrusted; the simulation panics on unknown weapons
		if !r.sim.Arsenal().Has(c.Weapon) {
			log.Printf("room %s: %s asked for unknown weapon %q", r.Code, c.PlayerID, c.Weapon)
			return
		}
		r.sim.SelectUpgrade(c.Weapon)
	case Reset:
		if !r.isPilot(c.PlayerID) {
			return
		}
		r.games++
		r.submitted = false
		r.sim.Reset()
		r.broadcastState()
	case Pause:
		if !r.isPilot(c.PlayerID) {
			return
		}
		r.sim.SetPaused(c.On)
	case Leave:
		r.handleLeave(c.PlayerID)
	}
}

func (r *Room) handleJoin(c Join) {
	idNum := r.nextID
	playerID := fmt.Sprintf("p%d", idNum)
	r.nextID++
	name := c.Name
	if name == "" {
		name = fmt.Sprintf("Player %d", idNum)
	}
	r.clients[playerID] = c.Conn
	r.names[playerID] = name
	r.order = append(r.order, playerID)
	r.players.Store(int32(len(r.clients)))
	pilot := r.isPilot(playerID)

	if b, err := protocol.Encode(protocol.MsgWelcome, protocol.Welcome{
		PlayerID:  playerID,
		Pilot:     pilot,
		TickHz:    r.tickHz,
		ArenaSize: r.sim.ArenaSize(),
		Weapons:   r.sim.Arsenal().IDs(),
	}); err == nil {
		_ = c.Conn.Send(b)
	}
	r.sendStateTo(c.Conn)
	if c.Reply != nil {
		c.Reply <- JoinResult{PlayerID: playerID, Pilot: pilot}
	}
}

func (r *Room) handleLeave(playerID string) {
	c, ok := r.clients[playerID]
	if !ok {
		return
	}
	wasPilot := r.isPilot(playerID)
	r.removePlayer(playerID)
	_ = c.Close()
	if wasPilot {
		// the next pilot starts from rest
		_ = r.sim.SetInput(combat.Vec2{})
	}
	r.checkEmpty()
}

func (r *Room) checkEmpty() {
	if len(r.clients) == 0 && r.OnEmpty != nil && r.Code != "" {
		r.OnEmpty(r.Code)
	}
}

func (r *Room) removePlayer(playerID string) {
	delete(r.clients, playerID)
	delete(r.names, playerID)
	for i, id := range r.order {
		if id == playerID {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	r.players.Store(int32(len(r.clients)))
}

func (r *Room) buildState() protocol.State {
	return protocol.State{Tick: r.ticks, Pilot: r.pilot(), Snap: r.sim.Snapshot()}
}

func (r *Room) broadcastState() {
	b, err := protocol.EncodeState(r.buildState())
	if err != nil {
		log.Printf("room %s: %v", r.Code, err)
		return
	}

	var failed []string
	for id, c := range r.clients {
		if err := c.SendBinary(b); err != nil {
			failed = append(failed, id)
		}
	}
	r.drop(failed)
}

func (r *Room) broadcast(b []byte) {
	var failed []string
	for id, c := range r.clients {
		if err := c.Send(b); err != nil {
			failed = append(failed, id)
		}
	}
	r.drop(failed)
}

func (r *Room) drop(ids []string) {
	for _, id := range ids {
		if c, ok := r.clients[id]; ok {
			_ = c.Close()
		}
		r.removePlayer(id)
	}
	if len(ids) > 0 {
		r.checkEmpty()
	}
}

func (r *Room) sendStateTo(c Conn) {
	b, err := protocol.EncodeState(r.buildState())
	if err != nil {
		return
	}
	_ = c.SendBinary(b)
}
