package protocol

import "wavearena/internal/combat"

type Welcome struct {
	PlayerID  string   `json:"playerId"`
	Pilot     bool     `json:"pilot"`
	TickHz    int      `json:"tickHz"`
	ArenaSize float64  `json:"arenaSize"`
	Weapons   []string `json:"weapons"`
}

// State is the periodic snapshot broadcast. Pilot names the player whose input steers.
type State struct {
	Tick  int             `msgpack:"tick"`
	Pilot string          `msgpack:"pilot"`
	Snap  combat.Snapshot `msgpack:"snap"`
}

type Log struct {
	T    float64 `json:"t"`
	Text string  `json:"text"`
}

type GameOver struct {
	GameID string `json:"gameId"`
	Round  int    `json:"round"`
	Score  int    `json:"score"`
}
