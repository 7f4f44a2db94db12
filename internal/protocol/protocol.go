package protocol

import (
	"encoding/json"
)

const (
	MsgHello   = "hello"
	MsgInput   = "input"
	MsgUpgrade = "upgrade"
	MsgReset   = "reset"
	MsgPause   = "pause"

	MsgWelcome  = "welcome"
	MsgState    = "state" // sent as a binary msgpack frame, never wrapped in an Envelope
	MsgLog      = "log"
	MsgGameOver = "game_over"
)

const (
	SimTickHz   = 60
	BroadcastHz = 20
)

const Version = 1

// Envelope wraps every JSON control message.
type Envelope struct {
	T string          `json:"t"`
	P json.RawMessage `json:"p"` // raw payload bytes
}
