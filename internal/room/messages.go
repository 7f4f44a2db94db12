package room

type Conn interface {
	Send([]byte) error       // JSON control message
	SendBinary([]byte) error // msgpack state frame
	Close() error
}

// Join: issued once after hello parsed
type Join struct {
	Conn  Conn
	Name  string
	Reply chan<- JoinResult
}

type JoinResult struct {
	PlayerID string
	Pilot    bool
}

// Input: latest movement intent. Only the pilot's input reaches the simulation.
type Input struct {
	PlayerID string
	X, Y     float64
}

type Upgrade struct {
	PlayerID string
	Weapon   string
}

type Reset struct {
	PlayerID string
}

type Pause struct {
	PlayerID string
	On       bool
}

// Leave: issued on disconnect
type Leave struct {
	PlayerID string
}
