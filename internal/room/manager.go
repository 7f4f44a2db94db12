package room

import (
	"slices"
	"strings"
	"sync"

	"wavearena/internal/util"
)

type RoomInfo struct {
	Code    string `json:"code"`
	Players int    `json:"players"`
}

// codeAlphabet leaves out 0/O and 1/I.
const (
	codeAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"
	codeLen      = 6
)

// Manager owns the running rooms. Each room runs in its own goroutine and is forgotten
// (and stopped) once its last player leaves.
type Manager struct {
	opts Options

	mu    sync.Mutex
	rooms map[string]*Room
	codes util.Rand // guarded by mu
}

func NewManager(opts Options) *Manager {
	var codes util.Rand
	if opts.Seed != 0 {
		codes = util.New(opts.Seed)
	} else {
		codes = util.NewTimeSeeded()
	}
	return &Manager{opts: opts, rooms: map[string]*Room{}, codes: codes}
}

// GetOrCreateRoom joins an existing room or opens one under code. An empty code is
// never a room.
func (m *Manager) GetOrCreateRoom(code string) *Room {
	if code == "" {
		return nil
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if r := m.rooms[code]; r != nil {
		return r
	}
	return m.open(code)
}

// CreateRoom opens a room under a fresh code.
func (m *Manager) CreateRoom() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	code := m.newCode()
	for m.rooms[code] != nil {
		code = m.newCode()
	}
	m.open(code)
	return code
}

func (m *Manager) newCode() string {
	var sb strings.Builder
	for i := 0; i < codeLen; i++ {
		sb.WriteByte(codeAlphabet[m.codes.Intn(len(codeAlphabet))])
	}
	return sb.String()
}

// open must be called with mu held.
func (m *Manager) open(code string) *Room {
	r := New(m.opts)
	r.Code = code
	r.OnEmpty = m.forget
	m.rooms[code] = r
	go r.Run()
	return r
}

func (m *Manager) forget(code string) {
	m.mu.Lock()
	r := m.rooms[code]
	delete(m.rooms, code)
	m.mu.Unlock()
	if r != nil {
		r.Stop()
	}
}

// ListRooms is sorted by code.
func (m *Manager) ListRooms() []RoomInfo {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]RoomInfo, 0, len(m.rooms))
	for code, r := range m.rooms {
		out = append(out, RoomInfo{Code: code, Players: r.NumPlayers()})
	}
	slices.SortFunc(out, func(a, b RoomInfo) int { return strings.Compare(a.Code, b.Code) })
	return out
}

func (m *Manager) Close() {
	m.mu.Lock()
	rooms := m.rooms
	m.rooms = map[string]*Room{}
	m.mu.Unlock()
	for _, r := range rooms {
		r.Stop()
	}
}
