package network

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"wavearena/internal/protocol"
	"wavearena/internal/room"
)

var upgrader = websocket.Upgrader{
	// For dev, allow all origins. Lock this down in prod.
	CheckOrigin: func(r *http.Request) bool { return true },
}

type Server struct {
	rooms *room.Manager
}

func NewServer(m *room.Manager) *Server {
	return &Server{rooms: m}
}

// Routes registers the websocket endpoint and the room listing.
func (s *Server) Routes() *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", s.handleWS)
	mux.HandleFunc("/rooms", s.handleRooms)
	return mux
}

func (s *Server) handleRooms(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		writeJSON(w, http.StatusOK, s.rooms.ListRooms())
	case http.MethodPost:
		writeJSON(w, http.StatusCreated, room.RoomInfo{Code: s.rooms.CreateRoom()})
	default:
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Println("write json:", err)
	}
}

func (s *Server) handleWS(w http.ResponseWriter, r *http.Request) {
	code := r.URL.Query().Get("room")
	if code == "" {
		http.Error(w, "missing room", http.StatusBadRequest)
		return
	}

	// Upgrade HTTP -> WebSocket
	c, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Println("upgrade:", err)
		return
	}
	conn := &wsConn{c: c}
	defer conn.Close()

	c.SetReadLimit(readLimit)
	_ = c.SetReadDeadline(time.Now().Add(pongWait))
	c.SetPongHandler(func(string) error {
		_ = c.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	hello, err := readHello(c)
	if err != nil {
		log.Println("hello:", err)
		return
	}

	rm := s.rooms.GetOrCreateRoom(code)
	reply := make(chan room.JoinResult, 1)
	if !rm.Send(room.Join{Conn: conn, Name: hello.Name, Reply: reply}) {
		return
	}
	var joined room.JoinResult
	select {
	case joined = <-reply:
	case <-time.After(writeWait):
		log.Println("join timed out for room", code)
		return
	}
	log.Printf("room %s: %s joined as %s (pilot=%v)", code, hello.Name, joined.PlayerID, joined.Pilot)

	done := make(chan struct{})
	defer close(done)
	go pingLoop(conn, done)

	readLoop(c, rm, joined.PlayerID)
	rm.Send(room.Leave{PlayerID: joined.PlayerID})
}

func readHello(c *websocket.Conn) (protocol.Hello, error) {
	_, msg, err := c.ReadMessage()
	if err != nil {
		return protocol.Hello{}, err
	}
	env, err := protocol.DecodeEnvelope(msg)
	if err != nil {
		return protocol.Hello{}, err
	}
	if env.T != protocol.MsgHello {
		return protocol.Hello{}, fmt.Errorf("expected %s message, got %q", protocol.MsgHello, env.T)
	}
	return protocol.DecodePayload[protocol.Hello](env)
}

func pingLoop(conn *wsConn, done <-chan struct{}) {
	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			if err := conn.ping(); err != nil {
				return
			}
		case <-done:
			return
		}
	}
}

// readLoop forwards client messages to the room until the socket fails.
func readLoop(c *websocket.Conn, rm *room.Room, playerID string) {
	for {
		_, msg, err := c.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				log.Println("read:", err)
			}
			return
		}
		env, err := protocol.DecodeEnvelope(msg)
		if err != nil {
			log.Printf("%s: bad message: %v", playerID, err)
			continue
		}
		cmd, err := toCommand(env, playerID)
		if err != nil {
			log.Printf("%s: bad %s payload: %v", playerID, env.T, err)
			continue
		}
		if cmd == nil {
			continue
		}
		if !rm.Send(cmd) {
			return
		}
	}
}

func toCommand(env protocol.Envelope, playerID string) (any, error) {
	switch env.T {
	case protocol.MsgInput:
		in, err := protocol.DecodePayload[protocol.Input](env)
		if err != nil {
			return nil, err
		}
		return room.Input{PlayerID: playerID, X: in.Ax, Y: in.Ay}, nil
	case protocol.MsgUpgrade:
		up, err := protocol.DecodePayload[protocol.Upgrade](env)
		if err != nil {
			return nil, err
		}
		return room.Upgrade{PlayerID: playerID, Weapon: up.Weapon}, nil
	case protocol.MsgPause:
		p, err := protocol.DecodePayload[protocol.Pause](env)
		if err != nil {
			return nil, err
		}
		return room.Pause{PlayerID: playerID, On: p.On}, nil
	case protocol.MsgReset:
		return room.Reset{PlayerID: playerID}, nil
	default:
		return nil, nil
	}
}
