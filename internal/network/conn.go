package network

import (
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = 25 * time.Second
	readLimit  = 1 << 20 // 1MB
)

// wsConn adapts a websocket to room.Conn. gorilla allows one concurrent writer, so
// the room goroutine and the ping loop share mu.
type wsConn struct {
	mu sync.Mutex
	c  *websocket.Conn
}

func (w *wsConn) write(kind int, b []byte) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	_ = w.c.SetWriteDeadline(time.Now().Add(writeWait))
	return w.c.WriteMessage(kind, b)
}

func (w *wsConn) Send(b []byte) error       { return w.write(websocket.TextMessage, b) }
func (w *wsConn) SendBinary(b []byte) error { return w.write(websocket.BinaryMessage, b) }
func (w *wsConn) ping() error               { return w.write(websocket.PingMessage, nil) }

func (w *wsConn) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	_ = w.c.SetWriteDeadline(time.Now().Add(writeWait))
	_ = w.c.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
	return w.c.Close()
}
