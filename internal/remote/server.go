// Package remote exposes a WebSocket endpoint for changing the surface
// parameters from outside the viewer.
package remote

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/Faultbox/surfacelab/internal/logger"
	"github.com/Faultbox/surfacelab/pkg/surface"
)

// Path is the WebSocket endpoint.
const Path = "/ws"

const writeTimeout = 5 * time.Second

// Update is a parameter change sent by a client. Missing fields keep
// their current value.
type Update struct {
	A   *float64 `json:"a,omitempty"`
	C   *float64 `json:"c,omitempty"`
	Phi *float64 `json:"phi,omitempty"`
}

// Apply merges the update into p.
func (u Update) Apply(p surface.Params) (surface.Params, error) {
	if u.A == nil && u.C == nil && u.Phi == nil {
		return p, errors.New("no parameters in message")
	}
	if u.A != nil {
		p.A = *u.A
	}
	if u.C != nil {
		p.C = *u.C
	}
	if u.Phi != nil {
		p.Phi = *u.Phi
	}
	return p, p.Validate()
}

// Reply answers every client message.
type Reply struct {
	Type  string `json:"type"`
	Error string `json:"error,omitempty"`
}

// Stats describes a finished rebuild. It is broadcast to every client.
type Stats struct {
	Type       string  `json:"type"`
	A          float64 `json:"a"`
	C          float64 `json:"c"`
	Phi        float64 `json:"phi"`
	Variant    string  `json:"variant"`
	Vertices   int     `json:"vertices"`
	Primitives int     `json:"primitives"`
	BuildMS    float64 `json:"build_ms"`
}

// NewStats summarizes a mesh for broadcasting.
func NewStats(m *surface.Mesh, variant surface.Variant, elapsed time.Duration) Stats {
	return Stats{
		Type:       "stats",
		A:          m.Params.A,
		C:          m.Params.C,
		Phi:        m.Params.Phi,
		Variant:    variant.String(),
		Vertices:   m.VertexCount(),
		Primitives: m.PrimitiveCount(),
		BuildMS:    float64(elapsed) / float64(time.Millisecond),
	}
}

type client struct {
	conn  *websocket.Conn
	mu    sync.Mutex
	stats chan Stats
	done  chan struct{}
}

func newClient(conn *websocket.Conn) *client {
	return &client{
		conn:  conn,
		stats: make(chan Stats, 1),
		done:  make(chan struct{}),
	}
}

// queue replaces any stats the writer has not sent yet.
func (c *client) queue(st Stats) {
	for {
		select {
		case c.stats <- st:
			return
		default:
		}
		select {
		case <-c.stats:
		default:
		}
	}
}

func (c *client) write(v any) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.conn.SetWriteDeadline(time.Now().Add(writeTimeout))
	return c.conn.WriteJSON(v)
}

// Server accepts parameter updates over WebSocket.
type Server struct {
	log      *zap.Logger
	upgrader websocket.Upgrader
	updates  chan surface.Params

	mu      sync.Mutex
	current surface.Params
	clients map[*client]struct{}
}

// New creates a server starting from the given parameters.
func New(initial surface.Params) *Server {
	return &Server{
		log: logger.Named("remote"),
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool { return true },
		},
		updates: make(chan surface.Params, 1),
		current: initial,
		clients: make(map[*client]struct{}),
	}
}

// Updates delivers validated parameter sets. Only the newest unread set
// is kept.
func (s *Server) Updates() <-chan surface.Params {
	return s.updates
}

// Handler returns the HTTP handler serving the endpoint.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc(Path, s.handleWebSocket)
	return mux
}

// ListenAndServe serves on addr until ctx is cancelled.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("listening on %s: %w", addr, err)
	}
	return s.Serve(ctx, ln)
}

// Serve serves on ln until ctx is cancelled.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	done := make(chan struct{})
	defer close(done)
	go func() {
		select {
		case <-ctx.Done():
		case <-done:
			return
		}
		shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		srv.Shutdown(shutdownCtx)
		s.closeClients()
	}()

	s.log.Info("remote control listening", zap.String("addr", ln.Addr().String()))
	if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("serving remote control: %w", err)
	}
	return nil
}

// SetCurrent records the parameters the viewer is showing, so partial
// updates merge against them.
func (s *Server) SetCurrent(p surface.Params) {
	s.mu.Lock()
	s.current = p
	s.mu.Unlock()
}

// Broadcast queues stats for every connected client and returns without
// waiting for the writes. Clients that fail to receive are dropped.
func (s *Server) Broadcast(st Stats) {
	s.mu.Lock()
	clients := make([]*client, 0, len(s.clients))
	for c := range s.clients {
		clients = append(clients, c)
	}
	s.mu.Unlock()

	for _, c := range clients {
		c.queue(st)
	}
}

// writeStats sends queued stats to c until it disconnects. A slow client
// only ever holds back its own latest stats.
func (s *Server) writeStats(c *client) {
	for {
		select {
		case <-c.done:
			return
		case st := <-c.stats:
			if err := c.write(st); err != nil {
				s.log.Debug("dropping client", zap.Error(err))
				s.remove(c)
				c.conn.Close()
				return
			}
		}
	}
}

// Clients returns the number of connected clients.
func (s *Server) Clients() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.clients)
}

func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.log.Warn("websocket upgrade failed", zap.Error(err))
		return
	}
	c := newClient(conn)
	s.mu.Lock()
	s.clients[c] = struct{}{}
	s.mu.Unlock()
	go s.writeStats(c)
	defer func() {
		close(c.done)
		s.remove(c)
		conn.Close()
	}()

	s.log.Debug("client connected", zap.String("remote", r.RemoteAddr))

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			if !websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				s.log.Debug("websocket read failed", zap.Error(err))
			}
			return
		}

		reply := Reply{Type: "ack"}
		if p, err := s.handleMessage(data); err != nil {
			reply = Reply{Type: "error", Error: err.Error()}
			s.log.Debug("rejected update", zap.Error(err))
		} else {
			s.log.Info("remote update", zap.Stringer("params", p))
		}
		if err := c.write(reply); err != nil {
			return
		}
	}
}

func (s *Server) handleMessage(data []byte) (surface.Params, error) {
	var u Update
	if err := json.Unmarshal(data, &u); err != nil {
		return surface.Params{}, fmt.Errorf("decoding message: %w", err)
	}

	s.mu.Lock()
	p, err := u.Apply(s.current)
	if err == nil {
		s.current = p
	}
	s.mu.Unlock()
	if err != nil {
		return p, err
	}

	s.forward(p)
	return p, nil
}

func (s *Server) forward(p surface.Params) {
	for {
		select {
		case s.updates <- p:
			return
		default:
		}
		select {
		case <-s.updates:
		default:
		}
	}
}

func (s *Server) remove(c *client) {
	s.mu.Lock()
	delete(s.clients, c)
	s.mu.Unlock()
}

func (s *Server) closeClients() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for c := range s.clients {
		c.conn.Close()
		delete(s.clients, c)
	}
}
