// Package server streams games to browser spectators over WebSocket.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gorilla/websocket"

	"github.com/lox/cardwar/internal/game"
	"github.com/lox/cardwar/internal/runner"
)

var errUnknownEvent = errors.New("server: unknown event type")

// GameSource is the game being watched
type GameSource interface {
	Snapshot() (runner.Snapshot, bool)
	Restart()
}

// Server represents the WebSocket server
type Server struct {
	addr        string
	upgrader    websocket.Upgrader
	source      GameSource
	logger      *log.Logger
	mu          sync.RWMutex
	connections map[*Connection]bool
}

// NewServer creates a new WebSocket server
func NewServer(addr string, source GameSource, logger *log.Logger) *Server {
	return &Server{
		addr:   addr,
		source: source,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				// Spectators are read-only; any page may watch.
				return true
			},
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
		connections: make(map[*Connection]bool),
		logger:      logger.WithPrefix("server"),
	}
}

// Handler returns the HTTP routes
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", s.handleWebSocket)
	mux.HandleFunc("/health", s.handleHealth)
	mux.HandleFunc("/state", s.handleState)
	mux.HandleFunc("/restart", s.handleRestart)
	return mux
}

// Start serves until ctx is cancelled
func (s *Server) Start(ctx context.Context) error {
	httpServer := &http.Server{
		Addr:              s.addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = httpServer.Shutdown(shutdownCtx)
		s.Stop()
	}()

	s.logger.Info("Starting WebSocket server", "addr", s.addr)
	if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("server: %w", err)
	}
	return nil
}

// Stop closes every spectator connection
func (s *Server) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for conn := range s.connections {
		_ = conn.Close()
		delete(s.connections, conn)
	}
}

// ConnectionCount returns the number of connected spectators
func (s *Server) ConnectionCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.connections)
}

// OnEvent broadcasts runner events to every spectator
func (s *Server) OnEvent(ev game.Event) {
	msg, err := EventMessage(ev)
	if err != nil {
		s.logger.Error("Failed to encode event", "type", ev.EventType(), "error", err)
		return
	}
	s.Broadcast(msg)
}

// Broadcast sends msg to every connection
func (s *Server) Broadcast(msg *Message) {
	s.mu.RLock()
	conns := make([]*Connection, 0, len(s.connections))
	for c := range s.connections {
		conns = append(conns, c)
	}
	s.mu.RUnlock()

	for _, c := range conns {
		_ = c.SendMessage(msg)
	}
}

func (s *Server) register(c *Connection) {
	s.mu.Lock()
	s.connections[c] = true
	total := len(s.connections)
	s.mu.Unlock()
	s.logger.Info("Spectator connected", "total", total)
}

func (s *Server) unregister(c *Connection) {
	s.mu.Lock()
	if _, ok := s.connections[c]; ok {
		delete(s.connections, c)
	}
	total := len(s.connections)
	s.mu.Unlock()
	_ = c.Close()
	s.logger.Info("Spectator disconnected", "total", total)
}

func (s *Server) restart(from string) {
	s.logger.Info("Restart requested", "from", from)
	s.source.Restart()
}

func (s *Server) snapshotMessage() (*Message, bool) {
	snap, ok := s.source.Snapshot()
	if !ok {
		return nil, false
	}
	msg, err := NewMessage(MessageTypeSnapshot, NewSnapshotData(snap), time.Now())
	if err != nil {
		s.logger.Error("Failed to encode snapshot", "error", err)
		return nil, false
	}
	return msg, true
}

// handleWebSocket handles WebSocket upgrade requests
func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Error("Failed to upgrade connection", "error", err)
		return
	}

	client := NewConnection(conn, s, s.logger)
	if msg, ok := s.snapshotMessage(); ok {
		_ = client.SendMessage(msg)
	}
	s.register(client)
	client.Start()

	go func() {
		<-client.Done()
		s.unregister(client)
	}()
}

// handleHealth handles health check requests
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = fmt.Fprintf(w, "OK")
}

func (s *Server) handleState(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	snap, ok := s.source.Snapshot()
	if !ok {
		http.Error(w, "no game yet", http.StatusServiceUnavailable)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(NewSnapshotData(snap))
}

func (s *Server) handleRestart(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	s.restart("http")
	w.WriteHeader(http.StatusAccepted)
}
