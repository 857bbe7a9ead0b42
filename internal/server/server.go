// Package server exposes the heads-up tables over websocket. The server
// owns the public table state machines and one confidential executor;
// everything a client sees passes through the protocol messages, so sealed
// blobs reach only their owner and board cards only after the executor has
// revealed them.
package server

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"github.com/gorilla/websocket"
	"golang.org/x/sync/errgroup"

	"github.com/cardveil/holdem/internal/mxe"
	"github.com/cardveil/holdem/internal/table"
)

// Server hosts the configured tables.
type Server struct {
	cfg      *Config
	logger   *log.Logger
	executor *mxe.Executor
	clock    quartz.Clock

	mu     sync.Mutex
	tables map[string]*tableHost

	upgrader websocket.Upgrader
	listener net.Listener
}

// New creates a server with its tables and a fresh executor.
func New(cfg *Config, logger *log.Logger, opts ...ServerOption) *Server {
	s := &Server{
		cfg:      cfg,
		logger:   logger.WithPrefix("server"),
		clock:    quartz.NewReal(),
		tables:   make(map[string]*tableHost),
		upgrader: websocket.Upgrader{CheckOrigin: func(*http.Request) bool { return true }},
	}
	for _, opt := range opts {
		opt(s)
	}
	s.executor = mxe.NewExecutor(logger)

	for i, tb := range cfg.Tables {
		tcfg := table.Config{
			TableID:    uint64(i + 1),
			SmallBlind: tb.SmallBlind,
			BigBlind:   tb.BigBlind,
			BuyIn:      tb.BuyIn,
		}
		rake := table.RakeConfig{Percent: cfg.Rake.Percent, Cap: cfg.Rake.Cap}
		timeout := time.Duration(cfg.Server.ActionTimeout) * time.Second
		s.tables[tb.Name] = newTableHost(tb.Name, tcfg, rake, s.executor, s.clock, logger,
			table.WithClock(s.clock), table.WithActionTimeout(timeout))
	}
	return s
}

// ServerOption configures the server.
type ServerOption func(*Server)

// WithServerClock substitutes the clock used for turn timers.
func WithServerClock(clock quartz.Clock) ServerOption {
	return func(s *Server) { s.clock = clock }
}

// Addr returns the bound listen address, valid after Run has started
// listening.
func (s *Server) Addr() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.listener == nil {
		return ""
	}
	return s.listener.Addr().String()
}

// Run serves until the context is cancelled.
func (s *Server) Run(ctx context.Context) error {
	addr := fmt.Sprintf("%s:%d", s.cfg.Server.Address, s.cfg.Server.Port)
	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("listening on %s: %w", addr, err)
	}
	s.mu.Lock()
	s.listener = listener
	s.mu.Unlock()

	mux := http.NewServeMux()
	mux.HandleFunc("/ws", s.handleWS)

	httpServer := &http.Server{Handler: mux}

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		s.logger.Info("listening", "addr", listener.Addr().String())
		if err := httpServer.Serve(listener); err != nil && err != http.ErrServerClosed {
			return fmt.Errorf("serving: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return httpServer.Shutdown(shutdownCtx)
	})
	return g.Wait()
}

// handleWS upgrades a connection and hands it to the requested table.
func (s *Server) handleWS(w http.ResponseWriter, r *http.Request) {
	tableName := r.URL.Query().Get("table")
	if tableName == "" {
		tableName = "main"
	}
	s.mu.Lock()
	host, ok := s.tables[tableName]
	s.mu.Unlock()
	if !ok {
		http.Error(w, fmt.Sprintf("no such table %q", tableName), http.StatusNotFound)
		return
	}

	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Error("websocket upgrade failed", "err", err)
		return
	}
	host.serveConn(conn)
}
