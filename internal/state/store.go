package state

import (
	"fmt"
	"sync"

	"github.com/imyashkale/kmsdash/internal/logger"
	"github.com/imyashkale/kmsdash/internal/models"
)

// Appender records audit lines alongside the supervised process output.
type Appender interface {
	Append(line string) error
}

// Store owns the mutable server configuration shared by the API handlers.
// All access goes through snapshot-returning methods behind a single lock, so
// a write finished before a read began is always visible to that read.
type Store struct {
	mu    sync.Mutex
	cfg   models.ServerConfig
	audit Appender
}

// New creates a store seeded with the given bind address and port. The
// display address is detected once at startup; the status starts as unknown
// until the supervisor reports otherwise.
func New(ip, port string, audit Appender) *Store {
	return &Store{
		cfg: models.ServerConfig{
			IP:        ip,
			Port:      port,
			Status:    models.StatusUnknown,
			DisplayIP: DetectDisplayIP(),
		},
		audit: audit,
	}
}

// Get returns a snapshot of the current configuration.
func (s *Store) Get() models.ServerConfig {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cfg
}

// Set replaces the bind address and port in one step and returns the new
// snapshot. Status and display address are left untouched. Every update is
// recorded in the audit log under the same lock, so audit lines appear in the
// order the updates took effect.
func (s *Store) Set(ip, port string) models.ServerConfig {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.cfg.IP = ip
	s.cfg.Port = port

	line := fmt.Sprintf("Server configuration changed to %s:%s", ip, port)
	if err := s.audit.Append(line); err != nil {
		logger.WithField("error", err.Error()).Error("Failed to record configuration change")
	}

	return s.cfg
}

// SetStatus updates only the reported server status.
func (s *Store) SetStatus(status string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cfg.Status = status
}
