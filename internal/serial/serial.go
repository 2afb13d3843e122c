// internal/serial/serial.go
package serial

import (
	"context"
	"errors"
	"log"
	"sync"
	"sync/atomic"
	"time"

	"go.bug.st/serial"
)

// DefaultReconnectInterval is used when the config does not set one.
const DefaultReconnectInterval = 2 * time.Second

// ErrUnavailable is returned by Write while no port is open.
var ErrUnavailable = errors.New("serial: port unavailable")

// Config holds serial port parameters.
type Config struct {
	// Port is the device path, e.g. "/dev/ttyUSB0" or "COM3".
	Port string
	// Baud is the line speed. The DMX endpoint runs its USB link at 250000.
	Baud int
	// ReconnectInterval is the pause between reopen attempts.
	ReconnectInterval time.Duration
}

// Manager owns the serial port handle and its reconnection policy.
//
// The core pipeline sees only Write and Available: a failed write marks the
// port down and drops the handle, and the Run loop reopens it in the
// background. The pacer is the only writer; Manager adds a mutex anyway so
// reopen and write cannot race on the handle.
type Manager struct {
	cfg Config

	mu        sync.Mutex
	port      serial.Port
	available atomic.Bool

	closeOnce sync.Once
	closed    atomic.Bool
}

// NewManager creates a manager for cfg. No connection is attempted yet.
func NewManager(cfg Config) (*Manager, error) {
	if cfg.Port == "" {
		return nil, errors.New("serial: port required")
	}
	if cfg.Baud <= 0 {
		return nil, errors.New("serial: baud must be > 0")
	}
	if cfg.ReconnectInterval <= 0 {
		cfg.ReconnectInterval = DefaultReconnectInterval
	}
	return &Manager{cfg: cfg}, nil
}

// Run keeps the port open until ctx is done: one open attempt up front,
// then one reopen attempt per interval while the port is down.
func (m *Manager) Run(ctx context.Context) {
	ticker := time.NewTicker(m.cfg.ReconnectInterval)
	defer ticker.Stop()

	m.tryOpen()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if !m.available.Load() {
				m.tryOpen()
			}
		}
	}
}

func (m *Manager) tryOpen() {
	if m.closed.Load() {
		return
	}

	port, err := serial.Open(m.cfg.Port, &serial.Mode{BaudRate: m.cfg.Baud})
	if err != nil {
		log.Printf("serial: open %s failed: %v", m.cfg.Port, err)
		return
	}

	m.mu.Lock()
	m.port = port
	m.mu.Unlock()
	m.available.Store(true)
	log.Printf("serial: opened %s @ %d baud", m.cfg.Port, m.cfg.Baud)
}

// Write sends p in one call. On failure the port is dropped and marked
// unavailable; Run reopens it later. No retry happens here.
func (m *Manager) Write(p []byte) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.port == nil {
		return 0, ErrUnavailable
	}

	n, err := m.port.Write(p)
	if err != nil {
		m.available.Store(false)
		_ = m.port.Close()
		m.port = nil
		return n, err
	}
	return n, nil
}

// Available reports whether a port is currently open.
func (m *Manager) Available() bool {
	return m.available.Load()
}

// Close closes the port. Safe to call once only per the ownership contract;
// guarded anyway so shutdown paths cannot double-close.
func (m *Manager) Close() error {
	var err error
	m.closeOnce.Do(func() {
		m.closed.Store(true)
		m.available.Store(false)
		m.mu.Lock()
		if m.port != nil {
			err = m.port.Close()
			m.port = nil
		}
		m.mu.Unlock()
	})
	return err
}
