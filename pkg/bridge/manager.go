package bridge

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/urmzd/plasma-remote/pkg/tv"
)

// DefaultTimeout bounds a single fire-and-forget delivery.
const DefaultTimeout = 3 * time.Second

// Manager owns the active bridge and swaps it when the configuration
// changes. It is safe for concurrent use.
type Manager struct {
	mu        sync.RWMutex
	cfg       Config
	transport Bridge

	client  *http.Client
	open    PortOpener
	timeout time.Duration
	wg      sync.WaitGroup
	closed  bool
}

// Option configures a Manager.
type Option func(*Manager)

// WithHTTPClient sets the client used by HTTP bridges.
func WithHTTPClient(c *http.Client) Option {
	return func(m *Manager) { m.client = c }
}

// WithPortOpener sets how serial bridges open their device.
func WithPortOpener(open PortOpener) Option {
	return func(m *Manager) { m.open = open }
}

// WithTimeout bounds each delivery.
func WithTimeout(d time.Duration) Option {
	return func(m *Manager) { m.timeout = d }
}

// NewManager creates a Manager with the default, disabled configuration.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		cfg:       DefaultConfig(),
		transport: NewNullBridge(),
		client:    &http.Client{Timeout: DefaultTimeout},
		open:      OpenSerialPort,
		timeout:   DefaultTimeout,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Configure validates cfg and switches to the matching transport. The
// previous transport is closed. On error the current bridge is kept.
func (m *Manager) Configure(cfg Config) error {
	cfg = cfg.Normalize()
	if err := cfg.Validate(); err != nil {
		return err
	}

	next, err := m.build(cfg)
	if err != nil {
		return err
	}

	m.mu.Lock()
	if m.closed {
		m.mu.Unlock()
		_ = next.Close()
		return ErrClosed
	}
	prev := m.transport
	m.cfg = cfg
	m.transport = next
	m.mu.Unlock()

	if err := prev.Close(); err != nil {
		log.Warn().Err(err).Msg("Failed to close previous bridge")
	}

	log.Info().
		Bool("enabled", cfg.Enabled).
		Str("url", cfg.URL).
		Str("method", cfg.Method).
		Msg("Bridge configured")
	return nil
}

func (m *Manager) build(cfg Config) (Bridge, error) {
	if !cfg.Active() {
		return NewNullBridge(), nil
	}
	scheme, err := schemeOf(cfg.URL)
	if err != nil {
		return nil, err
	}
	if scheme == SchemeSerial {
		return NewSerialBridge(cfg.URL, m.open)
	}
	return NewHTTPBridge(cfg.URL, cfg.Method, m.client), nil
}

// Config returns the active configuration.
func (m *Manager) Config() Config {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.cfg
}

// Enabled reports whether key presses are forwarded.
func (m *Manager) Enabled() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.cfg.Active()
}

// Send delivers key synchronously.
func (m *Manager) Send(ctx context.Context, key tv.Key, protocol string) Result {
	m.mu.RLock()
	b := m.transport
	m.mu.RUnlock()
	return b.Send(ctx, key, protocol)
}

// Fire delivers key in the background. The outcome is only logged. Once
// Close has started, presses are dropped.
func (m *Manager) Fire(key tv.Key, protocol string) {
	m.mu.RLock()
	if m.closed || !m.cfg.Active() {
		m.mu.RUnlock()
		return
	}
	// Add under the lock so Close cannot be waiting yet
	m.wg.Add(1)
	m.mu.RUnlock()

	go func() {
		defer m.wg.Done()

		ctx, cancel := context.WithTimeout(context.Background(), m.timeout)
		defer cancel()

		res := m.Send(ctx, key, protocol)
		logResult(res)
	}()
}

// Wait blocks until every in-flight Fire has finished.
func (m *Manager) Wait() {
	m.wg.Wait()
}

// Close stops accepting presses, waits for in-flight deliveries and closes
// the transport. Later calls are no-ops.
func (m *Manager) Close() error {
	m.mu.Lock()
	if m.closed {
		m.mu.Unlock()
		return nil
	}
	m.closed = true
	m.mu.Unlock()

	m.wg.Wait()

	m.mu.Lock()
	defer m.mu.Unlock()
	err := m.transport.Close()
	m.transport = NewNullBridge()
	m.cfg = DefaultConfig()
	return err
}

func logResult(res Result) {
	switch {
	case res.Err != nil:
		log.Warn().
			Err(res.Err).
			Str("key", string(res.Key)).
			Str("protocol", res.Protocol).
			Str("target", res.Target).
			Msg("Bridge call failed")
	case !res.OK():
		log.Warn().
			Int("status", res.StatusCode).
			Str("key", string(res.Key)).
			Str("target", res.Target).
			Msg("Bridge returned non-success status")
	default:
		log.Debug().
			Str("key", string(res.Key)).
			Str("protocol", res.Protocol).
			Dur("latency", res.Latency).
			Msg("Bridge call sent")
	}
}
