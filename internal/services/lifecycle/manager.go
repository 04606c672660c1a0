package lifecycle

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"go.uber.org/zap"
)

// StopFunc releases one component during shutdown.
type StopFunc func(ctx context.Context) error

type hook struct {
	name string
	stop StopFunc
}

// Manager tears down the server's components in reverse registration
// order once a termination signal arrives. The HTTP listener registers
// last so in-flight requests drain before their stores go away.
type Manager struct {
	timeout time.Duration
	logger  *zap.Logger

	mu    sync.Mutex
	hooks []hook
}

func New(timeout time.Duration, logger *zap.Logger) *Manager {
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Manager{
		timeout: timeout,
		logger:  logger,
	}
}

// Register queues a named stop hook.
func (m *Manager) Register(name string, stop StopFunc) {
	if stop == nil {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.hooks = append(m.hooks, hook{name: name, stop: stop})
}

// Shutdown runs every hook newest-first under the configured timeout.
// A failing hook is logged and joined into the result but does not
// stop the remaining hooks from running.
func (m *Manager) Shutdown(ctx context.Context) error {
	if ctx == nil {
		ctx = context.Background()
	}
	if m.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, m.timeout)
		defer cancel()
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	var result error
	for i := len(m.hooks) - 1; i >= 0; i-- {
		h := m.hooks[i]
		if err := h.stop(ctx); err != nil {
			m.logger.Error("stop hook failed", zap.String("hook", h.name), zap.Error(err))
			result = errors.Join(result, err)
			continue
		}
		m.logger.Info("stopped", zap.String("hook", h.name))
	}
	return result
}

// Listen watches for SIGTERM or SIGINT and calls cancel when one lands.
func (m *Manager) Listen(cancel context.CancelFunc) {
	if cancel == nil {
		return
	}
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGTERM, syscall.SIGINT)

	go func() {
		defer signal.Stop(sigCh)
		sig := <-sigCh
		m.logger.Info("termination signal", zap.String("signal", sig.String()))
		cancel()
	}()
}
