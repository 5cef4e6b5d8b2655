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

// ShutdownFunc releases a component's resources during shutdown.
type ShutdownFunc func(ctx context.Context) error

type registration struct {
	name string
	stop ShutdownFunc
}

// Manager collects shutdown hooks from the wiring phase and runs them in
// reverse registration order, so dependents stop before their dependencies.
type Manager struct {
	timeout time.Duration
	logger  *zap.Logger

	mu            sync.Mutex
	registrations []registration
}

func New(timeout time.Duration, logger *zap.Logger) *Manager {
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Manager{timeout: timeout, logger: logger}
}

// Register queues a named shutdown hook. Nil hooks are ignored.
func (m *Manager) Register(name string, fn ShutdownFunc) {
	if fn == nil {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.registrations = append(m.registrations, registration{name: name, stop: fn})
}

// Shutdown runs every registered hook newest-first under the configured
// timeout. All hooks run even when earlier ones fail; failures are joined.
func (m *Manager) Shutdown(ctx context.Context) error {
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, cancel := context.WithTimeout(ctx, m.timeout)
	defer cancel()

	m.mu.Lock()
	defer m.mu.Unlock()

	var failures error
	for i := len(m.registrations) - 1; i >= 0; i-- {
		reg := m.registrations[i]
		if err := reg.stop(ctx); err != nil {
			m.logger.Error("shutdown hook failed",
				zap.String("hook", reg.name),
				zap.Error(err))
			failures = errors.Join(failures, err)
			continue
		}
		m.logger.Debug("shutdown hook finished", zap.String("hook", reg.name))
	}
	return failures
}

// Listen waits for SIGTERM or SIGINT in the background and cancels the
// application context when one arrives.
func (m *Manager) Listen(cancel context.CancelFunc) {
	if cancel == nil {
		return
	}
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGTERM, syscall.SIGINT)

	go func() {
		defer signal.Stop(sigCh)
		sig := <-sigCh
		m.logger.Info("termination signal received", zap.String("signal", sig.String()))
		cancel()
	}()
}
