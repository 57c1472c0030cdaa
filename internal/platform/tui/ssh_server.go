package tui

import (
	"context"
	"errors"
	"fmt"
	"net"
	"os"
	"os/signal"
	"path/filepath"
	"sync"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/charmbracelet/ssh"
	"github.com/charmbracelet/wish"
	"github.com/charmbracelet/wish/bubbletea"
	"golang.org/x/time/rate"
)

// SSHServerConfig holds configuration for the SSH server.
type SSHServerConfig struct {
	// Address is the host:port to listen on (e.g., ":23235").
	Address string

	// HostKeyPath is the path to the host key file.
	// If empty, a key will be auto-generated at ~/.starfield/host_key.
	HostKeyPath string

	// IdleTimeout is how long to wait before closing idle connections.
	IdleTimeout time.Duration

	// SessionsPerMinute and Burst limit new sessions per remote host.
	// Zero SessionsPerMinute disables the limit.
	SessionsPerMinute float64
	Burst             int

	// Seed for every session's textures. 0 = per-session time seed.
	Seed int64
}

// DefaultSSHServerConfig returns a config with sensible defaults.
func DefaultSSHServerConfig() SSHServerConfig {
	return SSHServerConfig{
		Address:           ":23235",
		IdleTimeout:       30 * time.Minute,
		SessionsPerMinute: 6,
		Burst:             3,
	}
}

// SSHServer wraps a Wish SSH server that gives each session its own preview.
type SSHServer struct {
	config  SSHServerConfig
	server  *ssh.Server
	logger  *log.Logger
	limiter *SessionLimiter
}

// NewSSHServer creates a new SSH server with the given configuration.
func NewSSHServer(cfg SSHServerConfig) (*SSHServer, error) {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          "starfield-ssh",
	})

	srv := &SSHServer{
		config:  cfg,
		logger:  logger,
		limiter: NewSessionLimiter(cfg.SessionsPerMinute, cfg.Burst),
	}

	// Resolve host key path
	hostKeyPath := cfg.HostKeyPath
	if hostKeyPath == "" {
		home, homeErr := os.UserHomeDir()
		if homeErr != nil {
			return nil, fmt.Errorf("cannot get home directory: %w", homeErr)
		}
		hostKeyPath = filepath.Join(home, ".starfield", "host_key")
	}

	// Ensure host key directory exists
	hostKeyDir := filepath.Dir(hostKeyPath)
	if mkdirErr := os.MkdirAll(hostKeyDir, 0o700); mkdirErr != nil {
		return nil, fmt.Errorf("cannot create host key directory: %w", mkdirErr)
	}

	// Middlewares run last to first: rate limit, then logging, then the app.
	opts := []ssh.Option{
		wish.WithAddress(cfg.Address),
		wish.WithHostKeyPath(hostKeyPath),
		wish.WithIdleTimeout(cfg.IdleTimeout),
		wish.WithMiddleware(
			bubbletea.Middleware(srv.teaHandler),
			srv.loggingMiddleware,
			srv.rateLimitMiddleware,
		),
	}

	server, err := wish.NewServer(opts...)
	if err != nil {
		return nil, fmt.Errorf("cannot create SSH server: %w", err)
	}

	srv.server = server
	return srv, nil
}

// teaHandler creates a Bubble Tea program for each SSH session.
func (s *SSHServer) teaHandler(sshSession ssh.Session) (tea.Model, []tea.ProgramOption) {
	pty, _, ok := sshSession.Pty()
	if !ok {
		s.logger.Warn("no PTY requested", "user", sshSession.User())
		return nil, nil
	}

	model := NewSessionModel(SessionOptions{
		Seed:     s.config.Seed,
		Width:    pty.Window.Width,
		Height:   pty.Window.Height,
		Logger:   s.logger.WithPrefix("starfield-ssh " + sshSession.User()),
		Renderer: bubbletea.MakeRenderer(sshSession),
	})

	return model, []tea.ProgramOption{
		tea.WithAltScreen(),
	}
}

// loggingMiddleware logs SSH session events.
func (s *SSHServer) loggingMiddleware(next ssh.Handler) ssh.Handler {
	return func(sshSession ssh.Session) {
		start := time.Now()
		s.logger.Info("session started",
			"user", sshSession.User(),
			"remote", sshSession.RemoteAddr().String(),
		)
		next(sshSession)
		s.logger.Info("session ended",
			"user", sshSession.User(),
			"remote", sshSession.RemoteAddr().String(),
			"duration", time.Since(start).Round(time.Second),
		)
	}
}

// rateLimitMiddleware rejects sessions from hosts that connect too often.
func (s *SSHServer) rateLimitMiddleware(next ssh.Handler) ssh.Handler {
	return func(sshSession ssh.Session) {
		host := remoteHost(sshSession.RemoteAddr())
		if !s.limiter.Allow(host) {
			s.logger.Warn("session rate limit exceeded",
				"remote", host,
				"per_minute", s.config.SessionsPerMinute,
				"burst", s.config.Burst,
			)
			wish.Fatalln(sshSession, "Too many sessions, try again in a minute.")
			return
		}
		next(sshSession)
	}
}

// ListenAndServe starts the SSH server and blocks until shutdown.
func (s *SSHServer) ListenAndServe() error {
	s.logger.Info("starting SSH server", "address", s.config.Address)

	// Setup signal handling for graceful shutdown
	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGTERM)

	go func() {
		if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, ssh.ErrServerClosed) {
			s.logger.Error("server error", "error", err)
		}
	}()

	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()
wait:
	for {
		select {
		case now := <-ticker.C:
			s.limiter.Prune(now)
		case <-done:
			break wait
		}
	}

	s.logger.Info("shutting down...")
	return s.Shutdown()
}

// Shutdown gracefully stops the server.
func (s *SSHServer) Shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	return s.server.Shutdown(ctx)
}

// Addr returns the server's listen address string.
func (s *SSHServer) Addr() string {
	return s.config.Address
}

// SessionLimiter hands out one token bucket per remote host.
type SessionLimiter struct {
	limit   rate.Limit
	burst   int
	clients map[string]*rate.Limiter
	mu      sync.Mutex
}

// NewSessionLimiter creates a limiter allowing perMinute sessions per host
// with the given burst. perMinute <= 0 allows everything.
func NewSessionLimiter(perMinute float64, burst int) *SessionLimiter {
	if burst < 1 {
		burst = 1
	}
	l := rate.Inf
	if perMinute > 0 {
		l = rate.Limit(perMinute / 60)
	}
	return &SessionLimiter{
		limit:   l,
		burst:   burst,
		clients: make(map[string]*rate.Limiter),
	}
}

// Allow reports whether host may open a session now.
func (l *SessionLimiter) Allow(host string) bool {
	return l.AllowAt(host, time.Now())
}

// AllowAt is Allow at an explicit time.
func (l *SessionLimiter) AllowAt(host string, now time.Time) bool {
	l.mu.Lock()
	limiter, ok := l.clients[host]
	if !ok {
		limiter = rate.NewLimiter(l.limit, l.burst)
		l.clients[host] = limiter
	}
	l.mu.Unlock()
	return limiter.AllowN(now, 1)
}

// Prune forgets hosts whose bucket has refilled.
func (l *SessionLimiter) Prune(now time.Time) {
	l.mu.Lock()
	defer l.mu.Unlock()
	for host, limiter := range l.clients {
		if limiter.TokensAt(now) >= float64(l.burst) {
			delete(l.clients, host)
		}
	}
}

// Len returns the number of tracked hosts.
func (l *SessionLimiter) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.clients)
}

// remoteHost strips the port from a remote address.
func remoteHost(addr net.Addr) string {
	if addr == nil {
		return ""
	}
	host, _, err := net.SplitHostPort(addr.String())
	if err != nil {
		return addr.String()
	}
	return host
}
