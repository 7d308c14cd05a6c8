package tui

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/charmbracelet/ssh"
	"github.com/charmbracelet/wish"
	"github.com/charmbracelet/wish/activeterm"
	"github.com/charmbracelet/wish/bubbletea"
	"github.com/charmbracelet/wish/logging"
)

const shutdownGrace = 10 * time.Second

// SSHServerConfig configures the arcade SSH server.
type SSHServerConfig struct {
	// Address is host:port, e.g. ":23234".
	Address string

	// HostKeyPath is created on first start when missing. Empty means
	// ~/.arcade/host_key.
	HostKeyPath string

	IdleTimeout time.Duration

	// Shell is copied for every connection. Width, Height and Player come
	// from the connection.
	Shell Options
}

func DefaultSSHServerConfig() SSHServerConfig {
	return SSHServerConfig{
		Address:     ":23234",
		IdleTimeout: 30 * time.Minute,
		Shell: Options{
			TickRate:         60,
			CountdownSeconds: 3,
			InsertCoinDelay:  1500 * time.Millisecond,
		},
	}
}

// SSHServer runs an independent shell per connection on top of a shared
// leaderboard and play history.
type SSHServer struct {
	cfg    SSHServerConfig
	deps   Deps
	logger *log.Logger
	srv    *ssh.Server
}

func NewSSHServer(cfg SSHServerConfig, deps Deps) (*SSHServer, error) {
	if deps.Scores == nil {
		return nil, errors.New("ssh server needs a score store")
	}
	if deps.Logger == nil {
		deps.Logger = log.New(io.Discard)
	}

	keyPath, err := hostKeyPath(cfg.HostKeyPath)
	if err != nil {
		return nil, err
	}

	s := &SSHServer{cfg: cfg, deps: deps, logger: deps.Logger}
	s.srv, err = wish.NewServer(
		wish.WithAddress(cfg.Address),
		wish.WithHostKeyPath(keyPath),
		wish.WithIdleTimeout(cfg.IdleTimeout),
		wish.WithMiddleware(
			bubbletea.Middleware(s.newProgram),
			releaseShell,
			activeterm.Middleware(),
			logging.MiddlewareWithLogger(s.logger),
		),
		noDelay(),
	)
	if err != nil {
		return nil, fmt.Errorf("create ssh server: %w", err)
	}
	return s, nil
}

// hostKeyPath resolves the key location and makes sure its directory
// exists.
func hostKeyPath(path string) (string, error) {
	if path == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("locate home directory: %w", err)
		}
		path = filepath.Join(home, ".arcade", "host_key")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return "", fmt.Errorf("create host key directory: %w", err)
	}
	return path, nil
}

// noDelay turns off Nagle's algorithm so frames are not batched.
func noDelay() ssh.Option {
	return ssh.WrapConn(func(_ ssh.Context, conn net.Conn) net.Conn {
		if tcp, ok := conn.(*net.TCPConn); ok {
			_ = tcp.SetNoDelay(true)
		}
		return conn
	})
}

// newProgram builds the shell of one connection. Connections without a
// PTY never get here, activeterm closes them first.
func (s *SSHServer) newProgram(sess ssh.Session) (tea.Model, []tea.ProgramOption) {
	pty, _, _ := sess.Pty()

	opts := s.cfg.Shell
	opts.Width, opts.Height = pty.Window.Width, pty.Window.Height
	opts.Player = sess.User()
	opts.ScreenshotDir = "" // never write to the server's disk

	deps := s.deps
	deps.Logger = s.logger.With("user", sess.User(), "remote", sess.RemoteAddr().String())
	deps.Logger.Debug("new arcade session", "term", pty.Term, "size", fmt.Sprintf("%dx%d", opts.Width, opts.Height))

	conn := &connShell{shell: NewShell(deps, opts)}
	sess.Context().SetValue(connShellKey{}, conn)
	return conn, []tea.ProgramOption{tea.WithAltScreen(), tea.WithMouseCellMotion()}
}

type connShellKey struct{}

// connShell runs a Shell inside a program whose final model wish never
// hands back. It keeps the latest Shell value so the connection can close
// it once the program has exited.
type connShell struct {
	shell Shell
}

func (c *connShell) Init() tea.Cmd { return c.shell.Init() }

func (c *connShell) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := c.shell.Update(msg)
	if sh, ok := next.(Shell); ok {
		c.shell = sh
	}
	return c, cmd
}

func (c *connShell) View() string { return c.shell.View() }

// releaseShell closes the connection's shell after the bubbletea
// middleware has returned, which is after its program stopped.
func releaseShell(next ssh.Handler) ssh.Handler {
	return func(sess ssh.Session) {
		next(sess)
		if conn, ok := sess.Context().Value(connShellKey{}).(*connShell); ok {
			conn.shell.Close()
		}
	}
}

// ListenAndServe blocks until the listener fails or ctx is cancelled. On
// cancel it waits for open sessions to drain, up to shutdownGrace.
func (s *SSHServer) ListenAndServe(ctx context.Context) error {
	drained := make(chan error, 1)
	stop := context.AfterFunc(ctx, func() {
		s.logger.Info("stopping ssh server")
		drained <- s.Shutdown()
	})

	s.logger.Info("ssh server listening", "address", s.cfg.Address)
	err := s.srv.ListenAndServe()
	if !errors.Is(err, ssh.ErrServerClosed) {
		stop()
		return err
	}
	if stop() {
		// closed through Shutdown, not ctx
		return nil
	}
	return <-drained
}

// Shutdown closes the listener and waits for sessions to end.
func (s *SSHServer) Shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), shutdownGrace)
	defer cancel()
	return s.srv.Shutdown(ctx)
}

// Addr is the configured listen address.
func (s *SSHServer) Addr() string { return s.cfg.Address }
