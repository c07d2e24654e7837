package core

import (
	"context"
	"fmt"
	"net"
	"strings"
	"sync/atomic"

	"github.com/gliderlabs/ssh"
	"github.com/josephlewis42/clic/commands"
	"github.com/josephlewis42/clic/core/config"
	"github.com/josephlewis42/clic/core/logger"
	"github.com/spf13/afero"
)

// Server exposes shells over SSH, one independent shell per session.
type Server struct {
	configuration *config.Configuration
	fs            afero.Fs
	logger        *logger.Logger
	sshServer     *ssh.Server
}

// NewServer creates a server giving every session a shell on fs.
func NewServer(configuration *config.Configuration, fs afero.Fs, log *logger.Logger) *Server {
	server := &Server{
		configuration: configuration,
		fs:            fs,
		logger:        log,
	}

	server.sshServer = &ssh.Server{
		Addr: fmt.Sprintf(":%d", configuration.SSHPort),
		Handler: func(s ssh.Session) {
			server.HandleSession(s)
		},
		PasswordHandler: func(ctx ssh.Context, password string) bool {
			return configuration.CheckPassword(ctx.User(), password)
		},
	}

	return server
}

// SetHostKeyFile uses the PEM encoded key at path instead of a generated one.
func (s *Server) SetHostKeyFile(path string) error {
	return s.sshServer.SetOption(ssh.HostKeyFile(path))
}

// HandleSession runs a shell for the session until it exits. A session with
// a command runs each of its lines instead of reading from the terminal.
func (s *Server) HandleSession(session ssh.Session) {
	sessionLogger := s.logger.NewSession()
	sessionLogger.SessionStart(session.User(), session.RemoteAddr().String())

	ptyInfo, winch, isPTY := session.Pty()
	out := commands.NewOutput(session, session.Stderr(), s.configuration.UseColor(isPTY))

	sh, err := NewSession(s.configuration, s.fs, sessionLogger, out)
	if err != nil {
		fmt.Fprintf(session.Stderr(), "clic: %v\n", err)
		session.Exit(1)
		return
	}

	if raw := session.RawCommand(); raw != "" {
		result := sh.RunLines(strings.Split(raw, "\n"))
		session.Exit(ExitCode(result.Status()))
		return
	}

	// Watch for window changes.
	var width atomic.Int64
	width.Store(int64(ptyInfo.Window.Width))
	if isPTY {
		go func() {
			for window := range winch {
				width.Store(int64(window.Width))
			}
		}()
	}

	sh.PrintBanner(s.configuration.Banner)
	status, err := sh.RunInteractive(commands.Terminal{
		Stdin:      session,
		Stdout:     session,
		Stderr:     session.Stderr(),
		IsTerminal: func() bool { return isPTY },
		Width:      func() int { return int(width.Load()) },
	})
	if err != nil {
		sessionLogger.Debug("interactive shell failed", "error", err)
	}
	session.Exit(ExitCode(status))
}

// ExitCode maps a shell status onto the 0-255 range SSH exit codes use, a
// failure never maps to 0.
func ExitCode(status int) int {
	code := int(uint8(status))
	if code == 0 && status != 0 {
		return 1
	}
	return code
}

func (s *Server) ListenAndServe() error {
	s.logger.Slog().Info("starting SSH server", "addr", s.sshServer.Addr)
	return s.sshServer.ListenAndServe()
}

// Serve accepts connections on l.
func (s *Server) Serve(l net.Listener) error {
	s.logger.Slog().Info("starting SSH server", "addr", l.Addr().String())
	return s.sshServer.Serve(l)
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.sshServer.Shutdown(ctx)
}
