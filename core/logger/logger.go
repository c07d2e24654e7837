package logger

import (
	"fmt"
	"io"
	"log/slog"
	"math/rand"
	"strings"

	slogmulti "github.com/samber/slog-multi"
)

// Event names attached to records under the "event" key.
const (
	EventSessionStart      = "session_start"
	EventRunCommand        = "run_command"
	EventUnknownCommand    = "unknown_command"
	EventInvalidInvocation = "invalid_invocation"
	EventPanic             = "panic"
)

// Logger captures interaction events of shell sessions.
type Logger struct {
	log *slog.Logger
}

// New creates a Logger writing every record to all the handlers.
func New(handlers ...slog.Handler) *Logger {
	return &Logger{log: slog.New(slogmulti.Fanout(handlers...))}
}

// NewJSONLinesHandler creates a handler that exports records in newline
// delimited JSON object format.
func NewJSONLinesHandler(w io.Writer) slog.Handler {
	return slog.NewJSONHandler(w, &slog.HandlerOptions{Level: slog.LevelInfo})
}

// NewTextHandler creates a human readable handler filtered by level.
func NewTextHandler(w io.Writer, level slog.Leveler) slog.Handler {
	return slog.NewTextHandler(w, &slog.HandlerOptions{Level: level})
}

// Discard returns a Logger that drops everything.
func Discard() *Logger {
	return New()
}

// ParseLevel converts a configured level name to a slog level.
func ParseLevel(name string) (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.ToUpper(name))); err != nil {
		return 0, fmt.Errorf("unknown log level %q", name)
	}
	return level, nil
}

// Slog exposes the underlying logger for messages that aren't events.
func (l *Logger) Slog() *slog.Logger {
	return l.log
}

// NewSession creates a logger with attached session ID.
func (l *Logger) NewSession() *SessionLogger {
	return l.session(fmt.Sprintf("%d", rand.Uint64()))
}

// Sessionless creates a logger without a session ID.
func (l *Logger) Sessionless() *SessionLogger {
	return l.session("")
}

func (l *Logger) session(id string) *SessionLogger {
	return &SessionLogger{
		log:       l.log.With(slog.String("session_id", id)),
		sessionID: id,
	}
}

// SessionLogger logs events with a shared session ID.
type SessionLogger struct {
	log       *slog.Logger
	sessionID string
}

// SessionID returns the ID attached to every event.
func (l *SessionLogger) SessionID() string {
	return l.sessionID
}

// Debug logs a diagnostic message that isn't an event.
func (l *SessionLogger) Debug(msg string, args ...any) {
	l.log.Debug(msg, args...)
}

// SessionStart records a new session.
func (l *SessionLogger) SessionStart(user, remoteAddr string) {
	l.log.Info("session start",
		slog.String("event", EventSessionStart),
		slog.String("user", user),
		slog.String("remote_addr", remoteAddr))
}

// RunCommand records a dispatched command and the status it returned.
func (l *SessionLogger) RunCommand(command string, args []string, status int) {
	l.log.Info("run command",
		slog.String("event", EventRunCommand),
		slog.String("command", command),
		slog.Any("args", args),
		slog.Int("status", status))
}

// UnknownCommand records a line whose command isn't registered.
func (l *SessionLogger) UnknownCommand(command string, args []string) {
	l.log.Info("unknown command",
		slog.String("event", EventUnknownCommand),
		slog.String("command", command),
		slog.Any("args", args))
}

// InvalidInvocation records a command that rejected its arguments.
func (l *SessionLogger) InvalidInvocation(command string, args []string, err error) {
	l.log.Warn("invalid invocation",
		slog.String("event", EventInvalidInvocation),
		slog.String("command", command),
		slog.Any("args", args),
		slog.String("error", err.Error()))
}

// Panic records a recovered panic.
func (l *SessionLogger) Panic(context string, recovered any) {
	l.log.Error("panic",
		slog.String("event", EventPanic),
		slog.String("context", context),
		slog.String("error", fmt.Sprint(recovered)))
}
