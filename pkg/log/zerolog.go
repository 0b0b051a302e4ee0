package log

import (
	"context"
	"io"
	"os"
	"sync"

	cockroachErrors "github.com/cockroachdb/errors"
	"github.com/rs/zerolog"
)

// ZerologProvider creates zerolog-backed Logger instances.
type ZerologProvider struct {
	mu    sync.RWMutex
	out   io.Writer
	level zerolog.Level
}

// NewZerologProvider creates a provider emitting JSON records to stderr.
func NewZerologProvider(level Level) *ZerologProvider {
	return NewZerologProviderTo(os.Stderr, level)
}

// NewZerologProviderTo creates a provider emitting JSON records to out.
// Tests use this with a bytes.Buffer to capture output.
func NewZerologProviderTo(out io.Writer, level Level) *ZerologProvider {
	return &ZerologProvider{
		out:   out,
		level: toZerologLevel(level),
	}
}

// GetLogger returns the default logger instance.
func (p *ZerologProvider) GetLogger() Logger {
	p.mu.RLock()
	defer p.mu.RUnlock()
	zl := zerolog.New(p.out).Level(p.level).With().Timestamp().Logger()
	return &zerologLogger{zl: zl}
}

// GetLoggerWithName returns a logger tagged with a component name.
func (p *ZerologProvider) GetLoggerWithName(name string) Logger {
	p.mu.RLock()
	defer p.mu.RUnlock()
	zl := zerolog.New(p.out).Level(p.level).With().Timestamp().Str("logger", name).Logger()
	return &zerologLogger{zl: zl}
}

// SetLevel sets the minimum log level for loggers created by this provider.
// Loggers already handed out keep their level.
func (p *ZerologProvider) SetLevel(level Level) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.level = toZerologLevel(level)
}

func toZerologLevel(l Level) zerolog.Level {
	switch {
	case l <= LevelDebug:
		return zerolog.DebugLevel
	case l <= LevelInfo:
		return zerolog.InfoLevel
	case l <= LevelWarn:
		return zerolog.WarnLevel
	default:
		return zerolog.ErrorLevel
	}
}

// zerologLogger adapts zerolog.Logger to the Logger interface.
type zerologLogger struct {
	zl zerolog.Logger
}

func (l *zerologLogger) Debug(msg string, fields ...any) {
	l.emit(l.zl.Debug(), msg, fields)
}

func (l *zerologLogger) Info(msg string, fields ...any) {
	l.emit(l.zl.Info(), msg, fields)
}

func (l *zerologLogger) Warn(msg string, fields ...any) {
	l.emit(l.zl.Warn(), msg, fields)
}

func (l *zerologLogger) Error(msg string, fields ...any) {
	event := l.zl.Error()

	// An error passed as the first field carries its own structure and,
	// when created through pkg/errors, a stack trace.
	if len(fields) > 0 {
		if err, ok := fields[0].(error); ok {
			event = event.Err(err)
			if st := extractStacktrace(err); st != "" {
				event = event.Str("stacktrace", st)
			}
			fields = fields[1:]
		}
	}

	l.emit(event, msg, fields)
}

func (l *zerologLogger) With(fields ...any) Logger {
	ctx := l.zl.With()
	for i := 0; i+1 < len(fields); i += 2 {
		key, ok := fields[i].(string)
		if !ok {
			continue
		}
		ctx = ctx.Interface(key, fields[i+1])
	}
	return &zerologLogger{zl: ctx.Logger()}
}

func (l *zerologLogger) Enabled(_ context.Context, level Level) bool {
	return toZerologLevel(level) >= l.zl.GetLevel()
}

// emit attaches key-value pairs to an event and sends it. Values that
// implement zerolog.LogObjectMarshaler (the pkg/errors types do) are
// logged structurally.
func (l *zerologLogger) emit(event *zerolog.Event, msg string, fields []any) {
	for i := 0; i+1 < len(fields); i += 2 {
		key, ok := fields[i].(string)
		if !ok {
			continue
		}
		switch v := fields[i+1].(type) {
		case zerolog.LogObjectMarshaler:
			event = event.Object(key, v)
		case error:
			event = event.AnErr(key, v)
		default:
			event = event.Interface(key, v)
		}
	}
	event.Msg(msg)
}

func extractStacktrace(err error) string {
	safeDetails := cockroachErrors.GetSafeDetails(err).SafeDetails
	if len(safeDetails) > 0 {
		return safeDetails[0]
	}
	return ""
}

// ===========================================================================
//
//	package-level default provider
//
// ===========================================================================

var (
	providerMu      sync.RWMutex
	defaultProvider LoggerProvider
)

// SetProvider replaces the package-level provider. Passing nil restores
// the default zerolog provider on next use.
func SetProvider(p LoggerProvider) {
	providerMu.Lock()
	defer providerMu.Unlock()
	defaultProvider = p
}

func getProvider() LoggerProvider {
	providerMu.RLock()
	p := defaultProvider
	providerMu.RUnlock()
	if p != nil {
		return p
	}

	providerMu.Lock()
	defer providerMu.Unlock()
	if defaultProvider == nil {
		defaultProvider = NewZerologProvider(LevelInfo)
	}
	return defaultProvider
}

// SetupLogger installs a zerolog provider at the given level ("debug",
// "info", "warn", "error") as the package-level provider. Intended for
// program entry points.
func SetupLogger(level string) {
	SetProvider(NewZerologProvider(ToLogLevel(level)))
}

// GetLogger returns the default logger.
func GetLogger() Logger {
	return getProvider().GetLogger()
}

// GetLoggerWithName returns a logger tagged with a component name.
func GetLoggerWithName(name string) Logger {
	return getProvider().GetLoggerWithName(name)
}

// LogError logs an error with the default logger.
func LogError(err error, msg string) {
	GetLogger().Error(msg, err)
}
