// Package logger is the process-wide structured logger of the batarikh-mirror binaries.
package logger

import (
	"os"
	"strings"

	"github.com/gookit/slog"
	"github.com/gookit/slog/handler"
)

const defaultServiceName = "batarikh-mirror"

// Logger is the minimal logging surface used across the module.
type Logger interface {
	Debug(args ...any)
	Info(args ...any)
	Warn(args ...any)
	Error(args ...any)
	Debugf(format string, args ...any)
	Infof(format string, args ...any)
	Warnf(format string, args ...any)
	Errorf(format string, args ...any)
}

// Fields are top-level keys added to a structured log line.
type Fields map[string]any

// Log is the process-wide logger. It works at info level before Init is called.
var Log Logger = NewLogger("info")

var serviceName = resolveServiceName()

func resolveServiceName() string {
	if sn := strings.TrimSpace(os.Getenv("SERVICE_NAME")); sn != "" {
		return sn
	}
	return defaultServiceName
}

// Init replaces the global logger with one at the given level and re-reads
// SERVICE_NAME. Unknown or empty levels fall back to info.
func Init(level string) {
	level = strings.ToLower(strings.TrimSpace(level))
	if level == "" {
		level = "info"
	}
	Log = NewLogger(level)
	serviceName = resolveServiceName()
}

// InitFromEnv reads the level from envKey and initializes the global logger.
func InitFromEnv(envKey string) {
	Init(os.Getenv(envKey))
}

// NewLogger builds a gookit/slog JSON console logger emitting levels up to level.
func NewLogger(level string) Logger {
	maxLevel := slog.LevelByName(level)
	levels := make(slog.Levels, 0, len(slog.AllLevels))
	for _, lv := range slog.AllLevels {
		if lv <= maxLevel {
			levels = append(levels, lv)
		}
	}

	h := handler.NewConsoleHandler(levels)
	h.SetFormatter(slog.NewJSONFormatter(func(f *slog.JSONFormatter) {
		// fixed keys only; request_id, path and friends travel as Fields
		f.Fields = []string{slog.FieldKeyDatetime, slog.FieldKeyLevel, slog.FieldKeyMessage}
		f.Aliases = slog.StringMap{
			slog.FieldKeyDatetime: "ts",
			slog.FieldKeyLevel:    "level",
			slog.FieldKeyMessage:  "msg",
		}
		f.TimeFormat = "2006-01-02T15:04:05.000Z07:00"
	}))
	return slog.NewWithHandlers(h)
}

func InfoWithFields(msg string, fields Fields)  { logFields(slog.InfoLevel, msg, fields) }
func DebugWithFields(msg string, fields Fields) { logFields(slog.DebugLevel, msg, fields) }
func WarnWithFields(msg string, fields Fields)  { logFields(slog.WarnLevel, msg, fields) }
func ErrorWithFields(msg string, fields Fields) { logFields(slog.ErrorLevel, msg, fields) }

// logFields attaches fields plus service_name when Log is a gookit logger. Other Logger
// implementations only get the message.
func logFields(level slog.Level, msg string, fields Fields) {
	lg, ok := Log.(*slog.Logger)
	if !ok {
		plain(level, msg)
		return
	}

	m := make(slog.M, len(fields)+1)
	for k, v := range fields {
		m[k] = v
	}
	if _, set := m["service_name"]; !set {
		m["service_name"] = serviceName
	}

	rec := lg.WithFields(m)
	switch level {
	case slog.DebugLevel:
		rec.Debug(msg)
	case slog.WarnLevel:
		rec.Warn(msg)
	case slog.ErrorLevel:
		rec.Error(msg)
	default:
		rec.Info(msg)
	}
}

func plain(level slog.Level, msg string) {
	switch level {
	case slog.DebugLevel:
		Log.Debug(msg)
	case slog.WarnLevel:
		Log.Warn(msg)
	case slog.ErrorLevel:
		Log.Error(msg)
	default:
		Log.Info(msg)
	}
}
