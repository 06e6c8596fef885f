// Package logx is a tagged, levelled logger producing "[tag] message" lines.
// It must not be called from interrupt handlers.
package logx

import (
	"io"
	"log"
	"os"
	"strings"
	"sync/atomic"
)

type Level int32

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
)

var (
	level atomic.Int32
	std   = log.New(os.Stderr, "", log.LstdFlags|log.Lmicroseconds)
)

func init() { level.Store(int32(LevelInfo)) }

// SetLevel sets the global threshold.
func SetLevel(l Level) { level.Store(int32(l)) }

// SetOutput redirects all loggers.
func SetOutput(w io.Writer) { std.SetOutput(w) }

// ParseLevel maps "debug","info","warn","error"; unknown names yield LevelInfo.
func ParseLevel(s string) Level {
	switch strings.ToLower(s) {
	case "debug":
		return LevelDebug
	case "warn", "warning":
		return LevelWarn
	case "error":
		return LevelError
	default:
		return LevelInfo
	}
}

// Logger prefixes every line with its tag.
type Logger struct {
	tag string
}

func New(tag string) Logger { return Logger{tag: "[" + tag + "] "} }

func (l Logger) Enabled(lv Level) bool { return int32(lv) >= level.Load() }

func (l Logger) logf(lv Level, format string, args ...any) {
	if !l.Enabled(lv) {
		return
	}
	std.Printf(l.tag+format, args...)
}

func (l Logger) Debugf(format string, args ...any) { l.logf(LevelDebug, format, args...) }
func (l Logger) Infof(format string, args ...any)  { l.logf(LevelInfo, format, args...) }
func (l Logger) Warnf(format string, args ...any)  { l.logf(LevelWarn, "warn: "+format, args...) }
func (l Logger) Errorf(format string, args ...any) { l.logf(LevelError, "error: "+format, args...) }
