// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at http://mozilla.org/MPL/2.0/.

package logging

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"
	"go.uber.org/zap/zapcore"

	"github.com/siderolabs/kmsglog/internal/pkg/kmsg"
)

// Level is the severity of a log record.
//
// Levels are ordered from the most to the least urgent.
type Level int

// Log levels.
const (
	ErrorLevel Level = iota
	WarnLevel
	InfoLevel
	DebugLevel
	TraceLevel
)

// ZapTraceLevel is the zap level used for TraceLevel records, zap has no native trace level.
const ZapTraceLevel = zapcore.DebugLevel - 1

var levelPriorities = [...]kmsg.Priority{
	ErrorLevel: kmsg.Err,
	WarnLevel:  kmsg.Warning,
	InfoLevel:  kmsg.Notice,
	DebugLevel: kmsg.Info,
	TraceLevel: kmsg.Debug,
}

var levelNames = [...]string{
	ErrorLevel: "error",
	WarnLevel:  "warn",
	InfoLevel:  "info",
	DebugLevel: "debug",
	TraceLevel: "trace",
}

// Levels returns all levels, most urgent first.
func Levels() []Level {
	return []Level{ErrorLevel, WarnLevel, InfoLevel, DebugLevel, TraceLevel}
}

func (l Level) valid() bool {
	return l >= ErrorLevel && l <= TraceLevel
}

// Priority returns the kernel priority code for the level.
//
// Invalid levels map to a code below kmsg.Debug, so that no threshold enables them.
func (l Level) Priority() kmsg.Priority {
	if !l.valid() {
		return kmsg.Debug + 1
	}

	return levelPriorities[l]
}

// Enabled reports whether candidate is at least as urgent as l.
func (l Level) Enabled(candidate Level) bool {
	return candidate.Priority() <= l.Priority()
}

func (l Level) String() string {
	if !l.valid() {
		return "Level(" + strconv.Itoa(int(l)) + ")"
	}

	return levelNames[l]
}

// MarshalText implements encoding.TextMarshaler.
func (l Level) MarshalText() ([]byte, error) {
	if !l.valid() {
		return nil, fmt.Errorf("%w: %d", ErrUnknownLevel, int(l))
	}

	return []byte(l.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (l *Level) UnmarshalText(text []byte) error {
	parsed, err := ParseLevel(string(text))
	if err != nil {
		return err
	}

	*l = parsed

	return nil
}

// ParseLevel parses a level name, case-insensitively.
func ParseLevel(s string) (Level, error) {
	name := strings.ToLower(strings.TrimSpace(s))

	// logrus spelling
	if name == "warning" {
		name = "warn"
	}

	for l, levelName := range levelNames {
		if name == levelName {
			return Level(l), nil
		}
	}

	return 0, fmt.Errorf("%w: %q", ErrUnknownLevel, s)
}

// ZapLevel converts the level to zap.
func (l Level) ZapLevel() zapcore.Level {
	switch l {
	case ErrorLevel:
		return zapcore.ErrorLevel
	case WarnLevel:
		return zapcore.WarnLevel
	case InfoLevel:
		return zapcore.InfoLevel
	case DebugLevel:
		return zapcore.DebugLevel
	default:
		return ZapTraceLevel
	}
}

// LevelFromZap converts zap level.
//
// DPanic, Panic and Fatal are reported as ErrorLevel.
func LevelFromZap(l zapcore.Level) Level {
	switch {
	case l >= zapcore.ErrorLevel:
		return ErrorLevel
	case l == zapcore.WarnLevel:
		return WarnLevel
	case l == zapcore.InfoLevel:
		return InfoLevel
	case l == zapcore.DebugLevel:
		return DebugLevel
	default:
		return TraceLevel
	}
}

// LogrusLevel converts the level to logrus.
func (l Level) LogrusLevel() logrus.Level {
	switch l {
	case ErrorLevel:
		return logrus.ErrorLevel
	case WarnLevel:
		return logrus.WarnLevel
	case InfoLevel:
		return logrus.InfoLevel
	case DebugLevel:
		return logrus.DebugLevel
	default:
		return logrus.TraceLevel
	}
}

// LevelFromLogrus converts logrus level.
//
// Panic and Fatal are reported as ErrorLevel.
func LevelFromLogrus(l logrus.Level) Level {
	switch l {
	case logrus.PanicLevel, logrus.FatalLevel, logrus.ErrorLevel:
		return ErrorLevel
	case logrus.WarnLevel:
		return WarnLevel
	case logrus.InfoLevel:
		return InfoLevel
	case logrus.DebugLevel:
		return DebugLevel
	default:
		return TraceLevel
	}
}
