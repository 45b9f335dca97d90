// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at http://mozilla.org/MPL/2.0/.

package logging

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// ComponentKey is the field which overrides the record target.
const ComponentKey = "component"

// Component helper for creating zap.Field.
func Component(name string) zapcore.Field {
	return zap.String(ComponentKey, name)
}

// sinkCore is a zapcore.Core writing to the Sink.
//
// Only the entry message is written, fields other than the component are dropped.
type sinkCore struct {
	sink   *Sink
	target string

	// component was set via With, it takes precedence over the logger name.
	component string
}

// NewCore creates a zap core writing to the sink.
//
// Record target is the component field if set, the logger name otherwise,
// falling back to defaultTarget for unnamed loggers.
func NewCore(sink *Sink, defaultTarget string) zapcore.Core {
	return &sinkCore{
		sink:   sink,
		target: defaultTarget,
	}
}

// Enabled implements zapcore.LevelEnabler.
func (c *sinkCore) Enabled(l zapcore.Level) bool {
	return c.sink.Enabled(LevelFromZap(l))
}

// With implements zapcore.Core.
func (c *sinkCore) With(fields []zapcore.Field) zapcore.Core {
	component, ok := componentOf(fields)
	if !ok {
		return c
	}

	clone := *c
	clone.component = component

	return &clone
}

// Check implements zapcore.Core.
func (c *sinkCore) Check(entry zapcore.Entry, checked *zapcore.CheckedEntry) *zapcore.CheckedEntry {
	if c.Enabled(entry.Level) {
		return checked.AddCore(entry, c)
	}

	return checked
}

// Write implements zapcore.Core.
func (c *sinkCore) Write(entry zapcore.Entry, fields []zapcore.Field) error {
	target, ok := componentOf(fields)

	switch {
	case ok:
	case c.component != "":
		target = c.component
	case entry.LoggerName != "":
		target = entry.LoggerName
	default:
		target = c.target
	}

	c.sink.Log(Record{
		Level:   LevelFromZap(entry.Level),
		Target:  target,
		Message: entry.Message,
	})

	return nil
}

// Sync implements zapcore.Core.
func (c *sinkCore) Sync() error {
	c.sink.Flush()

	return nil
}

func componentOf(fields []zapcore.Field) (string, bool) {
	for i := len(fields) - 1; i >= 0; i-- {
		if fields[i].Key == ComponentKey && fields[i].Type == zapcore.StringType {
			return fields[i].String, true
		}
	}

	return "", false
}
