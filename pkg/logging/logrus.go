// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at http://mozilla.org/MPL/2.0/.

package logging

import (
	"github.com/sirupsen/logrus"
)

// Hook is a logrus hook writing to the Sink.
type Hook struct {
	sink   *Sink
	target string
	levels []logrus.Level
}

// NewHook creates a logrus hook writing to the sink.
//
// Record target is the entry's component field if set, defaultTarget otherwise.
func NewHook(sink *Sink, defaultTarget string) *Hook {
	h := &Hook{
		sink:   sink,
		target: defaultTarget,
	}

	for _, l := range logrus.AllLevels {
		if sink.Enabled(LevelFromLogrus(l)) {
			h.levels = append(h.levels, l)
		}
	}

	return h
}

// Levels implements logrus.Hook.
func (h *Hook) Levels() []logrus.Level {
	return h.levels
}

// Fire implements logrus.Hook.
func (h *Hook) Fire(entry *logrus.Entry) error {
	target := h.target

	if component, ok := entry.Data[ComponentKey].(string); ok && component != "" {
		target = component
	}

	h.sink.Log(Record{
		Level:   LevelFromLogrus(entry.Level),
		Target:  target,
		Message: entry.Message,
	})

	return nil
}
