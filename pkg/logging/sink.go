// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at http://mozilla.org/MPL/2.0/.

// Package logging routes log records into the kernel ring buffer.
//
// A Sink owns a write handle to /dev/kmsg (or any other writable path) and
// renders every accepted record as a single device line:
//
//	<priority>target[pid]: message
//
// Sinks are bridged to zap (NewCore), logrus (NewHook) and the standard
// log package (Sink.StdLogWriter). Install builds a sink and registers it
// as the process-wide logger exactly once.
package logging

import (
	"io"
	"os"
	"strings"
	"sync"

	"github.com/siderolabs/kmsglog/internal/pkg/kmsg"
)

// Record is a single log record.
type Record struct {
	Level   Level
	Target  string
	Message string
}

// Sink writes log records to the kernel log device.
type Sink struct {
	mu     sync.Mutex
	device io.Writer

	threshold Level
	pid       int
}

// New opens path for writing and returns a sink accepting records
// at least as urgent as threshold.
func New(path string, threshold Level) (*Sink, error) {
	f, err := kmsg.Open(path)
	if err != nil {
		return nil, deviceOpenError(path, err)
	}

	return newSink(f, threshold, os.Getpid()), nil
}

// NewDefault is New with the kernel log device.
func NewDefault(threshold Level) (*Sink, error) {
	return New(kmsg.DefaultPath, threshold)
}

// NewFromEnvironment is New with the threshold read from the EnvLevel variable.
//
// Absent or malformed values accept every level.
func NewFromEnvironment(path string) (*Sink, error) {
	return New(path, resolveThreshold(FromEnvironment()))
}

func newSink(device io.Writer, threshold Level, pid int) *Sink {
	return &Sink{
		device:    device,
		threshold: threshold,
		pid:       pid,
	}
}

// Threshold returns the least urgent level accepted by the sink.
func (s *Sink) Threshold() Level {
	return s.threshold
}

// Enabled reports whether records at level l are written.
func (s *Sink) Enabled(l Level) bool {
	return s.threshold.Enabled(l)
}

// Log writes the record if its level is enabled.
//
// Write errors are discarded.
func (s *Sink) Log(r Record) {
	if !s.Enabled(r.Level) {
		return
	}

	line := kmsg.AppendLine(make([]byte, 0, len(r.Target)+len(r.Message)+24), r.Level.Priority(), r.Target, s.pid, r.Message)

	s.write(line)
}

func (s *Sink) write(line []byte) {
	defer func() {
		_ = recover()
	}()

	s.mu.Lock()
	defer s.mu.Unlock()

	s.device.Write(line) //nolint:errcheck

	if syncer, ok := s.device.(interface{ Sync() error }); ok {
		syncer.Sync() //nolint:errcheck
	}
}

func (s *Sink) close() {
	if closer, ok := s.device.(io.Closer); ok {
		closer.Close() //nolint:errcheck
	}
}

// Flush is a no-op: every record is written synchronously.
func (s *Sink) Flush() {}

// StdLogWriter returns a writer for the standard log package.
//
// Each write is logged as a single record at the given level.
func (s *Sink) StdLogWriter(target string, level Level) io.Writer {
	return &stdLogWriter{
		sink:   s,
		target: target,
		level:  level,
	}
}

type stdLogWriter struct {
	sink   *Sink
	target string
	level  Level
}

// Write implements io.Writer interface.
func (w *stdLogWriter) Write(line []byte) (int, error) {
	w.sink.Log(Record{
		Level:   w.level,
		Target:  w.target,
		Message: strings.TrimRight(string(line), "\r\n"),
	})

	return len(line), nil
}
