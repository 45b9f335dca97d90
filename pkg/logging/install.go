// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at http://mozilla.org/MPL/2.0/.

package logging

import (
	"log"
	"sync"
	"sync/atomic"

	"github.com/sirupsen/logrus"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	// installMu serializes Install from the slot check to the store of the sink.
	installMu sync.Mutex
	installed atomic.Pointer[Sink]

	globalLevel = zap.NewAtomicLevelAt(ZapTraceLevel)
)

// InstallOption configures Install.
type InstallOption func(*installOptions)

type installOptions struct {
	target string

	stdLog       bool
	stdLogTarget string
	stdLogLevel  Level

	logrus       bool
	logrusTarget string
}

// WithTarget sets the target of records logged by unnamed zap loggers.
func WithTarget(target string) InstallOption {
	return func(o *installOptions) {
		o.target = target
	}
}

// WithStdLog redirects the standard log package to the sink, every line is logged at level.
func WithStdLog(target string, level Level) InstallOption {
	return func(o *installOptions) {
		o.stdLog = true
		o.stdLogTarget = target
		o.stdLogLevel = level
	}
}

// WithLogrus adds a hook writing to the sink to the standard logrus logger.
func WithLogrus(target string) InstallOption {
	return func(o *installOptions) {
		o.logrus = true
		o.logrusTarget = target
	}
}

// GlobalLevel is the level cutoff of the global zap logger.
//
// Install sets it to the sink threshold.
func GlobalLevel() zap.AtomicLevel {
	return globalLevel
}

// Installed returns the sink registered by Install, or nil.
func Installed() *Sink {
	return installed.Load()
}

// Install opens the device at path and registers the sink as the global zap logger.
//
// The threshold is taken from source, nil source or a source without a value
// accepts every level. Install succeeds at most once per process.
func Install(path string, source SeveritySource, opts ...InstallOption) (*Sink, error) {
	var options installOptions

	for _, o := range opts {
		o(&options)
	}

	threshold := resolveThreshold(source)

	installMu.Lock()
	defer installMu.Unlock()

	if installed.Load() != nil {
		return nil, &InstallError{Step: StepRegister, Err: ErrAlreadyInstalled}
	}

	sink, err := New(path, threshold)
	if err != nil {
		return nil, &InstallError{Step: StepOpen, Err: err}
	}

	prevLevel := globalLevel.Level()
	globalLevel.SetLevel(threshold.ZapLevel())

	core, err := zapcore.NewIncreaseLevelCore(NewCore(sink, options.target), globalLevel)
	if err != nil {
		globalLevel.SetLevel(prevLevel)
		sink.close()

		return nil, &InstallError{Step: StepRegister, Err: err}
	}

	installed.Store(sink)

	zap.ReplaceGlobals(zap.New(core))

	if options.stdLog {
		log.SetOutput(sink.StdLogWriter(options.stdLogTarget, options.stdLogLevel))
		log.SetPrefix("")
		log.SetFlags(0)
	}

	if options.logrus {
		logrus.SetLevel(threshold.LogrusLevel())
		logrus.AddHook(NewHook(sink, options.logrusTarget))
	}

	return sink, nil
}
