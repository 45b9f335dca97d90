// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at http://mozilla.org/MPL/2.0/.

package logging_test

import (
	"fmt"
	"io"
	"io/fs"
	"log"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/siderolabs/kmsglog/pkg/logging"
)

// TestInstall and TestInstallConcurrent are the only tests touching the process-wide logger.
//
//nolint:paralleltest
func TestInstall(t *testing.T) {
	logging.ResetInstalled()

	t.Cleanup(func() {
		log.SetOutput(os.Stderr)
		log.SetFlags(log.LstdFlags)
	})

	logrus.SetOutput(io.Discard)

	dir := t.TempDir()

	first := filepath.Join(dir, "first")
	second := filepath.Join(dir, "second")

	for _, path := range []string{first, second} {
		require.NoError(t, os.WriteFile(path, nil, 0o600))
	}

	// device open failure doesn't consume the slot
	_, err := logging.Install(filepath.Join(dir, "missing"), logging.FromLevel(logging.InfoLevel))
	require.Error(t, err)

	var installErr *logging.InstallError

	require.ErrorAs(t, err, &installErr)
	assert.Equal(t, logging.StepOpen, installErr.Step)
	assert.ErrorIs(t, err, logging.ErrDeviceOpen)
	assert.ErrorIs(t, err, fs.ErrNotExist)
	assert.Nil(t, logging.Installed())

	sink, err := logging.Install(first, logging.FirstOf(logging.FromCmdline(nil), logging.FromLevel(logging.InfoLevel)),
		logging.WithTarget("generator"),
		logging.WithStdLog("init", logging.WarnLevel),
		logging.WithLogrus("containerd"),
	)
	require.NoError(t, err)

	assert.Same(t, sink, logging.Installed())
	assert.Equal(t, logging.InfoLevel, sink.Threshold())
	assert.Equal(t, zapcore.InfoLevel, logging.GlobalLevel().Level())
	assert.Equal(t, logrus.InfoLevel, logrus.GetLevel())

	_, err = logging.Install(second, logging.FromLevel(logging.TraceLevel))
	require.Error(t, err)

	require.ErrorAs(t, err, &installErr)
	assert.Equal(t, logging.StepRegister, installErr.Step)
	assert.ErrorIs(t, err, logging.ErrAlreadyInstalled)
	assert.Same(t, sink, logging.Installed())

	zap.L().Debug("dropped by the facade")
	zap.L().Info("unnamed")
	zap.L().Named("svc").Info("started")
	zap.S().Warnf("rendered %d", 42)

	log.Printf("mounting %s", "/")

	logrus.Debug("dropped by logrus")
	logrus.WithField(logging.ComponentKey, "cri").Warn("slow")

	// lowering the facade cutoff doesn't bypass the sink threshold
	logging.GlobalLevel().SetLevel(zapcore.DebugLevel)
	zap.L().Debug("dropped by the sink")

	pid := os.Getpid()

	assert.Equal(t, []string{
		fmt.Sprintf("<5>generator[%d]: unnamed\n", pid),
		fmt.Sprintf("<5>svc[%d]: started\n", pid),
		fmt.Sprintf("<4>generator[%d]: rendered 42\n", pid),
		fmt.Sprintf("<4>init[%d]: mounting /\n", pid),
		fmt.Sprintf("<4>cri[%d]: slow", pid),
	}, readLines(t, first))

	assert.Empty(t, readLines(t, second))
}

//nolint:paralleltest
func TestInstallConcurrent(t *testing.T) {
	logging.ResetInstalled()

	dir := t.TempDir()
	good := filepath.Join(dir, "kmsg")
	require.NoError(t, os.WriteFile(good, nil, 0o600))

	const attempts = 16

	var (
		wg     sync.WaitGroup
		sink   *logging.Sink
		errs   = make([]error, attempts)
	)

	wg.Add(attempts + 1)

	for i := range attempts {
		go func() {
			defer wg.Done()

			_, errs[i] = logging.Install(filepath.Join(dir, "missing"), nil)
		}()
	}

	var goodErr error

	go func() {
		defer wg.Done()

		sink, goodErr = logging.Install(good, logging.FromLevel(logging.InfoLevel))
	}()

	wg.Wait()

	// a failed open never holds the slot, so the valid device always wins
	require.NoError(t, goodErr)
	assert.Same(t, sink, logging.Installed())

	for _, err := range errs {
		var installErr *logging.InstallError

		require.ErrorAs(t, err, &installErr)

		switch installErr.Step {
		case logging.StepOpen:
			assert.ErrorIs(t, err, logging.ErrDeviceOpen)
		case logging.StepRegister:
			assert.ErrorIs(t, err, logging.ErrAlreadyInstalled)
		}
	}

	zap.L().Named("gen").Info("after race")

	assert.Equal(t, []string{fmt.Sprintf("<5>gen[%d]: after race", os.Getpid())}, readLines(t, good))
}
