// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at http://mozilla.org/MPL/2.0/.

package logging

import (
	"errors"
	"fmt"
)

var (
	// ErrDeviceOpen is returned when the log device can't be opened for writing.
	ErrDeviceOpen = errors.New("failed to open log device")
	// ErrAlreadyInstalled is returned by Install when a sink is already active.
	ErrAlreadyInstalled = errors.New("logger already installed")
	// ErrUnknownLevel is returned when parsing an unknown level name.
	ErrUnknownLevel = errors.New("unknown log level")
)

// InstallStep identifies the step of Install which failed.
type InstallStep int

// Install steps.
const (
	StepOpen InstallStep = iota
	StepRegister
)

func (s InstallStep) String() string {
	switch s {
	case StepOpen:
		return "open"
	case StepRegister:
		return "register"
	default:
		return fmt.Sprintf("InstallStep(%d)", int(s))
	}
}

// InstallError is returned by Install.
type InstallError struct {
	Step InstallStep
	Err  error
}

func (e *InstallError) Error() string {
	return fmt.Sprintf("error installing kernel logger (%s): %s", e.Step, e.Err)
}

func (e *InstallError) Unwrap() error {
	return e.Err
}

func deviceOpenError(path string, err error) error {
	return fmt.Errorf("%w %q: %w", ErrDeviceOpen, path, err)
}
