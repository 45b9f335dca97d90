// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at http://mozilla.org/MPL/2.0/.

package logging

import (
	"os"
	"strings"

	"github.com/siderolabs/go-procfs/procfs"
)

const (
	// EnvLevel is the environment variable holding the level name.
	EnvLevel = "KMSG_LOG_LEVEL"
	// KernelParamLevel is the kernel command line parameter holding the level name.
	KernelParamLevel = "kmsglog.level"
)

// read directly: procfs.ProcCmdline panics when the file is unreadable.
var procCmdlinePath = "/proc/cmdline"

// SeveritySource provides the sink threshold.
type SeveritySource interface {
	// Severity returns the level and true if the source has a valid value.
	Severity() (Level, bool)
}

// SeveritySourceFunc is a function SeveritySource.
type SeveritySourceFunc func() (Level, bool)

// Severity implements SeveritySource.
func (f SeveritySourceFunc) Severity() (Level, bool) {
	return f()
}

// FromLevel is a fixed threshold.
func FromLevel(l Level) SeveritySource {
	return SeveritySourceFunc(func() (Level, bool) {
		return l, l.valid()
	})
}

// FromEnvironment reads the threshold from the EnvLevel variable.
func FromEnvironment() SeveritySource {
	return SeveritySourceFunc(func() (Level, bool) {
		val, ok := os.LookupEnv(EnvLevel)
		if !ok {
			return 0, false
		}

		return parseSeverity(val)
	})
}

// FromCmdline reads the threshold from the KernelParamLevel parameter.
func FromCmdline(cmdline *procfs.Cmdline) SeveritySource {
	return SeveritySourceFunc(func() (Level, bool) {
		if cmdline == nil {
			return 0, false
		}

		param := cmdline.Get(KernelParamLevel)
		if param == nil {
			return 0, false
		}

		val := param.First()
		if val == nil {
			return 0, false
		}

		return parseSeverity(*val)
	})
}

// FromProcCmdline reads the threshold from the kernel command line of the running system.
func FromProcCmdline() SeveritySource {
	return SeveritySourceFunc(func() (Level, bool) {
		contents, err := os.ReadFile(procCmdlinePath)
		if err != nil {
			return 0, false
		}

		return FromCmdline(procfs.NewCmdline(strings.TrimSpace(string(contents)))).Severity()
	})
}

// FirstOf returns the value of the first source which has one.
func FirstOf(sources ...SeveritySource) SeveritySource {
	return SeveritySourceFunc(func() (Level, bool) {
		for _, source := range sources {
			if source == nil {
				continue
			}

			if l, ok := source.Severity(); ok {
				return l, true
			}
		}

		return 0, false
	})
}

func parseSeverity(s string) (Level, bool) {
	l, err := ParseLevel(s)
	if err != nil {
		return 0, false
	}

	return l, true
}

// resolveThreshold falls back to accepting everything.
func resolveThreshold(source SeveritySource) Level {
	if source == nil {
		return TraceLevel
	}

	if l, ok := source.Severity(); ok {
		return l
	}

	return TraceLevel
}
