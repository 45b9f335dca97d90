// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at http://mozilla.org/MPL/2.0/.

package logging

import "io"

// NewSinkWithPID creates a sink over an open device with a fixed pid.
func NewSinkWithPID(device io.Writer, threshold Level, pid int) *Sink {
	return newSink(device, threshold, pid)
}

// SetProcCmdlinePath overrides the kernel command line path, the returned func restores it.
func SetProcCmdlinePath(path string) func() {
	prev := procCmdlinePath
	procCmdlinePath = path

	return func() {
		procCmdlinePath = prev
	}
}

// ResetInstalled forgets the installed sink.
func ResetInstalled() {
	installMu.Lock()
	defer installMu.Unlock()

	installed.Store(nil)
}
