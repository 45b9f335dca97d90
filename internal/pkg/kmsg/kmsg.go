// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at http://mozilla.org/MPL/2.0/.

// Package kmsg implements the write side of the kernel ring buffer device.
package kmsg

import (
	"os"

	"golang.org/x/sys/unix"
)

// DefaultPath is the kernel ring buffer device.
const DefaultPath = "/dev/kmsg"

// Open opens the device at path for writing.
//
// The device is never created, truncated or opened in append mode.
func Open(path string) (*os.File, error) {
	return os.OpenFile(path, os.O_WRONLY|unix.O_CLOEXEC|unix.O_NONBLOCK|unix.O_NOCTTY, 0)
}
