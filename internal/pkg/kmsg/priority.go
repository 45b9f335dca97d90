// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at http://mozilla.org/MPL/2.0/.

package kmsg

import (
	"strconv"
)

// Priority is an attribute of kernel log message.
type Priority int

// Kernel log priorities.
//
// From <sys/syslog.h>.
const (
	Emerg Priority = iota
	Alert
	Crit
	Err
	Warning
	Notice
	Info
	Debug
)

func (p Priority) String() string {
	if p < Emerg || p > Debug {
		return "Priority(" + strconv.Itoa(int(p)) + ")"
	}

	return [...]string{"emerg", "alert", "crit", "err", "warning", "notice", "info", "debug"}[p]
}

// AppendLine appends a single device line to buf:
//
//	<priority>target[pid]: message\n
//
// target and message are written verbatim.
func AppendLine(buf []byte, p Priority, target string, pid int, message string) []byte {
	buf = append(buf, '<')
	buf = strconv.AppendInt(buf, int64(p), 10)
	buf = append(buf, '>')
	buf = append(buf, target...)
	buf = append(buf, '[')
	buf = strconv.AppendInt(buf, int64(pid), 10)
	buf = append(buf, "]: "...)
	buf = append(buf, message...)
	buf = append(buf, '\n')

	return buf
}
