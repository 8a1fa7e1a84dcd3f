// Copyright 2023 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

//go:build aix || darwin || dragonfly || freebsd || hurd || linux || netbsd || openbsd

package main

import (
	"syscall"
	"unsafe"
)

func init() {
	isTTY = isatty
}

// isatty reports whether fd is a terminal: the window size ioctl
// succeeds only on one.
func isatty(fd uintptr) bool {
	p := [4]uint16{}
	_, _, e1 := syscall.Syscall(syscall.SYS_IOCTL, fd, syscall.TIOCGWINSZ,
		uintptr(unsafe.Pointer(&p[0])))
	return e1 == 0
}
