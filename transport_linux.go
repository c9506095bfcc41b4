//go:build linux

package msp

/*
MIT License

Copyright (c) 2015-2017 University Corporation for Atmospheric Research

Permission is hereby granted, free of charge, to any person obtaining a copy
of this software and associated documentation files (the "Software"), to deal
in the Software without restriction, including without limitation the rights
to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
copies of the Software, and to permit persons to whom the Software is
furnished to do so, subject to the following conditions:

The above copyright notice and this permission notice shall be included in all
copies or substantial portions of the Software.

THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
SOFTWARE.
*/

import (
	"golang.org/x/sys/unix"
)

var _ Transport = &posixTransport{}

/*
posixTransport is the real serial transport: one open fd, configured to
115200 8N1, non-canonical, VMIN=0/VTIME=1. It is built directly on
golang.org/x/sys/unix rather than a portable serial package, since no
portable serial package exposes raw VMIN/VTIME/CLOCAL control at this
level -- see DESIGN.md.
*/
type posixTransport struct {
	path string
	fd   int
	open bool
}

func newPosixTransport(path string) *posixTransport {
	return &posixTransport{path: path}
}

func (t *posixTransport) Open() error {
	fd, err := unix.Open(t.path, unix.O_RDWR|unix.O_NOCTTY|unix.O_NONBLOCK, 0)
	if err != nil {
		return newOSError(err.(unix.Errno))
	}
	if err := unix.SetNonblock(fd, false); err != nil {
		unix.Close(fd)
		return newOSError(err.(unix.Errno))
	}

	term, err := unix.IoctlGetTermios(fd, unix.TCGETS)
	if err != nil {
		unix.Close(fd)
		return newOSError(err.(unix.Errno))
	}

	term.Iflag = 0
	term.Oflag = 0
	term.Lflag = 0
	term.Cflag &^= unix.CSIZE | unix.PARENB | unix.CSTOPB | unix.CBAUD
	term.Cflag |= unix.CS8 | unix.CLOCAL | unix.CREAD | unix.B115200
	term.Ispeed = unix.B115200
	term.Ospeed = unix.B115200
	term.Cc[unix.VMIN] = 0
	term.Cc[unix.VTIME] = 1 // deciseconds: 0.1s per-read timeout

	if err := unix.IoctlSetTermios(fd, unix.TCSETS, term); err != nil {
		unix.Close(fd)
		return newOSError(err.(unix.Errno))
	}

	t.fd = fd
	t.open = true
	return nil
}

func (t *posixTransport) Close() error {
	t.open = false
	if err := unix.Close(t.fd); err != nil {
		return newOSError(err.(unix.Errno))
	}
	return nil
}

func (t *posixTransport) Write(b []byte) (int, error) {
	n, err := unix.Write(t.fd, b)
	if err != nil {
		return n, newOSError(err.(unix.Errno))
	}
	if n != len(b) {
		return n, newError(ErrOS, errTransmitShort)
	}
	return n, nil
}

// ReadExact issues up to retries read calls, each bounded by the VTIME
// timeout configured on Open, accumulating partial reads until buf is full
// or retries are exhausted. Each OS read call consumes one retry regardless
// of how many bytes it returned -- an implementer could instead count only
// zero-byte timeouts, but either choice bounds total wall-clock the same
// way, and this is the simpler one to reason about.
func (t *posixTransport) ReadExact(buf []byte, retries int) (int, error) {
	total := 0
	for attempt := 0; attempt < retries && total < len(buf); attempt++ {
		n, err := unix.Read(t.fd, buf[total:])
		if err != nil {
			return total, newOSError(err.(unix.Errno))
		}
		total += n
	}
	if total < len(buf) {
		return total, newError(ErrProtocolNoResponse, errReadIncomplete)
	}
	return total, nil
}

func (t *posixTransport) BytesAvailable() (int, error) {
	n, err := unix.IoctlGetInt(t.fd, unix.FIONREAD)
	if err != nil {
		return 0, newOSError(err.(unix.Errno))
	}
	return n, nil
}

// DrainOutput blocks until all written bytes have left the output queue,
// via the TCSBRK ioctl with a non-zero argument -- the same mechanism
// glibc's tcdrain(3) uses.
func (t *posixTransport) DrainOutput() error {
	if err := unix.IoctlSetInt(t.fd, unix.TCSBRK, 1); err != nil {
		return newOSError(err.(unix.Errno))
	}
	return nil
}

// FlushInputAndOutput discards both queues via TCFLSH/TCIOFLUSH.
func (t *posixTransport) FlushInputAndOutput() error {
	if err := unix.IoctlSetInt(t.fd, unix.TCFLSH, unix.TCIOFLUSH); err != nil {
		return newOSError(err.(unix.Errno))
	}
	return nil
}
