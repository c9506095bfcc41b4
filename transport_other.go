//go:build !linux

package msp

import "github.com/pkg/errors"

var _ Transport = &posixTransport{}

// posixTransport is unimplemented on non-Linux platforms: the termios
// configuration (VMIN/VTIME, CLOCAL|CREAD) this package relies on is
// Linux-ioctl-specific. Callers on other platforms should supply their own
// Transport to Open via WithTransport.
type posixTransport struct {
	path string
}

func newPosixTransport(path string) *posixTransport {
	return &posixTransport{path: path}
}

var errUnsupportedPlatform = errors.New("msp: posix serial transport is only implemented on linux")

func (t *posixTransport) Open() error                              { return newError(ErrOS, errUnsupportedPlatform) }
func (t *posixTransport) Close() error                              { return newError(ErrOS, errUnsupportedPlatform) }
func (t *posixTransport) Write(b []byte) (int, error)               { return 0, newError(ErrOS, errUnsupportedPlatform) }
func (t *posixTransport) ReadExact(buf []byte, retries int) (int, error) {
	return 0, newError(ErrOS, errUnsupportedPlatform)
}
func (t *posixTransport) BytesAvailable() (int, error)    { return 0, newError(ErrOS, errUnsupportedPlatform) }
func (t *posixTransport) DrainOutput() error              { return newError(ErrOS, errUnsupportedPlatform) }
func (t *posixTransport) FlushInputAndOutput() error      { return newError(ErrOS, errUnsupportedPlatform) }
