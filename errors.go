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
	"syscall"

	"github.com/pkg/errors"
)

// ErrorCode categorizes the failures this package can return.
type ErrorCode int

const (
	// ErrNone is the zero value; never attached to a returned *Error.
	ErrNone ErrorCode = iota

	// ErrArgument covers invalid version, non-positive retry count,
	// command > 255 with V1 selected, or any other caller-supplied
	// argument that fails validation before any I/O is attempted.
	ErrArgument

	// ErrOS covers any syscall failure; the OS error number is preserved
	// on the Errno field.
	ErrOS

	// ErrProtocolNoResponse covers sync-byte-not-found within the sync
	// window, or read retries exhausted before the required bytes arrived.
	ErrProtocolNoResponse

	// ErrProtocolBadChecksum covers a decoded packet that failed its
	// checksum; the partially decoded Packet is attached.
	ErrProtocolBadChecksum

	// ErrProtocolNACK covers a structurally valid packet whose direction
	// byte is '!'; the decoded Packet is attached.
	ErrProtocolNACK

	// ErrResource covers an incoming payload that would exceed the receive
	// buffer, or an outgoing payload passed to Set that exceeds
	// MaxPayloadSize.
	ErrResource

	// ErrInternal covers an unreachable branch, such as an unrecognized
	// version byte surviving header validation. Indicates a bug.
	ErrInternal
)

// String renders the category name, mostly for log lines and test failures.
func (c ErrorCode) String() string {
	switch c {
	case ErrArgument:
		return "argument"
	case ErrOS:
		return "os"
	case ErrProtocolNoResponse:
		return "protocol-no-response"
	case ErrProtocolBadChecksum:
		return "protocol-bad-checksum"
	case ErrProtocolNACK:
		return "protocol-nack"
	case ErrResource:
		return "resource"
	case ErrInternal:
		return "internal"
	default:
		return "none"
	}
}

var (
	errTransmitShort  = errors.New("short write: fewer bytes accepted than requested")
	errReadIncomplete = errors.New("read retries exhausted before required bytes arrived")
	errSyncNotFound   = errors.New("sync byte not found within sync window")
	errUnknownVersion = errors.New("unrecognized MSP version byte after header")
)

var _ error = &Error{}

/*
Error is returned by every public operation in this package. Code identifies
the failure category; Errno carries the OS error number when Code is ErrOS
(zero otherwise); Packet carries the partially or fully decoded packet when
Code is ErrProtocolBadChecksum or ErrProtocolNACK (nil otherwise).
*/
type Error struct {
	Code   ErrorCode
	Errno  syscall.Errno
	Packet *Packet
	err    error
}

// newError wraps err (which may be nil) with errors.WithStack so that the
// call site is preserved in the chain.
func newError(code ErrorCode, err error) *Error {
	if err == nil {
		err = errors.New(code.String())
	}
	return &Error{Code: code, err: errors.WithStack(err)}
}

func newOSError(errno syscall.Errno) *Error {
	e := newError(ErrOS, errno)
	e.Errno = errno
	return e
}

func newProtocolError(code ErrorCode, pkt *Packet, err error) *Error {
	e := newError(code, err)
	e.Packet = pkt
	return e
}

// Error conforms to the error interface.
func (e *Error) Error() string {
	if e.Errno != 0 {
		return errors.Wrapf(e.err, "msp: %s (errno %d)", e.Code, int(e.Errno)).Error()
	}
	return errors.Wrapf(e.err, "msp: %s", e.Code).Error()
}

// Unwrap exposes the wrapped cause for errors.Is/errors.As.
func (e *Error) Unwrap() error {
	return e.err
}

/*
IsCommError is a shorthand way to check if a returned error belongs to the
lighter "communication error" class suitable for counters and soft retries:
no-response, bad-checksum, and NACK. Every other category is considered
fatal for the current operation. Dont pass nil errors here, the desired
behaviour is not defined, and will panic.
*/
func IsCommError(err error) bool {
	if err == nil {
		panic("Unable to determine what to do with a nil error.")
	}
	me, ok := err.(*Error)
	if !ok {
		return false
	}
	switch me.Code {
	case ErrProtocolNoResponse, ErrProtocolBadChecksum, ErrProtocolNACK:
		return true
	default:
		return false
	}
}

/*
IsFatal is the complement of IsCommError for *Error values: true for
ErrArgument, ErrOS, ErrResource, and ErrInternal. Non-*Error values (which
this package never itself returns, but a caller may compare against) are
treated as fatal.
*/
func IsFatal(err error) bool {
	if err == nil {
		panic("Unable to determine what to do with a nil error.")
	}
	return !IsCommError(err)
}

// Code is a convenience accessor so callers can switch on err.(*msp.Error)
// without a second type assertion; returns ErrNone for non-*Error values.
func Code(err error) ErrorCode {
	if me, ok := err.(*Error); ok {
		return me.Code
	}
	return ErrNone
}
