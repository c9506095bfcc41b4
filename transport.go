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

/*
Transport is the narrow, MSP-specific contract a serial line (or a fake, for
tests) must provide. Every operation may suspend the calling goroutine on OS
I/O. Implementations must preserve the OS error number on any syscall
failure so it can be surfaced via ErrOS.

A Transport does not expose a dial string or Stringer -- MSP only ever runs
over one already-identified serial device per Device, so there is no
multiplexing to name.
*/
type Transport interface {
	// Open configures and opens the underlying device. Implementations
	// configure 8N1 at 115200 baud, non-canonical mode, no echo, no
	// signals, no output post-processing, CLOCAL|CREAD, and a per-read
	// timeout of VMIN=0/VTIME=1 (up to 0.1s).
	Open() error

	// Close releases the underlying OS handle.
	Close() error

	// Write issues a single write call. If fewer bytes were accepted than
	// requested, it returns an ErrOS-shaped transmit-short failure rather
	// than retrying the remainder.
	Write(b []byte) (int, error)

	// ReadExact attempts to read exactly len(buf) bytes, issuing up to
	// retries read calls (each bounded by the per-read timeout),
	// accumulating partial reads. It returns a non-nil error if retries
	// are exhausted with fewer bytes received.
	ReadExact(buf []byte, retries int) (int, error)

	// BytesAvailable returns a non-blocking count of input-queued bytes
	// (a FIONREAD equivalent).
	BytesAvailable() (int, error)

	// DrainOutput blocks until all written bytes have left the OS-side
	// output queue.
	DrainOutput() error

	// FlushInputAndOutput discards queued input and not-yet-sent output
	// bytes.
	FlushInputAndOutput() error
}
