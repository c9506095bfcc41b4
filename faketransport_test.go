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

import "sync"

// fakeTransport is an in-memory Transport double. Real serial ioctls cannot
// be exercised by go test, so decode_test.go and device_test.go drive the
// decoder and Device against this instead of a real socket or serial fd.
type fakeTransport struct {
	mu sync.Mutex

	openErr  error
	closeErr error
	opened   bool
	closed   bool

	in      []byte // bytes available to ReadExact, consumed front to back
	readErr error  // returned once in is exhausted, instead of the default no-response error

	writes     [][]byte
	writeErr   error
	writeShort bool

	flushCalls int
	drainCalls int

	// busy is non-zero while a call is in flight; used to catch a Device
	// failing to serialize concurrent callers.
	busy int
	reentered bool
}

func (f *fakeTransport) enter() func() {
	f.mu.Lock()
	if f.busy != 0 {
		f.reentered = true
	}
	f.busy++
	f.mu.Unlock()
	return func() {
		f.mu.Lock()
		f.busy--
		f.mu.Unlock()
	}
}

func (f *fakeTransport) Open() error {
	defer f.enter()()
	if f.openErr != nil {
		return f.openErr
	}
	f.opened = true
	return nil
}

func (f *fakeTransport) Close() error {
	defer f.enter()()
	if f.closeErr != nil {
		return f.closeErr
	}
	f.closed = true
	return nil
}

func (f *fakeTransport) Write(b []byte) (int, error) {
	defer f.enter()()
	f.mu.Lock()
	f.writes = append(f.writes, append([]byte(nil), b...))
	f.mu.Unlock()
	if f.writeErr != nil {
		return 0, f.writeErr
	}
	if f.writeShort && len(b) > 0 {
		return len(b) - 1, nil
	}
	return len(b), nil
}

// ReadExact drains whatever is queued in f.in, one greedy chunk per retry
// attempt. If the buffer can't be filled before retries or input runs out,
// it returns readErr (or the default no-response error).
func (f *fakeTransport) ReadExact(buf []byte, retries int) (int, error) {
	defer f.enter()()
	f.mu.Lock()
	defer f.mu.Unlock()

	n := 0
	for attempt := 0; attempt < retries && n < len(buf); attempt++ {
		if len(f.in) == 0 {
			continue
		}
		take := len(buf) - n
		if take > len(f.in) {
			take = len(f.in)
		}
		copy(buf[n:n+take], f.in[:take])
		f.in = f.in[take:]
		n += take
	}
	if n < len(buf) {
		if f.readErr != nil {
			return n, f.readErr
		}
		return n, newError(ErrProtocolNoResponse, errReadIncomplete)
	}
	return n, nil
}

func (f *fakeTransport) BytesAvailable() (int, error) {
	defer f.enter()()
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.in), nil
}

func (f *fakeTransport) DrainOutput() error {
	defer f.enter()()
	f.mu.Lock()
	f.drainCalls++
	f.mu.Unlock()
	return nil
}

func (f *fakeTransport) FlushInputAndOutput() error {
	defer f.enter()()
	f.mu.Lock()
	f.flushCalls++
	f.mu.Unlock()
	return nil
}
