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
	"log"
	"sync"

	"github.com/pkg/errors"
)

const (
	defaultReadRetries = 3
	recvBufferSize     = 1024
)

// openConfig holds everything Open's functional options can adjust.
type openConfig struct {
	version     Version
	readRetries int
	syncWindow  int
	logger      *log.Logger
	transport   Transport // overrides the default posixTransport; used by tests
}

// Option configures Open, in the functional-options style.
type Option func(*openConfig)

// WithVersion selects the MSP version Set validates outgoing commands
// against (V1 restricts commands to 0..255). Defaults to V1.
func WithVersion(v Version) Option {
	return func(c *openConfig) { c.version = v }
}

// WithReadRetries overrides the default read-retry count (3). Must be
// positive; Open rejects non-positive values with ErrArgument.
func WithReadRetries(n int) Option {
	return func(c *openConfig) { c.readRetries = n }
}

// WithSyncWindow overrides the default 50-byte sync-search bound.
func WithSyncWindow(n int) Option {
	return func(c *openConfig) { c.syncWindow = n }
}

// WithLogger overrides the default logger (log.Default()) used for
// advisory, non-fatal conditions such as Close on an already-closed Device.
func WithLogger(l *log.Logger) Option {
	return func(c *openConfig) { c.logger = l }
}

// WithTransport overrides the default POSIX termios transport. Intended for
// tests and for non-Linux platforms that supply their own Transport.
func WithTransport(t Transport) Option {
	return func(c *openConfig) { c.transport = t }
}

/*
Device is one open link to a single MSP responder. It aggregates
configuration, transport state, a fixed 1024-byte receive buffer, and a
mutex enforcing single-threaded use. A Device is created closed; Open
configures the line and transitions it to open. While open, every public
operation is serialized by mux: at most one of Open/Close/Get/Set executes
at a time.
*/
type Device struct {
	mux sync.Mutex

	path        string
	version     Version
	readRetries int
	syncWindow  int

	// Logger receives advisory, non-fatal log lines (e.g. Close on an
	// already-closed Device). Exported so callers can repoint it after
	// Open via SetLogger.
	Logger *log.Logger

	transport Transport
	recvBuf   [recvBufferSize]byte
	lastErrno error // most recent *Error with Code == ErrOS, if any
	isOpen    bool
}

// Open creates a Device and opens path with the given options. It validates
// the effective version and retry count before touching the transport.
func Open(path string, opts ...Option) (*Device, error) {
	cfg := openConfig{
		version:     V1,
		readRetries: defaultReadRetries,
		syncWindow:  defaultSyncWindow,
		logger:      log.Default(),
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	if cfg.version != V1 && cfg.version != V2 {
		return nil, newError(ErrArgument, errors.Errorf("unsupported msp version %q", byte(cfg.version)))
	}
	if cfg.readRetries <= 0 {
		return nil, newError(ErrArgument, errors.New("read retry count must be positive"))
	}

	d := &Device{
		path:        path,
		version:     cfg.version,
		readRetries: cfg.readRetries,
		syncWindow:  cfg.syncWindow,
		Logger:      cfg.logger,
		transport:   cfg.transport,
	}
	if d.transport == nil {
		d.transport = newPosixTransport(path)
	}

	d.mux.Lock()
	defer d.mux.Unlock()

	if err := d.transport.Open(); err != nil {
		return nil, d.recordErrno(err)
	}
	d.isOpen = true
	return d, nil
}

// Close releases the underlying OS handle. Calling Close on an already
// closed Device is non-fatal: it logs a warning and returns nil.
func (d *Device) Close() error {
	d.mux.Lock()
	defer d.mux.Unlock()

	if !d.isOpen {
		d.logf("msp: Close called on a device that is not open (%s)", d.path)
		return nil
	}
	d.isOpen = false
	if err := d.transport.Close(); err != nil {
		return d.recordErrno(err)
	}
	return nil
}

// Get issues a request for command with an empty payload and waits for one
// response packet.
func (d *Device) Get(command uint16, flag byte) (*Packet, error) {
	d.mux.Lock()
	defer d.mux.Unlock()

	if err := d.requireOpen(); err != nil {
		return nil, err
	}
	if err := d.validateCommand(command); err != nil {
		return nil, err
	}
	return d.roundTrip(command, flag, nil)
}

/*
Set issues a request for command with the given payload. If waitForAck is
true, it drains output, then waits for and returns one response packet; if
false, it returns immediately after the write, without draining output, with
a nil Packet.
*/
func (d *Device) Set(command uint16, payload []byte, flag byte, waitForAck bool) (*Packet, error) {
	d.mux.Lock()
	defer d.mux.Unlock()

	if err := d.requireOpen(); err != nil {
		return nil, err
	}
	if err := d.validateCommand(command); err != nil {
		return nil, err
	}
	if len(payload) > MaxPayloadSize {
		return nil, newError(ErrResource, errors.Errorf("payload of %d bytes exceeds the %d byte limit", len(payload), MaxPayloadSize))
	}

	if err := d.transport.FlushInputAndOutput(); err != nil {
		return nil, d.recordErrno(err)
	}
	if err := d.send(command, flag, payload); err != nil {
		return nil, d.recordErrno(err)
	}
	if !waitForAck {
		return nil, nil
	}
	if err := d.transport.DrainOutput(); err != nil {
		return nil, d.recordErrno(err)
	}
	return d.parseOne()
}

// roundTrip is the flush/send/drain/parse sequence Get runs. Set performs
// the same steps inline, stopping after the send when waitForAck is false.
func (d *Device) roundTrip(command uint16, flag byte, payload []byte) (*Packet, error) {
	if err := d.transport.FlushInputAndOutput(); err != nil {
		return nil, d.recordErrno(err)
	}
	if err := d.send(command, flag, payload); err != nil {
		return nil, d.recordErrno(err)
	}
	if err := d.transport.DrainOutput(); err != nil {
		return nil, d.recordErrno(err)
	}
	return d.parseOne()
}

func (d *Device) send(command uint16, flag byte, payload []byte) error {
	var frame []byte
	switch d.version {
	case V1:
		frame = encodeV1(byte(command), payload)
	case V2:
		frame = encodeV2(flag, command, payload)
	default:
		return newError(ErrInternal, errUnknownVersion)
	}

	n, err := d.transport.Write(frame)
	if err != nil {
		return err
	}
	if n != len(frame) {
		return newError(ErrOS, errTransmitShort)
	}
	return nil
}

// parseOne decodes a single response packet into the Device's receive
// buffer, then returns an owned copy to the caller: the returned Packet's
// payload must stay valid past the next Get/Set call on this Device.
func (d *Device) parseOne() (*Packet, error) {
	dec := newDecoder(d.transport, d.readRetries, d.syncWindow, d.recvBuf[:])
	pkt, err := dec.decode()
	if err != nil {
		if me, ok := err.(*Error); ok && me.Packet != nil {
			me.Packet = me.Packet.Clone()
		}
		return nil, d.recordErrno(err)
	}
	return pkt.Clone(), nil
}

func (d *Device) requireOpen() error {
	if !d.isOpen {
		return newError(ErrArgument, errors.New("device is not open"))
	}
	return nil
}

func (d *Device) validateCommand(command uint16) error {
	if d.version == V1 && command > 255 {
		return newError(ErrArgument, errors.Errorf("command %d exceeds 255, the V1 command width", command))
	}
	return nil
}

// recordErrno stashes the OS error number on the Device when err is an
// ErrOS-categorized *Error, then returns err unchanged -- an out-of-band
// last-error slot, kept for parity with C-style handle APIs even though Go
// callers can also just read err.(*Error).Errno directly.
func (d *Device) recordErrno(err error) error {
	if me, ok := err.(*Error); ok && me.Code == ErrOS {
		d.lastErrno = err
	}
	return err
}

// LastErrno returns the most recent ErrOS-categorized error recorded on
// this Device, or nil if none has occurred.
func (d *Device) LastErrno() error {
	return d.lastErrno
}

// Path returns the device path this Device was opened with.
func (d *Device) Path() string {
	return d.path
}

// IsOpen reports whether this Device currently holds an open transport.
func (d *Device) IsOpen() bool {
	d.mux.Lock()
	defer d.mux.Unlock()
	return d.isOpen
}

// ---------- Logging ----------

func (d *Device) logf(format string, args ...interface{}) {
	if d == nil {
		return
	}
	l := d.Logger
	if l == nil {
		l = log.Default()
	}
	l.Printf(format, args...)
}

// SetLogger repoints Logger after Open, e.g. to route advisory log lines
// into a caller's own logger instead of log.Default().
func (d *Device) SetLogger(l *log.Logger) {
	d.Logger = l
}
