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

import "fmt"

// Version identifies which MSP wire format produced or should encode a Packet.
type Version byte

const (
	// V1 is the original 8-bit-command, 8/16-bit-length MSP format,
	// marked 'M' on the wire.
	V1 Version = 'M'

	// V2 is the 16-bit-command, 16-bit-length format with a CRC8/DVB-S2
	// checksum, marked 'X' on the wire.
	V2 Version = 'X'
)

// Direction identifies who sent a Packet and whether it is an error.
type Direction byte

const (
	// DirRequest marks a packet sent to the responder.
	DirRequest Direction = '<'

	// DirResponse marks a successful packet received from the responder.
	DirResponse Direction = '>'

	// DirError marks a NACK packet received from the responder.
	DirError Direction = '!'
)

// MaxPayloadSize is the largest payload this package will parse or emit --
// one less than the 1024-byte receive buffer, since a checksum byte always
// follows the payload in the buffer.
const MaxPayloadSize = 1023

/*
Packet is produced by the decoder and returned from Get/Set. Flag is
meaningful only for V2 (zero for V1). Command is 16-bit; V1 widens its 8-bit
command onto this field. Payload has length payload_size, 0..=1023.

The decoder fills Payload as a view into the Device's internal receive
buffer, but Get and Set return a Clone, and a Packet attached to an *Error
is cloned as well: the Payload a caller receives is its own copy and stays
valid past later Get/Set calls on the same Device.
*/
type Packet struct {
	Version   Version
	Direction Direction
	Flag      byte
	Command   uint16
	Payload   []byte
	Checksum  byte

	// Discarded counts the non-sync bytes the decoder consumed while
	// searching for this packet's leading '$' -- a line-noise counter a
	// caller (e.g. cmd/mspcli) can report alongside the packet itself.
	Discarded int
}

// IsNACK reports whether this packet's direction byte marks it as an error
// response from the responder.
func (p *Packet) IsNACK() bool {
	return p.Direction == DirError
}

// Clone returns a Packet whose Payload is a freshly allocated copy, safe to
// retain past the next receive operation on the Device that produced it.
func (p *Packet) Clone() *Packet {
	cp := *p
	cp.Payload = append([]byte(nil), p.Payload...)
	return &cp
}

// String renders a compact, human-readable summary, e.g. for log lines.
func (p *Packet) String() string {
	return fmt.Sprintf("msp.Packet{version:%c direction:%c flag:%#02x command:%d payload:%d bytes checksum:%#02x discarded:%d}",
		byte(p.Version), byte(p.Direction), p.Flag, p.Command, len(p.Payload), p.Checksum, p.Discarded)
}
