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

import "encoding/binary"

// defaultSyncWindow is the number of non-sync bytes the decoder will discard
// before giving up with ErrProtocolNoResponse. Configurable alongside
// read retries via WithSyncWindow.
const defaultSyncWindow = 50

/*
decoder runs the MSP frame parsing state machine against
a Transport, writing payload bytes into a caller-supplied scratch buffer
(the Device's receive buffer). It never allocates beyond that buffer, one
small scratch slice for fixed-size header reads, and the single heap
allocation backing the returned Packet's clone-free view.
*/
type decoder struct {
	transport  Transport
	retries    int
	syncWindow int
	buf        []byte // scratch receive area, len >= MaxPayloadSize+1

	// discarded counts the non-sync bytes consumed during the most recent
	// sync search. Copied onto the decoded Packet's Discarded field so
	// callers can report it as a line-noise counter.
	discarded int
}

func newDecoder(t Transport, retries, syncWindow int, buf []byte) *decoder {
	return &decoder{transport: t, retries: retries, syncWindow: syncWindow, buf: buf}
}

// decode runs one full parse and returns the decoded packet. On any failure
// the returned Packet is nil; on a checksum mismatch or NACK, the returned
// error is an *Error carrying the partially or fully decoded Packet.
func (d *decoder) decode() (*Packet, error) {
	d.discarded = 0

	if err := d.syncSearch(); err != nil {
		return nil, err
	}

	var header [2]byte
	if _, err := d.transport.ReadExact(header[:], d.retries); err != nil {
		return nil, err
	}

	pkt := &Packet{
		Version:   Version(header[0]),
		Direction: Direction(header[1]),
		Discarded: d.discarded,
	}

	switch pkt.Version {
	case V1:
		if err := d.decodeV1(pkt); err != nil {
			return nil, err
		}
	case V2:
		if err := d.decodeV2(pkt, 0); err != nil {
			return nil, err
		}
	default:
		return nil, newError(ErrInternal, errUnknownVersion)
	}

	if pkt.IsNACK() {
		return nil, newProtocolError(ErrProtocolNACK, pkt, nil)
	}
	return pkt, nil
}

// syncSearch reads one byte at a time until '$' is seen, or until
// syncWindow non-sync bytes have been consumed, or the transport itself
// reports no-response.
func (d *decoder) syncSearch() error {
	var b [1]byte
	for d.discarded < d.syncWindow {
		if _, err := d.transport.ReadExact(b[:], d.retries); err != nil {
			return err
		}
		if b[0] == '$' {
			return nil
		}
		d.discarded++
	}
	return newError(ErrProtocolNoResponse, errSyncNotFound)
}

// decodeV1 reads the V1_HEADER and V1_BODY states, including the JUMBO
// length escape and the tunnel into V2_HEADER when command == 255.
func (d *decoder) decodeV1(pkt *Packet) error {
	var hdr [2]byte // size, command
	if _, err := d.transport.ReadExact(hdr[:], d.retries); err != nil {
		return err
	}
	size, cmd := hdr[0], hdr[1]
	seed := xorChecksum(hdr[:], 0)

	payloadSize := int(size)
	if size == 255 {
		var lenBytes [2]byte
		if _, err := d.transport.ReadExact(lenBytes[:], d.retries); err != nil {
			return err
		}
		seed = xorChecksum(lenBytes[:], seed)
		payloadSize = int(binary.LittleEndian.Uint16(lenBytes[:]))
	}

	pkt.Command = uint16(cmd)

	if cmd == 255 {
		// V2 tunneled inside a V1 frame: the V1 checksum is not
		// validated here -- the following V2 CRC covers integrity.
		return d.decodeV2(pkt, 0)
	}

	return d.v1Body(pkt, payloadSize, seed)
}

func (d *decoder) v1Body(pkt *Packet, payloadSize int, seed byte) error {
	if payloadSize > len(d.buf)-1 {
		return newError(ErrResource, nil)
	}
	region := d.buf[:payloadSize+1]
	if _, err := d.transport.ReadExact(region, d.retries); err != nil {
		return err
	}

	payload := region[:payloadSize]
	received := region[payloadSize]
	pkt.Payload = payload
	pkt.Checksum = received

	computed := xorChecksum(payload, seed)
	if computed != received {
		return newProtocolError(ErrProtocolBadChecksum, pkt, nil)
	}
	return nil
}

// decodeV2 reads the V2_HEADER and V2_BODY states. chainSeed lets a V1
// tunnel hand in the (unused, for V2 purposes) chained XOR seed position --
// in practice the V2 CRC always starts fresh at 0, since the tunneling V1
// wrapper's checksum is not part of the V2 integrity check.
func (d *decoder) decodeV2(pkt *Packet, chainSeed byte) error {
	var hdr [5]byte // flag, cmdLO, cmdHI, sizeLO, sizeHI
	if _, err := d.transport.ReadExact(hdr[:], d.retries); err != nil {
		return err
	}
	pkt.Version = V2
	pkt.Flag = hdr[0]
	pkt.Command = binary.LittleEndian.Uint16(hdr[1:3])
	payloadSize := int(binary.LittleEndian.Uint16(hdr[3:5]))
	seed := crc8DVBS2(hdr[:], chainSeed)

	if payloadSize > len(d.buf)-1 {
		return newError(ErrResource, nil)
	}
	region := d.buf[:payloadSize+1]
	if _, err := d.transport.ReadExact(region, d.retries); err != nil {
		return err
	}

	payload := region[:payloadSize]
	received := region[payloadSize]
	pkt.Payload = payload
	pkt.Checksum = received

	computed := crc8DVBS2(payload, seed)
	if computed != received {
		return newProtocolError(ErrProtocolBadChecksum, pkt, nil)
	}
	return nil
}
