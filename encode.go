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

const jumboThreshold = 254

/*
encodeV1 builds a V1 request frame for cmd/payload and returns it ready to
hand to a Transport's Write. Payloads longer than 254 bytes use the JUMBO
escape: the size byte becomes 255 and the true 16-bit length follows the
command byte, little-endian. The checksum is an XOR over every byte emitted
after the 3-byte preamble, excluding the checksum itself.

This package never emits V2-in-V1 encapsulation on the outgoing side; the
decoder accepts it on receive since some responders tunnel V2 inside V1.
*/
func encodeV1(cmd byte, payload []byte) []byte {
	jumbo := len(payload) > jumboThreshold
	sizeByte := byte(len(payload))
	if jumbo {
		sizeByte = 255
	}

	frame := make([]byte, 0, 6+len(payload))
	frame = append(frame, '$', 'M', '<', sizeByte, cmd)

	var lenBytes [2]byte
	if jumbo {
		binary.LittleEndian.PutUint16(lenBytes[:], uint16(len(payload)))
		frame = append(frame, lenBytes[0], lenBytes[1])
	}
	frame = append(frame, payload...)

	chk := xorChecksum(frame[3:], 0)
	frame = append(frame, chk)
	return frame
}

/*
encodeV2 builds a V2 request frame for flag/cmd/payload. The checksum is a
CRC8/DVB-S2 (polynomial 0xD5) over the 5 header fields after the 3-byte
preamble, chained across the payload.
*/
func encodeV2(flag byte, cmd uint16, payload []byte) []byte {
	frame := make([]byte, 0, 9+len(payload))
	frame = append(frame, '$', 'X', '<', flag)

	var cmdBytes, lenBytes [2]byte
	binary.LittleEndian.PutUint16(cmdBytes[:], cmd)
	binary.LittleEndian.PutUint16(lenBytes[:], uint16(len(payload)))
	frame = append(frame, cmdBytes[0], cmdBytes[1], lenBytes[0], lenBytes[1])
	frame = append(frame, payload...)

	chk := crc8DVBS2(frame[3:], 0)
	frame = append(frame, chk)
	return frame
}
