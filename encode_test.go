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
	"bytes"
	"testing"
)

func TestEncodeV1_Empty(t *testing.T) {
	got := encodeV1(108, nil)
	want := []byte{0x24, 0x4D, 0x3C, 0x00, 0x6C, 0x6C}
	if !bytes.Equal(got, want) {
		t.Errorf("got % x, want % x", got, want)
	}
}

func TestEncodeV1_ShortPayload(t *testing.T) {
	payload := []byte{0xDC, 0x05, 0xDC, 0x05, 0xDC, 0x05, 0xDC, 0x05}
	got := encodeV1(200, payload)

	chk := byte(0x08) ^ byte(0xC8)
	for _, b := range payload {
		chk ^= b
	}
	want := append([]byte{0x24, 0x4D, 0x3C, 0x08, 0xC8}, payload...)
	want = append(want, chk)

	if !bytes.Equal(got, want) {
		t.Errorf("got % x, want % x", got, want)
	}
}

func TestEncodeV1_Jumbo(t *testing.T) {
	payload := make([]byte, 300)
	got := encodeV1(1, payload)

	if got[3] != 255 {
		t.Fatalf("size byte should be 255 (JUMBO), got %#02x", got[3])
	}
	if got[4] != 1 {
		t.Fatalf("command byte should be 1, got %#02x", got[4])
	}
	if got[5] != 0x2C || got[6] != 0x01 {
		t.Fatalf("jumbo length bytes should be 2C 01, got %#02x %#02x", got[5], got[6])
	}
	if len(got) != 3+1+1+2+300+1 {
		t.Fatalf("unexpected frame length %d", len(got))
	}

	chkInput := append([]byte{0xFF, 0x01, 0x2C, 0x01}, payload...)
	want := xorChecksum(chkInput, 0)
	if got[len(got)-1] != want {
		t.Errorf("checksum got %#02x want %#02x", got[len(got)-1], want)
	}
}

func TestEncodeV1_JumboBoundary(t *testing.T) {
	if got := encodeV1(1, make([]byte, 254)); got[3] == 255 {
		t.Error("254-byte payload should not be JUMBO")
	}
	if got := encodeV1(1, make([]byte, 255)); got[3] != 255 {
		t.Error("255-byte payload should be the smallest JUMBO")
	}
}

func TestEncodeV2_Empty(t *testing.T) {
	got := encodeV2(0, 0x1F40, nil)
	header := []byte{0x24, 0x58, 0x3C, 0x00, 0x40, 0x1F, 0x00, 0x00}
	if !bytes.Equal(got[:len(header)], header) {
		t.Errorf("header: got % x, want % x", got[:len(header)], header)
	}
	crc := crc8DVBS2(header[3:], 0)
	if got[len(got)-1] != crc {
		t.Errorf("checksum got %#02x want %#02x", got[len(got)-1], crc)
	}
	if len(got) != len(header)+1 {
		t.Fatalf("unexpected frame length %d", len(got))
	}
}

func TestEncodeV2_WithPayload(t *testing.T) {
	payload := []byte{0x01, 0x02, 0x03}
	got := encodeV2(0x80, 0x2000, payload)

	if len(got) != 3+1+2+2+len(payload)+1 {
		t.Fatalf("unexpected frame length %d", len(got))
	}
	crc := crc8DVBS2(got[3:len(got)-1], 0)
	if got[len(got)-1] != crc {
		t.Errorf("checksum got %#02x want %#02x", got[len(got)-1], crc)
	}
}
