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

// crc8DVBS2Table is the 256-entry lookup table for CRC8 with the DVB-S2
// polynomial (0xD5), precomputed once at init time rather than per call.
var crc8DVBS2Table = buildCRC8DVBS2Table()

const crc8DVBS2Poly = 0xD5

func buildCRC8DVBS2Table() [256]byte {
	var table [256]byte
	for i := 0; i < 256; i++ {
		crc := byte(i)
		for bit := 0; bit < 8; bit++ {
			if crc&0x80 != 0 {
				crc = (crc << 1) ^ crc8DVBS2Poly
			} else {
				crc <<= 1
			}
		}
		table[i] = crc
	}
	return table
}

/*
xorChecksum folds data onto seed via XOR. seed permits chaining across
discontiguous regions (header vs payload) -- call it once with seed 0 for the
header bytes, then again passing the returned value as the seed for the
payload. Stateless, reentrant, never allocates.
*/
func xorChecksum(data []byte, seed byte) byte {
	c := seed
	for _, b := range data {
		c ^= b
	}
	return c
}

/*
crc8DVBS2 is a table-driven CRC8 using the DVB-S2 polynomial (0xD5). seed
permits chaining across header and payload regions the same way xorChecksum
does. Stateless, reentrant, never allocates.
*/
func crc8DVBS2(data []byte, seed byte) byte {
	c := seed
	for _, b := range data {
		c = crc8DVBS2Table[c^b]
	}
	return c
}
