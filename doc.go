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
Package msp implements the host (initiator) side of the Multi-Wii Serial
Protocol (MSP), a request/response wire protocol spoken over an asynchronous
serial line to small embedded responders -- typically flight controllers.
This package issues command requests to a single responder and surfaces
parsed response packets to its caller. It is a client only: it never acts as
a responder.

# Purpose

Have you ever wanted to poke a flight controller over a serial link and get
back a parsed, checksum-verified packet without hand rolling V1/V2 framing
every time? If so, this package is for you. It owns one open serial device,
speaks the MSP wire format in both of its flavors (V1, including the JUMBO
length escape, and V2, including V2 packets tunneled inside a V1 frame), and
gives back a Packet your code can read without caring which version of the
wire format produced it.

# Interfaces

This package centers on two things: a Device, which is the open handle to a
single serial responder, and a Packet, which is what a successful request
produces. A Device is opened with Open, which configures the line (115200
8N1, non-canonical, VMIN=0/VTIME=1) and marks itself open; from there, Get
and Set issue requests and optionally wait for a response. Close releases
the underlying OS handle.

Unlike a generic byte-stream wrapper, a Device does not expose raw Read/Write
to callers -- every request goes through Get or Set so that the receive
buffer is always flushed first and the response, if any, is always fully
parsed before control returns.

# Concurrency

A Device may be called from multiple goroutines. A per-device mutex
serializes the entire public surface -- at most one of Open/Close/Get/Set
executes at a time on a given device, and a second caller blocks until the
first completes. Call ordering among blocked callers is not guaranteed.
This is intentional: the wire is a single shared resource with no
multiplexing, and interleaving frames would corrupt parsing. There is no
timeout at the Device level beyond the cumulative per-byte read retries
configured on Open; callers wanting a hard upper bound should keep the
WithReadRetries count small.

# Error Handling

Every error returned by this package's public operations is an *Error,
which carries an ErrorCode identifying the failure category (argument,
OS/transport, protocol/no-response, protocol/bad-checksum, protocol/NACK,
resource, internal). IsCommError reports whether the category is one of
the three "soft" protocol failures suitable for a retry-and-count loop;
everything else should be treated as fatal for the current operation. No
error is retried above the transport layer -- a protocol failure aborts
the current transaction and it is up to the caller to retry the whole
request.
*/
package msp
