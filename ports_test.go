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
	"flag"
	"testing"
)

var loopbackPort = flag.String("port", "", "Serial port to use for hardware-backed tests")

// TestListPorts_IncludesAttachedHardware only runs against a real serial
// device, flag-gated on -port: no -port means no hardware is attached, so it
// skips rather than failing.
func TestListPorts_IncludesAttachedHardware(t *testing.T) {
	if *loopbackPort == "" {
		t.Skip("no serial port defined for hardware-backed tests - skipping")
	}

	ports, err := ListPorts()
	if err != nil {
		t.Fatalf("ListPorts: %v", err)
	}
	found := false
	for _, p := range ports {
		if p == *loopbackPort {
			found = true
			break
		}
	}
	if !found {
		t.Errorf("expected %q among %v", *loopbackPort, ports)
	}
}

// TestListPorts_DoesNotError exercises the OS-discovery path without
// requiring any hardware to be attached; an empty result is valid.
func TestListPorts_DoesNotError(t *testing.T) {
	if _, err := ListPorts(); err != nil {
		t.Fatalf("ListPorts: %v", err)
	}
}
