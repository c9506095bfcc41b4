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

// mspcli is a small command-line front end for issuing ad hoc get/set
// requests against an MSP responder -- a crappy netcat with fewer options,
// but for MSP instead of raw bytes.
package main

import (
	"encoding/hex"
	"fmt"
	"os"

	"github.com/alecthomas/kingpin"

	"github.com/multiwii/go-msp"
)

var (
	app  = kingpin.New("mspcli", "A small command-line client for the Multi-Wii Serial Protocol")
	port = app.Flag("port", "Serial device path").Short('p').String()
	ver  = app.Flag("version", "MSP version to speak (1 or 2)").Short('v').Default("1").Int()

	listCmd = app.Command("list", "List serial ports visible to the OS")

	getCmd     = app.Command("get", "Issue a query command and print the response")
	getCommand = getCmd.Arg("command", "MSP command code").Required().Uint16()
	getFlag    = getCmd.Flag("flag", "V2 flag byte").Default("0").Uint8()

	setCmd        = app.Command("set", "Issue a command carrying a payload")
	setCommand    = setCmd.Arg("command", "MSP command code").Required().Uint16()
	setPayloadHex = setCmd.Arg("payload", "Payload bytes, hex-encoded").Default("").String()
	setFlag       = setCmd.Flag("flag", "V2 flag byte").Default("0").Uint8()
	setNoAck      = setCmd.Flag("no-ack", "Don't wait for a response").Bool()
)

func main() {
	switch kingpin.MustParse(app.Parse(os.Args[1:])) {
	case listCmd.FullCommand():
		runList()
	case getCmd.FullCommand():
		runGet()
	case setCmd.FullCommand():
		runSet()
	}
}

func runList() {
	ports, err := msp.ListPorts()
	if err != nil {
		fmt.Fprintln(os.Stderr, "mspcli: list:", err)
		os.Exit(1)
	}
	for _, p := range ports {
		fmt.Println(p)
	}
}

func openDevice() *msp.Device {
	if *port == "" {
		fmt.Fprintln(os.Stderr, "mspcli: --port is required")
		os.Exit(1)
	}
	version := msp.V1
	if *ver == 2 {
		version = msp.V2
	}
	dev, err := msp.Open(*port, msp.WithVersion(version))
	if err != nil {
		fmt.Fprintln(os.Stderr, "mspcli: open:", err)
		os.Exit(1)
	}
	return dev
}

func runGet() {
	dev := openDevice()
	defer dev.Close()

	pkt, err := dev.Get(*getCommand, *getFlag)
	if err != nil {
		reportDiscarded(err)
		fmt.Fprintln(os.Stderr, "mspcli: get:", err)
		os.Exit(1)
	}
	fmt.Println(pkt)
	fmt.Println(hex.EncodeToString(pkt.Payload))
	fmt.Printf("line noise bytes discarded: %d\n", pkt.Discarded)
}

// reportDiscarded prints the line-noise counter carried on a NACK or
// bad-checksum failure's attached packet, if any.
func reportDiscarded(err error) {
	me, ok := err.(*msp.Error)
	if !ok || me.Packet == nil {
		return
	}
	fmt.Fprintf(os.Stderr, "line noise bytes discarded: %d\n", me.Packet.Discarded)
}

func runSet() {
	dev := openDevice()
	defer dev.Close()

	payload, err := hex.DecodeString(*setPayloadHex)
	if err != nil {
		fmt.Fprintln(os.Stderr, "mspcli: set: invalid hex payload:", err)
		os.Exit(1)
	}

	pkt, err := dev.Set(*setCommand, payload, *setFlag, !*setNoAck)
	if err != nil {
		reportDiscarded(err)
		fmt.Fprintln(os.Stderr, "mspcli: set:", err)
		os.Exit(1)
	}
	if pkt != nil {
		fmt.Println(pkt)
		fmt.Printf("line noise bytes discarded: %d\n", pkt.Discarded)
	}
}
