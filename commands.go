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
	"fmt"
	"sort"

	"github.com/olekukonko/tablewriter"
)

// CommandKind distinguishes a query (empty request payload, data-bearing
// response) from a command that carries a payload to the responder.
type CommandKind int

const (
	// KindGet marks a query command: the request payload is always empty.
	KindGet CommandKind = iota
	// KindSet marks a command that carries a payload to the responder.
	KindSet
)

func (k CommandKind) String() string {
	if k == KindSet {
		return "set"
	}
	return "get"
}

// CommandInfo names a well-known MSP command code. It is a lookup
// convenience -- this package does not consult it to parse or validate
// wire traffic.
type CommandInfo struct {
	Code        uint16
	Name        string
	Kind        CommandKind
	Description string
}

// Commands is a registry of CommandInfo keyed by code.
type Commands map[uint16]CommandInfo

// String renders the registry as a table, sorted by code, the same way the
// teacher's Commands.String() renders its regex-based command set.
func (c Commands) String() string {
	codes := make([]int, 0, len(c))
	for code := range c {
		codes = append(codes, int(code))
	}
	sort.Ints(codes)

	buf := bytes.NewBufferString("")
	tw := tablewriter.NewWriter(buf)
	tw.SetAutoWrapText(false)
	tw.SetHeader([]string{"Code", "Name", "Kind", "Description"})

	for _, code := range codes {
		cmd := c[uint16(code)]
		tw.Append([]string{
			fmt.Sprintf("%d", cmd.Code),
			cmd.Name,
			cmd.Kind.String(),
			cmd.Description,
		})
	}
	tw.Render()
	return buf.String()
}

// Lookup returns the CommandInfo for code, if known.
func (c Commands) Lookup(code uint16) (CommandInfo, bool) {
	info, ok := c[code]
	return info, ok
}

// WellKnownCommands is the subset of the Multiwii/Betaflight MSP command
// set this package ships names for. It is intentionally small: enough to
// make cmd/mspcli's output legible, not an exhaustive protocol dictionary.
var WellKnownCommands = Commands{
	100: {Code: 100, Name: "MSP_IDENT", Kind: KindGet, Description: "Deprecated: multitype, version, capability flags"},
	101: {Code: 101, Name: "MSP_STATUS", Kind: KindGet, Description: "Cycle time, sensor mask, flight modes, profile"},
	102: {Code: 102, Name: "MSP_RAW_IMU", Kind: KindGet, Description: "Raw accelerometer, gyro, magnetometer readings"},
	103: {Code: 103, Name: "MSP_SERVO", Kind: KindGet, Description: "Servo output positions"},
	104: {Code: 104, Name: "MSP_MOTOR", Kind: KindGet, Description: "Motor output values"},
	105: {Code: 105, Name: "MSP_RC", Kind: KindGet, Description: "RC channel values"},
	106: {Code: 106, Name: "MSP_RAW_GPS", Kind: KindGet, Description: "Fix, satellite count, lat/lon, altitude, speed"},
	108: {Code: 108, Name: "MSP_ATTITUDE", Kind: KindGet, Description: "Roll, pitch, yaw"},
	109: {Code: 109, Name: "MSP_ALTITUDE", Kind: KindGet, Description: "Estimated altitude and vario"},
	110: {Code: 110, Name: "MSP_ANALOG", Kind: KindGet, Description: "Battery voltage, current, RSSI"},
	111: {Code: 111, Name: "MSP_RC_TUNING", Kind: KindGet, Description: "RC rate and expo tuning"},
	112: {Code: 112, Name: "MSP_PID", Kind: KindGet, Description: "PID gains per axis"},
	117: {Code: 117, Name: "MSP_BOXNAMES", Kind: KindGet, Description: "Names of configured flight-mode boxes"},
	118: {Code: 118, Name: "MSP_PIDNAMES", Kind: KindGet, Description: "Names of configured PID controllers"},
	121: {Code: 121, Name: "MSP_BOXIDS", Kind: KindGet, Description: "Permanent IDs of configured flight-mode boxes"},
	200: {Code: 200, Name: "MSP_SET_RAW_RC", Kind: KindSet, Description: "Override RC channel values"},
	201: {Code: 201, Name: "MSP_SET_RAW_GPS", Kind: KindSet, Description: "Inject simulated GPS fix"},
	202: {Code: 202, Name: "MSP_SET_PID", Kind: KindSet, Description: "Write PID gains per axis"},
	210: {Code: 210, Name: "MSP_SET_HEAD", Kind: KindSet, Description: "Set magnetic heading hold target"},
	212: {Code: 212, Name: "MSP_SET_MOTOR", Kind: KindSet, Description: "Override motor output values"},
	250: {Code: 250, Name: "MSP_EEPROM_WRITE", Kind: KindSet, Description: "Persist current settings to EEPROM"},
	0x1003: {Code: 0x1003, Name: "MSP2_SENSOR_CONFIG", Kind: KindGet, Description: "V2: configured sensor hardware"},
	0x3001: {Code: 0x3001, Name: "MSP2_INAV_STATUS", Kind: KindGet, Description: "V2: INAV extended status"},
}
