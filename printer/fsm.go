// Copyright 2024 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package printer

// State is one step of the packet-framing state machine.
type State int

const (
	WaitMagic0 State = iota
	WaitMagic1
	WaitCmd
	WaitCompression
	WaitLenLow
	WaitLenHigh
	ReceivingData
	WaitChecksumLow
	WaitChecksumHigh
	WaitKeepalive
	WaitStatus
	Done
)

func (s State) String() string {
	switch s {
	case WaitMagic0:
		return "WaitMagic0"
	case WaitMagic1:
		return "WaitMagic1"
	case WaitCmd:
		return "WaitCmd"
	case WaitCompression:
		return "WaitCompression"
	case WaitLenLow:
		return "WaitLenLow"
	case WaitLenHigh:
		return "WaitLenHigh"
	case ReceivingData:
		return "ReceivingData"
	case WaitChecksumLow:
		return "WaitChecksumLow"
	case WaitChecksumHigh:
		return "WaitChecksumHigh"
	case WaitKeepalive:
		return "WaitKeepalive"
	case WaitStatus:
		return "WaitStatus"
	case Done:
		return "Done"
	default:
		return "unknown"
	}
}

// Command is a printer command byte.
type Command byte

const (
	CmdInit   Command = 0x01
	CmdPrint  Command = 0x02
	CmdData   Command = 0x04
	CmdStatus Command = 0x0F
)

// Compression is the packet's declared compression mode.
type Compression byte

const (
	Uncompressed Compression = 0x00
	Compressed   Compression = 0x01
)

// Status bits for the reply status byte.
const (
	StatusChecksumError   byte = 0x01
	StatusBusy            byte = 0x02
	StatusImageDataFull   byte = 0x04
	StatusUnprocessedData byte = 0x08
	StatusPacketError     byte = 0x10
	StatusPaperJam        byte = 0x20
	StatusOtherError      byte = 0x40
	StatusBatteryLow      byte = 0x80
)

const magic0, magic1 = 0x88, 0x33

// FSM is the packet-framing state machine described by the wire protocol.
// It is a pure value: Transition only ever inspects and mutates its own
// fields, never touches a line or a clock.
type FSM struct {
	State       State
	Cmd         Command
	Compression Compression

	lenLo   byte
	length  int
	payload []byte
	remain  int

	csumLo           byte
	ChecksumExpected uint16
	ChecksumActual   uint16
}

// New returns an FSM ready to parse the start of a new packet.
func New() *FSM {
	return &FSM{State: WaitMagic0}
}

// Payload returns the bytes accumulated for the current (or most recently
// completed) packet.
func (f *FSM) Payload() []byte {
	return f.payload
}

// Transition feeds one byte to the state machine. On error the FSM's state
// is left as it was before the byte arrived.
func (f *FSM) Transition(b byte) error {
	switch f.State {
	case WaitMagic0:
		if b == magic0 {
			f.State = WaitMagic1
		}
		// Anything else resynchronizes silently: stay in WaitMagic0.

	case WaitMagic1:
		if b == magic1 {
			f.State = WaitCmd
		} else {
			f.State = WaitMagic0
		}

	case WaitCmd:
		switch Command(b) {
		case CmdInit, CmdPrint, CmdData, CmdStatus:
			f.Cmd = Command(b)
			f.State = WaitCompression
		default:
			return newError(KindProtocol, "unknown command 0x%02x", b)
		}

	case WaitCompression:
		switch Compression(b) {
		case Uncompressed, Compressed:
			f.Compression = Compression(b)
			f.State = WaitLenLow
		default:
			return newError(KindProtocol, "unknown compression 0x%02x", b)
		}

	case WaitLenLow:
		f.lenLo = b
		f.State = WaitLenHigh

	case WaitLenHigh:
		f.length = int(b)<<8 | int(f.lenLo)
		f.remain = f.length
		f.payload = make([]byte, f.length)
		if f.length == 0 {
			f.State = WaitChecksumLow
		} else {
			f.State = ReceivingData
		}

	case ReceivingData:
		f.payload[f.length-f.remain] = b
		f.remain--
		if f.remain == 0 {
			f.State = WaitChecksumLow
		}

	case WaitChecksumLow:
		f.csumLo = b
		f.State = WaitChecksumHigh

	case WaitChecksumHigh:
		f.ChecksumExpected = uint16(b)<<8 | uint16(f.csumLo)
		var sum uint16
		for _, pb := range f.payload {
			sum += uint16(pb)
		}
		f.ChecksumActual = sum
		f.State = WaitKeepalive

	case WaitKeepalive:
		if b != 0x00 {
			return newError(KindProtocol, "non-zero keepalive byte 0x%02x", b)
		}
		f.State = WaitStatus

	case WaitStatus:
		if b != 0x00 {
			return newError(KindProtocol, "non-zero status byte 0x%02x", b)
		}
		f.State = Done

	case Done:
		return newError(KindStateMisuse, "byte 0x%02x received after Done", b)
	}
	return nil
}
