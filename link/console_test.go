// Copyright 2024 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package link

import "testing"

func TestConsoleIdleNoBytesQueued(t *testing.T) {
	sck := NewMemoryLine()
	sin := NewMemoryLine()
	sout := NewMemoryLine()
	c := NewConsole(sck, sin, sout)

	for i := 0; i < 32; i++ {
		recv, ok, err := c.Tick()
		if err != nil {
			t.Fatalf("tick %d: Tick() error = %v", i, err)
		}
		if ok {
			t.Fatalf("tick %d: Tick() produced byte 0x%02x with nothing queued", i, recv)
		}
		if i%16 == 15 {
			if c.bitIndex != 0 || c.phase != phaseDrive {
				t.Fatalf("tick %d: state = (bitIndex=%d, phase=%v), want initial state", i, c.bitIndex, c.phase)
			}
		}
	}
	if lvl, _ := sout.Read(); lvl != Low {
		t.Fatalf("SOUT = %v after idle ticks, want Low", lvl)
	}
}

func TestConsolePeripheralLoopback(t *testing.T) {
	sck := NewMemoryLine()
	toConsole := NewMemoryLine() // peripheral's SIN, console's SIN source
	toPeripheral := NewMemoryLine() // console's SOUT, peripheral's SOUT source

	console := NewConsole(sck, toConsole, toPeripheral)
	peripheral := NewPeripheral(sck, toConsole, toPeripheral)

	console.Send(0xA5)

	var consoleRecv []byte
	var peripheralRecv []byte
	for i := 0; i < 256; i++ {
		recv, ok, err := console.Tick()
		if err != nil {
			t.Fatalf("tick %d: console.Tick() error = %v", i, err)
		}
		if ok {
			consoleRecv = append(consoleRecv, recv)
		}
		recv, ok, err = peripheral.Recv()
		if err != nil {
			t.Fatalf("tick %d: peripheral.Recv() error = %v", i, err)
		}
		if ok {
			peripheralRecv = append(peripheralRecv, recv)
		}
	}

	if len(peripheralRecv) != 1 || peripheralRecv[0] != 0xA5 {
		t.Fatalf("peripheralRecv = %v, want [0xA5]", peripheralRecv)
	}
	if len(consoleRecv) != 1 || consoleRecv[0] != 0x00 {
		t.Fatalf("consoleRecv = %v, want [0x00]", consoleRecv)
	}
}
