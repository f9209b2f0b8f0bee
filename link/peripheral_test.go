// Copyright 2024 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package link

import "testing"

func TestPeripheralRecvEightBits(t *testing.T) {
	sck := NewMemoryLine()
	sin := NewMemoryLine()
	sout := NewMemoryLine()
	p := NewPeripheral(sck, sin, sout)

	const want = 0xC3 // 1100 0011
	var got byte
	var done bool
	for i := 7; i >= 0; i-- {
		bit := (want >> uint(i)) & 1

		sck.Write(High)
		if _, ok, err := p.Recv(); err != nil || ok {
			t.Fatalf("bit %d: Recv() on SCK high = (ok=%v, err=%v), want (false, nil)", i, ok, err)
		}

		if bit == 1 {
			sout.Write(High)
		} else {
			sout.Write(Low)
		}
		sck.Write(Low)
		recv, ok, err := p.Recv()
		if err != nil {
			t.Fatalf("bit %d: Recv() on SCK low error = %v", i, err)
		}
		if i == 0 {
			got, done = recv, ok
		} else if ok {
			t.Fatalf("bit %d: Recv() produced a byte before 8 bits were shifted in", i)
		}
	}

	if !done || got != want {
		t.Fatalf("Recv() = (0x%02x, %v), want (0x%02x, true)", got, done, want)
	}
}

func TestPeripheralReset(t *testing.T) {
	sck := NewMemoryLine()
	sin := NewMemoryLine()
	sout := NewMemoryLine()
	p := NewPeripheral(sck, sin, sout)

	p.Reply(0x42)
	sout.Write(High)
	sck.Write(Low)
	if _, _, err := p.Recv(); err != nil {
		t.Fatalf("Recv() error = %v", err)
	}
	if p.bitIndex == 0 {
		t.Fatal("expected bitIndex to have advanced before Reset")
	}

	p.Reset()
	if p.bitIndex != 0 || p.shiftIn != 0 || p.shiftOut != 0 || p.Pending() != 0 {
		t.Fatalf("state after Reset() = (bitIndex=%d, shiftIn=%d, shiftOut=%d, pending=%d), want all zero", p.bitIndex, p.shiftIn, p.shiftOut, p.Pending())
	}
}
