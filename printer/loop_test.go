// Copyright 2024 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package printer

import (
	"testing"
	"time"

	"github.com/retrobus/gblink/link"
)

type fakeSink struct {
	calls   int
	lastCmd Command
	payload []byte
}

func (f *fakeSink) Deliver(cmd Command, payload []byte) error {
	f.calls++
	f.lastCmd = cmd
	f.payload = append([]byte(nil), payload...)
	return nil
}

func TestLoopInitPacketResponseInjectionAndDelivery(t *testing.T) {
	sin := link.NewMemoryLine()
	sout := link.NewMemoryLine()
	edges := link.NewMemoryEdgeSource()
	sink := &fakeSink{}
	l := NewLoop(edges, sin, sout, sink, 0)

	packet := []byte{0x88, 0x33, 0x01, 0x00, 0x00, 0x00, 0x01, 0x00, 0x00, 0x00}
	for i, b := range packet {
		if err := l.handleByte(b); err != nil {
			t.Fatalf("byte %d (0x%02x): handleByte() error = %v", i, b, err)
		}
	}

	if got := l.Peripheral().Pending(); got != 2 {
		t.Fatalf("Peripheral().Pending() = %d, want 2 (alive + status)", got)
	}
	if sink.calls != 1 {
		t.Fatalf("sink delivered %d times, want 1", sink.calls)
	}
	if sink.lastCmd != CmdInit {
		t.Fatalf("sink delivered cmd = %v, want CmdInit", sink.lastCmd)
	}
	if len(sink.payload) != 0 {
		t.Fatalf("sink delivered payload = %v, want empty", sink.payload)
	}
}

func TestLoopUnknownCommandSurfaces(t *testing.T) {
	sin := link.NewMemoryLine()
	sout := link.NewMemoryLine()
	edges := link.NewMemoryEdgeSource()
	l := NewLoop(edges, sin, sout, nil, 0)

	for _, b := range []byte{0x88, 0x33} {
		if err := l.handleByte(b); err != nil {
			t.Fatalf("handleByte(0x%02x) error = %v, want nil", b, err)
		}
	}
	if err := l.handleByte(0x07); err == nil {
		t.Fatal("handleByte(0x07) error = nil, want a Protocol error")
	}
}

func TestLoopIdleResetsEngineAndFSM(t *testing.T) {
	sin := link.NewMemoryLine()
	sout := link.NewMemoryLine()
	edges := link.NewMemoryEdgeSource()
	l := NewLoop(edges, sin, sout, nil, 0)

	if err := l.handleByte(0x88); err != nil {
		t.Fatalf("handleByte() error = %v", err)
	}
	l.peripheral.Reply(0x42)
	base := time.Unix(1000, 0)
	l.lastEdge = base

	if err := l.step(link.RisingEdge, base.Add(2*time.Second)); err != nil {
		t.Fatalf("step() error = %v", err)
	}

	if got := l.peripheral.Pending(); got != 0 {
		t.Fatalf("Pending() after idle reset = %d, want 0", got)
	}
	if l.fsm.State != WaitMagic0 {
		t.Fatalf("fsm.State after idle reset = %v, want WaitMagic0", l.fsm.State)
	}
}
