// Copyright 2024 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package link

import (
	"context"
	"testing"
	"time"
)

func TestMemoryLineLoopback(t *testing.T) {
	l := NewMemoryLine()
	if lvl, err := l.Read(); err != nil || lvl != Low {
		t.Fatalf("Read() = (%v, %v), want (Low, nil)", lvl, err)
	}
	if err := l.Write(High); err != nil {
		t.Fatalf("Write() = %v, want nil", err)
	}
	if lvl, _ := l.Read(); lvl != High {
		t.Fatalf("Read() after Write(High) = %v, want High", lvl)
	}
}

func TestMemoryEdgeSourceFIFO(t *testing.T) {
	s := NewMemoryEdgeSource()
	s.Push(RisingEdge)
	s.Push(FallingEdge)

	ctx := context.Background()
	e, ok, err := s.Wait(ctx)
	if err != nil || !ok || e != RisingEdge {
		t.Fatalf("Wait() = (%v, %v, %v), want (RisingEdge, true, nil)", e, ok, err)
	}
	e, ok, err = s.Wait(ctx)
	if err != nil || !ok || e != FallingEdge {
		t.Fatalf("Wait() = (%v, %v, %v), want (FallingEdge, true, nil)", e, ok, err)
	}
}

func TestMemoryEdgeSourceClose(t *testing.T) {
	s := NewMemoryEdgeSource()
	s.Close()
	e, ok, err := s.Wait(context.Background())
	if err != nil || ok || e != NoEdge {
		t.Fatalf("Wait() after Close() = (%v, %v, %v), want (NoEdge, false, nil)", e, ok, err)
	}
}

func TestMemoryEdgeSourceContextCancel(t *testing.T) {
	s := NewMemoryEdgeSource()
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	e, ok, err := s.Wait(ctx)
	if err != nil || !ok || e != NoEdge {
		t.Fatalf("Wait() on cancelled ctx = (%v, %v, %v), want (NoEdge, true, nil)", e, ok, err)
	}
}
