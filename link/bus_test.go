// Copyright 2024 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package link

import (
	"context"
	"errors"
	"testing"
	"time"

	"periph.io/x/conn/v3/gpio"
)

// fakeGroup is a fake EdgeWaiter standing in for a gpioioctl.LineSet: each
// WaitForEdge call pops one queued event, or returns a timeout error once
// the queue is drained.
type fakeGroup struct {
	events []fakeEdgeEvent
}

type fakeEdgeEvent struct {
	number int
	edge   gpio.Edge
}

func (g *fakeGroup) WaitForEdge(time.Duration) (int, gpio.Edge, error) {
	if len(g.events) == 0 {
		return 0, gpio.NoEdge, errors.New("i/o timeout")
	}
	e := g.events[0]
	g.events = g.events[1:]
	return e.number, e.edge, nil
}

func TestGroupEdgeSourceFiltersByLineNumber(t *testing.T) {
	group := &fakeGroup{events: []fakeEdgeEvent{
		{number: 1, edge: gpio.RisingEdge},  // another line's number, not SCK's: must be ignored
		{number: 0, edge: gpio.FallingEdge}, // SCK's line number
		{number: 0, edge: gpio.RisingEdge},
	}}
	s := NewGroupEdgeSource(group, 0)
	defer s.Close()

	ctx := context.Background()
	e, ok, err := s.Wait(ctx)
	if err != nil || !ok {
		t.Fatalf("Wait() = (%v, %v, %v), want (FallingEdge, true, nil)", e, ok, err)
	}
	if e != FallingEdge {
		t.Fatalf("Wait() edge = %v, want FallingEdge", e)
	}

	e, ok, err = s.Wait(ctx)
	if err != nil || !ok {
		t.Fatalf("Wait() = (%v, %v, %v), want (RisingEdge, true, nil)", e, ok, err)
	}
	if e != RisingEdge {
		t.Fatalf("Wait() edge = %v, want RisingEdge", e)
	}
}

func TestGroupEdgeSourceCloseUnblocksWait(t *testing.T) {
	s := NewGroupEdgeSource(&fakeGroup{}, 0)

	done := make(chan struct{})
	go func() {
		_, ok, _ := s.Wait(context.Background())
		if ok {
			t.Error("Wait() ok = true after Close(), want false")
		}
		close(done)
	}()

	s.Close()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Wait() did not unblock after Close()")
	}
}

func TestGroupEdgeSourceContextCancel(t *testing.T) {
	s := NewGroupEdgeSource(&fakeGroup{}, 0)
	defer s.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	e, ok, err := s.Wait(ctx)
	if err != nil || !ok || e != NoEdge {
		t.Fatalf("Wait() = (%v, %v, %v), want (NoEdge, true, nil)", e, ok, err)
	}
}
