// Copyright 2024 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package link

import (
	"context"
	"sync"
	"sync/atomic"

	"periph.io/x/conn/v3/gpio"
)

// Level is the binary level of a digital line. It reuses periph.io/x/conn's
// gpio.Level so real hardware pins (gpio.PinIO) satisfy ReadableLine and
// WritableLine directly.
type Level = gpio.Level

const (
	High Level = gpio.High
	Low  Level = gpio.Low
)

// ReadableLine is a digital input line.
type ReadableLine interface {
	Read() (Level, error)
}

// WritableLine is a digital output line.
type WritableLine interface {
	Write(Level) error
}

// Edge is a level transition observed on an input line.
type Edge int

const (
	// NoEdge is returned by an EdgeSource that timed out or was halted
	// without observing a transition.
	NoEdge Edge = iota
	RisingEdge
	FallingEdge
)

// EdgeSource is an asynchronous source of edge events on one input line.
// Wait blocks until the next edge or until ctx is done. ok is false only
// when the source is permanently exhausted (the underlying line was
// closed); a cancelled ctx returns a nil error with ok true and
// edge == NoEdge so callers can distinguish "nothing happened yet" from
// "this line will never produce another edge."
type EdgeSource interface {
	Wait(ctx context.Context) (edge Edge, ok bool, err error)
}

// MemoryLine is a memory-backed digital line: both ReadableLine and
// WritableLine over the same shared level, so two engines wired to the
// same MemoryLine observe each other's writes immediately. It is the
// loopback substitute for a real GPIO pin in tests, grounded on the
// dummy-chip pattern gpioioctl uses to keep itself testable off Linux.
type MemoryLine struct {
	level atomic.Bool
}

// NewMemoryLine returns a MemoryLine initialized Low.
func NewMemoryLine() *MemoryLine {
	return &MemoryLine{}
}

// Read implements ReadableLine. It never fails.
func (m *MemoryLine) Read() (Level, error) {
	return Level(m.level.Load()), nil
}

// Write implements WritableLine. It never fails.
func (m *MemoryLine) Write(l Level) error {
	m.level.Store(bool(l))
	return nil
}

// MemoryEdgeSource is a test double for EdgeSource: Push enqueues an edge
// as if it had just been observed on the line, and Wait drains the queue in
// FIFO order. After Close, Wait still returns the edges already queued and
// then returns ok == false.
type MemoryEdgeSource struct {
	mu     sync.Mutex
	cond   *sync.Cond
	queue  []Edge
	closed bool
}

// NewMemoryEdgeSource returns an empty, open MemoryEdgeSource.
func NewMemoryEdgeSource() *MemoryEdgeSource {
	s := &MemoryEdgeSource{}
	s.cond = sync.NewCond(&s.mu)
	return s
}

// Push enqueues an edge for a future Wait to observe.
func (s *MemoryEdgeSource) Push(e Edge) {
	s.mu.Lock()
	s.queue = append(s.queue, e)
	s.cond.Signal()
	s.mu.Unlock()
}

// Close marks the source exhausted and wakes any blocked Wait.
func (s *MemoryEdgeSource) Close() {
	s.mu.Lock()
	s.closed = true
	s.cond.Broadcast()
	s.mu.Unlock()
}

// Wait implements EdgeSource.
func (s *MemoryEdgeSource) Wait(ctx context.Context) (Edge, bool, error) {
	done := make(chan struct{})
	go func() {
		select {
		case <-ctx.Done():
			s.mu.Lock()
			s.cond.Broadcast()
			s.mu.Unlock()
		case <-done:
		}
	}()
	defer close(done)

	s.mu.Lock()
	defer s.mu.Unlock()
	for len(s.queue) == 0 && !s.closed {
		if ctx.Err() != nil {
			return NoEdge, true, nil
		}
		s.cond.Wait()
	}
	if len(s.queue) == 0 {
		return NoEdge, false, nil
	}
	e := s.queue[0]
	s.queue = s.queue[1:]
	return e, true, nil
}
