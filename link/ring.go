// Copyright 2024 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package link

// RingCapacity is the fixed capacity of a ByteRing, per the wire protocol's
// data model: a send/receive queue never needs to outlive a handful of
// packets in flight.
const RingCapacity = 2048

// ByteRing is a fixed-capacity FIFO of bytes. Once full, pushing a new byte
// evicts the oldest one instead of growing — the bus has no flow control,
// so a producer that outruns the consumer should lose old data, not block
// or panic.
type ByteRing struct {
	buf  [RingCapacity]byte
	head int // next byte to Pop
	n    int // number of valid bytes currently queued
}

// Push appends b to the ring, evicting the oldest byte if the ring is full.
func (r *ByteRing) Push(b byte) {
	tail := (r.head + r.n) % RingCapacity
	r.buf[tail] = b
	if r.n < RingCapacity {
		r.n++
	} else {
		// Full: the write above just overwrote the oldest byte in place;
		// advance head to match so Pop order stays correct.
		r.head = (r.head + 1) % RingCapacity
	}
}

// Pop removes and returns the oldest byte in the ring. ok is false if the
// ring is empty.
func (r *ByteRing) Pop() (b byte, ok bool) {
	if r.n == 0 {
		return 0, false
	}
	b = r.buf[r.head]
	r.head = (r.head + 1) % RingCapacity
	r.n--
	return b, true
}

// Len returns the number of bytes currently queued.
func (r *ByteRing) Len() int {
	return r.n
}

// Reset empties the ring without zeroing the backing array.
func (r *ByteRing) Reset() {
	r.head = 0
	r.n = 0
}
