// Copyright 2024 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package link

import "testing"

func TestByteRingFIFO(t *testing.T) {
	var r ByteRing
	if _, ok := r.Pop(); ok {
		t.Fatal("Pop on empty ring returned ok")
	}
	for i := 0; i < 5; i++ {
		r.Push(byte(i))
	}
	if got := r.Len(); got != 5 {
		t.Fatalf("Len() = %d, want 5", got)
	}
	for i := 0; i < 5; i++ {
		b, ok := r.Pop()
		if !ok || b != byte(i) {
			t.Fatalf("Pop() = (%d, %v), want (%d, true)", b, ok, i)
		}
	}
	if r.Len() != 0 {
		t.Fatalf("Len() = %d, want 0", r.Len())
	}
}

func TestByteRingOverflowEvictsOldest(t *testing.T) {
	var r ByteRing
	for i := 0; i < RingCapacity+10; i++ {
		r.Push(byte(i))
	}
	if got := r.Len(); got != RingCapacity {
		t.Fatalf("Len() = %d, want %d", got, RingCapacity)
	}
	b, ok := r.Pop()
	if !ok || b != byte(10) {
		t.Fatalf("Pop() = (%d, %v), want (10, true) — oldest 10 bytes should have been evicted", b, ok)
	}
}

func TestByteRingReset(t *testing.T) {
	var r ByteRing
	r.Push(1)
	r.Push(2)
	r.Reset()
	if r.Len() != 0 {
		t.Fatalf("Len() after Reset() = %d, want 0", r.Len())
	}
	if _, ok := r.Pop(); ok {
		t.Fatal("Pop() after Reset() returned ok")
	}
}
