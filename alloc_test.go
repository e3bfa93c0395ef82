// Copyright 2013 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ibgc

import "testing"

// TestAllocOneCellFromFreshArena checks that after Alloc(1, 0), the free
// list is the tail span shrunk by one cell.
func TestAllocOneCellFromFreshArena(t *testing.T) {
	a := newTestArena(t)
	total := int64(a.cfg.allocTop-a.cfg.AllocBase) / int64(a.cfg.CellSize)

	p, err := a.Alloc(1, 0)
	if err != nil {
		t.Fatal(err)
	}
	if p != a.cfg.AllocBase {
		t.Fatalf("alloc start = %#x, want %#x", p, a.cfg.AllocBase)
	}

	spans := a.FreeSpans()
	if len(spans) != 1 {
		t.Fatalf("spans = %d, want 1", len(spans))
	}
	wantStart := a.cfg.AllocBase + a.cellStride()
	if spans[0].Start != wantStart || spans[0].Len != total-1 {
		t.Fatalf("span = %+v, want {%#x %d}", spans[0], wantStart, total-1)
	}
}

func TestAllocExactFitConsumesSpan(t *testing.T) {
	a := newTestArena(t)
	total := int64(a.cfg.allocTop-a.cfg.AllocBase) / int64(a.cfg.CellSize)

	p, err := a.Alloc(total, 0)
	if err != nil {
		t.Fatal(err)
	}
	if p != a.cfg.AllocBase {
		t.Fatalf("alloc start = %#x, want %#x", p, a.cfg.AllocBase)
	}
	if a.freeptr != a.cfg.AddrMask {
		t.Fatalf("freeptr = %#x, want AddrMask", a.freeptr)
	}
}

func TestAllocExhaustion(t *testing.T) {
	a := newTestArena(t)
	total := int64(a.cfg.allocTop-a.cfg.AllocBase) / int64(a.cfg.CellSize)

	if _, err := a.Alloc(total, 0); err != nil {
		t.Fatal(err)
	}

	p, err := a.Alloc(1, 0)
	if err != nil {
		t.Fatal(err)
	}
	if p != a.cfg.AddrMask {
		t.Fatalf("alloc on exhausted arena = %#x, want AddrMask", p)
	}
}

func TestAllocRejectsZeroCells(t *testing.T) {
	a := newTestArena(t)
	if _, err := a.Alloc(0, 0); err == nil {
		t.Fatal("expected an error for nCells == 0")
	}
}

func TestAllocMultiCellTagging(t *testing.T) {
	a := newTestArena(t)

	p, err := a.Alloc(3, 0x10)
	if err != nil {
		t.Fatal(err)
	}

	if got := a.Info(p); got != 0x10 {
		t.Fatalf("Info(first cell) = %#x, want 0x10", got)
	}
	if !a.hasCont(p) {
		t.Fatalf("first cell of a 3-cell object must have CONT set")
	}
	if a.ObjectLen(p) != 3 {
		t.Fatalf("ObjectLen = %d, want 3", a.ObjectLen(p))
	}

	mid := p + a.cellStride()
	last := p + 2*a.cellStride()
	if !a.hasCont(mid) {
		t.Fatalf("middle continuation cell must have CONT set")
	}
	if a.hasCont(last) {
		t.Fatalf("last cell of an object must have CONT clear")
	}

	// A freshly allocated object must not already read as reachable.
	if !a.isFree(p) {
		t.Fatalf("freshly allocated object should read isFree == true until traced")
	}
}

func TestAllocSplitThenReuse(t *testing.T) {
	a := newTestArena(t)

	p1, err := a.Alloc(2, 0)
	if err != nil {
		t.Fatal(err)
	}
	if err := a.Verify(nil); err != nil {
		t.Fatalf("Verify after first alloc: %v", err)
	}

	p2, err := a.Alloc(5, 0)
	if err != nil {
		t.Fatal(err)
	}
	if p2 == p1 {
		t.Fatalf("second allocation reused the first object's address")
	}
	if err := a.Verify(nil); err != nil {
		t.Fatalf("Verify after second alloc: %v", err)
	}
}
