// Copyright 2013 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Command ibgcdemo builds a small pointer graph inside an ibgc.Arena and
// runs one Trace/Reclaim cycle against it, printing the free list before
// and after. It plays the part of a minimal host: it owns the root set,
// decides when to collect, and tags which cells of each object are
// pointers.
package main

import (
	"flag"
	"fmt"
	"log"

	"github.com/inglorion/ibgc"
)

var (
	memBytes = flag.Int("membytes", 0xC000, "total arena size in bytes")
	keepC    = flag.Bool("keepc", false, "link b -> c, keeping c reachable instead of garbage")
)

// object allocates an nCells-cell object and returns its address, aborting
// the demo on exhaustion - a real host would Trace/Reclaim and retry.
func object(a *ibgc.Arena, nCells int64, info byte) ibgc.Addr {
	p, err := a.Alloc(nCells, info)
	if err != nil {
		log.Fatal(err)
	}
	if p == a.AddrMask() {
		log.Fatal("arena exhausted")
	}
	return p
}

// link stores target in object p's cell at the given cell index and tags
// that cell PTR=1 so Trace follows it.
func link(a *ibgc.Arena, p ibgc.Addr, cellIndex int, target ibgc.Addr) {
	cell := p + ibgc.Addr(cellIndex)*ibgc.Addr(a.Config().CellSize)
	a.SetCell(cell, target)
	a.SetPointer(cell, true)
}

func main() {
	flag.Parse()

	cfg := ibgc.DefaultConfig()
	cfg.MemBytes = *memBytes

	a, err := ibgc.NewArena(cfg)
	if err != nil {
		log.Fatal(err)
	}
	a.Init()

	// a(2) -> b(1); a's second cell -> d(1). c is allocated but left
	// unlinked, so it is garbage unless -keepc wires b -> c.
	a1 := object(a, 2, 1)
	b := object(a, 1, 2)
	c := object(a, 1, 3)
	d := object(a, 1, 4)

	link(a, a1, 0, b)
	link(a, a1, 1, d)
	if *keepC {
		link(a, b, 0, c)
	}

	fmt.Printf("objects: a=%#04x b=%#04x c=%#04x d=%#04x\n", a1, b, c, d)
	fmt.Printf("free list before collection: %s\n", a)

	a.Trace(a1)
	st := a.Reclaim()
	fmt.Printf("free list after collection:  %s\n", a)
	fmt.Printf("live cells: %d, free cells: %d\n", st.LiveCells, st.FreeCells)

	if err := a.Verify(func(e error) bool {
		log.Printf("verify: %v", e)
		return true
	}); err != nil {
		log.Fatalf("arena failed verification: %v", err)
	}
}
