// Copyright 2013 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ibgc

// Verify attempts to find structural errors in the arena: a sequential
// scan that reports problems through a caller-supplied log(error) bool
// callback, stopping early only when log declines to continue. It is
// never called by Alloc/Trace/Reclaim themselves; it exists as an opt-in
// diagnostic for a host that wants to sanity-check the arena between
// collection cycles.
//
// Passing a nil log works like one that always returns false, so Verify
// returns the first problem it finds as an error. A log that always
// returns true makes Verify collect every problem through the callback
// and still return nil once the scan completes.
func (a *Arena) Verify(log func(error) bool) error {
	if log == nil {
		log = func(error) bool { return false }
	}

	null := a.cfg.AddrMask

	// Phase 1: walk the free list, checking disjointness/coalescing and
	// recording which addresses it covers.
	covered := map[Addr]bool{}
	var prevEnd Addr
	havePrev := false
	for p := a.freeptr; p != null; p = a.nextFree(p) {
		flen := a.freeLen(p)
		if flen < 1 {
			err := &ErrILSEQ{Type: ErrSpanOverflow, Off: p, Arg: flen}
			if !log(err) {
				return err
			}
		}

		end := a.end(p, flen)
		if end > a.cfg.allocTop {
			err := &ErrILSEQ{Type: ErrSpanOverflow, Off: p, Arg: flen}
			if !log(err) {
				return err
			}
		}

		if !a.isFree(p) {
			err := &ErrILSEQ{Type: ErrFreeMark, Off: p}
			if !log(err) {
				return err
			}
		}

		if havePrev && prevEnd >= p {
			err := &ErrILSEQ{Type: ErrAdjacentFree, Off: p, Arg: int64(prevEnd)}
			if !log(err) {
				return err
			}
		}

		for c := p; c < end; c += a.cellStride() {
			covered[c] = true
		}

		prevEnd = end
		havePrev = true
	}

	// Phase 2: walk every object in address order, checking that live and
	// free regions exactly tile the arena. An object's own mark bit is not
	// checked here: a used cell legitimately reads isFree until its next
	// Trace, so only its absence from the free list (not its mark state)
	// distinguishes it from a free span.
	var liveCells, freeCells int64
	for p := a.cfg.AllocBase; p < a.cfg.allocTop; {
		if covered[p] {
			atoms := a.freeLen(p)
			freeCells += atoms
			p = a.end(p, atoms)
			continue
		}

		atoms := a.objectAtoms(p)

		for c := p; c < a.end(p, atoms); c += a.cellStride() {
			if covered[c] {
				err := &ErrILSEQ{Type: ErrLostCells, Off: c}
				if !log(err) {
					return err
				}
			}
		}

		liveCells += atoms
		p = a.end(p, atoms)
	}

	total := int64(a.cfg.allocTop-a.cfg.AllocBase) / int64(a.cfg.CellSize)
	if liveCells+freeCells != total {
		err := &ErrILSEQ{Type: ErrLostCells, Arg: liveCells + freeCells, Arg2: total}
		if !log(err) {
			return err
		}
	}

	return nil
}
