// Copyright 2013 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ibgc

// Trace marks every object reachable from root, following PTR-tagged cells
// transitively. It runs in O(1) auxiliary storage regardless of graph
// shape via Deutsch-Schorr-Waite pointer reversal: instead of an explicit
// mark stack, the cell being descended through temporarily holds the
// address it was reached from, and the original pointer is restored on
// the way back up.
//
// root == Arena.Config().AddrMask (an unset root slot) is a no-op: AddrMask
// uniformly means "no target", whether held in a root slot or a PTR cell.
// Trace is idempotent: calling it again with no intervening mutation marks
// nothing new, since every reachable object is already marked.
//
// The visited check (isFree/mark) only ever applies at the point an object
// is first entered, either root itself or the target of a followed PTR
// cell. Once inside an object, every one of its cells is examined for a
// PTR regardless of its own mark bit, which is meaningful only on an
// object's first cell and a don't-care on its continuation cells.
func (a *Arena) Trace(root Addr) {
	null := a.cfg.AddrMask
	if root == null {
		return
	}
	if !a.isFree(root) {
		return
	}
	a.mark(root)

	// p is the cell currently under examination. back, when not null, is
	// the address of a reversed PTR cell awaiting restoration; restoreTo
	// is the value displaced from it (the object p descended into),
	// tracked apart from p itself so a last-cell forward chase that later
	// carries p past that object cannot lose the value back must be
	// restored to.
	p, back, restoreTo := root, null, null
	for {
		if a.tag(p)&ptrMask != 0 {
			if target := a.cellAt(p); target != null && a.isFree(target) {
				a.mark(target)
				if !a.hasCont(p) {
					// Last cell of its object: a plain forward chase,
					// nothing here to remember to come back to.
					p = target
					continue
				}

				// Reverse the pointer: p's cell now holds back (where
				// we descended from) instead of target. restoreTo
				// remembers target itself, since p may be carried
				// further by a forward chase through target's own
				// subtree before we ascend back to this cell.
				a.setCellAt(p, back)
				back, restoreTo = p, target
				p = target
				continue
			}
		}

		if a.hasCont(p) {
			// More cells follow in the object currently being scanned.
			p += a.cellStride()
			continue
		}

		// p is the last cell of its object with nothing left to follow:
		// ascend, restoring the reversed cell to restoreTo (the value it
		// was displaced from), not to p, which may have moved on since.
		if back == null {
			return
		}

		tmp := a.cellAt(back)
		a.setCellAt(back, restoreTo)
		p = back + a.cellStride()
		back = tmp
	}
}
