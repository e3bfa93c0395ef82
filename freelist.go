// Copyright 2013 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ibgc

import "fmt"

// Span describes one maximal free span: Start is its first cell, Len its
// length in cells.
type Span struct {
	Start Addr
	Len   int64
}

// FreeSpans returns the free list in list order: a singly linked list
// threaded through the free spans themselves, anchored at freeptr. At rest
// the list is in ascending address order with no two spans adjacent - see
// Arena.Verify.
func (a *Arena) FreeSpans() []Span {
	var spans []Span
	null := a.cfg.AddrMask
	for p := a.freeptr; p != null; p = a.nextFree(p) {
		spans = append(spans, Span{Start: p, Len: a.freeLen(p)})
	}
	return spans
}

// String renders the free list as one "addr(len)" entry per span in list
// order, followed by the total free cell count.
func (a *Arena) String() string {
	spans := a.FreeSpans()
	s := ""
	var total int64
	for _, sp := range spans {
		s += fmt.Sprintf("%04x(%d) ", sp.Start, sp.Len)
		total += sp.Len
	}
	return fmt.Sprintf("%stotal: %d", s, total)
}
