// Copyright 2013 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ibgc

import (
	"sort"
	"strconv"
	"testing"

	"github.com/cznic/sortutil"
)

// spanStarts extracts the Start address of every free span, in list order,
// as an int64 slice so sortutil.Int64Slice's sort.Interface can check it
// against ascending address order.
func spanStarts(spans []Span) sortutil.Int64Slice {
	r := make(sortutil.Int64Slice, len(spans))
	for i, sp := range spans {
		r[i] = int64(sp.Start)
	}
	return r
}

// TestFreeListStaysAddressOrdered checks the invariant Arena.Verify relies
// on: FreeSpans always comes back in strictly ascending address order,
// through a mix of Alloc (splitting spans) and Reclaim (coalescing them).
func TestFreeListStaysAddressOrdered(t *testing.T) {
	a := newTestArena(t)

	aAddr, _ := a.Alloc(1, 0)
	_, _ = a.Alloc(2, 0)
	_, _ = a.Alloc(1, 0)

	check := func() {
		t.Helper()
		got := spanStarts(a.FreeSpans())
		want := append(sortutil.Int64Slice(nil), got...)
		sort.Sort(want)
		for i := range got {
			if got[i] != want[i] {
				t.Fatalf("free list not address-ordered: %v", got)
			}
		}
	}

	check()
	a.Trace(aAddr)
	a.Reclaim()
	check()
}

func TestStringFormatsFreeList(t *testing.T) {
	a := newTestArena(t)
	total := int64(a.cfg.allocTop-a.cfg.AllocBase) / int64(a.cfg.CellSize)

	n := strconv.FormatInt(total, 10)
	want := "0010(" + n + ") total: " + n
	if got := a.String(); got != want {
		t.Fatalf("String() = %q, want %q", got, want)
	}
}
