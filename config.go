// Copyright 2013 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ibgc

import "github.com/cznic/mathutil"

// Addr is a small unsigned integer addressing a byte within the arena, or
// the start of a cell within the cell region. The zero value is a valid
// arena offset; AddrMask is the null/terminator sentinel.
type Addr uint32

// A Config amends the layout of an Arena. The zero value is not ready for
// use; call DefaultConfig or fill in every field and let NewArena validate
// it.
type Config struct {
	// MemBytes is the total size, in bytes, of the arena.
	MemBytes int

	// AllocBase is the address of the first cell of the cell region. Bytes
	// below AllocBase are reserved for the host (e.g. statics) and are
	// never touched by the collector.
	AllocBase Addr

	// CellSize is the width, in bytes, of a single cell. It MUST be a
	// power of two and wide enough to hold an Addr.
	CellSize int

	// AddrMask is the all-ones sentinel value doubling as a null pointer
	// and free-list terminator.
	AddrMask Addr

	log2CellSize uint
	tagBase      Addr
	allocTop     Addr
	checked      bool
}

// DefaultConfig returns a representative layout: a 0xC000-byte arena, a
// 0x0400-byte reserved region, 4-byte cells and a 16-bit address space.
func DefaultConfig() Config {
	return Config{
		MemBytes:  0xC000,
		AllocBase: 0x0400,
		CellSize:  4,
		AddrMask:  0xFFFF,
	}
}

func (c *Config) validate() error {
	if c.checked {
		return nil
	}

	if c.CellSize <= 0 {
		return &ErrINVAL{"Config.CellSize", int64(c.CellSize)}
	}

	log := mathutil.BitLen(c.CellSize)
	if 1<<uint(log-1) != c.CellSize {
		return &ErrINVAL{"Config.CellSize not a power of two", int64(c.CellSize)}
	}
	c.log2CellSize = uint(log - 1)

	if c.MemBytes <= 0 || c.MemBytes%c.CellSize != 0 {
		return &ErrINVAL{"Config.MemBytes", int64(c.MemBytes)}
	}

	if c.AllocBase < 0 || int(c.AllocBase)%c.CellSize != 0 || int(c.AllocBase) >= c.MemBytes {
		return &ErrINVAL{"Config.AllocBase", int64(c.AllocBase)}
	}

	// TagBase = (MemBytes/CellSize)*3. With 4-byte cells the cell region
	// occupies 3/4 of the arena and the tag region the remaining 1/4: one
	// tag byte per CellSize-byte cell.
	cells := c.MemBytes / c.CellSize
	c.tagBase = Addr(cells * 3)
	c.allocTop = c.tagBase

	if c.allocTop <= c.AllocBase {
		return &ErrINVAL{"Config: no room for the cell region", int64(c.MemBytes)}
	}

	if c.AddrMask == 0 {
		return &ErrINVAL{"Config.AddrMask", int64(c.AddrMask)}
	}

	if int(c.AddrMask) < c.MemBytes-1 {
		return &ErrINVAL{"Config.AddrMask too small for MemBytes", int64(c.AddrMask)}
	}

	c.checked = true
	return nil
}

// TagBase returns the address of the first byte of the tag region.
func (c *Config) TagBase() Addr { return c.tagBase }

// AllocTop returns the address one past the last cell of the cell region;
// by construction this equals TagBase.
func (c *Config) AllocTop() Addr { return c.allocTop }
