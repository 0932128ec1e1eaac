// Package latest provides an atomic latest-value cell: a single-writer,
// many-reader handoff where a reader always sees one complete value,
// never a partially written one. It is the boundary crossing between a
// snapshot producer and its consumers.
package latest

import (
	"sync/atomic"
)

// Cell holds the most recent value of type T. The zero Cell is ready
// to use; Load before any Store returns the zero T with version 0.
type Cell[T any] struct {
	value    atomic.Pointer[T]
	version  atomic.Uint64
	dirty    atomic.Bool
	onChange atomic.Pointer[func(old, new T)]
}

// New creates a Cell seeded with an initial value at version 1.
func New[T any](initial T) *Cell[T] {
	c := &Cell[T]{}
	c.value.Store(&initial)
	c.version.Store(1)
	return c
}

// Store publishes a new value, bumps the version and marks the cell
// dirty. The stored value must not be mutated afterwards; treat it as
// handed off.
func (c *Cell[T]) Store(v T) uint64 {
	var old T
	if p := c.value.Load(); p != nil {
		old = *p
	}
	c.value.Store(&v)
	version := c.version.Add(1)
	c.dirty.Store(true)

	if fn := c.onChange.Load(); fn != nil {
		(*fn)(old, v)
	}
	return version
}

// Load returns the latest value and its version. Version 0 means
// nothing was ever stored.
func (c *Cell[T]) Load() (T, uint64) {
	p := c.value.Load()
	if p == nil {
		var zero T
		return zero, 0
	}
	return *p, c.version.Load()
}

// Version returns the current version without reading the value.
func (c *Cell[T]) Version() uint64 { return c.version.Load() }

// IsDirty reports whether a Store happened since the last MarkClean.
func (c *Cell[T]) IsDirty() bool { return c.dirty.Load() }

// MarkClean clears the dirty flag. Typically called by the single
// consumer after it has taken the latest value for a frame.
func (c *Cell[T]) MarkClean() { c.dirty.Store(false) }

// OnChange installs a hook invoked synchronously inside Store with the
// previous and new values. Pass nil to remove it. The hook runs on the
// producer goroutine; keep it short.
func (c *Cell[T]) OnChange(fn func(old, new T)) {
	if fn == nil {
		c.onChange.Store(nil)
		return
	}
	c.onChange.Store(&fn)
}
