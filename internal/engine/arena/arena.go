// Package arena provides a generation-checked slot store. Handles stay
// small and comparable, and a handle to a freed slot never aliases the
// value that reuses it.
package arena

// Handle identifies a slot. The zero Handle never refers to a value.
type Handle struct {
	Index      uint32 // 1-based slot index
	Generation uint32
}

// IsZero reports whether h is the "none" handle.
func (h Handle) IsZero() bool {
	return h.Index == 0
}

type entry[T any] struct {
	value      T
	generation uint32
	refs       int32
	live       bool
}

// Arena stores values of type T. The zero Arena is ready to use. It is not
// safe for concurrent use.
type Arena[T any] struct {
	entries []entry[T]
	free    []uint32
	count   int
}

// Insert stores v with a reference count of one.
func (a *Arena[T]) Insert(v T) Handle {
	var idx uint32
	if n := len(a.free); n > 0 {
		idx = a.free[n-1]
		a.free = a.free[:n-1]
	} else {
		a.entries = append(a.entries, entry[T]{})
		idx = uint32(len(a.entries) - 1)
	}
	e := &a.entries[idx]
	e.value = v
	e.refs = 1
	e.live = true
	a.count++
	return Handle{Index: idx + 1, Generation: e.generation}
}

func (a *Arena[T]) lookup(h Handle) *entry[T] {
	if h.Index == 0 || int(h.Index) > len(a.entries) {
		return nil
	}
	e := &a.entries[h.Index-1]
	if !e.live || e.generation != h.Generation {
		return nil
	}
	return e
}

// Get returns the value stored under h.
func (a *Arena[T]) Get(h Handle) (T, bool) {
	e := a.lookup(h)
	if e == nil {
		var zero T
		return zero, false
	}
	return e.value, true
}

// Set replaces the value stored under h in place.
func (a *Arena[T]) Set(h Handle, v T) bool {
	e := a.lookup(h)
	if e == nil {
		return false
	}
	e.value = v
	return true
}

// Contains reports whether h refers to a live value.
func (a *Arena[T]) Contains(h Handle) bool {
	return a.lookup(h) != nil
}

// Refs returns the reference count of h, or 0 if h is stale.
func (a *Arena[T]) Refs(h Handle) int {
	e := a.lookup(h)
	if e == nil {
		return 0
	}
	return int(e.refs)
}

// Retain adds a reference to h.
func (a *Arena[T]) Retain(h Handle) bool {
	e := a.lookup(h)
	if e == nil {
		return false
	}
	e.refs++
	return true
}

// Release drops a reference to h. When the count reaches zero the slot is
// freed and its value returned with removed set.
func (a *Arena[T]) Release(h Handle) (v T, removed, ok bool) {
	e := a.lookup(h)
	if e == nil {
		return v, false, false
	}
	e.refs--
	if e.refs > 0 {
		return v, false, true
	}
	v = a.free1(h.Index - 1)
	return v, true, true
}

// Remove frees h regardless of its reference count.
func (a *Arena[T]) Remove(h Handle) (T, bool) {
	if a.lookup(h) == nil {
		var zero T
		return zero, false
	}
	return a.free1(h.Index - 1), true
}

func (a *Arena[T]) free1(idx uint32) T {
	e := &a.entries[idx]
	v := e.value
	var zero T
	e.value = zero
	e.refs = 0
	e.live = false
	e.generation++
	a.free = append(a.free, idx)
	a.count--
	return v
}

// Len returns the number of live values.
func (a *Arena[T]) Len() int {
	return a.count
}

// Each calls fn for every live value in slot order until fn returns false.
func (a *Arena[T]) Each(fn func(Handle, T) bool) {
	for i := range a.entries {
		e := &a.entries[i]
		if !e.live {
			continue
		}
		if !fn(Handle{Index: uint32(i) + 1, Generation: e.generation}, e.value) {
			return
		}
	}
}
