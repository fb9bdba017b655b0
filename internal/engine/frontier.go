package engine

import (
	"github.com/emirpasic/gods/lists/doublylinkedlist"

	"github.com/roach88/stabdecomp/internal/zx"
)

// Entry is one pending diagram and the number of rewrite steps applied to
// reach it.
type Entry struct {
	Depth   int
	Diagram *zx.Diagram
}

// frontier is the double-ended queue of pending entries.
//
// The back is the depth-first end: DecompTop pops and pushes there. The
// front is the breadth-first end used by DecompUntilDepth. Both ends are
// O(1) on the underlying doubly linked list.
//
// Not safe for concurrent use. Each Decomposer owns its frontier and
// parallel work only ever touches disjoint decomposers.
type frontier struct {
	list *doublylinkedlist.List
}

func newFrontier() *frontier {
	return &frontier{list: doublylinkedlist.New()}
}

// PushBack adds an entry at the depth-first end.
func (f *frontier) PushBack(e Entry) {
	f.list.Add(e)
}

// PushFront adds an entry at the breadth-first end.
func (f *frontier) PushFront(e Entry) {
	f.list.Prepend(e)
}

// PopBack removes and returns the back entry.
// Returns (Entry{}, false) if the frontier is empty.
func (f *frontier) PopBack() (Entry, bool) {
	n := f.list.Size()
	if n == 0 {
		return Entry{}, false
	}
	v, _ := f.list.Get(n - 1)
	f.list.Remove(n - 1)
	return v.(Entry), true
}

// PopFront removes and returns the front entry.
// Returns (Entry{}, false) if the frontier is empty.
func (f *frontier) PopFront() (Entry, bool) {
	if f.list.Empty() {
		return Entry{}, false
	}
	v, _ := f.list.Get(0)
	f.list.Remove(0)
	return v.(Entry), true
}

// Len returns the number of pending entries.
func (f *frontier) Len() int {
	return f.list.Size()
}

// Entries returns the pending entries front to back.
func (f *frontier) Entries() []Entry {
	vals := f.list.Values()
	out := make([]Entry, len(vals))
	for i, v := range vals {
		out[i] = v.(Entry)
	}
	return out
}

// Append moves every entry of o to the back of f, preserving order, and
// leaves o empty.
func (f *frontier) Append(o *frontier) {
	for _, e := range o.Entries() {
		f.list.Add(e)
	}
	o.list.Clear()
}
