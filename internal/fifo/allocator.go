package fifo

import "github.com/preesm/spider2-sub000/internal/diag"

// Policy selects which free block a request is satisfied from, mirroring
// FreeListAllocator::findFirst / findBest.
type Policy int

const (
	FindFirst Policy = iota
	FindBest
)

// SyncMode selects whether a FIFO signals readiness explicitly (Default)
// or relies on placement to guarantee ordering (DefaultNoSync), per spec
// §4.G.
type SyncMode int

const (
	Default SyncMode = iota
	DefaultNoSync
)

const minAlignment = 8

// Region is a [Offset, Offset+Size) byte range into one of the
// allocator's backing buffers, addressed by buffer index rather than a
// raw pointer.
type Region struct {
	Buffer int
	Offset int64
	Size   int64
}

type freeNode struct {
	offset, size int64
	next         *freeNode
}

type buffer struct {
	data []byte
	free *freeNode // kept ordered ascending by offset
}

func newBuffer(size int64) *buffer {
	b := &buffer{data: make([]byte, size)}
	if size > 0 {
		b.free = &freeNode{offset: 0, size: size}
	}
	return b
}

// Allocator is one cluster memory interface's free-list allocator: one
// static buffer plus any number of extra buffers created on overflow
// (spec §4.G).
type Allocator struct {
	buffers    []*buffer
	alignment  int64
	policy     Policy
	mode       SyncMode
	staticSize int64
	live       map[regionKey]int64
}

type regionKey struct {
	buf    int
	offset int64
}

// New builds an allocator with one static buffer of staticSize bytes.
// An alignment below the platform minimum of 8 bytes is raised to 8.
func New(staticSize, alignment int64, policy Policy, mode SyncMode) *Allocator {
	if alignment < minAlignment {
		alignment = minAlignment
	}
	a := &Allocator{alignment: alignment, policy: policy, mode: mode, staticSize: staticSize, live: make(map[regionKey]int64)}
	a.buffers = append(a.buffers, newBuffer(staticSize))
	return a
}

func alignUp(offset, alignment int64) int64 {
	rem := offset % alignment
	if rem == 0 {
		return offset
	}
	return offset + (alignment - rem)
}

// Allocate reserves size bytes, aligned to a.alignment, using the
// allocator's configured node-selection policy. It grows a new extra
// buffer (spec §4.G overflow path) when no existing buffer can satisfy
// the request.
func (a *Allocator) Allocate(size int64) (Region, diag.Diagnostics) {
	if size <= 0 {
		return Region{}, diag.Diagnostics{diag.New(diag.Error, diag.Construction, "", "non-positive FIFO allocation size", "")}
	}
	for bi, b := range a.buffers {
		if r, ok := a.allocateFrom(bi, b, size); ok {
			return r, nil
		}
	}
	// Overflow: allocate a new buffer at least large enough for this
	// request (aligned up), mirroring createExtraBuffer.
	extraSize := alignUp(size, a.alignment) + a.alignment
	nb := newBuffer(extraSize)
	a.buffers = append(a.buffers, nb)
	if r, ok := a.allocateFrom(len(a.buffers)-1, nb, size); ok {
		return r, nil
	}
	return Region{}, diag.Diagnostics{diag.New(diag.Error, diag.RuntimeErr, "", "FIFO allocation failure", "allocator could not satisfy request even after growing")}
}

func (a *Allocator) allocateFrom(bufIdx int, b *buffer, size int64) (Region, bool) {
	var prev, found *freeNode
	var foundPadding int64
	switch a.policy {
	case FindBest:
		prev, found, foundPadding = findBest(b.free, size, a.alignment)
	default:
		prev, found, foundPadding = findFirst(b.free, size, a.alignment)
	}
	if found == nil {
		return Region{}, false
	}
	aligned := found.offset + foundPadding
	required := foundPadding + size
	leftover := found.size - required

	// detach found from the list
	if prev == nil {
		b.free = found.next
	} else {
		prev.next = found.next
	}
	// re-insert the padding gap (if any) as its own free fragment
	if foundPadding > 0 {
		insertFree(b, &freeNode{offset: found.offset, size: foundPadding})
	}
	// re-insert the tail leftover (if any) as its own free fragment
	if leftover > 0 {
		insertFree(b, &freeNode{offset: aligned + size, size: leftover})
	}

	r := Region{Buffer: bufIdx, Offset: aligned, Size: size}
	a.live[regionKey{bufIdx, aligned}] = size
	return r, true
}

func findFirst(head *freeNode, size, alignment int64) (prev, found *freeNode, padding int64) {
	var p *freeNode
	for it := head; it != nil; it = it.next {
		pad := alignUp(it.offset, alignment) - it.offset
		if it.size >= pad+size {
			return p, it, pad
		}
		p = it
	}
	return nil, nil, 0
}

func findBest(head *freeNode, size, alignment int64) (prev, found *freeNode, padding int64) {
	var bestPrev, best *freeNode
	var bestPad int64
	minFit := int64(-1)
	var p *freeNode
	for it := head; it != nil; it = it.next {
		pad := alignUp(it.offset, alignment) - it.offset
		required := pad + size
		if it.size >= required {
			fit := it.size - required
			if minFit == -1 || fit < minFit {
				minFit = fit
				best, bestPrev, bestPad = it, p, pad
				if fit == 0 {
					break
				}
			}
		}
		p = it
	}
	return bestPrev, best, bestPad
}

// insertFree inserts n into b's free list in ascending-offset order,
// coalescing with an adjacent predecessor/successor when contiguous.
func insertFree(b *buffer, n *freeNode) {
	var prev *freeNode
	it := b.free
	for it != nil && it.offset < n.offset {
		prev = it
		it = it.next
	}
	n.next = it
	if prev == nil {
		b.free = n
	} else {
		prev.next = n
	}
	// coalesce with successor
	if n.next != nil && n.offset+n.size == n.next.offset {
		n.size += n.next.size
		n.next = n.next.next
	}
	// coalesce with predecessor
	if prev != nil && prev.offset+prev.size == n.offset {
		prev.size += n.size
		prev.next = n.next
	}
}

// Deallocate returns r to its buffer's free list, validating it was
// actually allocated (FreeListAllocator::checkPointerAddress's Go
// analogue).
func (a *Allocator) Deallocate(r Region) diag.Diagnostics {
	key := regionKey{r.Buffer, r.Offset}
	size, ok := a.live[key]
	if !ok || size != r.Size {
		return diag.Diagnostics{diag.New(diag.Error, diag.RuntimeErr, "", "freeing an unallocated or mismatched FIFO region", "")}
	}
	if r.Buffer < 0 || r.Buffer >= len(a.buffers) {
		return diag.Diagnostics{diag.New(diag.Error, diag.RuntimeErr, "", "freeing a FIFO region out of memory space", "")}
	}
	delete(a.live, key)
	insertFree(a.buffers[r.Buffer], &freeNode{offset: r.Offset, size: r.Size})
	return nil
}

// Bytes slices out r's backing storage.
func (a *Allocator) Bytes(r Region) []byte {
	return a.buffers[r.Buffer].data[r.Offset : r.Offset+r.Size]
}

// Reset drops every buffer back to one free block spanning its whole
// size, discarding all live allocations (spec §4.G: "compacts freed
// regions between iterations when the DAG is discarded").
func (a *Allocator) Reset() {
	for _, b := range a.buffers {
		if len(b.data) > 0 {
			b.free = &freeNode{offset: 0, size: int64(len(b.data))}
		} else {
			b.free = nil
		}
	}
	a.live = make(map[regionKey]int64)
}

// BufferCount reports how many buffers (static + extra) the allocator
// currently owns, exposed for tests/diagnostics on the overflow path.
func (a *Allocator) BufferCount() int { return len(a.buffers) }
