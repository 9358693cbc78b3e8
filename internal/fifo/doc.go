// Package fifo implements the byte-region allocator backing spec §4.G:
// one free-list allocator per cluster memory interface, with FIND_FIRST
// and FIND_BEST node-selection policies and a Default / Default-no-sync
// synchronization axis.
//
// Grounded directly on original_source's
// libspider/memory/dynamic-allocators/FreeListAllocator.h and
// libspider/common/memory/FreeListAllocator.cpp: a singly linked free
// list walked by an interchangeable find function, a static backing
// buffer allocated once, and an "extra buffers" overflow path taken when
// the static buffer can no longer satisfy a request. Unlike the C++
// original, free-list nodes here are plain Go structs carrying
// (buffer, offset, size) — never pointers into the arena itself — so the
// allocator never does manual pointer arithmetic; "padding" is the gap
// inserted before a candidate block to align its data start, not a
// C struct header.
package fifo
