package malloc

import "fmt"

// Example_buddy allocates through the Allocator interface rather than the
// concrete *BuddyAllocator, the same way segalloc's benchmarks do, and
// checks Verify() once both blocks are freed: every free-list entry is
// in bounds, aligned to its order, and listed only once.
func Example_buddy() {
	arena := make([]byte, 512*1024)
	bd, _ := NewBuddyAllocator(arena)
	var a Allocator = bd

	b1 := a.Alloc(1024) // fits in 8KB block
	b2 := a.Alloc(8192) // needs 16KB block due to 8-byte header

	fmt.Printf("b1: len=%d cap=%d\n", len(b1), cap(b1))
	fmt.Printf("b2: len=%d cap=%d\n", len(b2), cap(b2))

	a.Free(b1)
	a.Free(b2)
	fmt.Printf("verified: %v\n", a.Verify())

	// Output:
	// b1: len=1024 cap=8184
	// b2: len=8192 cap=16376
	// verified: true
}

// Example_bitmap mirrors Example_buddy for the bitmap strategy: same
// Allocator-typed handle, same alloc/free/Verify sequence, different
// backing layout (one bit per block instead of per-order free lists).
func Example_bitmap() {
	arena := make([]byte, 1024*1024)
	bm, _ := NewBitmapAllocator(arena)
	var a Allocator = bm

	b1 := a.Alloc(1024)
	b2 := a.Alloc(4096)

	fmt.Printf("b1: len=%d\n", len(b1))
	fmt.Printf("b2: len=%d\n", len(b2))

	a.Free(b1)
	a.Free(b2)
	fmt.Printf("verified: %v\n", a.Verify())

	// Output:
	// b1: len=1024
	// b2: len=4096
	// verified: true
}
