// Package fixed provides containers whose storage is sized once at
// construction: List, SList, Vector and a ring buffer built on Vector.
//
// Each container optionally takes an overflow allocator. Without one,
// inserts into a full container report failure; with one, extra elements
// are served from the overflow allocator and HasOverflowed reports it.
package fixed
