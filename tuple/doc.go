// Package tuple provides structure-of-arrays vectors. Each field of a row
// is stored in its own contiguous column, and all columns share one block
// laid out with per-column alignment.
//
// Columns of pointer-free types are carved from the configured allocator.
// Columns holding Go pointers are allocated with make so the garbage
// collector can see them.
package tuple
