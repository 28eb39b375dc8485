// Package intrusive provides containers that link elements through nodes
// embedded in the elements themselves, and a reference-counted pointer for
// types that manage their own lifetime.
//
// Intrusive containers never allocate. An element type embeds one node per
// container it can belong to:
//
//	type conn struct {
//		intrusive.SListNode[conn]
//		intrusive.HashNode[conn]
//		id uint64
//	}
//
//	func (c *conn) HashKey() uint64 { return c.id }
//
//	var idle intrusive.SList[conn, *conn]
//	byID := intrusive.NewHashMap[uint64, conn, *conn](64,
//		intrusive.WithHasher(intrusive.Uint64Hash))
//
// The containers hold plain pointers; callers keep the elements alive and
// unlink them before reuse.
package intrusive
