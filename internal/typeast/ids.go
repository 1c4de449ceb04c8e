package typeast

// NodeIndex identifies a node in the arena (spec §6.1). It is the sole
// handle the lowerer ever receives from its caller.
type NodeIndex uint32

// NoNodeIndex marks the absence of a node.
const NoNodeIndex NodeIndex = 0

// IsValid reports whether idx refers to an allocated node.
func (idx NodeIndex) IsValid() bool { return idx != NoNodeIndex }

// PayloadID indexes one of the per-kind payload arenas below.
type PayloadID uint32

// NoPayloadID marks the absence of a payload.
const NoPayloadID PayloadID = 0

// FileID identifies which source file a NodeIndex belongs to, for the
// cross-arena interface-merge case (spec §4.2.2): a lowering context can
// hold nodes from more than one file.
type FileID uint32
