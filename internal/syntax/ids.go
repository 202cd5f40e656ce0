package syntax

// NodeID identifies a node in a Tree's arena. The zero value, NoNodeID,
// never denotes a real node, so it doubles as "this optional child was not
// present in source" (e.g. an omitted else-branch or a missing type
// annotation) without a separate boolean flag.
type NodeID uint32

// NoNodeID is the sentinel for "no node."
const NoNodeID NodeID = 0

// IsValid reports whether id refers to an allocated node.
func (id NodeID) IsValid() bool { return id != NoNodeID }
