package vdom

// PatchOp is the type of patch operation.
type PatchOp uint8

const (
	PatchSetText     PatchOp = iota + 1 // Update text content
	PatchSetAttr                        // Set/update attribute
	PatchRemoveAttr                     // Remove attribute
	PatchInsertNode                     // Insert new node
	PatchRemoveNode                     // Remove node
	PatchReplaceNode                    // Replace node entirely
)

// String returns the string representation of the PatchOp.
func (op PatchOp) String() string {
	switch op {
	case PatchSetText:
		return "SetText"
	case PatchSetAttr:
		return "SetAttr"
	case PatchRemoveAttr:
		return "RemoveAttr"
	case PatchInsertNode:
		return "InsertNode"
	case PatchRemoveNode:
		return "RemoveNode"
	case PatchReplaceNode:
		return "ReplaceNode"
	default:
		return "Unknown"
	}
}

// Patch is a single mutation of the target tree.
type Patch struct {
	Op    PatchOp
	Path  []int  // Child indexes from the render root to the target
	Key   string // Attribute key (SetAttr/RemoveAttr)
	Value string // New text or attribute value
	Node  *VNode // For InsertNode/ReplaceNode
}
