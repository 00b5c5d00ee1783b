package sbom

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
)

// Visitor is called for every node Walk reaches. cyclic is true when the
// node is already on the path from its root; such a node is not descended
// into. Returning false skips the node's children.
type Visitor func(node *TreeNode, depth int, cyclic bool) bool

// Walk visits the forest depth first. Shared nodes are visited once under
// each parent; a node repeating on its own ancestor path is reported as
// cyclic and not followed, so Walk terminates on any input.
func Walk(roots []*TreeNode, visit Visitor) {
	onPath := make(map[*TreeNode]bool)
	var descend func(node *TreeNode, depth int)
	descend = func(node *TreeNode, depth int) {
		cyclic := onPath[node]
		if !visit(node, depth, cyclic) || cyclic {
			return
		}
		onPath[node] = true
		for _, child := range node.Children {
			descend(child, depth+1)
		}
		delete(onPath, node)
	}
	for _, root := range roots {
		descend(root, 0)
	}
}

// TreeStyle selects the branch glyphs used by RenderTree.
type TreeStyle struct {
	Branch string
	Last   string
	Pipe   string
	Space  string
	Cycle  string
	Shared string
}

var (
	UnicodeTree = TreeStyle{Branch: "├── ", Last: "└── ", Pipe: "│   ", Space: "    ", Cycle: " (cycle)", Shared: " (shown above)"}
	AsciiTree   = TreeStyle{Branch: "+-- ", Last: "`-- ", Pipe: "|   ", Space: "    ", Cycle: " (cycle)", Shared: " (shown above)"}
)

// RenderTree writes the forest as an indented text tree. A node with
// children is expanded where it first appears; later appearances are a
// single line marked as shared, so output grows with the number of edges.
func RenderTree(sink io.Writer, roots []*TreeNode, style TreeStyle) error {
	onPath := make(map[*TreeNode]bool)
	expanded := make(map[*TreeNode]bool)
	var failure error
	emit := func(line string) {
		if failure == nil {
			_, failure = fmt.Fprintln(sink, line)
		}
	}
	var descend func(node *TreeNode, prefix, connector, indent string)
	descend = func(node *TreeNode, prefix, connector, indent string) {
		if onPath[node] {
			emit(prefix + connector + node.Label() + style.Cycle)
			return
		}
		if expanded[node] {
			emit(prefix + connector + node.Label() + style.Shared)
			return
		}
		emit(prefix + connector + node.Label())
		if node.HasChildren() {
			expanded[node] = true
		}
		onPath[node] = true
		last := len(node.Children) - 1
		for at, child := range node.Children {
			if at == last {
				descend(child, prefix+indent, style.Last, style.Space)
			} else {
				descend(child, prefix+indent, style.Branch, style.Pipe)
			}
		}
		delete(onPath, node)
	}
	for _, root := range roots {
		descend(root, "", "", "")
	}
	return failure
}

// TreeText is RenderTree into a string.
func TreeText(roots []*TreeNode, style TreeStyle) string {
	var buffer strings.Builder
	RenderTree(&buffer, roots, style)
	return buffer.String()
}

// TreeView is a copy of a forest branch that is safe to encode. Cycles are
// cut at the repeating node. A node with children is copied in full once;
// its later appearances carry only the ref and Shared.
type TreeView struct {
	Ref      string
	Cycle    bool
	Shared   bool
	Children []*TreeView
	Extra    map[string]json.RawMessage
}

// Materialize copies the forest into TreeViews.
func Materialize(roots []*TreeNode) []*TreeView {
	onPath := make(map[*TreeNode]bool)
	expanded := make(map[*TreeNode]bool)
	var copyOf func(node *TreeNode) *TreeView
	copyOf = func(node *TreeNode) *TreeView {
		view := &TreeView{Ref: node.Ref}
		switch {
		case onPath[node]:
			view.Cycle = true
			view.Extra = fields(node.Extra).clone()
			return view
		case expanded[node]:
			view.Shared = true
			return view
		}
		view.Extra = fields(node.Extra).clone()
		if node.HasChildren() {
			expanded[node] = true
		}
		onPath[node] = true
		for _, child := range node.Children {
			view.Children = append(view.Children, copyOf(child))
		}
		delete(onPath, node)
		return view
	}
	result := make([]*TreeView, 0, len(roots))
	for _, root := range roots {
		result = append(result, copyOf(root))
	}
	return result
}

func (it TreeView) MarshalJSON() ([]byte, error) {
	known := map[string]interface{}{
		"ref": it.Ref,
	}
	if it.Cycle {
		known["cycle"] = true
	}
	if it.Shared {
		known["shared"] = true
	}
	if len(it.Children) > 0 {
		known["children"] = it.Children
	}
	return fields(it.Extra).encode(known)
}
