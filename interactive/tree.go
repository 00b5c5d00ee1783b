package interactive

import (
	"strconv"
	"strings"

	"github.com/joshyorko/sbomdesk/sbom"
)

// treeRow is one visible line of the dependency tree. Path is the chain of
// child positions from the root, so a shared node keeps an expansion state
// per place it appears in.
type treeRow struct {
	Node     *sbom.TreeNode
	Path     string
	Depth    int
	Cyclic   bool
	Expanded bool
}

func (it treeRow) Expandable() bool {
	return it.Node.HasChildren() && !it.Cyclic
}

type treeState struct {
	roots    []*sbom.TreeNode
	expanded map[string]bool
	rows     []treeRow
	cursor   int
	offset   int
}

func newTreeState(roots []*sbom.TreeNode) *treeState {
	state := &treeState{
		roots:    roots,
		expanded: make(map[string]bool),
	}
	state.rebuild()
	return state
}

func flatten(roots []*sbom.TreeNode, expanded map[string]bool) []treeRow {
	rows := []treeRow{}
	onPath := make(map[*sbom.TreeNode]bool)
	var descend func(node *sbom.TreeNode, path string, depth int)
	descend = func(node *sbom.TreeNode, path string, depth int) {
		row := treeRow{
			Node:   node,
			Path:   path,
			Depth:  depth,
			Cyclic: onPath[node],
		}
		row.Expanded = row.Expandable() && expanded[path]
		rows = append(rows, row)
		if !row.Expanded {
			return
		}
		onPath[node] = true
		for index, child := range node.Children {
			descend(child, path+"/"+strconv.Itoa(index), depth+1)
		}
		delete(onPath, node)
	}
	for index, root := range roots {
		descend(root, strconv.Itoa(index), 0)
	}
	return rows
}

func (it *treeState) rebuild() {
	it.rows = flatten(it.roots, it.expanded)
	it.cursor = clamp(it.cursor, 0, len(it.rows)-1)
}

func (it *treeState) current() (treeRow, bool) {
	if it.cursor < 0 || it.cursor >= len(it.rows) {
		return treeRow{}, false
	}
	return it.rows[it.cursor], true
}

func (it *treeState) moveBy(delta int) {
	it.cursor = clamp(it.cursor+delta, 0, len(it.rows)-1)
}

func (it *treeState) top() {
	it.cursor = 0
}

func (it *treeState) bottom() {
	it.cursor = clamp(len(it.rows)-1, 0, len(it.rows)-1)
}

func (it *treeState) expand() {
	row, ok := it.current()
	if !ok || !row.Expandable() || row.Expanded {
		return
	}
	it.expanded[row.Path] = true
	it.rebuild()
}

// toggle flips the current row; rows without children stay as they are.
func (it *treeState) toggle() {
	row, ok := it.current()
	if !ok || !row.Expandable() {
		return
	}
	if row.Expanded {
		delete(it.expanded, row.Path)
	} else {
		it.expanded[row.Path] = true
	}
	it.rebuild()
}

// collapse closes the current row, or moves to its parent when it is closed.
func (it *treeState) collapse() {
	row, ok := it.current()
	if !ok {
		return
	}
	if row.Expanded {
		delete(it.expanded, row.Path)
		it.rebuild()
		return
	}
	cut := strings.LastIndex(row.Path, "/")
	if cut < 0 {
		return
	}
	parent := row.Path[:cut]
	for index := it.cursor - 1; index >= 0; index-- {
		if it.rows[index].Path == parent {
			it.cursor = index
			return
		}
	}
}

func (it *treeState) marker(row treeRow) string {
	switch {
	case row.Expanded:
		return "[-] "
	case row.Expandable():
		return "[+] "
	default:
		return "    "
	}
}

func (it *treeState) render(styles *Styles, height int) string {
	if len(it.rows) == 0 {
		return ""
	}
	if height < 1 {
		height = 1
	}
	if it.cursor < it.offset {
		it.offset = it.cursor
	}
	if it.cursor >= it.offset+height {
		it.offset = it.cursor - height + 1
	}
	it.offset = clamp(it.offset, 0, len(it.rows)-1)

	end := it.offset + height
	if end > len(it.rows) {
		end = len(it.rows)
	}
	lines := make([]string, 0, end-it.offset)
	for index := it.offset; index < end; index++ {
		row := it.rows[index]
		indent := styles.TreeBranch.Render(strings.Repeat("│ ", row.Depth))
		label := row.Node.Label()
		if row.Cyclic {
			label += " (cycle)"
		}
		line := it.marker(row) + label
		switch {
		case index == it.cursor:
			line = styles.ListItemSelected.Render(line)
		case row.Cyclic:
			line = styles.TreeCycle.Render(line)
		case row.Node.HasChildren():
			line = styles.Title.Render(line)
		default:
			line = styles.TreeLeaf.Render(line)
		}
		lines = append(lines, indent+line)
	}
	return strings.Join(lines, "\n")
}
