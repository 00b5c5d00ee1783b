package sbom

import "encoding/json"

// TreeNode is a component in the dependency forest. Children are the
// components it depends on, in dependsOn order. Nodes are never modified
// after the forest is built.
type TreeNode struct {
	Ref      string
	Children []*TreeNode
	Extra    map[string]json.RawMessage
}

func (it *TreeNode) Label() string {
	return orNotAvailable(it.Ref)
}

func (it *TreeNode) HasChildren() bool {
	return len(it.Children) > 0
}

// Forest is the result of building the dependency tree from a flat edge list.
type Forest struct {
	Roots      []*TreeNode
	order      []edgeKey
	lookup     map[edgeKey]*TreeNode
	duplicates []string
}

// edgeKey keeps edges without a ref apart from edges whose ref is "".
// dependsOn entries can only name the latter.
type edgeKey struct {
	ref     string
	missing bool
}

func keyOf(edge DependencyEdge) edgeKey {
	return edgeKey{ref: edge.Ref, missing: !edge.HasRef()}
}

// BuildForest converts dependency edges into the forest of top-level
// components. A component is top level when no edge lists it in dependsOn;
// having no dependencies of its own does not make it one.
//
// Edges sharing a ref collapse into one node carrying the later edge's
// attributes, at the position of the first. References that match no edge
// are dropped. An edge without a ref never matches a dependsOn entry, not
// even "". The input is not modified.
func BuildForest(edges []DependencyEdge) []*TreeNode {
	return NewForest(edges).Roots
}

// NewForest builds the forest and keeps the ref lookup around.
func NewForest(edges []DependencyEdge) *Forest {
	forest := &Forest{
		lookup: make(map[edgeKey]*TreeNode, len(edges)),
		order:  make([]edgeKey, 0, len(edges)),
	}

	for _, edge := range edges {
		key := keyOf(edge)
		if _, seen := forest.lookup[key]; seen {
			forest.duplicates = append(forest.duplicates, edge.Ref)
		} else {
			forest.order = append(forest.order, key)
		}
		forest.lookup[key] = &TreeNode{
			Ref:   edge.Ref,
			Extra: fields(edge.Extra).clone(),
		}
	}

	dependedOn := make(map[string]bool)
	for _, edge := range edges {
		parent := forest.lookup[keyOf(edge)]
		for _, childRef := range edge.DependsOn {
			dependedOn[childRef] = true
			if child, ok := forest.lookup[edgeKey{ref: childRef}]; ok {
				parent.Children = append(parent.Children, child)
			}
		}
	}

	forest.Roots = make([]*TreeNode, 0, len(forest.order))
	for _, key := range forest.order {
		if key.missing || !dependedOn[key.ref] {
			forest.Roots = append(forest.Roots, forest.lookup[key])
		}
	}
	return forest
}

// Lookup returns the node built for the edges carrying ref.
func (it *Forest) Lookup(ref string) (*TreeNode, bool) {
	node, ok := it.lookup[edgeKey{ref: ref}]
	return node, ok
}

// Len is the number of distinct refs.
func (it *Forest) Len() int {
	return len(it.order)
}

// Duplicates lists refs that appeared more than once, once per extra
// occurrence. Duplicates are not an error; the later edge wins.
func (it *Forest) Duplicates() []string {
	result := make([]string, len(it.duplicates))
	copy(result, it.duplicates)
	return result
}
