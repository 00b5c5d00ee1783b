package sbom_test

import (
	"encoding/json"
	"fmt"
	"strings"
	"testing"

	"github.com/joshyorko/sbomdesk/sbom"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWalkStopsAtCycles(t *testing.T) {
	must := require.New(t)

	// R is the only root; A and B form a cycle below it.
	roots := sbom.BuildForest([]sbom.DependencyEdge{edge("R", "A"), edge("A", "B"), edge("B", "A")})
	must.Len(roots, 1)

	type visit struct {
		ref    string
		depth  int
		cyclic bool
	}
	var visits []visit
	sbom.Walk(roots, func(node *sbom.TreeNode, depth int, cyclic bool) bool {
		visits = append(visits, visit{node.Ref, depth, cyclic})
		return true
	})

	must.Equal([]visit{
		{"R", 0, false},
		{"A", 1, false},
		{"B", 2, false},
		{"A", 3, true},
	}, visits)
}

func TestWalkCanPrune(t *testing.T) {
	roots := sbom.BuildForest([]sbom.DependencyEdge{edge("A", "B"), edge("B", "C"), edge("C")})

	var refs []string
	sbom.Walk(roots, func(node *sbom.TreeNode, depth int, cyclic bool) bool {
		refs = append(refs, node.Ref)
		return depth < 1
	})

	assert.Equal(t, []string{"A", "B"}, refs)
}

func TestRenderTree(t *testing.T) {
	roots := sbom.BuildForest([]sbom.DependencyEdge{
		edge("app", "lib-a", "lib-b"),
		edge("lib-a", "lib-c"),
		edge("lib-b"),
		edge("lib-c"),
		edge("", "lib-b"),
	})

	expected := "" +
		"app\n" +
		"+-- lib-a\n" +
		"|   `-- lib-c\n" +
		"`-- lib-b\n" +
		"N/A\n" +
		"`-- lib-b\n"
	assert.Equal(t, expected, sbom.TreeText(roots, sbom.AsciiTree))
}

func TestRenderTreeMarksCycles(t *testing.T) {
	roots := sbom.BuildForest([]sbom.DependencyEdge{edge("R", "A"), edge("A", "A")})

	expected := "" +
		"R\n" +
		"└── A\n" +
		"    └── A (cycle)\n"
	assert.Equal(t, expected, sbom.TreeText(roots, sbom.UnicodeTree))
}

func TestMaterializeCutsCycles(t *testing.T) {
	must := require.New(t)

	root := sbom.DependencyEdge{Ref: "R", DependsOn: []string{"A"}, Extra: map[string]json.RawMessage{"scope": json.RawMessage(`"required"`)}}
	roots := sbom.BuildForest([]sbom.DependencyEdge{root, edge("A", "B"), edge("B", "A")})

	blob, err := json.Marshal(sbom.Materialize(roots))
	must.NoError(err)
	must.JSONEq(`[
	  {"ref": "R", "scope": "required", "children": [
	    {"ref": "A", "children": [
	      {"ref": "B", "children": [
	        {"ref": "A", "cycle": true}
	      ]}
	    ]}
	  ]}
	]`, string(blob))
}

// diamonds chains layers of two nodes where both nodes of a layer depend on
// both nodes of the next one, so the number of paths doubles per layer.
func diamonds(layers int) []sbom.DependencyEdge {
	edges := make([]sbom.DependencyEdge, 0, 2*layers)
	for layer := 0; layer < layers; layer++ {
		a, b := fmt.Sprintf("a%d", layer), fmt.Sprintf("b%d", layer)
		if layer == layers-1 {
			edges = append(edges, edge(a), edge(b))
			continue
		}
		nextA, nextB := fmt.Sprintf("a%d", layer+1), fmt.Sprintf("b%d", layer+1)
		edges = append(edges, edge(a, nextA, nextB), edge(b, nextA, nextB))
	}
	return edges
}

func TestRenderTreeExpandsSharedNodesOnce(t *testing.T) {
	must := require.New(t)

	edges := diamonds(16)
	links := 0
	for _, each := range edges {
		links += len(each.DependsOn)
	}
	must.Equal(60, links)

	text := sbom.TreeText(sbom.BuildForest(edges), sbom.AsciiTree)
	lines := strings.Split(strings.TrimSuffix(text, "\n"), "\n")
	must.LessOrEqual(len(lines), 2+links)
	must.Equal(28, strings.Count(text, "(shown above)"))
	must.Equal("a0", lines[0])
	must.Equal("b0", lines[len(lines)-3])
	must.Equal("+-- a1 (shown above)", lines[len(lines)-2])
	must.Equal("`-- b1 (shown above)", lines[len(lines)-1])
}

func TestRenderTreeMarksSharedSubtree(t *testing.T) {
	roots := sbom.BuildForest([]sbom.DependencyEdge{
		edge("A", "C"),
		edge("B", "C"),
		edge("C", "D"),
		edge("D"),
	})

	expected := "" +
		"A\n" +
		"`-- C\n" +
		"    `-- D\n" +
		"B\n" +
		"`-- C (shown above)\n"
	assert.Equal(t, expected, sbom.TreeText(roots, sbom.AsciiTree))
}

func TestMaterializeExpandsSharedNodesOnce(t *testing.T) {
	must := require.New(t)

	blob, err := json.Marshal(sbom.Materialize(sbom.BuildForest(diamonds(16))))
	must.NoError(err)
	must.Less(len(blob), 4096)
	must.Equal(28, strings.Count(string(blob), `"shared":true`))

	roots := sbom.BuildForest([]sbom.DependencyEdge{edge("A", "C"), edge("B", "C"), edge("C", "D"), edge("D")})
	blob, err = json.Marshal(sbom.Materialize(roots))
	must.NoError(err)
	must.JSONEq(`[
	  {"ref": "A", "children": [{"ref": "C", "children": [{"ref": "D"}]}]},
	  {"ref": "B", "children": [{"ref": "C", "shared": true}]}
	]`, string(blob))
}
