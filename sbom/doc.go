// Package sbom holds the scan record shapes returned by the scan service and
// turns the flat CycloneDX-style dependency list into a forest for display.
//
// The forest is a DAG-shaped view: a component depended on by several
// parents is the same *TreeNode under each of them, and cyclic input is
// kept as-is. Anything that walks the forest recursively must go through
// Walk, RenderTree or Materialize, which guard against cycles. RenderTree
// and Materialize also expand each shared node only once.
package sbom
