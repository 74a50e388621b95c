// Package partition implements randomized recursive partitioning for
// approximate Bayesian hierarchical clustering. Subsets larger than the
// subsample size are split by clustering a small random subsample and
// filtering the remaining rows through the subsample tree's top split;
// anything smaller is handed whole to the exact clusterer. Expected cost is
// O(n log n) against the exact procedure's O(n^2 log n).
package partition

import (
	"github.com/bhclab/rbhc/cluster"
	"github.com/bhclab/rbhc/model"
)

// Tree is the assembled approximate cluster tree. An internal node pairs the
// results of a split's two branches; a terminal node holds the exact cluster
// tree over a subset small enough to cluster directly. Exactly one of
// (Left, Right) and Leaf is set.
type Tree struct {
	Left  *Tree
	Right *Tree
	Leaf  *cluster.Tree
}

// IsLeaf reports whether the node is terminal.
func (t *Tree) IsLeaf() bool {
	return t.Leaf != nil
}

// Leaves returns the terminal exact cluster trees in left-to-right order.
func (t *Tree) Leaves() []*cluster.Tree {
	var leaves []*cluster.Tree

	// Explicit stack - split trees can be deep on unbalanced data
	stack := []*Tree{t}
	for len(stack) > 0 {
		cur := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if cur.IsLeaf() {
			leaves = append(leaves, cur.Leaf)
			continue
		}
		stack = append(stack, cur.Right, cur.Left)
	}

	return leaves
}

// Points returns every row reachable from the tree, in leaf order. Together
// the leaves partition the original dataset exactly.
func (t *Tree) Points() []model.Point {
	var points []model.Point
	for _, leaf := range t.Leaves() {
		points = append(points, leaf.Points...)
	}
	return points
}

// Size is the number of rows reachable from the tree.
func (t *Tree) Size() int {
	total := 0
	for _, leaf := range t.Leaves() {
		total += leaf.Size()
	}
	return total
}
