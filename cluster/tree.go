// Package cluster implements exact agglomerative Bayesian hierarchical
// clustering under a CRP mixture model. It is quadratic in the number of
// rows and is meant for subsamples and small terminal subsets; the partition
// package scales it to large datasets.
package cluster

import (
	"github.com/bhclab/rbhc/model"
)

// Tree is one node of a Bayesian hierarchical cluster (merge) tree. A leaf
// holds a single point and has nil children. LogPi is the log prior mass
// that this node's points form a single cluster under the CRP rather than
// the merge of its two subtrees; a leaf has LogPi == 0.
type Tree struct {
	Points  []model.Point // member rows of this subtree
	LogPi   float64       // log p(points are one cluster) under the CRP prior
	LogML   float64       // log marginal likelihood of the points as one cluster
	LogProb float64       // log p(D|T) for the whole subtree
	Left    *Tree
	Right   *Tree

	logD float64 // CRP weight d_k carried through the merge recursion
}

// IsLeaf reports whether the node holds a single unmerged point.
func (t *Tree) IsLeaf() bool {
	return t.Left == nil && t.Right == nil
}

// Size is the number of rows in the subtree.
func (t *Tree) Size() int {
	return len(t.Points)
}
