package partition

import (
	"github.com/pkg/errors"

	"github.com/bhclab/rbhc/cluster"
	"github.com/bhclab/rbhc/model"
	"github.com/bhclab/rbhc/rand"
)

// Node is one subset of the data during recursive partitioning. A Node never
// changes after construction: a split builds two fresh children and the
// parent is discarded; it does not appear in the final tree.
type Node struct {
	Data  []model.Point
	Alpha float64
}

func newNode(data []model.Point, alpha float64) *Node {
	return &Node{
		Data:  data,
		Alpha: alpha,
	}
}

// outcome is the result of one split decision: either two child nodes (a
// filtered split happened) or the terminal exact cluster tree.
type outcome struct {
	didSplit    bool
	left, right *Node
	leaf        *cluster.Tree
	degenerate  bool // large node whose probe tree had no usable top split
}

// decide routes a node. Subsets larger than the subsample size attempt a
// randomized filtered split; anything else (n == m included - the comparison
// is strictly greater-than) is clustered exactly and becomes a terminal
// leaf. A one-row node takes the terminal branch like any other small one.
func (b *Builder) decide(n *Node, gen *rand.Generator) (*outcome, error) {
	degenerate := false

	if len(n.Data) > b.SubsampleSize {
		out, err := b.splitNode(n, gen)
		if err != nil {
			return nil, err
		}
		if out != nil {
			return out, nil
		}

		// The probe tree refused to split. Policy: treat as "no split
		// occurred" and fall through to the terminal branch.
		degenerate = true
	}

	leaf, err := b.Clusterer.Cluster(n.Data, n.Alpha)
	if err != nil {
		return nil, errors.Wrapf(err, "Exact clustering failed on a %d row node", len(n.Data))
	}

	return &outcome{leaf: leaf, degenerate: degenerate}, nil
}

// splitNode draws the subsample, clusters it into a probe tree, and filters
// the rest of the node's rows through the probe's top split. Returns nil
// (and no error) when the probe tree has no two non-empty children to seed
// the filter with.
func (b *Builder) splitNode(n *Node, gen *rand.Generator) (*outcome, error) {
	sub, err := gen.SampleIndices(b.SubsampleSize, len(n.Data))
	if err != nil {
		return nil, errors.Wrapf(err, "Could not subsample a %d row node", len(n.Data))
	}

	sampled := make([]model.Point, len(sub))
	inSample := make(map[int]bool, len(sub))
	for i, idx := range sub {
		sampled[i] = n.Data[idx]
		inSample[idx] = true
	}

	probe, err := b.Clusterer.Cluster(sampled, n.Alpha)
	if err != nil {
		return nil, errors.Wrapf(err, "Probe clustering failed on %d sampled rows", len(sampled))
	}

	if probe.Left == nil || probe.Right == nil ||
		len(probe.Left.Points) == 0 || len(probe.Right.Points) == 0 {
		return nil, nil
	}

	leftData, rightData, err := b.filterRemaining(n, inSample, probe)
	if err != nil {
		return nil, err
	}

	out := &outcome{
		didSplit: true,
		left:     newNode(leftData, n.Alpha),
		right:    newNode(rightData, n.Alpha),
	}

	return out, nil
}

// filterRemaining assigns every row outside the subsample to the probe
// tree's left or right side. The sides grow as rows are assigned: each score
// conditions on everything already placed on that side during this same
// pass, not on the original seed alone. Ties go left.
func (b *Builder) filterRemaining(n *Node, inSample map[int]bool, probe *cluster.Tree) ([]model.Point, []model.Point, error) {
	leftSeed := probe.Left
	rightSeed := probe.Right

	// Full capacity up front: the scoring appends below reuse the spare
	// capacity, and the winning side's real append lands on the same slot.
	leftData := make([]model.Point, len(leftSeed.Points), len(n.Data))
	copy(leftData, leftSeed.Points)
	rightData := make([]model.Point, len(rightSeed.Points), len(n.Data))
	copy(rightData, rightSeed.Points)

	for idx, row := range n.Data {
		if inSample[idx] {
			continue
		}

		leftML, err := b.Model.LogMarginalLikelihood(append(leftData, row))
		if err != nil {
			return nil, nil, errors.Wrapf(err, "Model evaluation failed filtering row %d of a %d row node", idx, len(n.Data))
		}

		rightML, err := b.Model.LogMarginalLikelihood(append(rightData, row))
		if err != nil {
			return nil, nil, errors.Wrapf(err, "Model evaluation failed filtering row %d of a %d row node", idx, len(n.Data))
		}

		if leftSeed.LogPi+leftML >= rightSeed.LogPi+rightML {
			leftData = append(leftData, row)
		} else {
			rightData = append(rightData, row)
		}
	}

	return leftData, rightData, nil
}
