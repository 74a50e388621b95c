package partition

import (
	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"

	"github.com/bhclab/rbhc/cluster"
	"github.com/bhclab/rbhc/model"
	"github.com/bhclab/rbhc/rand"
)

// A Clusterer produces a fully merged cluster tree over a set of rows. It
// must accept a single row and degrade to a single-leaf tree for it.
// cluster.BHC is the production implementation.
type Clusterer interface {
	Cluster(points []model.Point, alpha float64) (*cluster.Tree, error)
}

// LeafEvent describes one terminal leaf reached during a build.
type LeafEvent struct {
	Rows       int  // rows in the terminal leaf
	Degenerate bool // the node was large enough to split but its probe tree refused
}

// Builder assembles an approximate cluster tree by recursive randomized
// partitioning. SubsampleSize and Alpha are held constant through the whole
// recursion. Workers > 1 enables the parallel build mode; the result is
// identical to the sequential one for the same seed. OnLeaf, when set, is
// called at every terminal leaf and must be safe for concurrent use when
// Workers > 1.
type Builder struct {
	SubsampleSize int
	Alpha         float64
	Model         model.DataModel
	Clusterer     Clusterer
	Workers       int
	OnLeaf        func(LeafEvent)
}

// DefaultSubsampleSize is the recommended subsample size m.
const DefaultSubsampleSize = 50

// NewBuilder validates and returns a builder over the given data model. The
// exact clusterer defaults to cluster.BHC on the same model; tests and
// callers with their own exact procedure may replace it.
func NewBuilder(dm model.DataModel, subsampleSize int, alpha float64) (*Builder, error) {
	if dm == nil {
		return nil, errors.New("No data model supplied")
	}
	if subsampleSize < 1 {
		return nil, errors.Errorf("Invalid subsample size %d - must be positive", subsampleSize)
	}
	if alpha <= 0 {
		return nil, errors.Errorf("Invalid concentration %f - must be positive", alpha)
	}

	bhc, err := cluster.NewBHC(dm)
	if err != nil {
		return nil, err
	}

	b := &Builder{
		SubsampleSize: subsampleSize,
		Alpha:         alpha,
		Model:         dm,
		Clusterer:     bhc,
	}

	return b, nil
}

// workItem is one pending node together with the result slot it must fill
// and the randomness source it owns.
type workItem struct {
	node *Node
	slot *Tree
	gen  *rand.Generator
}

// Build assembles the approximate cluster tree over the whole dataset. The
// build is all-or-nothing: the first failure from the model or the clusterer
// aborts it and no partial tree is returned.
func (b *Builder) Build(data []model.Point, gen *rand.Generator) (*Tree, error) {
	if err := model.CheckDataset(data); err != nil {
		return nil, errors.Wrap(err, "Can not build over invalid dataset")
	}
	if gen == nil {
		return nil, errors.New("No random generator supplied")
	}

	root := &Tree{}
	item := workItem{node: newNode(data, b.Alpha), slot: root, gen: gen}

	var err error
	if b.Workers > 1 {
		err = b.runParallel(item)
	} else {
		err = b.runSequential(item)
	}
	if err != nil {
		return nil, err
	}

	return root, nil
}

// runSequential drains an explicit work stack. Recursion depth is bounded by
// the stack slice, not by call frames.
func (b *Builder) runSequential(root workItem) error {
	stack := []workItem{root}
	for len(stack) > 0 {
		it := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		next, err := b.process(it)
		if err != nil {
			return err
		}
		stack = append(stack, next...)
	}

	return nil
}

// runParallel fans work items out over a bounded worker group. Each task
// drains its own local stack and offers one child of every split to the
// pool; when the pool is full the child stays local, so tasks never block
// waiting on each other.
func (b *Builder) runParallel(root workItem) error {
	var g errgroup.Group
	g.SetLimit(b.Workers)

	var run func(workItem) error
	run = func(it workItem) error {
		stack := []workItem{it}
		for len(stack) > 0 {
			cur := stack[len(stack)-1]
			stack = stack[:len(stack)-1]

			next, err := b.process(cur)
			if err != nil {
				return err
			}

			if len(next) == 2 {
				handoff := next[1]
				if g.TryGo(func() error { return run(handoff) }) {
					next = next[:1]
				}
			}
			stack = append(stack, next...)
		}

		return nil
	}

	g.Go(func() error { return run(root) })
	return g.Wait()
}

// process resolves one work item: either the slot's leaf is filled or the
// two child items are returned. The generator is forked once per child in a
// fixed order, so the assembled tree depends only on the seed, never on the
// order items happen to execute in.
func (b *Builder) process(it workItem) ([]workItem, error) {
	out, err := b.decide(it.node, it.gen)
	if err != nil {
		return nil, err
	}

	if !out.didSplit {
		it.slot.Leaf = out.leaf
		if b.OnLeaf != nil {
			b.OnLeaf(LeafEvent{Rows: out.leaf.Size(), Degenerate: out.degenerate})
		}
		return nil, nil
	}

	leftGen, err := it.gen.Fork()
	if err != nil {
		return nil, err
	}
	rightGen, err := it.gen.Fork()
	if err != nil {
		return nil, err
	}

	it.slot.Left = &Tree{}
	it.slot.Right = &Tree{}

	next := []workItem{
		{node: out.left, slot: it.slot.Left, gen: leftGen},
		{node: out.right, slot: it.slot.Right, gen: rightGen},
	}

	return next, nil
}
