package partition

import (
	"sync"

	"github.com/bhclab/rbhc/buffer"
)

// Progress collects leaf diagnostics during a build: totals plus a ring of
// the most recent leaf sizes. Safe for concurrent use, so it can serve as
// the OnLeaf callback in parallel builds.
type Progress struct {
	mu         sync.Mutex
	leaves     int
	rows       int
	degenerate int
	recent     *buffer.CircularInt
}

// NewProgress returns a collector retaining the recentSize most recent leaf
// sizes.
func NewProgress(recentSize int) *Progress {
	return &Progress{
		recent: buffer.NewCircularInt(recentSize),
	}
}

// Observe records one leaf event. Use it as Builder.OnLeaf.
func (p *Progress) Observe(e LeafEvent) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.leaves++
	p.rows += e.Rows
	if e.Degenerate {
		p.degenerate++
	}
	p.recent.Add(e.Rows)
}

// Leaves is the number of terminal leaves reached so far.
func (p *Progress) Leaves() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.leaves
}

// Rows is the total number of rows across reached leaves.
func (p *Progress) Rows() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.rows
}

// Degenerate is the number of leaves reached through a degenerate probe
// split rather than the small-subset branch.
func (p *Progress) Degenerate() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.degenerate
}

// RecentSizes returns the retained most-recent leaf sizes, oldest first.
func (p *Progress) RecentSizes() []int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.recent.Values()
}
