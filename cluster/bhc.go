package cluster

import (
	"math"

	"github.com/pkg/errors"
	"gonum.org/v1/gonum/floats"

	"github.com/bhclab/rbhc/model"
)

// BHC is the exact agglomerative Bayesian hierarchical clusterer: starting
// from single-point leaves it greedily merges the pair of subtrees with the
// highest posterior probability of being one cluster, until a single root
// remains. Deterministic up to tie-breaking (the first pair found with the
// maximum score wins).
type BHC struct {
	Model model.DataModel
}

// NewBHC creates a clusterer over the given data model.
func NewBHC(dm model.DataModel) (*BHC, error) {
	if dm == nil {
		return nil, errors.New("No data model supplied")
	}

	b := &BHC{
		Model: dm,
	}

	return b, nil
}

// candidate is a possible merge of two active subtrees. Indices refer to the
// active slice; merged entries are nilled out rather than compacted so the
// indices stay stable across rounds.
type candidate struct {
	i, j int
	tree *Tree
}

// Cluster builds the full merge tree over the given rows with CRP
// concentration alpha. A single row degrades to a single-leaf tree with no
// children.
func (b *BHC) Cluster(points []model.Point, alpha float64) (*Tree, error) {
	if alpha <= 0 {
		return nil, errors.Errorf("Invalid concentration %f - must be positive", alpha)
	}
	if len(points) < 1 {
		return nil, errors.New("No points to cluster")
	}

	logAlpha := math.Log(alpha)

	active := make([]*Tree, len(points))
	for i, p := range points {
		ml, err := b.Model.LogMarginalLikelihood([]model.Point{p})
		if err != nil {
			return nil, errors.Wrapf(err, "Marginal likelihood failed on single point %d", i)
		}
		active[i] = &Tree{
			Points:  []model.Point{p},
			LogPi:   0,
			LogML:   ml,
			LogProb: ml,
			logD:    logAlpha,
		}
	}

	if len(active) == 1 {
		return active[0], nil
	}

	// All initial pairs
	cands := make([]candidate, 0, len(active)*(len(active)-1)/2)
	for i := 0; i < len(active); i++ {
		for j := i + 1; j < len(active); j++ {
			t, err := b.merge(active[i], active[j], logAlpha)
			if err != nil {
				return nil, err
			}
			cands = append(cands, candidate{i, j, t})
		}
	}

	remaining := len(active)
	for remaining > 1 {
		// Highest posterior merge probability r_k = pi_k ML_k / p(D_k|T_k)
		best := 0
		bestScore := math.Inf(-1)
		for c, cand := range cands {
			score := cand.tree.LogPi + cand.tree.LogML - cand.tree.LogProb
			if c == 0 || score > bestScore {
				best = c
				bestScore = score
			}
		}

		winner := cands[best]
		active[winner.i] = winner.tree
		active[winner.j] = nil
		remaining--

		// Drop candidates touching the absorbed slot, rebuild the ones
		// touching the merged slot.
		kept := cands[:0]
		for _, cand := range cands {
			switch {
			case cand.i == winner.i && cand.j == winner.j:
				continue
			case cand.i == winner.j || cand.j == winner.j:
				continue
			case cand.i == winner.i || cand.j == winner.i:
				other := cand.i
				if other == winner.i {
					other = cand.j
				}
				t, err := b.merge(active[winner.i], active[other], logAlpha)
				if err != nil {
					return nil, err
				}
				lo, hi := winner.i, other
				if lo > hi {
					lo, hi = hi, lo
				}
				kept = append(kept, candidate{lo, hi, t})
			default:
				kept = append(kept, cand)
			}
		}
		cands = kept
	}

	for _, t := range active {
		if t != nil {
			return t, nil
		}
	}

	return nil, errors.New("BUG: merge loop finished with no active tree")
}

// merge scores the hypothesis that l and r belong to one cluster. The CRP
// weight recursion d_k = alpha*Gamma(n_k) + d_l*d_r runs in log space.
func (b *BHC) merge(l *Tree, r *Tree, logAlpha float64) (*Tree, error) {
	points := make([]model.Point, 0, len(l.Points)+len(r.Points))
	points = append(points, l.Points...)
	points = append(points, r.Points...)

	lg, _ := math.Lgamma(float64(len(points)))
	logD := floats.LogSumExp([]float64{logAlpha + lg, l.logD + r.logD})
	logPi := logAlpha + lg - logD

	ml, err := b.Model.LogMarginalLikelihood(points)
	if err != nil {
		return nil, errors.Wrapf(err, "Marginal likelihood failed on %d point merge", len(points))
	}

	logProb := floats.LogSumExp([]float64{
		logPi + ml,
		(l.logD + r.logD - logD) + l.LogProb + r.LogProb,
	})

	t := &Tree{
		Points:  points,
		LogPi:   logPi,
		LogML:   ml,
		LogProb: logProb,
		Left:    l,
		Right:   r,
		logD:    logD,
	}

	return t, nil
}
