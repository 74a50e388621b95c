package cmd

import (
	"time"

	"github.com/pkg/errors"

	"github.com/bhclab/rbhc/model"
	"github.com/bhclab/rbhc/partition"
	"github.com/bhclab/rbhc/rand"
)

// runBuild loads the dataset and assembles the approximate cluster tree.
// Shared by the build and dot commands.
func runBuild(sp *startupParams) (*partition.Tree, *partition.Progress, error) {
	sp.out.Printf("Reading dataset from %s\n", sp.dataFile)
	points, err := model.NewDatasetFromFile(model.CSVReader{}, sp.dataFile)
	if err != nil {
		return nil, nil, err
	}
	sp.out.Printf("Dataset has %d rows of dim %d\n", len(points), len(points[0]))

	dm, err := model.NewNormalGamma(0.0, 1.0, 1.0, 1.0)
	if err != nil {
		return nil, nil, err
	}

	b, err := partition.NewBuilder(dm, sp.subsampleSize, sp.alpha)
	if err != nil {
		return nil, nil, err
	}
	b.Workers = sp.workers

	prog := partition.NewProgress(32)
	b.OnLeaf = func(e partition.LeafEvent) {
		prog.Observe(e)
		if sp.verbose {
			sp.out.Printf("reached leaf with %d rows\n", e.Rows)
		}
	}

	gen, err := rand.NewGenerator(sp.randomSeed)
	if err != nil {
		return nil, nil, err
	}

	start := time.Now()
	tree, err := b.Build(points, gen)
	if err != nil {
		return nil, nil, errors.Wrap(err, "Build failed")
	}
	sp.out.Printf("Build finished in %v\n", time.Since(start))

	return tree, prog, nil
}

// BuildRun builds the tree and reports leaf diagnostics.
func BuildRun(sp *startupParams) error {
	tree, prog, err := runBuild(sp)
	if err != nil {
		return err
	}

	sp.out.Printf("Leaves:            %d\n", prog.Leaves())
	sp.out.Printf("Degenerate splits: %d\n", prog.Degenerate())
	sp.out.Printf("Rows reached:      %d of %d\n", prog.Rows(), tree.Size())
	sp.out.Printf("Recent leaf sizes: %v\n", prog.RecentSizes())

	sp.trace.Printf("leaves=%d degenerate=%d rows=%d\n", prog.Leaves(), prog.Degenerate(), prog.Rows())

	return nil
}
