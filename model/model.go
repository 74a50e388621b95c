package model

import (
	"github.com/pkg/errors"
)

// Point is a single data row: a fixed-dimension numeric vector.
type Point []float64

// A DataModel scores a finite set of points as a single mixture component,
// with the component's own parameters integrated out. Implementations must
// be pure: the same point set always yields the same value. The clustering
// code never calls a DataModel with zero points.
type DataModel interface {
	LogMarginalLikelihood(points []Point) (float64, error)
}

// CheckDataset returns an error if there is a problem with the dataset:
// no rows, an empty row, or rows of mixed dimension.
func CheckDataset(points []Point) error {
	if len(points) < 1 {
		return errors.New("Dataset has no rows")
	}

	dims := len(points[0])
	if dims < 1 {
		return errors.New("Dataset rows have no dimensions")
	}

	for i, p := range points {
		if len(p) != dims {
			return errors.Errorf("Row %d has dim %d but expected %d", i, len(p), dims)
		}
	}

	return nil
}
