package model

import (
	"github.com/pkg/errors"
)

// RandIndex measures the agreement between two flat cluster labelings of the
// same points: the fraction of point pairs the two labelings treat the same
// way (both together or both apart). 1.0 is perfect agreement. Label values
// themselves carry no meaning, only the partitions they induce.
func RandIndex(a []int, b []int) (float64, error) {
	if len(a) != len(b) {
		return 0, errors.Errorf("Labeling size mismatch %d != %d", len(a), len(b))
	}
	if len(a) < 2 {
		return 0, errors.Errorf("Need at least 2 labels to score, have %d", len(a))
	}

	agree := 0
	total := 0
	for i := 0; i < len(a); i++ {
		for j := i + 1; j < len(a); j++ {
			sameA := a[i] == a[j]
			sameB := b[i] == b[j]
			if sameA == sameB {
				agree++
			}
			total++
		}
	}

	return float64(agree) / float64(total), nil
}
