package model

import (
	"bytes"
	"encoding/csv"
	"os"
	"strconv"

	"github.com/pkg/errors"
)

// Reader implementors instantiate a dataset from a byte stream.
type Reader interface {
	ReadDataset(data []byte) ([]Point, error)
}

// CSVReader reads one point per record, one dimension per field.
type CSVReader struct{}

// ReadDataset parses CSV records into points. The CSV reader already
// enforces a rectangular record shape.
func (r CSVReader) ReadDataset(data []byte) ([]Point, error) {
	rd := csv.NewReader(bytes.NewReader(data))
	rd.TrimLeadingSpace = true

	recs, err := rd.ReadAll()
	if err != nil {
		return nil, errors.Wrap(err, "Could not parse CSV records")
	}

	points := make([]Point, len(recs))
	for i, rec := range recs {
		p := make(Point, len(rec))
		for j, field := range rec {
			val, err := strconv.ParseFloat(field, 64)
			if err != nil {
				return nil, errors.Wrapf(err, "Row %d field %d is not a number: %q", i, j, field)
			}
			p[j] = val
		}
		points[i] = p
	}

	return points, nil
}

// NewDatasetFromFile initializes and creates a dataset from the specified source.
func NewDatasetFromFile(r Reader, filename string) ([]Point, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, errors.Wrapf(err, "Could not READ dataset from %s", filename)
	}

	points, err := r.ReadDataset(data)
	if err != nil {
		return nil, errors.Wrapf(err, "Could not PARSE dataset from %s", filename)
	}

	err = CheckDataset(points)
	if err != nil {
		return nil, errors.Wrap(err, "Parsed dataset is not valid")
	}

	return points, nil
}
