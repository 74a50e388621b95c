package rand

import (
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGeneratorDeterminism(t *testing.T) {
	assert := assert.New(t)

	g1, err := NewGenerator(42)
	assert.NoError(err)
	g2, err := NewGenerator(42)
	assert.NoError(err)

	for i := 0; i < 64; i++ {
		assert.Equal(g1.Int63(), g2.Int63())
	}
}

func TestGeneratorBounds(t *testing.T) {
	assert := assert.New(t)

	g, err := NewGenerator(42)
	assert.NoError(err)

	for i := 0; i < 512; i++ {
		v := g.Int63n(10)
		assert.True(v >= 0 && v < 10, "Int63n out of bounds: %d", v)

		w := g.Int31n(7)
		assert.True(w >= 0 && w < 7, "Int31n out of bounds: %d", w)

		f := g.Float64()
		assert.True(f >= 0.0 && f < 1.0, "Float64 out of bounds: %f", f)
	}
}

func TestGeneratorFork(t *testing.T) {
	assert := assert.New(t)

	g1, err := NewGenerator(42)
	assert.NoError(err)
	g2, err := NewGenerator(42)
	assert.NoError(err)

	f1, err := g1.Fork()
	assert.NoError(err)
	f2, err := g2.Fork()
	assert.NoError(err)

	// Forks of identical parents match each other, not the parent
	matchedParent := true
	for i := 0; i < 64; i++ {
		v1 := f1.Int63()
		assert.Equal(v1, f2.Int63())
		if v1 != g1.Int63() {
			matchedParent = false
		}
	}
	assert.False(matchedParent)
}

func TestSampleIndices(t *testing.T) {
	assert := assert.New(t)

	g, err := NewGenerator(42)
	assert.NoError(err)

	// m == n is a permutation
	idx, err := g.SampleIndices(8, 8)
	assert.NoError(err)
	assert.Len(idx, 8)
	sorted := append([]int{}, idx...)
	sort.Ints(sorted)
	assert.Equal([]int{0, 1, 2, 3, 4, 5, 6, 7}, sorted)

	// m < n gives distinct in-range indices
	idx, err = g.SampleIndices(5, 100)
	assert.NoError(err)
	assert.Len(idx, 5)
	seen := make(map[int]bool)
	for _, i := range idx {
		assert.True(i >= 0 && i < 100)
		assert.False(seen[i], "Duplicate index %d", i)
		seen[i] = true
	}

	// m == 0 is legal and empty
	idx, err = g.SampleIndices(0, 4)
	assert.NoError(err)
	assert.Len(idx, 0)
}

func TestSampleIndicesInsufficient(t *testing.T) {
	assert := assert.New(t)

	g, err := NewGenerator(42)
	assert.NoError(err)

	idx, err := g.SampleIndices(9, 4)
	assert.Nil(idx)
	assert.Error(err)

	var ie *InsufficientDataError
	assert.ErrorAs(err, &ie)
	assert.Equal(9, ie.Requested)
	assert.Equal(4, ie.Available)

	_, err = g.SampleIndices(-1, 4)
	assert.Error(err)
}
