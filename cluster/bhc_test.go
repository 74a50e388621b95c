package cluster

import (
	"fmt"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bhclab/rbhc/model"
)

func testModel(t *testing.T) *model.NormalGamma {
	ng, err := model.NewNormalGamma(0, 1, 1, 1)
	if err != nil {
		t.Fatalf("could not build test model: %v", err)
	}
	return ng
}

func pointKeys(points []model.Point) []string {
	keys := make([]string, len(points))
	for i, p := range points {
		keys[i] = fmt.Sprintf("%v", p)
	}
	sort.Strings(keys)
	return keys
}

func TestBHCValidation(t *testing.T) {
	assert := assert.New(t)

	_, err := NewBHC(nil)
	assert.Error(err)

	b, err := NewBHC(testModel(t))
	assert.NoError(err)

	_, err = b.Cluster(nil, 1.0)
	assert.Error(err)

	_, err = b.Cluster([]model.Point{{1.0}}, 0.0)
	assert.Error(err)

	_, err = b.Cluster([]model.Point{{1.0}}, -2.0)
	assert.Error(err)
}

func TestBHCSinglePoint(t *testing.T) {
	assert := assert.New(t)

	b, err := NewBHC(testModel(t))
	assert.NoError(err)

	tree, err := b.Cluster([]model.Point{{1.5, -2.0}}, 1.0)
	assert.NoError(err)
	assert.True(tree.IsLeaf())
	assert.Nil(tree.Left)
	assert.Nil(tree.Right)
	assert.Equal(1, tree.Size())
	assert.Equal(0.0, tree.LogPi)
}

func TestBHCTwoPoints(t *testing.T) {
	assert := assert.New(t)

	b, err := NewBHC(testModel(t))
	assert.NoError(err)

	points := []model.Point{{0.0}, {0.1}}
	tree, err := b.Cluster(points, 1.0)
	assert.NoError(err)

	assert.False(tree.IsLeaf())
	assert.Equal(2, tree.Size())
	assert.True(tree.Left.IsLeaf())
	assert.True(tree.Right.IsLeaf())
	assert.True(tree.LogPi <= 0)
	assert.Equal(pointKeys(points), pointKeys(tree.Points))
}

func TestBHCSeparatedBlobs(t *testing.T) {
	assert := assert.New(t)

	b, err := NewBHC(testModel(t))
	assert.NoError(err)

	var points []model.Point
	for i := 0; i < 6; i++ {
		points = append(points, model.Point{0.0 + 0.01*float64(i), 0.0})
		points = append(points, model.Point{10.0 + 0.01*float64(i), 10.0})
	}

	tree, err := b.Cluster(points, 1.0)
	assert.NoError(err)
	assert.Equal(12, tree.Size())
	assert.Equal(pointKeys(points), pointKeys(tree.Points))

	// The root split should separate the two blobs
	assert.False(tree.IsLeaf())
	for _, side := range []*Tree{tree.Left, tree.Right} {
		assert.Equal(6, side.Size())
		near := side.Points[0][0] < 5.0
		for _, p := range side.Points {
			assert.Equal(near, p[0] < 5.0, "blob split mixes points: %v", p)
		}
	}
}
