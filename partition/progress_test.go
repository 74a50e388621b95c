package partition

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestProgress(t *testing.T) {
	assert := assert.New(t)

	p := NewProgress(2)
	assert.Equal(0, p.Leaves())
	assert.Equal(0, p.Rows())
	assert.Equal(0, p.Degenerate())

	p.Observe(LeafEvent{Rows: 10})
	p.Observe(LeafEvent{Rows: 4, Degenerate: true})
	p.Observe(LeafEvent{Rows: 7})

	assert.Equal(3, p.Leaves())
	assert.Equal(21, p.Rows())
	assert.Equal(1, p.Degenerate())

	// Only the most recent sizes are retained, oldest first
	assert.Equal([]int{4, 7}, p.RecentSizes())
}
