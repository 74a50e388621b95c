package buffer

// CircularInt is a circular buffer of ints that keeps the most recent
// BufSize values appended to it.
type CircularInt struct {
	buffer    []int // actual storage
	pos       int   // Current position in buffer
	BufSize   int   // BufSize is the fixed number of ints maintained in memory
	Count     int   // Count is the number of ints in memory. Will always be <= BufSize
	TotalSeen int64 // TotalSeen is the total number of times Add has been called
}

// NewCircularInt creates a new circular buffer of totalSize. A totalSize
// below 1 is bumped to 1.
func NewCircularInt(totalSize int) *CircularInt {
	if totalSize < 1 {
		totalSize = 1
	}

	return &CircularInt{
		buffer:  make([]int, totalSize),
		pos:     0,
		BufSize: totalSize,
		Count:   0,
	}
}

// Add appends the given int to the buffer, overwriting the oldest entry
func (c *CircularInt) Add(i int) error {
	c.TotalSeen++

	c.buffer[c.pos] = i
	c.pos = (c.pos + 1) % c.BufSize

	c.Count++
	if c.Count > c.BufSize {
		c.Count = c.BufSize // max out
	}

	return nil
}

// Values returns the stored ints in the order they were appended, oldest
// first.
func (c *CircularInt) Values() []int {
	vals := make([]int, 0, c.Count)

	start := (c.pos - c.Count + c.BufSize) % c.BufSize
	for i := 0; i < c.Count; i++ {
		vals = append(vals, c.buffer[(start+i)%c.BufSize])
	}

	return vals
}
