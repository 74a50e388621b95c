package cmd

import (
	"log"

	"github.com/bhclab/rbhc/partition"
)

// DotOutput builds the approximate cluster tree and writes a graphviz
// description of its split/leaf structure.
func DotOutput(sp *startupParams) error {
	tree, _, err := runBuild(sp)
	if err != nil {
		return err
	}

	var target *log.Logger
	if len(sp.traceFile) > 0 {
		sp.out.Printf("Writing tree to trace file %v\n", sp.traceFile)
		target = sp.trace
	} else {
		target = sp.out
	}

	// Start graph
	target.Printf("strict graph G {\n")

	// Walk with an explicit stack, numbering nodes as we discover them
	type entry struct {
		tree *partition.Tree
		id   int
	}

	nextID := 0
	stack := []entry{{tree, nextID}}
	nextID++

	for len(stack) > 0 {
		cur := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if cur.tree.IsLeaf() {
			target.Printf("    n%d [label=\"leaf (%d rows)\"];\n", cur.id, cur.tree.Leaf.Size())
			continue
		}

		target.Printf("    n%d [label=\"split\"];\n", cur.id)

		leftID, rightID := nextID, nextID+1
		nextID += 2
		target.Printf("    n%d -- n%d;\n", cur.id, leftID)
		target.Printf("    n%d -- n%d;\n", cur.id, rightID)

		stack = append(stack, entry{cur.tree.Right, rightID}, entry{cur.tree.Left, leftID})
	}

	// Finish graph
	target.Printf("}\n")

	return nil
}
