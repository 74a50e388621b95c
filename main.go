package main

import "github.com/bhclab/rbhc/cmd"

// TODO: streaming dataset reader for inputs too large to hold in memory
// TODO: checkpointing for long builds (freeze the work stack and continue)

func main() {
	cmd.Execute()
}
