// Command netsim runs the reference message exchange on a simulated network.
package main

import (
	"os"

	"github.com/tebeka/atexit"
)

func main() {
	err := newRootCmd(os.Stdout).Execute()
	if err != nil {
		atexit.Exit(1)
	}

	atexit.Exit(0)
}
