// Command locus compares countries against weighted criteria hierarchies.
package main

import (
	"fmt"
	"os"

	"github.com/locusproject/locus/cmd"
	"github.com/locusproject/locus/internal/statestore"
)

func main() {
	// Wire the concrete store manager into the command layer so saved
	// sessions resolve during setup.
	cmd.SetStoreManager(statestore.Manager)

	err := cmd.Execute()

	// Not deferred: os.Exit below would skip a deferred close.
	statestore.CloseStore()
	if perr := cmd.StopProfiling(); perr != nil && err == nil {
		err = perr
	}

	if err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
