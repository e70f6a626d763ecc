// Command ringstar runs the parallel island-model memetic optimiser for the
// Ring Star Problem over a station dataset and writes the best solution
// found within the wall-clock budget.
package main

import "os"

func main() {
	if err := Execute(); err != nil {
		// Cobra already printed the single-line reason to stderr.
		os.Exit(1)
	}
}
