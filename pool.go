package md2html

import "runtime"

// Worker sizing constants.
const (
	// MinWorkers ensures at least one worker is available.
	MinWorkers = 1

	// MaxWorkers caps concurrent documents so batch runs keep a bounded
	// number of open files.
	MaxWorkers = 32
)

// ResolveWorkers determines how many documents to convert concurrently.
// Priority: explicit workers > GOMAXPROCS-based calculation.
// The result is always within [MinWorkers, MaxWorkers].
func ResolveWorkers(workers int) int {
	n := workers
	if n <= 0 {
		// GOMAXPROCS is adjusted by automaxprocs for containers
		n = runtime.GOMAXPROCS(0)
	}

	if n < MinWorkers {
		return MinWorkers
	}
	if n > MaxWorkers {
		return MaxWorkers
	}
	return n
}
