// Package solution renders run results: the plain-text solution file, a
// self-contained SVG plot of the ring and its assignments, and an HTML
// convergence chart of the best cost over generations.
//
// The text format is fixed:
//
//	DIMENSION: 127
//	ALPHA: 3
//	BEST_COST: 4179.25
//
//	RING:
//	1 14 53 ... 1
//
//	ASSIGNMENTS:
//	2 -> 14
//	...
//
// The ring line starts at the depot (the stored tour is rotated for output)
// and repeats the depot id to close the loop. When the ring covers every
// station, the assignments section carries a single
// "(no assignments - all nodes in ring)" line instead.
//
// Rendering never mutates its inputs; all functions are safe to call from
// the orchestrator between generations.
package solution
