// Package dataset loads ring-star station files into memory.
//
// # File format
//
// A dataset is a plain-text file:
//
//	DIMENSION: 127
//	BEGIN
//	1 35 35
//	2 41 49
//	...
//	END
//
//   - A "DIMENSION" header line announces the station count (optional but,
//     when present, enforced against the parsed station count).
//   - A "BEGIN" marker opens the coordinate block.
//   - Each station line is "id x y" with integer coordinates.
//   - The block ends at "END" or EOF.
//
// IDs must be consecutive starting at 1; station 1 is the depot of every
// ring built on top of the dataset.
//
// # Errors
//
// All failures are reported through sentinel errors (ErrMissingBegin,
// ErrBadStationLine, ErrDimensionMismatch, ErrNonConsecutiveIDs,
// ErrTooFewStations), matched with errors.Is. The reader never panics on
// malformed input.
package dataset
