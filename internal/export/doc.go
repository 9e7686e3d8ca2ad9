// Package export turns raw article content into format-specific files on
// disk. It consists of an open-for-extension encoder registry and a
// pipeline that resolves destination paths, invokes the matching encoder,
// and writes the result.
//
// The pipeline never lets a failure escape as an error: every outcome,
// including unsupported formats and I/O faults, is captured as a Result.
// Batch exports are isolated per item; one item's failure cannot abort or
// affect any other item's slot.
package export
