// Package filesystem provides the implementations of types.FS used by kiln:
// the real OS filesystem for generation runs and an afero-backed one that
// lets the pipeline run entirely in memory under test.
package filesystem
