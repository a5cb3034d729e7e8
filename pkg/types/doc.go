// Package types defines the core data structures shared across kiln:
// the filesystem abstraction, questions and question sets, the ordered
// answer context and the result of a generation run.
package types
