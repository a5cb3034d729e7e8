// Package operations defines the file operations kiln performs while
// materializing a template and the executor that carries them out.
//
// kiln only does four things to the filesystem: copy a file verbatim, write
// rendered content, create a directory, or ignore an entry. An Operation is
// pure data describing one of those; deciding which operation an entry needs
// is the job of package materialize, and performing it is the Executor's.
// Keeping the two apart lets the decision logic be tested without touching
// a disk or a terminal.
package operations
