// Package output renders generation results for the terminal.
//
// Rendering is two-phase: a text/template from templates/ lays out the data,
// calling the "style" function to wrap fragments in the lipgloss styles from
// the styles package. Whether color is emitted is decided once per renderer
// by ColorEnabled.
package output
