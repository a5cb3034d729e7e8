// Package answers resolves a question set into the ordered answer context.
//
// Questions are processed strictly in set order. While a question is being
// resolved only the answers of earlier questions are visible to its help,
// default, ask_if and validation expressions, so a reference to a later key
// renders as undefined instead of failing. For each question the value comes
// from, in order: its resolved default when ask_if is false, the first
// Source that has the key, or the Prompter.
package answers
