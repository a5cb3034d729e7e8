// Package materialize turns a template tree into an output tree.
//
// The Processor decides, for one template entry, which operation it needs:
// ignore it, create the directory, copy the file or write its rendered
// content. The Pipeline walks the whole tree, asks the Processor about every
// entry and hands the resulting operations to an operations.Executor,
// creating every directory before any file beneath it.
package materialize
