// Package dataset exposes the read-only query capability of a resolved dataset.
//
// A dataset is a collection of items, grouped in subsets. Whatever its origin (a source
// built from a workspace revision, or a bare dataset loaded from disk), a resolved dataset
// is accessed through the same Dataset interface.
package dataset
