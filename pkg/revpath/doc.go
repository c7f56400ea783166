/*
 * Copyright © 2019 One Concern
 *
 */

// Package revpath resolves revpaths into datasets.
//
// A revpath is a human-typed reference to a dataset, with one of the following forms:
//
//	workspace-path[@[revision][:target]]   a workspace on disk
//	[revision:]target                       a source (or stage) in the ambient workspace
//	revision                                a whole revision of the ambient workspace
//	dataset-path[:format]                   a dataset on disk, outside of any workspace
//
// where target is "source[.stage]".
//
// The ':' separator has a different meaning depending on the interpretation: Resolve tries
// every interpretation in a fixed order and returns the first one that succeeds. When none
// succeeds, the returned *WrongRevpathError reports the problem met by each of them.
package revpath
