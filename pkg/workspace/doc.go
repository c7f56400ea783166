/*
 * Copyright © 2019 One Concern
 *
 */

// Package workspace declares the query interface to a versioned workspace.
//
// A workspace holds sources, addressed by revisions. The interface gives read access to
// revisions, sources and build stages, and knows how to materialize datasets from them.
//
// The on-disk implementation lives in package workspace/localfs.
package workspace
