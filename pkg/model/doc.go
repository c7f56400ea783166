// Package model describes the base objects manipulated by datarev.
//
// The package exposes a model for metadata.
//
// The object model for datarev is composed of:
//
//  Workspaces:
//    A datarev workspace is analogous to a git working copy. It holds sources and their revisions.
//
//  Sources:
//    A source is a named definition of how to obtain raw data, e.g. a dataset imported from some path
//    in a given format. Source names are unique within a revision.
//
//  Stages:
//    A stage is a named step in the build pipeline of a source. Every source has a "root" stage,
//    which loads the raw data. Further stages transform the output of the previous one.
//
//  Revisions:
//    A revision is an immutable snapshot of the sources of a workspace, analogous to a commit in git.
//    The empty revision id designates the working state of the workspace.
package model
