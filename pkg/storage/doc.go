// Copyright © 2018 One Concern

// Package storage defines the key/value store holding the metadata of a workspace:
// descriptors of the workspace itself, of its working tree and of its revisions.
//
// Keys are relative, slash-separated paths. Values are opaque blobs.
package storage
