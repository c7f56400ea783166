// Copyright © 2019 One Concern

// Package format knows how to recognize, load and save datasets stored on a file system.
//
// Formats are registered in a Registry. Given a path, the registry either uses an explicit
// format name as is, or probes every registered recognizer to detect which format may load it.
//
// Built-in formats:
//   - datarev: a directory with a dataset.yaml descriptor
//   - jsonl: one or several .jsonl files, one item per line
//   - csv: one or several .csv files with an "id" column
package format
