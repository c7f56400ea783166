// Copyright © 2018 One Concern

package storage

import (
	"context"
	"fmt"
	"io"
)

// Put modes
const (
	// OverWrite replaces existing objects on Put
	OverWrite = false
	// NoOverWrite fails a Put whenever the object already exists
	NoOverWrite = true
)

// Store knows how to keep metadata objects under keys.
type Store interface {
	fmt.Stringer
	Has(context.Context, string) (bool, error)
	Get(context.Context, string) (io.ReadCloser, error)
	Put(ctx context.Context, key string, source io.Reader, exclusive bool) error
	Delete(context.Context, string) error
	// KeysPrefix lists the keys starting with prefix, sorted
	KeysPrefix(ctx context.Context, prefix string) ([]string, error)
}

// ReadAll retrieves a whole object from a store
func ReadAll(ctx context.Context, store Store, key string) ([]byte, error) {
	reader, err := store.Get(ctx, key)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = reader.Close()
	}()
	return io.ReadAll(reader)
}
