// Package store provides the key-value storage that holds the serialized
// student profile and the convenience keys derived from it.
//
// All backends implement [Store]:
//
//	memory  in-process map, for tests and one-shot commands
//	file    one JSON file per key under a directory (the CLI default)
//	sqlite  a single table in a SQLite database
//	redis   plain string keys under a prefix
//	mongo   one document per key in a collection
//
// A missing key is not an error: Get reports it through its boolean result.
// Backend failures are returned as STORE errors from package errors.
//
// # Usage
//
//	s, err := store.Open(ctx, store.Config{Backend: store.BackendFile, Path: dir})
//	if err != nil {
//	    return err
//	}
//	defer s.Close()
//
//	raw, ok, err := s.Get(ctx, profile.KeyStudentUser)
package store

import (
	"context"
	"slices"
)

// Store is string key-value storage.
type Store interface {
	// Get returns the value stored under key. ok is false if the key is
	// not set.
	Get(ctx context.Context, key string) (value string, ok bool, err error)

	// Set stores value under key, replacing any previous value.
	Set(ctx context.Context, key, value string) error

	// Remove deletes key. Removing a missing key is not an error.
	Remove(ctx context.Context, key string) error

	// Close releases the backend's resources.
	Close() error
}

// Lister is implemented by stores that can enumerate their keys.
type Lister interface {
	// Keys returns every key in sorted order.
	Keys(ctx context.Context) ([]string, error)
}

// Keys lists the keys of s if it implements Lister.
func Keys(ctx context.Context, s Store) ([]string, bool, error) {
	l, ok := s.(Lister)
	if !ok {
		return nil, false, nil
	}
	keys, err := l.Keys(ctx)
	return keys, true, err
}

// SetAll writes each key in order, stopping at the first error.
func SetAll(ctx context.Context, s Store, pairs map[string]string) error {
	keys := make([]string, 0, len(pairs))
	for k := range pairs {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	for _, k := range keys {
		if err := s.Set(ctx, k, pairs[k]); err != nil {
			return err
		}
	}
	return nil
}
