// Package kv provides the durable key/value store backing session persistence.
// Keys are flat strings namespaced with ':' (e.g. "photo:tire"). A BadgerDB
// implementation is used in production and an in-memory one in tests.
package kv

import "errors"

// ErrNotFound is returned when a key does not exist in the store.
var ErrNotFound = errors.New("kv: not found")

// Entry is a key-value pair returned by List.
type Entry struct {
	Key   string
	Value []byte
}

// Store is the minimal durable key/value contract the engine needs.
type Store interface {
	// Get retrieves the value for a key. Returns ErrNotFound if not present.
	Get(key string) ([]byte, error)

	// Set stores a key-value pair, overwriting any existing value.
	Set(key string, value []byte) error

	// List returns all entries whose key starts with the given prefix,
	// in lexicographic key order.
	List(prefix string) ([]Entry, error)

	// Close releases any resources held by the store.
	Close() error
}
