// Package kv is the generic get/set/prefix-scan store every repository sits
// on. Values are JSON documents; keys are colon-separated namespaces.
package kv

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
)

// ErrNotFound is returned by Get when the key is absent.
var ErrNotFound = errors.New("kv: key not found")

// Entry is one key/value pair.
type Entry struct {
	Key   string
	Value []byte
}

// Store is implemented by every backend. Writes are last-write-wins per key;
// SetMany is the only multi-key operation and is atomic.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	SetMany(ctx context.Context, entries []Entry) error
	// GetByPrefix returns every entry whose key starts with prefix
	// (case-sensitive), sorted by key.
	GetByPrefix(ctx context.Context, prefix string) ([]Entry, error)
}

// GetJSON loads key and decodes it into a T.
func GetJSON[T any](ctx context.Context, s Store, key string) (T, error) {
	var out T
	raw, err := s.Get(ctx, key)
	if err != nil {
		return out, err
	}
	if err := json.Unmarshal(raw, &out); err != nil {
		return out, fmt.Errorf("kv: decode %s: %w", key, err)
	}
	return out, nil
}

// SetJSON encodes v and stores it under key.
func SetJSON(ctx context.Context, s Store, key string, v any) error {
	e, err := JSONEntry(key, v)
	if err != nil {
		return err
	}
	return s.Set(ctx, e.Key, e.Value)
}

// JSONEntry encodes v into an Entry for SetMany.
func JSONEntry(key string, v any) (Entry, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return Entry{}, fmt.Errorf("kv: encode %s: %w", key, err)
	}
	return Entry{Key: key, Value: raw}, nil
}

// Item is a decoded prefix-scan result.
type Item[T any] struct {
	Key   string
	Value T
}

// ListJSON scans prefix and decodes every value into a T.
func ListJSON[T any](ctx context.Context, s Store, prefix string) ([]Item[T], error) {
	entries, err := s.GetByPrefix(ctx, prefix)
	if err != nil {
		return nil, err
	}
	items := make([]Item[T], 0, len(entries))
	for _, e := range entries {
		var v T
		if err := json.Unmarshal(e.Value, &v); err != nil {
			return nil, fmt.Errorf("kv: decode %s: %w", e.Key, err)
		}
		items = append(items, Item[T]{Key: e.Key, Value: v})
	}
	return items, nil
}
