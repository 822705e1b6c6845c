package repository

import (
	"context"
	"errors"
	"reflect"
	"sync"
)

// ErrNoRecord is returned by lookups when no entity exists for a key.
var ErrNoRecord = errors.New("record not found")

// ErrNilEntity is returned when a nil entity is passed to Save.
var ErrNilEntity = errors.New("entity cannot be nil")

// Entity is the contract stored values satisfy: a stable identity key
// and a soft-delete hook.
type Entity interface {
	Key() string
	Deactivate()
}

// Store is a keyed in-memory store backed by sync.Map, safe for
// concurrent read/write without serializing unrelated keys. Accessors
// return fresh slices but share the entities themselves by reference:
// a caller mutating a returned entity sees that mutation reflected in
// subsequent lookups.
type Store[T Entity] struct {
	items sync.Map
	mu    sync.Mutex // guards insertion-order bookkeeping only
	order []string
}

// NewStore constructs an empty store.
func NewStore[T Entity]() *Store[T] {
	return &Store[T]{}
}

// Save upserts the entity by its identity key, overwriting any existing
// entry. A nil entity is rejected.
func (s *Store[T]) Save(ctx context.Context, entity T) error {
	if isNil(entity) {
		return ErrNilEntity
	}
	key := entity.Key()
	if _, loaded := s.items.Swap(key, entity); !loaded {
		s.mu.Lock()
		s.order = append(s.order, key)
		s.mu.Unlock()
	}
	return nil
}

// SaveAll saves each entity sequentially. The operation is not atomic: a
// failure partway through leaves prior saves applied.
func (s *Store[T]) SaveAll(ctx context.Context, entities []T) error {
	for _, entity := range entities {
		if err := s.Save(ctx, entity); err != nil {
			return err
		}
	}
	return nil
}

// FindByID returns the entity stored under key, or ErrNoRecord.
func (s *Store[T]) FindByID(ctx context.Context, key string) (T, error) {
	var zero T
	value, ok := s.items.Load(key)
	if !ok {
		return zero, ErrNoRecord
	}
	return value.(T), nil
}

// FindAll returns a snapshot slice of all entities in insertion order.
// The slice is a defensive copy; the entities are shared by reference.
func (s *Store[T]) FindAll(ctx context.Context) []T {
	s.mu.Lock()
	keys := make([]string, len(s.order))
	copy(keys, s.order)
	s.mu.Unlock()

	result := make([]T, 0, len(keys))
	for _, key := range keys {
		if value, ok := s.items.Load(key); ok {
			result = append(result, value.(T))
		}
	}
	return result
}

// Delete soft-deletes the entity under key by flipping its active flag.
// The record stays in the store; deleting an absent key is a no-op.
func (s *Store[T]) Delete(ctx context.Context, key string) {
	if value, ok := s.items.Load(key); ok {
		value.(T).Deactivate()
	}
}

// Remove hard-deletes the entity under key. Used for enrollment records,
// which are removed rather than deactivated.
func (s *Store[T]) Remove(ctx context.Context, key string) {
	if _, ok := s.items.LoadAndDelete(key); !ok {
		return
	}
	s.mu.Lock()
	for i, k := range s.order {
		if k == key {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	s.mu.Unlock()
}

// Exists reports whether an entity is stored under key.
func (s *Store[T]) Exists(ctx context.Context, key string) bool {
	_, ok := s.items.Load(key)
	return ok
}

// Search evaluates the predicate over a snapshot and returns matches.
func (s *Store[T]) Search(ctx context.Context, predicate func(T) bool) []T {
	matches := make([]T, 0)
	for _, entity := range s.FindAll(ctx) {
		if predicate(entity) {
			matches = append(matches, entity)
		}
	}
	return matches
}

// Count returns the number of stored entities, active or not.
func (s *Store[T]) Count(ctx context.Context) int {
	return len(s.FindAll(ctx))
}

func isNil(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	return rv.Kind() == reflect.Ptr && rv.IsNil()
}
