package service

import (
	"sync"

	"github.com/google/uuid"
)

// keyedMutex serializes operations per key while leaving operations on
// different keys fully independent. Entries are reference-counted and
// removed once the last holder releases, so the table does not grow with
// the number of tasks ever seen.
type keyedMutex struct {
	mu    sync.Mutex
	locks map[uuid.UUID]*keyedLockEntry
}

type keyedLockEntry struct {
	mu   sync.Mutex
	refs int
}

// newKeyedMutex creates an empty lock table.
func newKeyedMutex() *keyedMutex {
	return &keyedMutex{
		locks: make(map[uuid.UUID]*keyedLockEntry),
	}
}

// Lock acquires the mutex for the given key, blocking until it is free.
// The returned function releases it and must be called exactly once,
// typically via defer.
func (k *keyedMutex) Lock(key uuid.UUID) func() {
	k.mu.Lock()
	entry, ok := k.locks[key]
	if !ok {
		entry = &keyedLockEntry{}
		k.locks[key] = entry
	}
	entry.refs++
	k.mu.Unlock()

	entry.mu.Lock()

	return func() {
		entry.mu.Unlock()

		k.mu.Lock()
		entry.refs--
		if entry.refs == 0 {
			delete(k.locks, key)
		}
		k.mu.Unlock()
	}
}
