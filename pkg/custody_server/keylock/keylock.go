// Package keylock serializes work on a single key, such as one B/L record or one handoff plan.
package keylock

import (
	"context"
	"sort"
	"sync"
)

// Locker grants exclusive ownership of a key until the returned unlock func is called.
// Lock blocks until the key is free or ctx is done.
type Locker interface {
	Lock(ctx context.Context, key string) (func(), error)
}

// LockAll locks every distinct key in sorted order, so two callers sharing keys cannot
// deadlock each other. On failure nothing stays locked.
func LockAll(ctx context.Context, locker Locker, keys ...string) (func(), error) {
	distinct := make([]string, 0, len(keys))
	seen := make(map[string]struct{}, len(keys))
	for _, key := range keys {
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		distinct = append(distinct, key)
	}
	sort.Strings(distinct)

	unlocks := make([]func(), 0, len(distinct))
	unlockAll := func() {
		for i := len(unlocks) - 1; i >= 0; i-- {
			unlocks[i]()
		}
	}
	for _, key := range distinct {
		unlock, err := locker.Lock(ctx, key)
		if err != nil {
			unlockAll()
			return nil, err
		}
		unlocks = append(unlocks, unlock)
	}
	return unlockAll, nil
}

type _LocalLocker struct {
	mu      sync.Mutex
	entries map[string]*_LocalEntry
}

type _LocalEntry struct {
	sem  chan struct{}
	refs int
}

// NewLocalLocker returns a Locker for a single process. Entries are dropped once nobody
// holds or waits for them.
func NewLocalLocker() *_LocalLocker {
	return &_LocalLocker{entries: make(map[string]*_LocalEntry)}
}

func (l *_LocalLocker) Lock(ctx context.Context, key string) (func(), error) {
	l.mu.Lock()
	entry, ok := l.entries[key]
	if !ok {
		entry = &_LocalEntry{sem: make(chan struct{}, 1)}
		l.entries[key] = entry
	}
	entry.refs++
	l.mu.Unlock()

	select {
	case entry.sem <- struct{}{}:
	case <-ctx.Done():
		l.release(key, entry)
		return nil, ctx.Err()
	}

	var once sync.Once
	return func() {
		once.Do(func() {
			<-entry.sem
			l.release(key, entry)
		})
	}, nil
}

func (l *_LocalLocker) release(key string, entry *_LocalEntry) {
	l.mu.Lock()
	defer l.mu.Unlock()
	entry.refs--
	if entry.refs == 0 {
		delete(l.entries, key)
	}
}

// size is the number of tracked keys.
func (l *_LocalLocker) size() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.entries)
}
