package service

import (
	"fmt"
	"slices"
	"sync"
)

// KeyMutex hands out one mutex per logical key (a movie, a theater, a
// showtime). Read-then-write sections lock the keys they touch so two
// concurrent writers cannot both pass an invariant check and persist; the
// unique indexes at the storage layer remain the backstop. One instance is
// shared by every service, since the invariants cross service boundaries:
// a showtime's length is checked against its movie, and a booking's
// showtime must survive until the insert lands.
type KeyMutex struct {
	mus sync.Map // string -> *sync.Mutex
}

func NewKeyMutex() *KeyMutex {
	return &KeyMutex{}
}

// Lock acquires the mutex for key and returns its unlock function.
func (k *KeyMutex) Lock(key string) func() {
	v, _ := k.mus.LoadOrStore(key, &sync.Mutex{})
	mu := v.(*sync.Mutex)
	mu.Lock()

	return mu.Unlock
}

// LockAll acquires every key in a fixed global order so two callers holding
// overlapping key sets cannot deadlock. Duplicates are locked once.
func (k *KeyMutex) LockAll(keys ...string) func() {
	ks := slices.Clone(keys)
	slices.Sort(ks)
	ks = slices.Compact(ks)

	unlocks := make([]func(), 0, len(ks))
	for _, key := range ks {
		unlocks = append(unlocks, k.Lock(key))
	}

	return func() {
		for i := len(unlocks) - 1; i >= 0; i-- {
			unlocks[i]()
		}
	}
}

func movieKey(id int64) string { return fmt.Sprintf("movie:%d", id) }

func movieTitleKey(title string) string { return "movie-title:" + title }

func theaterKey(theater string) string { return "theater:" + theater }

func showtimeKey(id int64) string { return fmt.Sprintf("showtime:%d", id) }
