// Package keylock provides a striped mutex keyed by int64, so
// check-then-act spans for one user serialize without blocking
// unrelated users behind a single global lock.
package keylock

import "sync"

const defaultStripes = 64

type KeyedMutex struct {
	stripes []sync.Mutex
}

func New() *KeyedMutex {
	return &KeyedMutex{
		stripes: make([]sync.Mutex, defaultStripes),
	}
}

func (km *KeyedMutex) Lock(key int64) {
	km.stripes[km.index(key)].Lock()
}

func (km *KeyedMutex) Unlock(key int64) {
	km.stripes[km.index(key)].Unlock()
}

func (km *KeyedMutex) index(key int64) uint64 {
	return uint64(key) % uint64(len(km.stripes))
}
