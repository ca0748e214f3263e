package service

import (
	"hash/fnv"
	"sync"
)

const defaultLockShards = 8

// keyedLock serializes operations per key by hashing the key onto a fixed
// set of mutexes. Two operations on the same key never run concurrently;
// operations on different keys only contend when their shards collide.
type keyedLock struct {
	shards []sync.Mutex
}

// newKeyedLock creates a keyedLock with n shards.
// If n <= 0, defaultLockShards is used.
func newKeyedLock(n int) *keyedLock {
	if n <= 0 {
		n = defaultLockShards
	}
	return &keyedLock{shards: make([]sync.Mutex, n)}
}

// lock acquires the shard owning key and returns its release func.
func (l *keyedLock) lock(key string) func() {
	m := &l.shards[l.shardIndex(key)]
	m.Lock()
	return m.Unlock
}

// shardIndex maps a key deterministically to a shard.
func (l *keyedLock) shardIndex(key string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(key))
	return int(h.Sum32()) % len(l.shards)
}
