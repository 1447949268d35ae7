// Package cache provides a small LRU answer cache keyed by dataset
// fingerprint and query, so repeated questions against the same columns skip
// the model call.
package cache

import (
	"container/list"
	"crypto/sha256"
	"encoding/hex"
	"sync"
	"time"
)

// AnswerCache is a thread-safe LRU cache with per-entry TTL.
type AnswerCache struct {
	mu       sync.Mutex
	capacity int
	ttl      time.Duration
	items    map[string]*list.Element
	lru      *list.List
}

type entry struct {
	key       string
	answer    string
	expiresAt time.Time
}

// New creates an answer cache bounded to capacity entries, each living for
// ttl after insertion.
func New(capacity int, ttl time.Duration) *AnswerCache {
	if capacity <= 0 {
		capacity = 64
	}
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return &AnswerCache{
		capacity: capacity,
		ttl:      ttl,
		items:    make(map[string]*list.Element, capacity),
		lru:      list.New(),
	}
}

// Key derives a cache key from the dataset column fingerprint and the query.
func Key(columnHash, query string) string {
	sum := sha256.Sum256([]byte(columnHash + "\x00" + query))
	return hex.EncodeToString(sum[:])
}

// Get returns a cached answer if present and unexpired.
func (c *AnswerCache) Get(key string) (string, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	elem, ok := c.items[key]
	if !ok {
		return "", false
	}
	ent := elem.Value.(*entry)
	if time.Now().After(ent.expiresAt) {
		c.lru.Remove(elem)
		delete(c.items, key)
		return "", false
	}
	c.lru.MoveToFront(elem)
	return ent.answer, true
}

// Set stores an answer, evicting the least recently used entry when full.
func (c *AnswerCache) Set(key, answer string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if elem, ok := c.items[key]; ok {
		ent := elem.Value.(*entry)
		ent.answer = answer
		ent.expiresAt = time.Now().Add(c.ttl)
		c.lru.MoveToFront(elem)
		return
	}

	elem := c.lru.PushFront(&entry{
		key:       key,
		answer:    answer,
		expiresAt: time.Now().Add(c.ttl),
	})
	c.items[key] = elem

	for c.lru.Len() > c.capacity {
		oldest := c.lru.Back()
		if oldest == nil {
			break
		}
		c.lru.Remove(oldest)
		delete(c.items, oldest.Value.(*entry).key)
	}
}

// Len reports the number of live entries.
func (c *AnswerCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lru.Len()
}
