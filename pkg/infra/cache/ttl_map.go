package cache

import (
	"context"
	"sync"
	"time"
)

// TTLEntry represents an entry in TTLMap
type TTLEntry struct {
	Value     string
	ExpiresAt time.Time
}

// TTLMap is a thread-safe in-process map with TTL for each entry. It backs
// the Client interface for deployments without redis.
type TTLMap struct {
	Data map[string]*TTLEntry
	Mu   sync.RWMutex
	TTL  time.Duration
}

// NewTTLMap creates a new TTLMap with the specified default TTL
func NewTTLMap(ttl time.Duration) *TTLMap {
	return &TTLMap{
		Data: make(map[string]*TTLEntry),
		TTL:  ttl,
	}
}

// Get retrieves a value from the TTLMap if it hasn't expired
func (m *TTLMap) Get(key string) (string, bool) {
	m.Mu.RLock()
	entry, exists := m.Data[key]
	if !exists {
		m.Mu.RUnlock()
		return "", false
	}
	isExpired := time.Now().After(entry.ExpiresAt)
	value := entry.Value
	m.Mu.RUnlock()

	if isExpired {
		m.Mu.Lock()
		if current, ok := m.Data[key]; ok && time.Now().After(current.ExpiresAt) {
			delete(m.Data, key)
		}
		m.Mu.Unlock()
		return "", false
	}

	return value, true
}

// Set adds or updates a value, using the map default when ttl is zero.
func (m *TTLMap) Set(key string, value string, ttl time.Duration) {
	if ttl <= 0 {
		ttl = m.TTL
	}
	m.Mu.Lock()
	defer m.Mu.Unlock()

	m.Data[key] = &TTLEntry{
		Value:     value,
		ExpiresAt: time.Now().Add(ttl),
	}
}

// Delete removes a key from the TTLMap
func (m *TTLMap) Delete(key string) {
	m.Mu.Lock()
	defer m.Mu.Unlock()
	delete(m.Data, key)
}

// Clear removes all entries from the TTLMap
func (m *TTLMap) Clear() {
	m.Mu.Lock()
	defer m.Mu.Unlock()
	m.Data = make(map[string]*TTLEntry)
}

type memoryClient struct {
	m *TTLMap
}

// NewMemoryClient returns an in-process Client backed by a TTLMap.
func NewMemoryClient(ttl time.Duration) Client {
	return &memoryClient{m: NewTTLMap(ttl)}
}

func (c *memoryClient) Get(_ context.Context, key string) (string, error) {
	value, ok := c.m.Get(key)
	if !ok {
		return "", ErrNotFound
	}
	return value, nil
}

func (c *memoryClient) Set(_ context.Context, key string, value string, expiration time.Duration) error {
	c.m.Set(key, value, expiration)
	return nil
}

func (c *memoryClient) Delete(_ context.Context, key string) error {
	c.m.Delete(key)
	return nil
}
