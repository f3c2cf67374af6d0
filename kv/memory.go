package kv

import (
	"context"
	"sync"
)

// memoryStore 内存存储实现（非导出，仅用于单机）
type memoryStore struct {
	mu     sync.Mutex
	prefix string
	data   map[string]string
}

func newMemoryStore(prefix string) Store {
	return &memoryStore{
		prefix: prefix,
		data:   make(map[string]string),
	}
}

func (ms *memoryStore) Get(ctx context.Context, key string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	ms.mu.Lock()
	defer ms.mu.Unlock()

	value, ok := ms.data[ms.prefix+key]
	if !ok {
		return "", ErrKeyNotFound
	}
	return value, nil
}

func (ms *memoryStore) Set(ctx context.Context, key, value string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	ms.mu.Lock()
	ms.data[ms.prefix+key] = value
	ms.mu.Unlock()

	return nil
}

func (ms *memoryStore) SetNX(ctx context.Context, key, value string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}

	ms.mu.Lock()
	defer ms.mu.Unlock()

	fullKey := ms.prefix + key
	if _, exists := ms.data[fullKey]; exists {
		return false, nil
	}

	ms.data[fullKey] = value
	return true, nil
}

func (ms *memoryStore) Delete(ctx context.Context, key string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	ms.mu.Lock()
	delete(ms.data, ms.prefix+key)
	ms.mu.Unlock()

	return nil
}
