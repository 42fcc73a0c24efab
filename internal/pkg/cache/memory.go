package cache

import (
	"context"
	"fmt"
	"strconv"
	"sync"
	"time"
)

// memoryEntry guarda um valor e seu instante de expiração (zero = sem expiração).
type memoryEntry struct {
	value     string
	expiresAt time.Time
}

// MemoryClient é uma implementação em memória da interface Client.
// É usada no modo demo (sem Redis) e nos testes. O acesso é serializado
// por um mutex; não há escritores concorrentes dentro de uma operação.
type MemoryClient struct {
	mu      sync.Mutex
	entries map[string]memoryEntry
}

// NewMemoryClient cria uma nova instância do cache em memória.
func NewMemoryClient() *MemoryClient {
	return &MemoryClient{entries: make(map[string]memoryEntry)}
}

// Get recupera o valor associado a uma chave.
func (c *MemoryClient) Get(ctx context.Context, key string) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	entry, ok := c.entries[key]
	if !ok {
		return "", ErrCacheMiss
	}
	if !entry.expiresAt.IsZero() && time.Now().After(entry.expiresAt) {
		delete(c.entries, key)
		return "", ErrCacheMiss
	}
	return entry.value, nil
}

// GetInt recupera o valor de uma chave como inteiro.
func (c *MemoryClient) GetInt(ctx context.Context, key string) (int, error) {
	val, err := c.Get(ctx, key)
	if err != nil {
		return 0, err
	}
	n, err := strconv.Atoi(val)
	if err != nil {
		return 0, err
	}
	return n, nil
}

// Set define um valor para uma chave com um tempo de expiração.
func (c *MemoryClient) Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	entry := memoryEntry{value: valueToString(value)}
	if expiration > 0 {
		entry.expiresAt = time.Now().Add(expiration)
	}
	c.entries[key] = entry
	return nil
}

// Incr incrementa o valor inteiro de uma chave em 1.
// Uma chave ausente é tratada como zero, seguindo a semântica do Redis.
func (c *MemoryClient) Incr(ctx context.Context, key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	entry := c.entries[key]
	n, _ := strconv.Atoi(entry.value)
	entry.value = strconv.Itoa(n + 1)
	c.entries[key] = entry
	return nil
}

// Delete remove uma chave do cache.
func (c *MemoryClient) Delete(ctx context.Context, key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	delete(c.entries, key)
	return nil
}

// valueToString normaliza os tipos de valor aceitos pela interface Client.
func valueToString(value interface{}) string {
	switch v := value.(type) {
	case string:
		return v
	case []byte:
		return string(v)
	case int:
		return strconv.Itoa(v)
	default:
		return fmt.Sprintf("%v", v)
	}
}
