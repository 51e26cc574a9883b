package translator

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/dgraph-io/ristretto"
)

const defaultCacheMaxCost = 1e7

// Cache remembers completions by prompt. Only successful answers are stored.
type Cache struct {
	cache *ristretto.Cache
	ttl   time.Duration
}

func NewCache(ttl time.Duration, maxCost int64) (*Cache, error) {
	if maxCost <= 0 {
		maxCost = defaultCacheMaxCost
	}

	cache, err := ristretto.NewCache(&ristretto.Config{
		NumCounters: 1e7,
		MaxCost:     maxCost,
		BufferItems: 64,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create cache: %w", err)
	}

	return &Cache{cache: cache, ttl: ttl}, nil
}

// Wrap returns a Translator that consults the cache before calling next.
// namespace separates entries of different providers and models.
func (c *Cache) Wrap(namespace string, next Translator) Translator {
	return &cachedTranslator{cache: c, namespace: namespace, next: next}
}

type cachedTranslator struct {
	cache     *Cache
	namespace string
	next      Translator
}

func (t *cachedTranslator) Translate(ctx context.Context, prompt string) (string, error) {
	key := generateCacheKey(t.namespace, prompt)

	if cached, found := t.cache.cache.Get(key); found {
		return cached.(string), nil
	}

	translation, err := t.next.Translate(ctx, prompt)
	if err != nil {
		return "", err
	}

	t.cache.cache.SetWithTTL(key, translation, int64(len(translation)), t.cache.ttl)
	t.cache.cache.Wait()

	return translation, nil
}

// cacheNamespace keeps answers of different keys apart so a revoked or invalid
// key never gets a completion that was paid for by another one.
func cacheNamespace(provider, model, apiKey string) string {
	hash := sha256.Sum256([]byte(apiKey))
	return provider + ":" + model + ":" + hex.EncodeToString(hash[:])
}

func generateCacheKey(namespace, prompt string) string {
	hash := sha256.Sum256([]byte(fmt.Sprintf("%s:%s", namespace, prompt)))
	return hex.EncodeToString(hash[:])
}
