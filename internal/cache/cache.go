package cache

import (
	"context"
	"time"
)

// Cache defines the cache interface
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Exists(ctx context.Context, key string) (bool, error)
	Clear(ctx context.Context, pattern string) error
}

// TemplateKey generates the cache key for a result template.
func TemplateKey(templateID string) string {
	return "template:" + templateID
}

// TemplateListKey generates the cache key for the template list of a category.
func TemplateListKey(category string) string {
	if category == "" {
		return "templates:all"
	}
	return "templates:" + category
}
