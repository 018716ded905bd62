package repository

import (
	"context"
	"time"
)

// CacheRepository - интерфейс кэша read-путей API
type CacheRepository interface {
	// Get возвращает значение по ключу, nil при промахе
	Get(ctx context.Context, key string) ([]byte, error)

	// Set сохраняет значение с TTL
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error

	// Delete удаляет ключи
	Delete(ctx context.Context, keys ...string) error
}
