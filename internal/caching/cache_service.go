package caching

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"boutique/internal/models"

	"github.com/redis/go-redis/v9"
)

const keyPrefix = "boutique:"

type CacheService interface {
	// Landing page payload
	GetHomePage(ctx context.Context) (*models.HomePage, error)
	SetHomePage(ctx context.Context, home *models.HomePage, ttl time.Duration) error

	// Site settings
	GetSettings(ctx context.Context) (*models.SiteSettings, error)
	SetSettings(ctx context.Context, settings *models.SiteSettings, ttl time.Duration) error

	// InvalidateCatalog drops every cached catalog view after an admin mutation
	InvalidateCatalog(ctx context.Context) error

	// Token revocation
	RevokeToken(ctx context.Context, tokenID string, ttl time.Duration) error
	IsTokenRevoked(ctx context.Context, tokenID string) (bool, error)

	// Rate limiting
	IsRateLimited(ctx context.Context, key string, limit int, window time.Duration) (bool, error)

	Ping(ctx context.Context) error
}

type redisCacheService struct {
	client *redis.Client
}

func NewRedisCacheService(addr, password string, db int) CacheService {
	parsedAddr := addr
	if strings.HasPrefix(addr, "redis://") || strings.HasPrefix(addr, "rediss://") {
		parsedAddr = strings.TrimPrefix(strings.TrimPrefix(addr, "redis://"), "rediss://")
	}

	log.Printf("DEBUG: Creating Redis client with address: %s", parsedAddr)

	client := redis.NewClient(&redis.Options{
		Addr:     parsedAddr,
		Password: password,
		DB:       db,
	})

	if pingErr := client.Ping(context.Background()).Err(); pingErr != nil {
		log.Printf("WARN: Redis ping failed on initialization: %v (address: %s)", pingErr, parsedAddr)
	} else {
		log.Printf("DEBUG: Redis connection established successfully")
	}

	return &redisCacheService{client: client}
}

func homeKey() string     { return keyPrefix + "catalog:home" }
func settingsKey() string { return keyPrefix + "catalog:settings" }

func (r *redisCacheService) GetHomePage(ctx context.Context) (*models.HomePage, error) {
	var home models.HomePage
	found, err := r.getJSON(ctx, homeKey(), &home)
	if err != nil || !found {
		return nil, err
	}
	return &home, nil
}

func (r *redisCacheService) SetHomePage(ctx context.Context, home *models.HomePage, ttl time.Duration) error {
	return r.setJSON(ctx, homeKey(), home, ttl)
}

func (r *redisCacheService) GetSettings(ctx context.Context) (*models.SiteSettings, error) {
	var settings models.SiteSettings
	found, err := r.getJSON(ctx, settingsKey(), &settings)
	if err != nil || !found {
		return nil, err
	}
	return &settings, nil
}

func (r *redisCacheService) SetSettings(ctx context.Context, settings *models.SiteSettings, ttl time.Duration) error {
	return r.setJSON(ctx, settingsKey(), settings, ttl)
}

func (r *redisCacheService) InvalidateCatalog(ctx context.Context) error {
	var keys []string
	iter := r.client.Scan(ctx, 0, keyPrefix+"catalog:*", 100).Iterator()
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return err
	}

	if len(keys) > 0 {
		return r.client.Del(ctx, keys...).Err()
	}
	return nil
}

func (r *redisCacheService) RevokeToken(ctx context.Context, tokenID string, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}
	return r.client.Set(ctx, keyPrefix+"revoked:"+tokenID, "1", ttl).Err()
}

func (r *redisCacheService) IsTokenRevoked(ctx context.Context, tokenID string) (bool, error) {
	n, err := r.client.Exists(ctx, keyPrefix+"revoked:"+tokenID).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (r *redisCacheService) IsRateLimited(ctx context.Context, key string, limit int, window time.Duration) (bool, error) {
	cacheKey := fmt.Sprintf("%sratelimit:%s", keyPrefix, key)
	count, err := r.client.Incr(ctx, cacheKey).Result()
	if err != nil {
		return true, err
	}

	// Set expiry on first request. A counter without a TTL would never reset,
	// so it is dropped when the expiry cannot be set.
	if count == 1 {
		if err := r.client.Expire(ctx, cacheKey, window).Err(); err != nil {
			log.Printf("WARN: Failed to set rate limit window on %s: %v", cacheKey, err)
			if err := r.client.Del(ctx, cacheKey).Err(); err != nil {
				log.Printf("WARN: Failed to drop rate limit counter %s: %v", cacheKey, err)
			}
		}
	}

	return count > int64(limit), nil
}

func (r *redisCacheService) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}

func (r *redisCacheService) getJSON(ctx context.Context, key string, dst any) (bool, error) {
	data, err := r.client.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return false, nil // cache miss
		}
		return false, err
	}
	if err := json.Unmarshal(data, dst); err != nil {
		return false, err
	}
	return true, nil
}

func (r *redisCacheService) setJSON(ctx context.Context, key string, value any, ttl time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return r.client.Set(ctx, key, data, ttl).Err()
}
