package storage

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/go-redis/redis/v8"
)

var Redis *redis.Client

var cacheCtx = context.Background()

func InitializeRedis() {
	// Get Redis URL from environment, fallback to localhost for development
	redisURL := os.Getenv("REDIS_URL")
	if redisURL == "" {
		redisURL = "localhost:6379"
		log.Println("REDIS_URL not set, using localhost:6379 (development mode)")
	}

	Redis = redis.NewClient(&redis.Options{
		Addr:     redisURL,
		Password: "",
		DB:       0,
	})

	log.Println("Redis initialized with address:", redisURL)
}

// Availability responses are cached per unit and range, and every
// calendar mutation drops the unit's whole keyspace. Cache misses are
// silent; Redis being down must never fail a request.

const availabilityCacheTTL = 5 * time.Minute

func AvailabilityCacheKey(unitType string, unitID uint, start, end string) string {
	return fmt.Sprintf("avail:%s:%d:%s:%s", unitType, unitID, start, end)
}

func GetCachedAvailability(key string) (string, bool) {
	if Redis == nil {
		return "", false
	}
	val, err := Redis.Get(cacheCtx, key).Result()
	if err != nil {
		return "", false
	}
	return val, true
}

func CacheAvailability(key string, payload string) {
	if Redis == nil {
		return
	}
	Redis.Set(cacheCtx, key, payload, availabilityCacheTTL)
}

func InvalidateAvailability(unitType string, unitID uint) {
	if Redis == nil {
		return
	}
	pattern := fmt.Sprintf("avail:%s:%d:*", unitType, unitID)
	keys, err := Redis.Keys(cacheCtx, pattern).Result()
	if err != nil || len(keys) == 0 {
		return
	}
	Redis.Del(cacheCtx, keys...)
}
