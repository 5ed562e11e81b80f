package config

import (
	"context"
	"log"
	"time"

	"github.com/go-redis/redis/v8"
)

// ConnectRedis returns a client for cfg.Addr, or nil if Redis is not
// configured or cannot be reached.
func ConnectRedis(cfg RedisConfig) *redis.Client {
	if cfg.Addr == "" {
		log.Println("REDIS_ADDR not set, password reset throttling disabled")
		return nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:         cfg.Addr,
		Password:     cfg.Password,
		DB:           cfg.DB,
		DialTimeout:  10 * time.Second,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		PoolSize:     10,
		MinIdleConns: 5,
		MaxRetries:   3,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if _, err := client.Ping(ctx).Result(); err != nil {
		log.Printf("Warning: Redis connection failed: %v", err)
		log.Println("Password reset throttling will be disabled")
		_ = client.Close()
		return nil
	}

	log.Println("Connected to Redis")
	return client
}
