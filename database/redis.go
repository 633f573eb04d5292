package database

import (
	"context"
	"log"
	"os"

	"github.com/redis/go-redis/v9"
)

var Redis *redis.Client

// InitRedis connects the reservation-ledger mirror. REDIS_ADDR unset or
// unreachable means the session runs memory-only, the same way a browser
// with storage disabled would.
func InitRedis() *redis.Client {
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		log.Println("REDIS_ADDR not set, reservation ledger will not be mirrored")
		return nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: os.Getenv("REDIS_PASSWORD"),
		DB:       0,
	})
	if err := client.Ping(context.Background()).Err(); err != nil {
		log.Printf("Failed to ping redis at %s: %v; reservation ledger will not be mirrored", addr, err)
		return nil
	}

	Redis = client
	log.Printf("Connected to redis at %s", addr)
	return client
}
