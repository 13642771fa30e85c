package lib

import (
	"log"

	"github.com/redis/go-redis/v9"
)

// NewRedisClient parses the connection URL and returns a client, or nil when
// redis is not configured. Callers treat a nil client as cache-off.
func NewRedisClient(redisURL string) *redis.Client {
	if redisURL == "" {
		return nil
	}
	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		log.Printf("[redis] Error parsing connection string: %s\n", err.Error())
		return nil
	}
	return redis.NewClient(opt)
}
