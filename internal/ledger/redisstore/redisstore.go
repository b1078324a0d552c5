package redisstore

import (
	"context"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"

	"github.com/pupbiru/humanitix-auto-codes/internal/ledger"
	"github.com/pupbiru/humanitix-auto-codes/internal/logger"
)

const keyPrefix = "autocodes:ledger:"

// Store keeps the ledger in Redis, for deployments that run the tool from
// more than one host against shared state.
type Store struct {
	Client *redis.Client
}

// New connects to Redis and verifies the connection before returning a store.
func New(addr string, log *logger.Logger) (*Store, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: "",
		DB:       0,
		PoolSize: 10,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if _, err := client.Ping(ctx).Result(); err != nil {
		log.Error("LEDGER", fmt.Sprintf("Failed to connect to Redis at %s: %v", addr, err))
		return nil, fmt.Errorf("connect to redis at %s: %w", addr, err)
	}

	log.Info("LEDGER", fmt.Sprintf("Connected to Redis at %s", addr))
	return &Store{Client: client}, nil
}

func (s *Store) Get(ctx context.Context, eventID string) (ledger.Marker, error) {
	val, err := s.Client.Get(ctx, keyPrefix+eventID).Result()
	if err == redis.Nil {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("get ledger marker for %s: %w", eventID, err)
	}
	return ledger.Marker(val), nil
}

func (s *Store) Set(ctx context.Context, eventID string, marker ledger.Marker) error {
	if err := s.Client.Set(ctx, keyPrefix+eventID, string(marker), 0).Err(); err != nil {
		return fmt.Errorf("set ledger marker for %s: %w", eventID, err)
	}
	return nil
}
