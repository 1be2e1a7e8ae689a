package repositories

import (
	"context"
	"encoding/json"
	"fmt"

	"tailor-shop/models"

	"github.com/redis/go-redis/v9"
)

const redisCartKey = "storefront:cart"

// RedisCartStore keeps the cart in a box-local Redis, for kiosk deployments
// where several storefront processes share one machine-wide cache.
type RedisCartStore struct {
	client *redis.Client
}

func NewRedisCartStore(addr, password string) (*RedisCartStore, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       0,
	})

	if err := client.Ping(context.Background()).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("redis connection failed: %w", err)
	}

	return &RedisCartStore{client: client}, nil
}

func (s *RedisCartStore) Load(ctx context.Context) (models.Cart, error) {
	raw, err := s.client.Get(ctx, redisCartKey).Bytes()
	if err == redis.Nil {
		return models.Cart{}, nil
	}
	if err != nil {
		return models.Cart{}, err
	}

	var cart models.Cart
	if err := json.Unmarshal(raw, &cart); err != nil {
		return models.Cart{}, fmt.Errorf("corrupt cart payload: %w", err)
	}
	return cart, nil
}

func (s *RedisCartStore) Save(ctx context.Context, cart models.Cart) error {
	raw, err := json.Marshal(cart)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, redisCartKey, raw, 0).Err()
}

func (s *RedisCartStore) Close() error {
	return s.client.Close()
}
