package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

type RedisClient struct {
	client     *redis.Client
	prefix     string
	defaultTTL time.Duration
}

func NewRedisClient(addr string, poolSize int, defaultTTL time.Duration) *RedisClient {
	client := redis.NewClient(&redis.Options{
		Addr: addr,

		// Pool dimensionado para leituras concorrentes do dashboard
		PoolSize:     poolSize,
		MinIdleConns: 2,

		// Timeouts curtos: cache que demora mais que o banco não serve
		DialTimeout:  5 * time.Second,
		ReadTimeout:  1 * time.Second,
		WriteTimeout: 1 * time.Second,

		MaxRetries:      3,
		MinRetryBackoff: 50 * time.Millisecond,
		MaxRetryBackoff: 500 * time.Millisecond,
	})

	return &RedisClient{
		client:     client,
		defaultTTL: defaultTTL,
	}
}

// WithPrefix devolve um client que prefixa todas as chaves, usado nos
// testes para isolar o espaço de chaves.
func (rc *RedisClient) WithPrefix(prefix string) *RedisClient {
	return &RedisClient{
		client:     rc.client,
		prefix:     prefix,
		defaultTTL: rc.defaultTTL,
	}
}

func (rc *RedisClient) SetKey(ctx context.Context, key string, value string) error {
	fields := map[string]interface{}{
		"data":      value,
		"cached_at": time.Now().Unix(),
	}

	err := rc.client.HSet(ctx, rc.prefix+key, fields).Err()
	if err != nil {
		return err
	}

	return rc.client.Expire(ctx, rc.prefix+key, rc.defaultTTL).Err()
}

func (rc *RedisClient) GetKey(ctx context.Context, key string) (string, bool, error) {
	result := rc.client.HGet(ctx, rc.prefix+key, "data")

	// Cache miss
	if result.Err() == redis.Nil {
		return "", false, nil
	}
	if result.Err() != nil {
		return "", false, result.Err()
	}

	return result.Val(), true, nil
}

func (rc *RedisClient) DeleteKeys(ctx context.Context, keys ...string) error {
	prefixed := make([]string, 0, len(keys))
	for _, key := range keys {
		prefixed = append(prefixed, rc.prefix+key)
	}

	return rc.client.Del(ctx, prefixed...).Err()
}

// KeysByPrefix varre as chaves sob o prefixo do client.
func (rc *RedisClient) KeysByPrefix(ctx context.Context) ([]string, error) {
	var keys []string
	var cursor uint64

	for {
		batch, next, err := rc.client.Scan(ctx, cursor, rc.prefix+"*", 100).Result()
		if err != nil {
			return nil, err
		}

		keys = append(keys, batch...)
		if next == 0 {
			return keys, nil
		}
		cursor = next
	}
}

// FlushByPrefix remove todas as chaves sob o prefixo do client, usado
// nos testes para começar cada caso com o cache vazio.
func (rc *RedisClient) FlushByPrefix(ctx context.Context) error {
	if rc.prefix == "" {
		return fmt.Errorf("flush sem prefixo apagaria o keyspace inteiro")
	}

	keys, err := rc.KeysByPrefix(ctx)
	if err != nil {
		return err
	}
	if len(keys) == 0 {
		return nil
	}

	return rc.client.Del(ctx, keys...).Err()
}

func (rc *RedisClient) HealthCheck(ctx context.Context) error {
	return rc.client.Ping(ctx).Err()
}
