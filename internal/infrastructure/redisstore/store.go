package redisstore

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"github.com/vcmdu/Stock-master/internal/domain/repository"
)

var (
	_ repository.BatchKVStore = (*Store)(nil)
	_ repository.SizedKVStore = (*Store)(nil)
)

// Options conexión a Redis.
type Options struct {
	Addr     string
	Password string
	DB       int
	// Prefix se antepone a cada clave (p. ej. "stockmaster:") para compartir la instancia.
	Prefix string
}

// NewClient crea el cliente y verifica la conexión con un ping de 5 segundos.
func NewClient(ctx context.Context, opts Options) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     opts.Addr,
		Password: opts.Password,
		DB:       opts.DB,
	})

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis: ping: %w", err)
	}
	return client, nil
}

// Store almacén clave/valor sobre Redis (GET/SET sin expiración).
type Store struct {
	client redis.Cmdable
	prefix string
}

// NewStore construye el almacén.
func NewStore(client redis.Cmdable, prefix string) *Store {
	return &Store{client: client, prefix: prefix}
}

func (s *Store) Get(ctx context.Context, key string) (string, bool, error) {
	v, err := s.client.Get(ctx, s.prefix+key).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("redis get %s: %w", key, err)
	}
	return v, true, nil
}

func (s *Store) Set(ctx context.Context, key, value string) error {
	if err := s.client.Set(ctx, s.prefix+key, value, 0).Err(); err != nil {
		return fmt.Errorf("redis set %s: %w", key, err)
	}
	return nil
}

// SetMany escribe todas las claves en un MULTI/EXEC.
func (s *Store) SetMany(ctx context.Context, values map[string]string) error {
	_, err := s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		for key, value := range values {
			pipe.Set(ctx, s.prefix+key, value, 0)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("redis set: %w", err)
	}
	return nil
}

// Size recorre con SCAN las claves del prefijo y suma sus STRLEN.
func (s *Store) Size(ctx context.Context) (decimal.Decimal, error) {
	var (
		total  int64
		cursor uint64
	)
	for {
		keys, next, err := s.client.Scan(ctx, cursor, s.prefix+"*", 100).Result()
		if err != nil {
			return decimal.Zero, fmt.Errorf("redis scan: %w", err)
		}
		for _, key := range keys {
			n, err := s.client.StrLen(ctx, key).Result()
			if err != nil {
				return decimal.Zero, fmt.Errorf("redis strlen %s: %w", key, err)
			}
			total += n
		}
		if next == 0 {
			return decimal.NewFromInt(total), nil
		}
		cursor = next
	}
}
