// Package storefactory abre el almacén clave/valor elegido por STORE_DRIVER.
package storefactory

import (
	"context"
	"fmt"

	"github.com/vcmdu/Stock-master/internal/domain/repository"
	"github.com/vcmdu/Stock-master/internal/infrastructure/memory"
	"github.com/vcmdu/Stock-master/internal/infrastructure/postgres"
	"github.com/vcmdu/Stock-master/internal/infrastructure/redisstore"
	"github.com/vcmdu/Stock-master/internal/infrastructure/sqlite"
	"github.com/vcmdu/Stock-master/pkg/config"
	"github.com/vcmdu/Stock-master/pkg/logger"
)

// Open conecta el almacén y devuelve la función que libera la conexión.
func Open(ctx context.Context, cfg *config.Config, log *logger.Logger) (repository.KVStore, func(), error) {
	switch cfg.Store.Driver {
	case config.DriverMemory:
		log.Warn().Msg("almacén en memoria: los datos se pierden al reiniciar")
		return memory.NewStore(), func() {}, nil

	case config.DriverSQLite:
		db, err := sqlite.Open(cfg.Store.SQLitePath)
		if err != nil {
			return nil, nil, err
		}
		log.Info().Str("path", cfg.Store.SQLitePath).Msg("almacén SQLite listo")
		return sqlite.NewStore(db), func() { _ = db.Close() }, nil

	case config.DriverRedis:
		client, err := redisstore.NewClient(ctx, redisstore.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
			Prefix:   cfg.Redis.Prefix,
		})
		if err != nil {
			return nil, nil, err
		}
		log.Info().Str("addr", cfg.Redis.Addr).Str("prefix", cfg.Redis.Prefix).Msg("almacén Redis listo")
		return redisstore.NewStore(client, cfg.Redis.Prefix), func() { _ = client.Close() }, nil

	case config.DriverPostgres:
		pool, err := postgres.NewPool(ctx, cfg.DB)
		if err != nil {
			return nil, nil, err
		}
		store := postgres.NewStore(pool)
		if err := store.EnsureSchema(ctx); err != nil {
			pool.Close()
			return nil, nil, err
		}
		log.Info().Msg("almacén PostgreSQL listo")
		return store, pool.Close, nil
	}
	return nil, nil, fmt.Errorf("storefactory: driver %q no soportado", cfg.Store.Driver)
}
