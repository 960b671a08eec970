// Package cache agrega un cache read-through en Redis delante de las lecturas del backend.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/jhoicas/Backoffice-api/internal/domain/entity"
	"github.com/jhoicas/Backoffice-api/internal/domain/repository"
	"github.com/jhoicas/Backoffice-api/internal/infrastructure/telemetry"
)

const keyPrefix = "backoffice:"

// Resultados de búsqueda reportados a métricas.
const (
	resultHit   = "hit"
	resultMiss  = "miss"
	resultError = "error"
)

// Store operaciones mínimas de Redis que usa el cache.
type Store interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
}

// RedisStore adapta *redis.Client a Store.
type RedisStore struct {
	client *redis.Client
}

// Options conexión a Redis.
type Options struct {
	Addr     string
	Password string
	DB       int
}

// NewRedisStore crea el cliente. No hace ping: una caída de Redis solo degrada a lecturas directas.
func NewRedisStore(opts Options) *RedisStore {
	return &RedisStore{client: redis.NewClient(&redis.Options{
		Addr:         opts.Addr,
		Password:     opts.Password,
		DB:           opts.DB,
		DialTimeout:  2 * time.Second,
		ReadTimeout:  time.Second,
		WriteTimeout: time.Second,
	})}
}

func (s *RedisStore) Get(ctx context.Context, key string) (string, bool, error) {
	val, err := s.client.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return val, true, nil
}

func (s *RedisStore) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	return s.client.Set(ctx, key, value, ttl).Err()
}

// Ping verifica la conexión (health check).
func (s *RedisStore) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

// Close libera el pool de conexiones.
func (s *RedisStore) Close() error {
	return s.client.Close()
}

// Source decora un BackofficeSource. Los errores de Redis nunca hacen fallar una lectura.
type Source struct {
	next    repository.BackofficeSource
	store   Store
	ttl     time.Duration
	log     zerolog.Logger
	metrics *telemetry.Metrics
}

// NewSource envuelve next con el cache. metrics puede ser nil.
func NewSource(next repository.BackofficeSource, store Store, ttl time.Duration, log zerolog.Logger, metrics *telemetry.Metrics) *Source {
	return &Source{next: next, store: store, ttl: ttl, log: log, metrics: metrics}
}

var _ repository.BackofficeSource = (*Source)(nil)

// readThrough busca key en Redis y, si no está, llama a load y guarda el resultado.
func readThrough[T any](ctx context.Context, s *Source, collection, key string, load func(context.Context) ([]T, error)) ([]T, error) {
	key = keyPrefix + key
	raw, ok, err := s.store.Get(ctx, key)
	switch {
	case err != nil:
		s.metrics.ObserveCache(collection, resultError)
		s.log.Warn().Err(err).Str("collection", collection).Msg("cache: lectura fallida, se consulta el backend")
	case ok:
		var items []T
		if err := json.Unmarshal([]byte(raw), &items); err == nil {
			s.metrics.ObserveCache(collection, resultHit)
			return items, nil
		}
		s.metrics.ObserveCache(collection, resultError)
		s.log.Warn().Str("collection", collection).Msg("cache: valor corrupto, se descarta")
	default:
		s.metrics.ObserveCache(collection, resultMiss)
	}

	items, err := load(ctx)
	if err != nil {
		return nil, err
	}
	payload, err := json.Marshal(items)
	if err != nil {
		return items, nil
	}
	if err := s.store.Set(ctx, key, payload, s.ttl); err != nil {
		s.log.Warn().Err(err).Str("collection", collection).Msg("cache: escritura fallida")
	}
	return items, nil
}

func (s *Source) ListInventory(ctx context.Context) ([]entity.InventoryLevel, error) {
	return readThrough(ctx, s, "inventory", "inventory", s.next.ListInventory)
}

func (s *Source) ListProducts(ctx context.Context) ([]entity.Product, error) {
	return readThrough(ctx, s, "products", "products", s.next.ListProducts)
}

func (s *Source) ListWarehouses(ctx context.Context) ([]entity.Warehouse, error) {
	return readThrough(ctx, s, "warehouses", "warehouses", s.next.ListWarehouses)
}

func (s *Source) ListCustomers(ctx context.Context) ([]entity.Customer, error) {
	return readThrough(ctx, s, "customers", "customers", s.next.ListCustomers)
}

func (s *Source) ListOrders(ctx context.Context, q repository.OrderQuery) ([]entity.Order, error) {
	return readThrough(ctx, s, "orders", ordersKey(q), func(ctx context.Context) ([]entity.Order, error) {
		return s.next.ListOrders(ctx, q)
	})
}

func (s *Source) ListReturns(ctx context.Context) ([]entity.Return, error) {
	return readThrough(ctx, s, "returns", "returns", s.next.ListReturns)
}

func (s *Source) ListInvoices(ctx context.Context) ([]entity.Invoice, error) {
	return readThrough(ctx, s, "proforma-invoices", "proforma-invoices", s.next.ListInvoices)
}

// ordersKey incluye los filtros para no mezclar consultas distintas.
func ordersKey(q repository.OrderQuery) string {
	return fmt.Sprintf("orders:%s:%s:%s", unixOrEmpty(q.StartDate), unixOrEmpty(q.EndDate), q.Status)
}

func unixOrEmpty(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return fmt.Sprint(t.Unix())
}
