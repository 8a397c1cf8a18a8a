package rediscache

import (
	"context"
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/yungbote/trainwise-backend/internal/platform/envutil"
	"github.com/yungbote/trainwise-backend/internal/platform/logger"
)

const DefaultTTL = 7 * 24 * time.Hour

type Config struct {
	Addr      string
	Password  string
	DB        int
	KeyPrefix string
	TTL       time.Duration
}

func ConfigFromEnv() Config {
	return Config{
		Addr:      envutil.String("REDIS_ADDR", ""),
		Password:  envutil.String("REDIS_PASSWORD", ""),
		DB:        envutil.Int("REDIS_DB", 0),
		KeyPrefix: envutil.String("REDIS_EMBED_PREFIX", "tw:emb"),
		TTL:       envutil.Seconds("EMBED_CACHE_TTL_SECONDS", DefaultTTL),
	}
}

// EmbeddingCache stores query embeddings keyed by model and text.
type EmbeddingCache interface {
	Get(ctx context.Context, model, text string) ([]float32, bool, error)
	Set(ctx context.Context, model, text string, vec []float32) error
	Ping(ctx context.Context) error
	Close() error
}

type embeddingCache struct {
	log    *logger.Logger
	rdb    goredis.UniversalClient
	prefix string
	ttl    time.Duration
}

func NewEmbeddingCache(ctx context.Context, log *logger.Logger, cfg Config) (EmbeddingCache, error) {
	if log == nil {
		return nil, fmt.Errorf("logger required")
	}
	if strings.TrimSpace(cfg.Addr) == "" {
		return nil, fmt.Errorf("missing REDIS_ADDR")
	}
	rdb := goredis.NewClient(&goredis.Options{
		Addr:        cfg.Addr,
		Password:    cfg.Password,
		DB:          cfg.DB,
		DialTimeout: 5 * time.Second,
	})
	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := rdb.Ping(pingCtx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}
	return newEmbeddingCache(log, rdb, cfg), nil
}

func newEmbeddingCache(log *logger.Logger, rdb goredis.UniversalClient, cfg Config) *embeddingCache {
	prefix := strings.TrimSpace(cfg.KeyPrefix)
	if prefix == "" {
		prefix = "tw:emb"
	}
	ttl := cfg.TTL
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &embeddingCache{
		log:    log.With("service", "RedisEmbeddingCache"),
		rdb:    rdb,
		prefix: prefix,
		ttl:    ttl,
	}
}

func (c *embeddingCache) Get(ctx context.Context, model, text string) ([]float32, bool, error) {
	raw, err := c.rdb.Get(ctx, c.key(model, text)).Bytes()
	if errors.Is(err, goredis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	vec, err := DecodeVector(raw)
	if err != nil {
		c.log.Warn("Dropping corrupt cached embedding", "error", err)
		return nil, false, nil
	}
	return vec, true, nil
}

func (c *embeddingCache) Set(ctx context.Context, model, text string, vec []float32) error {
	if len(vec) == 0 {
		return nil
	}
	return c.rdb.Set(ctx, c.key(model, text), EncodeVector(vec), c.ttl).Err()
}

func (c *embeddingCache) Ping(ctx context.Context) error {
	return c.rdb.Ping(ctx).Err()
}

func (c *embeddingCache) Close() error {
	return c.rdb.Close()
}

func (c *embeddingCache) key(model, text string) string {
	return Key(c.prefix, model, text)
}

// Key hashes the normalized text so long queries produce bounded keys.
func Key(prefix, model, text string) string {
	sum := sha256.Sum256([]byte(strings.ToLower(strings.TrimSpace(text))))
	return prefix + ":" + strings.TrimSpace(model) + ":" + hex.EncodeToString(sum[:16])
}

// EncodeVector packs a vector as little-endian float32 values.
func EncodeVector(vec []float32) []byte {
	out := make([]byte, 4*len(vec))
	for i, v := range vec {
		binary.LittleEndian.PutUint32(out[4*i:], math.Float32bits(v))
	}
	return out
}

func DecodeVector(raw []byte) ([]float32, error) {
	if len(raw) == 0 || len(raw)%4 != 0 {
		return nil, fmt.Errorf("embedding payload length %d is not a multiple of 4", len(raw))
	}
	out := make([]float32, len(raw)/4)
	for i := range out {
		out[i] = math.Float32frombits(binary.LittleEndian.Uint32(raw[4*i:]))
	}
	return out, nil
}
