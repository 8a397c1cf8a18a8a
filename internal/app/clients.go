package app

import (
	"context"
	"fmt"
	"strings"

	"github.com/yungbote/trainwise-backend/internal/observability"
	"github.com/yungbote/trainwise-backend/internal/platform/logger"
	"github.com/yungbote/trainwise-backend/internal/platform/openai"
	"github.com/yungbote/trainwise-backend/internal/platform/qdrant"
	"github.com/yungbote/trainwise-backend/internal/platform/rediscache"
)

type Clients struct {
	OpenAI     openai.Client
	EmbedModel string
	Vectors    qdrant.Store
	// Optional: nil when REDIS_ADDR is unset.
	EmbedCache rediscache.EmbeddingCache
}

func wireClients(ctx context.Context, log *logger.Logger) (Clients, error) {
	log.Info("Wiring clients...")

	aiCfg, err := openai.ConfigFromEnv()
	if err != nil {
		return Clients{}, fmt.Errorf("openai config: %w", err)
	}
	ai, err := openai.NewClient(log, aiCfg)
	if err != nil {
		return Clients{}, fmt.Errorf("init openai client: %w", err)
	}

	qcfg, err := qdrant.ConfigFromEnv()
	if err != nil {
		return Clients{}, fmt.Errorf("qdrant config: %w", err)
	}
	store, err := qdrant.NewStore(ctx, log, qcfg)
	if err != nil {
		return Clients{}, fmt.Errorf("init qdrant store: %w", err)
	}

	var cache rediscache.EmbeddingCache
	if rcfg := rediscache.ConfigFromEnv(); strings.TrimSpace(rcfg.Addr) != "" {
		c, err := rediscache.NewEmbeddingCache(ctx, log, rcfg)
		if err != nil {
			// The cache only saves embedding calls; run without it.
			log.Warn("redis embedding cache unavailable", "addr", rcfg.Addr, "error", err)
		} else {
			cache = c
		}
	}

	return Clients{
		OpenAI:     ai,
		EmbedModel: aiCfg.EmbedModel,
		Vectors:    qdrant.Metered(store, observability.Current()),
		EmbedCache: cache,
	}, nil
}

func (c *Clients) Close() {
	if c == nil {
		return
	}
	if c.EmbedCache != nil {
		_ = c.EmbedCache.Close()
	}
}
