package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"github.com/yungbote/trainwise-backend/internal/modules/workout/retrieval"
	"github.com/yungbote/trainwise-backend/internal/platform/envutil"
	"github.com/yungbote/trainwise-backend/internal/platform/logger"
	"github.com/yungbote/trainwise-backend/internal/platform/openai"
	"github.com/yungbote/trainwise-backend/internal/platform/qdrant"
)

func main() {
	var (
		file      string
		namespace string
		batchSize int
		limit     int
	)
	flag.StringVar(&file, "file", "", "JSON array of exercise records")
	flag.StringVar(&namespace, "namespace", envutil.String("WORKOUT_CATALOG_NAMESPACE", "catalog"), "vector namespace")
	flag.IntVar(&batchSize, "batch", retrieval.DefaultIndexBatchSize, "records per embedding call")
	flag.IntVar(&limit, "limit", 0, "index at most this many records")
	flag.Parse()

	if file == "" {
		fmt.Println("-file is required")
		os.Exit(2)
	}
	log, err := logger.New(envutil.String("LOG_MODE", "development"))
	if err != nil {
		fmt.Printf("init logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	if err := run(context.Background(), log, file, namespace, batchSize, limit); err != nil {
		log.Error("Indexing failed", "error", err)
		log.Sync()
		os.Exit(1)
	}
}

func run(ctx context.Context, log *logger.Logger, file, namespace string, batchSize, limit int) error {
	raw, err := os.ReadFile(file)
	if err != nil {
		return fmt.Errorf("read %s: %w", file, err)
	}
	var records []retrieval.Record
	if err := json.Unmarshal(raw, &records); err != nil {
		return fmt.Errorf("decode %s: %w", file, err)
	}
	if limit > 0 && len(records) > limit {
		records = records[:limit]
	}

	aiCfg, err := openai.ConfigFromEnv()
	if err != nil {
		return err
	}
	ai, err := openai.NewClient(log, aiCfg)
	if err != nil {
		return err
	}
	qcfg, err := qdrant.ConfigFromEnv()
	if err != nil {
		return err
	}
	qcfg.AutoCreate = true
	store, err := qdrant.NewStore(ctx, log, qcfg)
	if err != nil {
		return err
	}

	ix, err := retrieval.NewIndexer(log, ai, store, namespace, batchSize)
	if err != nil {
		return err
	}
	n, err := ix.Index(ctx, records)
	if err != nil {
		return err
	}
	log.Info("Exercise catalogue indexed", "written", n, "records", len(records), "namespace", namespace)
	return nil
}
