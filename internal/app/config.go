package app

import (
	"strings"
	"time"

	"github.com/yungbote/trainwise-backend/internal/modules/workout"
	"github.com/yungbote/trainwise-backend/internal/platform/envutil"
	"github.com/yungbote/trainwise-backend/internal/platform/logger"
)

const (
	OracleModeLLM  = "llm"
	OracleModeTopN = "topn"
)

type Config struct {
	Port         string
	Environment  string
	JWTSecretKey string
	AuthDisabled bool
	CORSOrigins  []string

	OracleMode     string
	RequestTimeout time.Duration
	// Namespace is the Qdrant payload namespace holding the exercise catalog.
	Namespace string
	Workout   workout.Config

	Migrate bool
}

func LoadConfig(log *logger.Logger) Config {
	cfg := Config{
		Port:         envutil.String("PORT", "8080"),
		Environment:  envutil.String("APP_ENV", "development"),
		JWTSecretKey: envutil.String("JWT_SECRET_KEY", ""),
		AuthDisabled: envutil.Bool("AUTH_DISABLED", false),
		CORSOrigins:  splitList(envutil.String("CORS_ALLOWED_ORIGINS", "")),

		OracleMode:     strings.ToLower(envutil.String("WORKOUT_ORACLE_MODE", OracleModeLLM)),
		RequestTimeout: envutil.Seconds("WORKOUT_REQUEST_TIMEOUT_SECONDS", 45*time.Second),
		Namespace:      envutil.String("WORKOUT_CATALOG_NAMESPACE", "catalog"),
		Workout: workout.Config{
			TopK:                envutil.Int("WORKOUT_RETRIEVAL_TOP_K", workout.DefaultTopK),
			ShortlistSize:       envutil.Int("WORKOUT_SHORTLIST_SIZE", 0),
			DisablePatternDedup: !envutil.Bool("WORKOUT_PATTERN_DEDUP", true),
			MaxCount:            envutil.Int("WORKOUT_MAX_COUNT", workout.DefaultMaxCount),
			MaxBatch:            envutil.Int("WORKOUT_MAX_BATCH", workout.DefaultMaxBatch),
		},
		Migrate: envutil.Bool("DB_AUTO_MIGRATE", true),
	}
	switch cfg.OracleMode {
	case OracleModeLLM, OracleModeTopN:
	default:
		if log != nil {
			log.Warn("unknown WORKOUT_ORACLE_MODE; using llm", "value", cfg.OracleMode)
		}
		cfg.OracleMode = OracleModeLLM
	}
	if cfg.JWTSecretKey == "" && !cfg.AuthDisabled && log != nil {
		log.Warn("JWT_SECRET_KEY is empty; every authenticated request will be rejected")
	}
	return cfg
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
