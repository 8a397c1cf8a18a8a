package app

import (
	"fmt"

	"github.com/yungbote/trainwise-backend/internal/data/repos"
	"github.com/yungbote/trainwise-backend/internal/modules/workout"
	"github.com/yungbote/trainwise-backend/internal/modules/workout/catalog"
	"github.com/yungbote/trainwise-backend/internal/modules/workout/oracle"
	"github.com/yungbote/trainwise-backend/internal/modules/workout/prescription"
	"github.com/yungbote/trainwise-backend/internal/modules/workout/retrieval"
	"github.com/yungbote/trainwise-backend/internal/modules/workout/selection"
	"github.com/yungbote/trainwise-backend/internal/platform/logger"
)

func wireWorkout(log *logger.Logger, cfg Config, clients Clients, reposet repos.Repos) (workout.Usecases, error) {
	log.Info("Wiring workout engine...", "oracle_mode", cfg.OracleMode)

	cat := catalog.Resolve(log)
	catalog.Install(cat)

	deps := retrieval.Deps{
		Log:        log,
		Embedder:   clients.OpenAI,
		Store:      clients.Vectors,
		Namespace:  cfg.Namespace,
		EmbedModel: clients.EmbedModel,
	}
	// A nil interface value must stay nil so the retriever skips the cache.
	if clients.EmbedCache != nil {
		deps.Cache = clients.EmbedCache
	}
	retriever, err := retrieval.NewVectorRetriever(deps)
	if err != nil {
		return workout.Usecases{}, fmt.Errorf("init retriever: %w", err)
	}

	var picker selection.Oracle
	if cfg.OracleMode == OracleModeLLM {
		llm, err := oracle.NewLLMOracle(log, clients.OpenAI)
		if err != nil {
			return workout.Usecases{}, fmt.Errorf("init selection oracle: %w", err)
		}
		picker = llm
	}

	return workout.New(workout.UsecasesDeps{
		Log:        log,
		Catalog:    cat,
		Retriever:  retriever,
		Oracle:     picker,
		Strength:   reposet.Strength,
		Programs:   reposet.Program,
		Classifier: prescription.NewKeywordClassifier(cat),
		Config:     cfg.Workout,
	}), nil
}
