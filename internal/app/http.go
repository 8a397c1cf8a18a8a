package app

import (
	"github.com/gin-gonic/gin"

	"github.com/yungbote/trainwise-backend/internal/data/db"
	"github.com/yungbote/trainwise-backend/internal/http"
	httpH "github.com/yungbote/trainwise-backend/internal/http/handlers"
	httpMW "github.com/yungbote/trainwise-backend/internal/http/middleware"
	"github.com/yungbote/trainwise-backend/internal/modules/workout"
	"github.com/yungbote/trainwise-backend/internal/observability"
	"github.com/yungbote/trainwise-backend/internal/platform/logger"
)

const serviceName = "trainwise"

func wireRouter(log *logger.Logger, cfg Config, pg *db.PostgresService, clients Clients, workouts workout.Usecases) *gin.Engine {
	log.Info("Wiring HTTP router...")

	checks := map[string]httpH.Pinger{"postgres": pg}
	if clients.EmbedCache != nil {
		checks["redis"] = clients.EmbedCache
	}

	return http.NewRouter(http.RouterConfig{
		Log:         log,
		ServiceName: serviceName,
		CORSOrigins: cfg.CORSOrigins,
		Metrics:     observability.Current(),
		AuthMiddleware: httpMW.NewAuthMiddleware(log, httpMW.AuthConfig{
			SecretKey: cfg.JWTSecretKey,
			Disabled:  cfg.AuthDisabled,
		}),
		WorkoutHandler: httpH.NewWorkoutHandler(log, workouts, cfg.RequestTimeout),
		HealthHandler:  httpH.NewHealthHandler(checks),
	})
}
