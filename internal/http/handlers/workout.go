package handlers

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/trainwise-backend/internal/domain/exercise"
	"github.com/yungbote/trainwise-backend/internal/http/response"
	"github.com/yungbote/trainwise-backend/internal/modules/workout"
	apperrors "github.com/yungbote/trainwise-backend/internal/pkg/errors"
	"github.com/yungbote/trainwise-backend/internal/platform/apierr"
	"github.com/yungbote/trainwise-backend/internal/platform/ctxutil"
	"github.com/yungbote/trainwise-backend/internal/platform/logger"
)

type WorkoutService interface {
	Generate(ctx context.Context, req exercise.WorkoutRequest) (workout.Result, error)
	GenerateBatch(ctx context.Context, req exercise.WorkoutRequest, n int) ([]workout.Result, error)
}

type WorkoutHandler struct {
	log      *logger.Logger
	workouts WorkoutService
	timeout  time.Duration
}

// NewWorkoutHandler builds the handler. A non-positive timeout leaves the
// request context untouched.
func NewWorkoutHandler(log *logger.Logger, workouts WorkoutService, timeout time.Duration) *WorkoutHandler {
	if log == nil {
		log = logger.NewNop()
	}
	return &WorkoutHandler{log: log.With("handler", "WorkoutHandler"), workouts: workouts, timeout: timeout}
}

type batchRequest struct {
	Request exercise.WorkoutRequest `json:"request"`
	Count   int                     `json:"count"`
}

// POST /api/workouts/generate
func (h *WorkoutHandler) Generate(c *gin.Context) {
	var req exercise.WorkoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	ctx, cancel := h.requestContext(c)
	defer cancel()
	req.UserID = ctxutil.UserID(ctx)

	res, err := h.workouts.Generate(ctx, req)
	if err != nil {
		h.respondWorkoutError(c, err)
		return
	}
	response.RespondOK(c, res)
}

// POST /api/workouts/batch
func (h *WorkoutHandler) GenerateBatch(c *gin.Context) {
	var body batchRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	if body.Count <= 0 {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", fmt.Errorf("count must be positive"))
		return
	}
	ctx, cancel := h.requestContext(c)
	defer cancel()
	body.Request.UserID = ctxutil.UserID(ctx)

	results, err := h.workouts.GenerateBatch(ctx, body.Request, body.Count)
	if err != nil {
		h.respondWorkoutError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"workouts": results})
}

func (h *WorkoutHandler) requestContext(c *gin.Context) (context.Context, context.CancelFunc) {
	ctx := c.Request.Context()
	if h.timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, h.timeout)
}

func (h *WorkoutHandler) respondWorkoutError(c *gin.Context, err error) {
	ae := classifyWorkoutError(err)
	_ = c.Error(err)
	if ae.StatusCode() >= http.StatusInternalServerError {
		h.log.Error("workout generation failed", append(ctxutil.LogFields(c.Request.Context()), "error", err)...)
	}
	response.RespondError(c, ae.StatusCode(), ae.Code, err)
}

func classifyWorkoutError(err error) *apierr.Error {
	if ae, ok := apierr.From(err); ok {
		return ae
	}
	var (
		nc *workout.NoCandidatesError
		oe *workout.OracleError
		re *workout.RetrievalError
	)
	switch {
	case errors.As(err, &nc):
		return apierr.New(http.StatusNotFound, "no_exercises_found", err)
	case errors.As(err, &oe):
		return apierr.New(http.StatusBadGateway, "selection_oracle_failed", err)
	case errors.As(err, &re):
		return apierr.New(http.StatusBadGateway, "retrieval_failed", err)
	case errors.Is(err, apperrors.ErrInvalidArgument):
		return apierr.New(http.StatusBadRequest, "invalid_request", err)
	case errors.Is(err, context.DeadlineExceeded):
		return apierr.New(http.StatusGatewayTimeout, "timeout", err)
	default:
		return apierr.New(http.StatusInternalServerError, "workout_generation_failed", err)
	}
}
