package observability

import (
	"context"
	"io"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/yungbote/trainwise-backend/internal/platform/envutil"
	"github.com/yungbote/trainwise-backend/internal/platform/logger"
)

type Metrics struct {
	apiRequests *CounterVec
	apiLatency  *HistogramVec
	apiInflight *Gauge

	llmRequests *CounterVec
	llmLatency  *HistogramVec
	llmTokens   *CounterVec
	llmCost     *CounterVec

	vectorOps     *CounterVec
	vectorLatency *HistogramVec
	embedCache    *CounterVec

	workouts         *CounterVec
	workoutLatency   *HistogramVec
	workoutExercises *CounterVec
	workoutPartial   *CounterVec
	workoutFiltered  *CounterVec
	workoutStage     *HistogramVec

	pgStats   *GaugeVec
	redisUp   *Gauge
	redisPing *Gauge

	costInputPer1K  float64
	costOutputPer1K float64
}

var (
	initOnce sync.Once
	instance *Metrics
)

func Enabled() bool {
	return envutil.Bool("METRICS_ENABLED", false)
}

// Current returns the process metrics, or nil when metrics are disabled.
// Every method on a nil *Metrics is a no-op.
func Current() *Metrics {
	return instance
}

func Init(log *logger.Logger) *Metrics {
	if !Enabled() {
		return nil
	}
	initOnce.Do(func() {
		instance = New()
		if log != nil {
			log.Info("metrics enabled")
		}
	})
	return instance
}

var latencyBuckets = []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2, 5, 10, 30}

// New builds an unregistered Metrics. Init installs one as Current.
func New() *Metrics {
	return &Metrics{
		apiRequests: NewCounterVec("tw_api_requests_total", "API requests by method/route/status.", []string{"method", "route", "status"}),
		apiLatency:  NewHistogramVec("tw_api_request_duration_seconds", "API latency by method/route/status.", []string{"method", "route", "status"}, latencyBuckets),
		apiInflight: NewGauge("tw_api_inflight_requests", "In-flight API requests."),

		llmRequests: NewCounterVec("tw_llm_requests_total", "LLM requests by model/endpoint/status.", []string{"model", "endpoint", "status"}),
		llmLatency:  NewHistogramVec("tw_llm_request_duration_seconds", "LLM request latency.", []string{"model", "endpoint", "status"}, latencyBuckets),
		llmTokens:   NewCounterVec("tw_llm_tokens_total", "LLM tokens by model/direction.", []string{"model", "direction"}),
		llmCost:     NewCounterVec("tw_llm_cost_usd_total", "Estimated LLM spend in USD.", []string{"model", "direction"}),

		vectorOps:     NewCounterVec("tw_vector_store_operations_total", "Vector store operations.", []string{"provider", "operation", "status"}),
		vectorLatency: NewHistogramVec("tw_vector_store_operation_duration_seconds", "Vector store latency.", []string{"provider", "operation", "status"}, nil),
		embedCache:    NewCounterVec("tw_embedding_cache_total", "Query embedding cache lookups.", []string{"result"}),

		workouts:         NewCounterVec("tw_workout_generations_total", "Workout generations by outcome.", []string{"status"}),
		workoutLatency:   NewHistogramVec("tw_workout_generation_duration_seconds", "End-to-end workout generation latency.", []string{"status"}, latencyBuckets),
		workoutExercises: NewCounterVec("tw_workout_exercises_total", "Exercises requested and delivered.", []string{"kind"}),
		workoutPartial:   NewCounterVec("tw_workout_partial_total", "Workouts delivered with fewer exercises than requested.", nil),
		workoutFiltered:  NewCounterVec("tw_workout_filtered_total", "Candidates removed per filter stage.", []string{"stage"}),
		workoutStage:     NewHistogramVec("tw_workout_stage_duration_seconds", "Pipeline stage latency.", []string{"stage", "status"}, nil),

		pgStats:   NewGaugeVec("tw_postgres_pool", "Postgres connection pool stats.", []string{"stat"}),
		redisUp:   NewGauge("tw_redis_up", "Redis reachability (1 up, 0 down)."),
		redisPing: NewGauge("tw_redis_ping_seconds", "Last Redis ping latency."),

		costInputPer1K:  envutil.Float("LLM_COST_INPUT_PER_1K", 0),
		costOutputPer1K: envutil.Float("LLM_COST_OUTPUT_PER_1K", 0),
	}
}

func (m *Metrics) WriteHTTP(w http.ResponseWriter, r *http.Request) {
	if m == nil {
		w.WriteHeader(http.StatusServiceUnavailable)
		return
	}
	w.Header().Set("Content-Type", "text/plain; version=0.0.4")
	_ = m.WritePrometheus(w)
}

type promWriter interface {
	WritePrometheus(w io.Writer) error
}

func (m *Metrics) WritePrometheus(w io.Writer) error {
	if m == nil {
		return nil
	}
	all := []promWriter{
		m.apiRequests, m.apiLatency, m.apiInflight,
		m.llmRequests, m.llmLatency, m.llmTokens, m.llmCost,
		m.vectorOps, m.vectorLatency, m.embedCache,
		m.workouts, m.workoutLatency, m.workoutExercises, m.workoutPartial, m.workoutFiltered, m.workoutStage,
		m.pgStats, m.redisUp, m.redisPing,
	}
	for _, s := range all {
		if err := s.WritePrometheus(w); err != nil {
			return err
		}
	}
	return nil
}

func (m *Metrics) ObserveAPI(method, route, status string, dur time.Duration) {
	if m == nil {
		return
	}
	m.apiRequests.Inc(method, route, status)
	m.apiLatency.Observe(dur.Seconds(), method, route, status)
}

func (m *Metrics) ApiInflightInc() {
	if m != nil {
		m.apiInflight.Inc()
	}
}

func (m *Metrics) ApiInflightDec() {
	if m != nil {
		m.apiInflight.Dec()
	}
}

func (m *Metrics) ObserveLLMRequest(model, endpoint, status string, dur time.Duration, inputTokens, outputTokens int) {
	if m == nil {
		return
	}
	model = strings.TrimSpace(model)
	m.llmRequests.Inc(model, endpoint, status)
	if dur > 0 {
		m.llmLatency.Observe(dur.Seconds(), model, endpoint, status)
	}
	if inputTokens > 0 {
		m.llmTokens.Add(float64(inputTokens), model, "input")
		m.llmCost.Add(float64(inputTokens)/1000*m.costInputPer1K, model, "input")
	}
	if outputTokens > 0 {
		m.llmTokens.Add(float64(outputTokens), model, "output")
		m.llmCost.Add(float64(outputTokens)/1000*m.costOutputPer1K, model, "output")
	}
}

func (m *Metrics) ObserveVectorStoreOperation(provider, operation, status string, dur time.Duration) {
	if m == nil {
		return
	}
	m.vectorOps.Inc(provider, operation, status)
	m.vectorLatency.Observe(dur.Seconds(), provider, operation, status)
}

// ObserveEmbeddingCache records "hit", "miss" or "error".
func (m *Metrics) ObserveEmbeddingCache(result string) {
	if m != nil {
		m.embedCache.Inc(result)
	}
}

func (m *Metrics) ObserveWorkout(status string, dur time.Duration, requested, delivered int) {
	if m == nil {
		return
	}
	m.workouts.Inc(status)
	m.workoutLatency.Observe(dur.Seconds(), status)
	if requested > 0 {
		m.workoutExercises.Add(float64(requested), "requested")
	}
	if delivered > 0 {
		m.workoutExercises.Add(float64(delivered), "delivered")
	}
	if status == "ok" && delivered < requested {
		m.workoutPartial.Inc()
	}
}

func (m *Metrics) AddWorkoutFiltered(stage string, n int) {
	if m == nil || n <= 0 {
		return
	}
	m.workoutFiltered.Add(float64(n), stage)
}

func (m *Metrics) ObserveWorkoutStage(stage, status string, dur time.Duration) {
	if m != nil {
		m.workoutStage.Observe(dur.Seconds(), stage, status)
	}
}

func scrapeInterval() time.Duration {
	return envutil.Seconds("METRICS_SCRAPE_INTERVAL_SECONDS", 10*time.Second)
}

func (m *Metrics) StartPostgresCollector(ctx context.Context, log *logger.Logger, db *gorm.DB) {
	if m == nil || db == nil {
		return
	}
	go func() {
		ticker := time.NewTicker(scrapeInterval())
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				sqlDB, err := db.DB()
				if err != nil {
					if log != nil {
						log.Warn("metrics: postgres stats unavailable", "error", err)
					}
					continue
				}
				s := sqlDB.Stats()
				m.pgStats.Set(float64(s.OpenConnections), "open_connections")
				m.pgStats.Set(float64(s.InUse), "in_use")
				m.pgStats.Set(float64(s.Idle), "idle")
				m.pgStats.Set(float64(s.WaitCount), "wait_count")
				m.pgStats.Set(s.WaitDuration.Seconds(), "wait_duration_seconds")
			}
		}
	}()
}

func (m *Metrics) StartRedisCollector(ctx context.Context, log *logger.Logger, addr string) {
	if m == nil || strings.TrimSpace(addr) == "" {
		return
	}
	rdb := redis.NewClient(&redis.Options{Addr: addr})
	go func() {
		ticker := time.NewTicker(scrapeInterval())
		defer ticker.Stop()
		defer rdb.Close()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				start := time.Now()
				if err := rdb.Ping(ctx).Err(); err != nil {
					m.redisUp.Set(0)
					if log != nil {
						log.Warn("metrics: redis ping failed", "error", err)
					}
					continue
				}
				m.redisUp.Set(1)
				m.redisPing.Set(time.Since(start).Seconds())
			}
		}
	}()
}

// StatusLabel maps an HTTP status code onto a metric label.
func StatusLabel(code int) string {
	if code <= 0 {
		return "0"
	}
	return strconv.Itoa(code)
}
