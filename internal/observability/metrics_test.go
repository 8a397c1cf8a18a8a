package observability

import (
	"bytes"
	"strings"
	"testing"
	"time"
)

func TestNilMetricsIsNoop(t *testing.T) {
	var m *Metrics
	m.ObserveAPI("GET", "/x", "200", time.Millisecond)
	m.ApiInflightInc()
	m.ObserveLLMRequest("gpt", "/v1/responses", "200", time.Second, 10, 5)
	m.ObserveVectorStoreOperation("qdrant", "search", "success", time.Millisecond)
	m.ObserveEmbeddingCache("hit")
	m.ObserveWorkout("ok", time.Second, 6, 5)
	m.AddWorkoutFiltered("injury", 3)
	m.ObserveWorkoutStage("retrieve", "ok", time.Millisecond)
	if err := m.WritePrometheus(&bytes.Buffer{}); err != nil {
		t.Fatalf("WritePrometheus on nil: %v", err)
	}
}

func TestWorkoutSeries(t *testing.T) {
	m := New()
	m.ObserveWorkout("ok", 200*time.Millisecond, 6, 5)
	m.ObserveWorkout("no_candidates", 50*time.Millisecond, 4, 0)
	m.AddWorkoutFiltered("equipment", 7)
	m.AddWorkoutFiltered("equipment", 0)
	m.ObserveWorkoutStage("rank", "ok", time.Millisecond)

	if got := m.workouts.Value("ok"); got != 1 {
		t.Fatalf("ok generations: want=1 got=%v", got)
	}
	if got := m.workoutExercises.Value("requested"); got != 10 {
		t.Fatalf("requested: want=10 got=%v", got)
	}
	if got := m.workoutPartial.Value(); got != 1 {
		t.Fatalf("partial: want=1 got=%v", got)
	}
	if got := m.workoutFiltered.Value("equipment"); got != 7 {
		t.Fatalf("filtered: want=7 got=%v", got)
	}
	if got := m.workoutStage.Count("rank", "ok"); got != 1 {
		t.Fatalf("stage count: want=1 got=%d", got)
	}
}

func TestWritePrometheusFormat(t *testing.T) {
	m := New()
	m.ObserveAPI("POST", "/api/workouts/generate", "200", 30*time.Millisecond)
	m.ApiInflightInc()
	m.ApiInflightInc()
	m.ApiInflightDec()

	var buf bytes.Buffer
	if err := m.WritePrometheus(&buf); err != nil {
		t.Fatalf("WritePrometheus: %v", err)
	}
	out := buf.String()
	for _, want := range []string{
		"# TYPE tw_api_requests_total counter",
		`tw_api_requests_total{method="POST",route="/api/workouts/generate",status="200"} 1`,
		`tw_api_request_duration_seconds_bucket{method="POST",route="/api/workouts/generate",status="200",le="0.05"} 1`,
		`tw_api_request_duration_seconds_bucket{method="POST",route="/api/workouts/generate",status="200",le="0.025"} 0`,
		"tw_api_inflight_requests 1",
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("missing %q in:\n%s", want, out)
		}
	}
}

func TestLabelEscaping(t *testing.T) {
	got := labelString([]string{"a", "b"}, []string{`x"y`})
	if got != `{a="x\"y",b="unknown"}` {
		t.Fatalf("labels: got=%s", got)
	}
}
