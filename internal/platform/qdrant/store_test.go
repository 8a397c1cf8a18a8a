package qdrant

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"testing"

	"github.com/yungbote/trainwise-backend/internal/platform/logger"
)

type roundTripFunc func(*http.Request) (*http.Response, error)

func (f roundTripFunc) RoundTrip(r *http.Request) (*http.Response, error) { return f(r) }

func newTestStore(t *testing.T, fn roundTripFunc) *store {
	t.Helper()
	return &store{
		log:     logger.NewNop(),
		cfg:     Config{URL: "http://qdrant.test", Collection: "exercises", NamespacePrefix: "tw", VectorDim: 3},
		baseURL: "http://qdrant.test",
		http:    &http.Client{Transport: fn},
	}
}

func jsonResponse(t *testing.T, status int, body any) *http.Response {
	t.Helper()
	raw, err := json.Marshal(body)
	if err != nil {
		t.Fatalf("marshal response: %v", err)
	}
	return &http.Response{
		StatusCode: status,
		Header:     http.Header{"Content-Type": []string{"application/json"}},
		Body:       io.NopCloser(bytes.NewReader(raw)),
	}
}

func okResponse(t *testing.T, result any) *http.Response {
	return jsonResponse(t, http.StatusOK, map[string]any{"status": "ok", "result": result, "time": 0.001})
}

func TestUpsertWritesNamespacedPoints(t *testing.T) {
	var captured map[string]any
	s := newTestStore(t, func(r *http.Request) (*http.Response, error) {
		if r.Method != http.MethodPut {
			t.Fatalf("method: want=%s got=%s", http.MethodPut, r.Method)
		}
		if r.URL.Path != "/collections/exercises/points" || r.URL.RawQuery != "wait=true" {
			t.Fatalf("url: got=%s", r.URL.String())
		}
		if err := json.NewDecoder(r.Body).Decode(&captured); err != nil {
			t.Fatalf("decode body: %v", err)
		}
		return okResponse(t, map[string]any{"status": "acknowledged"}), nil
	})

	payload := map[string]any{"name": "barbell_bench_press", "equipment": "barbell"}
	err := s.Upsert(context.Background(), "catalog", []Point{
		{ID: "0025", Vector: []float32{0.1, 0.2, 0.3}, Payload: payload},
	})
	if err != nil {
		t.Fatalf("Upsert: %v", err)
	}
	points, _ := captured["points"].([]any)
	if len(points) != 1 {
		t.Fatalf("points: want=1 got=%d", len(points))
	}
	first := points[0].(map[string]any)
	if first["id"] != pointID("tw:catalog", "0025") {
		t.Fatalf("point id: got=%v", first["id"])
	}
	got := first["payload"].(map[string]any)
	if got[payloadNamespaceKey] != "tw:catalog" || got[payloadPointKey] != "0025" {
		t.Fatalf("payload bookkeeping: got=%v", got)
	}
	if _, mutated := payload[payloadNamespaceKey]; mutated {
		t.Fatalf("input payload was mutated")
	}
}

func TestUpsertRejectsWrongDimension(t *testing.T) {
	s := newTestStore(t, func(r *http.Request) (*http.Response, error) {
		t.Fatalf("unexpected request to %s", r.URL)
		return nil, nil
	})
	err := s.Upsert(context.Background(), "catalog", []Point{{ID: "x", Vector: []float32{1, 2}}})
	var oe *OperationError
	if !errors.As(err, &oe) || oe.Code != OperationErrorValidation {
		t.Fatalf("error: want validation OperationError got=%v", err)
	}
}

func TestSearchFiltersNamespaceAndStripsBookkeeping(t *testing.T) {
	var captured map[string]any
	s := newTestStore(t, func(r *http.Request) (*http.Response, error) {
		if r.URL.Path != "/collections/exercises/points/search" {
			t.Fatalf("path: got=%s", r.URL.Path)
		}
		if err := json.NewDecoder(r.Body).Decode(&captured); err != nil {
			t.Fatalf("decode body: %v", err)
		}
		return okResponse(t, []map[string]any{
			{"id": "abc", "score": 0.91, "payload": map[string]any{
				payloadNamespaceKey: "tw:catalog", payloadPointKey: "0025", "name": "barbell_bench_press",
			}},
			{"id": 7, "score": 0.5, "payload": map[string]any{"name": "push_up"}},
		}), nil
	})

	matches, err := s.Search(context.Background(), "catalog", []float32{1, 0, 0}, 10)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if captured["limit"] != float64(10) {
		t.Fatalf("limit: want=10 got=%v", captured["limit"])
	}
	filter := captured["filter"].(map[string]any)
	must := filter["must"].([]any)
	cond := must[0].(map[string]any)
	if cond["key"] != payloadNamespaceKey || cond["match"].(map[string]any)["value"] != "tw:catalog" {
		t.Fatalf("namespace filter: got=%v", cond)
	}
	if len(matches) != 2 {
		t.Fatalf("matches: want=2 got=%d", len(matches))
	}
	if matches[0].ID != "0025" || matches[0].Score != 0.91 {
		t.Fatalf("first match: got=%+v", matches[0])
	}
	if _, ok := matches[0].Payload[payloadNamespaceKey]; ok {
		t.Fatalf("bookkeeping key leaked into payload")
	}
	if matches[1].ID != "7" {
		t.Fatalf("numeric id fallback: want=7 got=%q", matches[1].ID)
	}
}

func TestSearchNormalizesEuclidScores(t *testing.T) {
	s := newTestStore(t, func(r *http.Request) (*http.Response, error) {
		return okResponse(t, []map[string]any{{"id": "a", "score": 1.0, "payload": map[string]any{}}}), nil
	})
	s.distance = "Euclid"
	matches, err := s.Search(context.Background(), "", []float32{1, 0, 0}, 1)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if matches[0].Score != 0.5 {
		t.Fatalf("score: want=0.5 got=%v", matches[0].Score)
	}
}

func TestSearchSurfacesHTTPStatus(t *testing.T) {
	s := newTestStore(t, func(r *http.Request) (*http.Response, error) {
		return jsonResponse(t, http.StatusServiceUnavailable, map[string]any{"status": map[string]any{"error": "overloaded"}}), nil
	})
	_, err := s.Search(context.Background(), "catalog", []float32{1, 0, 0}, 5)
	var oe *OperationError
	if !errors.As(err, &oe) {
		t.Fatalf("error type: got=%T", err)
	}
	if oe.HTTPStatusCode() != http.StatusServiceUnavailable || oe.Code != OperationErrorQueryFailed {
		t.Fatalf("operation error: got=%+v", oe)
	}
}

func TestSearchEnvelopeErrorStatus(t *testing.T) {
	s := newTestStore(t, func(r *http.Request) (*http.Response, error) {
		return jsonResponse(t, http.StatusOK, map[string]any{"status": map[string]any{"error": "bad filter"}}), nil
	})
	_, err := s.Search(context.Background(), "catalog", []float32{1, 0, 0}, 5)
	var oe *OperationError
	if !errors.As(err, &oe) || oe.Message != "bad filter" {
		t.Fatalf("envelope error: got=%v", err)
	}
}

func TestBootstrapCreatesMissingCollection(t *testing.T) {
	var created bool
	s := newTestStore(t, func(r *http.Request) (*http.Response, error) {
		switch {
		case r.URL.Path == "/readyz":
			return jsonResponse(t, http.StatusOK, map[string]any{}), nil
		case r.Method == http.MethodGet:
			return jsonResponse(t, http.StatusNotFound, map[string]any{"status": map[string]any{"error": "not found"}}), nil
		case r.Method == http.MethodPut:
			created = true
			return okResponse(t, true), nil
		}
		t.Fatalf("unexpected %s %s", r.Method, r.URL)
		return nil, nil
	})
	s.cfg.AutoCreate = true
	if err := s.bootstrap(context.Background()); err != nil {
		t.Fatalf("bootstrap: %v", err)
	}
	if !created || s.distance != "Cosine" {
		t.Fatalf("collection: created=%v distance=%q", created, s.distance)
	}
}

func TestBootstrapRejectsSizeMismatch(t *testing.T) {
	s := newTestStore(t, func(r *http.Request) (*http.Response, error) {
		if r.URL.Path == "/readyz" {
			return jsonResponse(t, http.StatusOK, map[string]any{}), nil
		}
		return okResponse(t, map[string]any{"config": map[string]any{"params": map[string]any{
			"vectors": map[string]any{"size": 1536, "distance": "Cosine"},
		}}}), nil
	})
	err := s.bootstrap(context.Background())
	var oe *OperationError
	if !errors.As(err, &oe) || oe.Code != OperationErrorValidation {
		t.Fatalf("error: want size mismatch got=%v", err)
	}
}

func TestValidateConfig(t *testing.T) {
	cases := []struct {
		name string
		cfg  Config
		code ConfigErrorCode
	}{
		{"missing url", Config{Collection: "x", VectorDim: 3}, ConfigErrorMissingURL},
		{"relative url", Config{URL: "qdrant:6333", Collection: "x", VectorDim: 3}, ConfigErrorInvalidURL},
		{"missing collection", Config{URL: "http://q:6333", VectorDim: 3}, ConfigErrorMissingCollection},
		{"zero dim", Config{URL: "http://q:6333", Collection: "x"}, ConfigErrorInvalidVectorDim},
	}
	for _, tc := range cases {
		err := ValidateConfig(tc.cfg)
		var ce *ConfigError
		if !errors.As(err, &ce) || ce.Code != tc.code {
			t.Fatalf("%s: want=%s got=%v", tc.name, tc.code, err)
		}
	}
	if err := ValidateConfig(Config{URL: "http://q:6333", Collection: "x", VectorDim: 3}); err != nil {
		t.Fatalf("valid config: %v", err)
	}
}

func TestConfigFromEnvDefaults(t *testing.T) {
	t.Setenv("QDRANT_URL", "http://qdrant:6333")
	t.Setenv("QDRANT_COLLECTION", "")
	t.Setenv("QDRANT_VECTOR_DIM", "")
	cfg, err := ConfigFromEnv()
	if err != nil {
		t.Fatalf("ConfigFromEnv: %v", err)
	}
	if cfg.Collection != "exercises" || cfg.VectorDim != 1536 || cfg.NamespacePrefix != DefaultNamespacePrefix {
		t.Fatalf("defaults: got=%+v", cfg)
	}
}
