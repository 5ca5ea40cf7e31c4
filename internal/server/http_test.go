package server

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/LearnWithSuryaa/analyzer-app/internal/service"
	"github.com/LearnWithSuryaa/analyzer-app/internal/store"
	"github.com/LearnWithSuryaa/analyzer-app/pkg/core/logging"
)

func newTestService(t *testing.T, history bool) *service.Service {
	t.Helper()

	cfg := service.DefaultConfig()
	cfg.Logger = logging.Discard()
	cfg.MaxBatchSize = 3
	if history {
		st, err := store.NewSQLiteStore(store.Config{Path: filepath.Join(t.TempDir(), "history.db")})
		require.NoError(t, err)
		cfg.Store = st
	}

	svc, err := service.NewService(cfg)
	require.NoError(t, err)
	t.Cleanup(func() { svc.Close() })
	return svc
}

func newTestRouter(t *testing.T, history bool) http.Handler {
	t.Helper()
	cfg := DefaultConfig()
	cfg.CORS.Enabled = true
	return NewHTTPServer(cfg, newTestService(t, history), logging.Discard()).Routes()
}

func do(t *testing.T, h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != "" {
		reader = bytes.NewReader([]byte(body))
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body), rec.Body.String())
	return body
}

func TestHTTP_Analyze(t *testing.T) {
	router := newTestRouter(t, false)

	tests := []struct {
		name       string
		body       string
		wantStatus int
		check      func(t *testing.T, body map[string]interface{})
	}{
		{
			name:       "valid sentence",
			body:       `{"text": "aku mangan"}`,
			wantStatus: http.StatusOK,
			check: func(t *testing.T, body map[string]interface{}) {
				result := body["result"].(map[string]interface{})
				analysis := result["analysis"].(map[string]interface{})
				assert.Equal(t, "appropriate", analysis["verdict"])
				assert.Equal(t, true, analysis["semantic_valid"])
				assert.NotContains(t, result, "correction")
				assert.Len(t, result["derivations"], 7)
			},
		},
		{
			name:       "respected subject with plain verb",
			body:       `{"text": "Bapak mangan lan ibu sare"}`,
			wantStatus: http.StatusOK,
			check: func(t *testing.T, body map[string]interface{}) {
				result := body["result"].(map[string]interface{})
				analysis := result["analysis"].(map[string]interface{})
				assert.Equal(t, "compound", analysis["sentence_type"])
				assert.Equal(t, "inappropriate", analysis["verdict"])
				correction := result["correction"].(map[string]interface{})
				assert.Equal(t, "bapak dhahar lan ibu sare", correction["sentence"])
			},
		},
		{
			name:       "syntax error",
			body:       `{"text": "qwerty mangan"}`,
			wantStatus: http.StatusUnprocessableEntity,
			check: func(t *testing.T, body map[string]interface{}) {
				assert.Equal(t, "KRAMA_SYNTAX", body["code"])
				details := body["details"].(map[string]interface{})
				assert.Equal(t, "NOUN_PHRASE", details["rule"])
				assert.Equal(t, "UNKNOWN", details["found"])
				assert.EqualValues(t, 0, details["position"])
			},
		},
		{
			name:       "missing text",
			body:       `{}`,
			wantStatus: http.StatusBadRequest,
			check: func(t *testing.T, body map[string]interface{}) {
				assert.Equal(t, "INVALID_INPUT", body["code"])
				assert.Contains(t, body["error"], "text")
			},
		},
		{
			name:       "malformed JSON",
			body:       `{"text":`,
			wantStatus: http.StatusBadRequest,
			check: func(t *testing.T, body map[string]interface{}) {
				assert.Equal(t, "INVALID_INPUT", body["code"])
			},
		},
		{
			name:       "unknown field",
			body:       `{"text": "aku mangan", "lang": "jv"}`,
			wantStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := do(t, router, http.MethodPost, "/api/v1/analyze", tt.body)
			assert.Equal(t, tt.wantStatus, rec.Code, rec.Body.String())
			assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
			if tt.check != nil {
				tt.check(t, decode(t, rec))
			}
		})
	}
}

func TestHTTP_AnalyzeBatch(t *testing.T) {
	router := newTestRouter(t, false)

	rec := do(t, router, http.MethodPost, "/api/v1/analyze/batch", `{"texts": ["aku mangan", "qwerty mangan", "aku dhahar"]}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var resp BatchResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp.Items, 3)

	assert.Nil(t, resp.Items[0].Error)
	assert.NotNil(t, resp.Items[0].Record)
	require.NotNil(t, resp.Items[1].Error)
	assert.Equal(t, "KRAMA_SYNTAX", resp.Items[1].Error.Code)
	assert.Equal(t, "aku dhahar", resp.Items[2].Input)

	rec = do(t, router, http.MethodPost, "/api/v1/analyze/batch", `{"texts": ["a", "b", "c", "d"]}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(t, router, http.MethodPost, "/api/v1/analyze/batch", `{"texts": []}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHTTP_Tokenize(t *testing.T) {
	router := newTestRouter(t, false)

	rec := do(t, router, http.MethodPost, "/api/v1/tokenize", `{"text": "aku dahar sega"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	body := decode(t, rec)
	tokens := body["tokens"].([]interface{})
	require.Len(t, tokens, 3)
	second := tokens[1].(map[string]interface{})
	assert.Equal(t, "UNKNOWN", second["category"])
	assert.Equal(t, "dhahar", second["suggestion"])
}

func TestHTTP_History(t *testing.T) {
	router := newTestRouter(t, true)

	rec := do(t, router, http.MethodPost, "/api/v1/analyze", `{"text": "aku dhahar"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	id := decode(t, rec)["id"].(string)

	do(t, router, http.MethodPost, "/api/v1/analyze", `{"text": "qwerty mangan"}`)
	do(t, router, http.MethodPost, "/api/v1/analyze", `{"text": "aku mangan"}`)

	t.Run("get by id", func(t *testing.T) {
		rec := do(t, router, http.MethodGet, "/api/v1/history/"+id, "")
		require.Equal(t, http.StatusOK, rec.Code)
		body := decode(t, rec)
		assert.Equal(t, "aku dhahar", body["input"])
		assert.Equal(t, "aku mangan", body["correction"])
		assert.Contains(t, body, "result")
	})

	t.Run("unknown id", func(t *testing.T) {
		rec := do(t, router, http.MethodGet, "/api/v1/history/nope", "")
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("list", func(t *testing.T) {
		rec := do(t, router, http.MethodGet, "/api/v1/history?limit=2", "")
		require.Equal(t, http.StatusOK, rec.Code)
		body := decode(t, rec)
		assert.EqualValues(t, 2, body["count"])
		entries := body["entries"].([]interface{})
		assert.Equal(t, "aku mangan", entries[0].(map[string]interface{})["input"])
	})

	t.Run("list syntax errors", func(t *testing.T) {
		rec := do(t, router, http.MethodGet, "/api/v1/history?errors=true", "")
		require.Equal(t, http.StatusOK, rec.Code)
		assert.EqualValues(t, 1, decode(t, rec)["count"])
	})

	t.Run("invalid filter", func(t *testing.T) {
		rec := do(t, router, http.MethodGet, "/api/v1/history?valid=maybe", "")
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		rec = do(t, router, http.MethodGet, "/api/v1/history?limit=x", "")
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		rec = do(t, router, http.MethodGet, "/api/v1/history?since=yesterday", "")
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("stats", func(t *testing.T) {
		rec := do(t, router, http.MethodGet, "/api/v1/history/stats", "")
		require.Equal(t, http.StatusOK, rec.Code)
		body := decode(t, rec)
		assert.EqualValues(t, 3, body["total"])
		assert.EqualValues(t, 1, body["syntax_errors"])
	})
}

func TestHTTP_HistoryDisabled(t *testing.T) {
	router := newTestRouter(t, false)

	rec := do(t, router, http.MethodGet, "/api/v1/history", "")
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Equal(t, "UNAVAILABLE", decode(t, rec)["code"])
}

func TestHTTP_Lexicon(t *testing.T) {
	router := newTestRouter(t, false)

	rec := do(t, router, http.MethodGet, "/api/v1/lexicon/search?q=dhahar&limit=3", "")
	require.Equal(t, http.StatusOK, rec.Code)
	results := decode(t, rec)["results"].([]interface{})
	require.NotEmpty(t, results)
	assert.Equal(t, "dhahar", results[0].(map[string]interface{})["word"])

	rec = do(t, router, http.MethodGet, "/api/v1/lexicon/search", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(t, router, http.MethodGet, "/api/v1/lexicon/stats", "")
	require.Equal(t, http.StatusOK, rec.Code)
	body := decode(t, rec)
	assert.Equal(t, "embedded", body["source"])
	assert.Greater(t, body["words"].(float64), 0.0)
}

func TestHTTP_HealthAndMetrics(t *testing.T) {
	router := newTestRouter(t, true)

	rec := do(t, router, http.MethodGet, "/health", "")
	require.Equal(t, http.StatusOK, rec.Code)
	body := decode(t, rec)
	assert.Equal(t, "healthy", body["status"])
	assert.Len(t, body["checks"], 2)

	do(t, router, http.MethodPost, "/api/v1/analyze", `{"text": "aku mangan"}`)

	rec = do(t, router, http.MethodGet, "/metrics", "")
	require.Equal(t, http.StatusOK, rec.Code)
	metrics := rec.Body.String()
	assert.Contains(t, metrics, `krama_analyses_total{outcome="valid"} 1`)
	assert.True(t, strings.Contains(metrics, `route="/api/v1/analyze"`), metrics)
}

func TestHTTP_CORS(t *testing.T) {
	router := newTestRouter(t, false)

	req := httptest.NewRequest(http.MethodOptions, "/api/v1/analyze", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
}
