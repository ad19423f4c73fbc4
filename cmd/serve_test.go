package main

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/esg-merge-cli/internal/catalog"
	"github.com/sells-group/esg-merge-cli/internal/merger"
	"github.com/sells-group/esg-merge-cli/internal/model"
	"github.com/sells-group/esg-merge-cli/pkg/completion"
)

type stubGenerator struct{ response string }

func (s *stubGenerator) Complete(context.Context, string, string, completion.Params) (string, error) {
	return s.response, nil
}

const testCatalogJSON = `[
  {
    "_id": "fw-gri",
    "name": "GRI",
    "description": "Global sustainability impact reporting standards.",
    "questions": [
      {"question": "How does your organization report on greenhouse gas emissions?", "category": "Environmental", "ref": "305-1"}
    ]
  },
  {
    "_id": "fw-sasb",
    "name": "SASB",
    "description": "Industry-specific sustainability accounting metrics.",
    "questions": [
      {"question": "What metrics do you use to track water consumption?", "category": "Environmental", "_id": "IF-WU-440a"}
    ]
  }
]`

func testServer(t *testing.T) http.Handler {
	t.Helper()
	path := filepath.Join(t.TempDir(), "frameworks.json")
	require.NoError(t, os.WriteFile(path, []byte(testCatalogJSON), 0o644))
	cat, err := catalog.Load(path)
	require.NoError(t, err)

	gen := &stubGenerator{response: "How does your organization report greenhouse gas emissions and track water consumption metrics?"}
	m := merger.New(gen, merger.Config{Workers: 2, CallTimeout: time.Second}, merger.WithSeed(3))
	return newRouter(cat, m)
}

func TestServeHealth(t *testing.T) {
	srv := testServer(t)

	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"ok"`)
}

func TestServeFrameworks(t *testing.T) {
	srv := testServer(t)

	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/frameworks", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	var out []struct {
		Name      string `json:"name"`
		Questions int    `json:"questions"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	require.Len(t, out, 2)
	assert.Equal(t, "GRI", out[0].Name)
	assert.Equal(t, 1, out[0].Questions)
}

func TestServeGenerate(t *testing.T) {
	srv := testServer(t)

	body := strings.NewReader(`{"count": 1, "frameworks": ["gri", "sasb"]}`)
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/generate", body))

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var merged []model.MergedQuestion
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &merged))
	require.Len(t, merged, 1)
	assert.True(t, merged[0].GeneratedByModel)
	assert.Equal(t, [2]string{"GRI", "SASB"}, merged[0].FrameworkIDs)
}

func TestServeGenerate_BadRequests(t *testing.T) {
	srv := testServer(t)

	t.Run("malformed body", func(t *testing.T) {
		rec := httptest.NewRecorder()
		srv.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/generate", strings.NewReader("{")))
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("single framework", func(t *testing.T) {
		rec := httptest.NewRecorder()
		body := strings.NewReader(`{"count": 1, "frameworks": ["gri"]}`)
		srv.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/generate", body))
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Contains(t, rec.Body.String(), "two distinct frameworks")
	})
}
