package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leano777/bidflow/pkg/ids"
	"github.com/leano777/bidflow/pkg/models/api"
	"github.com/leano777/bidflow/pkg/models/domain"
	"github.com/leano777/bidflow/pkg/services/alternates"
	"github.com/leano777/bidflow/pkg/services/assembly"
	"github.com/leano777/bidflow/pkg/services/classify"
	"github.com/leano777/bidflow/pkg/services/compile"
	"github.com/leano777/bidflow/pkg/services/costing"
	"github.com/leano777/bidflow/pkg/store/memory"
)

func setupAPI() *WebAPI {
	provider := ids.NewSequenceProvider()
	clock := func() time.Time { return time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC) }
	rates := costing.DefaultRates()

	return NewWebAPI(zerolog.Nop(), Config{
		Addr:            "localhost:0",
		ShutdownTimeout: time.Second,
		Dependencies: Dependencies{
			Compiler:   compile.NewCompiler(provider, clock, zerolog.Nop()),
			Assembly:   assembly.NewEngine(nil, classify.NewKeywordClassifier(), provider),
			Alternates: alternates.NewManager(memory.NewScopeRepository(), provider, rates, clock),
			Rates:      rates,
		},
	})
}

func post(t *testing.T, webAPI *WebAPI, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	payload, err := json.Marshal(body)
	require.NoError(t, err)

	req := httptest.NewRequest("POST", path, strings.NewReader(string(payload)))
	rec := httptest.NewRecorder()
	webAPI.router.ServeHTTP(rec, req)
	return rec
}

func TestRouting(t *testing.T) {
	webAPI := setupAPI()

	t.Run("compile endpoint is mounted", func(t *testing.T) {
		rec := post(t, webAPI, "/api/v1/estimates/compile", api.CompileRequest{
			Project: api.Project{ID: "p1", Name: "Adu Build"},
			Items: []api.LineItem{
				{Description: "frame interior walls", Quantity: 1, Unit: "ls", MaterialCost: 600, LaborCost: 800, EquipmentCost: 100},
			},
		})
		require.Equal(t, http.StatusOK, rec.Code)

		var est domain.CompleteEstimate
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&est))
		assert.InDelta(t, 2250.0, est.CostSummary.ContractTotal, 0.01)
	})

	t.Run("rates endpoint is mounted", func(t *testing.T) {
		rec := post(t, webAPI, "/api/v1/rates/decompose", api.DecomposeRequest{
			CompositeRate: 10, Unit: "lf", Category: "electrical",
		})
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("scope endpoints share one repository", func(t *testing.T) {
		rec := post(t, webAPI, "/api/v1/scopes", api.CreateScopeRequest{
			Project: api.Project{ID: "p1", Name: "Adu Build"},
			Name:    "base scope",
			Items: []api.LineItem{
				{Description: "pour concrete footings", Quantity: 1, Unit: "ls", MaterialCost: 2000, LaborCost: 3000, EquipmentCost: 500},
			},
		})
		require.Equal(t, http.StatusOK, rec.Code)

		var tree domain.BaseScopeTree
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&tree))

		rec = post(t, webAPI, "/api/v1/scopes/"+tree.ID+"/alternates", api.CreateAlternateRequest{
			Name: "upgrade",
			ScopeModifications: []api.Modification{
				{Type: "add", TargetPhase: "Foundation", Description: "thicker slab", CostImpact: 500, Confidence: 0.8},
			},
		})
		require.Equal(t, http.StatusOK, rec.Code)

		req := httptest.NewRequest("GET", "/api/v1/scopes/"+tree.ID+"/alternates", nil)
		listRec := httptest.NewRecorder()
		webAPI.router.ServeHTTP(listRec, req)
		require.Equal(t, http.StatusOK, listRec.Code)

		var alts []domain.AlternateScope
		require.NoError(t, json.NewDecoder(listRec.Body).Decode(&alts))
		assert.Len(t, alts, 1)
	})

	t.Run("unknown routes are 404", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/api/v1/nope", nil)
		rec := httptest.NewRecorder()
		webAPI.router.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}
