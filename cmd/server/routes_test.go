package main

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"motes-generator.backend/internal/infrastructure/metrics"
	"motes-generator.backend/internal/infrastructure/models"
	"motes-generator.backend/internal/interfaces/http/handlers"
	"motes-generator.backend/internal/interfaces/http/middleware"
	redispkg "motes-generator.backend/pkg/redis"
)

func newTestServer(t *testing.T) (http.Handler, *gorm.DB) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	redispkg.SetClient(nil)

	db, err := sqliteOpener("routes")(baseTestConfig().Database)
	require.NoError(t, err)
	t.Cleanup(func() { _ = origClose(db) })

	m := metrics.New()
	deps, _, err := buildRouteDeps(baseTestConfig(), db, m)
	require.NoError(t, err)

	r := gin.New()
	r.Use(middleware.RequestIDMiddleware())
	r.Use(middleware.MetricsMiddleware(m))
	registerHealthRoute(r, deps)
	registerAppRoutes(r, deps)
	return applyCORSMiddleware(r, []string{"*"}), db
}

func call(t *testing.T, h http.Handler, method, target, body string) (int, map[string]interface{}) {
	t.Helper()
	req := httptest.NewRequest(method, target, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	var out map[string]interface{}
	_ = json.Unmarshal(rec.Body.Bytes(), &out)
	return rec.Code, out
}

func TestRegisterAppRoutes_RootAndAPIPaths(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	registerAppRoutes(r, routeDeps{
		profileHandler: &handlers.ProfileHandler{},
		matchHandler:   &handlers.MatchHandler{},
		blockHandler:   &handlers.BlockHandler{},
		emailHandler:   &handlers.EmailHandler{},
	})

	have := map[string]bool{}
	for _, route := range r.Routes() {
		have[route.Method+" "+route.Path] = true
	}
	for _, exp := range []string{
		"POST /submitProfile", "GET /submitProfile", "GET /profiles", "DELETE /profiles",
		"POST /matchNow", "POST /expireMatches", "GET /matchRespond", "POST /blockPair",
		"POST /sendTestEmail", "GET /sendTestEmail",
	} {
		require.True(t, have[exp], exp)
		method, path, _ := strings.Cut(exp, " ")
		require.True(t, have[method+" /api"+path], "/api variant of "+exp)
	}
}

func TestRoutes_MatchFlowEndToEnd(t *testing.T) {
	h, db := newTestServer(t)

	code, body := call(t, h, http.MethodPost, "/matchNow", "")
	require.Equal(t, http.StatusOK, code)
	require.Nil(t, body["match"])
	require.Equal(t, "Not enough eligible profiles", body["reason"])

	code, body = call(t, h, http.MethodPost, "/api/submitProfile",
		`{"FullName":"Anna Svensson","Email":"anna@example.com","Gender":"Kvinna","Preference":"Man","City":"Lund","SearchType":"Dejt","ConsentGDPR":true}`)
	require.Equal(t, http.StatusOK, code, body)
	annaID := body["id"].(float64)

	code, _ = call(t, h, http.MethodPost, "/submitProfile",
		`{"FullName":"Erik Berg","Email":"erik@example.com","Gender":"Man","Preference":"Kvinna","City":"lund","ConsentGDPR":true}`)
	require.Equal(t, http.StatusOK, code)

	code, _ = call(t, h, http.MethodPost, "/submitProfile", `{"FullName":"No Consent","ConsentGDPR":"yes"}`)
	require.Equal(t, http.StatusBadRequest, code)

	code, body = call(t, h, http.MethodPost, "/api/matchNow", "")
	require.Equal(t, http.StatusOK, code, body)
	match := body["match"].(map[string]interface{})
	require.True(t, strings.EqualFold("Lund", match["city"].(string)))
	names := []interface{}{
		match["a"].(map[string]interface{})["firstName"],
		match["b"].(map[string]interface{})["firstName"],
	}
	require.ElementsMatch(t, []interface{}{"Anna", "Erik"}, names)

	code, body = call(t, h, http.MethodPost, "/matchNow", "")
	require.Equal(t, http.StatusOK, code)
	require.Equal(t, "No eligible pair found", body["reason"])

	var optIns []models.MatchOptIn
	require.NoError(t, db.Order("profile_id").Find(&optIns).Error)
	require.Len(t, optIns, 2)

	code, body = call(t, h, http.MethodGet, "/api/matchRespond?token="+optIns[0].Token+"&answer=yes", "")
	require.Equal(t, http.StatusOK, code, body)
	require.Equal(t, "Pending", body["status"])

	code, body = call(t, h, http.MethodGet, "/matchRespond?token="+optIns[1].Token+"&answer=YES", "")
	require.Equal(t, http.StatusOK, code)
	require.Equal(t, "Confirmed", body["status"])

	code, _ = call(t, h, http.MethodGet, "/matchRespond?token=unknown-token-123&answer=no", "")
	require.Equal(t, http.StatusNotFound, code)

	code, body = call(t, h, http.MethodPost, "/expireMatches", "")
	require.Equal(t, http.StatusOK, code)
	require.Equal(t, float64(0), body["expiredCount"])

	code, body = call(t, h, http.MethodPost, "/blockPair", `{"blockerId":"1","blockedId":2}`)
	require.Equal(t, http.StatusOK, code, body)
	code, _ = call(t, h, http.MethodPost, "/blockPair", `{"blockerId":1,"blockedId":2}`)
	require.Equal(t, http.StatusOK, code)

	code, body = call(t, h, http.MethodGet, "/profiles", "")
	require.Equal(t, http.StatusOK, code)
	require.Len(t, body["profiles"], 2)

	code, body = call(t, h, http.MethodDelete, "/profiles?id="+jsonNumber(annaID), "")
	require.Equal(t, http.StatusOK, code)
	require.Equal(t, true, body["deleted"])
}

func TestRoutes_HealthMetricsAndEmailConfig(t *testing.T) {
	h, _ := newTestServer(t)

	code, body := call(t, h, http.MethodGet, "/health", "")
	require.Equal(t, http.StatusOK, code)
	require.Equal(t, "ok", body["database"])

	code, body = call(t, h, http.MethodPost, "/sendTestEmail", `{"to":"a@example.com"}`)
	require.Equal(t, http.StatusInternalServerError, code)
	require.Equal(t, "Missing RESEND_API_KEY app setting", body["error"])

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), "motes_http_requests_total")
}

func TestApplyCORSMiddleware_Preflight(t *testing.T) {
	h, _ := newTestServer(t)

	req := httptest.NewRequest(http.MethodOptions, "/api/submitProfile", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	require.Equal(t, http.StatusNoContent, rec.Code)
	require.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
}

func jsonNumber(f float64) string {
	b, _ := json.Marshal(int64(f))
	return string(b)
}
