package router

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"cna-archives/internal/config"
	"cna-archives/internal/models"
	"cna-archives/internal/testutil"
	"cna-archives/internal/utils"
	"cna-archives/pkg/sessionstore"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type envelope struct {
	Code    int             `json:"code"`
	Message string          `json:"message"`
	Hint    string          `json:"hint"`
	Data    json.RawMessage `json:"data"`
	Total   int64           `json:"total"`
	Page    int             `json:"page"`
	Pages   int             `json:"pages"`
}

type testServer struct {
	t      *testing.T
	engine *gin.Engine
}

func newTestServer(t *testing.T) *testServer {
	return newTestServerWithStore(t, sessionstore.NewMemoryStore())
}

func newTestServerWithStore(t *testing.T, store SessionStore) *testServer {
	db := testutil.NewSeededDB(t)
	testutil.CreateUser(t, db, "admin", "admin123", models.RoleAdministrateur)
	testutil.CreateUser(t, db, "marie", "secret1", models.RoleArchiviste)

	cfg := &config.Config{
		JWT:   config.JWTConfig{SecretKey: "router-secret", Algorithm: "HS256", ExpireMinutes: 60},
		Admin: config.AdminConfig{Username: "admin", Password: "admin123"},
		App:   config.AppConfig{Timezone: "Europe/Paris", DefaultDailyGoal: 10},
		CORS: config.CORSConfig{
			Origins:      []string{"http://localhost:5173"},
			AllowMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
			AllowHeaders: []string{"Authorization", "Content-Type"},
		},
	}
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	jwtManager := utils.NewJWTManager(cfg.JWT.SecretKey, cfg.JWT.Algorithm, cfg.JWT.GetExpireDuration())

	return &testServer{t: t, engine: SetupRouter(cfg, jwtManager, logger, db, store)}
}

func (s *testServer) do(method, path, token string, body interface{}) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(s.t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	s.engine.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) envelope {
	var env envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env), w.Body.String())
	return env
}

func (s *testServer) login(username, password string) string {
	w := s.do(http.MethodPost, "/api/login", "", map[string]string{"username": username, "password": password})
	require.Equal(s.t, http.StatusOK, w.Code, w.Body.String())
	var resp struct {
		AccessToken string `json:"access_token"`
	}
	require.NoError(s.t, json.Unmarshal(decode(s.t, w).Data, &resp))
	return resp.AccessToken
}

func TestHealth(t *testing.T) {
	s := newTestServer(t)
	w := s.do(http.MethodGet, "/", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestLoginFailures(t *testing.T) {
	s := newTestServer(t)

	w := s.do(http.MethodPost, "/api/login", "", map[string]string{"username": "marie", "password": "faux"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	wrong := decode(t, w).Message

	w = s.do(http.MethodPost, "/api/login", "", map[string]string{"username": "personne", "password": "faux"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, wrong, decode(t, w).Message)

	w = s.do(http.MethodPost, "/api/login", "", map[string]string{"username": "marie"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAuthenticationAndRoles(t *testing.T) {
	s := newTestServer(t)

	assert.Equal(t, http.StatusUnauthorized, s.do(http.MethodGet, "/api/me", "", nil).Code)
	assert.Equal(t, http.StatusUnauthorized, s.do(http.MethodGet, "/api/me", "n'importe-quoi", nil).Code)

	marie := s.login("marie", "secret1")
	w := s.do(http.MethodGet, "/api/me", marie, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, string(decode(t, w).Data), `"username":"marie"`)

	assert.Equal(t, http.StatusForbidden, s.do(http.MethodGet, "/api/admin/users", marie, nil).Code)
	assert.Equal(t, http.StatusForbidden, s.do(http.MethodGet, "/api/admin/statistics", marie, nil).Code)

	admin := s.login("admin", "admin123")
	assert.Equal(t, http.StatusOK, s.do(http.MethodGet, "/api/admin/users", admin, nil).Code)
}

func TestLogoutRevokesToken(t *testing.T) {
	s := newTestServer(t)
	token := s.login("marie", "secret1")

	require.Equal(t, http.StatusOK, s.do(http.MethodPost, "/api/logout", token, nil).Code)
	assert.Equal(t, http.StatusUnauthorized, s.do(http.MethodGet, "/api/me", token, nil).Code)

	// une nouvelle connexion fonctionne
	assert.Equal(t, http.StatusOK, s.do(http.MethodGet, "/api/me", s.login("marie", "secret1"), nil).Code)
}

func fondsID(t *testing.T, s *testServer, token, nom string) uint {
	w := s.do(http.MethodGet, "/api/fonds", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var items []struct {
		ID  uint   `json:"id"`
		Nom string `json:"nom"`
	}
	require.NoError(t, json.Unmarshal(decode(t, w).Data, &items))
	for _, f := range items {
		if f.Nom == nom {
			return f.ID
		}
	}
	t.Fatalf("fonds %s introuvable", nom)
	return 0
}

func TestIntakeAndSearch(t *testing.T) {
	s := newTestServer(t)
	marie := s.login("marie", "secret1")
	fonds := fondsID(t, s, marie, "TECHNIQUE")

	require.Equal(t, http.StatusOK, s.do(http.MethodPost, "/api/dossiers/intake", marie, nil).Code)

	body := map[string]interface{}{
		"fonds_id": fonds, "objet_id": 1, "analyse": "Plans du barrage",
		"mots_cles": "eau", "date_debut": "2001-01-01", "date_fin": "2001-12-31",
	}
	w := s.do(http.MethodPost, "/api/dossiers", marie, body)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	body["analyse"] = "  "
	w = s.do(http.MethodPost, "/api/dossiers", marie, body)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	body["analyse"], body["date_debut"] = "Plans", "2002-01-01"
	w = s.do(http.MethodPost, "/api/dossiers", marie, body)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	body["date_debut"] = "01/01/2001"
	w = s.do(http.MethodPost, "/api/dossiers", marie, body)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, decode(t, w).Message, "date_debut")

	body["date_debut"], body["fonds_id"] = "2001-01-01", 9999
	w = s.do(http.MethodPost, "/api/dossiers", marie, body)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = s.do(http.MethodGet, "/api/dossiers/search?q=BARRAGE&fonds=TECHNIQUE", marie, nil)
	require.Equal(t, http.StatusOK, w.Code)
	env := decode(t, w)
	assert.Equal(t, int64(1), env.Total)
	assert.Equal(t, 1, env.Pages)

	w = s.do(http.MethodGet, "/api/dossiers?per_page=7", marie, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = s.do(http.MethodGet, "/api/dossiers?columns=analyse,temps_saisie", marie, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, string(decode(t, w).Data), `"analyse":"Plans du barrage"`)

	w = s.do(http.MethodGet, "/api/dossiers/search/export?q=barrage", marie, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.True(t, strings.HasPrefix(w.Header().Get("Content-Type"), "text/csv"))
	assert.Contains(t, w.Header().Get("Content-Disposition"), "recherche_archives_")
	assert.Contains(t, w.Body.String(), "Plans du barrage")

	assert.Equal(t, http.StatusNotFound, s.do(http.MethodGet, "/api/dossiers/9999", marie, nil).Code)
	assert.Equal(t, http.StatusBadRequest, s.do(http.MethodGet, "/api/dossiers/abc", marie, nil).Code)
}

func TestAdminEndpoints(t *testing.T) {
	s := newTestServer(t)
	admin := s.login("admin", "admin123")

	w := s.do(http.MethodPost, "/api/admin/fonds", admin, map[string]string{"nom": "TECHNIQUE"})
	assert.Equal(t, http.StatusConflict, w.Code)

	w = s.do(http.MethodPost, "/api/admin/users", admin, map[string]string{"username": "l", "password": "x", "role": "archiviste"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = s.do(http.MethodPut, "/api/admin/objectif", admin, map[string]int{"objectif_quotidien": 500})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	w = s.do(http.MethodPut, "/api/admin/objectif", admin, map[string]int{"objectif_quotidien": 12})
	require.Equal(t, http.StatusOK, w.Code)

	w = s.do(http.MethodGet, "/api/admin/overview", admin, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, string(decode(t, w).Data), `"objectif_quotidien":12`)

	w = s.do(http.MethodGet, "/api/admin/statistics?period=bogus", admin, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = s.do(http.MethodGet, "/api/admin/report", admin, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, string(decode(t, w).Data), "ANALYSE DÉTAILLÉE")

	w = s.do(http.MethodGet, "/api/admin/report/pdf", admin, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/pdf", w.Header().Get("Content-Type"))

	w = s.do(http.MethodGet, "/api/admin/export", admin, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Disposition"), "export_complet_archives_")

	w = s.do(http.MethodDelete, "/api/admin/users/1", admin, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestCORSPreflight(t *testing.T) {
	s := newTestServer(t)
	req := httptest.NewRequest(http.MethodOptions, "/api/login", nil)
	req.Header.Set("Origin", "http://localhost:5173")
	w := httptest.NewRecorder()
	s.engine.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "http://localhost:5173", w.Header().Get("Access-Control-Allow-Origin"))
}
