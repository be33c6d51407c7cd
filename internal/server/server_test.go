package server

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/umojahub/umoja/backend/internal/config"
)

func TestServer_New_HealthRoute(t *testing.T) {
	db, err := gorm.Open(sqlite.Open("file:"+t.Name()+"?mode=memory&cache=shared"), &gorm.Config{})
	require.NoError(t, err)

	cfg := config.Config{Environment: "test", HTTPPort: "0", JWTSecret: "test-secret", TokenTTL: time.Hour}
	srv, err := New(db, cfg)
	require.NoError(t, err)
	require.NotNil(t, srv.Messages)

	req, _ := http.NewRequest("GET", "/api/v1/health", nil)
	w := httptest.NewRecorder()
	srv.Engine.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "\"status\":\"ok\"")
}

func TestServer_ProtectedRoutesRequireAuth(t *testing.T) {
	db, err := gorm.Open(sqlite.Open("file:"+t.Name()+"?mode=memory&cache=shared"), &gorm.Config{})
	require.NoError(t, err)

	cfg := config.Config{Environment: "test", HTTPPort: "0", JWTSecret: "test-secret", TokenTTL: time.Hour}
	srv, err := New(db, cfg)
	require.NoError(t, err)

	req, _ := http.NewRequest("GET", "/api/v1/organizations", nil)
	w := httptest.NewRecorder()
	srv.Engine.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
