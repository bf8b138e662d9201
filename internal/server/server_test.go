package server

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"

	"github.com/recuperacasa/intake-api/internal/config"
	"github.com/recuperacasa/intake-api/internal/domain/form"
	"github.com/recuperacasa/intake-api/internal/mail"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// newTestServer assembles the full router over an in-memory database and
// a log-only mail channel.
func newTestServer(t *testing.T) (*gin.Engine, *gorm.DB) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormLogger.Default.LogMode(gormLogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(form.Models()...))

	cfg := config.Load()
	srv := New(cfg, db, mail.NewLogSender())
	return srv.setupRouter(), db
}

func TestHealthEndpoints(t *testing.T) {
	router, _ := newTestServer(t)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "OK", rec.Body.String())

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/ping", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "healthy")
}

func TestAllIntakeRoutesRegistered(t *testing.T) {
	router, db := newTestServer(t)

	for _, def := range form.Definitions() {
		req := httptest.NewRequest(http.MethodPost, def.Path, strings.NewReader("name=Ana"))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code, "path %s", def.Path)
		assert.Contains(t, rec.Body.String(), `"ok":true`, "path %s", def.Path)
	}

	// One row in each kind's table.
	for _, model := range form.Models() {
		var count int64
		require.NoError(t, db.Model(model).Count(&count).Error)
		assert.Equal(t, int64(1), count)
	}
}

func TestSubmissionPersistedThroughFullStack(t *testing.T) {
	router, db := newTestServer(t)

	body := `{"name":"Ana Silva","email":"ana@x.pt","district":"Porto","urgency":"alta"}`
	req := httptest.NewRequest(http.MethodPost, "/api/orcamentos", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var stored form.BudgetRequest
	require.NoError(t, db.First(&stored).Error)
	assert.Equal(t, "Ana Silva", stored.Name)
	assert.Equal(t, "Porto", stored.District)
	assert.Equal(t, "alta", stored.Urgency)
	assert.Empty(t, stored.AttachmentRecords())
	assert.False(t, stored.CreatedAt.IsZero())
}
