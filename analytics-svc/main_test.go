package main

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"tableside/config"
	"tableside/pkg/logger"
	"tableside/pkg/statskeys"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildApp_RequiresADataSource(t *testing.T) {
	_, _, err := buildApp(config.Config{StoreBackend: "memory"}, logger.Discard())
	assert.EqualError(t, err, "analytics needs REDIS_HOST or STORE_BACKEND=postgres")
}

func TestBuildApp_RedisOnly(t *testing.T) {
	mr := miniredis.RunT(t)
	mr.HSet(statskeys.Daily("2026-03-14"), statskeys.Orders, "2")

	handler, cleanup, err := buildApp(config.Config{
		StoreBackend: "memory",
		RedisHost:    mr.Host(),
		RedisPort:    mr.Port(),
		Timezone:     "UTC",
	}, logger.Discard())
	require.NoError(t, err)
	defer cleanup()

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/analytics/summary?date=2026-03-14", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"orders":2`)
	assert.Contains(t, w.Body.String(), `"source":"redis"`)
}
