package server

import (
	"context"
	"net"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chef-fest/backend/config"
	"github.com/chef-fest/backend/internal/testhelpers"
)

func testConfig() *config.Config {
	return &config.Config{
		Environment: config.Test,
		ServerHost:  "127.0.0.1",
		ServerPort:  "0",
		JWTSecret:   testhelpers.TestJWTSecret,
	}
}

func TestNew(t *testing.T) {
	gin.SetMode(gin.TestMode)
	db := testhelpers.SetupTestDatabase(t)

	server := New(testConfig(), db, nil, nil)
	require.NotNil(t, server)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/health", nil)
	server.Handler().ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)

	// Uploads answer 503 without object storage.
	w = httptest.NewRecorder()
	req, _ = http.NewRequest(http.MethodPost, "/api/users/"+testhelpers.CreateTestUser(t, db, "Ada").ID.String()+"/avatar", nil)
	req.Header.Set("Authorization", "Bearer "+testhelpers.GenerateTestToken(t, uuid.New(), "", true))
	server.Handler().ServeHTTP(w, req)
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}

func TestRunStopsOnCancel(t *testing.T) {
	gin.SetMode(gin.TestMode)
	db := testhelpers.SetupTestDatabase(t)

	l, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	_, port, _ := net.SplitHostPort(l.Addr().String())
	require.NoError(t, l.Close())

	cfg := testConfig()
	cfg.ServerPort = port
	server := New(cfg, db, nil, nil)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- server.Run(ctx) }()

	require.Eventually(t, func() bool {
		resp, err := http.Get("http://127.0.0.1:" + port + "/health")
		if err != nil {
			return false
		}
		resp.Body.Close()
		return resp.StatusCode == http.StatusOK
	}, 5*time.Second, 50*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(15 * time.Second):
		t.Fatal("server did not shut down")
	}
}
