package api_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/chef-fest/backend/config"
	"github.com/chef-fest/backend/internal/models"
	"github.com/chef-fest/backend/internal/router"
	"github.com/chef-fest/backend/internal/service"
	"github.com/chef-fest/backend/internal/testhelpers"
)

func init() {
	gin.SetMode(gin.TestMode)
}

const adminEmail = "admin@chef-fest.example"

type testAPI struct {
	t      *testing.T
	db     *gorm.DB
	router *gin.Engine
	mailer *testhelpers.MockMailer
	store  *testhelpers.MockImageStore
}

func newTestAPI(t *testing.T) *testAPI {
	t.Helper()

	db := testhelpers.SetupTestDatabase(t)
	cfg := &config.Config{
		Environment: config.Test,
		JWTSecret:   testhelpers.TestJWTSecret,
		AdminEmails: []string{adminEmail},
	}

	mailer := new(testhelpers.MockMailer)
	store := new(testhelpers.MockImageStore)
	recipes := service.NewRecipeService(db)
	users := service.NewUserService(db)

	r := router.SetupRouter(cfg, db, nil, router.Services{
		Tokens:  service.NewTokenService(cfg.JWTSecret, cfg.AdminEmails),
		Recipes: recipes,
		Reviews: service.NewReviewService(db),
		Saved:   service.NewSavedRecipeService(db),
		Users:   users,
		Images:  service.NewImageService(store, recipes, users),
		Email:   service.NewEmailServiceWithMailer(mailer, "hello@chef-fest.example"),
	})

	return &testAPI{t: t, db: db, router: r, mailer: mailer, store: store}
}

// userToken creates a user and returns it with a signed access token.
func (a *testAPI) userToken(name string) (*models.User, string) {
	a.t.Helper()
	user := testhelpers.CreateTestUser(a.t, a.db, name)
	return user, testhelpers.GenerateTestToken(a.t, user.ID, user.Email, false)
}

func (a *testAPI) adminToken() string {
	return testhelpers.GenerateTestToken(a.t, uuid.New(), adminEmail, false)
}

func (a *testAPI) do(method, path, token string, body interface{}) *httptest.ResponseRecorder {
	a.t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(a.t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	return a.serve(req)
}

func (a *testAPI) serve(req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	a.router.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v), w.Body.String())
	return v
}
