package api_test

import (
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chef-fest/backend/internal/models"
	"github.com/chef-fest/backend/internal/testhelpers"
)

func TestUpsertUserUsesTokenSubject(t *testing.T) {
	a := newTestAPI(t)
	subject := uuid.New()
	token := testhelpers.GenerateTestToken(t, subject, "new@example.com", false)

	w := a.do(http.MethodPost, "/api/users", token, map[string]interface{}{
		"email":    "new@example.com",
		"name":     "New Cook",
		"password": "secret123",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	user := decode[models.User](t, w)
	assert.Equal(t, subject, user.ID)
	assert.NotContains(t, w.Body.String(), "password")

	// Someone else's id is refused.
	w = a.do(http.MethodPost, "/api/users", token, map[string]interface{}{
		"id":    uuid.New(),
		"email": "new@example.com",
		"name":  "New Cook",
	})
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestUpsertUserDuplicateEmail(t *testing.T) {
	a := newTestAPI(t)
	existing, _ := a.userToken("Existing")
	token := testhelpers.GenerateTestToken(t, uuid.New(), "other@example.com", false)

	w := a.do(http.MethodPost, "/api/users", token, map[string]interface{}{
		"email": existing.Email,
		"name":  "Copycat",
	})
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestUserAccessRules(t *testing.T) {
	a := newTestAPI(t)
	user, token := a.userToken("Owner")
	_, other := a.userToken("Other")
	path := "/api/users/" + user.ID.String()

	assert.Equal(t, http.StatusOK, a.do(http.MethodGet, path, token, nil).Code)
	assert.Equal(t, http.StatusForbidden, a.do(http.MethodGet, path, other, nil).Code)
	assert.Equal(t, http.StatusOK, a.do(http.MethodGet, path, a.adminToken(), nil).Code)

	assert.Equal(t, http.StatusForbidden, a.do(http.MethodGet, "/api/users", token, nil).Code)
	w := a.do(http.MethodGet, "/api/users", a.adminToken(), nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decode[[]models.User](t, w), 2)

	w = a.do(http.MethodPatch, path, token, map[string]interface{}{"name": "Renamed"})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Renamed", decode[models.User](t, w).Name)

	w = a.do(http.MethodPatch, path, token, map[string]interface{}{"avatarUrl": "not a url"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestDeleteUserRecomputesRatings(t *testing.T) {
	a := newTestAPI(t)
	leaving, leavingToken := a.userToken("Leaving")
	_, stayingToken := a.userToken("Staying")
	recipe := testhelpers.CreateTestRecipe(t, a.db)

	for token, stars := range map[string]int{leavingToken: 1, stayingToken: 5} {
		w := a.do(http.MethodPost, "/api/reviews", token, map[string]interface{}{
			"recipeId": recipe.ID, "rating": stars, "text": "Verdict",
		})
		require.Equal(t, http.StatusOK, w.Code)
	}

	path := "/api/users/" + leaving.ID.String()
	assert.Equal(t, http.StatusForbidden, a.do(http.MethodDelete, path, leavingToken, nil).Code)
	require.Equal(t, http.StatusOK, a.do(http.MethodDelete, path, a.adminToken(), nil).Code)

	w := a.do(http.MethodGet, "/api/recipes/"+recipe.ID.String(), "", nil)
	got := decode[models.Recipe](t, w)
	assert.Equal(t, 5.0, got.Rating)
	assert.Equal(t, int64(1), got.ReviewCount)

	assert.Equal(t, http.StatusNotFound, a.do(http.MethodGet, path, a.adminToken(), nil).Code)
}
