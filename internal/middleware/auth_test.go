package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/parfumdelite/backend/internal/auth"
	"github.com/parfumdelite/backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type fakeStore struct {
	users map[primitive.ObjectID]*models.User
	err   error
}

func (f *fakeStore) GetUserByID(_ context.Context, id primitive.ObjectID) (*models.User, error) {
	if f.err != nil {
		return nil, f.err
	}
	if u, ok := f.users[id]; ok {
		return u, nil
	}
	return nil, models.ErrDataNotFound
}

func TestAuth(t *testing.T) {
	token := auth.NewAuthToken([]byte("test-signing-key"))

	active := &models.User{ID: primitive.NewObjectID(), Username: "active"}
	suspended := &models.User{ID: primitive.NewObjectID(), Username: "blocked", IsSuspended: true}

	store := &fakeStore{users: map[primitive.ObjectID]*models.User{
		active.ID:    active,
		suspended.ID: suspended,
	}}

	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		actor, ok := Principal(r.Context())
		require.True(t, ok)
		w.Write([]byte(actor.Username))
	})

	handler := Auth(token, store)(next)

	t.Run("valid_cookie", func(t *testing.T) {
		signed, err := token.CreateToken(active)
		require.NoError(t, err)

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.AddCookie(&http.Cookie{Name: "auth_token", Value: signed})

		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "active", rec.Body.String())
	})

	t.Run("bearer_header", func(t *testing.T) {
		signed, err := token.CreateToken(active)
		require.NoError(t, err)

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", "Bearer "+signed)

		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("missing_token", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)

		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("bad_token", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", "Bearer garbage")

		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("suspended_account", func(t *testing.T) {
		signed, err := token.CreateToken(suspended)
		require.NoError(t, err)

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.AddCookie(&http.Cookie{Name: "auth_token", Value: signed})

		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusForbidden, rec.Code)
	})

	t.Run("unknown_account", func(t *testing.T) {
		ghost := &models.User{ID: primitive.NewObjectID()}
		signed, err := token.CreateToken(ghost)
		require.NoError(t, err)

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.AddCookie(&http.Cookie{Name: "auth_token", Value: signed})

		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("store_failure_is_not_unauthorized", func(t *testing.T) {
		signed, err := token.CreateToken(active)
		require.NoError(t, err)

		broken := Auth(token, &fakeStore{err: models.ErrInternalError})(next)

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.AddCookie(&http.Cookie{Name: "auth_token", Value: signed})

		rec := httptest.NewRecorder()
		broken.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusInternalServerError, rec.Code)
	})
}

func TestAdminOnly(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	handler := AdminOnly(next)

	t.Run("admin_passes", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req = req.WithContext(WithPrincipal(req.Context(), &models.User{IsAdmin: true}))

		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("regular_user_rejected", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req = req.WithContext(WithPrincipal(req.Context(), &models.User{}))

		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusForbidden, rec.Code)
	})

	t.Run("no_principal_rejected", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)

		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusForbidden, rec.Code)
	})
}
