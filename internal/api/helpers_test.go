package api_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/mock"

	"elelem/backend/internal/api"
	"elelem/backend/internal/interfaces/mocks"
	"elelem/backend/internal/model"
)

const testToken = "test-token"

var testUser = &model.User{ID: "user1", Email: "a@b.com", IsActive: true}

// authed wraps a handler with the auth middleware backed by a mock user
// service that accepts testToken as testUser.
func authed(t *testing.T, h http.HandlerFunc) http.Handler {
	t.Helper()
	users := mocks.NewMockUserService(t)
	users.On("Authenticate", mock.Anything, testToken).Return(testUser, nil)
	return api.RequireAuth(users)(h)
}

// withBearer attaches the test bearer token.
func withBearer(r *http.Request) *http.Request {
	r.Header.Set("Authorization", "Bearer "+testToken)
	return r
}

// withChiURLParams installs a chi route context carrying path parameters, so
// handlers can be exercised without a full router.
func withChiURLParams(r *http.Request, params map[string]string) *http.Request {
	rctx := chi.NewRouteContext()
	for key, value := range params {
		rctx.URLParams.Add(key, value)
	}
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

func serve(h http.Handler, r *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, r)
	return rec
}
