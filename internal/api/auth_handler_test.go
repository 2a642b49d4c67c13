package api_test

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"elelem/backend/internal/api"
	app_errors "elelem/backend/internal/errors"
	"elelem/backend/internal/interfaces/mocks"
	"elelem/backend/internal/model"
)

func TestAuthHandler_HandleRegister(t *testing.T) {
	t.Run("success is 201 without the password", func(t *testing.T) {
		users := mocks.NewMockUserService(t)
		handler := api.NewAuthHandler(users)

		created := &model.User{ID: "u1", Email: "new@b.com", Password: "hash", IsActive: true}
		users.On("Register", mock.Anything, "new@b.com", "s3cret!pw").Return(created, nil).Once()

		body := strings.NewReader(`{"email": "new@b.com", "password": "s3cret!pw"}`)
		rec := serve(http.HandlerFunc(handler.HandleRegister), httptest.NewRequest(http.MethodPost, "/api/v1/auth/register", body))

		assert.Equal(t, http.StatusCreated, rec.Code)
		assert.NotContains(t, rec.Body.String(), "hash")

		var got model.User
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
		assert.Equal(t, "new@b.com", got.Email)
	})

	t.Run("duplicate email is 409", func(t *testing.T) {
		users := mocks.NewMockUserService(t)
		handler := api.NewAuthHandler(users)

		users.On("Register", mock.Anything, "taken@b.com", "s3cret!pw").
			Return(nil, fmt.Errorf("%w: email already registered", app_errors.ErrConflict)).Once()

		body := strings.NewReader(`{"email": "taken@b.com", "password": "s3cret!pw"}`)
		rec := serve(http.HandlerFunc(handler.HandleRegister), httptest.NewRequest(http.MethodPost, "/api/v1/auth/register", body))
		assert.Equal(t, http.StatusConflict, rec.Code)
	})

	t.Run("bad email and short password are 400", func(t *testing.T) {
		users := mocks.NewMockUserService(t)
		handler := api.NewAuthHandler(users)

		body := strings.NewReader(`{"email": "not-an-email", "password": "short"}`)
		rec := serve(http.HandlerFunc(handler.HandleRegister), httptest.NewRequest(http.MethodPost, "/api/v1/auth/register", body))

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		users.AssertNotCalled(t, "Register", mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestAuthHandler_HandleLogin(t *testing.T) {
	t.Run("success returns a bearer token", func(t *testing.T) {
		users := mocks.NewMockUserService(t)
		handler := api.NewAuthHandler(users)

		users.On("Login", mock.Anything, "a@b.com", "s3cret!pw").Return("signed-token", nil).Once()

		body := strings.NewReader(`{"email": "a@b.com", "password": "s3cret!pw"}`)
		rec := serve(http.HandlerFunc(handler.HandleLogin), httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", body))

		assert.Equal(t, http.StatusOK, rec.Code)
		var got api.TokenResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
		assert.Equal(t, "signed-token", got.AccessToken)
		assert.Equal(t, "bearer", got.TokenType)
	})

	t.Run("bad credentials are 401", func(t *testing.T) {
		users := mocks.NewMockUserService(t)
		handler := api.NewAuthHandler(users)

		users.On("Login", mock.Anything, "a@b.com", "wrong-pass").
			Return("", fmt.Errorf("%w: incorrect email or password", app_errors.ErrUnauthenticated)).Once()

		body := strings.NewReader(`{"email": "a@b.com", "password": "wrong-pass"}`)
		rec := serve(http.HandlerFunc(handler.HandleLogin), httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", body))
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}

func TestAuthHandler_HandleMe(t *testing.T) {
	users := mocks.NewMockUserService(t)
	handler := api.NewAuthHandler(users)

	req := withBearer(httptest.NewRequest(http.MethodGet, "/api/v1/users/me", nil))
	rec := serve(authed(t, handler.HandleMe), req)

	assert.Equal(t, http.StatusOK, rec.Code)
	var got model.User
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, testUser.ID, got.ID)
}

func TestAuthHandler_HandleGetUser(t *testing.T) {
	t.Run("own record", func(t *testing.T) {
		users := mocks.NewMockUserService(t)
		handler := api.NewAuthHandler(users)

		users.On("GetUser", mock.Anything, testUser.ID, testUser.ID).Return(testUser, nil).Once()

		req := withBearer(httptest.NewRequest(http.MethodGet, "/api/v1/users/"+testUser.ID, nil))
		req = withChiURLParams(req, map[string]string{"userID": testUser.ID})
		rec := serve(authed(t, handler.HandleGetUser), req)
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("someone else's record is 403", func(t *testing.T) {
		users := mocks.NewMockUserService(t)
		handler := api.NewAuthHandler(users)

		users.On("GetUser", mock.Anything, testUser.ID, "other").
			Return(nil, fmt.Errorf("%w: not enough permissions", app_errors.ErrPermission)).Once()

		req := withBearer(httptest.NewRequest(http.MethodGet, "/api/v1/users/other", nil))
		req = withChiURLParams(req, map[string]string{"userID": "other"})
		rec := serve(authed(t, handler.HandleGetUser), req)
		assert.Equal(t, http.StatusForbidden, rec.Code)
	})
}
