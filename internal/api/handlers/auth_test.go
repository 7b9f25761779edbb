package handlers_test

import (
	"net/http"
	"testing"

	"github.com/hugh/staffhub/internal/api/dto"
	"github.com/hugh/staffhub/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAuthHandler_Register(t *testing.T) {
	f := setupServer(t)

	t.Run("creates organisation and returns token", func(t *testing.T) {
		req := testutil.UnauthenticatedRequest(t, http.MethodPost, "/api/auth/register", map[string]string{
			"orgName":   "Acme",
			"adminName": "Ann",
			"email":     "ann@acme.com",
			"password":  "secret1",
		})
		rr := f.do(req)

		require.Equal(t, http.StatusCreated, rr.Code)

		var resp dto.AuthResponse
		testutil.ParseJSONResponse(t, rr, &resp)
		assert.Equal(t, "Organisation created successfully", resp.Message)
		assert.NotEmpty(t, resp.Token)
		assert.Equal(t, "Ann", resp.User.Name)
		assert.Equal(t, "Acme", resp.User.OrganisationName)
		assert.NotEmpty(t, resp.User.OrganisationID)
	})

	t.Run("token from registration works on guarded routes", func(t *testing.T) {
		req := testutil.UnauthenticatedRequest(t, http.MethodPost, "/api/auth/register", map[string]string{
			"orgName":   "Tokenworks",
			"adminName": "Tom",
			"email":     "tom@tokenworks.com",
			"password":  "secret1",
		})
		rr := f.do(req)
		require.Equal(t, http.StatusCreated, rr.Code)

		var resp dto.AuthResponse
		testutil.ParseJSONResponse(t, rr, &resp)

		listReq := testutil.AuthenticatedRequest(t, http.MethodGet, "/api/employees", nil, resp.Token)
		assert.Equal(t, http.StatusOK, f.do(listReq).Code)
	})

	t.Run("duplicate email is rejected", func(t *testing.T) {
		body := map[string]string{
			"orgName":   "Dup Org",
			"adminName": "Dup",
			"email":     "dup@acme.com",
			"password":  "secret1",
		}
		require.Equal(t, http.StatusCreated, f.do(testutil.UnauthenticatedRequest(t, http.MethodPost, "/api/auth/register", body)).Code)

		rr := f.do(testutil.UnauthenticatedRequest(t, http.MethodPost, "/api/auth/register", body))
		assert.Equal(t, http.StatusBadRequest, rr.Code)

		var resp dto.ErrorResponse
		testutil.ParseJSONResponse(t, rr, &resp)
		assert.Equal(t, "Email already registered", resp.Message)
	})

	t.Run("short password fails validation with field details", func(t *testing.T) {
		rr := f.do(testutil.UnauthenticatedRequest(t, http.MethodPost, "/api/auth/register", map[string]string{
			"orgName":   "Shorty",
			"adminName": "Sho",
			"email":     "sho@acme.com",
			"password":  "12345",
		}))
		assert.Equal(t, http.StatusBadRequest, rr.Code)

		var resp dto.ErrorResponse
		testutil.ParseJSONResponse(t, rr, &resp)
		assert.Equal(t, "Validation failed", resp.Message)
		assert.Equal(t, "Password must be at least 6 characters", resp.Details["password"])
	})

	t.Run("missing fields fail validation", func(t *testing.T) {
		rr := f.do(testutil.UnauthenticatedRequest(t, http.MethodPost, "/api/auth/register", map[string]string{
			"email": "only@acme.com",
		}))
		assert.Equal(t, http.StatusBadRequest, rr.Code)

		var resp dto.ErrorResponse
		testutil.ParseJSONResponse(t, rr, &resp)
		assert.Contains(t, resp.Details, "orgName")
		assert.Contains(t, resp.Details, "adminName")
		assert.Contains(t, resp.Details, "password")
	})
}

func TestAuthHandler_Login(t *testing.T) {
	f := setupServer(t)

	require.Equal(t, http.StatusCreated, f.do(testutil.UnauthenticatedRequest(t, http.MethodPost, "/api/auth/register", map[string]string{
		"orgName":   "Login Org",
		"adminName": "Lori",
		"email":     "lori@acme.com",
		"password":  "secret1",
	})).Code)

	t.Run("valid credentials return token and organisation", func(t *testing.T) {
		rr := f.do(testutil.UnauthenticatedRequest(t, http.MethodPost, "/api/auth/login", map[string]string{
			"email":    "lori@acme.com",
			"password": "secret1",
		}))
		require.Equal(t, http.StatusOK, rr.Code)

		var resp dto.AuthResponse
		testutil.ParseJSONResponse(t, rr, &resp)
		assert.Equal(t, "Login successful", resp.Message)
		assert.NotEmpty(t, resp.Token)
		assert.Equal(t, "Login Org", resp.User.OrganisationName)
	})

	t.Run("wrong password and unknown email get identical responses", func(t *testing.T) {
		wrong := f.do(testutil.UnauthenticatedRequest(t, http.MethodPost, "/api/auth/login", map[string]string{
			"email":    "lori@acme.com",
			"password": "nope",
		}))
		absent := f.do(testutil.UnauthenticatedRequest(t, http.MethodPost, "/api/auth/login", map[string]string{
			"email":    "ghost@acme.com",
			"password": "nope",
		}))

		assert.Equal(t, http.StatusUnauthorized, wrong.Code)
		assert.Equal(t, http.StatusUnauthorized, absent.Code)
		assert.Equal(t, wrong.Body.String(), absent.Body.String())
	})
}

func TestAuthHandler_Logout(t *testing.T) {
	f := setupServer(t)

	t.Run("requires authentication", func(t *testing.T) {
		rr := f.do(testutil.UnauthenticatedRequest(t, http.MethodPost, "/api/auth/logout", nil))
		assert.Equal(t, http.StatusUnauthorized, rr.Code)
	})

	t.Run("acknowledges logout", func(t *testing.T) {
		rr := f.do(testutil.AuthenticatedRequest(t, http.MethodPost, "/api/auth/logout", nil, f.Token))
		require.Equal(t, http.StatusOK, rr.Code)

		var resp dto.SuccessResponse
		testutil.ParseJSONResponse(t, rr, &resp)
		assert.Equal(t, "Logout successful", resp.Message)
	})

	t.Run("token remains valid afterwards", func(t *testing.T) {
		rr := f.do(testutil.AuthenticatedRequest(t, http.MethodGet, "/api/employees", nil, f.Token))
		assert.Equal(t, http.StatusOK, rr.Code)
	})
}
