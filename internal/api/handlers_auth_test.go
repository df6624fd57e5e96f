package api

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sheetdash/backend/internal/auth"
	"github.com/sheetdash/backend/internal/config"
	"github.com/sheetdash/backend/internal/files"
	"github.com/sheetdash/backend/internal/testutil"
)

func TestHandleLogin(t *testing.T) {
	ts := newTestServer(t)

	rec := ts.do(http.MethodPost, "/api/auth/login", echo.MIMEApplicationJSON,
		strings.NewReader(`{"username":"admin","password":"s3cret"}`), false)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	resp := decodeBody(t, rec)
	assert.Equal(t, true, resp["success"])
	assert.Equal(t, "Login successful", resp["message"])
	assert.NotEmpty(t, resp["token"])
}

func TestHandleLogin_TokenOpensAdminRoutes(t *testing.T) {
	ts := newTestServer(t)

	rec := ts.do(http.MethodPost, "/api/auth/login", echo.MIMEApplicationJSON,
		strings.NewReader(`{"username":"admin","password":"s3cret"}`), false)
	require.Equal(t, http.StatusOK, rec.Code)
	token := decodeBody(t, rec)["token"].(string)

	req := httptest.NewRequest(http.MethodPost, "/api/files/apply-changes", nil)
	req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	recorder := httptest.NewRecorder()
	ts.echo.ServeHTTP(recorder, req)
	assert.Equal(t, http.StatusOK, recorder.Code)
}

func TestHandleLogin_InvalidCredentials(t *testing.T) {
	ts := newTestServer(t)

	rec := ts.do(http.MethodPost, "/api/auth/login", echo.MIMEApplicationJSON,
		strings.NewReader(`{"username":"admin","password":"wrong"}`), false)
	require.Equal(t, http.StatusUnauthorized, rec.Code)

	resp := decodeBody(t, rec)
	assert.Equal(t, "INVALID_CREDENTIALS", resp["code"])
	assert.Equal(t, "Invalid credentials", resp["message"])
}

func TestHandleLogin_MalformedBody(t *testing.T) {
	ts := newTestServer(t)

	rec := ts.do(http.MethodPost, "/api/auth/login", echo.MIMEApplicationJSON,
		strings.NewReader(`{"username":`), false)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "BAD_REQUEST", decodeBody(t, rec)["code"])
}

func TestHandleLogin_Misconfigured(t *testing.T) {
	meta := testutil.NewMockMetadata()
	blobs := testutil.NewMockBlob()
	e := echo.New()
	RegisterRoutes(e, NewHandlers(&Dependencies{
		Files:   files.NewService(meta, blobs),
		Auth:    auth.NewService(config.AuthConfig{}),
		Version: "test",
	}))
	ts := &testServer{echo: e, blobs: blobs}

	rec := ts.do(http.MethodPost, "/api/auth/login", echo.MIMEApplicationJSON,
		strings.NewReader(`{"username":"admin","password":"s3cret"}`), false)
	require.Equal(t, http.StatusInternalServerError, rec.Code)

	resp := decodeBody(t, rec)
	assert.Equal(t, "SERVER_MISCONFIGURED", resp["code"])
	assert.Equal(t, "Server configuration error", resp["message"])
}
