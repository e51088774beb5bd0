// Copyright (c) 2026 Anicat. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package catalogtest

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/anicat/internal/platform/middleware"
	"github.com/taibuivan/anicat/internal/platform/sec"
)

// Bearer tokens accepted by [Verifier].
const (
	AdminToken = "admin-token"
	UserToken  = "user-token"
)

// Verifier maps the fixed test tokens to claims.
type Verifier struct{}

func (Verifier) VerifyToken(_ context.Context, token string) (*sec.AuthClaims, error) {
	switch token {
	case AdminToken:
		return &sec.AuthClaims{UserID: "admin-id", Username: "admin", Role: string(sec.RoleAdmin)}, nil
	case UserToken:
		return &sec.AuthClaims{UserID: "user-id", Username: "viewer", Role: string(sec.RoleUser)}, nil
	default:
		return nil, sec.ErrInvalidToken
	}
}

// Logger discards everything.
func Logger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// Router mounts register under /api behind [middleware.Authenticate].
func Router(register func(api chi.Router)) http.Handler {
	router := chi.NewRouter()
	router.Use(middleware.Authenticate(Verifier{}))
	router.Route("/api", register)
	return router
}

// Do sends one request. body is JSON encoded unless it is a string, which is
// sent raw.
func Do(t *testing.T, handler http.Handler, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	switch payload := body.(type) {
	case nil:
	case string:
		reader = bytes.NewBufferString(payload)
	default:
		encoded, err := json.Marshal(payload)
		require.NoError(t, err)
		reader = bytes.NewReader(encoded)
	}

	request := httptest.NewRequest(method, path, reader)
	if reader != nil {
		request.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		request.Header.Set("Authorization", "Bearer "+token)
	}

	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, request)
	return recorder
}

// Decode unmarshals a response body into T.
func Decode[T any](t *testing.T, recorder *httptest.ResponseRecorder) T {
	t.Helper()

	var value T
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &value), recorder.Body.String())
	return value
}
