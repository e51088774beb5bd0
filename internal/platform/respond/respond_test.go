// Copyright (c) 2026 Anicat. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package respond_test

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/anicat/internal/platform/apperr"
	"github.com/taibuivan/anicat/internal/platform/ctxutil"
	"github.com/taibuivan/anicat/internal/platform/respond"
)

func decodeBody(t *testing.T, recorder *httptest.ResponseRecorder) respond.ErrorBody {
	t.Helper()
	var body respond.ErrorBody
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &body))
	return body
}

/*
TestError_AppError renders the status and message of a typed error.
*/
func TestError_AppError(t *testing.T) {
	recorder := httptest.NewRecorder()
	request := httptest.NewRequest(http.MethodGet, "/api/anime/x", nil)

	respond.Error(recorder, request, apperr.NotFound("Anime"))

	assert.Equal(t, http.StatusNotFound, recorder.Code)
	body := decodeBody(t, recorder)
	assert.Equal(t, "Anime not found", body.Message)
	assert.Equal(t, apperr.CodeNotFound, body.Code)
	assert.Empty(t, body.Stack)
}

/*
TestError_UnknownError hides unexpected errors behind a generic 500.
*/
func TestError_UnknownError(t *testing.T) {
	recorder := httptest.NewRecorder()
	request := httptest.NewRequest(http.MethodGet, "/", nil)

	respond.Error(recorder, request, errors.New("pq: relation does not exist"))

	assert.Equal(t, http.StatusInternalServerError, recorder.Code)
	body := decodeBody(t, recorder)
	assert.Equal(t, "An unexpected error occurred", body.Message)
	assert.NotContains(t, recorder.Body.String(), "relation")
}

/*
TestError_StackExposure emits the cause chain only on marked requests.
*/
func TestError_StackExposure(t *testing.T) {
	tests := []struct {
		name      string
		expose    bool
		wantStack bool
	}{
		{"development", true, true},
		{"production", false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			recorder := httptest.NewRecorder()
			request := httptest.NewRequest(http.MethodGet, "/", nil)
			request = request.WithContext(ctxutil.WithExposeErrors(request.Context(), tt.expose))

			respond.Error(recorder, request, apperr.Internal(errors.New("disk full")))

			body := decodeBody(t, recorder)
			if tt.wantStack {
				assert.Equal(t, "disk full", body.Stack)
			} else {
				assert.Empty(t, body.Stack)
			}
		})
	}
}

/*
TestMessage writes the delete acknowledgement shape.
*/
func TestMessage(t *testing.T) {
	recorder := httptest.NewRecorder()

	respond.Message(recorder, "Genre removed")

	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.JSONEq(t, `{"message":"Genre removed"}`, recorder.Body.String())
}
