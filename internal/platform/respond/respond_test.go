// Copyright (c) 2026 Clipstream. All rights reserved.

package respond_test

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clipstream/api/internal/platform/apperr"
	"github.com/clipstream/api/internal/platform/respond"
)

func decodeBody(t *testing.T, recorder *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &body))
	return body
}

/*
TestCreated verifies the success envelope shape for 201 responses.
*/
func TestCreated(t *testing.T) {
	recorder := httptest.NewRecorder()

	respond.Created(recorder, map[string]string{"username": "ada"}, "User registered successfully")

	assert.Equal(t, http.StatusCreated, recorder.Code)

	body := decodeBody(t, recorder)
	assert.Equal(t, float64(201), body["statusCode"])
	assert.Equal(t, true, body["success"])
	assert.Equal(t, "User registered successfully", body["message"])

	data, ok := body["data"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "ada", data["username"])
}

/*
TestError_Validation verifies the error envelope carries field details and
null data.
*/
func TestError_Validation(t *testing.T) {
	recorder := httptest.NewRecorder()
	request := httptest.NewRequest(http.MethodPost, "/register", nil)

	err := apperr.ValidationError("Validation failed", apperr.FieldError{
		Field:   "email",
		Message: "This field is required",
	})

	respond.Error(recorder, request, err)

	assert.Equal(t, http.StatusBadRequest, recorder.Code)

	body := decodeBody(t, recorder)
	assert.Equal(t, float64(400), body["statusCode"])
	assert.Equal(t, false, body["success"])
	assert.Nil(t, body["data"])

	errorList, ok := body["errors"].([]any)
	require.True(t, ok)
	require.Len(t, errorList, 1)

	first := errorList[0].(map[string]any)
	assert.Equal(t, "email", first["field"])
}

/*
TestError_Conflict verifies conflicts map to 409 with an empty errors list.
*/
func TestError_Conflict(t *testing.T) {
	recorder := httptest.NewRecorder()
	request := httptest.NewRequest(http.MethodPost, "/register", nil)

	respond.Error(recorder, request, apperr.Conflict("User with email or username already exists"))

	assert.Equal(t, http.StatusConflict, recorder.Code)

	body := decodeBody(t, recorder)
	assert.Equal(t, "User with email or username already exists", body["message"])

	// errors must be present and empty, never absent or null
	errorList, ok := body["errors"].([]any)
	require.True(t, ok)
	assert.Empty(t, errorList)
}

/*
TestError_Unexpected verifies non-AppError failures degrade to a generic 500
without leaking internals.
*/
func TestError_Unexpected(t *testing.T) {
	recorder := httptest.NewRecorder()
	request := httptest.NewRequest(http.MethodPost, "/register", nil)

	respond.Error(recorder, request, errors.New("pq: column does not exist"))

	assert.Equal(t, http.StatusInternalServerError, recorder.Code)

	body := decodeBody(t, recorder)
	assert.Equal(t, "An unexpected error occurred", body["message"])
	assert.NotContains(t, recorder.Body.String(), "column does not exist")
}
