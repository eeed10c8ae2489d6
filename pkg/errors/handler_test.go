package errors

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func respond(t *testing.T, err error) (*httptest.ResponseRecorder, ErrorResponse) {
	t.Helper()

	h := NewHTTPHandler(zap.NewNop())
	w := httptest.NewRecorder()
	r := httptest.NewRequest("GET", "/api/v2/feed", nil)

	h.Respond(w, r, err)

	var body ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return w, body
}

func TestHTTPHandlerRespond(t *testing.T) {
	t.Run("maps error types to status codes", func(t *testing.T) {
		cases := []struct {
			err    error
			status int
			code   string
		}{
			{NewValidationError("bad input"), http.StatusBadRequest, ""},
			{NewNotFoundError("memory not found"), http.StatusNotFound, ""},
			{NewForbiddenError("no"), http.StatusForbidden, ""},
			{NewUnauthorizedError("who are you"), http.StatusUnauthorized, ""},
			{NewDuplicateReactionError(), http.StatusConflict, CodeDuplicateReaction},
			{NewNestingDepthError(3), http.StatusUnprocessableEntity, CodeNestingDepthExceeded},
			{NewTimeoutError("feed assembly"), http.StatusRequestTimeout, ""},
			{NewInvalidEmojiError([]string{"👍"}), http.StatusBadRequest, CodeInvalidEmoji},
		}

		for _, tc := range cases {
			w, body := respond(t, tc.err)
			assert.Equal(t, tc.status, w.Code, "error %v", tc.err)
			assert.False(t, body.Success)
			if tc.code != "" {
				assert.Equal(t, tc.code, body.Error.Code)
			}
		}
	})

	t.Run("database detail never reaches the client", func(t *testing.T) {
		w, body := respond(t, NewDatabaseError("put memory", errors.New("hot partition: table keepsake")))

		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.Equal(t, "internal error", body.Error.Message)
		assert.NotContains(t, w.Body.String(), "keepsake")
	})

	t.Run("unknown errors become internal", func(t *testing.T) {
		w, body := respond(t, errors.New("something odd"))

		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.Equal(t, "internal error", body.Error.Message)
	})

	t.Run("details carry the offending field", func(t *testing.T) {
		_, body := respond(t, NewInvalidFilterError("status", "unknown status"))

		require.NotNil(t, body.Error.Details)
		assert.Equal(t, "status", body.Error.Details["field"])
	})
}
