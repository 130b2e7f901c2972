package httputil

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	apperrors "github.com/nvish-ganesh/contentful-embargoed-api/internal/errors"
)

func newErrorTestContext() (*gin.Context, *httptest.ResponseRecorder) {
	gin.SetMode(gin.TestMode)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/test", nil)
	return c, w
}

func TestHandleErrorGin(t *testing.T) {
	tests := []struct {
		name         string
		err          error
		expectedCode int
		expectedErr  string
	}{
		{
			name:         "not found",
			err:          apperrors.ErrNotFound,
			expectedCode: http.StatusNotFound,
			expectedErr:  "not_found",
		},
		{
			name:         "invalid input",
			err:          apperrors.Wrap(apperrors.ErrInvalidInput, "bad url"),
			expectedCode: http.StatusUnprocessableEntity,
			expectedErr:  "invalid_input",
		},
		{
			name:         "unauthorized",
			err:          apperrors.ErrUnauthorized,
			expectedCode: http.StatusUnauthorized,
			expectedErr:  "unauthorized",
		},
		{
			name:         "forbidden",
			err:          apperrors.ErrForbidden,
			expectedCode: http.StatusForbidden,
			expectedErr:  "forbidden",
		},
		{
			name:         "upstream failure",
			err:          apperrors.Wrap(apperrors.ErrUpstream, "authority returned 503"),
			expectedCode: http.StatusBadGateway,
			expectedErr:  "upstream_failure",
		},
		{
			name:         "unknown error",
			err:          apperrors.New("something odd"),
			expectedCode: http.StatusInternalServerError,
			expectedErr:  "internal_error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, w := newErrorTestContext()

			HandleErrorGin(c, tt.err, nil)

			assert.Equal(t, tt.expectedCode, w.Code)

			var response ErrorResponse
			assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
			assert.Equal(t, tt.expectedErr, response.Error)
		})
	}

	t.Run("internal errors hide details", func(t *testing.T) {
		c, w := newErrorTestContext()

		HandleErrorGin(c, apperrors.New("secret database detail"), nil)

		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.NotContains(t, w.Body.String(), "secret database detail")
	})

	t.Run("nil error writes nothing", func(t *testing.T) {
		c, w := newErrorTestContext()

		HandleErrorGin(c, nil, nil)

		assert.Empty(t, w.Body.String())
	})
}

func TestHandleBadRequestGin(t *testing.T) {
	c, w := newErrorTestContext()

	HandleBadRequestGin(c, apperrors.New("malformed body"), nil)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "bad_request")
	assert.Contains(t, w.Body.String(), "malformed body")
}

func TestHandleValidationErrorGin(t *testing.T) {
	c, w := newErrorTestContext()

	HandleValidationErrorGin(c, apperrors.New("url must be absolute"), nil)

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Contains(t, w.Body.String(), "validation_error")
	assert.Contains(t, w.Body.String(), "url must be absolute")
}
