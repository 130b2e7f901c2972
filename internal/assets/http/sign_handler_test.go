package http

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	keyDomain "github.com/nvish-ganesh/contentful-embargoed-api/internal/assetkey/domain"
	"github.com/nvish-ganesh/contentful-embargoed-api/internal/assets/http/dto"
	apperrors "github.com/nvish-ganesh/contentful-embargoed-api/internal/errors"
	signingDomain "github.com/nvish-ganesh/contentful-embargoed-api/internal/signing/domain"
)

func TestSignHandler_SignURLHandler(t *testing.T) {
	t.Run("Success_DefaultTTL", func(t *testing.T) {
		handler, mockUseCase := setupSignTestHandler(t)

		request := dto.SignURLRequest{URL: "https://sub.secure.ctfassets.net/sp1/asset/cat.jpg"}

		expectedOutput := &signingDomain.SignURLOutput{
			URL:       "https://sub.secure.ctfassets.net/sp1/asset/cat.jpg?policy=p&token=t",
			Policy:    "p",
			ExpiresAt: time.Now().Add(testDefaultTTL),
		}

		before := time.Now()
		mockUseCase.On("SignURL", mock.Anything, mock.MatchedBy(func(input *signingDomain.SignURLInput) bool {
			return input.URL == request.URL &&
				input.Host == "api.contentful.com" &&
				input.SpaceID == "sp1" &&
				input.EnvironmentID == "master" &&
				input.AccessToken == "cda-token" &&
				input.ExpiresAt.Sub(before.Add(testDefaultTTL)) < 5*time.Second
		})).Return(expectedOutput, nil).Once()

		c, w := createTestContext(http.MethodPost, "/v1/sign", request)
		handler.SignURLHandler(c)

		assert.Equal(t, http.StatusOK, w.Code)

		var response dto.SignURLResponse
		assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
		assert.Equal(t, expectedOutput.URL, response.URL)
		assert.Equal(t, "p", response.Policy)
		assert.Equal(t, expectedOutput.ExpiresAt.Unix(), response.ExpiresAt.Unix())

		mockUseCase.AssertExpectations(t)
	})

	t.Run("Success_ExplicitExpiry", func(t *testing.T) {
		handler, mockUseCase := setupSignTestHandler(t)

		request := dto.SignURLRequest{
			URL:              "https://sub.secure.ctfassets.net/sp1/asset/cat.jpg",
			ExpiresInSeconds: 3600,
		}

		before := time.Now()
		mockUseCase.On("SignURL", mock.Anything, mock.MatchedBy(func(input *signingDomain.SignURLInput) bool {
			return input.ExpiresAt.Sub(before.Add(time.Hour)) < 5*time.Second &&
				input.ExpiresAt.After(before.Add(59*time.Minute))
		})).Return(&signingDomain.SignURLOutput{URL: request.URL}, nil).Once()

		c, w := createTestContext(http.MethodPost, "/v1/sign", request)
		handler.SignURLHandler(c)

		assert.Equal(t, http.StatusOK, w.Code)
		mockUseCase.AssertExpectations(t)
	})

	t.Run("Error_InvalidJSON", func(t *testing.T) {
		handler, mockUseCase := setupSignTestHandler(t)

		c, w := createTestContext(http.MethodPost, "/v1/sign", nil)
		c.Request.Body = io.NopCloser(bytes.NewReader([]byte("not json")))

		handler.SignURLHandler(c)

		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
		mockUseCase.AssertNotCalled(t, "SignURL")
	})

	t.Run("Error_MissingURL", func(t *testing.T) {
		handler, mockUseCase := setupSignTestHandler(t)

		c, w := createTestContext(http.MethodPost, "/v1/sign", map[string]any{"expires_in_seconds": 60})
		handler.SignURLHandler(c)

		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
		mockUseCase.AssertNotCalled(t, "SignURL")
	})

	t.Run("Error_RelativeURL", func(t *testing.T) {
		handler, mockUseCase := setupSignTestHandler(t)

		c, w := createTestContext(http.MethodPost, "/v1/sign", dto.SignURLRequest{URL: "/sp1/asset/cat.jpg"})
		handler.SignURLHandler(c)

		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
		mockUseCase.AssertNotCalled(t, "SignURL")
	})

	t.Run("Error_ExpiryBeyondMaxLifetime", func(t *testing.T) {
		handler, mockUseCase := setupSignTestHandler(t)

		request := dto.SignURLRequest{
			URL:              "https://sub.secure.ctfassets.net/sp1/asset/cat.jpg",
			ExpiresInSeconds: int64(keyDomain.MaxKeyLifetime.Seconds()) + 1,
		}

		c, w := createTestContext(http.MethodPost, "/v1/sign", request)
		handler.SignURLHandler(c)

		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
		mockUseCase.AssertNotCalled(t, "SignURL")
	})

	t.Run("Error_UpstreamFailure", func(t *testing.T) {
		handler, mockUseCase := setupSignTestHandler(t)

		mockUseCase.On("SignURL", mock.Anything, mock.Anything).
			Return(nil, apperrors.Wrap(apperrors.ErrUpstream, "authority unavailable")).
			Once()

		request := dto.SignURLRequest{URL: "https://sub.secure.ctfassets.net/sp1/asset/cat.jpg"}
		c, w := createTestContext(http.MethodPost, "/v1/sign", request)
		handler.SignURLHandler(c)

		assert.Equal(t, http.StatusBadGateway, w.Code)
		mockUseCase.AssertExpectations(t)
	})
}
