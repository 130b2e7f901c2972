package http

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	usecaseMocks "github.com/nvish-ganesh/contentful-embargoed-api/internal/signing/usecase/mocks"
)

const testDefaultTTL = 15 * time.Minute

func testScopeConfig() ScopeConfig {
	return ScopeConfig{
		Host:          "api.contentful.com",
		SpaceID:       "sp1",
		EnvironmentID: "master",
		AccessToken:   "cda-token",
	}
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// setupSignTestHandler creates a test sign handler with a mocked use case.
func setupSignTestHandler(t *testing.T) (*SignHandler, *usecaseMocks.MockSignURLUseCase) {
	t.Helper()

	gin.SetMode(gin.TestMode)

	mockUseCase := &usecaseMocks.MockSignURLUseCase{}
	handler := NewSignHandler(mockUseCase, testScopeConfig(), testDefaultTTL, testLogger())

	return handler, mockUseCase
}

// setupAssetTestHandler creates a test redirect handler with a mocked use case.
func setupAssetTestHandler(t *testing.T) (*AssetHandler, *usecaseMocks.MockSignURLUseCase) {
	t.Helper()

	gin.SetMode(gin.TestMode)

	mockUseCase := &usecaseMocks.MockSignURLUseCase{}
	handler := NewAssetHandler(mockUseCase, testScopeConfig(), "secure.ctfassets.net", testDefaultTTL, testLogger())

	return handler, mockUseCase
}

// createTestContext creates a test Gin context with the given request.
func createTestContext(method, path string, body interface{}) (*gin.Context, *httptest.ResponseRecorder) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	var bodyReader io.Reader
	if body != nil {
		bodyBytes, _ := json.Marshal(body)
		bodyReader = bytes.NewReader(bodyBytes)
	}

	req := httptest.NewRequest(method, path, bodyReader)
	req.Header.Set("Content-Type", "application/json")
	c.Request = req

	return c, w
}
