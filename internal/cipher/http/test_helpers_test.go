package http

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	usecaseMocks "github.com/allisson/reptend/internal/cipher/usecase/mocks"
)

const testMaxPrimeBits = 1024

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

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func setupCipherKeyUseCase(t *testing.T) *usecaseMocks.MockCipherKeyUseCase {
	t.Helper()
	gin.SetMode(gin.TestMode)
	m := &usecaseMocks.MockCipherKeyUseCase{}
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}
