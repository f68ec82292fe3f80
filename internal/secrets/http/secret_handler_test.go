package http

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	apperrors "github.com/allisson/onetime/internal/errors"
	secretsDomain "github.com/allisson/onetime/internal/secrets/domain"
	"github.com/allisson/onetime/internal/secrets/http/dto"
	"github.com/allisson/onetime/internal/secrets/usecase"
	"github.com/allisson/onetime/internal/secrets/usecase/mocks"
)

// setupTestHandler creates a test handler with a mocked use case.
func setupTestHandler(t *testing.T) (*SecretHandler, *mocks.MockSecretUseCase) {
	t.Helper()

	gin.SetMode(gin.TestMode)

	mockUseCase := &mocks.MockSecretUseCase{}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	return NewSecretHandler(mockUseCase, logger), mockUseCase
}

// createTestContext builds a gin context with an optional JSON body.
func createTestContext(t *testing.T, method, url string, body any) (*gin.Context, *httptest.ResponseRecorder) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	}

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req := httptest.NewRequest(method, url, reader)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", "test-agent/1.0")
	c.Request = req

	return c, w
}

func TestSecretHandler_CreateHandler(t *testing.T) {
	t.Run("Success_ReturnsShareID", func(t *testing.T) {
		handler, mockUseCase := setupTestHandler(t)
		secretID := uuid.Must(uuid.NewV7())

		mockUseCase.On("Create", mock.Anything,
			usecase.CreateSecretInput{Secret: "payload", Passphrase: "letmein", TTLSeconds: 3600},
			mock.MatchedBy(func(client usecase.ClientInfo) bool {
				return client.UserAgent == "test-agent/1.0"
			}),
		).Return(secretID, nil)

		c, w := createTestContext(t, http.MethodPost, "/api/secrets", dto.CreateSecretRequest{
			Secret:     "payload",
			Passphrase: "letmein",
			TTLSeconds: 3600,
		})

		handler.CreateHandler(c)

		assert.Equal(t, http.StatusCreated, w.Code)

		var response dto.CreateSecretResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
		assert.Equal(t, secretID.String(), response.ID)
		assert.NotContains(t, w.Body.String(), "payload")
	})

	t.Run("MissingSecretIsUnprocessable", func(t *testing.T) {
		handler, mockUseCase := setupTestHandler(t)

		c, w := createTestContext(t, http.MethodPost, "/api/secrets", dto.CreateSecretRequest{TTLSeconds: 60})

		handler.CreateHandler(c)

		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
		mockUseCase.AssertNotCalled(t, "Create", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("NegativeTTLIsUnprocessable", func(t *testing.T) {
		handler, _ := setupTestHandler(t)

		c, w := createTestContext(t, http.MethodPost, "/api/secrets", dto.CreateSecretRequest{
			Secret:     "payload",
			TTLSeconds: -1,
		})

		handler.CreateHandler(c)

		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	})

	t.Run("MalformedJSONIsBadRequest", func(t *testing.T) {
		handler, _ := setupTestHandler(t)

		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		req := httptest.NewRequest(http.MethodPost, "/api/secrets", bytes.NewBufferString("{not json"))
		req.Header.Set("Content-Type", "application/json")
		c.Request = req

		handler.CreateHandler(c)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("UseCaseFailureIsInternal", func(t *testing.T) {
		handler, mockUseCase := setupTestHandler(t)

		mockUseCase.On("Create", mock.Anything, mock.Anything, mock.Anything).
			Return(uuid.Nil, apperrors.New("boom"))

		c, w := createTestContext(t, http.MethodPost, "/api/secrets", dto.CreateSecretRequest{Secret: "payload"})

		handler.CreateHandler(c)

		assert.Equal(t, http.StatusInternalServerError, w.Code)
	})
}

func TestSecretHandler_ReadHandler(t *testing.T) {
	t.Run("Success_ReturnsPlaintext", func(t *testing.T) {
		handler, mockUseCase := setupTestHandler(t)
		secretID := uuid.Must(uuid.NewV7())

		mockUseCase.On("ReadAndBurn", mock.Anything, secretID, mock.Anything).
			Return("the payload", nil)

		c, w := createTestContext(t, http.MethodGet, "/api/secrets/"+secretID.String(), nil)
		c.Params = gin.Params{{Key: "id", Value: secretID.String()}}

		handler.ReadHandler(c)

		assert.Equal(t, http.StatusOK, w.Code)

		var response dto.ReadSecretResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
		assert.Equal(t, "the payload", response.Secret)
	})

	t.Run("UnknownSecretIsNotFound", func(t *testing.T) {
		handler, mockUseCase := setupTestHandler(t)
		secretID := uuid.Must(uuid.NewV7())

		mockUseCase.On("ReadAndBurn", mock.Anything, secretID, mock.Anything).
			Return("", secretsDomain.ErrSecretNotFound)

		c, w := createTestContext(t, http.MethodGet, "/api/secrets/"+secretID.String(), nil)
		c.Params = gin.Params{{Key: "id", Value: secretID.String()}}

		handler.ReadHandler(c)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("MalformedIDIsNotFound", func(t *testing.T) {
		handler, mockUseCase := setupTestHandler(t)

		c, w := createTestContext(t, http.MethodGet, "/api/secrets/not-a-uuid", nil)
		c.Params = gin.Params{{Key: "id", Value: "not-a-uuid"}}

		handler.ReadHandler(c)

		assert.Equal(t, http.StatusNotFound, w.Code)
		mockUseCase.AssertNotCalled(t, "ReadAndBurn", mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestSecretHandler_DeleteHandler(t *testing.T) {
	t.Run("Success_WithPassphrase", func(t *testing.T) {
		handler, mockUseCase := setupTestHandler(t)
		secretID := uuid.Must(uuid.NewV7())

		mockUseCase.On("Delete", mock.Anything, secretID, "letmein", mock.Anything).Return(nil)

		c, w := createTestContext(t, http.MethodDelete, "/api/secrets/"+secretID.String(),
			dto.DeleteSecretRequest{Passphrase: "letmein"})
		c.Params = gin.Params{{Key: "id", Value: secretID.String()}}

		handler.DeleteHandler(c)
		c.Writer.WriteHeaderNow()

		assert.Equal(t, http.StatusNoContent, w.Code)
		assert.Empty(t, w.Body.String())
	})

	t.Run("Success_WithoutBody", func(t *testing.T) {
		handler, mockUseCase := setupTestHandler(t)
		secretID := uuid.Must(uuid.NewV7())

		mockUseCase.On("Delete", mock.Anything, secretID, "", mock.Anything).Return(nil)

		c, w := createTestContext(t, http.MethodDelete, "/api/secrets/"+secretID.String(), nil)
		c.Params = gin.Params{{Key: "id", Value: secretID.String()}}

		handler.DeleteHandler(c)
		c.Writer.WriteHeaderNow()

		assert.Equal(t, http.StatusNoContent, w.Code)
	})

	t.Run("WrongPassphraseIsForbidden", func(t *testing.T) {
		handler, mockUseCase := setupTestHandler(t)
		secretID := uuid.Must(uuid.NewV7())

		mockUseCase.On("Delete", mock.Anything, secretID, "wrong", mock.Anything).
			Return(secretsDomain.ErrIncorrectPassphrase)

		c, w := createTestContext(t, http.MethodDelete, "/api/secrets/"+secretID.String(),
			dto.DeleteSecretRequest{Passphrase: "wrong"})
		c.Params = gin.Params{{Key: "id", Value: secretID.String()}}

		handler.DeleteHandler(c)

		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("UnknownSecretIsNotFound", func(t *testing.T) {
		handler, mockUseCase := setupTestHandler(t)
		secretID := uuid.Must(uuid.NewV7())

		mockUseCase.On("Delete", mock.Anything, secretID, "", mock.Anything).
			Return(secretsDomain.ErrSecretNotFound)

		c, w := createTestContext(t, http.MethodDelete, "/api/secrets/"+secretID.String(), nil)
		c.Params = gin.Params{{Key: "id", Value: secretID.String()}}

		handler.DeleteHandler(c)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}
