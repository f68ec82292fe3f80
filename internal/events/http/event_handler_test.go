package http

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	apperrors "github.com/allisson/onetime/internal/errors"
	eventsDomain "github.com/allisson/onetime/internal/events/domain"
	"github.com/allisson/onetime/internal/events/http/dto"
	"github.com/allisson/onetime/internal/events/usecase/mocks"
)

func setupTestHandler(t *testing.T) (*EventHandler, *mocks.MockEventUseCase) {
	t.Helper()

	gin.SetMode(gin.TestMode)

	mockUseCase := &mocks.MockEventUseCase{}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	return NewEventHandler(mockUseCase, logger), mockUseCase
}

func createTestContext(t *testing.T, url string) (*gin.Context, *httptest.ResponseRecorder) {
	t.Helper()

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, url, nil)

	return c, w
}

func TestEventHandler_ListHandler(t *testing.T) {
	t.Run("Success_ReturnsPage", func(t *testing.T) {
		handler, mockUseCase := setupTestHandler(t)

		event, err := eventsDomain.NewEvent(
			uuid.Must(uuid.NewV7()),
			eventsDomain.EventTypeCreate,
			"203.0.113.7",
			"curl/8.5.0",
			time.Now(),
		)
		require.NoError(t, err)

		mockUseCase.On("List", mock.Anything, 2, 10).
			Return([]*eventsDomain.Event{&event}, nil)

		c, w := createTestContext(t, "/api/events?page=2&page_size=10")

		handler.ListHandler(c)

		assert.Equal(t, http.StatusOK, w.Code)

		var response dto.ListEventsResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
		assert.Equal(t, 2, response.Page)
		assert.Equal(t, 10, response.PageSize)
		require.Len(t, response.Events, 1)
		assert.Equal(t, event.ID.String(), response.Events[0].ID)
		assert.Equal(t, "CREATE", response.Events[0].Type)
		assert.Equal(t, "203.0.113.7", response.Events[0].ClientIP)
	})

	t.Run("DefaultsApply", func(t *testing.T) {
		handler, mockUseCase := setupTestHandler(t)

		mockUseCase.On("List", mock.Anything, 1, 50).
			Return([]*eventsDomain.Event{}, nil)

		c, w := createTestContext(t, "/api/events")

		handler.ListHandler(c)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"events":[]`)
	})

	t.Run("BadPaginationIsBadRequest", func(t *testing.T) {
		handler, mockUseCase := setupTestHandler(t)

		c, w := createTestContext(t, "/api/events?page=0")

		handler.ListHandler(c)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		mockUseCase.AssertNotCalled(t, "List", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("UseCaseFailureIsInternal", func(t *testing.T) {
		handler, mockUseCase := setupTestHandler(t)

		mockUseCase.On("List", mock.Anything, 1, 50).
			Return(nil, apperrors.New("query failed"))

		c, w := createTestContext(t, "/api/events")

		handler.ListHandler(c)

		assert.Equal(t, http.StatusInternalServerError, w.Code)
	})
}
