package http

import (
	"bytes"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	apperrors "github.com/allisson/keywhiz-core/internal/errors"
	"github.com/allisson/keywhiz-core/internal/membership/http/mocks"
)

func setupTestHandler(t *testing.T) (*MembershipHandler, *mocks.MockMembershipUseCase) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	membershipUseCase := new(mocks.MockMembershipUseCase)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	return NewMembershipHandler(membershipUseCase, logger), membershipUseCase
}

func createTestContext(method, url string, body []byte) (*gin.Context, *httptest.ResponseRecorder) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req, _ := http.NewRequest(method, url, bytes.NewReader(body))
	c.Request = req
	return c, w
}

func TestMembershipHandler_EnrollHandler(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		handler, membershipUseCase := setupTestHandler(t)

		membershipUseCase.On("Enroll", mock.Anything, int64(1), int64(2)).Return(nil).Once()

		body := []byte(`{"client_id":1,"group_id":2}`)
		c, w := createTestContext(http.MethodPost, "/v1/memberships/enroll", body)

		handler.EnrollHandler(c)

		assert.Equal(t, http.StatusNoContent, w.Code)
		membershipUseCase.AssertExpectations(t)
	})

	t.Run("Error_MissingGroupID", func(t *testing.T) {
		handler, _ := setupTestHandler(t)

		body := []byte(`{"client_id":1}`)
		c, w := createTestContext(http.MethodPost, "/v1/memberships/enroll", body)

		handler.EnrollHandler(c)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestMembershipHandler_EvictHandler(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		handler, membershipUseCase := setupTestHandler(t)

		membershipUseCase.On("Evict", mock.Anything, int64(1), int64(2)).Return(nil).Once()

		body := []byte(`{"client_id":1,"group_id":2}`)
		c, w := createTestContext(http.MethodPost, "/v1/memberships/evict", body)

		handler.EvictHandler(c)

		assert.Equal(t, http.StatusNoContent, w.Code)
		membershipUseCase.AssertExpectations(t)
	})
}

func TestMembershipHandler_AllowHandler(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		handler, membershipUseCase := setupTestHandler(t)

		membershipUseCase.On("Allow", mock.Anything, int64(2), int64(5)).Return(nil).Once()

		body := []byte(`{"group_id":2,"series_id":5}`)
		c, w := createTestContext(http.MethodPost, "/v1/memberships/allow", body)

		handler.AllowHandler(c)

		assert.Equal(t, http.StatusNoContent, w.Code)
		membershipUseCase.AssertExpectations(t)
	})

	t.Run("Error_AlreadyGranted", func(t *testing.T) {
		handler, membershipUseCase := setupTestHandler(t)

		membershipUseCase.On("Allow", mock.Anything, int64(2), int64(5)).
			Return(apperrors.ErrConflict).Once()

		body := []byte(`{"group_id":2,"series_id":5}`)
		c, w := createTestContext(http.MethodPost, "/v1/memberships/allow", body)

		handler.AllowHandler(c)

		assert.Equal(t, http.StatusConflict, w.Code)
	})
}

func TestMembershipHandler_DisallowHandler(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		handler, membershipUseCase := setupTestHandler(t)

		membershipUseCase.On("Disallow", mock.Anything, int64(2), int64(5)).Return(nil).Once()

		body := []byte(`{"group_id":2,"series_id":5}`)
		c, w := createTestContext(http.MethodPost, "/v1/memberships/disallow", body)

		handler.DisallowHandler(c)

		assert.Equal(t, http.StatusNoContent, w.Code)
		membershipUseCase.AssertExpectations(t)
	})
}
