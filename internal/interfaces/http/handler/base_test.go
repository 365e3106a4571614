package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/retailops/backend/internal/domain/shared"
	"github.com/retailops/backend/internal/interfaces/http/dto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func testContext(t *testing.T) (*gin.Context, *httptest.ResponseRecorder) {
	t.Helper()
	recorder := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(recorder)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	return c, recorder
}

func decodeResponse(t *testing.T, recorder *httptest.ResponseRecorder) dto.Response {
	t.Helper()
	var resp dto.Response
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &resp))
	return resp
}

func TestGetUserID(t *testing.T) {
	t.Run("reads the context key", func(t *testing.T) {
		c, _ := testContext(t)
		id := uuid.New()
		c.Set("user_id", id.String())

		got, err := getUserID(c)
		require.NoError(t, err)
		assert.Equal(t, id, got)
	})

	t.Run("falls back to the header", func(t *testing.T) {
		c, _ := testContext(t)
		id := uuid.New()
		c.Request.Header.Set("X-User-ID", id.String())

		got, err := getUserID(c)
		require.NoError(t, err)
		assert.Equal(t, id, got)
	})

	t.Run("rejects missing identity", func(t *testing.T) {
		c, _ := testContext(t)
		_, err := getUserID(c)
		assert.Error(t, err)
	})

	t.Run("rejects malformed ids", func(t *testing.T) {
		c, _ := testContext(t)
		c.Request.Header.Set("X-User-ID", "not-a-uuid")
		_, err := getUserID(c)
		assert.Error(t, err)
	})
}

func TestHandleError(t *testing.T) {
	h := &BaseHandler{}

	cases := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
	}{
		{"not found", shared.ErrNotFound, http.StatusNotFound, "NOT_FOUND"},
		{"invalid date range", shared.ErrInvalidDateRange, http.StatusBadRequest, "INVALID_DATE_RANGE"},
		{"unsupported type", shared.ErrUnsupportedReportType, http.StatusBadRequest, "UNSUPPORTED_REPORT_TYPE"},
		{"not implemented", shared.ErrNotImplemented, http.StatusNotImplemented, "NOT_IMPLEMENTED"},
		{"not ready", shared.NewDomainError("REPORT_NOT_READY", "Report has not completed yet"), http.StatusConflict, "REPORT_NOT_READY"},
		{"unexpected", errors.New("disk on fire"), http.StatusInternalServerError, "INTERNAL_ERROR"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c, recorder := testContext(t)
			h.HandleError(c, tc.err)

			assert.Equal(t, tc.wantStatus, recorder.Code)
			resp := decodeResponse(t, recorder)
			assert.False(t, resp.Success)
			require.NotNil(t, resp.Error)
			assert.Equal(t, tc.wantCode, resp.Error.Code)
		})
	}

	t.Run("internal errors never leak details", func(t *testing.T) {
		c, recorder := testContext(t)
		h.HandleError(c, errors.New("password=hunter2"))

		resp := decodeResponse(t, recorder)
		assert.NotContains(t, recorder.Body.String(), "hunter2")
		assert.Equal(t, "An unexpected error occurred", resp.Error.Message)
	})
}

func TestResponseHelpers(t *testing.T) {
	h := &BaseHandler{}

	t.Run("success envelope", func(t *testing.T) {
		c, recorder := testContext(t)
		h.Success(c, gin.H{"hello": "world"})

		assert.Equal(t, http.StatusOK, recorder.Code)
		resp := decodeResponse(t, recorder)
		assert.True(t, resp.Success)
		assert.Nil(t, resp.Error)
	})

	t.Run("meta envelope carries pagination", func(t *testing.T) {
		c, recorder := testContext(t)
		h.SuccessWithMeta(c, []string{}, 12, 2, 5, 3)

		resp := decodeResponse(t, recorder)
		require.NotNil(t, resp.Meta)
		assert.Equal(t, int64(12), resp.Meta.Total)
		assert.Equal(t, 2, resp.Meta.Page)
		assert.Equal(t, 5, resp.Meta.Limit)
		assert.Equal(t, 3, resp.Meta.TotalPages)
	})

	t.Run("created envelope", func(t *testing.T) {
		c, recorder := testContext(t)
		h.Created(c, gin.H{"id": "abc"})
		assert.Equal(t, http.StatusCreated, recorder.Code)
	})
}
