package rest_test

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sonobay/sonobay-indexer/internal/api/rest"
	"github.com/sonobay/sonobay-indexer/internal/burn"
	"github.com/sonobay/sonobay-indexer/internal/domain"
	"github.com/sonobay/sonobay-indexer/internal/mocks"
	"github.com/sonobay/sonobay-indexer/internal/store/schema"
)

const testOperator = "0x1111111111111111111111111111111111111111"

type testHandlerMocks struct {
	indexer  *mocks.MockIndexer
	contract *mocks.MockMidiContract
	burn     *mocks.MockBurnHandler
	queue    *mocks.MockRetryQueue
	store    *mocks.MockStore
	router   *gin.Engine
}

func setupTestRouter(t *testing.T) *testHandlerMocks {
	gin.SetMode(gin.TestMode)
	ctrl := gomock.NewController(t)
	tm := &testHandlerMocks{
		indexer:  mocks.NewMockIndexer(ctrl),
		contract: mocks.NewMockMidiContract(ctrl),
		burn:     mocks.NewMockBurnHandler(ctrl),
		queue:    mocks.NewMockRetryQueue(ctrl),
		store:    mocks.NewMockStore(ctrl),
	}
	handler := rest.NewHandler(rest.HandlerConfig{AttemptCeiling: 10},
		tm.indexer, tm.contract, tm.burn, tm.queue, tm.store)
	tm.router = gin.New()
	rest.SetupRoutes(tm.router, handler)
	return tm
}

func (tm *testHandlerMocks) do(method, path, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	w := httptest.NewRecorder()
	tm.router.ServeHTTP(w, req)
	return w
}

func decodeError(t *testing.T, w *httptest.ResponseRecorder) rest.APIError {
	var resp rest.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp.Error
}

func TestHealthCheck(t *testing.T) {
	t.Run("ok", func(t *testing.T) {
		tm := setupTestRouter(t)
		tm.store.EXPECT().Ping(gomock.Any()).Return(nil)

		w := tm.do(http.MethodGet, "/health", "")
		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())
	})

	t.Run("database down", func(t *testing.T) {
		tm := setupTestRouter(t)
		tm.store.EXPECT().Ping(gomock.Any()).Return(errors.New("connection refused"))

		w := tm.do(http.MethodGet, "/health", "")
		assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	})
}

func TestListQueue(t *testing.T) {
	t.Run("pending entries", func(t *testing.T) {
		tm := setupTestRouter(t)
		tm.queue.EXPECT().Fetch(gomock.Any(), 10).Return([]schema.Queue{
			{ID: 3, Attempts: 2, Error: "MetadataUnavailable: token 3", Operator: testOperator},
		})

		w := tm.do(http.MethodGet, "/api/v1/queue", "")
		require.Equal(t, http.StatusOK, w.Code)

		var resp rest.QueueResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.False(t, resp.Dead)
		require.Len(t, resp.Entries, 1)
		assert.Equal(t, int64(3), resp.Entries[0].TokenID)
		assert.Equal(t, 2, resp.Entries[0].Attempts)
	})

	t.Run("dead letters", func(t *testing.T) {
		tm := setupTestRouter(t)
		tm.queue.EXPECT().DeadLetters(gomock.Any(), 10).Return([]schema.Queue{})

		w := tm.do(http.MethodGet, "/api/v1/queue?dead=true", "")
		require.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"dead":true,"entries":[]}`, w.Body.String())
	})

	t.Run("invalid dead parameter", func(t *testing.T) {
		tm := setupTestRouter(t)

		w := tm.do(http.MethodGet, "/api/v1/queue?dead=maybe", "")
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestTriggerTokenIndexing(t *testing.T) {
	t.Run("operator from body", func(t *testing.T) {
		tm := setupTestRouter(t)
		tm.indexer.EXPECT().IndexByID(gomock.Any(), uint64(7), testOperator).Return(nil)

		w := tm.do(http.MethodPost, "/api/v1/tokens/7/index", fmt.Sprintf(`{"operator":"%s"}`, testOperator))
		require.Equal(t, http.StatusCreated, w.Code)
		assert.JSONEq(t, fmt.Sprintf(`{"token_id":7,"operator":"%s"}`, testOperator), w.Body.String())
	})

	t.Run("operator from mint history", func(t *testing.T) {
		tm := setupTestRouter(t)
		tm.contract.EXPECT().FindMintOperator(gomock.Any(), uint64(7)).Return(testOperator, nil)
		tm.indexer.EXPECT().IndexByID(gomock.Any(), uint64(7), testOperator).Return(nil)

		w := tm.do(http.MethodPost, "/api/v1/tokens/7/index", "")
		assert.Equal(t, http.StatusCreated, w.Code)
	})

	t.Run("operator not found", func(t *testing.T) {
		tm := setupTestRouter(t)
		tm.contract.EXPECT().FindMintOperator(gomock.Any(), uint64(7)).
			Return("", fmt.Errorf("%w: token 7", domain.ErrOperatorNotFound))

		w := tm.do(http.MethodPost, "/api/v1/tokens/7/index", "")
		require.Equal(t, http.StatusNotFound, w.Code)
		assert.Equal(t, rest.ErrCodeNotFound, decodeError(t, w).Code)
	})

	t.Run("already indexed", func(t *testing.T) {
		tm := setupTestRouter(t)
		tm.indexer.EXPECT().IndexByID(gomock.Any(), uint64(7), testOperator).
			Return(domain.NewIndexError(domain.ErrKindPersistenceError, 7, "midi already indexed", domain.ErrDuplicate))

		w := tm.do(http.MethodPost, "/api/v1/tokens/7/index", fmt.Sprintf(`{"operator":"%s"}`, testOperator))
		require.Equal(t, http.StatusConflict, w.Code)
		assert.Equal(t, rest.ErrCodeConflict, decodeError(t, w).Code)
	})

	t.Run("no device property", func(t *testing.T) {
		tm := setupTestRouter(t)
		tm.indexer.EXPECT().IndexByID(gomock.Any(), uint64(7), testOperator).
			Return(domain.NewIndexError(domain.ErrKindNoDeviceProperty, 7, "", nil))

		w := tm.do(http.MethodPost, "/api/v1/tokens/7/index", fmt.Sprintf(`{"operator":"%s"}`, testOperator))
		require.Equal(t, http.StatusUnprocessableEntity, w.Code)
		assert.Equal(t, rest.ErrCodeUnindexable, decodeError(t, w).Code)
	})

	t.Run("persistence failure", func(t *testing.T) {
		tm := setupTestRouter(t)
		tm.indexer.EXPECT().IndexByID(gomock.Any(), uint64(7), testOperator).
			Return(domain.NewIndexError(domain.ErrKindPersistenceError, 7, "", errors.New("deadlock")))

		w := tm.do(http.MethodPost, "/api/v1/tokens/7/index", fmt.Sprintf(`{"operator":"%s"}`, testOperator))
		assert.Equal(t, http.StatusInternalServerError, w.Code)
	})

	t.Run("invalid token id", func(t *testing.T) {
		tm := setupTestRouter(t)

		for _, id := range []string{"abc", "0", "-1"} {
			w := tm.do(http.MethodPost, "/api/v1/tokens/"+id+"/index", "")
			assert.Equal(t, http.StatusBadRequest, w.Code, id)
		}
	})

	t.Run("invalid operator", func(t *testing.T) {
		tm := setupTestRouter(t)

		w := tm.do(http.MethodPost, "/api/v1/tokens/7/index", `{"operator":"not-an-address"}`)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestTriggerBurn(t *testing.T) {
	t.Run("deleted", func(t *testing.T) {
		tm := setupTestRouter(t)
		tm.burn.EXPECT().HandleBurn(gomock.Any(), uint64(9)).
			Return(&burn.Result{TokenID: 9, TotalSupply: 0, Deleted: true}, nil)

		w := tm.do(http.MethodPost, "/api/v1/tokens/9/burn", "")
		require.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"token_id":9,"total_supply":0,"deleted":true}`, w.Body.String())
	})

	t.Run("supply read failure", func(t *testing.T) {
		tm := setupTestRouter(t)
		tm.burn.EXPECT().HandleBurn(gomock.Any(), uint64(9)).Return(nil, errors.New("rpc down"))

		w := tm.do(http.MethodPost, "/api/v1/tokens/9/burn", "")
		require.Equal(t, http.StatusBadGateway, w.Code)
		assert.Equal(t, rest.ErrCodeServiceError, decodeError(t, w).Code)
	})
}
