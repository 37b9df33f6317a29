package rest

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/ethereum/go-ethereum/common"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/sonobay/sonobay-indexer/internal/burn"
	"github.com/sonobay/sonobay-indexer/internal/domain"
	"github.com/sonobay/sonobay-indexer/internal/indexer"
	"github.com/sonobay/sonobay-indexer/internal/logger"
	"github.com/sonobay/sonobay-indexer/internal/providers/ethereum"
	"github.com/sonobay/sonobay-indexer/internal/queue"
	"github.com/sonobay/sonobay-indexer/internal/store"
	"github.com/sonobay/sonobay-indexer/internal/store/schema"
)

// Handler defines the interface for REST API handlers
//
//go:generate mockgen -source=handler.go -destination=../../mocks/api_handler.go -package=mocks -mock_names=Handler=MockAPIHandler
type Handler interface {
	// ListQueue lists retry queue entries
	// GET /api/v1/queue?dead=<bool>
	ListQueue(c *gin.Context)

	// TriggerTokenIndexing indexes a single token
	// POST /api/v1/tokens/:id/index
	TriggerTokenIndexing(c *gin.Context)

	// TriggerBurn reconciles a token after a burn
	// POST /api/v1/tokens/:id/burn
	TriggerBurn(c *gin.Context)

	// HealthCheck returns the health status of the API
	// GET /health
	HealthCheck(c *gin.Context)
}

// HandlerConfig holds the REST handler configuration
type HandlerConfig struct {
	AttemptCeiling int
}

type handler struct {
	config   HandlerConfig
	indexer  indexer.Indexer
	contract ethereum.MidiContract
	burn     burn.Handler
	queue    queue.RetryQueue
	store    store.Store
}

// NewHandler creates a new REST API handler
func NewHandler(
	config HandlerConfig,
	idx indexer.Indexer,
	contract ethereum.MidiContract,
	burnHandler burn.Handler,
	retryQueue queue.RetryQueue,
	st store.Store,
) Handler {
	if config.AttemptCeiling <= 0 {
		config.AttemptCeiling = domain.DEFAULT_QUEUE_ATTEMPT_CEILING
	}
	return &handler{
		config:   config,
		indexer:  idx,
		contract: contract,
		burn:     burnHandler,
		queue:    retryQueue,
		store:    st,
	}
}

// ListQueue lists pending retry entries, or dead letters when dead=true
func (h *handler) ListQueue(c *gin.Context) {
	dead := false
	if raw := c.Query("dead"); raw != "" {
		v, err := strconv.ParseBool(raw)
		if err != nil {
			respondBadRequest(c, "Invalid dead parameter", err.Error())
			return
		}
		dead = v
	}

	ctx := c.Request.Context()
	var entries []schema.Queue
	if dead {
		entries = h.queue.DeadLetters(ctx, h.config.AttemptCeiling)
	} else {
		entries = h.queue.Fetch(ctx, h.config.AttemptCeiling)
	}

	c.JSON(http.StatusOK, QueueResponse{
		Dead:    dead,
		Entries: mapQueueEntries(entries),
	})
}

// TriggerTokenIndexing indexes one token with the given or the resolved mint operator
func (h *handler) TriggerTokenIndexing(c *gin.Context) {
	tokenID, ok := parseTokenID(c)
	if !ok {
		return
	}

	var req IndexTokenRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			respondBadRequest(c, "Invalid request body", err.Error())
			return
		}
	}

	ctx := c.Request.Context()
	operator := req.Operator
	if operator != "" {
		if !common.IsHexAddress(operator) {
			respondBadRequest(c, "Invalid operator address", operator)
			return
		}
		operator = common.HexToAddress(operator).Hex()
	} else {
		resolved, err := h.contract.FindMintOperator(ctx, tokenID)
		if err != nil {
			if errors.Is(err, domain.ErrOperatorNotFound) {
				respondNotFound(c, "Mint operator not found", fmt.Sprintf("token %d", tokenID))
				return
			}
			respondServiceError(c, err, "Failed to resolve mint operator", zap.Uint64("tokenID", tokenID))
			return
		}
		operator = resolved
	}

	err := h.indexer.IndexByID(ctx, tokenID, operator)
	if err == nil {
		c.JSON(http.StatusCreated, IndexTokenResponse{TokenID: tokenID, Operator: operator})
		return
	}

	ierr, ok := domain.AsIndexError(err)
	if !ok {
		respondInternalError(c, err, "Failed to index token", zap.Uint64("tokenID", tokenID))
		return
	}

	switch {
	case ierr.Duplicate():
		respondConflict(c, "Token already indexed", ierr.Error())
	case ierr.Kind == domain.ErrKindInFlight:
		respondConflict(c, "Token is being indexed", ierr.Error())
	case ierr.Kind == domain.ErrKindMetadataUnavailable,
		ierr.Kind == domain.ErrKindNoDeviceProperty,
		ierr.Kind == domain.ErrKindDeviceCreationFailed:
		logger.WarnCtx(ctx, "Manual indexing rejected", zap.Uint64("tokenID", tokenID), zap.Error(err))
		respondUnprocessable(c, "Token cannot be indexed", ierr.Error())
	default:
		respondInternalError(c, err, "Failed to index token", zap.Uint64("tokenID", tokenID))
	}
}

// TriggerBurn runs burn handling for a token
func (h *handler) TriggerBurn(c *gin.Context) {
	tokenID, ok := parseTokenID(c)
	if !ok {
		return
	}

	result, err := h.burn.HandleBurn(c.Request.Context(), tokenID)
	if err != nil {
		respondServiceError(c, err, "Failed to handle burn", zap.Uint64("tokenID", tokenID))
		return
	}

	c.JSON(http.StatusOK, result)
}

// HealthCheck returns the health status of the API
func (h *handler) HealthCheck(c *gin.Context) {
	if err := h.store.Ping(c.Request.Context()); err != nil {
		logger.WarnCtx(c.Request.Context(), "Health check failed", zap.Error(err))
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// parseTokenID reads the :id path parameter, responding with 400 when it is not a positive integer
func parseTokenID(c *gin.Context) (uint64, bool) {
	raw := c.Param("id")
	tokenID, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || tokenID == 0 {
		respondBadRequest(c, "Invalid token id", raw)
		return 0, false
	}
	return tokenID, true
}
