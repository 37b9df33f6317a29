package ethereum

import (
	"context"
	"errors"
	"fmt"
	"math/big"
	"strings"
	"time"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"go.uber.org/zap"

	"github.com/sonobay/sonobay-indexer/internal/adapter"
	"github.com/sonobay/sonobay-indexer/internal/domain"
	"github.com/sonobay/sonobay-indexer/internal/logger"
)

// logScanTimeout bounds a full mint history scan
const logScanTimeout = 5 * time.Minute

// MidiContract is the read side of the MIDI ERC1155 contract
//
//go:generate mockgen -source=client.go -destination=../../mocks/midi_contract.go -package=mocks -mock_names=MidiContract=MockMidiContract
type MidiContract interface {
	// CurrentTokenID returns the highest token id minted so far
	CurrentTokenID(ctx context.Context) (uint64, error)

	// URI returns the metadata uri of a token
	URI(ctx context.Context, tokenID uint64) (string, error)

	// TotalSupply returns the circulating supply of a token
	TotalSupply(ctx context.Context, tokenID uint64) (uint64, error)

	// MintOperators scans mint transfers and returns the operator of the first mint per token id
	MintOperators(ctx context.Context) (map[uint64]string, error)

	// FindMintOperator returns the mint operator of a single token.
	// It returns domain.ErrOperatorNotFound when no mint transfer exists.
	FindMintOperator(ctx context.Context, tokenID uint64) (string, error)
}

// ContractConfig holds the contract coordinates
type ContractConfig struct {
	MidiAddress           string
	MintHistoryStartBlock uint64
	MaxBlockRange         uint64
}

type midiContract struct {
	client         adapter.EthClient
	address        common.Address
	mintStartBlock uint64
	maxBlockRange  uint64
}

func NewMidiContract(client adapter.EthClient, cfg ContractConfig) MidiContract {
	maxBlockRange := cfg.MaxBlockRange
	if maxBlockRange == 0 {
		maxBlockRange = 1_000_000
	}
	return &midiContract{
		client:         client,
		address:        common.HexToAddress(cfg.MidiAddress),
		mintStartBlock: cfg.MintHistoryStartBlock,
		maxBlockRange:  maxBlockRange,
	}
}

// call packs a view call, executes it against the latest block and unpacks the single return value
func (c *midiContract) call(ctx context.Context, method string, out interface{}, args ...interface{}) error {
	data, err := midiABI.Pack(method, args...)
	if err != nil {
		return fmt.Errorf("failed to pack data: %w", err)
	}

	result, err := c.client.CallContract(ctx, ethereum.CallMsg{
		To:   &c.address,
		Data: data,
	}, nil)
	if err != nil {
		return fmt.Errorf("failed to call %s: %w", method, err)
	}

	if err := midiABI.UnpackIntoInterface(out, method, result); err != nil {
		return fmt.Errorf("failed to unpack %s result: %w", method, err)
	}
	return nil
}

func (c *midiContract) CurrentTokenID(ctx context.Context) (uint64, error) {
	var current *big.Int
	if err := c.call(ctx, "currentTokenId", &current); err != nil {
		return 0, err
	}
	if !current.IsUint64() {
		return 0, fmt.Errorf("current token id %s out of range", current.String())
	}
	return current.Uint64(), nil
}

func (c *midiContract) URI(ctx context.Context, tokenID uint64) (string, error) {
	var uri string
	if err := c.call(ctx, "uri", &uri, new(big.Int).SetUint64(tokenID)); err != nil {
		return "", err
	}
	return uri, nil
}

func (c *midiContract) TotalSupply(ctx context.Context, tokenID uint64) (uint64, error) {
	var supply *big.Int
	if err := c.call(ctx, "totalSupply", &supply, new(big.Int).SetUint64(tokenID)); err != nil {
		return 0, err
	}
	if !supply.IsUint64() {
		return 0, fmt.Errorf("total supply %s out of range", supply.String())
	}
	return supply.Uint64(), nil
}

func (c *midiContract) MintOperators(ctx context.Context) (map[uint64]string, error) {
	query := ethereum.FilterQuery{
		FromBlock: new(big.Int).SetUint64(c.mintStartBlock),
		Addresses: []common.Address{c.address},
		Topics: [][]common.Hash{
			{transferSingleEventSignature},
			nil,             // any operator
			{common.Hash{}}, // from the zero address
		},
	}

	logs, err := c.filterLogsWithPagination(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to filter mint logs: %w", err)
	}

	operators := make(map[uint64]string)
	for _, vLog := range logs {
		event, err := ParseTransferSingle(vLog)
		if err != nil {
			logger.WarnCtx(ctx, "Skipping undecodable mint log",
				zap.Error(err),
				zap.String("txHash", vLog.TxHash.Hex()))
			continue
		}
		if _, seen := operators[event.TokenID]; seen {
			continue
		}
		operators[event.TokenID] = event.Operator
	}

	return operators, nil
}

func (c *midiContract) FindMintOperator(ctx context.Context, tokenID uint64) (string, error) {
	operators, err := c.MintOperators(ctx)
	if err != nil {
		return "", err
	}
	operator, ok := operators[tokenID]
	if !ok {
		return "", fmt.Errorf("%w: token %d", domain.ErrOperatorNotFound, tokenID)
	}
	return operator, nil
}

// filterLogsWithPagination splits the query range into windows of maxBlockRange blocks
// to stay under provider result limits
func (c *midiContract) filterLogsWithPagination(ctx context.Context, query ethereum.FilterQuery) ([]types.Log, error) {
	timeoutCtx, cancel := context.WithTimeout(ctx, logScanTimeout)
	defer cancel()

	if query.BlockHash != nil {
		return c.client.FilterLogs(timeoutCtx, query)
	}

	fromBlock := uint64(0)
	if query.FromBlock != nil {
		fromBlock = query.FromBlock.Uint64()
	}

	var toBlock uint64
	if query.ToBlock != nil {
		toBlock = query.ToBlock.Uint64()
	} else {
		latest, err := c.client.BlockNumber(timeoutCtx)
		if err != nil {
			return nil, fmt.Errorf("failed to get latest block: %w", err)
		}
		toBlock = latest
	}

	var allLogs []types.Log
	for currentFrom := fromBlock; currentFrom <= toBlock; {
		currentTo := currentFrom + c.maxBlockRange - 1
		if currentTo > toBlock || currentTo < currentFrom {
			currentTo = toBlock
		}

		rangeQuery := query
		rangeQuery.FromBlock = new(big.Int).SetUint64(currentFrom)
		rangeQuery.ToBlock = new(big.Int).SetUint64(currentTo)

		logs, err := c.getLogsWithRetry(timeoutCtx, rangeQuery, c.maxBlockRange)
		if err != nil {
			return nil, fmt.Errorf("failed to get logs for range %d-%d: %w", currentFrom, currentTo, err)
		}
		allLogs = append(allLogs, logs...)

		if currentTo == toBlock {
			break
		}
		currentFrom = currentTo + 1
	}

	return allLogs, nil
}

// getLogsWithRetry walks query.FromBlock..query.ToBlock in chunks,
// halving the chunk size whenever the provider reports too many results
func (c *midiContract) getLogsWithRetry(ctx context.Context, query ethereum.FilterQuery, stepSize uint64) ([]types.Log, error) {
	currentStepSize := stepSize
	from := query.FromBlock.Uint64()
	to := query.ToBlock.Uint64()

	var allLogs []types.Log
	for currentFrom := from; currentFrom <= to; {
		currentTo := currentFrom + currentStepSize - 1
		if currentTo > to || currentTo < currentFrom {
			currentTo = to
		}

		chunk := query
		chunk.FromBlock = new(big.Int).SetUint64(currentFrom)
		chunk.ToBlock = new(big.Int).SetUint64(currentTo)

		logs, err := c.client.FilterLogs(ctx, chunk)
		if err == nil {
			allLogs = append(allLogs, logs...)
			if currentTo == to {
				break
			}
			currentFrom = currentTo + 1
			continue
		}

		if !isTooManyResultsError(err) {
			return nil, err
		}
		if currentStepSize <= 1 {
			return nil, fmt.Errorf("too many results for a single block %d: %w", currentFrom, err)
		}

		currentStepSize = currentStepSize / 2
		logger.Warn("Too many results, reducing step size",
			zap.Uint64("oldStepSize", currentStepSize*2),
			zap.Uint64("newStepSize", currentStepSize),
			zap.Uint64("fromBlock", currentFrom),
			zap.Uint64("toBlock", currentTo))
	}

	return allLogs, nil
}

// isTooManyResultsError checks if the error is related to too many results
func isTooManyResultsError(err error) bool {
	if err == nil || errors.Is(err, context.Canceled) {
		return false
	}

	errStr := err.Error()
	return strings.Contains(errStr, "query returned more than 10000 results") ||
		strings.Contains(errStr, "query timeout exceeded") ||
		strings.Contains(errStr, "too many results") ||
		strings.Contains(errStr, "exceeded maximum")
}
