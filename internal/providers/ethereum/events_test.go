package ethereum

import (
	"errors"
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sonobay/sonobay-indexer/internal/domain"
)

var (
	testOperator = common.HexToAddress("0x1111111111111111111111111111111111111111")
	testReceiver = common.HexToAddress("0x2222222222222222222222222222222222222222")
	testListing  = common.HexToAddress("0x3333333333333333333333333333333333333333")
)

func addressTopic(addr common.Address) common.Hash {
	return common.BytesToHash(addr.Bytes())
}

func transferData(id, value *big.Int) []byte {
	return append(common.LeftPadBytes(id.Bytes(), 32), common.LeftPadBytes(value.Bytes(), 32)...)
}

func TestParseTransferSingle(t *testing.T) {
	txHash := common.HexToHash("0xabc")

	tests := []struct {
		name    string
		log     types.Log
		want    *domain.TransferEvent
		wantErr bool
	}{
		{
			name: "mint",
			log: types.Log{
				Topics: []common.Hash{
					transferSingleEventSignature,
					addressTopic(testOperator),
					{},
					addressTopic(testReceiver),
				},
				Data:        transferData(big.NewInt(7), big.NewInt(100)),
				TxHash:      txHash,
				Index:       3,
				BlockNumber: 42,
			},
			want: &domain.TransferEvent{
				Operator:    testOperator.Hex(),
				From:        domain.ETHEREUM_ZERO_ADDRESS,
				To:          testReceiver.Hex(),
				TokenID:     7,
				Value:       "100",
				TxHash:      txHash.Hex(),
				LogIndex:    3,
				BlockNumber: 42,
			},
		},
		{
			name: "wrong signature",
			log: types.Log{
				Topics: []common.Hash{listingCreatedEventSignature, {}, {}, {}},
				Data:   transferData(big.NewInt(1), big.NewInt(1)),
			},
			wantErr: true,
		},
		{
			name: "missing topics",
			log: types.Log{
				Topics: []common.Hash{transferSingleEventSignature},
				Data:   transferData(big.NewInt(1), big.NewInt(1)),
			},
			wantErr: true,
		},
		{
			name: "short data",
			log: types.Log{
				Topics: []common.Hash{transferSingleEventSignature, {}, {}, {}},
				Data:   make([]byte, 32),
			},
			wantErr: true,
		},
		{
			name: "token id overflows uint64",
			log: types.Log{
				Topics: []common.Hash{transferSingleEventSignature, {}, {}, {}},
				Data:   transferData(new(big.Int).Lsh(big.NewInt(1), 70), big.NewInt(1)),
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseTransferSingle(tt.log)
			if tt.wantErr {
				assert.ErrorIs(t, err, domain.ErrInvalidEvent)
				assert.Nil(t, got)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, domain.EventTypeMint, got.Type())
		})
	}
}

func listingLog(t *testing.T, tokenID, amount, price *big.Int) types.Log {
	t.Helper()
	data, err := marketABI.Events["ListingCreated"].Inputs.NonIndexed().Pack(amount, price)
	require.NoError(t, err)

	return types.Log{
		Topics: []common.Hash{
			listingCreatedEventSignature,
			common.BigToHash(tokenID),
			addressTopic(testListing),
			addressTopic(testOperator),
		},
		Data:        data,
		TxHash:      common.HexToHash("0xdef"),
		Index:       1,
		BlockNumber: 99,
	}
}

func TestParseListingCreated(t *testing.T) {
	price, ok := new(big.Int).SetString("1500000000000000000", 10)
	require.True(t, ok)

	got, err := ParseListingCreated(listingLog(t, big.NewInt(12), big.NewInt(5), price))
	require.NoError(t, err)

	assert.Equal(t, uint64(12), got.TokenID)
	assert.Equal(t, testListing.Hex(), got.ListingAddress)
	assert.Equal(t, testOperator.Hex(), got.Lister)
	assert.Equal(t, "5", got.Amount.String())
	assert.Equal(t, price.String(), got.Price.String())
	assert.Equal(t, uint(1), got.LogIndex)
	assert.Equal(t, uint64(99), got.BlockNumber)
}

// The market contract emits
// ListingCreated(uint256 indexed tokenId, address indexed listingAddress, uint256 amount, uint256 price, address indexed lister)
func TestListingCreatedLayout(t *testing.T) {
	event := marketABI.Events["ListingCreated"]
	assert.Equal(t,
		crypto.Keccak256Hash([]byte("ListingCreated(uint256,address,uint256,uint256,address)")),
		event.ID)

	var indexed []string
	for _, input := range event.Inputs {
		if input.Indexed {
			indexed = append(indexed, input.Name)
		}
	}
	assert.Equal(t, []string{"tokenId", "listingAddress", "lister"}, indexed)

	vLog := types.Log{
		Topics: []common.Hash{
			event.ID,
			common.BigToHash(big.NewInt(3)),
			addressTopic(testListing),
			addressTopic(testReceiver),
		},
		Data: transferData(big.NewInt(2), big.NewInt(700)),
	}
	got, err := ParseListingCreated(vLog)
	require.NoError(t, err)
	assert.Equal(t, uint64(3), got.TokenID)
	assert.Equal(t, testListing.Hex(), got.ListingAddress)
	assert.Equal(t, testReceiver.Hex(), got.Lister)
	assert.Equal(t, "2", got.Amount.String())
	assert.Equal(t, "700", got.Price.String())
}

func TestParseListingCreated_Invalid(t *testing.T) {
	t.Run("wrong signature", func(t *testing.T) {
		vLog := listingLog(t, big.NewInt(1), big.NewInt(1), big.NewInt(1))
		vLog.Topics[0] = transferSingleEventSignature
		_, err := ParseListingCreated(vLog)
		assert.ErrorIs(t, err, domain.ErrInvalidEvent)
	})

	t.Run("missing indexed topic", func(t *testing.T) {
		vLog := listingLog(t, big.NewInt(1), big.NewInt(1), big.NewInt(1))
		vLog.Topics = vLog.Topics[:3]
		_, err := ParseListingCreated(vLog)
		assert.ErrorIs(t, err, domain.ErrInvalidEvent)
	})

	t.Run("truncated data", func(t *testing.T) {
		vLog := listingLog(t, big.NewInt(1), big.NewInt(1), big.NewInt(1))
		vLog.Data = vLog.Data[:32]
		_, err := ParseListingCreated(vLog)
		assert.ErrorIs(t, err, domain.ErrInvalidEvent)
	})

	t.Run("empty topics", func(t *testing.T) {
		_, err := ParseListingCreated(types.Log{})
		assert.ErrorIs(t, err, domain.ErrInvalidEvent)
	})
}

func TestIsTooManyResultsError(t *testing.T) {
	assert.False(t, isTooManyResultsError(nil))
	assert.False(t, isTooManyResultsError(errors.New("connection refused")))
	assert.True(t, isTooManyResultsError(errors.New("query returned more than 10000 results")))
	assert.True(t, isTooManyResultsError(errors.New("Log response size exceeded maximum")))
}
