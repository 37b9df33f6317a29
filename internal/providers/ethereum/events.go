package ethereum

import (
	"fmt"
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"

	"github.com/sonobay/sonobay-indexer/internal/domain"
)

const midiABIJSON = `[
	{"inputs":[],"name":"currentTokenId","outputs":[{"name":"","type":"uint256"}],"stateMutability":"view","type":"function"},
	{"inputs":[{"name":"id","type":"uint256"}],"name":"uri","outputs":[{"name":"","type":"string"}],"stateMutability":"view","type":"function"},
	{"inputs":[{"name":"id","type":"uint256"}],"name":"totalSupply","outputs":[{"name":"","type":"uint256"}],"stateMutability":"view","type":"function"},
	{"anonymous":false,"inputs":[{"indexed":true,"name":"operator","type":"address"},{"indexed":true,"name":"from","type":"address"},{"indexed":true,"name":"to","type":"address"},{"indexed":false,"name":"id","type":"uint256"},{"indexed":false,"name":"value","type":"uint256"}],"name":"TransferSingle","type":"event"}
]`

const marketABIJSON = `[
	{"anonymous":false,"inputs":[{"indexed":true,"name":"tokenId","type":"uint256"},{"indexed":true,"name":"listingAddress","type":"address"},{"indexed":false,"name":"amount","type":"uint256"},{"indexed":false,"name":"price","type":"uint256"},{"indexed":true,"name":"lister","type":"address"}],"name":"ListingCreated","type":"event"}
]`

var (
	midiABI   = mustParseABI(midiABIJSON)
	marketABI = mustParseABI(marketABIJSON)

	// ERC1155 TransferSingle(address indexed operator, address indexed from, address indexed to, uint256 id, uint256 value)
	transferSingleEventSignature = crypto.Keccak256Hash([]byte("TransferSingle(address,address,address,uint256,uint256)"))

	// ListingCreated(uint256 indexed tokenId, address indexed listingAddress, uint256 amount, uint256 price, address indexed lister)
	listingCreatedEventSignature = marketABI.Events["ListingCreated"].ID
)

var maxUint64 = new(big.Int).SetUint64(^uint64(0))

func mustParseABI(raw string) abi.ABI {
	parsed, err := abi.JSON(strings.NewReader(raw))
	if err != nil {
		panic(fmt.Sprintf("failed to parse ABI: %v", err))
	}
	return parsed
}

// tokenIDFromBig narrows an on-chain uint256 token id to uint64
func tokenIDFromBig(id *big.Int) (uint64, error) {
	if id == nil || id.Sign() < 0 || id.Cmp(maxUint64) > 0 {
		return 0, fmt.Errorf("%w: token id %v out of range", domain.ErrInvalidEvent, id)
	}
	return id.Uint64(), nil
}

// ParseTransferSingle decodes an ERC1155 TransferSingle log
func ParseTransferSingle(vLog types.Log) (*domain.TransferEvent, error) {
	if len(vLog.Topics) != 4 || vLog.Topics[0] != transferSingleEventSignature {
		return nil, fmt.Errorf("%w: not a TransferSingle log (tx %s)", domain.ErrInvalidEvent, vLog.TxHash.Hex())
	}
	if len(vLog.Data) < 64 {
		return nil, fmt.Errorf("%w: insufficient TransferSingle data (tx %s)", domain.ErrInvalidEvent, vLog.TxHash.Hex())
	}

	// Data: first 32 bytes = token ID, next 32 bytes = value
	tokenID, err := tokenIDFromBig(new(big.Int).SetBytes(vLog.Data[0:32]))
	if err != nil {
		return nil, err
	}
	value := new(big.Int).SetBytes(vLog.Data[32:64])

	return &domain.TransferEvent{
		Operator:    common.BytesToAddress(vLog.Topics[1].Bytes()).Hex(),
		From:        common.BytesToAddress(vLog.Topics[2].Bytes()).Hex(),
		To:          common.BytesToAddress(vLog.Topics[3].Bytes()).Hex(),
		TokenID:     tokenID,
		Value:       value.String(),
		TxHash:      vLog.TxHash.Hex(),
		LogIndex:    vLog.Index,
		BlockNumber: vLog.BlockNumber,
	}, nil
}

// ParseListingCreated decodes a market ListingCreated log.
// Indexed and non-indexed fields are split by the ABI, not by position.
func ParseListingCreated(vLog types.Log) (*domain.ListingEvent, error) {
	event := marketABI.Events["ListingCreated"]
	if len(vLog.Topics) == 0 || vLog.Topics[0] != event.ID {
		return nil, fmt.Errorf("%w: not a ListingCreated log (tx %s)", domain.ErrInvalidEvent, vLog.TxHash.Hex())
	}

	values := make(map[string]interface{})
	if err := event.Inputs.NonIndexed().UnpackIntoMap(values, vLog.Data); err != nil {
		return nil, fmt.Errorf("%w: failed to unpack ListingCreated data: %v", domain.ErrInvalidEvent, err)
	}

	var indexed abi.Arguments
	for _, input := range event.Inputs {
		if input.Indexed {
			indexed = append(indexed, input)
		}
	}
	if err := abi.ParseTopicsIntoMap(values, indexed, vLog.Topics[1:]); err != nil {
		return nil, fmt.Errorf("%w: failed to parse ListingCreated topics: %v", domain.ErrInvalidEvent, err)
	}

	rawTokenID, ok := values["tokenId"].(*big.Int)
	if !ok {
		return nil, fmt.Errorf("%w: ListingCreated tokenId missing", domain.ErrInvalidEvent)
	}
	tokenID, err := tokenIDFromBig(rawTokenID)
	if err != nil {
		return nil, err
	}
	listingAddress, ok := values["listingAddress"].(common.Address)
	if !ok {
		return nil, fmt.Errorf("%w: ListingCreated listingAddress missing", domain.ErrInvalidEvent)
	}
	lister, ok := values["lister"].(common.Address)
	if !ok {
		return nil, fmt.Errorf("%w: ListingCreated lister missing", domain.ErrInvalidEvent)
	}
	amount, ok := values["amount"].(*big.Int)
	if !ok {
		return nil, fmt.Errorf("%w: ListingCreated amount missing", domain.ErrInvalidEvent)
	}
	price, ok := values["price"].(*big.Int)
	if !ok {
		return nil, fmt.Errorf("%w: ListingCreated price missing", domain.ErrInvalidEvent)
	}

	return &domain.ListingEvent{
		TokenID:        tokenID,
		ListingAddress: listingAddress.Hex(),
		Amount:         amount,
		Price:          price,
		Lister:         lister.Hex(),
		TxHash:         vLog.TxHash.Hex(),
		LogIndex:       vLog.Index,
		BlockNumber:    vLog.BlockNumber,
	}, nil
}
