package domain

import (
	"math/big"
	"time"
)

// Chain represents the blockchain network identifier using CAIP-2 format
type Chain string

const (
	ChainEthereumMainnet Chain = "eip155:1"
	ChainEthereumSepolia Chain = "eip155:11155111"
	ChainPolygonMainnet  Chain = "eip155:137"
	ChainPolygonAmoy     Chain = "eip155:80002"
)

// IsValidChain checks if a chain is valid
func IsValidChain(chain Chain) bool {
	return chain == ChainEthereumMainnet ||
		chain == ChainEthereumSepolia ||
		chain == ChainPolygonMainnet ||
		chain == ChainPolygonAmoy
}

// EventType represents the type of a transfer event
type EventType string

const (
	EventTypeTransfer EventType = "transfer"
	EventTypeMint     EventType = "mint"
	EventTypeBurn     EventType = "burn"
)

// TransferEvent is a decoded ERC1155 TransferSingle log
type TransferEvent struct {
	Operator    string `json:"operator"`
	From        string `json:"from"`
	To          string `json:"to"`
	TokenID     uint64 `json:"token_id"`
	Value       string `json:"value"`
	TxHash      string `json:"tx_hash"`
	LogIndex    uint   `json:"log_index"`
	BlockNumber uint64 `json:"block_number"`
}

// Type classifies the transfer by its sender and receiver.
// A transfer from the zero address is a mint; one to the zero address is a burn.
func (e *TransferEvent) Type() EventType {
	switch {
	case e.From == ETHEREUM_ZERO_ADDRESS:
		return EventTypeMint
	case e.To == ETHEREUM_ZERO_ADDRESS:
		return EventTypeBurn
	default:
		return EventTypeTransfer
	}
}

// ListingEvent is a decoded market ListingCreated log
type ListingEvent struct {
	TokenID        uint64   `json:"token_id"`
	ListingAddress string   `json:"listing_address"`
	Amount         *big.Int `json:"amount"`
	Price          *big.Int `json:"price"`
	Lister         string   `json:"lister"`
	TxHash         string   `json:"tx_hash"`
	LogIndex       uint     `json:"log_index"`
	BlockNumber    uint64   `json:"block_number"`
}

// NotificationType is the kind of change published to subscribers of the mirror
type NotificationType string

const (
	NotificationMIDIIndexed    NotificationType = "midi.indexed"
	NotificationMIDIBurned     NotificationType = "midi.burned"
	NotificationListingCreated NotificationType = "listing.created"
)

// Notification describes a change applied to the mirror
type Notification struct {
	ID             string           `json:"id"`
	Type           NotificationType `json:"type"`
	TokenID        uint64           `json:"token_id"`
	Operator       string           `json:"operator,omitempty"`
	ListingAddress string           `json:"listing_address,omitempty"`
	Price          string           `json:"price,omitempty"`
	TxHash         string           `json:"tx_hash,omitempty"`
	LogIndex       uint             `json:"log_index,omitempty"`
	Timestamp      time.Time        `json:"timestamp"`
}
