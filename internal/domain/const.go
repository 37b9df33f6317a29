package domain

const (
	// Gateway constants
	DEFAULT_IPFS_GATEWAY    = "https://nftstorage.link"
	DEFAULT_ARWEAVE_GATEWAY = "https://arweave.net"

	// Blockchain constants
	ETHEREUM_ZERO_ADDRESS = "0x0000000000000000000000000000000000000000"

	// DEFAULT_MINT_HISTORY_START_BLOCK is the deployment block of the midi contract
	DEFAULT_MINT_HISTORY_START_BLOCK uint64 = 7853362

	// Indexing constants
	MAX_DEVICES_PER_TOKEN         = 5
	DEFAULT_QUEUE_ATTEMPT_CEILING = 10
)
