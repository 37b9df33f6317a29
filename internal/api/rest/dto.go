package rest

import (
	"time"

	"github.com/sonobay/sonobay-indexer/internal/store/schema"
)

// IndexTokenRequest is the optional body of a manual indexing request.
// When the operator is empty it is resolved from the mint history.
type IndexTokenRequest struct {
	Operator string `json:"operator"`
}

// IndexTokenResponse is returned once a token was indexed
type IndexTokenResponse struct {
	TokenID  uint64 `json:"token_id"`
	Operator string `json:"operator"`
}

// QueueEntryResponse is a retry queue entry
type QueueEntryResponse struct {
	TokenID   int64     `json:"token_id"`
	Attempts  int       `json:"attempts"`
	Error     string    `json:"error"`
	Operator  string    `json:"operator"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// QueueResponse lists retry queue entries
type QueueResponse struct {
	Dead    bool                 `json:"dead"`
	Entries []QueueEntryResponse `json:"entries"`
}

func mapQueueEntries(entries []schema.Queue) []QueueEntryResponse {
	resp := make([]QueueEntryResponse, 0, len(entries))
	for _, e := range entries {
		resp = append(resp, QueueEntryResponse{
			TokenID:   e.ID,
			Attempts:  e.Attempts,
			Error:     e.Error,
			Operator:  e.Operator,
			CreatedAt: e.CreatedAt,
			UpdatedAt: e.UpdatedAt,
		})
	}
	return resp
}
