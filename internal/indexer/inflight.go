package indexer

import (
	"github.com/puzpuzpuz/xsync/v4"
)

// inFlight tracks the token ids with an indexing attempt in progress
type inFlight struct {
	ids *xsync.Map[uint64, struct{}]
}

func newInFlight() *inFlight {
	return &inFlight{ids: xsync.NewMap[uint64, struct{}]()}
}

// acquire marks id as in progress. It returns false when another attempt holds it.
func (f *inFlight) acquire(id uint64) bool {
	_, loaded := f.ids.LoadOrStore(id, struct{}{})
	return !loaded
}

func (f *inFlight) release(id uint64) {
	f.ids.Delete(id)
}
