package sweeper

import (
	"context"
)

// Sweeper defines the interface for periodic maintenance jobs
// run by the scheduler
//
//go:generate mockgen -source=sweeper.go -destination=../mocks/sweeper.go -package=mocks -mock_names=Sweeper=MockSweeper
type Sweeper interface {
	// Name returns the sweeper's name for logging and identification
	Name() string

	// RunOnce performs a single sweep and returns when it is done
	RunOnce(ctx context.Context) error
}
