package interfaces

import "context"

// IEstimateCounter is the shared counter of estimates computed, reported to the lead relay.
type IEstimateCounter interface {
	Increment(ctx context.Context) (int64, error)
	Current(ctx context.Context) (int64, error)
}
