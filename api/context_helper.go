package api

import (
	"context"
	"time"
)

// QueryTimeout bounds every database round trip
const QueryTimeout = 10 * time.Second

// WithQueryTimeout derives a context that expires after QueryTimeout. A parent that
// already expires sooner keeps its own deadline.
func WithQueryTimeout(parent context.Context) (context.Context, context.CancelFunc) {
	if parent == nil {
		parent = context.Background()
	}
	return context.WithTimeout(parent, QueryTimeout)
}
