package queue

import (
	"context"

	"github.com/mrollo/retailgen/internal/models"
)

// Client defines the interface for queue operations
type Client interface {
	// Publish sends a generation run job to the queue
	Publish(ctx context.Context, job *models.RunJob) error

	// Consume receives run jobs from the queue and processes them with the
	// handler, strictly one at a time: a generation run is a single
	// logical thread of control and its identifier bookkeeping is not
	// safe for concurrent mutation.
	Consume(ctx context.Context, handler RunHandler) error

	// Close closes the queue connection
	Close() error

	// Health checks if the queue is healthy
	Health(ctx context.Context) error
}

// RunHandler is a function that processes a generation run job
type RunHandler func(ctx context.Context, job *models.RunJob) error
