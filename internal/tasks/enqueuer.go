package tasks

import (
	"context"

	"github.com/hibiken/asynq"
)

// AsynqEnqueuer hands tasks to the Redis-backed queue. The API process uses
// it to push work to the worker process.
type AsynqEnqueuer struct {
	client *asynq.Client
}

func NewAsynqEnqueuer(client *asynq.Client) *AsynqEnqueuer {
	return &AsynqEnqueuer{client: client}
}

func (e *AsynqEnqueuer) Enqueue(ctx context.Context, task *asynq.Task) error {
	_, err := e.client.EnqueueContext(ctx, task)
	return err
}
