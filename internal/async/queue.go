package async

import (
	"context"
	"time"
)

// Job is the smallest useful unit: one discovered bill file. Extend as needed
// later (batch grouping, retry, trace).
type Job struct {
	Path        string
	Force       bool // enqueue even if already seen
	SubmittedAt time.Time
	TraceID     string
}

type Queue interface {
	Enqueue(ctx context.Context, job Job) error
	Shutdown(ctx context.Context)
}
