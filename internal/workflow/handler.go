package workflow

import (
	"context"

	"pagemark/internal/queue"
)

// Handler describes the contract the manager needs from each lane's stage.
// Process returns nil for terminal success; any error marks the job failed.
type Handler interface {
	Kind() queue.Kind
	Process(ctx context.Context, job *queue.Job) error
}

// DrainHandler completes jobs of one kind without doing any work. It keeps a
// lane open when the consuming feature is disabled so producers do not pile
// up pending jobs.
type DrainHandler struct {
	kind queue.Kind
}

// NewDrainHandler constructs a drain lane for the given kind.
func NewDrainHandler(kind queue.Kind) *DrainHandler {
	return &DrainHandler{kind: kind}
}

func (h *DrainHandler) Kind() queue.Kind {
	return h.kind
}

func (h *DrainHandler) Process(ctx context.Context, job *queue.Job) error {
	return nil
}
