package interfaces

import (
	"context"

	"github.com/vigil-lab/argus/pkg/domain/model"
	"github.com/vigil-lab/argus/pkg/domain/types"
)

// HandlerResult is what an execution handler reports back. It becomes the
// action's ExecutionResult verbatim.
type HandlerResult struct {
	Success    bool
	Message    string
	ExternalID string
}

// ActionHandler performs the real-world side effect of one action type.
// Handlers are injected capabilities owned by the deployment, not by the
// engine; the dispatcher invokes a handler at most once per execute call.
type ActionHandler interface {
	// Handle performs the side effect described by details. Implementations
	// must honor ctx cancellation; the dispatcher applies a timeout.
	Handle(ctx context.Context, scope string, details model.ActionDetails) (*HandlerResult, error)
}

// HandlerRegistry maps action types to their execution capability
type HandlerRegistry interface {
	// Lookup returns the handler for t, or false if none is registered
	Lookup(t types.ActionType) (ActionHandler, bool)
}
