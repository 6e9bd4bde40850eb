package usecase_test

import (
	"context"
	"sync"

	"github.com/vigil-lab/argus/pkg/domain/interfaces"
	"github.com/vigil-lab/argus/pkg/domain/model"
	"github.com/vigil-lab/argus/pkg/domain/types"
	"github.com/vigil-lab/argus/pkg/repository/memory"
	"github.com/vigil-lab/argus/pkg/usecase"
)

const testScope = "biz-test"

// handlerFunc adapts a function to interfaces.ActionHandler
type handlerFunc func(ctx context.Context, scope string, details model.ActionDetails) (*interfaces.HandlerResult, error)

func (f handlerFunc) Handle(ctx context.Context, scope string, details model.ActionDetails) (*interfaces.HandlerResult, error) {
	return f(ctx, scope, details)
}

// testRegistry is a map-backed handler registry for tests
type testRegistry struct {
	mu       sync.Mutex
	handlers map[types.ActionType]interfaces.ActionHandler
}

func newTestRegistry() *testRegistry {
	return &testRegistry{handlers: map[types.ActionType]interfaces.ActionHandler{}}
}

func (r *testRegistry) register(t types.ActionType, h interfaces.ActionHandler) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.handlers[t] = h
}

func (r *testRegistry) Lookup(t types.ActionType) (interfaces.ActionHandler, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	h, ok := r.handlers[t]
	return h, ok
}

// notifyRecorder captures pending-action notifications
type notifyRecorder struct {
	mu      sync.Mutex
	actions []*model.Action
	err     error
}

func (n *notifyRecorder) NotifyPendingAction(ctx context.Context, scope string, action *model.Action) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.actions = append(n.actions, action)
	return n.err
}

func (n *notifyRecorder) count() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return len(n.actions)
}

// flakyRepo delegates to a real memory backend but lets tests inject
// failures into selected repository calls
type flakyRepo struct {
	*memory.Memory
	pref     *flakyPreferenceRepo
	decision *flakyDecisionRepo
}

func newFlakyRepo() *flakyRepo {
	base := memory.New()
	return &flakyRepo{
		Memory:   base,
		pref:     &flakyPreferenceRepo{PreferenceRepository: base.Preference()},
		decision: &flakyDecisionRepo{DecisionRepository: base.Decision()},
	}
}

func (r *flakyRepo) Preference() interfaces.PreferenceRepository { return r.pref }
func (r *flakyRepo) Decision() interfaces.DecisionRepository     { return r.decision }

type flakyPreferenceRepo struct {
	interfaces.PreferenceRepository
	getByKeyErr error
}

func (r *flakyPreferenceRepo) GetByKey(ctx context.Context, scope string, category types.PreferenceCategory, preference string) (*model.LearnedPreference, error) {
	if r.getByKeyErr != nil {
		return nil, r.getByKeyErr
	}
	return r.PreferenceRepository.GetByKey(ctx, scope, category, preference)
}

type flakyDecisionRepo struct {
	interfaces.DecisionRepository
	attachErr error
}

func (r *flakyDecisionRepo) AttachFeedback(ctx context.Context, scope string, id model.DecisionID, feedback types.OwnerFeedback) (*model.Decision, error) {
	if r.attachErr != nil {
		return nil, r.attachErr
	}
	return r.DecisionRepository.AttachFeedback(ctx, scope, id, feedback)
}

func newTestUseCases(opts ...usecase.Option) (*usecase.UseCases, *testRegistry) {
	registry := newTestRegistry()
	return usecase.New(memory.New(), registry, opts...), registry
}

func paymentProposal() usecase.ProposeInput {
	return usecase.ProposeInput{
		Type:     types.ActionTypePaymentReminder,
		Priority: types.PriorityHigh,
		Details: model.ActionDetails{
			PaymentReminder: &model.PaymentReminderDetails{
				RecipientID: "cust-001",
				Amount:      15000,
				Currency:    "USD",
				DaysOverdue: 14,
				Message:     "Your invoice is 14 days overdue",
			},
		},
		Reasoning: "invoice overdue beyond the reminder threshold",
	}
}

func alertProposal() usecase.ProposeInput {
	return usecase.ProposeInput{
		Type:     types.ActionTypeAlert,
		Priority: types.PriorityUrgent,
		Details: model.ActionDetails{
			Alert: &model.AlertDetails{
				Severity: "high",
				Title:    "Churn risk detected",
				Body:     "Customer cust-002 has not booked in 60 days",
			},
		},
		Reasoning: "booking gap exceeds churn threshold",
	}
}
