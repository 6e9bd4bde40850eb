package usecase

import (
	"context"
	"time"

	"github.com/vigil-lab/argus/pkg/domain/interfaces"
	"github.com/vigil-lab/argus/pkg/domain/model"
)

// Notifier delivers best-effort notifications about governance events.
// A nil Notifier disables notifications entirely.
type Notifier interface {
	NotifyPendingAction(ctx context.Context, scope string, action *model.Action) error
}

// LearnerParams tunes the preference learner's aggregation rule
type LearnerParams struct {
	LearningRate      float64 // Fraction of the remaining distance moved per observation
	InitialConfidence float64 // Confidence assigned when a preference is first seen
	ExampleCap        int     // Max retained supporting examples, oldest evicted
}

// DefaultLearnerParams are used unless overridden via config
func DefaultLearnerParams() LearnerParams {
	return LearnerParams{
		LearningRate:      0.2,
		InitialConfidence: 0.3,
		ExampleCap:        10,
	}
}

type UseCases struct {
	repo interfaces.Repository

	Action     *ActionUseCase
	Bulk       *BulkUseCase
	Exec       *ExecUseCase
	Decision   *DecisionUseCase
	Preference *PreferenceUseCase
	Feedback   *FeedbackUseCase

	notifier      Notifier
	execTimeout   time.Duration
	learnerParams LearnerParams
}

type Option func(*UseCases)

// WithNotifier enables pending-action notifications
func WithNotifier(n Notifier) Option {
	return func(uc *UseCases) {
		uc.notifier = n
	}
}

// WithExecTimeout bounds a single external handler invocation
func WithExecTimeout(d time.Duration) Option {
	return func(uc *UseCases) {
		uc.execTimeout = d
	}
}

// WithLearnerParams overrides the preference learner tuning
func WithLearnerParams(p LearnerParams) Option {
	return func(uc *UseCases) {
		uc.learnerParams = p
	}
}

func New(repo interfaces.Repository, registry interfaces.HandlerRegistry, opts ...Option) *UseCases {
	uc := &UseCases{
		repo:          repo,
		execTimeout:   30 * time.Second,
		learnerParams: DefaultLearnerParams(),
	}

	for _, opt := range opts {
		opt(uc)
	}

	uc.Decision = NewDecisionUseCase(repo)
	uc.Action = NewActionUseCase(repo, uc.Decision, uc.notifier)
	uc.Exec = NewExecUseCase(repo, registry, uc.Action, uc.Decision, uc.execTimeout)
	uc.Bulk = NewBulkUseCase(repo, uc.Action, uc.Exec)
	uc.Preference = NewPreferenceUseCase(repo, uc.learnerParams)
	uc.Feedback = NewFeedbackUseCase(uc.Decision, uc.Preference)

	return uc
}
