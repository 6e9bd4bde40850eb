package usecase

import (
	"context"

	"github.com/m-mizutani/goerr/v2"
	"github.com/vigil-lab/argus/pkg/domain/model"
	"github.com/vigil-lab/argus/pkg/domain/types"
	"github.com/vigil-lab/argus/pkg/utils/logging"
)

// FeedbackUseCase connects the audit trail to the preference learner: when
// the owner disposes of a decision, the feedback is attached once and then
// translated into preference reinforcements.
type FeedbackUseCase struct {
	decisions   *DecisionUseCase
	preferences *PreferenceUseCase
}

func NewFeedbackUseCase(decisions *DecisionUseCase, preferences *PreferenceUseCase) *FeedbackUseCase {
	return &FeedbackUseCase{
		decisions:   decisions,
		preferences: preferences,
	}
}

// PreferenceHint names a preference statement the feedback is evidence
// about. The caller supplies hints because the engine cannot infer which
// preference a raw approval or rejection speaks to.
type PreferenceHint struct {
	Category   types.PreferenceCategory
	Preference string
	Example    string
}

// SubmitInput is one owner disposition of a decision
type SubmitInput struct {
	DecisionID model.DecisionID
	Feedback   types.OwnerFeedback
	Hints      []PreferenceHint
}

// Submit attaches owner feedback to a decision and reinforces the hinted
// preferences. Approval affirms the hints; rejection contradicts them; a
// modification affirms, since the hints describe what the owner changed the
// work to. Reinforcement failures are logged but do not undo the feedback,
// which by then is immutably recorded.
func (uc *FeedbackUseCase) Submit(ctx context.Context, scope string, input SubmitInput) (*model.Decision, error) {
	decision, err := uc.decisions.AttachFeedback(ctx, scope, input.DecisionID, input.Feedback)
	if err != nil {
		return nil, err
	}

	direction := types.ReinforceAffirm
	if input.Feedback == types.OwnerFeedbackRejected {
		direction = types.ReinforceContradict
	}

	for _, hint := range input.Hints {
		if _, err := uc.preferences.Reinforce(ctx, scope, ReinforceInput{
			Category:   hint.Category,
			Preference: hint.Preference,
			Direction:  direction,
			Example:    hint.Example,
		}); err != nil {
			logging.From(ctx).Warn("failed to reinforce preference from feedback",
				"decision_id", input.DecisionID,
				"category", hint.Category,
				"error", err)
		}
	}

	if _, err := uc.decisions.Record(ctx, scope, RecordDecisionInput{
		Type:     types.DecisionTypeFeedback,
		ActionID: decision.ActionID,
		Context: map[string]any{
			"decision_id": string(decision.ID),
			"feedback":    input.Feedback.String(),
		},
		Decision:  "owner feedback: " + input.Feedback.String(),
		Reasoning: "owner disposition of decision " + string(decision.ID),
	}); err != nil {
		return nil, goerr.Wrap(err, "failed to record feedback event",
			goerr.V(DecisionIDKey, input.DecisionID))
	}

	return decision, nil
}
