package types

// DecisionType classifies an audit record. It is independent of ActionType:
// one action produces several decisions over its life.
type DecisionType string

const (
	DecisionTypeProposal  DecisionType = "proposal"
	DecisionTypeEdit      DecisionType = "edit"
	DecisionTypeApproval  DecisionType = "approval"
	DecisionTypeRejection DecisionType = "rejection"
	DecisionTypeExecution DecisionType = "execution"
	DecisionTypeFeedback  DecisionType = "feedback"
)

// AllDecisionTypes returns all valid decision types
func AllDecisionTypes() []DecisionType {
	return []DecisionType{
		DecisionTypeProposal,
		DecisionTypeEdit,
		DecisionTypeApproval,
		DecisionTypeRejection,
		DecisionTypeExecution,
		DecisionTypeFeedback,
	}
}

// IsValid checks if the decision type is valid
func (t DecisionType) IsValid() bool {
	switch t {
	case DecisionTypeProposal,
		DecisionTypeEdit,
		DecisionTypeApproval,
		DecisionTypeRejection,
		DecisionTypeExecution,
		DecisionTypeFeedback:
		return true
	default:
		return false
	}
}

// String returns the string representation of the decision type
func (t DecisionType) String() string {
	return string(t)
}
