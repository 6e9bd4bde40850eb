package memory

import (
	"github.com/vigil-lab/argus/pkg/domain/interfaces"
)

// Repository contract sentinels, shared across backends so callers can
// errors.Is them without importing a specific backend
var (
	ErrNotFound           = interfaces.ErrRecordNotFound
	ErrFeedbackAlreadySet = interfaces.ErrFeedbackAlreadySet
)

// Repository is an alias for Memory to match the pattern
type Repository = Memory

// Memory is an in-process repository for development and tests
type Memory struct {
	action     *actionRepository
	decision   *decisionRepository
	preference *preferenceRepository
}

var _ interfaces.Repository = &Memory{}

func New() *Memory {
	return &Memory{
		action:     newActionRepository(),
		decision:   newDecisionRepository(),
		preference: newPreferenceRepository(),
	}
}

func (m *Memory) Action() interfaces.ActionRepository {
	return m.action
}

func (m *Memory) Decision() interfaces.DecisionRepository {
	return m.decision
}

func (m *Memory) Preference() interfaces.PreferenceRepository {
	return m.preference
}

func (m *Memory) Close() error {
	return nil
}
