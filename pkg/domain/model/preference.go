package model

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/vigil-lab/argus/pkg/domain/types"
)

// NegativePreferencePrefix marks a preference as a hard constraint.
// A preference starting with this prefix means "never do X" regardless of
// confidence, not a low-confidence preference for X.
const NegativePreferencePrefix = "avoid:"

// PreferenceID is a UUID-based identifier for LearnedPreference
type PreferenceID string

// NewPreferenceID generates a new UUID v4 PreferenceID
func NewPreferenceID() PreferenceID {
	return PreferenceID(uuid.New().String())
}

// LearnedPreference is a confidence-weighted statement about how the owner
// wants things done, inferred from repeated feedback. Confidence is written
// only by the preference learner's aggregation rule, never externally.
type LearnedPreference struct {
	ID         PreferenceID
	Category   types.PreferenceCategory
	Preference string
	Confidence float64 // In [0,1], bounded-exponential updates only
	Examples   []string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// IsNegative reports whether the preference is an "avoid:" constraint
func (p *LearnedPreference) IsNegative() bool {
	return strings.HasPrefix(p.Preference, NegativePreferencePrefix)
}
