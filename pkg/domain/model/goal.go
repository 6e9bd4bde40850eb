package model

import (
	"time"

	"github.com/google/uuid"
)

// GoalStatus is the derived progress assessment of a goal
type GoalStatus string

const (
	GoalStatusOnTrack   GoalStatus = "on_track"
	GoalStatusAtRisk    GoalStatus = "at_risk"
	GoalStatusBehind    GoalStatus = "behind"
	GoalStatusCompleted GoalStatus = "completed"
)

// GoalID is a UUID-based identifier for Goal
type GoalID string

// NewGoalID generates a new UUID v4 GoalID
func NewGoalID() GoalID {
	return GoalID(uuid.New().String())
}

// Goal is a numeric progress target referenced by action proposals.
// Only the derived status lives here; full goal tracking is handled
// elsewhere.
type Goal struct {
	ID           GoalID
	Name         string
	StartValue   float64
	CurrentValue float64
	TargetValue  float64
	StartedAt    time.Time
	Deadline     time.Time
}

// Progress returns the fraction of the distance from start to target that
// has been covered, clamped to [0,1]. A target equal to start counts as
// complete.
func (g *Goal) Progress() float64 {
	span := g.TargetValue - g.StartValue
	if span == 0 {
		return 1
	}
	p := (g.CurrentValue - g.StartValue) / span
	if p < 0 {
		return 0
	}
	if p > 1 {
		return 1
	}
	return p
}

// Status derives the goal status at the given time by comparing progress
// against elapsed time. More than 10 points behind schedule is at_risk,
// more than 25 points behind is behind.
func (g *Goal) Status(now time.Time) GoalStatus {
	if g.Progress() >= 1 {
		return GoalStatusCompleted
	}

	total := g.Deadline.Sub(g.StartedAt)
	if total <= 0 {
		return GoalStatusBehind
	}

	elapsed := now.Sub(g.StartedAt)
	expected := float64(elapsed) / float64(total)
	if expected > 1 {
		expected = 1
	}
	if expected < 0 {
		expected = 0
	}

	gap := expected - g.Progress()
	switch {
	case gap > 0.25:
		return GoalStatusBehind
	case gap > 0.10:
		return GoalStatusAtRisk
	default:
		return GoalStatusOnTrack
	}
}
