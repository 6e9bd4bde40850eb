package types_test

import (
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/vigil-lab/argus/pkg/domain/types"
)

func TestActionStatus_IsValid(t *testing.T) {
	tests := []struct {
		name   string
		status types.ActionStatus
		want   bool
	}{
		{
			name:   "valid pending",
			status: types.ActionStatusPending,
			want:   true,
		},
		{
			name:   "valid approved",
			status: types.ActionStatusApproved,
			want:   true,
		},
		{
			name:   "valid rejected",
			status: types.ActionStatusRejected,
			want:   true,
		},
		{
			name:   "valid executed",
			status: types.ActionStatusExecuted,
			want:   true,
		},
		{
			name:   "invalid status",
			status: types.ActionStatus("invalid"),
			want:   false,
		},
		{
			name:   "empty status",
			status: types.ActionStatus(""),
			want:   false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gt.Value(t, tt.status.IsValid()).Equal(tt.want)
		})
	}
}

func TestActionStatus_CanTransitionTo(t *testing.T) {
	tests := []struct {
		name string
		from types.ActionStatus
		to   types.ActionStatus
		want bool
	}{
		{name: "pending to approved", from: types.ActionStatusPending, to: types.ActionStatusApproved, want: true},
		{name: "pending to rejected", from: types.ActionStatusPending, to: types.ActionStatusRejected, want: true},
		{name: "pending to executed skips approval", from: types.ActionStatusPending, to: types.ActionStatusExecuted, want: false},
		{name: "approved to executed", from: types.ActionStatusApproved, to: types.ActionStatusExecuted, want: true},
		{name: "approved to rejected", from: types.ActionStatusApproved, to: types.ActionStatusRejected, want: false},
		{name: "approved to pending", from: types.ActionStatusApproved, to: types.ActionStatusPending, want: false},
		{name: "rejected is terminal", from: types.ActionStatusRejected, to: types.ActionStatusApproved, want: false},
		{name: "executed is terminal", from: types.ActionStatusExecuted, to: types.ActionStatusApproved, want: false},
		{name: "executed cannot re-execute", from: types.ActionStatusExecuted, to: types.ActionStatusExecuted, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gt.Value(t, tt.from.CanTransitionTo(tt.to)).Equal(tt.want)
		})
	}
}

func TestActionStatus_IsTerminal(t *testing.T) {
	gt.Value(t, types.ActionStatusPending.IsTerminal()).Equal(false)
	gt.Value(t, types.ActionStatusApproved.IsTerminal()).Equal(false)
	gt.Value(t, types.ActionStatusRejected.IsTerminal()).Equal(true)
	gt.Value(t, types.ActionStatusExecuted.IsTerminal()).Equal(true)
}

func TestParseActionStatus(t *testing.T) {
	status, err := types.ParseActionStatus("pending")
	gt.NoError(t, err)
	gt.Value(t, status).Equal(types.ActionStatusPending)

	_, err = types.ParseActionStatus("unknown")
	gt.Value(t, err).NotNil()
}

func TestPriority_Weight(t *testing.T) {
	gt.Number(t, types.PriorityLow.Weight()).Less(types.PriorityMedium.Weight())
	gt.Number(t, types.PriorityMedium.Weight()).Less(types.PriorityHigh.Weight())
	gt.Number(t, types.PriorityHigh.Weight()).Less(types.PriorityUrgent.Weight())
	gt.Number(t, types.Priority("bogus").Weight()).Equal(0)
}

func TestParsePreferenceCategory(t *testing.T) {
	for _, c := range types.AllPreferenceCategories() {
		parsed, err := types.ParsePreferenceCategory(c.String())
		gt.NoError(t, err)
		gt.Value(t, parsed).Equal(c)
	}

	_, err := types.ParsePreferenceCategory("mood")
	gt.Value(t, err).NotNil()
}
