package interfaces

import (
	"time"

	"github.com/vigil-lab/argus/pkg/domain/types"
)

// ListActionOption is a functional option for filtering actions in List
type ListActionOption func(*listActionConfig)

type listActionConfig struct {
	status    *types.ActionStatus
	typ       *types.ActionType
	createdGE *time.Time
	createdLT *time.Time
}

// WithActionStatus filters actions by status
func WithActionStatus(status types.ActionStatus) ListActionOption {
	return func(c *listActionConfig) {
		c.status = &status
	}
}

// WithActionType filters actions by type
func WithActionType(t types.ActionType) ListActionOption {
	return func(c *listActionConfig) {
		c.typ = &t
	}
}

// WithCreatedSince filters actions created at or after ts
func WithCreatedSince(ts time.Time) ListActionOption {
	return func(c *listActionConfig) {
		c.createdGE = &ts
	}
}

// WithCreatedBefore filters actions created strictly before ts
func WithCreatedBefore(ts time.Time) ListActionOption {
	return func(c *listActionConfig) {
		c.createdLT = &ts
	}
}

// BuildListActionConfig builds a listActionConfig from options
func BuildListActionConfig(opts ...ListActionOption) *listActionConfig {
	cfg := &listActionConfig{}
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg
}

// Status returns the status filter value, or nil if not set
func (c *listActionConfig) Status() *types.ActionStatus {
	return c.status
}

// Type returns the type filter value, or nil if not set
func (c *listActionConfig) Type() *types.ActionType {
	return c.typ
}

// CreatedSince returns the lower time bound, or nil if not set
func (c *listActionConfig) CreatedSince() *time.Time {
	return c.createdGE
}

// CreatedBefore returns the upper time bound, or nil if not set
func (c *listActionConfig) CreatedBefore() *time.Time {
	return c.createdLT
}

// Match reports whether an action with the given attributes passes the filter
func (c *listActionConfig) Match(status types.ActionStatus, t types.ActionType, createdAt time.Time) bool {
	if c.status != nil && status != *c.status {
		return false
	}
	if c.typ != nil && t != *c.typ {
		return false
	}
	if c.createdGE != nil && createdAt.Before(*c.createdGE) {
		return false
	}
	if c.createdLT != nil && !createdAt.Before(*c.createdLT) {
		return false
	}
	return true
}
