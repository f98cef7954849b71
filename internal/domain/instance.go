package domain

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// InstanceState is a step of the share workflow state machine.
type InstanceState string

const (
	StateDeriveOwnerNamespace InstanceState = "DERIVE_OWNER_NAMESPACE"
	StateFetchClassification  InstanceState = "FETCH_CLASSIFICATION"
	StateRequestApproval      InstanceState = "REQUEST_APPROVAL"
	StateAwaitingApproval     InstanceState = "AWAITING_APPROVAL"
	StateGrant                InstanceState = "GRANT"
	StateNotifyOwningDomain   InstanceState = "NOTIFY_OWNING_DOMAIN"
	StateMarkRejected         InstanceState = "MARK_REJECTED"
	StateGranted              InstanceState = "GRANTED"
	StateRejected             InstanceState = "REJECTED"
	StateFailed               InstanceState = "FAILED"
)

// RunnableStates are the states in which an instance can make progress
// without outside input.
var RunnableStates = []InstanceState{
	StateDeriveOwnerNamespace,
	StateFetchClassification,
	StateRequestApproval,
	StateGrant,
	StateNotifyOwningDomain,
	StateMarkRejected,
}

func (s InstanceState) String() string { return string(s) }

func (s InstanceState) IsValid() bool {
	switch s {
	case StateDeriveOwnerNamespace, StateFetchClassification, StateRequestApproval,
		StateAwaitingApproval, StateGrant, StateNotifyOwningDomain, StateMarkRejected,
		StateGranted, StateRejected, StateFailed:
		return true
	}
	return false
}

// IsTerminal reports whether no further transition is possible.
func (s InstanceState) IsTerminal() bool {
	switch s {
	case StateGranted, StateRejected, StateFailed:
		return true
	}
	return false
}

// IsSuspended reports whether the instance waits for a reviewer decision.
func (s InstanceState) IsSuspended() bool { return s == StateAwaitingApproval }

// ShareContext is the accumulated, persisted context of a workflow instance.
// Exactly one of Resource and Tags is set, matching Mode.
type ShareContext struct {
	Mode           ApprovalMode      `cbor:"1,keyasint"`
	OwnerDomainID  string            `cbor:"2,keyasint"`
	TargetDomainID string            `cbor:"3,keyasint"`
	RequestedBy    string            `cbor:"4,keyasint"`
	Resource       *ResourceSelector `cbor:"5,keyasint,omitempty"`
	Tags           []Tag             `cbor:"6,keyasint,omitempty"`

	OwnerNamespace     string            `cbor:"7,keyasint,omitempty"`
	Classification     *Classification   `cbor:"8,keyasint,omitempty"`
	ApprovalRequired   bool              `cbor:"9,keyasint,omitempty"`
	RequestID          string            `cbor:"10,keyasint,omitempty"`
	ResourceMappingKey string            `cbor:"11,keyasint"`
	ReviewOutput       map[string]string `cbor:"12,keyasint,omitempty"`
}

// NewShareContext builds the initial context for a share request.
func NewShareContext(sel Selector, ownerDomainID, targetDomainID, requestedBy string) ShareContext {
	c := ShareContext{
		Mode:               sel.Mode(),
		OwnerDomainID:      ownerDomainID,
		TargetDomainID:     targetDomainID,
		RequestedBy:        requestedBy,
		ResourceMappingKey: MappingKey(sel, targetDomainID),
	}
	switch s := sel.(type) {
	case ResourceSelector:
		c.Resource = &s
	case TagSelector:
		c.Tags = canonicalTags(s.Tags)
	}
	return c
}

// Selector rebuilds the request selector from the persisted context.
func (c ShareContext) Selector() (Selector, error) {
	switch c.Mode {
	case ModeResourceBased:
		if c.Resource == nil {
			return nil, fmt.Errorf("share context: resource mode without resource")
		}
		return *c.Resource, nil
	case ModeTagBased:
		if len(c.Tags) == 0 {
			return nil, fmt.Errorf("share context: tag mode without tags")
		}
		return TagSelector{Tags: c.Tags}, nil
	default:
		return nil, fmt.Errorf("share context: unknown mode %q", c.Mode)
	}
}

// WorkflowInstance is the persisted state of one share workflow.
// Revision increases by one on every persisted transition.
type WorkflowInstance struct {
	ID        uuid.UUID
	State     InstanceState
	Context   ShareContext
	Failure   string
	Revision  int64
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Outcome is the result a reviewer decision feeds into a suspended instance.
type Outcome struct {
	Success bool
	Output  map[string]string
}

// OutcomeFor maps a decision action to the continuation outcome.
func OutcomeFor(action DecisionAction, reviewer string) Outcome {
	return Outcome{
		Success: action == DecisionApprove,
		Output: map[string]string{
			"action":   action.String(),
			"reviewer": reviewer,
		},
	}
}
